// Package declxml exporta e importa declaraciones como XML y calcula su huella
// SHA-256 sobre la forma canónica (C14N 1.0).
package declxml

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/customs-receipts/internal/domain/entity"
)

// Namespace del documento exportado.
const Namespace = "urn:customs-receipts:declaration:1"

// Codec implementa ports.DeclarationXML.
type Codec struct{}

// NewCodec crea el codec.
func NewCodec() *Codec { return &Codec{} }

// Build genera el XML de la declaración (indentado, con cabecera).
func (c *Codec) Build(decl entity.Declaration) ([]byte, error) {
	if decl.Number == "" {
		return nil, fmt.Errorf("declxml: la declaración no tiene número")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Declaration")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("number", decl.Number)

	if !decl.Date.IsZero() {
		root.CreateElement("Date").SetText(decl.Date.Format(entity.DateLayout))
	}
	importer := root.CreateElement("Importer")
	importer.CreateElement("Name").SetText(decl.CompanyName)
	importer.CreateElement("TIN").SetText(decl.TIN)

	cur := root.CreateElement("Currency")
	cur.CreateAttr("exchangeRate", decl.ExchangeRate.String())
	cur.SetText(decl.Currency)

	items := root.CreateElement("Items")
	for i, it := range decl.Items {
		el := items.CreateElement("Item")
		el.CreateAttr("line", fmt.Sprint(i+1))
		el.CreateElement("HSCode").SetText(it.HSCode)
		el.CreateElement("Description").SetText(it.Description)
		el.CreateElement("Quantity").SetText(it.Quantity.String())
		el.CreateElement("UnitCost").SetText(it.UnitCost.String())
		el.CreateElement("LineValue").SetText(it.LineValue().StringFixed(2))
		if len(it.Taxes) > 0 {
			taxes := el.CreateElement("Taxes")
			for _, t := range it.Taxes {
				tx := taxes.CreateElement("Tax")
				tx.CreateAttr("type", t.Type)
				tx.CreateAttr("rate", t.Rate.String())
				tx.SetText(t.Amount.StringFixed(2))
			}
		}
	}

	totals := decl.Totals()
	tot := root.CreateElement("Totals")
	tot.CreateElement("GoodsValue").SetText(totals.GoodsValue.StringFixed(2))
	tot.CreateElement("TaxTotal").SetText(totals.TaxTotal.StringFixed(2))
	tot.CreateElement("GrandTotal").SetText(totals.GrandTotal.StringFixed(2))

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("declxml: serializar: %w", err)
	}
	return out, nil
}

// Parse lee un XML generado por Build (o escrito a mano con la misma forma).
// Los totales del archivo se ignoran; se recalculan desde los ítems.
func (c *Codec) Parse(data []byte) (entity.Declaration, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return entity.Declaration{}, fmt.Errorf("declxml: parsear XML: %w", err)
	}
	root := doc.SelectElement("Declaration")
	if root == nil {
		return entity.Declaration{}, fmt.Errorf("declxml: falta el elemento Declaration")
	}

	var decl entity.Declaration
	var err error
	decl.Number = root.SelectAttrValue("number", "")
	if s := childText(root, "Date"); s != "" {
		if decl.Date, err = time.Parse(entity.DateLayout, s); err != nil {
			return entity.Declaration{}, fmt.Errorf("declxml: Date inválida %q: %w", s, err)
		}
	}
	if imp := root.SelectElement("Importer"); imp != nil {
		decl.CompanyName = childText(imp, "Name")
		decl.TIN = childText(imp, "TIN")
	}
	if cur := root.SelectElement("Currency"); cur != nil {
		decl.Currency = cur.Text()
		if decl.ExchangeRate, err = parseDecimal(cur.SelectAttrValue("exchangeRate", "")); err != nil {
			return entity.Declaration{}, fmt.Errorf("declxml: exchangeRate: %w", err)
		}
	}

	if items := root.SelectElement("Items"); items != nil {
		for _, el := range items.SelectElements("Item") {
			it := entity.Item{
				HSCode:      childText(el, "HSCode"),
				Description: childText(el, "Description"),
			}
			if it.Quantity, err = parseDecimal(childText(el, "Quantity")); err != nil {
				return entity.Declaration{}, fmt.Errorf("declxml: Quantity: %w", err)
			}
			if it.UnitCost, err = parseDecimal(childText(el, "UnitCost")); err != nil {
				return entity.Declaration{}, fmt.Errorf("declxml: UnitCost: %w", err)
			}
			if taxes := el.SelectElement("Taxes"); taxes != nil {
				for _, tx := range taxes.SelectElements("Tax") {
					line := entity.TaxLine{Type: tx.SelectAttrValue("type", "")}
					if line.Rate, err = parseDecimal(tx.SelectAttrValue("rate", "")); err != nil {
						return entity.Declaration{}, fmt.Errorf("declxml: Tax rate: %w", err)
					}
					if line.Amount, err = parseDecimal(tx.Text()); err != nil {
						return entity.Declaration{}, fmt.Errorf("declxml: Tax: %w", err)
					}
					it.Taxes = append(it.Taxes, line)
				}
			}
			decl.Items = append(decl.Items, it)
		}
	}
	return decl, nil
}

// Fingerprint SHA-256 hex de la forma canónica. Dos XML que solo difieren en
// espacios entre atributos o comillas producen la misma huella.
func (c *Codec) Fingerprint(data []byte) (string, error) {
	canonical, err := canonicalize(data)
	if err != nil {
		return "", fmt.Errorf("declxml: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}

func childText(el *etree.Element, tag string) string {
	if c := el.SelectElement(tag); c != nil {
		return c.Text()
	}
	return ""
}

func parseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
