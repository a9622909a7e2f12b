package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de impuesto/cargo más comunes en la liquidación aduanera.
const (
	TaxCustomsDuty = "customs_duty"
	TaxExcise      = "excise"
	TaxVAT         = "vat"
	TaxSurtax      = "surtax"
	TaxWithholding = "withholding"
)

// Declaration declaración aduanera de importación/exportación.
type Declaration struct {
	Number       string          `json:"declarationNumber"`
	Date         time.Time       `json:"declarationDate"`
	CompanyName  string          `json:"companyName"`
	TIN          string          `json:"tin"`
	Currency     string          `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	Items        []Item          `json:"items"`
}

// Item línea de mercancía declarada.
type Item struct {
	Description string          `json:"description"`
	HSCode      string          `json:"hsCode"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost"`
	Taxes       []TaxLine       `json:"taxes"`
}

// TaxLine impuesto aplicado a una línea o a la declaración completa.
type TaxLine struct {
	Type   string          `json:"type"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// FeeLine cargo pagado por la declaración (almacenaje, transporte, servicio aduanero...).
type FeeLine struct {
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	ReceiptNumber string          `json:"receiptNumber"`
	PaidAt        time.Time       `json:"paidAt"`
}

// Totals montos de la declaración. Solo para mostrar; el backend no exige coherencia.
type Totals struct {
	GoodsValue decimal.Decimal
	TaxTotal   decimal.Decimal
	GrandTotal decimal.Decimal
}

// LineValue cantidad × costo unitario.
func (i Item) LineValue() decimal.Decimal {
	return i.Quantity.Mul(i.UnitCost)
}

// TaxTotal suma de los impuestos de la línea.
func (i Item) TaxTotal() decimal.Decimal {
	total := decimal.Zero
	for _, t := range i.Taxes {
		total = total.Add(t.Amount)
	}
	return total
}

// Totals suma valores y impuestos de todas las líneas.
func (d Declaration) Totals() Totals {
	goods, tax := decimal.Zero, decimal.Zero
	for _, it := range d.Items {
		goods = goods.Add(it.LineValue())
		tax = tax.Add(it.TaxTotal())
	}
	return Totals{
		GoodsValue: goods.Round(2),
		TaxTotal:   tax.Round(2),
		GrandTotal: goods.Add(tax).Round(2),
	}
}

// DateLayout formato de fecha de declaración que intercambia el backend.
const DateLayout = "2006-01-02"

// UnmarshalJSON acepta declarationDate como "2006-01-02" o RFC 3339.
func (d *Declaration) UnmarshalJSON(b []byte) error {
	type alias Declaration
	aux := struct {
		*alias
		Date string `json:"declarationDate"`
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.Date == "" {
		d.Date = time.Time{}
		return nil
	}
	for _, layout := range []string{DateLayout, time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, aux.Date); err == nil {
			d.Date = t
			return nil
		}
	}
	return fmt.Errorf("declarationDate inválida: %q", aux.Date)
}

// MarshalJSON serializa la fecha como "2006-01-02".
func (d Declaration) MarshalJSON() ([]byte, error) {
	type alias Declaration
	date := ""
	if !d.Date.IsZero() {
		date = d.Date.Format(DateLayout)
	}
	return json.Marshal(struct {
		alias
		Date string `json:"declarationDate"`
	}{alias: alias(d), Date: date})
}
