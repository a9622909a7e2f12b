package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// DocumentKind categoría del archivo subido. Cada una tiene su endpoint en el backend.
type DocumentKind string

const (
	KindMainReceipt        DocumentKind = "main_receipt"
	KindWithholdingReceipt DocumentKind = "withholding_receipt"
	KindCommercialInvoice  DocumentKind = "commercial_invoice"
	KindBankPermit         DocumentKind = "bank_permit"
	KindWarehouseFile      DocumentKind = "warehouse_file"
)

// Kinds todas las categorías en el orden en que se muestran.
var Kinds = []DocumentKind{
	KindMainReceipt,
	KindWithholdingReceipt,
	KindCommercialInvoice,
	KindBankPermit,
	KindWarehouseFile,
}

// Label etiqueta legible de la categoría.
func (k DocumentKind) Label() string {
	switch k {
	case KindMainReceipt:
		return "main receipt"
	case KindWithholdingReceipt:
		return "withholding receipt"
	case KindCommercialInvoice:
		return "commercial invoice"
	case KindBankPermit:
		return "bank permit"
	case KindWarehouseFile:
		return "warehouse file"
	}
	return string(k)
}

// ParseKind acepta la forma canónica ("main_receipt"), la de rutas ("main-receipt"),
// la etiqueta del backend ("main receipt") y la de sus endpoints ("mainreceipt"),
// sin distinguir mayúsculas.
func ParseKind(s string) (DocumentKind, bool) {
	key := kindKey(s)
	if key == "" {
		return "", false
	}
	for _, k := range Kinds {
		if kindKey(string(k)) == key {
			return k, true
		}
	}
	return "", false
}

// kindKey minúsculas y sin separadores.
func kindKey(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '\t':
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// UnmarshalJSON normaliza el "type" del backend a la categoría conocida.
// Un valor desconocido se conserva tal cual.
func (k *DocumentKind) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("document type: %w", err)
	}
	if known, ok := ParseKind(raw); ok {
		*k = known
		return nil
	}
	*k = DocumentKind(strings.TrimSpace(raw))
	return nil
}

// Slug forma usada en rutas HTTP y flags del CLI.
func (k DocumentKind) Slug() string {
	b := []byte(k)
	for i := range b {
		if b[i] == '_' {
			b[i] = '-'
		}
	}
	return string(b)
}

// Document archivo en base64 tal como lo devuelve el backend.
type Document struct {
	ID                string       `json:"id"`
	Kind              DocumentKind `json:"type"`
	DeclarationNumber string       `json:"declarationNumber"`
	CompanyName       string       `json:"companyName"`
	TIN               string       `json:"tin"`
	UserID            string       `json:"userId"`
	UploadedBy        string       `json:"uploadedBy"`
	FileName          string       `json:"fileName"`
	Data              string       `json:"data"` // base64, con o sin prefijo data:
	CreatedAt         time.Time    `json:"createdAt"`
}
