package dto

import "github.com/shopspring/decimal"

// DeclarationRequest formulario del clerk para registrar una declaración.
type DeclarationRequest struct {
	DeclarationNumber string          `json:"declarationNumber" validate:"required"`
	DeclarationDate   string          `json:"declarationDate" validate:"required,datetime=2006-01-02"`
	CompanyName       string          `json:"companyName" validate:"required"`
	TIN               string          `json:"tin" validate:"required"`
	Currency          string          `json:"currency" validate:"required"`
	ExchangeRate      decimal.Decimal `json:"exchangeRate" validate:"required"`
	Items             []ItemRequest   `json:"items" validate:"required,min=1,dive"`
}

// ItemRequest línea de mercancía del formulario.
type ItemRequest struct {
	Description string           `json:"description" validate:"required"`
	HSCode      string           `json:"hsCode" validate:"required"`
	Quantity    decimal.Decimal  `json:"quantity" validate:"required"`
	UnitCost    decimal.Decimal  `json:"unitCost"`
	Taxes       []TaxLineRequest `json:"taxes" validate:"omitempty,dive"`
}

// TaxLineRequest impuesto de una línea o de la declaración.
type TaxLineRequest struct {
	Type   string          `json:"type" validate:"required"`
	Rate   decimal.Decimal `json:"rate"`
	Amount decimal.Decimal `json:"amount"`
}

// NewDeclarationRequest valores iniciales: moneda USD, tasa 1 y una línea vacía.
func NewDeclarationRequest() DeclarationRequest {
	return DeclarationRequest{
		Currency:     "USD",
		ExchangeRate: decimal.NewFromInt(1),
		Items:        []ItemRequest{{}},
	}
}

// FeeFormRequest formulario del accountant con los cargos pagados de una declaración.
type FeeFormRequest struct {
	DeclarationNumber string           `json:"declarationNumber" validate:"required"`
	Fees              []FeeLineRequest `json:"fees" validate:"required,min=1,dive"`
}

// FeeLineRequest cargo individual.
type FeeLineRequest struct {
	Type          string          `json:"type" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	ReceiptNumber string          `json:"receiptNumber" validate:"required"`
	PaidAt        string          `json:"paidAt" validate:"required,datetime=2006-01-02"`
}

// NewFeeFormRequest valores iniciales del formulario de cargos.
func NewFeeFormRequest() FeeFormRequest {
	return FeeFormRequest{Fees: []FeeLineRequest{{}}}
}

// TaxFormRequest formulario del accountant con la liquidación de impuestos.
type TaxFormRequest struct {
	DeclarationNumber string           `json:"declarationNumber" validate:"required"`
	Taxes             []TaxLineRequest `json:"taxes" validate:"required,min=1,dive"`
}

// NewTaxFormRequest valores iniciales del formulario de impuestos.
func NewTaxFormRequest() TaxFormRequest {
	return TaxFormRequest{Taxes: []TaxLineRequest{{}}}
}

// DeclarationSummary declaración con totales calculados.
type DeclarationSummary struct {
	DeclarationNumber string          `json:"declarationNumber"`
	DeclarationDate   string          `json:"declarationDate"`
	CompanyName       string          `json:"companyName"`
	TIN               string          `json:"tin"`
	ItemCount         int             `json:"itemCount"`
	GoodsValue        decimal.Decimal `json:"goodsValue"`
	TaxTotal          decimal.Decimal `json:"taxTotal"`
	GrandTotal        decimal.Decimal `json:"grandTotal"`
}
