package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/customs-receipts/internal/domain/entity"
)

func TestDeclarationTotals(t *testing.T) {
	d := entity.Declaration{
		Number: "C-1001",
		Items: []entity.Item{
			{
				Quantity: decimal.NewFromInt(3),
				UnitCost: decimal.RequireFromString("10.50"),
				Taxes: []entity.TaxLine{
					{Type: entity.TaxCustomsDuty, Amount: decimal.RequireFromString("3.15")},
					{Type: entity.TaxVAT, Amount: decimal.RequireFromString("4.73")},
				},
			},
			{Quantity: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(100)},
		},
	}

	got := d.Totals()

	assert.True(t, decimal.RequireFromString("131.50").Equal(got.GoodsValue), got.GoodsValue.String())
	assert.True(t, decimal.RequireFromString("7.88").Equal(got.TaxTotal), got.TaxTotal.String())
	assert.True(t, decimal.RequireFromString("139.38").Equal(got.GrandTotal), got.GrandTotal.String())
}

func TestParseKind(t *testing.T) {
	k, ok := entity.ParseKind("bank-permit")
	assert.True(t, ok)
	assert.Equal(t, entity.KindBankPermit, k)

	k, ok = entity.ParseKind("main_receipt")
	assert.True(t, ok)
	assert.Equal(t, "main receipt", k.Label())

	_, ok = entity.ParseKind("otro")
	assert.False(t, ok)
}

func TestParseKind_EtiquetasDelBackend(t *testing.T) {
	cases := map[string]entity.DocumentKind{
		"main receipt":       entity.KindMainReceipt,
		"Bank Permit":        entity.KindBankPermit,
		"commercial invoice": entity.KindCommercialInvoice,
		"withholdingreceipt": entity.KindWithholdingReceipt,
		"wareHousefile":      entity.KindWarehouseFile,
		" warehouse-file ":   entity.KindWarehouseFile,
	}
	for in, want := range cases {
		k, ok := entity.ParseKind(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, k, in)
	}

	_, ok := entity.ParseKind("")
	assert.False(t, ok)
}

func TestDocument_UnmarshalTypeEtiqueta(t *testing.T) {
	var docs []entity.Document
	raw := `[{"id":"1","type":"main receipt"},{"id":"2","type":"Otro Tipo"},{"id":"3"}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &docs))

	assert.Equal(t, entity.KindMainReceipt, docs[0].Kind)
	assert.Equal(t, entity.DocumentKind("Otro Tipo"), docs[1].Kind, "un tipo desconocido se conserva")
	assert.Equal(t, entity.DocumentKind(""), docs[2].Kind)
}
