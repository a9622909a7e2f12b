package form_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/application/form"
	"github.com/jhoicas/customs-receipts/internal/domain"
)

func validDeclaration() dto.DeclarationRequest {
	return dto.DeclarationRequest{
		DeclarationNumber: "C-2024-0001",
		DeclarationDate:   "2024-03-15",
		CompanyName:       "Abay Trading PLC",
		TIN:               "0001234567",
		Currency:          "USD",
		ExchangeRate:      decimal.RequireFromString("56.75"),
		Items: []dto.ItemRequest{{
			Description: "Bombas de agua",
			HSCode:      "841370",
			Quantity:    decimal.NewFromInt(10),
			UnitCost:    decimal.RequireFromString("120.00"),
		}},
	}
}

func TestSubmit_CampoRequeridoNoLlamaALaRed(t *testing.T) {
	f := form.New(nil, dto.NewDeclarationRequest)
	f.Values = validDeclaration()
	f.Values.DeclarationNumber = ""

	calls := 0
	err := f.Submit(context.Background(), func(context.Context, dto.DeclarationRequest) (string, error) {
		calls++
		return "", nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, calls, "no debe haber llamada de red con un campo requerido vacío")
	assert.Equal(t, dto.FormStatusInvalid, f.Status)
	assert.Contains(t, f.Message, "declarationNumber")
	assert.Equal(t, "", f.Values.DeclarationNumber, "los valores capturados se conservan")
	assert.Equal(t, "Abay Trading PLC", f.Values.CompanyName)
}

func TestSubmit_ReglasDeFormatoLasDecideElBackend(t *testing.T) {
	f := form.New(nil, dto.NewDeclarationRequest)
	f.Values = validDeclaration()
	f.Values.TIN = "123456789"
	f.Values.Currency = "birr"
	f.Values.Items[0].HSCode = "8471.30.00"
	f.Values.Items[0].Taxes = []dto.TaxLineRequest{{Type: "sur tax", Amount: decimal.NewFromInt(5)}}

	var sent dto.DeclarationRequest
	err := f.Submit(context.Background(), func(_ context.Context, v dto.DeclarationRequest) (string, error) {
		sent = v
		return "Declaration saved", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "123456789", sent.TIN)
	assert.Equal(t, "8471.30.00", sent.Items[0].HSCode)
	assert.Equal(t, "sur tax", sent.Items[0].Taxes[0].Type)
}

func TestSubmit_FechaConFormatoInvalido(t *testing.T) {
	f := form.New(nil, dto.NewDeclarationRequest)
	f.Values = validDeclaration()
	f.Values.DeclarationDate = "15/03/2024"

	err := f.Submit(context.Background(), func(context.Context, dto.DeclarationRequest) (string, error) {
		t.Fatal("no debe enviarse")
		return "", nil
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, f.Message, "declarationDate debe tener formato 2006-01-02")
}

func TestSubmit_CantidadCeroEsRequerida(t *testing.T) {
	f := form.New(nil, dto.NewDeclarationRequest)
	f.Values = validDeclaration()
	f.Values.Items[0].Quantity = decimal.Zero

	err := f.Submit(context.Background(), func(context.Context, dto.DeclarationRequest) (string, error) {
		return "", nil
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, f.Message, "items[0].quantity es requerido")
}

type backendErr struct{ msg string }

func (e backendErr) Error() string       { return "backend: " + e.msg }
func (e backendErr) UserMessage() string { return e.msg }

func TestSubmit_DuplicadoMarcaFlagYNoLimpia(t *testing.T) {
	f := form.New(nil, dto.NewDeclarationRequest)
	f.Values = validDeclaration()

	dup := fmt.Errorf("%w: %w", domain.ErrDuplicate, backendErr{msg: "Declaration already exists"})
	err := f.Submit(context.Background(), func(context.Context, dto.DeclarationRequest) (string, error) {
		return "", dup
	})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.True(t, f.Duplicate)
	assert.Equal(t, dto.FormStatusDuplicate, f.Status)
	assert.Equal(t, "Declaration already exists", f.Message)
	assert.Equal(t, "C-2024-0001", f.Values.DeclarationNumber, "el formulario no se limpia")
}

func TestSubmit_ExitoRestableceValoresIniciales(t *testing.T) {
	f := form.New(nil, dto.NewDeclarationRequest)
	f.Values = validDeclaration()

	var sent dto.DeclarationRequest
	err := f.Submit(context.Background(), func(_ context.Context, v dto.DeclarationRequest) (string, error) {
		sent = v
		return "Declaration saved", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "C-2024-0001", sent.DeclarationNumber)
	assert.Equal(t, dto.NewDeclarationRequest(), f.Values)
	assert.Equal(t, dto.FormStatusSubmitted, f.Status)
	assert.False(t, f.Duplicate)
	assert.Equal(t, "Declaration saved", f.Message)
}

func TestSubmit_ErrorGenericoConservaValores(t *testing.T) {
	f := form.New(nil, dto.NewCompanyRequest)
	f.Values = dto.CompanyRequest{Name: "Abay", TIN: "0001234567", Address: "Addis Ababa", Status: "active"}

	err := f.Submit(context.Background(), func(context.Context, dto.CompanyRequest) (string, error) {
		return "", errors.New("connection refused")
	})

	require.Error(t, err)
	assert.Equal(t, dto.FormStatusError, f.Status)
	assert.Equal(t, "connection refused", f.Message)
	assert.Equal(t, "Abay", f.Values.Name)

	res := f.Result()
	assert.Equal(t, dto.FormStatusError, res.Status)
	assert.Equal(t, f.Values, res.Values)
}

func TestSubmit_DuplicadoPreviaSeLimpiaEnReintento(t *testing.T) {
	f := form.New(nil, dto.NewCompanyRequest)
	f.Values = dto.CompanyRequest{Name: "Abay", TIN: "0001234567", Address: "Addis Ababa", Status: "active"}

	_ = f.Submit(context.Background(), func(context.Context, dto.CompanyRequest) (string, error) {
		return "", domain.ErrDuplicate
	})
	require.True(t, f.Duplicate)
	assert.Equal(t, "ya existe una declaración con ese número", f.Message)

	require.NoError(t, f.Submit(context.Background(), func(context.Context, dto.CompanyRequest) (string, error) {
		return "", nil
	}))
	assert.False(t, f.Duplicate)
	assert.Equal(t, dto.NewCompanyRequest(), f.Values)
}
