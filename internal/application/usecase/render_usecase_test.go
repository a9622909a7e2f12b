package usecase_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/customs-receipts/internal/application/usecase"
	"github.com/jhoicas/customs-receipts/internal/domain"
	"github.com/jhoicas/customs-receipts/internal/infrastructure/declxml"
	"github.com/jhoicas/customs-receipts/internal/infrastructure/pdf"
)

func newRender() *usecase.RenderUseCase {
	return usecase.NewRenderUseCase(pdf.NewMarotoDeclarationPDF(), declxml.NewCodec())
}

func TestRender_XMLYPDFCompartenHuella(t *testing.T) {
	uc := newRender()
	ctx := context.Background()

	x, err := uc.Render(ctx, declarationRequest(), usecase.FormatXML)
	require.NoError(t, err)
	assert.Equal(t, "C-2024-0001.xml", x.Name)
	assert.Equal(t, "application/xml", x.MIME)
	assert.Len(t, x.Fingerprint, 64)

	p, err := uc.Render(ctx, declarationRequest(), "")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", p.MIME)
	assert.True(t, bytes.HasPrefix(p.Data, []byte("%PDF")))
	assert.Equal(t, x.Fingerprint, p.Fingerprint)
}

func TestRender_ValidaYRechazaFormato(t *testing.T) {
	uc := newRender()

	_, err := uc.Render(context.Background(), declarationRequest(), "docx")
	assert.ErrorIs(t, err, domain.ErrValidation)

	in := declarationRequest()
	in.TIN = "12"
	_, err = uc.Render(context.Background(), in, usecase.FormatXML)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "tin")
}

func TestRender_ImportXML(t *testing.T) {
	uc := newRender()
	x, err := uc.Render(context.Background(), declarationRequest(), usecase.FormatXML)
	require.NoError(t, err)

	in, err := uc.ImportXML(x.Data)
	require.NoError(t, err)
	assert.Equal(t, "C-2024-0001", in.DeclarationNumber)
	assert.Equal(t, "2024-03-15", in.DeclarationDate)
	assert.Equal(t, "0001234567", in.TIN)
	require.Len(t, in.Items, 1)
	require.Len(t, in.Items[0].Taxes, 1)
}
