package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/application/form"
	"github.com/jhoicas/customs-receipts/internal/application/ports"
	"github.com/jhoicas/customs-receipts/internal/domain"
)

// Formatos de exportación de una declaración.
const (
	FormatPDF = "pdf"
	FormatXML = "xml"
)

// RenderedFile resultado de exportar una declaración.
type RenderedFile struct {
	Name        string
	MIME        string
	Data        []byte
	Fingerprint string
}

// RenderUseCase exporta declaraciones a PDF (hoja resumen) o XML. No usa la red.
type RenderUseCase struct {
	pdf      ports.DeclarationPDF
	xml      ports.DeclarationXML
	validate *validator.Validate
}

// NewRenderUseCase construye el caso de uso.
func NewRenderUseCase(pdf ports.DeclarationPDF, xml ports.DeclarationXML) *RenderUseCase {
	return &RenderUseCase{pdf: pdf, xml: xml, validate: form.NewValidator()}
}

// Render valida el formulario y genera el archivo. La huella SHA-256 se calcula
// siempre sobre el XML canónico, también para el PDF.
func (uc *RenderUseCase) Render(ctx context.Context, in dto.DeclarationRequest, format string) (*RenderedFile, error) {
	if format == "" {
		format = FormatPDF
	}
	if format != FormatPDF && format != FormatXML {
		return nil, fmt.Errorf("%w: formato %q no soportado (pdf o xml)", domain.ErrValidation, format)
	}
	if err := uc.validate.Struct(in); err != nil {
		return nil, errors.Join(domain.ErrValidation, errors.New(form.ValidationMessage(err)))
	}
	decl, err := DeclarationFromRequest(in)
	if err != nil {
		return nil, err
	}

	xmlBytes, err := uc.xml.Build(decl)
	if err != nil {
		return nil, err
	}
	fp, err := uc.xml.Fingerprint(xmlBytes)
	if err != nil {
		return nil, err
	}

	base := strings.NewReplacer("/", "_", `\`, "_").Replace(decl.Number)
	if format == FormatXML {
		return &RenderedFile{Name: base + ".xml", MIME: "application/xml", Data: xmlBytes, Fingerprint: fp}, nil
	}
	pdfBytes, err := uc.pdf.Generate(ctx, decl, fp)
	if err != nil {
		return nil, err
	}
	return &RenderedFile{Name: base + ".pdf", MIME: "application/pdf", Data: pdfBytes, Fingerprint: fp}, nil
}

// ImportXML lee una declaración desde XML y la devuelve como formulario.
func (uc *RenderUseCase) ImportXML(data []byte) (dto.DeclarationRequest, error) {
	decl, err := uc.xml.Parse(data)
	if err != nil {
		return dto.DeclarationRequest{}, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}
	return DeclarationToRequest(decl), nil
}
