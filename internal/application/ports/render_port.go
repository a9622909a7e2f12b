package ports

import (
	"context"

	"github.com/jhoicas/customs-receipts/internal/domain/entity"
)

// DeclarationPDF genera la hoja resumen de una declaración.
type DeclarationPDF interface {
	Generate(ctx context.Context, decl entity.Declaration, fingerprint string) ([]byte, error)
}

// DeclarationXML exportación XML y huella sobre la forma canónica.
type DeclarationXML interface {
	Build(decl entity.Declaration) ([]byte, error)
	Parse(data []byte) (entity.Declaration, error)
	Fingerprint(xml []byte) (string, error)
}
