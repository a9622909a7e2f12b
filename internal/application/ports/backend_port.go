package ports

import (
	"context"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
)

// FileUpload archivo ya validado (tamaño y tipo) listo para enviarse como multipart.
type FileUpload struct {
	FileName string
	MIME     string
	Data     []byte
}

// BackendGateway puerto de salida hacia la API REST remota.
// Todas las operaciones autenticadas reciben el token de la sesión; con token vacío
// la implementación devuelve domain.ErrMissingToken sin llamar a la red.
// Los conflictos (409 o mensaje "already exists") se reportan como domain.ErrDuplicate.
type BackendGateway interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)

	SubmitDeclaration(ctx context.Context, token string, d entity.Declaration) (string, error)
	ListDeclarations(ctx context.Context, token string) ([]entity.Declaration, error)
	SubmitFees(ctx context.Context, token, declarationNumber string, fees []entity.FeeLine) (string, error)
	SubmitTaxes(ctx context.Context, token, declarationNumber string, taxes []entity.TaxLine) (string, error)

	UploadDocument(ctx context.Context, token string, kind entity.DocumentKind, declarationNumber string, file FileUpload) (string, error)
	ListDocuments(ctx context.Context, token string, kind entity.DocumentKind) ([]entity.Document, error)
	ListAllDocuments(ctx context.Context, token string) ([]entity.Document, error)

	RegisterCompany(ctx context.Context, token string, c entity.Company) (string, error)
	ListCompanies(ctx context.Context, token string) ([]entity.Company, error)
}
