package usecase

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/application/form"
	"github.com/jhoicas/customs-receipts/internal/application/ports"
	"github.com/jhoicas/customs-receipts/internal/application/viewer"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
	"github.com/jhoicas/customs-receipts/pkg/logger"
)

// ClerkUseCase formularios y visor del clerk: declaraciones, facturas comerciales,
// permisos bancarios y archivos de almacén.
type ClerkUseCase struct {
	gateway  ports.BackendGateway
	policy   UploadPolicy
	validate *validator.Validate
	log      *logger.Logger
}

// NewClerkUseCase construye el caso de uso.
func NewClerkUseCase(gateway ports.BackendGateway, policy UploadPolicy, log *logger.Logger) *ClerkUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ClerkUseCase{gateway: gateway, policy: policy, validate: form.NewValidator(), log: log.Named("clerk")}
}

// SubmitDeclaration valida y envía el formulario de declaración.
// El FormResult refleja el estado del formulario aun cuando hay error.
func (uc *ClerkUseCase) SubmitDeclaration(ctx context.Context, token string, in dto.DeclarationRequest) (dto.FormResult, error) {
	f := form.New(uc.validate, dto.NewDeclarationRequest)
	f.Values = in
	err := f.Submit(ctx, func(ctx context.Context, v dto.DeclarationRequest) (string, error) {
		decl, err := DeclarationFromRequest(v)
		if err != nil {
			return "", err
		}
		return uc.gateway.SubmitDeclaration(ctx, token, decl)
	})
	if err == nil {
		uc.log.Info().Str("declaration", in.DeclarationNumber).Msg("declaración enviada")
	}
	return f.Result(), err
}

// UploadDocument sube una factura comercial, permiso bancario o archivo de almacén.
func (uc *ClerkUseCase) UploadDocument(ctx context.Context, token string, in UploadInput) (*dto.UploadResult, error) {
	if err := kindAllowed(in.Kind, entity.KindCommercialInvoice, entity.KindBankPermit, entity.KindWarehouseFile); err != nil {
		return nil, err
	}
	return uploadWith(uc.policy, func(file ports.FileUpload) (string, error) {
		return uc.gateway.UploadDocument(ctx, token, in.Kind, in.DeclarationNumber, file)
	}, in)
}

// WarehouseFiles visor de archivos de almacén; por defecto agrupado por empresa.
func (uc *ClerkUseCase) WarehouseFiles(ctx context.Context, token, query, groupBy string) (dto.DocumentListResponse, error) {
	docs, err := uc.gateway.ListDocuments(ctx, token, entity.KindWarehouseFile)
	if err != nil {
		return dto.DocumentListResponse{}, err
	}
	if groupBy == "" {
		groupBy = viewer.GroupCompany
	}
	return viewer.Build(viewer.Filter(docs, query), groupBy), nil
}

// ListDeclarations declaraciones registradas con totales, filtradas por número, empresa o TIN.
func (uc *ClerkUseCase) ListDeclarations(ctx context.Context, token, query string) ([]dto.DeclarationSummary, error) {
	list, err := uc.gateway.ListDeclarations(ctx, token)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeclarationSummary, 0, len(list))
	for _, d := range list {
		if !viewer.MatchDeclaration(d, query) {
			continue
		}
		out = append(out, declarationSummary(d))
	}
	return out, nil
}
