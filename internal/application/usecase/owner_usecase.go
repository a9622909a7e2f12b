package usecase

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/application/form"
	"github.com/jhoicas/customs-receipts/internal/application/ports"
	"github.com/jhoicas/customs-receipts/internal/application/viewer"
	"github.com/jhoicas/customs-receipts/pkg/logger"
)

// OwnerUseCase registro de empresas y visor de todos los documentos.
type OwnerUseCase struct {
	gateway  ports.BackendGateway
	validate *validator.Validate
	log      *logger.Logger
}

// NewOwnerUseCase construye el caso de uso.
func NewOwnerUseCase(gateway ports.BackendGateway, log *logger.Logger) *OwnerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &OwnerUseCase{gateway: gateway, validate: form.NewValidator(), log: log.Named("owner")}
}

// RegisterCompany formulario de alta de empresa. Un TIN repetido llega como duplicado.
func (uc *OwnerUseCase) RegisterCompany(ctx context.Context, token string, in dto.CompanyRequest) (dto.FormResult, error) {
	f := form.New(uc.validate, dto.NewCompanyRequest)
	f.Values = in
	err := f.Submit(ctx, func(ctx context.Context, v dto.CompanyRequest) (string, error) {
		return uc.gateway.RegisterCompany(ctx, token, companyFromRequest(v))
	})
	if err == nil {
		uc.log.Info().Str("company", in.Name).Msg("empresa registrada")
	}
	return f.Result(), err
}

// Companies empresas filtradas por nombre/TIN y estado.
func (uc *OwnerUseCase) Companies(ctx context.Context, token, query, status string) (*dto.CompanyListResponse, error) {
	list, err := uc.gateway.ListCompanies(ctx, token)
	if err != nil {
		return nil, err
	}
	filtered := viewer.FilterCompanies(list, query, status)
	out := &dto.CompanyListResponse{Items: make([]dto.CompanyResponse, 0, len(filtered)), Total: len(filtered)}
	for _, c := range filtered {
		out.Items = append(out.Items, companyToResponse(c))
	}
	return out, nil
}

// Documents todos los documentos; por defecto como árbol empresa → usuario → declaración.
func (uc *OwnerUseCase) Documents(ctx context.Context, token, query, groupBy string) (dto.DocumentListResponse, error) {
	docs, err := uc.gateway.ListAllDocuments(ctx, token)
	if err != nil {
		return dto.DocumentListResponse{}, err
	}
	if groupBy == "" {
		groupBy = viewer.GroupTree
	}
	return viewer.Build(viewer.Filter(docs, query), groupBy), nil
}
