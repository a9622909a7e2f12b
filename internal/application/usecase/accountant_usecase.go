package usecase

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/application/form"
	"github.com/jhoicas/customs-receipts/internal/application/ports"
	"github.com/jhoicas/customs-receipts/internal/application/viewer"
	"github.com/jhoicas/customs-receipts/internal/domain"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
	"github.com/jhoicas/customs-receipts/pkg/logger"
)

// DashboardKinds categorías del tablero del accountant, en orden de presentación.
var DashboardKinds = []entity.DocumentKind{
	entity.KindMainReceipt,
	entity.KindWithholdingReceipt,
	entity.KindCommercialInvoice,
	entity.KindBankPermit,
}

// AccountantUseCase cargos, impuestos, recibos y el tablero de cuatro categorías.
type AccountantUseCase struct {
	gateway  ports.BackendGateway
	policy   UploadPolicy
	validate *validator.Validate
	log      *logger.Logger
}

// NewAccountantUseCase construye el caso de uso.
func NewAccountantUseCase(gateway ports.BackendGateway, policy UploadPolicy, log *logger.Logger) *AccountantUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AccountantUseCase{gateway: gateway, policy: policy, validate: form.NewValidator(), log: log.Named("accountant")}
}

// SubmitFees formulario de cargos pagados de una declaración.
func (uc *AccountantUseCase) SubmitFees(ctx context.Context, token string, in dto.FeeFormRequest) (dto.FormResult, error) {
	f := form.New(uc.validate, dto.NewFeeFormRequest)
	f.Values = in
	err := f.Submit(ctx, func(ctx context.Context, v dto.FeeFormRequest) (string, error) {
		fees, err := feesFromRequest(v.Fees)
		if err != nil {
			return "", err
		}
		return uc.gateway.SubmitFees(ctx, token, v.DeclarationNumber, fees)
	})
	return f.Result(), err
}

// SubmitTaxes formulario de liquidación de impuestos.
func (uc *AccountantUseCase) SubmitTaxes(ctx context.Context, token string, in dto.TaxFormRequest) (dto.FormResult, error) {
	f := form.New(uc.validate, dto.NewTaxFormRequest)
	f.Values = in
	err := f.Submit(ctx, func(ctx context.Context, v dto.TaxFormRequest) (string, error) {
		return uc.gateway.SubmitTaxes(ctx, token, v.DeclarationNumber, taxesFromRequest(v.Taxes))
	})
	return f.Result(), err
}

// UploadReceipt sube un recibo principal o de retención.
func (uc *AccountantUseCase) UploadReceipt(ctx context.Context, token string, in UploadInput) (*dto.UploadResult, error) {
	if err := kindAllowed(in.Kind, entity.KindMainReceipt, entity.KindWithholdingReceipt); err != nil {
		return nil, err
	}
	return uploadWith(uc.policy, func(file ports.FileUpload) (string, error) {
		return uc.gateway.UploadDocument(ctx, token, in.Kind, in.DeclarationNumber, file)
	}, in)
}

// Dashboard consulta las cuatro categorías en paralelo. El primer error cancela el
// resto y es el que se devuelve; no hay resultados parciales.
func (uc *AccountantUseCase) Dashboard(ctx context.Context, token, query string) (*dto.AccountantDashboard, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	results := make([][]entity.Document, len(DashboardKinds))

	g, ctx := errgroup.WithContext(ctx)
	for i, kind := range DashboardKinds {
		i, kind := i, kind
		g.Go(func() error {
			docs, err := uc.gateway.ListDocuments(ctx, token, kind)
			if err != nil {
				return fmt.Errorf("%s: %w", kind.Label(), err)
			}
			results[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		uc.log.Warn().Err(err).Msg("tablero incompleto")
		return nil, err
	}

	out := &dto.AccountantDashboard{Categories: make([]dto.CategorySummary, 0, len(DashboardKinds))}
	for i, kind := range DashboardKinds {
		docs := viewer.Filter(results[i], query)
		out.Categories = append(out.Categories, dto.CategorySummary{
			Kind:      string(kind),
			Label:     kind.Label(),
			Count:     len(docs),
			Companies: viewer.GroupByCompany(docs),
		})
		out.Total += len(docs)
	}
	return out, nil
}

// Receipts visor de una sola categoría.
func (uc *AccountantUseCase) Receipts(ctx context.Context, token string, kind entity.DocumentKind, query, groupBy string) (dto.DocumentListResponse, error) {
	if err := kindAllowed(kind, DashboardKinds...); err != nil {
		return dto.DocumentListResponse{}, err
	}
	docs, err := uc.gateway.ListDocuments(ctx, token, kind)
	if err != nil {
		return dto.DocumentListResponse{}, err
	}
	if groupBy == "" {
		groupBy = viewer.GroupCompany
	}
	return viewer.Build(viewer.Filter(docs, query), groupBy), nil
}
