package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/application/ports"
	"github.com/jhoicas/customs-receipts/internal/application/viewer"
	"github.com/jhoicas/customs-receipts/internal/domain"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
	"github.com/jhoicas/customs-receipts/pkg/datauri"
	"github.com/jhoicas/customs-receipts/pkg/logger"
)

// KindsForRole categorías que cada rol puede consultar.
func KindsForRole(role string) []entity.DocumentKind {
	switch role {
	case entity.RoleClerk:
		return []entity.DocumentKind{entity.KindWarehouseFile}
	case entity.RoleAccountant:
		return DashboardKinds
	case entity.RoleOwner:
		return entity.Kinds
	}
	return nil
}

// DownloadedFile contenido decodificado de un documento.
type DownloadedFile struct {
	Name string
	MIME string
	Data []byte
}

// DocumentUseCase búsqueda y descarga de un documento puntual.
type DocumentUseCase struct {
	gateway ports.BackendGateway
	log     *logger.Logger
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(gateway ports.BackendGateway, log *logger.Logger) *DocumentUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DocumentUseCase{gateway: gateway, log: log.Named("documents")}
}

// find el backend no expone consulta por id: se lista la categoría y se busca.
// El owner usa el listado general porque no tiene acceso a los endpoints por categoría.
func (uc *DocumentUseCase) find(ctx context.Context, token, role string, kind entity.DocumentKind, id string) (entity.Document, error) {
	if err := kindAllowed(kind, KindsForRole(role)...); err != nil {
		return entity.Document{}, err
	}
	var (
		docs []entity.Document
		err  error
	)
	if role == entity.RoleOwner {
		docs, err = uc.gateway.ListAllDocuments(ctx, token)
	} else {
		docs, err = uc.gateway.ListDocuments(ctx, token, kind)
	}
	if err != nil {
		return entity.Document{}, err
	}
	for _, d := range docs {
		if d.ID == id && (d.Kind == "" || d.Kind == kind) {
			if d.Kind == "" {
				d.Kind = kind
			}
			return d, nil
		}
	}
	return entity.Document{}, fmt.Errorf("%w: %s %s", domain.ErrNotFound, kind.Label(), id)
}

// Find devuelve la vista del documento (URL data: lista para previsualizar).
func (uc *DocumentUseCase) Find(ctx context.Context, token, role string, kind entity.DocumentKind, id string) (*dto.DocumentView, error) {
	doc, err := uc.find(ctx, token, role, kind, id)
	if err != nil {
		return nil, err
	}
	view := viewer.Render(doc)
	return &view, nil
}

// Download decodifica el documento. Un base64 inválido es domain.ErrInvalidFile.
func (uc *DocumentUseCase) Download(ctx context.Context, token, role string, kind entity.DocumentKind, id string) (*DownloadedFile, error) {
	doc, err := uc.find(ctx, token, role, kind, id)
	if err != nil {
		return nil, err
	}
	uri := datauri.Normalize(doc.Data)
	if uri == "" {
		return nil, fmt.Errorf("%w: el documento %s no tiene contenido válido", domain.ErrInvalidFile, id)
	}
	mime, data, err := datauri.Decode(uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidFile, err)
	}
	return &DownloadedFile{Name: viewer.DownloadName(doc, uri), MIME: mime, Data: data}, nil
}

// Archive descarga el documento y lo entrega al sink (directorio o bucket).
// Devuelve la ubicación final.
func (uc *DocumentUseCase) Archive(ctx context.Context, token, role string, kind entity.DocumentKind, id string, sink ports.DocumentSink) (string, error) {
	if sink == nil {
		return "", fmt.Errorf("documents: no hay destino de archivo configurado")
	}
	file, err := uc.Download(ctx, token, role, kind, id)
	if err != nil {
		return "", err
	}
	loc, err := sink.Put(ctx, file.Name, file.MIME, file.Data)
	if err != nil {
		return "", err
	}
	uc.log.Info().Str("kind", string(kind)).Str("id", id).Str("location", loc).Msg("documento archivado")
	return loc, nil
}
