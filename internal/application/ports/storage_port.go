package ports

import (
	"context"

	"github.com/jhoicas/customs-receipts/internal/domain/entity"
)

// DocumentSink destino de un documento descargado (directorio local, bucket MinIO).
// Put devuelve la ubicación final (ruta o URL prefirmada).
type DocumentSink interface {
	Put(ctx context.Context, name, mime string, data []byte) (string, error)
}

// SessionStore persistencia del token y user id del lado del cliente.
type SessionStore interface {
	Load() (entity.Session, error)
	Save(s entity.Session) error
	Clear() error
}
