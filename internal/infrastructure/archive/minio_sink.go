package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig conexión al bucket de archivo.
type MinioConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	Region        string // vacío = us-east-1; evita la consulta de ubicación del bucket
	Prefix        string // carpeta dentro del bucket, p. ej. "documents"
	PresignExpiry time.Duration
}

// MinioSink sube documentos a MinIO y devuelve una URL prefirmada de descarga.
type MinioSink struct {
	client *minio.Client
	cfg    MinioConfig

	ensureOnce sync.Once
	ensureErr  error
}

// NewMinioSink crea el cliente. No contacta al servidor hasta el primer Put.
func NewMinioSink(cfg MinioConfig) (*MinioSink, error) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.PresignExpiry <= 0 {
		cfg.PresignExpiry = 24 * time.Hour
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("archive: crear cliente minio: %w", err)
	}
	return &MinioSink{client: client, cfg: cfg}, nil
}

// ensureBucket crea el bucket si no existe (una sola vez por proceso).
func (s *MinioSink) ensureBucket(ctx context.Context) error {
	s.ensureOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
		if err != nil {
			s.ensureErr = fmt.Errorf("archive: verificar bucket: %w", err)
			return
		}
		if !exists {
			if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{Region: s.cfg.Region}); err != nil {
				s.ensureErr = fmt.Errorf("archive: crear bucket: %w", err)
			}
		}
	})
	return s.ensureErr
}

// Put sube el objeto y devuelve la URL prefirmada.
func (s *MinioSink) Put(ctx context.Context, name, mime string, data []byte) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", err
	}
	object := s.ObjectName(name)
	_, err := s.client.PutObject(ctx, s.cfg.Bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: mime,
	})
	if err != nil {
		return "", fmt.Errorf("archive: subir %s: %w", object, err)
	}
	return s.PresignedURL(ctx, object)
}

// PresignedURL URL de descarga válida por PresignExpiry.
func (s *MinioSink) PresignedURL(ctx context.Context, object string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.cfg.Bucket, object, s.cfg.PresignExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("archive: prefirmar %s: %w", object, err)
	}
	return u.String(), nil
}

// ObjectName ruta del objeto dentro del bucket.
func (s *MinioSink) ObjectName(name string) string {
	name = strings.TrimLeft(path.Clean("/"+name), "/")
	if s.cfg.Prefix == "" {
		return name
	}
	return path.Join(strings.Trim(s.cfg.Prefix, "/"), name)
}
