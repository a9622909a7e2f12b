package usecase

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/application/ports"
	"github.com/jhoicas/customs-receipts/internal/domain"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
	"github.com/jhoicas/customs-receipts/pkg/datauri"
)

// UploadPolicy límites de los archivos adjuntos.
type UploadPolicy struct {
	MaxBytes     int64
	AllowedTypes []string
}

// DefaultUploadPolicy 10 MB; PDF, JPEG o PNG.
func DefaultUploadPolicy() UploadPolicy {
	return UploadPolicy{
		MaxBytes:     10 << 20,
		AllowedTypes: []string{datauri.MIMEPDF, datauri.MIMEJPEG, datauri.MIMEPNG},
	}
}

// UploadInput archivo recibido de un formulario o del CLI.
type UploadInput struct {
	Kind              entity.DocumentKind
	DeclarationNumber string
	FileName          string
	Data              []byte
}

// Check valida número de declaración, tamaño y tipo real (por contenido, no por extensión).
func (p UploadPolicy) Check(in UploadInput) (ports.FileUpload, error) {
	if strings.TrimSpace(in.DeclarationNumber) == "" {
		return ports.FileUpload{}, fmt.Errorf("%w: declarationNumber es obligatorio", domain.ErrValidation)
	}
	if len(in.Data) == 0 {
		return ports.FileUpload{}, fmt.Errorf("%w: el archivo está vacío", domain.ErrInvalidFile)
	}
	if p.MaxBytes > 0 && int64(len(in.Data)) > p.MaxBytes {
		return ports.FileUpload{}, fmt.Errorf("%w: %d bytes supera el máximo de %d", domain.ErrInvalidFile, len(in.Data), p.MaxBytes)
	}

	mt := mimetype.Detect(in.Data)
	allowed := len(p.AllowedTypes) == 0
	for _, t := range p.AllowedTypes {
		if mt.Is(t) {
			allowed = true
			break
		}
	}
	if !allowed {
		return ports.FileUpload{}, fmt.Errorf("%w: tipo %s no permitido", domain.ErrInvalidFile, mt.String())
	}

	mime, _, _ := strings.Cut(mt.String(), ";")
	name := filepath.Base(strings.TrimSpace(in.FileName))
	if name == "" || name == "." || name == "/" {
		name = strings.TrimSpace(in.DeclarationNumber) + "_" + string(in.Kind) + mt.Extension()
	}
	return ports.FileUpload{FileName: name, MIME: mime, Data: in.Data}, nil
}

// uploadWith valida y sube; comparte el flujo entre clerk y accountant.
func uploadWith(p UploadPolicy, send func(ports.FileUpload) (string, error), in UploadInput) (*dto.UploadResult, error) {
	file, err := p.Check(in)
	if err != nil {
		return nil, err
	}
	msg, err := send(file)
	if err != nil {
		return nil, err
	}
	if msg == "" {
		msg = "archivo subido correctamente"
	}
	return &dto.UploadResult{
		Kind:              string(in.Kind),
		DeclarationNumber: in.DeclarationNumber,
		FileName:          file.FileName,
		MIME:              file.MIME,
		Size:              int64(len(file.Data)),
		Message:           msg,
	}, nil
}

func kindAllowed(kind entity.DocumentKind, allowed ...entity.DocumentKind) error {
	for _, k := range allowed {
		if k == kind {
			return nil
		}
	}
	return fmt.Errorf("%w: categoría %q no permitida para este rol", domain.ErrForbidden, kind)
}
