// Package viewer prepara los documentos que devuelve el backend para los visores:
// normaliza el base64, filtra por texto y agrupa por empresa, usuario o declaración.
package viewer

import (
	"path/filepath"
	"strings"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
	"github.com/jhoicas/customs-receipts/pkg/datauri"
)

// Render convierte un documento del backend en su vista.
// Si el base64 es inválido, DataURL queda vacío y Preview es "none".
func Render(doc entity.Document) dto.DocumentView {
	uri := datauri.Normalize(doc.Data)
	preview := dto.PreviewNone
	switch {
	case datauri.IsPDF(uri):
		preview = dto.PreviewPDF
	case datauri.IsImage(uri):
		preview = dto.PreviewImage
	}
	return dto.DocumentView{
		ID:                doc.ID,
		Kind:              string(doc.Kind),
		KindLabel:         doc.Kind.Label(),
		DeclarationNumber: doc.DeclarationNumber,
		CompanyName:       doc.CompanyName,
		TIN:               doc.TIN,
		UserID:            doc.UserID,
		UploadedBy:        doc.UploadedBy,
		FileName:          doc.FileName,
		DataURL:           uri,
		Preview:           preview,
		DownloadName:      DownloadName(doc, uri),
		CreatedAt:         doc.CreatedAt,
	}
}

// RenderAll aplica Render a cada documento conservando el orden.
func RenderAll(docs []entity.Document) []dto.DocumentView {
	out := make([]dto.DocumentView, 0, len(docs))
	for _, d := range docs {
		out = append(out, Render(d))
	}
	return out
}

// DownloadName nombre de archivo para la descarga: el original si trae extensión,
// si no "<declaración>_<categoría><ext>".
func DownloadName(doc entity.Document, uri string) string {
	name := strings.TrimSpace(filepath.Base(doc.FileName))
	if name != "" && name != "." && filepath.Ext(name) != "" {
		return sanitize(name)
	}
	ext := ".bin"
	if mime, _, err := datauri.Decode(uri); err == nil {
		ext = datauri.Extension(mime)
	}
	base := name
	if base == "" || base == "." {
		base = doc.DeclarationNumber
		if base == "" {
			base = doc.ID
		}
		base += "_" + string(doc.Kind)
	}
	return sanitize(base + ext)
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}
