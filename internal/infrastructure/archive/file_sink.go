// Package archive guarda documentos descargados en un directorio local o en un bucket MinIO.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/customs-receipts/internal/application/ports"
)

var (
	_ ports.DocumentSink = (*FileSink)(nil)
	_ ports.DocumentSink = (*MinioSink)(nil)
)

// FileSink escribe cada documento como archivo dentro de Dir.
// Si el nombre ya existe se agrega un sufijo numérico; nunca sobrescribe.
type FileSink struct {
	Dir string
}

// writeData reemplazable en tests para simular un disco lleno.
var writeData = func(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

// NewFileSink crea el sink; el directorio se crea en el primer Put.
func NewFileSink(dir string) *FileSink { return &FileSink{Dir: dir} }

// Put devuelve la ruta absoluta del archivo escrito.
func (s *FileSink) Put(ctx context.Context, name, _ string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("archive: crear directorio %s: %w", s.Dir, err)
	}

	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." {
		return "", fmt.Errorf("archive: nombre de archivo vacío")
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for i := 0; i < 1000; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s_%d%s", stem, i, ext)
		}
		path := filepath.Join(s.Dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("archive: crear %s: %w", path, err)
		}
		if err := writeData(f, data); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("archive: escribir %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return "", fmt.Errorf("archive: cerrar %s: %w", path, err)
		}
		if abs, err := filepath.Abs(path); err == nil {
			return abs, nil
		}
		return path, nil
	}
	return "", fmt.Errorf("archive: demasiados archivos con el nombre %s", base)
}
