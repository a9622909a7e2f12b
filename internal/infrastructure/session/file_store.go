// Package session guarda el token y el user id del CLI en un archivo JSON local.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jhoicas/customs-receipts/internal/application/ports"
	"github.com/jhoicas/customs-receipts/internal/domain/entity"
)

var _ ports.SessionStore = (*FileStore)(nil)

// FileStore sesión en disco. El archivo contiene el token, por eso se escribe con 0600.
type FileStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewFileStore crea el store; el directorio se crea en el primer Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Path ruta del archivo de sesión.
func (s *FileStore) Path() string { return s.path }

// Load devuelve una sesión vacía si el archivo no existe.
func (s *FileStore) Load() (entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return entity.Session{}, nil
	}
	if err != nil {
		return entity.Session{}, fmt.Errorf("session: leer %s: %w", s.path, err)
	}

	var sess entity.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return entity.Session{}, fmt.Errorf("session: archivo corrupto %s: %w", s.path, err)
	}
	return sess, nil
}

// Save reemplaza el archivo completo (escritura a temporal + rename).
func (s *FileStore) Save(sess entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.SavedAt.IsZero() {
		sess.SavedAt = s.now().UTC()
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("session: serializar: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: crear directorio: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("session: escribir: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("session: guardar: %w", err)
	}
	return nil
}

// Clear borra el archivo. No es error si no existía.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: borrar: %w", err)
	}
	return nil
}
