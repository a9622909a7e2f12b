package backend

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jhoicas/customs-receipts/internal/domain"
)

// APIError respuesta no 2xx del backend. Unwrap devuelve el error de dominio
// correspondiente, de modo que errors.Is(err, domain.ErrDuplicate) funciona.
type APIError struct {
	Status  int
	Message string // campo "message" del JSON, si vino
	Body    string // cuerpo crudo (recortado) cuando no hubo "message"
	kind    error
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Body
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("backend: HTTP %d: %s", e.Status, msg)
}

// Unwrap permite errors.Is contra los errores de dominio.
func (e *APIError) Unwrap() error { return e.kind }

// UserMessage mensaje pensado para mostrarse tal cual en el formulario.
func (e *APIError) UserMessage() string { return e.Message }

// classify mapea status + mensaje a un error de dominio.
// 409 o un mensaje con "already exists" es un duplicado aunque el status sea otro.
func classify(status int, message string) error {
	if status == http.StatusConflict || strings.Contains(strings.ToLower(message), "already exists") {
		return domain.ErrDuplicate
	}
	switch status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrValidation
	}
	return domain.ErrBackend
}
