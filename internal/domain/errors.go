package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrValidation         = errors.New("datos del formulario inválidos")
	ErrMissingToken       = errors.New("no hay sesión activa: token ausente")
	ErrDuplicate          = errors.New("la declaración ya existe")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidFile        = errors.New("archivo inválido")
	ErrBackend            = errors.New("el backend rechazó la solicitud")
	ErrBackendUnavailable = errors.New("no se pudo contactar al backend")
)
