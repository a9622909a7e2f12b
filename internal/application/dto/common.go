package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Estados de un formulario después de Submit.
const (
	FormStatusIdle      = "idle"
	FormStatusSubmitted = "submitted"
	FormStatusDuplicate = "duplicate"
	FormStatusInvalid   = "invalid"
	FormStatusError     = "error"
)

// FormResult respuesta de cualquier endpoint de formulario.
// Values contiene el estado del formulario tras el envío: los valores iniciales si
// se envió con éxito, o los valores capturados si hubo error.
type FormResult struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
	Message   string `json:"message"`
	Values    any    `json:"values"`
}
