// Package form modela un formulario del tablero: valores capturados, validación de
// campos requeridos antes de cualquier llamada de red y el resultado del envío.
//
// Reglas:
//   - si la validación falla, la función de envío no se ejecuta;
//   - un conflicto (domain.ErrDuplicate) marca Duplicate y conserva los valores;
//   - cualquier otro error conserva los valores y deja el mensaje;
//   - un envío exitoso restablece los valores iniciales.
package form

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/customs-receipts/internal/application/dto"
	"github.com/jhoicas/customs-receipts/internal/domain"
)

// SubmitFunc envía los valores al backend y devuelve el mensaje de éxito (puede ser "").
type SubmitFunc[T any] func(ctx context.Context, values T) (string, error)

// Form estado local de un formulario.
type Form[T any] struct {
	Values    T
	Status    string
	Duplicate bool
	Message   string

	initial  func() T
	validate *validator.Validate
}

// New crea un formulario. initial se invoca para obtener los valores de arranque y en
// cada reinicio, de modo que slices y mapas nunca se comparten entre envíos.
func New[T any](v *validator.Validate, initial func() T) *Form[T] {
	if v == nil {
		v = NewValidator()
	}
	return &Form[T]{
		Values:   initial(),
		Status:   dto.FormStatusIdle,
		initial:  initial,
		validate: v,
	}
}

// Submit valida y envía. Devuelve el error original (envuelto en ErrValidation para
// fallas de validación) para que el llamador elija el código HTTP.
func (f *Form[T]) Submit(ctx context.Context, fn SubmitFunc[T]) error {
	f.Duplicate = false
	if err := f.validate.Struct(f.Values); err != nil {
		f.Status = dto.FormStatusInvalid
		f.Message = ValidationMessage(err)
		return errors.Join(domain.ErrValidation, err)
	}

	msg, err := fn(ctx, f.Values)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			f.Status = dto.FormStatusDuplicate
			f.Duplicate = true
			f.Message = duplicateMessage(userMessage(err))
			return err
		}
		f.Status = dto.FormStatusError
		f.Message = errorMessage(err)
		return err
	}

	f.Reset()
	f.Status = dto.FormStatusSubmitted
	f.Message = msg
	if f.Message == "" {
		f.Message = "enviado correctamente"
	}
	return nil
}

// Reset restablece los valores iniciales y limpia el estado.
func (f *Form[T]) Reset() {
	f.Values = f.initial()
	f.Status = dto.FormStatusIdle
	f.Duplicate = false
	f.Message = ""
}

// Result estado serializable del formulario.
func (f *Form[T]) Result() dto.FormResult {
	return dto.FormResult{
		Status:    f.Status,
		Duplicate: f.Duplicate,
		Message:   f.Message,
		Values:    f.Values,
	}
}

func duplicateMessage(backendMsg string) string {
	if backendMsg != "" {
		return backendMsg
	}
	return "ya existe una declaración con ese número"
}

// errorMessage prefiere el mensaje del backend cuando viene en el error.
func errorMessage(err error) string {
	if msg := userMessage(err); msg != "" {
		return msg
	}
	return err.Error()
}

func userMessage(err error) string {
	var m interface{ UserMessage() string }
	if errors.As(err, &m) {
		return m.UserMessage()
	}
	return ""
}
