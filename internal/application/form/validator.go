package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// NewValidator crea el validador del formulario:
//   - decimal.Decimal se valida como float64 (required exige distinto de cero).
//   - los nombres de campo en los mensajes usan la etiqueta json.
//
// Solo se comprueba presencia y formato de fecha; el resto lo decide el backend.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidationMessage convierte los errores del validador en un único texto legible.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.SplitN(fe.Namespace(), ".", 2)
	name := fe.Field()
	if len(field) == 2 {
		name = field[1]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", name)
	case "email":
		return fmt.Sprintf("%s no es un email válido", name)
	case "datetime":
		return fmt.Sprintf("%s debe tener formato %s", name, fe.Param())
	case "min":
		return fmt.Sprintf("%s requiere al menos %s elementos o caracteres", name, fe.Param())
	default:
		return fmt.Sprintf("%s no cumple la regla %s", name, fe.Tag())
	}
}
