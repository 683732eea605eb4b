// Package validation valida DTOs de entrada con go-playground/validator y reporta
// los errores por nombre de campo JSON.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/compliance-api/pkg/compliance"
)

// Tags propios.
const (
	tagNotBlank = "notblank"
	tagRegType  = "regtype"
	tagPAN      = "pan"
)

// ErrValidation envuelve cualquier fallo de validación.
var ErrValidation = errors.New("validation failed")

// Validator envoltorio sobre *validator.Validate con los tags del dominio registrados.
type Validator struct {
	v *validator.Validate
}

// New construye el validador. Seguro para uso concurrente.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Nombres JSON en los errores en lugar de los nombres Go.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	_ = v.RegisterValidation(tagNotBlank, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && strings.TrimSpace(s) != ""
	})
	_ = v.RegisterValidation(tagRegType, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && compliance.RegistrationType(strings.TrimSpace(s)).Valid()
	})
	_ = v.RegisterValidation(tagPAN, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && compliance.ValidPAN(s)
	})
	return &Validator{v: v}
}

// Struct valida s. El error devuelto envuelve ErrValidation y conserva validator.ValidationErrors.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrValidation, verrs)
	}
	return err
}

// Fields traduce el error de Struct a mensajes por campo. nil si err no es de validación.
func Fields(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fieldPath(fe)] = message(fe)
	}
	return out
}

// fieldPath "CreateCustomerRequest.registrations[0].type" -> "registrations[0].type".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", tagNotBlank:
		return "es requerido"
	case "email":
		return "email inválido"
	case "uuid":
		return "debe ser un UUID"
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "datetime":
		return "formato esperado " + layoutHint(fe.Param())
	case "min":
		return "mínimo " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	case tagRegType:
		return "tipo de registro desconocido"
	case tagPAN:
		return "PAN inválido (AAAAA9999A)"
	default:
		return "inválido (" + fe.Tag() + ")"
	}
}

func layoutHint(layout string) string {
	switch layout {
	case "2006-01-02":
		return "YYYY-MM-DD"
	case "2006-01":
		return "YYYY-MM"
	default:
		return layout
	}
}
