package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"laundry_desk/internal/domain/pricing"
)

// SetupValidator registers the custom tags on gin's validator and reports
// fields by their json (or form) name.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterValidations(v)
	}
}

// RegisterValidations adds decimal2 and phone10 to v.
func RegisterValidations(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	_ = v.RegisterValidation("decimal2", func(fl validator.FieldLevel) bool {
		return pricing.IsDecimal(strings.TrimSpace(fl.Field().String()))
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return IsPhone10(fl.Field().String())
	})
}

// IsPhone10 reports whether v is exactly ten ASCII digits after trimming.
func IsPhone10(v string) bool {
	v = strings.TrimSpace(v)
	if len(v) != 10 {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	return true
}

// ValidationDetails maps field names to human-readable messages. It returns
// nil for errors that are not validation errors.
func ValidationDetails(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	details := make(map[string]string, len(ve))
	for _, e := range ve {
		details[e.Field()] = validationMessage(e)
	}
	return details
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "decimal2":
		return "Must be a non-negative number with at most 2 decimals"
	case "phone10":
		return "Must be exactly 10 digits"
	case "min":
		return "Must have at least " + e.Param() + " entries"
	case "oneof":
		return "Must be one of: " + e.Param()
	default:
		return "Invalid value"
	}
}
