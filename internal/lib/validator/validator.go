package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags and returns field -> failed tag, nil when valid.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return map[string]string{"_": err.Error()}
	}

	fields := make(map[string]string, len(vErrs))
	for _, e := range vErrs {
		fields[e.Field()] = e.Tag()
	}
	return fields
}
