// Package validator runs the struct-tag validation rules declared on the
// domain models.
package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate returns field -> failed-rule pairs, or nil when the struct passes.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		errors[err.Field()] = err.Tag()
	}
	return errors
}
