package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sumire/notifyschema/internal/domain"
)

// AppValidator wraps go-playground/validator for echo request binding.
type AppValidator struct {
	validator *validator.Validate
}

// NewAppValidator creates a new AppValidator.
func NewAppValidator() *AppValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &AppValidator{validator: v}
}

// Validate validates a struct using go-playground/validator tags and reports every failing field.
func (v *AppValidator) Validate(i any) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	out := make(domain.ValidationErrors, 0, len(validationErrors))
	for _, fe := range validationErrors {
		code := domain.CodeConstraintViolation
		if fe.Tag() == "required" {
			code = domain.CodeMissingField
		}
		ve := &domain.ValidationError{
			Code:    code,
			Field:   fe.Field(),
			Message: fmt.Sprintf("failed on '%s' validation", fe.Tag()),
		}
		if code == domain.CodeConstraintViolation {
			ve.Rule = fe.Tag()
		}
		out = append(out, ve)
	}
	return out
}
