package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator validates configuration values using go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a configuration validator with the custom model
// identifier rule registered.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterValidation("model_id", validateModelID)
	return &Validator{validate: v}
}

// Validate checks a complete configuration and returns the first violation.
func (v *Validator) Validate(config *Config) error {
	if err := v.validate.Struct(config); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			e := validationErrors[0]
			if e.Tag() == "model_id" {
				return validateModelString(config.Model)
			}
			return fmt.Errorf("configuration field %s: validation failed on %q with value %v", e.Field(), e.Tag(), e.Value())
		}
		return err
	}
	return nil
}

// validateModelID accepts "provider::model" identifiers or bare model names.
func validateModelID(fl validator.FieldLevel) bool {
	return validateModelString(fl.Field().String()) == nil
}

func validateModelString(model string) error {
	if model == "" {
		return fmt.Errorf("configuration field Model: must not be empty")
	}
	if strings.Contains(model, "::") {
		parts := strings.SplitN(model, "::", 2)
		if parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("configuration field Model: %q is not a valid provider::model identifier", model)
		}
	}
	return nil
}
