package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/permproof/permproof/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate validates the configuration
func Validate(config *Config) error {
	if config == nil {
		return errors.New(errors.ErrConfigInvalid, "configuration is nil")
	}

	if err := validate.Struct(config); err != nil {
		return formatValidationError(err)
	}

	if config.Endpoint != nil && config.Endpoint.AccessKeyID != "" && config.Endpoint.SecretAccessKey == "" {
		return errors.New(
			errors.ErrConfigMissingField,
			"endpoint access_key_id is set without secret_access_key",
		)
	}

	return nil
}

// formatValidationError formats validator errors into application errors
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(
			errors.ErrValidationFailed,
			err,
			"validation failed",
		)
	}

	// Get the first validation error for simplicity
	if len(validationErrs) > 0 {
		fieldErr := validationErrs[0]
		return errors.New(
			errors.ErrValidationFailed,
			fmt.Sprintf("validation failed for field '%s'", fieldErr.Field()),
		).WithField("field", fieldErr.Field()).
			WithField("tag", fieldErr.Tag())
	}

	return errors.New(errors.ErrValidationFailed, "validation failed")
}
