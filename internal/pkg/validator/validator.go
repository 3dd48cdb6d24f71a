package validator

import (
	"github.com/go-playground/validator/v10"

	apperrors "github.com/itinerary-engine/internal/pkg/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate runs struct-tag validation on s. Failures are returned as an
// invalid-input application error carrying the failed field tags, so
// callers surface them as 400 rather than an internal error.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	fields := make(map[string]interface{})
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
	}
	return apperrors.ErrInvalidInput.WithDetails(fields)
}

// GetValidator exposes the underlying validator for custom configuration.
func GetValidator() *validator.Validate {
	return validate
}
