package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/itinerary-engine/internal/pkg/errors"
	"github.com/itinerary-engine/internal/pkg/validator"
)

type sampleRequest struct {
	CityID int64  `validate:"required,gt=0"`
	Pace   string `validate:"required,oneof=relaxed normal packed"`
}

func TestValidate(t *testing.T) {
	t.Run("valid struct passes", func(t *testing.T) {
		err := validator.Validate(&sampleRequest{CityID: 1, Pace: "normal"})
		assert.NoError(t, err)
	})

	t.Run("failure maps to invalid input with field details", func(t *testing.T) {
		err := validator.Validate(&sampleRequest{Pace: "sprint"})

		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

		appErr, ok := err.(*apperrors.AppError)
		assert.True(t, ok)
		assert.Equal(t, 400, appErr.StatusCode)
		assert.Equal(t, "required", appErr.Details["CityID"])
		assert.Equal(t, "oneof", appErr.Details["Pace"])
	})
}
