package utils_test

import (
	"testing"

	"github.com/itinerary-engine/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestHaversineKm(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		d := utils.HaversineKm(-6.9175, 107.6191, -6.9175, 107.6191)
		assert.Equal(t, 0.0, d)
	})

	t.Run("symmetric", func(t *testing.T) {
		d1 := utils.HaversineKm(-6.7597, 107.6098, -6.8103, 107.6176)
		d2 := utils.HaversineKm(-6.8103, 107.6176, -6.7597, 107.6098)
		assert.Equal(t, d1, d2)
	})

	t.Run("known pair in the Bandung area", func(t *testing.T) {
		// Tangkuban Perahu to Farmhouse Lembang, roughly 5.6 km.
		d := utils.HaversineKm(-6.7597, 107.6098, -6.8103, 107.6176)
		assert.Greater(t, d, 5.0)
		assert.Less(t, d, 7.0)
	})

	t.Run("rounded to two decimals", func(t *testing.T) {
		d := utils.HaversineKm(-6.7597, 107.6098, -6.8103, 107.6176)
		assert.Equal(t, utils.Round2(d), d)
	})
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, utils.Round2(1.23456))
	assert.Equal(t, 1.24, utils.Round2(1.235))
	assert.Equal(t, 0.0, utils.Round2(0.001))
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, utils.ValidateCoordinates(-6.9175, 107.6191))
	assert.True(t, utils.ValidateCoordinates(90, 180))
	assert.True(t, utils.ValidateCoordinates(-90, -180))
	assert.False(t, utils.ValidateCoordinates(91, 0))
	assert.False(t, utils.ValidateCoordinates(0, 181))
	assert.False(t, utils.ValidateCoordinates(-91, 0))
}
