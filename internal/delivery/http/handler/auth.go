package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/itinerary-engine/internal/pkg/errors"
)

// userIDHeader carries the authenticated user id. Authentication itself
// happens upstream; this service only checks ownership against it.
const userIDHeader = "X-User-ID"

func userIDFromRequest(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Get(userIDHeader)
	if raw == "" {
		return uuid.Nil, errors.ErrInvalidInput.WithDetails(map[string]interface{}{
			"header": userIDHeader,
			"reason": "missing user id",
		})
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.ErrInvalidInput.WithDetails(map[string]interface{}{
			"header": userIDHeader,
			"reason": "malformed user id",
		})
	}
	return id, nil
}

func itineraryIDFromParams(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidInput.WithDetails(map[string]interface{}{
			"param":  "id",
			"reason": "malformed itinerary id",
		})
	}
	return id, nil
}
