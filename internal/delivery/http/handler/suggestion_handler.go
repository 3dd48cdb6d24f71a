package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/itinerary-engine/internal/pkg/utils"
	"github.com/itinerary-engine/internal/pkg/validator"
	"github.com/itinerary-engine/internal/usecase"
	"github.com/itinerary-engine/internal/usecase/dto"
	"go.uber.org/zap"
)

// SuggestionHandler exposes replacement suggestions for a stop the
// user wants to swap out.
type SuggestionHandler struct {
	suggestionUC *usecase.SuggestionUseCase
	logger       *zap.Logger
}

func NewSuggestionHandler(suggestionUC *usecase.SuggestionUseCase, logger *zap.Logger) *SuggestionHandler {
	return &SuggestionHandler{
		suggestionUC: suggestionUC,
		logger:       logger,
	}
}

// Suggest godoc
// @Summary Suggest replacement destinations
// @Tags destinations
// @Accept json
// @Produce json
// @Param request body dto.SuggestReplacementRequest true "Replacement context"
// @Success 200 {object} dto.SuggestReplacementResponse
// @Router /api/v1/destinations/suggest [post]
func (h *SuggestionHandler) Suggest(c *fiber.Ctx) error {
	var req dto.SuggestReplacementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.suggestionUC.Suggest(c.Context(), req)
	if err != nil {
		h.logger.Error("Suggest failed", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Suggestions),
	})
}
