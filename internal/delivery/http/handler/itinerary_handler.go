package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/itinerary-engine/internal/pkg/utils"
	"github.com/itinerary-engine/internal/pkg/validator"
	"github.com/itinerary-engine/internal/usecase"
	"github.com/itinerary-engine/internal/usecase/dto"
	"go.uber.org/zap"
)

// ItineraryHandler exposes the generation, regeneration, reorder and
// budget endpoints.
type ItineraryHandler struct {
	generateUC  *usecase.GenerateUseCase
	reorderUC   *usecase.ReorderUseCase
	budgetUC    *usecase.BudgetUseCase
	itineraryUC *usecase.ItineraryUseCase
	logger      *zap.Logger
}

func NewItineraryHandler(
	generateUC *usecase.GenerateUseCase,
	reorderUC *usecase.ReorderUseCase,
	budgetUC *usecase.BudgetUseCase,
	itineraryUC *usecase.ItineraryUseCase,
	logger *zap.Logger,
) *ItineraryHandler {
	return &ItineraryHandler{
		generateUC:  generateUC,
		reorderUC:   reorderUC,
		budgetUC:    budgetUC,
		itineraryUC: itineraryUC,
		logger:      logger,
	}
}

// Generate godoc
// @Summary Generate a multi-day itinerary
// @Tags itineraries
// @Accept json
// @Produce json
// @Param request body dto.GeneratePlanRequest true "Trip preferences"
// @Success 200 {object} dto.GeneratePlanResponse
// @Router /api/v1/itineraries/generate [post]
func (h *ItineraryHandler) Generate(c *fiber.Ctx) error {
	userID, err := userIDFromRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.GeneratePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Info("Generate request",
		zap.Int64("city_id", req.CityID),
		zap.String("priority", req.Priority),
		zap.Int("pax", req.TotalPaxCount))

	result, err := h.generateUC.Generate(c.Context(), userID, req)
	if err != nil {
		h.logger.Error("Generate failed", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Days),
	})
}

// RegenerateDay godoc
// @Summary Rebuild a single day of an itinerary
// @Tags itineraries
// @Accept json
// @Produce json
// @Param id path string true "Itinerary ID"
// @Param request body dto.RegenerateDayRequest true "Day preferences"
// @Success 200 {object} dto.RegenerateDayResponse
// @Router /api/v1/itineraries/{id}/regenerate-day [post]
func (h *ItineraryHandler) RegenerateDay(c *fiber.Ctx) error {
	userID, err := userIDFromRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	itineraryID, err := itineraryIDFromParams(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.RegenerateDayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.generateUC.RegenerateDay(c.Context(), userID, itineraryID, req)
	if err != nil {
		h.logger.Error("RegenerateDay failed", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Day.Items),
	})
}

// Reorder godoc
// @Summary Apply a manual reorder and recalculate legs and budget
// @Tags itineraries
// @Accept json
// @Produce json
// @Param id path string true "Itinerary ID"
// @Param request body dto.ReorderRequest true "New ordering"
// @Success 200 {object} dto.ReorderResponse
// @Router /api/v1/itineraries/{id}/reorder [post]
func (h *ItineraryHandler) Reorder(c *fiber.Ctx) error {
	userID, err := userIDFromRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	itineraryID, err := itineraryIDFromParams(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.ReorderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.reorderUC.Reorder(c.Context(), userID, itineraryID, req)
	if err != nil {
		h.logger.Error("Reorder failed", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Items),
	})
}

// GetBudget godoc
// @Summary Get the cost breakdown of an itinerary
// @Tags itineraries
// @Produce json
// @Param id path string true "Itinerary ID"
// @Success 200 {object} domain.BudgetBreakdown
// @Router /api/v1/itineraries/{id}/budget [get]
func (h *ItineraryHandler) GetBudget(c *fiber.Ctx) error {
	userID, err := userIDFromRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	itineraryID, err := itineraryIDFromParams(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.budgetUC.Breakdown(c.Context(), userID, itineraryID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// Get godoc
// @Summary Get an itinerary with its items
// @Tags itineraries
// @Produce json
// @Param id path string true "Itinerary ID"
// @Success 200 {object} dto.ItineraryResponse
// @Router /api/v1/itineraries/{id} [get]
func (h *ItineraryHandler) Get(c *fiber.Ctx) error {
	userID, err := userIDFromRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	itineraryID, err := itineraryIDFromParams(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.itineraryUC.Get(c.Context(), userID, itineraryID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result.Items),
	})
}

// Delete godoc
// @Summary Delete an itinerary
// @Tags itineraries
// @Param id path string true "Itinerary ID"
// @Success 204
// @Router /api/v1/itineraries/{id} [delete]
func (h *ItineraryHandler) Delete(c *fiber.Ctx) error {
	userID, err := userIDFromRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	itineraryID, err := itineraryIDFromParams(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.itineraryUC.Delete(c.Context(), userID, itineraryID); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
