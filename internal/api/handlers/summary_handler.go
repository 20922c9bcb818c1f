package handlers

import (
	"lob-summary/internal/dto"
	"lob-summary/internal/models"
	"lob-summary/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SummaryHandler struct {
	summaryService *service.SummaryService
	logger         *zap.Logger
}

func NewSummaryHandler(summaryService *service.SummaryService, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
		logger:         logger,
	}
}

// Generate godoc
// @Summary Generate a LOB summary
// @Description Classify the customer statement, pick the resolution and render the LOB summary
// @Tags summary
// @Accept json
// @Produce json
// @Param request body dto.GenerateRequest true "Generation request"
// @Success 200 {object} dto.GenerateResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /generate [post]
func (h *SummaryHandler) Generate(c *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.summaryService.Generate(models.GenerationRequest{
		IssueType:      req.IssueType,
		VOC:            req.VOC,
		StockAvailable: string(req.StockAvailable),
		FollowUpDate:   req.FollowUpDate,
		DPSMCall:       req.DPSMCall,
		Tier:           models.Tier(req.Tier),
	})
	if err != nil {
		return respondError(c, h.logger, "Summary generation", err)
	}

	resp := dto.GenerateResponse{Summary: result.Summary}
	if result.MatchedIssueType != "" {
		resp.CSVValidation = &dto.CSVValidation{
			MatchedIssueType:    result.MatchedIssueType,
			SuggestedResolution: result.SuggestedResolution,
			SOPDetails:          result.SOPDetails,
			VOCExamples:         result.VOCExamples,
			MatchScore:          result.Match.Score,
		}
	}
	return c.JSON(resp)
}
