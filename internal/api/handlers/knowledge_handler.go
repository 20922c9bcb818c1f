package handlers

import (
	"io"
	"net/url"
	"time"

	"lob-summary/internal/dto"
	"lob-summary/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type KnowledgeHandler struct {
	summaryService *service.SummaryService
	logger         *zap.Logger
}

func NewKnowledgeHandler(summaryService *service.SummaryService, logger *zap.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{
		summaryService: summaryService,
		logger:         logger,
	}
}

// IssueTypes godoc
// @Summary List issue types
// @Description List every issue type in the active knowledge base along with its entries
// @Tags knowledge
// @Produce json
// @Success 200 {object} dto.IssueTypesResponse
// @Router /api/issue-types [get]
func (h *KnowledgeHandler) IssueTypes(c *fiber.Ctx) error {
	issueTypes, kb := h.summaryService.IssueTypes()

	entries := make(map[string]dto.IssueEntry, kb.Len())
	for _, rec := range kb.Records() {
		entries[rec.IssueType] = dto.IssueEntry{
			VOCExamples: nonNil(rec.VOCExamples),
			Resolutions: rec.ResolutionMap(),
			SOPDetails:  rec.SOPDetails,
		}
	}

	return c.JSON(dto.IssueTypesResponse{
		IssueTypes:    nonNil(issueTypes),
		KnowledgeBase: entries,
	})
}

// Info godoc
// @Summary Knowledge base info
// @Description Describe the loaded knowledge source
// @Tags knowledge
// @Produce json
// @Success 200 {object} dto.CSVInfoResponse
// @Router /api/csv-info [get]
func (h *KnowledgeHandler) Info(c *fiber.Ctx) error {
	return c.JSON(infoResponse(h.summaryService))
}

// Validate godoc
// @Summary Validate an issue type
// @Description Report whether an issue type exists and what it resolves to
// @Tags knowledge
// @Produce json
// @Param issueType path string true "Issue type"
// @Success 200 {object} dto.ValidateResponse
// @Router /api/validate/{issueType} [get]
func (h *KnowledgeHandler) Validate(c *fiber.Ctx) error {
	issueType, err := url.PathUnescape(c.Params("issueType"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid issue type",
		})
	}

	result := h.summaryService.Validate(issueType)
	return c.JSON(dto.ValidateResponse{
		IssueType:   result.IssueType,
		Exists:      result.Exists,
		VOCExamples: result.VOCExamples,
		Resolutions: result.Resolutions,
		SOPDetails:  result.SOPDetails,
		Suggestions: result.Suggestions,
	})
}

// Upload godoc
// @Summary Upload a knowledge sheet
// @Description Replace the knowledge base with an uploaded CSV or XLSX file
// @Tags knowledge
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Knowledge sheet (.csv or .xlsx)"
// @Security Bearer
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /api/upload-csv [post]
func (h *KnowledgeHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read file",
		})
	}

	info, err := h.summaryService.Upload(c.UserContext(), file.Filename, content)
	if err != nil {
		return respondError(c, h.logger, "Knowledge upload", err)
	}

	h.logger.Info("Knowledge sheet uploaded",
		zap.String("file_name", file.Filename),
		zap.Int("issue_types", info.TotalIssueTypes),
	)
	return c.JSON(dto.UploadResponse{
		Message:         "CSV uploaded and loaded successfully",
		CSVFile:         info.Source,
		TotalIssueTypes: info.TotalIssueTypes,
	})
}

func infoResponse(s *service.SummaryService) dto.CSVInfoResponse {
	info := s.Info()
	resp := dto.CSVInfoResponse{
		TotalIssueTypes: info.TotalIssueTypes,
		CSVFile:         info.Source,
		Checksum:        info.Checksum,
		IssueTypes:      nonNil(info.IssueTypes),
		Status:          info.Status,
	}
	if !info.LoadedAt.IsZero() {
		resp.LoadedAt = info.LoadedAt.Format(time.RFC3339)
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
