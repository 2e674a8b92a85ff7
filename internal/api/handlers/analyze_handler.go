package handlers

import (
	"context"
	"errors"
	"io"
	"mime/multipart"

	"statement-analyzer/internal/dto"
	"statement-analyzer/internal/models"
	"statement-analyzer/internal/service"
	"statement-analyzer/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	fileField    = "pdf"
	profileField = "profile"

	serverErrorMessage = "Server error processing PDF"
)

// StatementAnalyzer runs the analysis pipeline for one upload.
type StatementAnalyzer interface {
	Analyze(ctx context.Context, doc *models.UploadedDocument, profile string) (*dto.AnalysisResponse, error)
}

type AnalyzeHandler struct {
	analyzer StatementAnalyzer
	logger   *zap.Logger
}

func NewAnalyzeHandler(analyzer StatementAnalyzer, logger *zap.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		logger:   logger,
	}
}

// Analyze godoc
// @Summary Analyze a bank statement
// @Description Extract text from an uploaded PDF statement, summarize it with the completion service and, depending on the profile, list its transactions with per-category totals.
// @Tags analyze
// @Accept multipart/form-data
// @Produce json
// @Param pdf formData file true "Bank statement (application/pdf, up to 10 MB)"
// @Param profile formData string false "Analysis profile (statement, summary-gpt4, gigachat)"
// @Success 200 {object} dto.AnalysisResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 405 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ServerErrorResponse
// @Router /analyze [post]
func (h *AnalyzeHandler) Analyze(c *fiber.Ctx) error {
	var doc *models.UploadedDocument
	if fh, err := c.FormFile(fileField); err == nil {
		doc = uploadedDocument(fh)
	}

	resp, err := h.analyzer.Analyze(c.UserContext(), doc, c.FormValue(profileField))
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// MethodNotAllowed answers every non-POST request on the analyze route.
func (h *AnalyzeHandler) MethodNotAllowed(c *fiber.Ctx) error {
	c.Set(fiber.HeaderAllow, fiber.MethodPost)
	return c.Status(fiber.StatusMethodNotAllowed).JSON(dto.ErrorResponse{
		Error: "Method not allowed",
	})
}

func (h *AnalyzeHandler) respondError(c *fiber.Ctx, err error) error {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: vErr.Message,
		})
	}

	h.logger.Error("Failed to analyze statement",
		zap.String("request_id", middleware.RequestID(c)),
		zap.String("type", service.ErrorKind(err)),
		zap.Error(err),
	)

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ServerErrorResponse{
		Error:   serverErrorMessage,
		Message: err.Error(),
		Type:    service.ErrorKind(err),
	})
}

func uploadedDocument(fh *multipart.FileHeader) *models.UploadedDocument {
	return &models.UploadedDocument{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}
