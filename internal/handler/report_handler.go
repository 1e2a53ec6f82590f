package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/dto"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/export"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/middleware"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/service"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler exposes aggregation and export endpoints.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler constructs a report handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register wires report routes. Every report is scoped by the actor's role
// inside the service; the comparison and bulk exports are leadership-only.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/", h.summary)
	router.Get("/period", h.period)
	router.Get("/export", h.exportSummary)
	router.Get("/departments", middleware.RequireLeadership(), h.departments)
	router.Get("/departments/:id/bulk", middleware.RequireLeadership(), h.bulk)
	router.Get("/departments/:id/export", middleware.RequireLeadership(), h.exportBulk)
}

func (h *ReportHandler) summary(c *fiber.Ctx) error {
	req, err := reportRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	result, err := h.service.BuildReport(c.Context(), actorFromContext(c), req)
	if err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "report generated", result)
}

func (h *ReportHandler) period(c *fiber.Ctx) error {
	req, err := reportRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	result, err := h.service.PeriodReport(c.Context(), actorFromContext(c), req, c.Query("period"))
	if err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "period report generated", result)
}

func (h *ReportHandler) departments(c *fiber.Ctx) error {
	req, err := reportRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	result, err := h.service.DepartmentComparison(c.Context(), actorFromContext(c), req)
	if err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "department comparison generated", result)
}

func (h *ReportHandler) bulk(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid department id")
	}

	result, err := h.service.BulkDepartmentReport(c.Context(), actorFromContext(c), id)
	if err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "bulk report generated", result)
}

func (h *ReportHandler) exportSummary(c *fiber.Ctx) error {
	req, err := reportRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	result, err := h.service.BuildReport(c.Context(), actorFromContext(c), req)
	if err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	document, err := export.Report(result)
	if err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="achievements-report.xlsx"`)
	return c.Send(document)
}

func (h *ReportHandler) exportBulk(c *fiber.Ctx) error {
	id, err := parseParamID(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid department id")
	}

	result, err := h.service.BulkDepartmentReport(c.Context(), actorFromContext(c), id)
	if err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	document, err := export.BulkReport(result)
	if err != nil {
		return handleError(c, *requestLogger(h.logger, c), err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="department-%d-report.xlsx"`, id))
	return c.Send(document)
}

func reportRequest(c *fiber.Ctx) (dto.ReportRequest, error) {
	departmentID, err := parseQueryUintPtr(c, "department_id")
	if err != nil {
		return dto.ReportRequest{}, err
	}
	facultyID, err := parseQueryUintPtr(c, "faculty_id")
	if err != nil {
		return dto.ReportRequest{}, err
	}

	return dto.ReportRequest{
		From:         c.Query("from"),
		To:           c.Query("to"),
		Category:     c.Query("category"),
		DepartmentID: departmentID,
		FacultyID:    facultyID,
	}, nil
}
