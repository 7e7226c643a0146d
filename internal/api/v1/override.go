package v1

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roamfare/roamfare/internal/api/dto"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/logger"
	"github.com/roamfare/roamfare/internal/service"
	"github.com/roamfare/roamfare/internal/types"
)

// overrideTemplateCSV is the header agents fill in for a bulk import
const overrideTemplateCSV = "plan_id,retail_price\n"

// maxImportFileSize bounds uploaded CSV files to 10 MB
const maxImportFileSize = 10 << 20

type OverrideHandler struct {
	service       service.OverrideService
	importService service.BulkImportService
	logger        *logger.Logger
}

func NewOverrideHandler(
	service service.OverrideService,
	importService service.BulkImportService,
	logger *logger.Logger,
) *OverrideHandler {
	return &OverrideHandler{
		service:       service,
		importService: importService,
		logger:        logger,
	}
}

// @Summary Upsert an agent pricing override
// @Description Pin the retail price of one plan for one agent
// @Tags Overrides
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Agent ID"
// @Param override body dto.UpsertOverrideRequest true "Override to upsert"
// @Success 200 {object} dto.OverrideResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /agents/{id}/overrides [put]
func (h *OverrideHandler) UpsertOverride(c *gin.Context) {
	agentID := c.Param("id")
	if err := requireAdmin(c); err != nil {
		c.Error(err)
		return
	}

	var req dto.UpsertOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpsertOverride(c.Request.Context(), agentID, req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List an agent's pricing overrides
// @Description List every override for the agent
// @Tags Overrides
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Agent ID"
// @Success 200 {object} dto.ListOverridesResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /agents/{id}/overrides [get]
func (h *OverrideHandler) ListOverrides(c *gin.Context) {
	agentID := c.Param("id")
	if err := requireAgentAccess(c, agentID); err != nil {
		c.Error(err)
		return
	}

	resp, err := h.service.ListOverrides(c.Request.Context(), agentID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete an agent pricing override
// @Description Remove the override for one plan, falling back to rule pricing
// @Tags Overrides
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Agent ID"
// @Param plan_id path string true "Plan ID"
// @Success 204
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /agents/{id}/overrides/{plan_id} [delete]
func (h *OverrideHandler) DeleteOverride(c *gin.Context) {
	agentID := c.Param("id")
	if err := requireAdmin(c); err != nil {
		c.Error(err)
		return
	}

	if err := h.service.DeleteOverride(c.Request.Context(), agentID, c.Param("plan_id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Import agent pricing overrides from CSV
// @Description Replace the agent's entire override set with the uploaded file
// @Tags Overrides
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Agent ID"
// @Param file formData file true "CSV file"
// @Param dry_run query bool false "Validate without writing"
// @Success 200 {object} dto.ImportResult
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /agents/{id}/overrides/import [post]
func (h *OverrideHandler) ImportOverrides(c *gin.Context) {
	agentID := c.Param("id")
	if err := requireAdmin(c); err != nil {
		c.Error(err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("A CSV file is required in the 'file' form field").
			Mark(ierr.ErrValidation))
		return
	}
	if fileHeader.Size > maxImportFileSize {
		c.Error(ierr.NewError("file too large").
			WithHint("Import files are limited to 10 MB").
			Mark(ierr.ErrValidation))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("The uploaded file could not be read").
			Mark(ierr.ErrValidation))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		c.Error(ierr.WithError(err).
			WithHint("The uploaded file could not be read").
			Mark(ierr.ErrValidation))
		return
	}

	dryRun := c.Query("dry_run") == "true"
	result, err := h.importService.ImportOverrides(c.Request.Context(), agentID, content, dryRun)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Download the override import template
// @Description Returns the CSV header expected by the import endpoint
// @Tags Overrides
// @Produce text/csv
// @Security ApiKeyAuth
// @Success 200 {string} string
// @Router /agents/{id}/overrides/template [get]
func (h *OverrideHandler) DownloadTemplate(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="overrides_template.csv"`)
	c.Data(http.StatusOK, "text/csv", []byte(overrideTemplateCSV))
}

func requireAdmin(c *gin.Context) error {
	if types.IsAdmin(c.Request.Context()) {
		return nil
	}
	return ierr.NewError("admin role required").
		WithHint("Only back-office users can manage overrides").
		Mark(ierr.ErrPermissionDenied)
}

func requireAgentAccess(c *gin.Context, agentID string) error {
	ctx := c.Request.Context()
	if types.IsAdmin(ctx) || types.GetAgentID(ctx) == agentID {
		return nil
	}
	return ierr.NewError("access denied to agent pricing").
		WithHintf("You are not allowed to view pricing for agent %s", agentID).
		Mark(ierr.ErrPermissionDenied)
}
