package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roamfare/roamfare/internal/api/dto"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/logger"
	"github.com/roamfare/roamfare/internal/service"
)

type PricingRuleHandler struct {
	service service.PricingRuleService
	logger  *logger.Logger
}

func NewPricingRuleHandler(service service.PricingRuleService, logger *logger.Logger) *PricingRuleHandler {
	return &PricingRuleHandler{
		service: service,
		logger:  logger,
	}
}

// @Summary Create a pricing rule
// @Description Create a pricing rule
// @Tags Pricing Rules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param rule body dto.CreatePricingRuleRequest true "Pricing rule to create"
// @Success 201 {object} dto.PricingRuleResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /pricing/rules [post]
func (h *PricingRuleHandler) CreatePricingRule(c *gin.Context) {
	var req dto.CreatePricingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreatePricingRule(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a pricing rule
// @Description Get a pricing rule by id
// @Tags Pricing Rules
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Pricing rule ID"
// @Success 200 {object} dto.PricingRuleResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /pricing/rules/{id} [get]
func (h *PricingRuleHandler) GetPricingRule(c *gin.Context) {
	resp, err := h.service.GetPricingRule(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List active pricing rules
// @Description List all active pricing rules
// @Tags Pricing Rules
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.ListPricingRulesResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /pricing/rules [get]
func (h *PricingRuleHandler) ListPricingRules(c *gin.Context) {
	resp, err := h.service.ListPricingRules(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a pricing rule
// @Description Update a pricing rule's markup, priority or active flag
// @Tags Pricing Rules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Pricing rule ID"
// @Param rule body dto.UpdatePricingRuleRequest true "Fields to update"
// @Success 200 {object} dto.PricingRuleResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /pricing/rules/{id} [put]
func (h *PricingRuleHandler) UpdatePricingRule(c *gin.Context) {
	var req dto.UpdatePricingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdatePricingRule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a pricing rule
// @Description Soft delete a pricing rule
// @Tags Pricing Rules
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Pricing rule ID"
// @Success 204
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /pricing/rules/{id} [delete]
func (h *PricingRuleHandler) DeletePricingRule(c *gin.Context) {
	if err := h.service.DeletePricingRule(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
