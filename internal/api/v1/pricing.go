package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roamfare/roamfare/internal/api/dto"
	ierr "github.com/roamfare/roamfare/internal/errors"
	"github.com/roamfare/roamfare/internal/logger"
	"github.com/roamfare/roamfare/internal/service"
)

type PricingHandler struct {
	service service.PricingService
	logger  *logger.Logger
}

func NewPricingHandler(service service.PricingService, logger *logger.Logger) *PricingHandler {
	return &PricingHandler{
		service: service,
		logger:  logger,
	}
}

// @Summary Calculate a retail price
// @Description Resolve one wholesale price through overrides, rules and fallbacks
// @Tags Pricing
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.CalculatePriceRequest true "Price calculation request"
// @Success 200 {object} dto.PriceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /pricing/calculate [post]
func (h *PricingHandler) CalculatePrice(c *gin.Context) {
	var req dto.CalculatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CalculatePrice(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Calculate retail prices for a list of plans
// @Description Price a list of plans for one agent in a single call
// @Tags Pricing
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.BatchPriceRequest true "Batch price request"
// @Success 200 {object} dto.BatchPriceResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 403 {object} ierr.ErrorResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /pricing/batch [post]
func (h *PricingHandler) CalculateBatch(c *gin.Context) {
	var req dto.BatchPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CalculateBatch(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
