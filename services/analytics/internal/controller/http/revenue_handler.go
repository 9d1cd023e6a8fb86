package http

import (
	"errors"
	"net/http"
	"strconv"

	"pool-fund/pkg/logger"
	"pool-fund/services/analytics/internal/entity"
	"pool-fund/services/analytics/internal/usecase"

	"github.com/gin-gonic/gin"
)

type RevenueHandler struct {
	revenueUseCase usecase.RevenueUseCase
	logger         *logger.Logger
}

func NewRevenueHandler(revenueUseCase usecase.RevenueUseCase, logger *logger.Logger) *RevenueHandler {
	return &RevenueHandler{
		revenueUseCase: revenueUseCase,
		logger:         logger,
	}
}

type AggregateRequest struct {
	Users []entity.UserSnapshot `json:"users" binding:"required"`
}

// GetRevenue godoc
// @Summary      Get platform revenue
// @Description  Monthly subscription, float and withdrawal-fee revenue over all users. Results are cached for five minutes unless refresh is set.
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        refresh  query  bool  false  "Bypass the cached rollup"
// @Success      200  {object}  usecase.RevenueReport
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /revenue [get]
func (h *RevenueHandler) GetRevenue(c *gin.Context) {
	refresh, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))

	report, err := h.revenueUseCase.GetRevenue(c.Request.Context(), refresh)
	if err != nil {
		h.logger.Error("Failed to get revenue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get revenue"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// AggregateRevenue godoc
// @Summary      Aggregate a user snapshot
// @Description  Rolls up revenue for a caller-supplied user population without touching storage
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  AggregateRequest  true  "User snapshot"
// @Success      200  {object}  entity.Revenue
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /revenue/aggregate [post]
func (h *RevenueHandler) AggregateRevenue(c *gin.Context) {
	var req AggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	revenue, err := h.revenueUseCase.AggregateSnapshot(req.Users)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidSnapshot) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to aggregate revenue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate revenue"})
		return
	}

	c.JSON(http.StatusOK, revenue)
}
