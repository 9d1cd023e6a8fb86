package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"pool-fund/pkg/logger"
	"pool-fund/services/gamification/internal/entity"
	"pool-fund/services/gamification/internal/usecase"

	"github.com/gin-gonic/gin"
)

type GamificationHandler struct {
	streakUseCase       usecase.StreakUseCase
	milestoneUseCase    usecase.MilestoneUseCase
	badgeUseCase        usecase.BadgeUseCase
	contributionUseCase usecase.ContributionUseCase
	logger              *logger.Logger
}

func NewGamificationHandler(
	streakUseCase usecase.StreakUseCase,
	milestoneUseCase usecase.MilestoneUseCase,
	badgeUseCase usecase.BadgeUseCase,
	contributionUseCase usecase.ContributionUseCase,
	logger *logger.Logger,
) *GamificationHandler {
	return &GamificationHandler{
		streakUseCase:       streakUseCase,
		milestoneUseCase:    milestoneUseCase,
		badgeUseCase:        badgeUseCase,
		contributionUseCase: contributionUseCase,
		logger:              logger,
	}
}

type ActivityRequest struct {
	PoolID       *string `json:"pool_id"`
	ActivityDate string  `json:"activity_date"`
}

type CompleteContributionRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	PoolID       string `json:"pool_id" binding:"required"`
	ActivityDate string `json:"activity_date"`
}

type AwardBadgeRequest struct {
	UserID    string  `json:"user_id" binding:"required"`
	BadgeType string  `json:"badge_type" binding:"required"`
	BadgeName string  `json:"badge_name" binding:"required"`
	PoolID    *string `json:"pool_id"`
}

// CompleteContribution godoc
// @Summary      Run the contribution pipeline
// @Description  Advances pool and global streaks and checks pool milestones (admin only)
// @Tags         gamification
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CompleteContributionRequest true "Contribution"
// @Success      200  {object}  entity.ContributionResult
// @Failure      400  {object}  map[string]string
// @Router       /contributions/complete [post]
func (h *GamificationHandler) CompleteContribution(c *gin.Context) {
	var req CompleteContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activityDate, ok := parseActivityDate(c, req.ActivityDate)
	if !ok {
		return
	}

	result, err := h.contributionUseCase.CompleteContribution(c.Request.Context(), req.UserID, req.PoolID, activityDate)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RecordActivity godoc
// @Summary      Record streak activity
// @Description  Records activity for the caller on a pool (or globally when pool_id is omitted)
// @Tags         streaks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ActivityRequest true "Activity"
// @Success      200  {object}  entity.StreakSnapshot
// @Failure      400  {object}  map[string]string
// @Router       /streaks/activity [post]
func (h *GamificationHandler) RecordActivity(c *gin.Context) {
	userID := c.GetString("user_id")

	var req ActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activityDate, ok := parseActivityDate(c, req.ActivityDate)
	if !ok {
		return
	}

	snapshot, err := h.streakUseCase.RecordActivity(c.Request.Context(), userID, normalizePool(req.PoolID), activityDate)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetStreaks godoc
// @Summary      Get streaks
// @Description  Streak for one pool when pool_id is given, otherwise every streak of the caller
// @Tags         streaks
// @Produce      json
// @Security     BearerAuth
// @Param        pool_id  query  string  false  "Pool ID, or \"global\""
// @Success      200  {object}  map[string]interface{}
// @Router       /streaks [get]
func (h *GamificationHandler) GetStreaks(c *gin.Context) {
	userID := c.GetString("user_id")

	if poolParam, ok := c.GetQuery("pool_id"); ok {
		var poolID *string
		if poolParam != "global" {
			poolID = normalizePool(&poolParam)
		}
		snapshot, err := h.streakUseCase.GetStreak(c.Request.Context(), userID, poolID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, snapshot)
		return
	}

	streaks, err := h.streakUseCase.ListStreaks(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"streaks": streaks})
}

// CheckMilestones godoc
// @Summary      Check pool milestones
// @Description  Records newly reached milestones; the caller is credited for them
// @Tags         milestones
// @Produce      json
// @Security     BearerAuth
// @Param        pool_id  path  string  true  "Pool ID"
// @Success      200  {object}  entity.MilestoneCheck
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /pools/{pool_id}/milestones/check [post]
func (h *GamificationHandler) CheckMilestones(c *gin.Context) {
	userID := c.GetString("user_id")
	poolID := c.Param("pool_id")

	check, err := h.milestoneUseCase.CheckMilestones(c.Request.Context(), poolID, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, check)
}

// GetMilestones godoc
// @Summary      List pool milestones
// @Tags         milestones
// @Produce      json
// @Security     BearerAuth
// @Param        pool_id  path  string  true  "Pool ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /pools/{pool_id}/milestones [get]
func (h *GamificationHandler) GetMilestones(c *gin.Context) {
	poolID := c.Param("pool_id")

	milestones, err := h.milestoneUseCase.ListMilestones(c.Request.Context(), poolID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pool_id": poolID, "milestones": milestones})
}

// GetBadges godoc
// @Summary      List my badges
// @Tags         badges
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /badges [get]
func (h *GamificationHandler) GetBadges(c *gin.Context) {
	userID := c.GetString("user_id")

	badges, err := h.badgeUseCase.ListBadges(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": badges, "count": len(badges)})
}

// CheckBadge godoc
// @Summary      Does the caller hold a badge
// @Tags         badges
// @Produce      json
// @Security     BearerAuth
// @Param        badge_type  query  string  true   "Badge type"
// @Param        badge_name  query  string  true   "Badge name"
// @Param        pool_id     query  string  false  "Pool ID"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  map[string]string
// @Router       /badges/check [get]
func (h *GamificationHandler) CheckBadge(c *gin.Context) {
	userID := c.GetString("user_id")
	badgeType := c.Query("badge_type")
	badgeName := c.Query("badge_name")
	if badgeType == "" || badgeName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "badge_type and badge_name are required"})
		return
	}
	poolParam := c.Query("pool_id")

	has, err := h.badgeUseCase.HasBadge(c.Request.Context(), userID, badgeType, badgeName, normalizePool(&poolParam))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"has_badge": has})
}

// AwardBadge godoc
// @Summary      Award a badge
// @Description  Grants a badge once per (user, type, name, pool) (admin only)
// @Tags         badges
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AwardBadgeRequest true "Badge"
// @Success      200  {object}  entity.AwardResult
// @Failure      400  {object}  map[string]string
// @Router       /badges [post]
func (h *GamificationHandler) AwardBadge(c *gin.Context) {
	var req AwardBadgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.badgeUseCase.Award(c.Request.Context(), req.UserID, req.BadgeType, req.BadgeName, normalizePool(req.PoolID))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *GamificationHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrGoalUndefined),
		errors.Is(err, usecase.ErrInvalidBadge),
		errors.Is(err, usecase.ErrInvalidUser),
		errors.Is(err, usecase.ErrInvalidContribution):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrPoolNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Gamification request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// parseActivityDate defaults to today (UTC) and writes a 400 on a bad date.
func parseActivityDate(c *gin.Context, raw string) (time.Time, bool) {
	if raw == "" {
		return entity.DateOf(time.Now().UTC()), true
	}
	date, err := entity.ParseDate(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activity_date must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

func normalizePool(poolID *string) *string {
	if poolID == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*poolID)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
