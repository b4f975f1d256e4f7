package handler

import (
	"log/slog"
	"net/http"
	"time"

	"flexio/internal/middleware"
	"flexio/internal/repository"
	"flexio/internal/service"
	"flexio/internal/streak"

	"github.com/gin-gonic/gin"
)

type RewardHandler struct {
	rewards  *service.RewardService
	presence *service.PresenceService
	access   gymAccess
	logger   *slog.Logger
}

func NewRewardHandler(rewards *service.RewardService, presence *service.PresenceService, gyms *repository.GymRepository, logger *slog.Logger) *RewardHandler {
	return &RewardHandler{
		rewards:  rewards,
		presence: presence,
		access:   gymAccess{gyms: gyms, logger: logger},
		logger:   logger,
	}
}

func (h *RewardHandler) Settings(c *gin.Context) {
	gym, ok := h.access.manageable(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.rewards.Settings(c.Request.Context(), gym.ID))
}

// UpdateSettings merges the given fields into the gym's reward settings.
func (h *RewardHandler) UpdateSettings(c *gin.Context) {
	gym, ok := h.access.manageable(c)
	if !ok {
		return
	}
	var o streak.Override
	if err := c.ShouldBindJSON(&o); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	settings, err := h.rewards.UpdateSettings(c.Request.Context(), gym.ID, o)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *RewardHandler) Preview(c *gin.Context) {
	gymID, ok := gymIDParam(c)
	if !ok {
		return
	}
	day := queryInt(c, "streak_day", 1)
	c.JSON(http.StatusOK, h.rewards.Preview(c.Request.Context(), gymID, day))
}

func (h *RewardHandler) CheckIn(c *gin.Context) {
	gymID, ok := gymIDParam(c)
	if !ok {
		return
	}
	res, err := h.rewards.CheckIn(c.Request.Context(), middleware.GetUserID(c), gymID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *RewardHandler) RecordLocation(c *gin.Context) {
	gymID, ok := gymIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Latitude       *float64   `json:"latitude" binding:"required"`
		Longitude      *float64   `json:"longitude" binding:"required"`
		AccuracyMeters float64    `json:"accuracy_meters"`
		RecordedAt     *time.Time `json:"recorded_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var at time.Time
	if req.RecordedAt != nil {
		at = *req.RecordedAt
	}
	sample, err := h.presence.RecordLocation(c.Request.Context(), middleware.GetUserID(c), gymID,
		*req.Latitude, *req.Longitude, req.AccuracyMeters, at)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, sample)
}

// Presence reports continuous presence over the trailing window (minutes, default 180).
func (h *RewardHandler) Presence(c *gin.Context) {
	gymID, ok := gymIDParam(c)
	if !ok {
		return
	}
	window := time.Duration(queryInt(c, "minutes", 180)) * time.Minute
	to := time.Now()
	p, err := h.presence.Presence(c.Request.Context(), middleware.GetUserID(c), gymID, to.Add(-window), to)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *RewardHandler) Coins(c *gin.Context) {
	balance, history, err := h.rewards.Coins(c.Request.Context(), middleware.GetUserID(c), queryInt(c, "limit", 50))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coin_balance": balance, "transactions": history})
}
