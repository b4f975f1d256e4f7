package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"flexio/internal/billing"
	"flexio/internal/domain"
	"flexio/internal/middleware"
	"flexio/internal/models"
	"flexio/internal/repository"
	"flexio/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// statusForReason maps billing outcomes to HTTP status codes.
func statusForReason(r billing.Reason) int {
	switch r {
	case "", billing.ReasonNoPaidMembers:
		return http.StatusOK
	case billing.ReasonInsufficientBalance:
		return http.StatusPaymentRequired
	case billing.ReasonAlreadyBilled, billing.ReasonBillingInProgress:
		return http.StatusConflict
	case billing.ReasonInvalidAmount:
		return http.StatusBadRequest
	}
	return http.StatusUnprocessableEntity
}

func writeResult(c *gin.Context, res *billing.Result) {
	c.JSON(statusForReason(res.Reason), res)
}

// writeError maps service errors to responses. Anything unrecognised is logged
// and reported as a generic 500.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrNotMember):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrGymNotFound), errors.Is(err, service.ErrOrderNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrAlreadyCheckedIn):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientPresence):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrInvalidCoordinate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPaymentNotVerified):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func gymIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("gym_id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gym id"})
		return 0, false
	}
	return uint(id), true
}

// gymAccess resolves the :gym_id route parameter and checks management rights.
type gymAccess struct {
	gyms   *repository.GymRepository
	logger *slog.Logger
}

// manageable loads the gym and aborts unless the caller is an admin or its owner.
func (a gymAccess) manageable(c *gin.Context) (*models.Gym, bool) {
	id, ok := gymIDParam(c)
	if !ok {
		return nil, false
	}
	gym, err := a.gyms.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, a.logger, err)
		return nil, false
	}
	if middleware.GetRole(c) != domain.RoleAdmin && gym.OwnerID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the owner of this gym"})
		return nil, false
	}
	return gym, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return fallback
	}
	return v
}
