package handler

import (
	"log/slog"
	"net/http"

	"flexio/internal/middleware"
	"flexio/internal/repository"
	"flexio/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BillingHandler struct {
	billing  *service.BillingService
	payments *service.PaymentService
	access   gymAccess
	logger   *slog.Logger
}

func NewBillingHandler(billingSvc *service.BillingService, payments *service.PaymentService, gyms *repository.GymRepository, logger *slog.Logger) *BillingHandler {
	return &BillingHandler{
		billing:  billingSvc,
		payments: payments,
		access:   gymAccess{gyms: gyms, logger: logger},
		logger:   logger,
	}
}

func (h *BillingHandler) Snapshot(c *gin.Context) {
	gym, ok := h.access.manageable(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	snap, err := h.billing.ComputeSnapshot(ctx, gym.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	last, err := h.billing.LastBillingDate(ctx, gym.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"snapshot":          snap,
		"can_cover":         snap.CanCover(),
		"last_billing_date": last,
	})
}

func (h *BillingHandler) Run(c *gin.Context) {
	gym, ok := h.access.manageable(c)
	if !ok {
		return
	}
	res, err := h.billing.ProcessMonthlyBilling(c.Request.Context(), gym.ID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	writeResult(c, res)
}

func (h *BillingHandler) Transactions(c *gin.Context) {
	gym, ok := h.access.manageable(c)
	if !ok {
		return
	}
	list, err := h.billing.ListTransactions(c.Request.Context(), gym.ID, queryInt(c, "limit", 50))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": list})
}

// CreateOrder starts a wallet top-up with the payment provider.
func (h *BillingHandler) CreateOrder(c *gin.Context) {
	gym, ok := h.access.manageable(c)
	if !ok {
		return
	}
	var req struct {
		Amount         decimal.Decimal `json:"amount"`
		IdempotencyKey string          `json:"idempotency_key"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if key := c.GetHeader("Idempotency-Key"); key != "" && req.IdempotencyKey == "" {
		req.IdempotencyKey = key
	}
	order, err := h.payments.CreateOrder(c.Request.Context(), gym.ID, middleware.GetUserID(c), req.Amount, req.IdempotencyKey)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}
