package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"flexio/internal/service"

	"github.com/gin-gonic/gin"
)

type PaymentWebhookHandler struct {
	payments *service.PaymentService
	secret   string
	logger   *slog.Logger
}

func NewPaymentWebhookHandler(payments *service.PaymentService, secret string, logger *slog.Logger) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{payments: payments, secret: secret, logger: logger}
}

// Handle expects JSON { "reference": "...", "status": "succeeded" } signed with
// a hex HMAC-SHA256 of the body in X-Webhook-Signature when a secret is set.
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if h.secret != "" && !VerifySignature(h.secret, body, c.GetHeader("X-Webhook-Signature")) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}
	var payload struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if payload.Reference == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reference required"})
		return
	}
	order, err := h.payments.Confirm(c.Request.Context(), payload.Reference, payload.Status)
	if errors.Is(err, service.ErrOrderNotFound) {
		h.logger.Warn("webhook for unknown payment", "reference", payload.Reference)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"received": true, "status": order.Status})
}

func VerifySignature(secret string, body []byte, signature string) bool {
	return hmac.Equal([]byte(signature), []byte(Sign(secret, body)))
}

func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
