package router

import (
	"log/slog"

	"flexio/config"
	"flexio/internal/domain"
	"flexio/internal/handler"
	"flexio/internal/middleware"
	"flexio/internal/service"
	"flexio/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, svc *service.Services, hub *ws.Hub, gatherer prometheus.Gatherer, logger *slog.Logger) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)))

	healthHandler := handler.NewHealthHandler(db)
	billingHandler := handler.NewBillingHandler(svc.Billing, svc.Payments, svc.Gyms, logger)
	rewardHandler := handler.NewRewardHandler(svc.Rewards, svc.Presence, svc.Gyms, logger)
	webhookHandler := handler.NewPaymentWebhookHandler(svc.Payments, cfg.Payment.WebhookSecret, logger)

	r.GET("/healthz", healthHandler.Health)
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api/v1")
	api.POST("/webhooks/payment", webhookHandler.Handle)
	if hub != nil {
		api.GET("/gyms/:gym_id/feed", handler.NewFeedHandler(hub, &cfg.JWT, svc.Gyms, logger).Feed)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(&cfg.JWT))
	{
		authed.GET("/me/coins", rewardHandler.Coins)

		gym := authed.Group("/gyms/:gym_id")
		gym.GET("/rewards/preview", rewardHandler.Preview)
		gym.POST("/location", rewardHandler.RecordLocation)
		gym.GET("/presence", rewardHandler.Presence)
		gym.POST("/check-in", rewardHandler.CheckIn)

		manage := gym.Group("")
		manage.Use(middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin))
		manage.GET("/billing/snapshot", billingHandler.Snapshot)
		manage.POST("/billing/run", billingHandler.Run)
		manage.GET("/wallet/transactions", billingHandler.Transactions)
		manage.POST("/wallet/orders", billingHandler.CreateOrder)
		manage.GET("/rewards/settings", rewardHandler.Settings)
		manage.PUT("/rewards/settings", rewardHandler.UpdateSettings)
	}
	return r
}
