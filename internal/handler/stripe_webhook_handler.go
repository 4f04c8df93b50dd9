package handler

import (
	"errors"
	"io"
	"net/http"

	"trustdesk/config"
	"trustdesk/internal/domain"
	"trustdesk/internal/models"
	"trustdesk/internal/repository"
	"trustdesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type StripeWebhookHandler struct {
	reconciler *service.ReconcileService
	auditRepo  *repository.AuditLogRepository
	cfg        *config.StripeConfig
}

func NewStripeWebhookHandler(reconciler *service.ReconcileService, auditRepo *repository.AuditLogRepository, cfg *config.StripeConfig) *StripeWebhookHandler {
	return &StripeWebhookHandler{reconciler: reconciler, auditRepo: auditRepo, cfg: cfg}
}

// Handle verifies and reconciles one webhook delivery. The body must be read
// raw before any parsing: the signature covers the exact bytes on the wire.
// A recognized event that fails to persist answers 500 so the gateway
// redelivers; the reconciler's idempotency makes that retry safe.
func (h *StripeWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	event, err := service.VerifyAndParse(body, c.GetHeader("Stripe-Signature"), h.cfg.WebhookSecret)
	if err != nil {
		if errors.Is(err, domain.ErrSignature) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	result, err := h.reconciler.Reconcile(event)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownEvent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event type"})
			return
		}
		logrus.WithError(err).Error("webhook reconciliation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reconciliation failed"})
		return
	}

	if h.auditRepo != nil {
		_ = h.auditRepo.Create(&models.AuditLog{
			Action:     "webhook_reconciled",
			Resource:   "payment",
			ResourceID: result.Kind,
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		})
	}
	c.JSON(http.StatusOK, gin.H{})
}
