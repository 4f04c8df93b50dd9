package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"trustdesk/internal/domain"
	"trustdesk/internal/middleware"
	"trustdesk/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	svc *service.PaymentService
}

func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// CreateSession starts a hosted checkout session and records the pending
// payment. The invoice is the correlation key later webhook events match on;
// one is generated when the caller does not supply it.
func (h *PaymentHandler) CreateSession(c *gin.Context) {
	var req struct {
		Amount           int64           `json:"amount"`
		PaymentMethod    string          `json:"paymentMethod"`
		SubscriptionInfo json.RawMessage `json:"subscriptionInfo"`
		Invoice          string          `json:"invoice"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Invoice == "" {
		req.Invoice = uuid.NewString()
	}
	sess, err := h.svc.CreateSession(c.Request.Context(), service.CreateSessionInput{
		UserID:           middleware.GetUserID(c),
		Amount:           req.Amount,
		PaymentMethod:    req.PaymentMethod,
		SubscriptionInfo: req.SubscriptionInfo,
		Invoice:          req.Invoice,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"sessionId":  sess.ID,
		"sessionUrl": sess.URL,
	})
}
