package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"trustdesk/config"
	"trustdesk/internal/domain"
	"trustdesk/internal/models"
	"trustdesk/pkg/checkout"

	"gorm.io/datatypes"
)

// PaymentRecorder persists new payment records.
type PaymentRecorder interface {
	Create(p *models.Payment) error
}

type CreateSessionInput struct {
	UserID           uint
	Amount           int64
	PaymentMethod    string
	SubscriptionInfo json.RawMessage
	Invoice          string
}

// PaymentService builds hosted-checkout sessions and records the pending
// payment they belong to.
type PaymentService struct {
	gateway  checkout.Gateway
	payments PaymentRecorder
	cfg      *config.StripeConfig
}

func NewPaymentService(gateway checkout.Gateway, payments PaymentRecorder, cfg *config.StripeConfig) *PaymentService {
	return &PaymentService{gateway: gateway, payments: payments, cfg: cfg}
}

// CreateSession requests a hosted session from the gateway, then persists a
// pending payment keyed by invoice. The two steps are not atomic: if the
// insert fails after the gateway accepted the session, a dangling remote
// session exists and later webhook events for that invoice reconcile as
// no-ops. Neither step is retried here.
func (s *PaymentService) CreateSession(ctx context.Context, in CreateSessionInput) (*checkout.Session, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if strings.TrimSpace(in.PaymentMethod) == "" {
		return nil, fmt.Errorf("%w: payment method is required", domain.ErrValidation)
	}

	sess, err := s.gateway.CreateSession(ctx, checkout.SessionRequest{
		AmountMinor: in.Amount * 100,
		Currency:    s.cfg.Currency,
		SuccessURL:  s.cfg.SuccessURL,
		CancelURL:   s.cfg.CancelURL,
		Metadata: map[string]string{
			"payment_method": in.PaymentMethod,
			"invoice":        in.Invoice,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}

	p := &models.Payment{
		UserID:            in.UserID,
		Amount:            in.Amount,
		PaymentMethod:     in.PaymentMethod,
		SubscriptionInfo:  datatypes.JSON(in.SubscriptionInfo),
		Invoice:           in.Invoice,
		TransactionStatus: domain.TxStatusPending,
		SessionID:         sess.ID,
	}
	if err := s.payments.Create(p); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return sess, nil
}
