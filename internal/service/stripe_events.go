package service

import (
	"encoding/json"
	"fmt"

	"trustdesk/internal/domain"

	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeEvent is the sealed set of webhook events the reconciler understands.
// Anything the gateway sends outside this set parses into UnknownEvent so the
// dispatcher can reject it explicitly instead of dropping it.
type StripeEvent interface {
	eventKind() string
}

type CheckoutCompleted struct {
	Invoice       string
	CustomerEmail string
}

type PaymentIntentSucceeded struct {
	Invoice      string
	ReceiptEmail string
}

type SubscriptionCreated struct {
	LatestInvoice string
	CustomerEmail string
	// Snapshot is the full subscription object as delivered, merged verbatim
	// into the payment record's subscription metadata.
	Snapshot json.RawMessage
}

type UnknownEvent struct {
	Kind string
}

func (CheckoutCompleted) eventKind() string      { return "checkout.session.completed" }
func (PaymentIntentSucceeded) eventKind() string { return "payment_intent.succeeded" }
func (SubscriptionCreated) eventKind() string    { return "customer.subscription.created" }
func (e UnknownEvent) eventKind() string         { return e.Kind }

// VerifyAndParse authenticates a webhook delivery and decodes it into a typed
// event. The signature is checked over the raw, unmodified body; callers must
// pass the bytes exactly as read from the wire. Missing, malformed, and
// mismatched signatures all fail closed with domain.ErrSignature.
func VerifyAndParse(rawBody []byte, sigHeader, secret string) (StripeEvent, error) {
	event, err := webhook.ConstructEvent(rawBody, sigHeader, secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSignature, err)
	}

	switch string(event.Type) {
	case "checkout.session.completed":
		var obj struct {
			Invoice       string `json:"invoice"`
			CustomerEmail string `json:"customer_email"`
		}
		if err := json.Unmarshal(event.Data.Raw, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		return CheckoutCompleted{Invoice: obj.Invoice, CustomerEmail: obj.CustomerEmail}, nil
	case "payment_intent.succeeded":
		var obj struct {
			Invoice      string `json:"invoice"`
			ReceiptEmail string `json:"receipt_email"`
		}
		if err := json.Unmarshal(event.Data.Raw, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		return PaymentIntentSucceeded{Invoice: obj.Invoice, ReceiptEmail: obj.ReceiptEmail}, nil
	case "customer.subscription.created":
		var obj struct {
			LatestInvoice string `json:"latest_invoice"`
			CustomerEmail string `json:"customer_email"`
		}
		if err := json.Unmarshal(event.Data.Raw, &obj); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		return SubscriptionCreated{
			LatestInvoice: obj.LatestInvoice,
			CustomerEmail: obj.CustomerEmail,
			Snapshot:      append(json.RawMessage(nil), event.Data.Raw...),
		}, nil
	default:
		return UnknownEvent{Kind: string(event.Type)}, nil
	}
}
