package service

import (
	"encoding/json"
	"fmt"

	"trustdesk/internal/domain"

	"github.com/sirupsen/logrus"
)

// PaymentStore is the persistence contract the reconciler needs: guarded,
// monotonic status writes and merge-only metadata updates, both keyed by
// invoice. The store is the only synchronization point between concurrent
// deliveries for the same invoice.
type PaymentStore interface {
	AdvanceStatus(invoice, status string) (int64, error)
	MergeSubscriptionInfo(invoice string, snapshot json.RawMessage) (int64, error)
}

// Notifier fires a best-effort notification. Failures are logged by the
// reconciler and never affect the committed transition.
type Notifier interface {
	Notify(recipient string, tpl EmailTemplate) error
}

type ReconcileResult struct {
	Kind    string
	Matched int64
}

// ReconcileService converges local payment state from verified gateway
// events. Deliveries are at-least-once, possibly duplicated and reordered;
// safety comes entirely from the store's idempotent, monotonic writes, not
// from any retry or locking logic here.
type ReconcileService struct {
	store    PaymentStore
	notifier Notifier
}

func NewReconcileService(store PaymentStore, notifier Notifier) *ReconcileService {
	return &ReconcileService{store: store, notifier: notifier}
}

// Reconcile applies one event. A lookup miss (zero matched records) is a
// successful no-op: the record may not exist yet, or may belong to another
// environment. Unknown kinds are rejected without mutation. Store errors are
// returned so the HTTP layer answers 500 and the gateway redelivers.
func (s *ReconcileService) Reconcile(ev StripeEvent) (*ReconcileResult, error) {
	switch e := ev.(type) {
	case CheckoutCompleted:
		matched, err := s.store.AdvanceStatus(e.Invoice, domain.TxStatusCompleted)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		s.notify(e.CustomerEmail, TemplatePaymentSuccessful)
		return &ReconcileResult{Kind: e.eventKind(), Matched: matched}, nil
	case PaymentIntentSucceeded:
		matched, err := s.store.AdvanceStatus(e.Invoice, domain.TxStatusSucceeded)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		s.notify(e.ReceiptEmail, TemplatePaymentIntentSucceeded)
		return &ReconcileResult{Kind: e.eventKind(), Matched: matched}, nil
	case SubscriptionCreated:
		matched, err := s.store.MergeSubscriptionInfo(e.LatestInvoice, e.Snapshot)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
		}
		s.notify(e.CustomerEmail, TemplateSubscriptionCreated)
		return &ReconcileResult{Kind: e.eventKind(), Matched: matched}, nil
	case UnknownEvent:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownEvent, e.Kind)
	default:
		// New variants must be handled above; anything else is rejected.
		return nil, fmt.Errorf("%w: %T", domain.ErrUnknownEvent, ev)
	}
}

// notify runs only after the store write has returned. At most one attempt;
// a failed notification is logged and dropped, never rolled into the
// transition's failure scope.
func (s *ReconcileService) notify(recipient string, tpl EmailTemplate) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(recipient, tpl); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"recipient": recipient,
			"subject":   tpl.Subject,
		}).Warn("notification failed")
	}
}
