package checkout

import "context"

// SessionRequest describes one hosted-checkout session to create on the
// gateway. AmountMinor is in minor currency units (cents).
type SessionRequest struct {
	AmountMinor int64
	Currency    string
	SuccessURL  string
	CancelURL   string
	Description string
	Metadata    map[string]string
}

type Session struct {
	ID  string
	URL string
}

// Gateway creates hosted checkout sessions on an external payment provider.
type Gateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
}
