package service_test

import (
	"context"
	"errors"
	"testing"

	"trustdesk/config"
	"trustdesk/internal/domain"
	"trustdesk/internal/models"
	"trustdesk/internal/service"
	"trustdesk/pkg/checkout"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	got  checkout.SessionRequest
	sess *checkout.Session
	err  error
}

func (g *fakeGateway) CreateSession(ctx context.Context, req checkout.SessionRequest) (*checkout.Session, error) {
	g.got = req
	return g.sess, g.err
}

type fakeRecorder struct {
	created []*models.Payment
	err     error
}

func (r *fakeRecorder) Create(p *models.Payment) error {
	if r.err != nil {
		return r.err
	}
	r.created = append(r.created, p)
	return nil
}

func stripeCfg() *config.StripeConfig {
	return &config.StripeConfig{
		SuccessURL: "https://pay.test/ok",
		CancelURL:  "https://pay.test/cancel",
		Currency:   "usd",
	}
}

func TestCreateSessionValidation(t *testing.T) {
	gw := &fakeGateway{}
	svc := service.NewPaymentService(gw, &fakeRecorder{}, stripeCfg())

	cases := []service.CreateSessionInput{
		{Amount: 0, PaymentMethod: "card"},
		{Amount: -5, PaymentMethod: "card"},
		{Amount: 10, PaymentMethod: ""},
		{Amount: 10, PaymentMethod: "   "},
	}
	for _, in := range cases {
		sess, err := svc.CreateSession(context.Background(), in)
		assert.Nil(t, sess)
		assert.True(t, errors.Is(err, domain.ErrValidation), "input %+v: want ErrValidation, got %v", in, err)
	}
	assert.Empty(t, gw.got.Metadata, "gateway must not be called on invalid input")
}

func TestCreateSessionRecordsPendingPayment(t *testing.T) {
	gw := &fakeGateway{sess: &checkout.Session{ID: "cs_1", URL: "https://pay.test/cs_1"}}
	rec := &fakeRecorder{}
	svc := service.NewPaymentService(gw, rec, stripeCfg())

	sess, err := svc.CreateSession(context.Background(), service.CreateSessionInput{
		UserID:        7,
		Amount:        25,
		PaymentMethod: "card",
		Invoice:       "inv_1",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_1", sess.ID)

	assert.Equal(t, int64(2500), gw.got.AmountMinor, "amount converts to minor units")
	assert.Equal(t, "usd", gw.got.Currency)
	assert.Equal(t, "inv_1", gw.got.Metadata["invoice"])
	assert.Equal(t, "card", gw.got.Metadata["payment_method"])

	require.Len(t, rec.created, 1)
	p := rec.created[0]
	assert.Equal(t, uint(7), p.UserID)
	assert.Equal(t, "inv_1", p.Invoice)
	assert.Equal(t, domain.TxStatusPending, p.TransactionStatus)
	assert.Equal(t, "cs_1", p.SessionID)
}

func TestCreateSessionGatewayFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("provider unavailable")}
	rec := &fakeRecorder{}
	svc := service.NewPaymentService(gw, rec, stripeCfg())

	sess, err := svc.CreateSession(context.Background(), service.CreateSessionInput{
		Amount: 10, PaymentMethod: "card", Invoice: "inv_1",
	})
	assert.Nil(t, sess)
	assert.True(t, errors.Is(err, domain.ErrGateway))
	assert.Empty(t, rec.created, "nothing persisted when the gateway fails")
}

func TestCreateSessionPersistenceFailureAfterGateway(t *testing.T) {
	gw := &fakeGateway{sess: &checkout.Session{ID: "cs_1", URL: "https://pay.test/cs_1"}}
	rec := &fakeRecorder{err: errors.New("insert failed")}
	svc := service.NewPaymentService(gw, rec, stripeCfg())

	// The remote session already exists at this point; the error is surfaced
	// and the dangling session is tolerated by later no-op reconciliation.
	sess, err := svc.CreateSession(context.Background(), service.CreateSessionInput{
		Amount: 10, PaymentMethod: "card", Invoice: "inv_1",
	})
	assert.Nil(t, sess)
	assert.True(t, errors.Is(err, domain.ErrPersistence))
}
