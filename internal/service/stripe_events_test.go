package service_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"trustdesk/internal/domain"
	"trustdesk/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
)

const testSecret = "whsec_test_secret"

func signPayload(t *testing.T, payload []byte, secret string) string {
	t.Helper()
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func eventPayload(kind, object string) []byte {
	return []byte(fmt.Sprintf(`{"id":"evt_1","api_version":%q,"type":%q,"data":{"object":%s}}`, stripe.APIVersion, kind, object))
}

func TestVerifyAndParseCheckoutCompleted(t *testing.T) {
	payload := eventPayload("checkout.session.completed", `{"invoice":"inv_123","customer_email":"a@b.test"}`)
	ev, err := service.VerifyAndParse(payload, signPayload(t, payload, testSecret), testSecret)
	require.NoError(t, err)

	cc, ok := ev.(service.CheckoutCompleted)
	require.True(t, ok, "expected CheckoutCompleted, got %T", ev)
	assert.Equal(t, "inv_123", cc.Invoice)
	assert.Equal(t, "a@b.test", cc.CustomerEmail)
}

func TestVerifyAndParsePaymentIntentSucceeded(t *testing.T) {
	payload := eventPayload("payment_intent.succeeded", `{"invoice":"inv_456","receipt_email":"r@b.test"}`)
	ev, err := service.VerifyAndParse(payload, signPayload(t, payload, testSecret), testSecret)
	require.NoError(t, err)

	pi, ok := ev.(service.PaymentIntentSucceeded)
	require.True(t, ok, "expected PaymentIntentSucceeded, got %T", ev)
	assert.Equal(t, "inv_456", pi.Invoice)
	assert.Equal(t, "r@b.test", pi.ReceiptEmail)
}

func TestVerifyAndParseSubscriptionCreated(t *testing.T) {
	payload := eventPayload("customer.subscription.created", `{"latest_invoice":"inv_789","customer_email":"s@b.test","plan":"pro"}`)
	ev, err := service.VerifyAndParse(payload, signPayload(t, payload, testSecret), testSecret)
	require.NoError(t, err)

	sc, ok := ev.(service.SubscriptionCreated)
	require.True(t, ok, "expected SubscriptionCreated, got %T", ev)
	assert.Equal(t, "inv_789", sc.LatestInvoice)
	assert.Equal(t, "s@b.test", sc.CustomerEmail)
	assert.JSONEq(t, `{"latest_invoice":"inv_789","customer_email":"s@b.test","plan":"pro"}`, string(sc.Snapshot))
}

func TestVerifyAndParseUnknownKind(t *testing.T) {
	payload := eventPayload("invoice.paid", `{"invoice":"inv_1"}`)
	ev, err := service.VerifyAndParse(payload, signPayload(t, payload, testSecret), testSecret)
	require.NoError(t, err)

	uk, ok := ev.(service.UnknownEvent)
	require.True(t, ok, "expected UnknownEvent, got %T", ev)
	assert.Equal(t, "invoice.paid", uk.Kind)
}

func TestVerifyAndParseFailsClosed(t *testing.T) {
	payload := eventPayload("checkout.session.completed", `{"invoice":"inv_123"}`)

	cases := map[string]string{
		"absent signature":    "",
		"malformed signature": "not-a-signature",
		"wrong secret":        signPayload(t, payload, "whsec_other"),
	}
	for name, sig := range cases {
		t.Run(name, func(t *testing.T) {
			ev, err := service.VerifyAndParse(payload, sig, testSecret)
			assert.Nil(t, ev)
			assert.True(t, errors.Is(err, domain.ErrSignature), "want ErrSignature, got %v", err)
		})
	}
}

func TestVerifyAndParseTamperedBody(t *testing.T) {
	payload := eventPayload("checkout.session.completed", `{"invoice":"inv_123"}`)
	sig := signPayload(t, payload, testSecret)
	tampered := eventPayload("checkout.session.completed", `{"invoice":"inv_999"}`)

	ev, err := service.VerifyAndParse(tampered, sig, testSecret)
	assert.Nil(t, ev)
	assert.True(t, errors.Is(err, domain.ErrSignature))
}
