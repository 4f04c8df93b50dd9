package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// StubGateway is a no-op gateway for development and tests.
type StubGateway struct{}

func (s *StubGateway) CreateSession(ctx context.Context, req SessionRequest) (*Session, error) {
	id := fmt.Sprintf("cs_stub_%s", uuid.New().String())
	return &Session{
		ID:  id,
		URL: "https://checkout.stub.local/pay/" + id,
	}, nil
}
