package payment

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// StubGateway is an in-memory gateway for development and tests. Sessions
// are created unpaid; tests flip them with MarkPaid to simulate the customer
// completing checkout.
type StubGateway struct {
	mu       sync.Mutex
	seq      int
	sessions map[string]*Session
}

func NewStubGateway() *StubGateway {
	return &StubGateway{sessions: map[string]*Session{}}
}

func (g *StubGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	id := fmt.Sprintf("cs_test_%d_%d", time.Now().UnixNano(), g.seq)
	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}
	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	g.sessions[id] = &Session{
		ID:            id,
		PaymentStatus: "unpaid",
		AmountTotal:   req.UnitAmount * quantity,
		Currency:      currency,
		CustomerEmail: req.CustomerEmail,
		ParcelID:      req.ParcelID,
		ParcelName:    req.ParcelName,
	}
	return &CheckoutResponse{SessionID: id, URL: "https://checkout.stub.local/" + id}, nil
}

func (g *StubGateway) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	s, ok := g.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("stub gateway: unknown session %s", sessionID)
	}
	copied := *s
	return &copied, nil
}

// MarkPaid simulates the customer completing payment for a session.
func (g *StubGateway) MarkPaid(sessionID, paymentIntentID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s, ok := g.sessions[sessionID]; ok {
		s.PaymentStatus = "paid"
		s.PaymentIntentID = paymentIntentID
	}
}
