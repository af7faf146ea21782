package payment

import (
	"context"
	"errors"
	"math"
)

// ErrInvalidAmount reports a cost that does not convert to a positive whole
// number of minor currency units.
var ErrInvalidAmount = errors.New("amount must convert to a positive whole number of minor units")

// CheckoutRequest describes a single-item checkout session.
type CheckoutRequest struct {
	ProductName   string
	UnitAmount    int64 // minor units, e.g. cents
	Quantity      int64
	Currency      string
	CustomerEmail string
	ParcelID      string // carried in session metadata
	ParcelName    string
	SuccessURL    string
	CancelURL     string
}

type CheckoutResponse struct {
	SessionID string
	URL       string
}

// Session is the provider's view of a checkout session at retrieval time.
// PaymentIntentID is stable per attempted charge and is what reconciliation
// uses as its idempotency key.
type Session struct {
	ID              string
	PaymentStatus   string
	AmountTotal     int64 // minor units
	Currency        string
	CustomerEmail   string
	PaymentIntentID string
	ParcelID        string
	ParcelName      string
}

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error)
	RetrieveSession(ctx context.Context, sessionID string) (*Session, error)
}

// ToMinorUnits converts a major-unit cost (e.g. 19.99) to minor units (1999).
// Rounding absorbs float representation error; anything that is not a
// positive whole amount after rounding is rejected.
func ToMinorUnits(cost float64) (int64, error) {
	minor := math.Round(cost * 100)
	if minor <= 0 || math.IsNaN(minor) || math.IsInf(minor, 0) {
		return 0, ErrInvalidAmount
	}
	return int64(minor), nil
}
