package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"zapshift/internal/domain"
)

// Payment records one successful external charge. TransactionID is the
// processor's payment-intent id and carries a unique index; it is the
// idempotency key for the whole reconciliation flow. Amount is in major
// currency units (session amount total / 100). Records are immutable once
// status reaches paid.
type Payment struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	Amount        float64              `bson:"amount" json:"amount"`
	Currency      string               `bson:"currency" json:"currency"`
	CustomerEmail string               `bson:"customerEmail" json:"customerEmail"`
	ParcelID      string               `bson:"parcelId" json:"parcelId"`
	ParcelName    string               `bson:"parcelName" json:"parcelName"`
	TransactionID string               `bson:"transactionId" json:"transactionId"`
	PaymentStatus domain.PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	PaidAt        time.Time            `bson:"paidAt" json:"paidAt"`
}
