package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"zapshift/internal/domain"
	"zapshift/internal/models"
	"zapshift/internal/repository"
	"zapshift/pkg/payment"
)

// ParcelStore is the slice of parcel persistence reconciliation needs.
type ParcelStore interface {
	MarkPaid(ctx context.Context, id, trackingID string) (int64, error)
}

// PaymentStore is the slice of payment persistence reconciliation needs.
// Insert must return repository.ErrDuplicateTransaction when the
// transaction-id unique constraint rejects the record.
type PaymentStore interface {
	FindByTransactionID(ctx context.Context, txID string) (*models.Payment, error)
	Insert(ctx context.Context, p *models.Payment) (string, error)
	MarkPaid(ctx context.Context, id string) error
	ListPending(ctx context.Context, olderThan time.Time) ([]models.Payment, error)
}

// ReconcileResult is the JSON payload returned by the payment-success
// endpoint.
type ReconcileResult struct {
	Success        bool   `json:"success"`
	Message        string `json:"message,omitempty"`
	TransactionID  string `json:"transactionId,omitempty"`
	TrackingID     string `json:"trackingId,omitempty"`
	ParcelModified int64  `json:"parcelModified"`
	PaymentID      string `json:"paymentId,omitempty"`
}

// ReconcileService reads authoritative payment state from the checkout
// provider and applies it to local records exactly once per transaction.
type ReconcileService struct {
	gateway  payment.Gateway
	parcels  ParcelStore
	payments PaymentStore
}

func NewReconcileService(gateway payment.Gateway, parcels ParcelStore, payments PaymentStore) *ReconcileService {
	return &ReconcileService{gateway: gateway, parcels: parcels, payments: payments}
}

// Reconcile applies the outcome of a checkout session to the parcel and
// payment collections.
//
// The payment record is written first, as pending, so the unique index on
// transactionId arbitrates concurrent attempts before any parcel state
// changes. The parcel update is guarded on paymentStatus=unpaid, then the
// payment is marked paid. A crash between the writes leaves a pending record
// that SweepPending finishes later.
//
// On the duplicate path the returned tracking id is freshly generated and
// never persisted; the parcel keeps the tracking id stamped by the first
// run. That mirrors the long-observed behavior of this endpoint and is
// flagged in DESIGN.md rather than silently changed.
func (s *ReconcileService) Reconcile(ctx context.Context, sessionID string) (*ReconcileResult, error) {
	sess, err := s.gateway.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("retrieve session: %w", err)
	}
	txID := sess.PaymentIntentID

	if txID != "" {
		existing, err := s.payments.FindByTransactionID(ctx, txID)
		if err != nil {
			return nil, fmt.Errorf("check existing payment: %w", err)
		}
		if existing != nil {
			return &ReconcileResult{
				Message:       "already exists",
				TransactionID: txID,
				TrackingID:    NewTrackingID(),
			}, nil
		}
	}

	if domain.SessionPaymentStatus(sess.PaymentStatus) != domain.SessionPaid {
		return &ReconcileResult{Success: false}, nil
	}
	if txID == "" {
		// A paid session without an intent id cannot be recorded
		// idempotently; an empty key would collide on the unique index with
		// any other such session.
		return &ReconcileResult{Success: false, Message: "session has no payment reference"}, nil
	}

	record := &models.Payment{
		Amount:        float64(sess.AmountTotal) / 100,
		Currency:      sess.Currency,
		CustomerEmail: sess.CustomerEmail,
		ParcelID:      sess.ParcelID,
		ParcelName:    sess.ParcelName,
		TransactionID: txID,
		PaymentStatus: domain.PaymentPending,
		PaidAt:        time.Now(),
	}
	paymentID, err := s.payments.Insert(ctx, record)
	if errors.Is(err, repository.ErrDuplicateTransaction) {
		// Lost the race to a concurrent reconciliation of the same intent.
		return &ReconcileResult{
			Message:       "already exists",
			TransactionID: txID,
			TrackingID:    NewTrackingID(),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	trackingID := NewTrackingID()
	modified, err := s.parcels.MarkPaid(ctx, sess.ParcelID, trackingID)
	if err != nil {
		// Payment stays pending; the sweeper retries the parcel update.
		return nil, fmt.Errorf("update parcel %s: %w", sess.ParcelID, err)
	}
	if err := s.payments.MarkPaid(ctx, paymentID); err != nil {
		return nil, fmt.Errorf("finalize payment %s: %w", paymentID, err)
	}

	return &ReconcileResult{
		Success:        true,
		TransactionID:  txID,
		TrackingID:     trackingID,
		ParcelModified: modified,
		PaymentID:      paymentID,
	}, nil
}

// SweepPending re-drives payments stuck in pending since before the cutoff:
// the parcel update is replayed (a no-op when the guard already matched) and
// the payment is marked paid. Returns the number of payments finished.
func (s *ReconcileService) SweepPending(ctx context.Context, olderThan time.Time) (int, error) {
	stuck, err := s.payments.ListPending(ctx, olderThan)
	if err != nil {
		return 0, fmt.Errorf("list pending payments: %w", err)
	}
	finished := 0
	for _, p := range stuck {
		if _, err := s.parcels.MarkPaid(ctx, p.ParcelID, NewTrackingID()); err != nil {
			log.Printf("[SWEEP] parcel %s: %v", p.ParcelID, err)
			continue
		}
		if err := s.payments.MarkPaid(ctx, p.ID.Hex()); err != nil {
			log.Printf("[SWEEP] payment %s: %v", p.ID.Hex(), err)
			continue
		}
		log.Printf("[SWEEP] finished pending payment %s (parcel %s)", p.TransactionID, p.ParcelID)
		finished++
	}
	return finished, nil
}
