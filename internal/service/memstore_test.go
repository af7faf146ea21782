package service

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"zapshift/internal/domain"
	"zapshift/internal/models"
	"zapshift/internal/repository"
)

// memParcelStore and memPaymentStore mirror the Mongo repositories'
// observable behavior, including the guarded parcel update and the unique
// constraint on transactionId.

type memParcelStore struct {
	mu      sync.Mutex
	parcels map[string]*models.Parcel
}

func newMemParcelStore() *memParcelStore {
	return &memParcelStore{parcels: map[string]*models.Parcel{}}
}

func (s *memParcelStore) add(p *models.Parcel) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	s.parcels[p.ID.Hex()] = p
	return p.ID.Hex()
}

func (s *memParcelStore) get(id string) *models.Parcel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parcels[id]
}

func (s *memParcelStore) MarkPaid(ctx context.Context, id, trackingID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parcels[id]
	if !ok || p.PaymentStatus != domain.ParcelUnpaid {
		return 0, nil
	}
	p.PaymentStatus = domain.ParcelPaid
	p.TrackingID = trackingID
	return 1, nil
}

type memPaymentStore struct {
	mu       sync.Mutex
	byTxID   map[string]*models.Payment
	payments []*models.Payment
}

func newMemPaymentStore() *memPaymentStore {
	return &memPaymentStore{byTxID: map[string]*models.Payment{}}
}

func (s *memPaymentStore) FindByTransactionID(ctx context.Context, txID string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.byTxID[txID]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (s *memPaymentStore) Insert(ctx context.Context, p *models.Payment) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byTxID[p.TransactionID]; ok {
		return "", repository.ErrDuplicateTransaction
	}
	p.ID = primitive.NewObjectID()
	s.byTxID[p.TransactionID] = p
	s.payments = append(s.payments, p)
	return p.ID.Hex(), nil
}

func (s *memPaymentStore) MarkPaid(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.ID.Hex() == id {
			p.PaymentStatus = domain.PaymentPaid
		}
	}
	return nil
}

func (s *memPaymentStore) ListPending(ctx context.Context, olderThan time.Time) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Payment{}
	for _, p := range s.payments {
		if p.PaymentStatus == domain.PaymentPending && p.PaidAt.Before(olderThan) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *memPaymentStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payments)
}
