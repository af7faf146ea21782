package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zapshift/internal/domain"
	"zapshift/internal/models"
	"zapshift/pkg/payment"
)

func newPaidSession(t *testing.T, gw *payment.StubGateway, parcelID string, cost float64, email, intentID string) string {
	t.Helper()
	minor, err := payment.ToMinorUnits(cost)
	require.NoError(t, err)
	resp, err := gw.CreateCheckoutSession(context.Background(), payment.CheckoutRequest{
		ProductName:   "Box",
		UnitAmount:    minor,
		Quantity:      1,
		CustomerEmail: email,
		ParcelID:      parcelID,
		ParcelName:    "Box",
	})
	require.NoError(t, err)
	gw.MarkPaid(resp.SessionID, intentID)
	return resp.SessionID
}

func TestReconcilePaidSession(t *testing.T) {
	gw := payment.NewStubGateway()
	parcels := newMemParcelStore()
	payments := newMemPaymentStore()
	svc := NewReconcileService(gw, parcels, payments)

	parcelID := parcels.add(&models.Parcel{
		SenderEmail:   "s@x.com",
		ParcelName:    "Box",
		Cost:          50,
		PaymentStatus: domain.ParcelUnpaid,
	})
	sessionID := newPaidSession(t, gw, parcelID, 50, "s@x.com", "pi_123")

	res, err := svc.Reconcile(context.Background(), sessionID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "pi_123", res.TransactionID)
	assert.Equal(t, int64(1), res.ParcelModified)
	assert.Regexp(t, trackingPattern, res.TrackingID)

	p := parcels.get(parcelID)
	assert.Equal(t, domain.ParcelPaid, p.PaymentStatus)
	assert.Equal(t, res.TrackingID, p.TrackingID)

	require.Equal(t, 1, payments.count())
	rec, err := payments.FindByTransactionID(context.Background(), "pi_123")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 50.0, rec.Amount)
	assert.Equal(t, "s@x.com", rec.CustomerEmail)
	assert.Equal(t, domain.PaymentPaid, rec.PaymentStatus)
}

func TestReconcileIsIdempotent(t *testing.T) {
	gw := payment.NewStubGateway()
	parcels := newMemParcelStore()
	payments := newMemPaymentStore()
	svc := NewReconcileService(gw, parcels, payments)

	parcelID := parcels.add(&models.Parcel{PaymentStatus: domain.ParcelUnpaid, Cost: 50})
	sessionID := newPaidSession(t, gw, parcelID, 50, "s@x.com", "pi_dup")

	first, err := svc.Reconcile(context.Background(), sessionID)
	require.NoError(t, err)
	require.True(t, first.Success)

	second, err := svc.Reconcile(context.Background(), sessionID)
	require.NoError(t, err)
	assert.False(t, second.Success)
	assert.Equal(t, "already exists", second.Message)
	assert.Equal(t, "pi_dup", second.TransactionID)
	// The duplicate path returns a fresh tracking id that is never stored;
	// the parcel keeps the one stamped on the first run.
	assert.NotEqual(t, first.TrackingID, second.TrackingID)
	assert.Equal(t, first.TrackingID, parcels.get(parcelID).TrackingID)
	assert.Equal(t, 1, payments.count())
}

func TestReconcileUnpaidSessionWritesNothing(t *testing.T) {
	gw := payment.NewStubGateway()
	parcels := newMemParcelStore()
	payments := newMemPaymentStore()
	svc := NewReconcileService(gw, parcels, payments)

	parcelID := parcels.add(&models.Parcel{PaymentStatus: domain.ParcelUnpaid, Cost: 50})
	resp, err := gw.CreateCheckoutSession(context.Background(), payment.CheckoutRequest{
		UnitAmount: 5000, ParcelID: parcelID,
	})
	require.NoError(t, err)

	res, err := svc.Reconcile(context.Background(), resp.SessionID)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 0, payments.count())
	assert.Equal(t, domain.ParcelUnpaid, parcels.get(parcelID).PaymentStatus)
}

func TestReconcilePaidSessionWithoutIntentID(t *testing.T) {
	gw := payment.NewStubGateway()
	parcels := newMemParcelStore()
	payments := newMemPaymentStore()
	svc := NewReconcileService(gw, parcels, payments)

	parcelID := parcels.add(&models.Parcel{PaymentStatus: domain.ParcelUnpaid, Cost: 10})
	// Session paid but carrying no payment-intent reference.
	sessionID := newPaidSession(t, gw, parcelID, 10, "s@x.com", "")

	res, err := svc.Reconcile(context.Background(), sessionID)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 0, payments.count())
	assert.Equal(t, domain.ParcelUnpaid, parcels.get(parcelID).PaymentStatus)

	// A second such session must not be misreported as a duplicate of the
	// first; there is nothing recorded to duplicate.
	other := parcels.add(&models.Parcel{PaymentStatus: domain.ParcelUnpaid, Cost: 10})
	res, err = svc.Reconcile(context.Background(), newPaidSession(t, gw, other, 10, "s@x.com", ""))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.NotEqual(t, "already exists", res.Message)
	assert.Equal(t, 0, payments.count())
}

func TestReconcileGatewayFailure(t *testing.T) {
	gw := payment.NewStubGateway()
	parcels := newMemParcelStore()
	payments := newMemPaymentStore()
	svc := NewReconcileService(gw, parcels, payments)

	_, err := svc.Reconcile(context.Background(), "cs_missing")
	require.Error(t, err)
	assert.Equal(t, 0, payments.count())
}

func TestReconcileDoesNotRestampPaidParcel(t *testing.T) {
	gw := payment.NewStubGateway()
	parcels := newMemParcelStore()
	payments := newMemPaymentStore()
	svc := NewReconcileService(gw, parcels, payments)

	parcelID := parcels.add(&models.Parcel{PaymentStatus: domain.ParcelUnpaid, Cost: 20})
	first := newPaidSession(t, gw, parcelID, 20, "s@x.com", "pi_a")
	second := newPaidSession(t, gw, parcelID, 20, "s@x.com", "pi_b")

	res1, err := svc.Reconcile(context.Background(), first)
	require.NoError(t, err)
	require.Equal(t, int64(1), res1.ParcelModified)

	// A different payment intent for the same parcel records a payment but
	// cannot flip the parcel again.
	res2, err := svc.Reconcile(context.Background(), second)
	require.NoError(t, err)
	assert.True(t, res2.Success)
	assert.Equal(t, int64(0), res2.ParcelModified)
	assert.Equal(t, res1.TrackingID, parcels.get(parcelID).TrackingID)

	// The zero modified count must survive serialization so clients can see
	// the parcel was left alone.
	body, err := json.Marshal(res2)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"parcelModified":0`)
}

func TestSweepPendingFinishesStuckPayment(t *testing.T) {
	gw := payment.NewStubGateway()
	parcels := newMemParcelStore()
	payments := newMemPaymentStore()
	svc := NewReconcileService(gw, parcels, payments)

	parcelID := parcels.add(&models.Parcel{PaymentStatus: domain.ParcelUnpaid, Cost: 10})
	// Simulate a crash after the payment insert: pending record, parcel
	// still unpaid.
	_, err := payments.Insert(context.Background(), &models.Payment{
		Amount:        10,
		ParcelID:      parcelID,
		TransactionID: "pi_stuck",
		PaymentStatus: domain.PaymentPending,
		PaidAt:        time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)

	n, err := svc.SweepPending(context.Background(), time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, domain.ParcelPaid, parcels.get(parcelID).PaymentStatus)
	rec, err := payments.FindByTransactionID(context.Background(), "pi_stuck")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, rec.PaymentStatus)

	// Nothing left to sweep.
	n, err = svc.SweepPending(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
