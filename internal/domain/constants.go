package domain

// UserRole is the role assigned to a registered user.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// ParcelPaymentStatus tracks whether a parcel's shipping cost has been paid.
// Transitions unpaid -> paid exactly once; never reversed.
type ParcelPaymentStatus string

const (
	ParcelUnpaid ParcelPaymentStatus = "unpaid"
	ParcelPaid   ParcelPaymentStatus = "paid"
)

// SessionPaymentStatus is the payment status the checkout provider reports
// for a session.
type SessionPaymentStatus string

const (
	SessionPaid              SessionPaymentStatus = "paid"
	SessionUnpaid            SessionPaymentStatus = "unpaid"
	SessionNoPaymentRequired SessionPaymentStatus = "no_payment_required"
)

// PaymentStatus is the lifecycle state of a recorded payment. A payment is
// inserted as pending before the parcel update and marked paid afterwards,
// so a crash between the two writes leaves a pending record the sweeper can
// finish rather than a paid parcel with no payment record at all.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)
