package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"zapshift/internal/domain"
)

// Parcel is a shipment created by a sender. Cost is in major currency units
// (e.g. 19.99 USD); the checkout layer converts to minor units. TrackingID is
// empty until the parcel is paid for.
type Parcel struct {
	ID            primitive.ObjectID         `bson:"_id,omitempty" json:"id,omitempty"`
	SenderEmail   string                     `bson:"senderEmail" json:"senderEmail"`
	ReceiverName  string                     `bson:"receiverName,omitempty" json:"receiverName,omitempty"`
	Destination   string                     `bson:"destination,omitempty" json:"destination,omitempty"`
	ParcelName    string                     `bson:"parcelName" json:"parcelName"`
	Cost          float64                    `bson:"cost" json:"cost"`
	PaymentStatus domain.ParcelPaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	TrackingID    string                     `bson:"trackingId,omitempty" json:"trackingId,omitempty"`
	CreatedAt     time.Time                  `bson:"createdAt" json:"createdAt"`
}
