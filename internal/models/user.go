package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"zapshift/internal/domain"
)

// User is a registered account. Identity (password, sessions) lives with the
// identity provider; we only keep the profile and role.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Role      domain.UserRole    `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
