package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"zapshift/internal/models"
	"zapshift/internal/service"
)

// Store interfaces are declared handler-side so tests can stand in for the
// Mongo repositories.

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) (string, error)
}

type ParcelStore interface {
	Insert(ctx context.Context, p *models.Parcel) (string, error)
	List(ctx context.Context, senderEmail string) ([]models.Parcel, error)
	FindByID(ctx context.Context, id string) (*models.Parcel, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type PaymentStore interface {
	ListByEmail(ctx context.Context, email string) ([]models.Payment, error)
}

type Reconciler interface {
	Reconcile(ctx context.Context, sessionID string) (*service.ReconcileResult, error)
}

// opCtx bounds a store or gateway call so a stalled dependency fails the
// request instead of holding it open.
func opCtx(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
