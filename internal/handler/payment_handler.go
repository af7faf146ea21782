package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zapshift/internal/middleware"
)

type PaymentHandler struct {
	payments  PaymentStore
	reconcile Reconciler
	timeout   time.Duration
}

func NewPaymentHandler(payments PaymentStore, reconcile Reconciler, timeout time.Duration) *PaymentHandler {
	return &PaymentHandler{payments: payments, reconcile: reconcile, timeout: timeout}
}

// List returns the caller's payment history, most recent first. The email
// query parameter must match the verified token identity; it defaults to the
// verified email when absent.
func (h *PaymentHandler) List(c *gin.Context) {
	verified := middleware.GetEmail(c)
	email := c.Query("email")
	if email == "" {
		email = verified
	}
	if email != verified {
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return
	}
	ctx, cancel := opCtx(c, h.timeout)
	defer cancel()

	payments, err := h.payments.ListByEmail(ctx, email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

// Confirm runs reconciliation for a checkout session after the customer
// returns from the hosted payment page.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "session_id is required"})
		return
	}
	ctx, cancel := opCtx(c, h.timeout)
	defer cancel()

	result, err := h.reconcile.Reconcile(ctx, sessionID)
	if err != nil {
		log.Printf("[RECONCILE] session %s: %v", sessionID, err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "payment confirmation failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}
