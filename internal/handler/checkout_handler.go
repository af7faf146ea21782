package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"zapshift/config"
	"zapshift/pkg/payment"
)

type CheckoutHandler struct {
	gateway payment.Gateway
	site    string
	timeout time.Duration
}

func NewCheckoutHandler(gateway payment.Gateway, cfg *config.SiteConfig, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{gateway: gateway, site: cfg.Domain, timeout: timeout}
}

// Create opens a checkout session for a parcel and returns the hosted
// payment URL. The parcel id rides in session metadata so reconciliation
// later works from provider state, not client input.
func (h *CheckoutHandler) Create(c *gin.Context) {
	var req struct {
		Cost        float64 `json:"cost" binding:"required"`
		ParcelName  string  `json:"parcelName" binding:"required"`
		SenderEmail string  `json:"senderEmail" binding:"required,email"`
		ParcelID    string  `json:"parcelId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if _, err := primitive.ObjectIDFromHex(req.ParcelID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid parcel id"})
		return
	}
	unitAmount, err := payment.ToMinorUnits(req.Cost)
	if errors.Is(err, payment.ErrInvalidAmount) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid cost"})
		return
	}

	ctx, cancel := opCtx(c, h.timeout)
	defer cancel()

	resp, err := h.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		ProductName:   req.ParcelName,
		UnitAmount:    unitAmount,
		Quantity:      1,
		Currency:      "usd",
		CustomerEmail: req.SenderEmail,
		ParcelID:      req.ParcelID,
		ParcelName:    req.ParcelName,
		SuccessURL:    h.site + "/dashboard/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     h.site + "/dashboard/payment-cancelled",
	})
	if err != nil {
		log.Printf("[CHECKOUT] create session: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"message": "payment provider unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": resp.URL})
}
