package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zapshift/internal/domain"
	"zapshift/internal/models"
	"zapshift/internal/repository"
)

type ParcelHandler struct {
	parcels ParcelStore
	timeout time.Duration
}

func NewParcelHandler(parcels ParcelStore, timeout time.Duration) *ParcelHandler {
	return &ParcelHandler{parcels: parcels, timeout: timeout}
}

func (h *ParcelHandler) Create(c *gin.Context) {
	var req struct {
		SenderEmail  string  `json:"senderEmail" binding:"required,email"`
		ParcelName   string  `json:"parcelName" binding:"required"`
		Cost         float64 `json:"cost" binding:"required,gt=0"`
		ReceiverName string  `json:"receiverName"`
		Destination  string  `json:"destination"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	ctx, cancel := opCtx(c, h.timeout)
	defer cancel()

	id, err := h.parcels.Insert(ctx, &models.Parcel{
		SenderEmail:   req.SenderEmail,
		ReceiverName:  req.ReceiverName,
		Destination:   req.Destination,
		ParcelName:    req.ParcelName,
		Cost:          req.Cost,
		PaymentStatus: domain.ParcelUnpaid,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create parcel"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": id})
}

// List returns parcels newest first, filtered to one sender when the email
// query parameter is present.
func (h *ParcelHandler) List(c *gin.Context) {
	ctx, cancel := opCtx(c, h.timeout)
	defer cancel()

	parcels, err := h.parcels.List(ctx, c.Query("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list parcels"})
		return
	}
	c.JSON(http.StatusOK, parcels)
}

func (h *ParcelHandler) Get(c *gin.Context) {
	ctx, cancel := opCtx(c, h.timeout)
	defer cancel()

	p, err := h.parcels.FindByID(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrInvalidID) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid parcel id"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to fetch parcel"})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "parcel not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ParcelHandler) Delete(c *gin.Context) {
	ctx, cancel := opCtx(c, h.timeout)
	defer cancel()

	deleted, err := h.parcels.Delete(ctx, c.Param("id"))
	if errors.Is(err, repository.ErrInvalidID) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid parcel id"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete parcel"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": deleted})
}
