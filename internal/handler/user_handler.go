package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zapshift/internal/domain"
	"zapshift/internal/models"
)

type UserHandler struct {
	users   UserStore
	timeout time.Duration
}

func NewUserHandler(users UserStore, timeout time.Duration) *UserHandler {
	return &UserHandler{users: users, timeout: timeout}
}

// Register creates a user on first sign-in. Re-registration of a known email
// is answered with "User Exists" and no write.
func (h *UserHandler) Register(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	ctx, cancel := opCtx(c, h.timeout)
	defer cancel()

	existing, err := h.users.FindByEmail(ctx, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to check user"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusOK, gin.H{"message": "User Exists"})
		return
	}
	id, err := h.users.Insert(ctx, &models.User{
		Name:      req.Name,
		Email:     req.Email,
		Role:      domain.RoleUser,
		CreatedAt: time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create user"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": id})
}
