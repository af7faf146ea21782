package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type HealthHandler struct {
	client  *mongo.Client
	timeout time.Duration
}

func NewHealthHandler(client *mongo.Client, timeout time.Duration) *HealthHandler {
	return &HealthHandler{client: client, timeout: timeout}
}

// Root is the plain-text liveness response.
func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "ZapShift server running")
}

// Healthz reports readiness, including database connectivity.
func (h *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := opCtx(c, h.timeout)
	defer cancel()
	if h.client != nil {
		if err := h.client.Ping(ctx, readpref.Primary()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
