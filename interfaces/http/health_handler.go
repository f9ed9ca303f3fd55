package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

type IHealthHandler interface {
	Health(c *gin.Context)
}

type HealthHandler struct {
	db      *mongo.Client
	started time.Time
}

func NewHealthHandler(db *mongo.Client) IHealthHandler {
	return &HealthHandler{db: db, started: time.Now()}
}

// Health reports liveness plus the database connection state.
func (h *HealthHandler) Health(c *gin.Context) {
	database := "disconnected"
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx, readpref.Primary()); err == nil {
			database = "connected"
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": database,
		"uptime":   time.Since(h.started).String(),
	})
}
