package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports liveness of the API and its two backing stores. The box
// lifecycle needs postgres; the dashboard cache and the closing-report queue
// need redis, so a broken redis degrades the whole service to 503.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "up"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "down"
		}

		queueStatus := "up"
		if rdb.Ping(ctx).Err() != nil {
			queueStatus = "down"
		}

		status := http.StatusOK
		overall := "ok"
		if dbStatus != "up" || queueStatus != "up" {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		c.JSON(status, gin.H{
			"service":  "carmu-api",
			"status":   overall,
			"database": dbStatus,
			"queue":    queueStatus,
		})
	}
}
