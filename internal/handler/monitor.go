package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pricetrack/internal/monitor"
)

type MonitorHandler struct {
	Scheduler *monitor.Scheduler
	Logger    *zap.Logger
}

func (h *MonitorHandler) Register(r *gin.Engine) {
	r.POST("/api/monitor/run", h.runNow)
}

// runNow kicks off a monitoring batch detached from the request so the
// caller is not held for the duration of a full sweep.
func (h *MonitorHandler) runNow(c *gin.Context) {
	if _, ok := userID(c); !ok {
		return
	}
	go func() {
		if err := h.Scheduler.RunBatch(context.Background()); err != nil {
			h.Logger.Error("manual monitor batch failed", zap.Error(err))
		}
	}()
	c.JSON(http.StatusAccepted, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    gin.H{"message": "price check started"},
	})
}
