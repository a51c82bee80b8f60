package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pricetrack/internal/repository"
	"pricetrack/internal/scraper"
	"pricetrack/internal/service"
)

type PriceHandler struct {
	Service     *service.PriceService
	DefaultDays int
	Logger      *zap.Logger
}

func (h *PriceHandler) Register(r *gin.Engine) {
	group := r.Group("/api/prices")
	group.GET("/:productId", h.history)
	group.POST("/check", h.checkNow)
}

func (h *PriceHandler) history(c *gin.Context) {
	if _, ok := userID(c); !ok {
		return
	}
	days := intQuery(c, "days", h.DefaultDays)
	samples, err := h.Service.History(c.Request.Context(), c.Param("productId"), days)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, samples, nil)
}

type checkNowRequest struct {
	ProductID string `json:"productId"`
}

func (h *PriceHandler) checkNow(c *gin.Context) {
	if _, ok := userID(c); !ok {
		return
	}
	var req checkNowRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" {
		Error(c, http.StatusBadRequest, "productId is required", nil)
		return
	}

	price, err := h.Service.CheckNow(c.Request.Context(), req.ProductID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		Error(c, http.StatusNotFound, "product not found", nil)
		return
	case errors.Is(err, service.ErrNoPriceFound):
		Error(c, http.StatusUnprocessableEntity, "unable to fetch price", nil)
		return
	case errors.Is(err, scraper.ErrRendererUnavailable):
		Error(c, http.StatusBadGateway, "extraction engine unavailable", nil)
		return
	case err != nil:
		h.Logger.Error("manual price check failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"productId": req.ProductID, "price": price}, nil)
}
