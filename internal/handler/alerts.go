package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pricetrack/internal/models"
	"pricetrack/internal/repository"
)

type AlertHandler struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func (h *AlertHandler) Register(r *gin.Engine) {
	group := r.Group("/api/alerts")
	group.POST("", h.createAlert)
	group.GET("", h.listAlerts)
	group.PUT("/:id", h.updateAlert)
	group.DELETE("/:id", h.deleteAlert)
}

type alertRequest struct {
	ProductID   string `json:"productId"`
	TargetPrice string `json:"targetPrice"`
}

func (h *AlertHandler) createAlert(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req alertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	if req.ProductID == "" {
		Error(c, http.StatusBadRequest, "productId is required", nil)
		return
	}
	target, err := decimal.NewFromString(req.TargetPrice)
	if err != nil || !target.IsPositive() {
		Error(c, http.StatusBadRequest, "targetPrice must be a positive number", nil)
		return
	}
	if _, err := h.Repo.GetProductByID(c.Request.Context(), req.ProductID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			Error(c, http.StatusNotFound, "product not found", nil)
			return
		}
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}

	alert := &models.Alert{
		ID:          uuid.NewString(),
		UserID:      uid,
		ProductID:   req.ProductID,
		TargetPrice: target,
		IsActive:    true,
	}
	if err := h.Repo.CreateAlert(c.Request.Context(), alert); err != nil {
		h.Logger.Error("create alert failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	c.JSON(http.StatusCreated, apiResponse{Code: 0, Message: "ok", Data: alert})
}

func (h *AlertHandler) listAlerts(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	alerts, err := h.Repo.ListAlertsByUser(c.Request.Context(), uid)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, alerts, nil)
}

type alertUpdateRequest struct {
	TargetPrice string `json:"targetPrice"`
	IsActive    *bool  `json:"isActive"`
}

// updateAlert changes the target price or toggles the alert. Lowering the
// target re-arms a fired alert by clearing the notified flag.
func (h *AlertHandler) updateAlert(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req alertUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	alert, ok := h.ownedAlert(c, uid)
	if !ok {
		return
	}
	if req.TargetPrice != "" {
		target, err := decimal.NewFromString(req.TargetPrice)
		if err != nil || !target.IsPositive() {
			Error(c, http.StatusBadRequest, "targetPrice must be a positive number", nil)
			return
		}
		if !target.Equal(alert.TargetPrice) {
			alert.TargetPrice = target
			alert.Notified = false
			alert.NotifiedAt = nil
		}
	}
	if req.IsActive != nil {
		alert.IsActive = *req.IsActive
	}
	if err := h.Repo.SaveAlert(c.Request.Context(), alert); err != nil {
		h.Logger.Error("update alert failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, alert, nil)
}

func (h *AlertHandler) deleteAlert(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	alert, ok := h.ownedAlert(c, uid)
	if !ok {
		return
	}
	alert.IsActive = false
	if err := h.Repo.SaveAlert(c.Request.Context(), alert); err != nil {
		h.Logger.Error("delete alert failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"message": "alert removed"}, nil)
}

func (h *AlertHandler) ownedAlert(c *gin.Context, uid string) (*models.Alert, bool) {
	alert, err := h.Repo.GetAlertByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		Error(c, http.StatusNotFound, "alert not found", nil)
		return nil, false
	}
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return nil, false
	}
	if alert.UserID != uid {
		Error(c, http.StatusForbidden, "not authorized", nil)
		return nil, false
	}
	return alert, true
}
