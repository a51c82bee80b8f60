package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pricetrack/internal/scraper"
	"pricetrack/internal/service"
)

type ProductHandler struct {
	Service *service.ProductService
	Logger  *zap.Logger
}

func (h *ProductHandler) Register(r *gin.Engine) {
	group := r.Group("/api/products")
	group.POST("", h.addProduct)
	group.GET("", h.listProducts)
	group.GET("/public/trending", h.trending)
	group.GET("/:id", h.getProduct)
	group.PUT("/:id", h.updateProduct)
	group.DELETE("/:id", h.deleteProduct)
}

type addProductRequest struct {
	URL          string `json:"url"`
	Name         string `json:"name"`
	CurrentPrice string `json:"currentPrice"`
	ImageURL     string `json:"imageUrl"`
	Platform     string `json:"platform"`
	Category     string `json:"category"`
}

func (h *ProductHandler) addProduct(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req addProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	price := decimal.Zero
	if req.CurrentPrice != "" {
		parsed, err := decimal.NewFromString(req.CurrentPrice)
		if err != nil {
			Error(c, http.StatusBadRequest, "invalid currentPrice", nil)
			return
		}
		price = parsed
	}

	product, err := h.Service.Add(c.Request.Context(), service.AddProductInput{
		UserID:       uid,
		URL:          req.URL,
		Name:         req.Name,
		CurrentPrice: price,
		ImageURL:     req.ImageURL,
		Platform:     req.Platform,
		Category:     req.Category,
	})
	switch {
	case errors.Is(err, service.ErrBadInput):
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	case errors.Is(err, scraper.ErrRendererUnavailable):
		Error(c, http.StatusBadGateway, "extraction engine unavailable", nil)
		return
	case err != nil:
		h.Logger.Error("add product failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	c.JSON(http.StatusCreated, apiResponse{Code: 0, Message: "ok", Data: product})
}

func (h *ProductHandler) listProducts(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	items, err := h.Service.List(c.Request.Context(), uid)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

func (h *ProductHandler) trending(c *gin.Context) {
	limit := intQuery(c, "limit", 12)
	items, err := h.Service.Trending(c.Request.Context(), limit)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

func (h *ProductHandler) getProduct(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	product, history, err := h.Service.Get(c.Request.Context(), uid, c.Param("id"))
	if !h.writeServiceError(c, err) {
		return
	}
	Ok(c, gin.H{"product": product, "priceHistory": history}, nil)
}

type updateProductRequest struct {
	Name         string `json:"name"`
	CurrentPrice string `json:"currentPrice"`
	ImageURL     string `json:"imageUrl"`
}

func (h *ProductHandler) updateProduct(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	in := service.UpdateProductInput{Name: req.Name, ImageURL: req.ImageURL}
	if req.CurrentPrice != "" {
		price, err := decimal.NewFromString(req.CurrentPrice)
		if err != nil {
			Error(c, http.StatusBadRequest, "invalid currentPrice", nil)
			return
		}
		in.CurrentPrice = &price
	}

	product, err := h.Service.Update(c.Request.Context(), uid, c.Param("id"), in)
	if !h.writeServiceError(c, err) {
		return
	}
	Ok(c, product, nil)
}

func (h *ProductHandler) deleteProduct(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}
	err := h.Service.SoftDelete(c.Request.Context(), uid, c.Param("id"))
	if !h.writeServiceError(c, err) {
		return
	}
	Ok(c, gin.H{"message": "product removed from tracking"}, nil)
}

// writeServiceError maps service errors onto the response envelope. It
// returns true when the request may proceed (err was nil).
func (h *ProductHandler) writeServiceError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, service.ErrNotFound):
		Error(c, http.StatusNotFound, "product not found", nil)
	case errors.Is(err, service.ErrNotOwner):
		Error(c, http.StatusForbidden, "not authorized", nil)
	default:
		h.Logger.Error("product request failed", zap.Error(err))
		Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
	return false
}
