package handler

import (
	"net/http"

	"github.com/fekuna/omnipos-storefront/internal/cart"
	"github.com/fekuna/omnipos-storefront/internal/cart/dto"
	"github.com/fekuna/omnipos-storefront/internal/httpx"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: log,
	}
}

type addItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  *int  `json:"quantity"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type cartLineResponse struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
	ImageURL    *string `json:"image_url"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

// Get handles GET /cart. The body is a bare array of lines; clients total
// the subtotals themselves.
func (h *CartHandler) Get(c *gin.Context) {
	identity, ok := httpx.Identity(c)
	if !ok {
		return
	}

	res, err := h.uc.GetCart(c.Request.Context(), identity)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	items := make([]cartLineResponse, len(res.Lines))
	for i, l := range res.Lines {
		items[i] = cartLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Price:       l.Price.InexactFloat64(),
			ImageURL:    l.ImageURL,
			Quantity:    l.Quantity,
			Subtotal:    l.Subtotal().InexactFloat64(),
		}
	}
	c.JSON(http.StatusOK, items)
}

// Add handles POST /cart. Quantity defaults to 1.
func (h *CartHandler) Add(c *gin.Context) {
	identity, ok := httpx.Identity(c)
	if !ok {
		return
	}
	var req addItemRequest
	if !httpx.BindJSON(c, &req) {
		return
	}

	input := &dto.AddItemInput{ProductID: req.ProductID, Quantity: 1}
	if req.Quantity != nil {
		input.Quantity = *req.Quantity
	}

	if _, err := h.uc.AddToCart(c.Request.Context(), identity, input); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item added to cart"})
}

// Update handles PUT /cart/:id.
func (h *CartHandler) Update(c *gin.Context) {
	identity, ok := httpx.Identity(c)
	if !ok {
		return
	}
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	var req updateItemRequest
	if !httpx.BindJSON(c, &req) {
		return
	}

	err := h.uc.UpdateCartItem(c.Request.Context(), identity, &dto.UpdateItemInput{ItemID: id, Quantity: *req.Quantity})
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
}

// Remove handles DELETE /cart/:id.
func (h *CartHandler) Remove(c *gin.Context) {
	identity, ok := httpx.Identity(c)
	if !ok {
		return
	}
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.RemoveCartItem(c.Request.Context(), identity, id); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Clear handles DELETE /cart.
func (h *CartHandler) Clear(c *gin.Context) {
	identity, ok := httpx.Identity(c)
	if !ok {
		return
	}

	if err := h.uc.ClearCart(c.Request.Context(), identity); err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
