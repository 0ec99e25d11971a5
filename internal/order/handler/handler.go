package handler

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/httpx"
	"github.com/fekuna/omnipos-storefront/internal/order"
	"github.com/fekuna/omnipos-storefront/pkg/logger"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

type checkoutResponse struct {
	Message    string  `json:"message"`
	OrderCode  string  `json:"order_code"`
	TotalPrice float64 `json:"total_price"`
}

type orderSummaryResponse struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	UniqueCode string    `json:"unique_code"`
	TotalPrice float64   `json:"total_price"`
	ItemCount  int       `json:"item_count"`
}

type orderItemResponse struct {
	ProductID       *int64  `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
	Subtotal        float64 `json:"subtotal"`
}

type orderDetailResponse struct {
	ID         int64               `json:"id"`
	Timestamp  time.Time           `json:"timestamp"`
	UniqueCode string              `json:"unique_code"`
	TotalPrice float64             `json:"total_price"`
	Items      []orderItemResponse `json:"items"`
}

// Checkout handles POST /orders/checkout.
func (h *OrderHandler) Checkout(c *gin.Context) {
	identity, ok := httpx.Identity(c)
	if !ok {
		return
	}

	purchase, err := h.uc.Checkout(c.Request.Context(), identity)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, checkoutResponse{
		Message:    "Checkout successful",
		OrderCode:  purchase.UniqueCode,
		TotalPrice: purchase.TotalPrice.InexactFloat64(),
	})
}

// List handles GET /orders.
func (h *OrderHandler) List(c *gin.Context) {
	identity, ok := httpx.Identity(c)
	if !ok {
		return
	}

	summaries, err := h.uc.ListOrders(c.Request.Context(), identity)
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	res := make([]orderSummaryResponse, len(summaries))
	for i, s := range summaries {
		res[i] = orderSummaryResponse{
			ID:         s.ID,
			Timestamp:  s.CreatedAt,
			UniqueCode: s.UniqueCode,
			TotalPrice: s.TotalPrice.InexactFloat64(),
			ItemCount:  s.ItemCount,
		}
	}
	c.JSON(http.StatusOK, res)
}

// Get handles GET /orders/:code.
func (h *OrderHandler) Get(c *gin.Context) {
	identity, ok := httpx.Identity(c)
	if !ok {
		return
	}

	purchase, err := h.uc.GetOrder(c.Request.Context(), identity, c.Param("code"))
	if err != nil {
		httpx.Error(c, h.logger, err)
		return
	}

	items := make([]orderItemResponse, len(purchase.Items))
	for i, it := range purchase.Items {
		items[i] = orderItemResponse{
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Quantity:        it.Quantity,
			PriceAtPurchase: it.PriceAtPurchase.InexactFloat64(),
			Subtotal:        it.Subtotal().InexactFloat64(),
		}
	}
	c.JSON(http.StatusOK, orderDetailResponse{
		ID:         purchase.ID,
		Timestamp:  purchase.CreatedAt,
		UniqueCode: purchase.UniqueCode,
		TotalPrice: purchase.TotalPrice.InexactFloat64(),
		Items:      items,
	})
}
