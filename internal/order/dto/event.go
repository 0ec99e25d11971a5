package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

const EventOrderCreated = "OrderCreated"

type OrderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	ID         int64              `json:"id"`
	Code       string             `json:"code"`
	UserID     int64              `json:"user_id"`
	TotalPrice decimal.Decimal    `json:"total_price"`
	Items      []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID   *int64          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}
