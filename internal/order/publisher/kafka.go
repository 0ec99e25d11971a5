package publisher

import (
	"context"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-storefront/internal/model"
	"github.com/fekuna/omnipos-storefront/internal/order"
	"github.com/fekuna/omnipos-storefront/internal/order/dto"
	"github.com/google/uuid"
)

// JSONProducer is satisfied by *broker.KafkaProducer.
type JSONProducer interface {
	PublishJSON(ctx context.Context, key string, value interface{}) error
}

type KafkaPublisher struct {
	producer JSONProducer
	now      func() time.Time
}

var _ order.Publisher = (*KafkaPublisher)(nil)

func NewKafkaPublisher(producer JSONProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, now: time.Now}
}

// PublishOrderCreated writes an OrderCreated event keyed by user id, so one
// user's orders stay in order on a single partition.
func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, purchase *model.Purchase) error {
	return p.producer.PublishJSON(ctx, strconv.FormatInt(purchase.UserID, 10), NewOrderCreatedEvent(purchase, p.now()))
}

func NewOrderCreatedEvent(purchase *model.Purchase, at time.Time) dto.OrderCreatedEvent {
	items := make([]dto.OrderItemPayload, len(purchase.Items))
	for i, it := range purchase.Items {
		items[i] = dto.OrderItemPayload{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.PriceAtPurchase,
		}
	}

	return dto.OrderCreatedEvent{
		EventID:   uuid.NewString(),
		EventType: dto.EventOrderCreated,
		Payload: dto.OrderPayload{
			ID:         purchase.ID,
			Code:       purchase.UniqueCode,
			UserID:     purchase.UserID,
			TotalPrice: purchase.TotalPrice,
			Items:      items,
		},
		Timestamp: at.UTC(),
	}
}
