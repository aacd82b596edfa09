package events

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=./mocks/publisher_mock.go -package=mocks

import (
	"context"
	"strconv"
	"time"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/config"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/kafka"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/constant"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/shared/timezone"

	"github.com/rs/zerolog/log"
)

type OrderPlacedEvent struct {
	OrderID    string    `json:"order_id"`
	ChatID     int64     `json:"chat_id"`
	RoomNumber int       `json:"room_number,omitempty"`
	BookingID  string    `json:"booking_id,omitempty"`
	Total      float64   `json:"total"`
	PlacedAt   time.Time `json:"placed_at"`
}

type RoomReassignedEvent struct {
	BookingID string    `json:"booking_id"`
	ChatID    int64     `json:"chat_id,omitempty"`
	OldRoom   int       `json:"old_room"`
	NewRoom   int       `json:"new_room"`
	ChangedAt time.Time `json:"changed_at"`
	ChangedBy string    `json:"changed_by"`
}

// Publisher emits domain events to Kafka. Publishing is best effort: a broker
// outage must never fail the request that produced the event.
type Publisher interface {
	OrderPlaced(ctx context.Context, event OrderPlacedEvent)
	RoomReassigned(ctx context.Context, event RoomReassignedEvent)
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (p *publisherImpl) OrderPlaced(ctx context.Context, event OrderPlacedEvent) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".OrderPlaced")
	defer scope.End()

	if event.PlacedAt.IsZero() {
		event.PlacedAt = timezone.Now()
	}

	message := kafka.Message{
		Key:   event.OrderID,
		Value: event,
	}

	if err := p.client.SendMessages(ctx, p.cfg.Kafka.Topics.OrderPlaced, message); err != nil {
		log.Error().Err(err).Str("orderID", event.OrderID).Msg("failed to publish order placed event")
		scope.TraceError(err)
	}
}

func (p *publisherImpl) RoomReassigned(ctx context.Context, event RoomReassignedEvent) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".RoomReassigned")
	defer scope.End()

	if event.ChangedAt.IsZero() {
		event.ChangedAt = timezone.Now()
	}

	message := kafka.Message{
		Key:   event.BookingID + ":" + strconv.Itoa(event.NewRoom),
		Value: event,
	}

	if err := p.client.SendMessages(ctx, p.cfg.Kafka.Topics.RoomReassigned, message); err != nil {
		log.Error().Err(err).Str("bookingID", event.BookingID).Msg("failed to publish room reassigned event")
		scope.TraceError(err)
	}
}
