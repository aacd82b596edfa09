package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/config"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/kafka"
	kafkaMocks "github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/kafka/mocks"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/infras/otel/mocks"
	"github.com/MishailN1kolaev/diveevo-pilgrim-admin/internal/events"
)

func newPublisherFixture(t *testing.T) (*kafkaMocks.MockClient, events.Publisher) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockClient := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topics.OrderPlaced = "orders.placed"
	cfg.Kafka.Topics.RoomReassigned = "rooms.reassigned"

	return mockClient, events.New(mockClient, cfg, mocks.NewOtel())
}

func TestPublisher_OrderPlaced(t *testing.T) {
	t.Run("publishes keyed by order id", func(t *testing.T) {
		mockClient, publisher := newPublisherFixture(t)

		mockClient.EXPECT().
			SendMessages(gomock.Any(), "orders.placed", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				assert.Len(t, messages, 1)
				assert.Equal(t, "order-1", messages[0].Key)

				event := messages[0].Value.(events.OrderPlacedEvent)
				assert.Equal(t, int64(555), event.ChatID)
				assert.Equal(t, 850.0, event.Total)
				assert.False(t, event.PlacedAt.IsZero())

				return nil
			})

		publisher.OrderPlaced(context.Background(), events.OrderPlacedEvent{
			OrderID: "order-1",
			ChatID:  555,
			Total:   850,
		})
	})

	t.Run("broker error is swallowed", func(t *testing.T) {
		mockClient, publisher := newPublisherFixture(t)

		mockClient.EXPECT().
			SendMessages(gomock.Any(), "orders.placed", gomock.Any()).
			Return(errors.New("broker unavailable"))

		assert.NotPanics(t, func() {
			publisher.OrderPlaced(context.Background(), events.OrderPlacedEvent{OrderID: "order-1"})
		})
	})
}

func TestPublisher_RoomReassigned(t *testing.T) {
	t.Run("publishes keyed by booking and new room", func(t *testing.T) {
		mockClient, publisher := newPublisherFixture(t)

		mockClient.EXPECT().
			SendMessages(gomock.Any(), "rooms.reassigned", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				assert.Len(t, messages, 1)
				assert.Equal(t, "booking-1:205", messages[0].Key)

				event := messages[0].Value.(events.RoomReassignedEvent)
				assert.Equal(t, 101, event.OldRoom)
				assert.Equal(t, 205, event.NewRoom)
				assert.False(t, event.ChangedAt.IsZero())

				return nil
			})

		publisher.RoomReassigned(context.Background(), events.RoomReassignedEvent{
			BookingID: "booking-1",
			ChatID:    555,
			OldRoom:   101,
			NewRoom:   205,
			ChangedBy: "admin@example.com",
		})
	})

	t.Run("broker error is swallowed", func(t *testing.T) {
		mockClient, publisher := newPublisherFixture(t)

		mockClient.EXPECT().
			SendMessages(gomock.Any(), "rooms.reassigned", gomock.Any()).
			Return(errors.New("broker unavailable"))

		assert.NotPanics(t, func() {
			publisher.RoomReassigned(context.Background(), events.RoomReassignedEvent{BookingID: "booking-1"})
		})
	})
}
