package port

import (
	"context"

	"mesaYaFloor/internal/modules/realtime/domain"
)

// PubSubPort is the contract for consuming external change events (Kafka).
type PubSubPort interface {
	Consume(ctx context.Context, topic string, handler func(*domain.Message) error) error
}

// Broadcaster delivers messages to the connected WebSocket clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// TopicHandler is implemented by handlers registered per broker topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}
