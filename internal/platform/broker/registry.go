package broker

import (
	"context"
	"log/slog"

	"mesaYaFloor/internal/modules/realtime/domain"
	"mesaYaFloor/internal/modules/realtime/infrastructure"
)

// StartKafkaConsumers launches one consumer goroutine per topic and routes
// every decoded message through the handler registry. With no brokers
// configured the service runs without change-event refreshes.
func StartKafkaConsumers(
	ctx context.Context,
	registry *infrastructure.HandlerRegistry,
	brokers []string,
	groupID string,
	topics []string,
) {
	if len(brokers) == 0 {
		slog.Warn("kafka brokers not configured; change-event refresh disabled")
		return
	}
	for _, topic := range topics {
		go func(tp string) {
			consumer := NewKafkaConsumer(brokers, groupID, tp)
			_ = consumer.Consume(ctx, func(msg *domain.Message) error {
				return registry.Dispatch(ctx, tp, msg)
			})
		}(topic)
	}
}
