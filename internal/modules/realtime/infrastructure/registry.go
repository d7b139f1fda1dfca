package infrastructure

import (
	"context"

	"mesaYaFloor/internal/modules/realtime/application/port"
	"mesaYaFloor/internal/modules/realtime/domain"
)

// HandlerRegistry routes consumed broker messages to the handler registered
// for their topic.
type HandlerRegistry struct {
	handlers map[string]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	r.handlers[h.Topic()] = h
}

// Dispatch routes by the broker topic the message arrived on, which may
// differ from msg.Topic (the WebSocket broadcast topic).
func (r *HandlerRegistry) Dispatch(ctx context.Context, brokerTopic string, msg *domain.Message) error {
	if handler, ok := r.handlers[brokerTopic]; ok {
		return handler.Handle(ctx, msg)
	}
	return nil
}
