package handler

import (
	"context"
	"log/slog"
	"strings"

	"mesaYaFloor/internal/modules/floor/application/usecase"
	rtport "mesaYaFloor/internal/modules/realtime/application/port"
	rtusecase "mesaYaFloor/internal/modules/realtime/application/usecase"
	"mesaYaFloor/internal/modules/realtime/domain"
)

// FloorRefreshHandler reacts to backend change events (reservations, tables,
// waitlist) consumed from the broker: it re-broadcasts the raw event and
// pushes a fresh floor view to every session watching an affected section.
type FloorRefreshHandler struct {
	kafkaTopic     string
	allowedActions map[string]struct{}
	broadcastUC    *rtusecase.BroadcastUseCase
	sessions       *usecase.SessionManager
}

func NewFloorRefreshHandler(kafkaTopic string, allowedActions []string, broadcastUC *rtusecase.BroadcastUseCase, sessions *usecase.SessionManager) *FloorRefreshHandler {
	actionSet := make(map[string]struct{}, len(allowedActions))
	for _, action := range allowedActions {
		if v := strings.TrimSpace(strings.ToLower(action)); v != "" {
			actionSet[v] = struct{}{}
		}
	}
	return &FloorRefreshHandler{
		kafkaTopic:     kafkaTopic,
		allowedActions: actionSet,
		broadcastUC:    broadcastUC,
		sessions:       sessions,
	}
}

func (h *FloorRefreshHandler) Topic() string { return h.kafkaTopic }

func (h *FloorRefreshHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if len(h.allowedActions) > 0 {
		if _, ok := h.allowedActions[strings.ToLower(msg.Action)]; !ok {
			return nil
		}
	}
	if msg.Topic == "" && msg.Entity != "" && msg.Action != "" {
		msg.Topic = msg.Entity + "." + msg.Action
	}
	if h.broadcastUC != nil {
		h.broadcastUC.Execute(ctx, msg)
	}
	h.refreshSessions(ctx, msg)
	return nil
}

// refreshSessions narrows the refresh to the event's restaurant and section
// when the metadata carries them; events without scope refresh everything.
func (h *FloorRefreshHandler) refreshSessions(ctx context.Context, msg *domain.Message) {
	if h.sessions == nil {
		return
	}
	restaurantID := ""
	sectionID := ""
	if msg.Metadata != nil {
		restaurantID = strings.TrimSpace(msg.Metadata["restaurantId"])
		sectionID = strings.TrimSpace(msg.Metadata["sectionId"])
	}
	slog.Info("floor refresh triggered", slog.String("entity", msg.Entity), slog.String("action", msg.Action), slog.String("restaurantId", restaurantID), slog.String("sectionId", sectionID))
	h.sessions.RefreshSection(ctx, restaurantID, sectionID)
}

var _ rtport.TopicHandler = (*FloorRefreshHandler)(nil)
