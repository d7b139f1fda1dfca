package transport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	floorport "mesaYaFloor/internal/modules/floor/application/port"
	floorusecase "mesaYaFloor/internal/modules/floor/application/usecase"
	floordomain "mesaYaFloor/internal/modules/floor/domain"
	domain "mesaYaFloor/internal/modules/realtime/domain"
	"mesaYaFloor/internal/modules/realtime/infrastructure"
	"mesaYaFloor/internal/shared/auth"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FloorGateway upgrades staff devices onto the floor WebSocket and wires each
// connection to its own floor session.
type FloorGateway struct {
	hub       *infrastructure.Hub
	validator auth.TokenValidator
	sessions  *floorusecase.SessionManager

	fetcher   floorport.FloorSnapshotFetcher
	submitter floorport.AssignmentSubmitter
	broadcast floorusecase.Broadcaster

	projector   floordomain.ProjectorConfig
	settleDelay time.Duration
	sendBuffer  int
}

type FloorGatewayParams struct {
	Hub       *infrastructure.Hub
	Validator auth.TokenValidator
	Sessions  *floorusecase.SessionManager
	Fetcher   floorport.FloorSnapshotFetcher
	Submitter floorport.AssignmentSubmitter
	Broadcast floorusecase.Broadcaster

	Projector       floordomain.ProjectorConfig
	ZoneSettleDelay time.Duration
	SendBuffer      int
}

func NewFloorGateway(p FloorGatewayParams) *FloorGateway {
	buffer := p.SendBuffer
	if buffer <= 0 {
		buffer = 8
	}
	return &FloorGateway{
		hub:         p.Hub,
		validator:   p.Validator,
		sessions:    p.Sessions,
		fetcher:     p.Fetcher,
		submitter:   p.Submitter,
		broadcast:   p.Broadcast,
		projector:   p.Projector,
		settleDelay: p.ZoneSettleDelay,
		sendBuffer:  buffer,
	}
}

// Handler serves /ws/floor/:restaurant/:section(/:token). The token may also
// arrive as a query parameter or bearer header; the path wins.
func (g *FloorGateway) Handler() func(echo.Context) error {
	return func(c echo.Context) error {
		restaurantID := strings.TrimSpace(c.Param("restaurant"))
		sectionID := strings.TrimSpace(c.Param("section"))
		token := strings.TrimSpace(c.Param("token"))
		if token == "" {
			token = strings.TrimSpace(c.QueryParam("token"))
		}
		if token == "" {
			token = auth.ExtractBearerTokenFromHeader(c.Request().Header.Get("Authorization"))
		}

		if restaurantID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "missing restaurant")
		}
		if sectionID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "missing section")
		}

		claims, err := g.validator.Validate(token)
		if err != nil {
			status := http.StatusUnauthorized
			message := "invalid token"
			switch {
			case errors.Is(err, auth.ErrMissingToken):
				status = http.StatusBadRequest
				message = "missing token"
			case errors.Is(err, auth.ErrInvalidToken):
				status = http.StatusUnauthorized
				message = "invalid token"
			}
			slog.Warn("ws floor auth failed", slog.String("restaurantId", restaurantID), slog.String("sectionId", sectionID), slog.Any("error", err))
			return echo.NewHTTPError(status, message)
		}

		// Tokens scoped to a restaurant may only open that restaurant's floor.
		if claims.RestaurantID != "" && claims.RestaurantID != restaurantID {
			slog.Warn("ws floor restaurant mismatch", slog.String("restaurantId", restaurantID), slog.String("tokenRestaurantId", claims.RestaurantID), slog.String("userId", claims.Subject))
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws floor upgrade failed", slog.String("restaurantId", restaurantID), slog.String("sectionId", sectionID), slog.Any("error", err))
			return err
		}

		userID := claims.Subject
		deviceSessionID := claims.SessionID
		date := strings.TrimSpace(c.QueryParam("date"))

		session := floorusecase.NewFloorSession(floorusecase.SessionParams{
			Token:           token,
			UserID:          userID,
			DeviceSessionID: deviceSessionID,
			RestaurantID:    restaurantID,
			SectionID:       sectionID,
			Date:            date,
			Fetcher:         g.fetcher,
			Submitter:       g.submitter,
			Broadcast:       g.broadcast,
			Projector:       g.projector,
			ZoneSettleDelay: g.settleDelay,
		})

		client := infrastructure.NewClient(g.hub, conn, userID, deviceSessionID, restaurantID, sectionID, g.sendBuffer, floorCommandHandler(session))
		client.AddCloseHook(func(*infrastructure.Client) {
			session.Close()
			g.sessions.Remove(session)
		})
		g.sessions.Add(session)

		topics := []string{
			domain.FloorViewTopic(restaurantID, sectionID),
			domain.FloorFeedbackTopic(restaurantID, sectionID),
			domain.TopicSystemError,
		}
		g.hub.AttachClient(client, topics)

		go client.WritePump()
		go client.ReadPump()

		connected := &domain.Message{
			Topic:  domain.TopicSystemConnected,
			Entity: domain.SystemEntity,
			Action: domain.ActionConnected,
			Metadata: map[string]string{
				"userId":          userID,
				"deviceSessionId": deviceSessionID,
				"restaurantId":    restaurantID,
				"sectionId":       sectionID,
			},
			Data: map[string]any{
				"topics": topics,
				"roles":  claims.Roles,
			},
			Timestamp: time.Now().UTC(),
		}
		client.SendDomainMessage(connected)

		// First snapshot load happens off the request path so a slow REST
		// backend cannot stall the upgrade response.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := session.Refresh(ctx); err != nil {
				slog.Warn("ws floor initial snapshot failed", slog.String("restaurantId", restaurantID), slog.String("sectionId", sectionID), slog.Any("error", err))
				sendCommandError(client, sectionID, "refresh", err)
				return
			}
			session.BroadcastView(ctx)
		}()

		slog.Info("ws floor connected", slog.String("restaurantId", restaurantID), slog.String("sectionId", sectionID), slog.String("userId", userID), slog.String("deviceSessionId", deviceSessionID))
		return nil
	}
}

// floorCommandHandler adapts the generic WebSocket command envelope to the
// floor session. Runs synchronously on the read pump so command order holds.
func floorCommandHandler(session *floorusecase.FloorSession) infrastructure.CommandHandler {
	return func(ctx context.Context, client *infrastructure.Client, cmd infrastructure.Command) {
		var payload floorusecase.FloorCommand
		if len(cmd.Payload) > 0 {
			if err := json.Unmarshal(cmd.Payload, &payload); err != nil {
				slog.Warn("ws floor command decode failed", slog.String("action", cmd.Action), slog.Any("error", err))
				sendCommandError(client, client.SectionID(), cmd.Action, err)
				return
			}
		}
		if err := session.Handle(ctx, cmd.Action, payload); err != nil {
			slog.Warn("ws floor command failed", slog.String("action", cmd.Action), slog.String("sectionId", client.SectionID()), slog.Any("error", err))
			sendCommandError(client, client.SectionID(), cmd.Action, err)
		}
	}
}

func sendCommandError(client *infrastructure.Client, sectionID, action string, err error) {
	reason := ""
	if err != nil {
		reason = err.Error()
	}
	message := &domain.Message{
		Topic:      domain.TopicSystemError,
		Entity:     domain.SystemEntity,
		Action:     domain.ActionError,
		ResourceID: sectionID,
		Metadata: map[string]string{
			"sectionId": sectionID,
			"action":    strings.TrimSpace(action),
		},
		Data:      map[string]string{"error": reason},
		Timestamp: time.Now().UTC(),
	}
	client.SendDomainMessage(message)
}
