package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mesaYaFloor/internal/modules/floor/application/port"
	floor "mesaYaFloor/internal/modules/floor/domain"
	reservations "mesaYaFloor/internal/modules/reservations/domain"
	tables "mesaYaFloor/internal/modules/tables/domain"
	waitlist "mesaYaFloor/internal/modules/waitlist/domain"
	"mesaYaFloor/internal/shared/normalization"
)

// FloorHTTPClient talks to the MesaYa REST API for both sides of the floor
// workflow: fetching section snapshots and submitting seatings/assignments.
type FloorHTTPClient struct {
	rest    *RESTClient
	timeout time.Duration
}

func NewFloorHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *FloorHTTPClient {
	return &FloorHTTPClient{rest: NewRESTClient(baseURL, timeout, client), timeout: timeoutOrDefault(timeout)}
}

// FetchFloorSnapshot loads one section's floor data for the given service day.
func (c *FloorHTTPClient) FetchFloorSnapshot(ctx context.Context, token, restaurantID, sectionID, date string) (*port.FloorSnapshot, error) {
	sectionID = strings.TrimSpace(sectionID)
	if sectionID == "" {
		return nil, port.ErrSnapshotNotFound
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	path := "/api/v1/restaurant/sections/" + url.PathEscape(sectionID) + "/floor"
	req, err := c.rest.NewRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	setBearer(req, token)

	values := url.Values{}
	if trimmed := strings.TrimSpace(restaurantID); trimmed != "" {
		values.Set("restaurantId", trimmed)
	}
	if trimmed := strings.TrimSpace(date); trimmed != "" {
		values.Set("date", trimmed)
	}
	req.URL.RawQuery = values.Encode()

	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("floor snapshot request error", slog.String("sectionId", sectionID), slog.Any("error", err))
		return nil, fmt.Errorf("floor snapshot request failed: %w", err)
	}
	defer res.Body.Close()

	if err := mapStatus(res); err != nil {
		return nil, err
	}
	return decodeFloorSnapshot(res.Body)
}

func decodeFloorSnapshot(body io.Reader) (*port.FloorSnapshot, error) {
	var payload any
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode floor snapshot: %w", err)
	}
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, fmt.Errorf("decode floor snapshot: empty payload")
	}

	snapshot := &port.FloorSnapshot{}
	if list, ok := tables.BuildTableList(container); ok {
		snapshot.Tables = list.Items
	}
	if list, ok := reservations.BuildReservationList(container); ok {
		snapshot.Reservations = list.Items
	}
	if list, ok := waitlist.BuildEntryList(container); ok {
		snapshot.Waitlist = list.Items
	}
	snapshot.ServerAssignments = normalizeAssignments(container["serverAssignments"])
	return snapshot, nil
}

func normalizeAssignments(value any) map[int]string {
	raw := normalization.AsInterfaceSlice(value)
	if len(raw) == 0 {
		return nil
	}
	assignments := make(map[int]string, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		tableID := normalization.AsInt(entry["tableId"])
		serverID := normalization.AsString(entry["serverId"])
		if tableID > 0 && serverID != "" {
			assignments[tableID] = serverID
		}
	}
	if len(assignments) == 0 {
		return nil
	}
	return assignments
}

// SubmitAssignments posts the staged table→server diff as a single batch.
func (c *FloorHTTPClient) SubmitAssignments(ctx context.Context, token, restaurantID string, edits []floor.ServerAssignment) error {
	payload := map[string]any{
		"restaurantId": strings.TrimSpace(restaurantID),
		"assignments":  edits,
	}
	return c.postJSON(ctx, token, "/api/v1/restaurant/tables/assignments", payload)
}

// SeatWalkIn seats an ad-hoc party at the given table.
func (c *FloorHTTPClient) SeatWalkIn(ctx context.Context, token string, tableID, partySize int, name string) error {
	payload := map[string]any{
		"tableId":   tableID,
		"partySize": partySize,
	}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		payload["name"] = trimmed
	}
	return c.postJSON(ctx, token, "/api/v1/restaurant/seatings/walk-in", payload)
}

// SeatWaitlistEntry seats a waitlist party at the given table.
func (c *FloorHTTPClient) SeatWaitlistEntry(ctx context.Context, token string, tableID int, entryUUID string) error {
	payload := map[string]any{
		"tableId":   tableID,
		"entryUuid": strings.TrimSpace(entryUUID),
	}
	return c.postJSON(ctx, token, "/api/v1/restaurant/seatings/waitlist", payload)
}

// MoveReservation reassigns a reservation to another table.
func (c *FloorHTTPClient) MoveReservation(ctx context.Context, token string, reservationID, tableID int) error {
	path := "/api/v1/restaurant/reservations/" + strconv.Itoa(reservationID) + "/table"
	payload := map[string]any{"tableId": tableID}
	return c.sendJSON(ctx, token, http.MethodPatch, path, payload)
}

func (c *FloorHTTPClient) postJSON(ctx context.Context, token, path string, payload any) error {
	return c.sendJSON(ctx, token, http.MethodPost, path, payload)
}

func (c *FloorHTTPClient) sendJSON(ctx context.Context, token, method, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.rest.NewRequest(ctx, method, path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	setBearer(req, token)

	res, err := c.rest.Do(req)
	if err != nil {
		slog.Error("floor mutation request error", slog.String("path", path), slog.Any("error", err))
		return fmt.Errorf("floor mutation request failed: %w", err)
	}
	defer res.Body.Close()

	return mapStatus(res)
}

func mapStatus(res *http.Response) error {
	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return port.ErrSnapshotForbidden
	case res.StatusCode == http.StatusNotFound:
		return port.ErrSnapshotNotFound
	case res.StatusCode >= http.StatusBadRequest && res.StatusCode < http.StatusInternalServerError:
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		slog.Warn("floor request rejected", slog.Int("status", res.StatusCode), slog.String("body", strings.TrimSpace(string(body))))
		return fmt.Errorf("%w: status %d", port.ErrSubmitRejected, res.StatusCode)
	case res.StatusCode >= http.StatusMultipleChoices:
		body, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
		slog.Error("floor request unexpected status", slog.Int("status", res.StatusCode), slog.String("body", strings.TrimSpace(string(body))))
		return fmt.Errorf("unexpected floor response %d", res.StatusCode)
	default:
		return nil
	}
}

func setBearer(req *http.Request, token string) {
	if trimmed := strings.TrimSpace(token); trimmed != "" {
		req.Header.Set("Authorization", "Bearer "+trimmed)
	}
}

var (
	_ port.FloorSnapshotFetcher = (*FloorHTTPClient)(nil)
	_ port.AssignmentSubmitter  = (*FloorHTTPClient)(nil)
)
