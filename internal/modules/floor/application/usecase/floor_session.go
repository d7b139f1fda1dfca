package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"mesaYaFloor/internal/modules/floor/application/port"
	floor "mesaYaFloor/internal/modules/floor/domain"
	rtdomain "mesaYaFloor/internal/modules/realtime/domain"
	reservations "mesaYaFloor/internal/modules/reservations/domain"
	waitlist "mesaYaFloor/internal/modules/waitlist/domain"
)

// Floor actions accepted over the WebSocket command channel.
const (
	ActionRegisterZone   = "register_zone"
	ActionUnregisterZone = "unregister_zone"
	ActionClearZones     = "clear_zones"

	ActionDragStart  = "drag_start"
	ActionDragMove   = "drag_move"
	ActionDragEnd    = "drag_end"
	ActionDragCancel = "drag_cancel"

	ActionSelectTable       = "select_table"
	ActionSelectReservation = "select_reservation"
	ActionSelectWaitlist    = "select_waitlist"
	ActionClearSelection    = "clear_selection"

	ActionSetDate               = "set_date"
	ActionAddWaitlist           = "add_waitlist"
	ActionEnterWalkIn           = "enter_walk_in"
	ActionEnterSeatWaitlist     = "enter_seat_waitlist"
	ActionEnterServerAssignment = "enter_server_assignment"
	ActionToggleAssignment      = "toggle_assignment"
	ActionApplyAssignments      = "apply_assignments"
	ActionExitMode              = "exit_mode"

	ActionRefresh    = "refresh"
	ActionResetState = "reset"
)

var (
	ErrSessionClosed        = errors.New("floor session closed")
	ErrUnknownAction        = errors.New("unknown floor action")
	ErrUnknownPayloadKind   = errors.New("unknown drag payload kind")
	ErrUnknownReservation   = errors.New("reservation not in current snapshot")
	ErrUnknownWaitlistEntry = errors.New("waitlist entry not in current snapshot")
	ErrPartySizeRequired    = errors.New("party size required")
	ErrServerRequired       = errors.New("server id required for assignment mode")
	ErrNotAssigning         = errors.New("not in server assignment mode")
)

// FloorCommand is the decoded payload of a floor action. Only the fields
// relevant to the action are read.
type FloorCommand struct {
	Kind          string `json:"kind,omitempty"`
	TableID       int    `json:"tableId,omitempty"`
	ReservationID int    `json:"reservationId,omitempty"`
	WaitlistUUID  string `json:"waitlistUuid,omitempty"`
	ServerID      string `json:"serverId,omitempty"`
	Name          string `json:"name,omitempty"`
	PartySize     int    `json:"partySize,omitempty"`

	X float64 `json:"x,omitempty"`
	Y float64 `json:"y,omitempty"`

	Date string `json:"date,omitempty"`

	Bounds      *floor.Bounds `json:"bounds,omitempty"`
	MinCapacity int           `json:"minCapacity,omitempty"`
	MaxCapacity int           `json:"maxCapacity,omitempty"`
	Available   bool          `json:"available"`
}

// FloorView is the full floor snapshot broadcast to a section's devices after
// every state-changing command and on backend change events.
type FloorView struct {
	Date     string                  `json:"date,omitempty"`
	Tables   []floor.TableWithStatus `json:"tables"`
	Waitlist []waitlist.Entry        `json:"waitlist,omitempty"`
	Drag     floor.DragSession       `json:"drag"`
	State    floor.StateView         `json:"state"`
}

// Broadcaster publishes realtime messages to the hub.
type Broadcaster interface {
	Execute(ctx context.Context, msg *rtdomain.Message)
}

// SessionParams wires one floor session to its connection identity and the
// backend ports.
type SessionParams struct {
	Token           string
	UserID          string
	DeviceSessionID string
	RestaurantID    string
	SectionID       string
	Date            string

	Fetcher   port.FloorSnapshotFetcher
	Submitter port.AssignmentSubmitter
	Broadcast Broadcaster

	Projector       floor.ProjectorConfig
	ZoneSettleDelay time.Duration

	// Now overrides the wall clock in tests.
	Now func() time.Time
}

// FloorSession owns the interaction state for one connected floor device: the
// selection/mode state machine, the drop-zone registry, the drag coordinator
// and the last fetched snapshot. Commands arrive in order from the
// connection's read pump; the mutex guards against concurrent refreshes
// triggered by broker events.
type FloorSession struct {
	mu     sync.Mutex
	closed bool

	token           string
	userID          string
	deviceSessionID string
	restaurantID    string
	sectionID       string

	state       *floor.FloorState
	registry    *floor.ZoneRegistry
	coordinator *floor.DragCoordinator
	snapshot    *port.FloorSnapshot

	fetcher   port.FloorSnapshotFetcher
	submitter port.AssignmentSubmitter
	broadcast Broadcaster

	projector   floor.ProjectorConfig
	settleDelay time.Duration
	settle      map[int]*time.Timer
	now         func() time.Time
}

func NewFloorSession(p SessionParams) *FloorSession {
	s := &FloorSession{
		token:           p.Token,
		userID:          strings.TrimSpace(p.UserID),
		deviceSessionID: strings.TrimSpace(p.DeviceSessionID),
		restaurantID:    strings.TrimSpace(p.RestaurantID),
		sectionID:       strings.TrimSpace(p.SectionID),
		state:           floor.NewFloorState(),
		registry:        floor.NewZoneRegistry(),
		fetcher:         p.Fetcher,
		submitter:       p.Submitter,
		broadcast:       p.Broadcast,
		projector:       p.Projector,
		settleDelay:     p.ZoneSettleDelay,
		settle:          make(map[int]*time.Timer),
		now:             p.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.state.SetSection(s.sectionID)
	s.state.SetDate(p.Date)
	s.coordinator = floor.NewDragCoordinator(s.registry, s.state, floor.FeedbackFunc(s.emitFeedback), nil)
	return s
}

// RestaurantID returns the restaurant this session is scoped to.
func (s *FloorSession) RestaurantID() string { return s.restaurantID }

// SectionID returns the section whose floor this session drives.
func (s *FloorSession) SectionID() string { return s.sectionID }

// Handle executes one floor command and broadcasts the resulting floor view.
// The view is broadcast even when the command itself fails, because failed
// commands can still change observable state (a rejected drop resets the drag
// session).
func (s *FloorSession) Handle(ctx context.Context, action string, cmd FloorCommand) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}

	broadcast := true
	var err error

	switch strings.ToLower(strings.TrimSpace(action)) {
	case ActionRegisterZone:
		s.registerZone(cmd)
		broadcast = false
	case ActionUnregisterZone:
		s.unregisterZone(cmd.TableID)
		broadcast = false
	case ActionClearZones:
		s.clearZones()
		broadcast = false

	case ActionDragStart:
		err = s.dragStart(cmd)
	case ActionDragMove:
		s.coordinator.Update(cmd.X, cmd.Y)
	case ActionDragEnd:
		err = s.dragEnd(ctx, cmd)
	case ActionDragCancel:
		s.coordinator.Cancel()

	case ActionSelectTable:
		s.state.SelectTable(cmd.TableID)
	case ActionSelectReservation:
		s.state.SelectReservation(cmd.ReservationID)
	case ActionSelectWaitlist:
		s.state.SelectWaitlist(cmd.WaitlistUUID)
	case ActionClearSelection:
		s.state.ClearSelection()

	case ActionSetDate:
		s.state.SetDate(cmd.Date)
		err = s.refreshLocked(ctx)
	case ActionAddWaitlist:
		err = s.addWaitlistEntry(cmd)
	case ActionEnterWalkIn:
		s.state.EnterWalkInMode(cmd.TableID, cmd.PartySize)
	case ActionEnterSeatWaitlist:
		err = s.enterSeatWaitlist(cmd.WaitlistUUID)
	case ActionEnterServerAssignment:
		err = s.enterServerAssignment(cmd.ServerID)
	case ActionToggleAssignment:
		if !s.state.ToggleAssignment(cmd.TableID) {
			err = ErrNotAssigning
		}
	case ActionApplyAssignments:
		err = s.applyAssignments(ctx)
	case ActionExitMode:
		s.state.ExitMode()

	case ActionRefresh:
		err = s.refreshLocked(ctx)
	case ActionResetState:
		s.resetLocked()

	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	if broadcast {
		s.broadcastViewLocked(ctx)
	}
	return err
}

// Refresh re-fetches the floor snapshot from the backend.
func (s *FloorSession) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	return s.refreshLocked(ctx)
}

// BroadcastView publishes the current floor view to the section's view topic.
func (s *FloorSession) BroadcastView(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.broadcastViewLocked(ctx)
}

// Close tears the session down: pending zone timers are stopped and an
// in-flight drag is cancelled so nothing fires after the connection is gone.
func (s *FloorSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for tableID, timer := range s.settle {
		timer.Stop()
		delete(s.settle, tableID)
	}
	s.coordinator.Cancel()
}

// registerZone records a drop zone, delayed by the settle window so bounds
// measured mid-layout-animation are superseded before they ever land.
func (s *FloorSession) registerZone(cmd FloorCommand) {
	if cmd.TableID <= 0 || cmd.Bounds == nil {
		return
	}
	zone := floor.DropZone{
		TableID:     cmd.TableID,
		Bounds:      *cmd.Bounds,
		MinCapacity: cmd.MinCapacity,
		MaxCapacity: cmd.MaxCapacity,
		Available:   cmd.Available,
	}
	if s.settleDelay <= 0 {
		s.registry.Register(zone)
		return
	}
	if timer, ok := s.settle[zone.TableID]; ok {
		timer.Stop()
	}
	tableID := zone.TableID
	s.settle[tableID] = time.AfterFunc(s.settleDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		delete(s.settle, tableID)
		s.registry.Register(zone)
	})
}

func (s *FloorSession) unregisterZone(tableID int) {
	if timer, ok := s.settle[tableID]; ok {
		timer.Stop()
		delete(s.settle, tableID)
	}
	s.registry.Unregister(tableID)
}

func (s *FloorSession) clearZones() {
	for tableID, timer := range s.settle {
		timer.Stop()
		delete(s.settle, tableID)
	}
	s.registry.Clear()
}

func (s *FloorSession) dragStart(cmd FloorCommand) error {
	payload, err := s.dragPayload(cmd)
	if err != nil {
		return err
	}
	return s.coordinator.Start(payload, cmd.X, cmd.Y)
}

// dragPayload resolves the command into a payload from the snapshot, so the
// party size and name the validator sees are the backend's, not the client's.
func (s *FloorSession) dragPayload(cmd FloorCommand) (floor.DragPayload, error) {
	switch floor.PayloadKind(strings.TrimSpace(cmd.Kind)) {
	case floor.PayloadReservation:
		item, ok := s.findReservation(cmd.ReservationID)
		if !ok {
			return floor.DragPayload{}, ErrUnknownReservation
		}
		return floor.ReservationPayload(item.ID, item.Name, item.Covers), nil
	case floor.PayloadWaitlistEntry:
		entry, ok := s.findWaitlistEntry(cmd.WaitlistUUID)
		if !ok {
			return floor.DragPayload{}, ErrUnknownWaitlistEntry
		}
		return floor.WaitlistPayload(entry.UUID, entry.Name, entry.PartySize), nil
	case floor.PayloadWalkIn:
		partySize := cmd.PartySize
		if partySize <= 0 {
			partySize = s.state.WalkInPartySize
		}
		if partySize <= 0 {
			return floor.DragPayload{}, ErrPartySizeRequired
		}
		return floor.WalkInPayload(cmd.Name, partySize), nil
	default:
		return floor.DragPayload{}, fmt.Errorf("%w: %q", ErrUnknownPayloadKind, cmd.Kind)
	}
}

func (s *FloorSession) dragEnd(ctx context.Context, cmd FloorCommand) error {
	result, dropped := s.coordinator.End(cmd.X, cmd.Y)
	if !dropped {
		return nil
	}
	return s.performDrop(ctx, result)
}

// performDrop turns a validated drop into the backend mutation it implies,
// exits the mode the drop completed, and refreshes the snapshot so the next
// view reflects the backend's answer.
func (s *FloorSession) performDrop(ctx context.Context, result floor.DropResult) error {
	var err error
	switch result.Payload.Kind {
	case floor.PayloadWalkIn:
		err = s.submitter.SeatWalkIn(ctx, s.token, result.TableID, result.Payload.PartySize, result.Payload.Name)
	case floor.PayloadWaitlistEntry:
		err = s.submitter.SeatWaitlistEntry(ctx, s.token, result.TableID, result.Payload.WaitlistUUID)
	case floor.PayloadReservation:
		err = s.submitter.MoveReservation(ctx, s.token, result.Payload.ReservationID, result.TableID)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPayloadKind, result.Payload.Kind)
	}
	if err != nil {
		return fmt.Errorf("submit drop: %w", err)
	}

	switch s.state.Mode {
	case floor.ModeWalkIn, floor.ModeSeatWaitlist:
		s.state.ExitMode()
	}
	return s.refreshLocked(ctx)
}

// addWaitlistEntry stages a locally created waitlist entry into the current
// snapshot so the party is visible (and draggable) before the next backend
// sync replaces it with the canonical record.
func (s *FloorSession) addWaitlistEntry(cmd FloorCommand) error {
	if cmd.PartySize <= 0 {
		return ErrPartySizeRequired
	}
	entry := waitlist.NewLocalEntry(cmd.Name, cmd.PartySize)
	if s.snapshot == nil {
		s.snapshot = &port.FloorSnapshot{}
	}
	s.snapshot.Waitlist = append(s.snapshot.Waitlist, entry)
	return nil
}

func (s *FloorSession) enterSeatWaitlist(uuid string) error {
	if _, ok := s.findWaitlistEntry(uuid); !ok {
		return ErrUnknownWaitlistEntry
	}
	s.state.EnterSeatWaitlistMode(uuid)
	return nil
}

func (s *FloorSession) enterServerAssignment(serverID string) error {
	if strings.TrimSpace(serverID) == "" {
		return ErrServerRequired
	}
	var current map[int]string
	if s.snapshot != nil {
		current = s.snapshot.ServerAssignments
	}
	s.state.EnterServerAssignmentMode(serverID, current)
	return nil
}

// applyAssignments submits the staged diff as one batch and exits the mode.
// With nothing staged it just exits; the staged edits survive a failed
// submit so the user can retry.
func (s *FloorSession) applyAssignments(ctx context.Context) error {
	edits := s.state.PendingAssignments()
	if len(edits) == 0 {
		s.state.ExitMode()
		return nil
	}
	if err := s.submitter.SubmitAssignments(ctx, s.token, s.restaurantID, edits); err != nil {
		return fmt.Errorf("submit assignments: %w", err)
	}
	s.state.ExitMode()
	return s.refreshLocked(ctx)
}

func (s *FloorSession) refreshLocked(ctx context.Context) error {
	snapshot, err := s.fetcher.FetchFloorSnapshot(ctx, s.token, s.restaurantID, s.sectionID, s.state.SelectedDate)
	if err != nil {
		return fmt.Errorf("fetch floor snapshot: %w", err)
	}
	s.snapshot = snapshot
	return nil
}

func (s *FloorSession) resetLocked() {
	s.state.Reset()
	s.state.SetSection(s.sectionID)
	s.coordinator.Cancel()
	s.clearZones()
	s.snapshot = nil
}

func (s *FloorSession) viewLocked() FloorView {
	view := FloorView{
		Date:  s.state.SelectedDate,
		Drag:  s.coordinator.Session(),
		State: s.state.View(),
	}
	if s.snapshot != nil {
		view.Tables = floor.ProjectTables(s.snapshot.Tables, s.snapshot.Reservations, s.now(), s.projector)
		view.Waitlist = s.snapshot.Waitlist
	}
	return view
}

func (s *FloorSession) broadcastViewLocked(ctx context.Context) {
	if s.broadcast == nil {
		return
	}
	msg := rtdomain.Message{
		Topic:      rtdomain.FloorViewTopic(s.restaurantID, s.sectionID),
		Entity:     rtdomain.FloorEntity,
		Action:     rtdomain.ActionView,
		ResourceID: s.sectionID,
		Metadata: map[string]string{
			"restaurantId":    s.restaurantID,
			"deviceSessionId": s.deviceSessionID,
		},
		Data:      s.viewLocked(),
		Timestamp: s.now().UTC(),
	}
	s.broadcast.Execute(ctx, &msg)
}

// emitFeedback publishes a drag feedback cue targeted at the originating
// device only; other devices watching the same section see the view change
// but must not vibrate.
func (s *FloorSession) emitFeedback(event floor.FeedbackEvent) {
	if s.broadcast == nil {
		return
	}
	msg := rtdomain.Message{
		Topic:      rtdomain.FloorFeedbackTopic(s.restaurantID, s.sectionID),
		Entity:     rtdomain.FloorEntity,
		Action:     rtdomain.ActionFeedback,
		ResourceID: s.sectionID,
		Metadata: map[string]string{
			"restaurantId":    s.restaurantID,
			"deviceSessionId": s.deviceSessionID,
		},
		Data:      map[string]any{"event": string(event)},
		Timestamp: s.now().UTC(),
	}
	s.broadcast.Execute(context.Background(), &msg)
}

func (s *FloorSession) findReservation(id int) (reservations.Reservation, bool) {
	if s.snapshot == nil || id <= 0 {
		return reservations.Reservation{}, false
	}
	for _, item := range s.snapshot.Reservations {
		if item.ID == id {
			return item, true
		}
	}
	return reservations.Reservation{}, false
}

func (s *FloorSession) findWaitlistEntry(uuid string) (waitlist.Entry, bool) {
	uuid = strings.TrimSpace(uuid)
	if s.snapshot == nil || uuid == "" {
		return waitlist.Entry{}, false
	}
	for _, entry := range s.snapshot.Waitlist {
		if entry.UUID == uuid {
			return entry, true
		}
	}
	return waitlist.Entry{}, false
}

// SessionManager tracks the live floor sessions so broker change events can
// push fresh snapshots to every device watching an affected section.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[*FloorSession]struct{}
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[*FloorSession]struct{})}
}

func (m *SessionManager) Add(s *FloorSession) {
	if s == nil {
		return
	}
	m.mu.Lock()
	m.sessions[s] = struct{}{}
	m.mu.Unlock()
}

func (m *SessionManager) Remove(s *FloorSession) {
	m.mu.Lock()
	delete(m.sessions, s)
	m.mu.Unlock()
}

// RefreshSection re-fetches and re-broadcasts every session scoped to the
// given restaurant and section. Empty arguments act as wildcards.
func (m *SessionManager) RefreshSection(ctx context.Context, restaurantID, sectionID string) {
	restaurantID = strings.TrimSpace(restaurantID)
	sectionID = strings.TrimSpace(sectionID)

	m.mu.RLock()
	targets := make([]*FloorSession, 0, len(m.sessions))
	for s := range m.sessions {
		if restaurantID != "" && s.restaurantID != restaurantID {
			continue
		}
		if sectionID != "" && s.sectionID != sectionID {
			continue
		}
		targets = append(targets, s)
	}
	m.mu.RUnlock()

	for _, s := range targets {
		if err := s.Refresh(ctx); err != nil {
			if errors.Is(err, ErrSessionClosed) {
				continue
			}
			slog.Warn("floor refresh failed", slog.String("restaurantId", s.restaurantID), slog.String("sectionId", s.sectionID), slog.Any("error", err))
			continue
		}
		s.BroadcastView(ctx)
	}
}
