package domain

import (
	"sort"
	"strings"
)

// FloorMode is the exclusive interaction mode governing what taps and drags
// on the floor view mean.
type FloorMode string

const (
	ModeNormal           FloorMode = "NORMAL"
	ModeWalkIn           FloorMode = "WALK_IN"
	ModeSeatWaitlist     FloorMode = "SEAT_WAITLIST"
	ModeServerAssignment FloorMode = "SERVER_ASSIGNMENT"
)

// ServerAssignment is one staged table→server edit. An empty ServerID is an
// explicit removal. The pending set is the diff submitted as a batch to the
// backend; it is never applied to table state locally.
type ServerAssignment struct {
	TableID  int    `json:"tableId"`
	ServerID string `json:"serverId,omitempty"`
}

// FloorState is the single source of truth for what is selected on the
// service floor and which interaction mode is active. At most one of the
// three selection fields is set at any time. Mode data is only meaningful
// for the active mode and is discarded on exit. Single-writer: only the
// event path owning the session mutates it, always through these methods.
type FloorState struct {
	SelectedDate      string
	SelectedSectionID string

	SelectedTableID       int
	SelectedReservationID int
	SelectedWaitlistUUID  string

	Mode FloorMode

	WalkInTableID     int
	WalkInPartySize   int
	SeatingUUID       string
	AssigningServerID string

	// baseAssignments is the table→server mapping as last synced from the
	// backend, captured on server-assignment mode entry so toggles stage a
	// diff against it. pending holds the staged edits keyed by table id.
	baseAssignments map[int]string
	pending         map[int]string
}

func NewFloorState() *FloorState {
	return &FloorState{Mode: ModeNormal}
}

// SetDate switches the displayed service day, dropping any selection that
// referred to the previous day's data.
func (s *FloorState) SetDate(date string) {
	s.SelectedDate = strings.TrimSpace(date)
	s.ClearSelection()
}

// SetSection switches the displayed section, dropping any selection.
func (s *FloorState) SetSection(sectionID string) {
	s.SelectedSectionID = strings.TrimSpace(sectionID)
	s.ClearSelection()
}

// SelectTable selects a table, clearing any other selection.
func (s *FloorState) SelectTable(tableID int) {
	s.ClearSelection()
	s.SelectedTableID = tableID
}

// SelectReservation selects a reservation, clearing any other selection.
func (s *FloorState) SelectReservation(reservationID int) {
	s.ClearSelection()
	s.SelectedReservationID = reservationID
}

// SelectWaitlist selects a waitlist entry, clearing any other selection.
func (s *FloorState) SelectWaitlist(uuid string) {
	s.ClearSelection()
	s.SelectedWaitlistUUID = strings.TrimSpace(uuid)
}

// ClearSelection drops whatever is selected.
func (s *FloorState) ClearSelection() {
	s.SelectedTableID = 0
	s.SelectedReservationID = 0
	s.SelectedWaitlistUUID = ""
}

// EnterWalkInMode starts seating an ad-hoc party. Table and party size may
// be pre-seeded when the user tapped an empty table first.
func (s *FloorState) EnterWalkInMode(tableID, partySize int) {
	s.enterMode(ModeWalkIn)
	s.WalkInTableID = tableID
	s.WalkInPartySize = partySize
}

// EnterSeatWaitlistMode starts seating the given waitlist entry.
func (s *FloorState) EnterSeatWaitlistMode(uuid string) {
	s.enterMode(ModeSeatWaitlist)
	s.SeatingUUID = strings.TrimSpace(uuid)
}

// EnterServerAssignmentMode starts editing table→server assignments for the
// given server. current is the backend's table→server mapping; toggles are
// staged as a diff against it.
func (s *FloorState) EnterServerAssignmentMode(serverID string, current map[int]string) {
	s.enterMode(ModeServerAssignment)
	s.AssigningServerID = strings.TrimSpace(serverID)
	s.baseAssignments = make(map[int]string, len(current))
	for tableID, server := range current {
		if trimmed := strings.TrimSpace(server); trimmed != "" {
			s.baseAssignments[tableID] = trimmed
		}
	}
	s.pending = make(map[int]string)
}

// ToggleAssignment toggles whether the table is assigned to the mode's
// server. Toggling a table assigned to this server stages an explicit
// removal; toggling anything else stages an assignment. Called twice in a
// row it restores the table's pre-toggle pending state. Returns false
// outside server-assignment mode.
func (s *FloorState) ToggleAssignment(tableID int) bool {
	if s.Mode != ModeServerAssignment || s.AssigningServerID == "" || tableID <= 0 {
		return false
	}

	cur, staged := s.pending[tableID]
	if staged && cur == s.AssigningServerID {
		// Undo the staged assignment.
		delete(s.pending, tableID)
		return true
	}

	effective := cur
	if !staged {
		effective = s.baseAssignments[tableID]
	}
	next := s.AssigningServerID
	if effective == s.AssigningServerID {
		next = ""
	}
	if next == s.baseAssignments[tableID] {
		delete(s.pending, tableID)
	} else {
		s.pending[tableID] = next
	}
	return true
}

// PendingAssignments returns the staged diff ordered by table id, ready for
// a single batched apply request.
func (s *FloorState) PendingAssignments() []ServerAssignment {
	if len(s.pending) == 0 {
		return nil
	}
	edits := make([]ServerAssignment, 0, len(s.pending))
	for tableID, serverID := range s.pending {
		edits = append(edits, ServerAssignment{TableID: tableID, ServerID: serverID})
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].TableID < edits[j].TableID })
	return edits
}

// HasPending reports whether any assignment edits are staged.
func (s *FloorState) HasPending() bool {
	return len(s.pending) > 0
}

// ExitMode returns to normal mode, discarding the exiting mode's transient
// data. Pending assignments are dropped without submitting; callers submit
// first when the edits should persist.
func (s *FloorState) ExitMode() {
	s.enterMode(ModeNormal)
}

// Reset restores the full initial state, used on logout or restaurant switch.
func (s *FloorState) Reset() {
	*s = FloorState{Mode: ModeNormal}
}

// enterMode switches mode, clearing the selection and every mode's
// transient data so nothing stale survives the transition.
func (s *FloorState) enterMode(mode FloorMode) {
	if mode != ModeNormal {
		s.ClearSelection()
	}
	s.Mode = mode
	s.WalkInTableID = 0
	s.WalkInPartySize = 0
	s.SeatingUUID = ""
	s.AssigningServerID = ""
	s.baseAssignments = nil
	s.pending = nil
}

// StateView is the JSON projection of FloorState exposed to clients.
type StateView struct {
	SelectedDate          string             `json:"selectedDate,omitempty"`
	SelectedSectionID     string             `json:"selectedSectionId,omitempty"`
	SelectedTableID       int                `json:"selectedTableId,omitempty"`
	SelectedReservationID int                `json:"selectedReservationId,omitempty"`
	SelectedWaitlistUUID  string             `json:"selectedWaitlistUuid,omitempty"`
	Mode                  FloorMode          `json:"mode"`
	WalkInTableID         int                `json:"walkInTableId,omitempty"`
	WalkInPartySize       int                `json:"walkInPartySize,omitempty"`
	SeatingUUID           string             `json:"seatingUuid,omitempty"`
	AssigningServerID     string             `json:"assigningServerId,omitempty"`
	PendingAssignments    []ServerAssignment `json:"pendingAssignments,omitempty"`
}

// View snapshots the state for broadcasting.
func (s *FloorState) View() StateView {
	return StateView{
		SelectedDate:          s.SelectedDate,
		SelectedSectionID:     s.SelectedSectionID,
		SelectedTableID:       s.SelectedTableID,
		SelectedReservationID: s.SelectedReservationID,
		SelectedWaitlistUUID:  s.SelectedWaitlistUUID,
		Mode:                  s.Mode,
		WalkInTableID:         s.WalkInTableID,
		WalkInPartySize:       s.WalkInPartySize,
		SeatingUUID:           s.SeatingUUID,
		AssigningServerID:     s.AssigningServerID,
		PendingAssignments:    s.PendingAssignments(),
	}
}
