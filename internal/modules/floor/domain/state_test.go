package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func selectionCount(s *FloorState) int {
	count := 0
	if s.SelectedTableID != 0 {
		count++
	}
	if s.SelectedReservationID != 0 {
		count++
	}
	if s.SelectedWaitlistUUID != "" {
		count++
	}
	return count
}

func TestSelectionIsMutuallyExclusive(t *testing.T) {
	state := NewFloorState()

	state.SelectTable(3)
	require.Equal(t, 3, state.SelectedTableID)
	require.LessOrEqual(t, selectionCount(state), 1)

	state.SelectReservation(9)
	require.Zero(t, state.SelectedTableID)
	require.Equal(t, 9, state.SelectedReservationID)
	require.LessOrEqual(t, selectionCount(state), 1)

	state.SelectWaitlist("wl-1")
	require.Zero(t, state.SelectedReservationID)
	require.Equal(t, "wl-1", state.SelectedWaitlistUUID)
	require.LessOrEqual(t, selectionCount(state), 1)

	state.ClearSelection()
	require.Zero(t, selectionCount(state))
}

func TestDateAndSectionChangesDropSelection(t *testing.T) {
	state := NewFloorState()
	state.SelectTable(4)

	state.SetDate("2026-08-30")
	require.Zero(t, selectionCount(state))

	state.SelectTable(4)
	state.SetSection("patio")
	require.Zero(t, selectionCount(state))
	require.Equal(t, "patio", state.SelectedSectionID)
}

func TestEnterModeClearsSelectionAndPriorModeData(t *testing.T) {
	state := NewFloorState()
	state.SelectTable(2)

	state.EnterWalkInMode(2, 4)
	require.Equal(t, ModeWalkIn, state.Mode)
	require.Zero(t, selectionCount(state))
	require.Equal(t, 2, state.WalkInTableID)
	require.Equal(t, 4, state.WalkInPartySize)

	// Switching modes discards the walk-in data.
	state.EnterServerAssignmentMode("srv-1", nil)
	require.Equal(t, ModeServerAssignment, state.Mode)
	require.Zero(t, state.WalkInTableID)
	require.Zero(t, state.WalkInPartySize)
	require.Equal(t, "srv-1", state.AssigningServerID)

	state.EnterSeatWaitlistMode("wl-7")
	require.Equal(t, ModeSeatWaitlist, state.Mode)
	require.Empty(t, state.AssigningServerID)
	require.Equal(t, "wl-7", state.SeatingUUID)

	state.ExitMode()
	require.Equal(t, ModeNormal, state.Mode)
	require.Empty(t, state.SeatingUUID)
}

func TestToggleAssignmentStagesDiff(t *testing.T) {
	state := NewFloorState()
	state.EnterServerAssignmentMode("srv-1", map[int]string{2: "srv-2"})

	require.True(t, state.ToggleAssignment(1))
	require.True(t, state.ToggleAssignment(2))

	require.Equal(t, []ServerAssignment{
		{TableID: 1, ServerID: "srv-1"},
		{TableID: 2, ServerID: "srv-1"},
	}, state.PendingAssignments())
}

func TestToggleAssignmentRemovalForOwnTable(t *testing.T) {
	state := NewFloorState()
	state.EnterServerAssignmentMode("srv-1", map[int]string{5: "srv-1"})

	require.True(t, state.ToggleAssignment(5))
	require.Equal(t, []ServerAssignment{{TableID: 5, ServerID: ""}}, state.PendingAssignments(),
		"toggling a table already held by this server stages an explicit removal")
}

func TestToggleAssignmentIsItsOwnInverse(t *testing.T) {
	cases := []struct {
		name string
		base map[int]string
	}{
		{name: "unassigned table", base: nil},
		{name: "table held by this server", base: map[int]string{8: "srv-1"}},
		{name: "table held by another server", base: map[int]string{8: "srv-2"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := NewFloorState()
			state.EnterServerAssignmentMode("srv-1", tc.base)
			before := state.PendingAssignments()

			require.True(t, state.ToggleAssignment(8))
			require.True(t, state.ToggleAssignment(8))
			require.Equal(t, before, state.PendingAssignments())
		})
	}
}

func TestToggleAssignmentOutsideModeFails(t *testing.T) {
	state := NewFloorState()
	require.False(t, state.ToggleAssignment(1))

	state.EnterWalkInMode(0, 0)
	require.False(t, state.ToggleAssignment(1))
	require.False(t, state.HasPending())
}

func TestExitServerAssignmentDiscardsPendingSilently(t *testing.T) {
	state := NewFloorState()
	state.EnterServerAssignmentMode("srv-1", nil)
	state.ToggleAssignment(1)
	state.ToggleAssignment(2)
	require.True(t, state.HasPending())

	state.ExitMode()
	require.False(t, state.HasPending())
	require.Empty(t, state.AssigningServerID)

	// Re-entering starts from a clean slate.
	state.EnterServerAssignmentMode("srv-1", nil)
	require.Empty(t, state.PendingAssignments())
}

func TestReset(t *testing.T) {
	state := NewFloorState()
	state.SetDate("2026-08-30")
	state.SetSection("patio")
	state.EnterServerAssignmentMode("srv-1", nil)
	state.ToggleAssignment(3)

	state.Reset()
	require.Equal(t, ModeNormal, state.Mode)
	require.Empty(t, state.SelectedDate)
	require.Empty(t, state.SelectedSectionID)
	require.False(t, state.HasPending())
	require.Zero(t, selectionCount(state))
}

func TestStateView(t *testing.T) {
	state := NewFloorState()
	state.SetDate("2026-08-30")
	state.EnterServerAssignmentMode("srv-1", nil)
	state.ToggleAssignment(4)

	view := state.View()
	require.Equal(t, ModeServerAssignment, view.Mode)
	require.Equal(t, "srv-1", view.AssigningServerID)
	require.Equal(t, []ServerAssignment{{TableID: 4, ServerID: "srv-1"}}, view.PendingAssignments)
}
