package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type feedbackRecorder struct {
	events []FeedbackEvent
}

func (r *feedbackRecorder) Emit(event FeedbackEvent) {
	r.events = append(r.events, event)
}

type dragFixture struct {
	registry *ZoneRegistry
	floor    *FloorState
	feedback *feedbackRecorder
	drops    []DropResult
	coord    *DragCoordinator
}

func newDragFixture() *dragFixture {
	f := &dragFixture{
		registry: NewZoneRegistry(),
		floor:    NewFloorState(),
		feedback: &feedbackRecorder{},
	}
	f.coord = NewDragCoordinator(f.registry, f.floor, f.feedback, func(tableID int, payload DragPayload) {
		f.drops = append(f.drops, DropResult{TableID: tableID, Payload: payload})
	})
	return f
}

func TestDragStartClearsSelectionAndEmitsFeedback(t *testing.T) {
	f := newDragFixture()
	f.floor.SelectReservation(42)

	err := f.coord.Start(WalkInPayload("party", 2), 10, 10)
	require.NoError(t, err)

	require.Zero(t, f.floor.SelectedReservationID, "a drag supersedes the selection")
	require.Equal(t, []FeedbackEvent{FeedbackDragStart}, f.feedback.events)

	session := f.coord.Session()
	require.True(t, session.Active)
	require.Equal(t, PayloadWalkIn, session.Payload.Kind)
	require.Equal(t, Pointer{X: 10, Y: 10}, session.Pointer)
}

func TestDragStartWhileActiveFails(t *testing.T) {
	f := newDragFixture()
	require.NoError(t, f.coord.Start(WalkInPayload("a", 2), 0, 0))

	err := f.coord.Start(WalkInPayload("b", 2), 0, 0)
	require.ErrorIs(t, err, ErrDragActive)
}

func TestDragStartRejectsEmptyPayload(t *testing.T) {
	f := newDragFixture()
	err := f.coord.Start(DragPayload{}, 0, 0)
	require.ErrorIs(t, err, ErrDragPayload)
	require.False(t, f.coord.Session().Active)
}

func TestDragSessionInvariantInactiveMeansNoPayload(t *testing.T) {
	f := newDragFixture()

	session := f.coord.Session()
	require.False(t, session.Active)
	require.True(t, session.Payload.IsZero())

	require.NoError(t, f.coord.Start(WalkInPayload("party", 2), 0, 0))
	f.coord.Cancel()

	session = f.coord.Session()
	require.False(t, session.Active)
	require.True(t, session.Payload.IsZero(), "ending a drag discards its payload")
}

func TestDragHoverFeedbackOncePerTransition(t *testing.T) {
	f := newDragFixture()
	f.registry.Register(zoneAt(1, 0, 0, 100, 100))

	require.NoError(t, f.coord.Start(WalkInPayload("party", 2), 200, 200))
	f.feedback.events = nil

	// High-frequency pointer ticks inside the same zone.
	f.coord.Update(10, 10)
	f.coord.Update(20, 20)
	f.coord.Update(30, 30)
	require.Equal(t, []FeedbackEvent{FeedbackHoverChanged}, f.feedback.events)
	require.Equal(t, 1, f.coord.Session().HoveredTableID)

	// Leaving the zone is a transition too.
	f.coord.Update(300, 300)
	require.Equal(t, []FeedbackEvent{FeedbackHoverChanged, FeedbackHoverChanged}, f.feedback.events)
	require.Zero(t, f.coord.Session().HoveredTableID)
}

func TestDragHoverDecisionTracksZoneValidity(t *testing.T) {
	f := newDragFixture()
	f.registry.Register(DropZone{
		TableID:     3,
		Bounds:      Bounds{X: 0, Y: 0, Width: 100, Height: 100},
		MinCapacity: 2,
		MaxCapacity: 4,
		Available:   true,
	})

	require.NoError(t, f.coord.Start(WaitlistPayload("wl-1", "big party", 6), 200, 200))
	f.coord.Update(50, 50)

	session := f.coord.Session()
	require.NotNil(t, session.HoverDecision)
	require.False(t, session.HoverDecision.Valid, "hover highlight shows the drop would be rejected")
}

func TestDragEndOnValidZoneInvokesCallback(t *testing.T) {
	f := newDragFixture()
	f.registry.Register(zoneAt(7, 0, 0, 100, 100))

	require.NoError(t, f.coord.Start(ReservationPayload(42, "Elena", 3), 200, 200))
	f.feedback.events = nil

	result, dropped := f.coord.End(50, 50)
	require.True(t, dropped)
	require.Equal(t, 7, result.TableID)
	require.Equal(t, PayloadReservation, result.Payload.Kind)
	require.Equal(t, []FeedbackEvent{FeedbackDropSuccess}, f.feedback.events)
	require.Len(t, f.drops, 1)
	require.Equal(t, 7, f.drops[0].TableID)
	require.False(t, f.coord.Session().Active)
}

func TestDragEndOversizedWaitlistPartyRejected(t *testing.T) {
	f := newDragFixture()
	f.registry.Register(DropZone{
		TableID:     4,
		Bounds:      Bounds{X: 0, Y: 0, Width: 100, Height: 100},
		MinCapacity: 2,
		MaxCapacity: 4,
		Available:   true,
	})

	require.NoError(t, f.coord.Start(WaitlistPayload("wl-6", "six top", 6), 50, 50))
	f.feedback.events = nil

	_, dropped := f.coord.End(50, 50)
	require.False(t, dropped)
	require.Equal(t, []FeedbackEvent{FeedbackDropInvalid}, f.feedback.events)
	require.Empty(t, f.drops, "no callback on invalid drop")
	require.False(t, f.coord.Session().Active)
}

func TestDragEndOffAnyZoneIsAMiss(t *testing.T) {
	f := newDragFixture()
	f.registry.Register(zoneAt(1, 0, 0, 100, 100))

	require.NoError(t, f.coord.Start(WalkInPayload("party", 2), 50, 50))
	f.feedback.events = nil

	_, dropped := f.coord.End(500, 500)
	require.False(t, dropped)
	require.Equal(t, []FeedbackEvent{FeedbackDropMiss}, f.feedback.events)
	require.Empty(t, f.drops)
}

func TestDragCancel(t *testing.T) {
	f := newDragFixture()
	require.NoError(t, f.coord.Start(WalkInPayload("party", 2), 0, 0))
	f.feedback.events = nil

	f.coord.Cancel()
	require.Equal(t, []FeedbackEvent{FeedbackDragCancelled}, f.feedback.events)
	require.False(t, f.coord.Session().Active)
	require.Empty(t, f.drops)

	// Session is reusable after a cancel; nothing leaks.
	require.NoError(t, f.coord.Start(WalkInPayload("again", 2), 0, 0))
}

func TestDragIdleCallsAreNoOps(t *testing.T) {
	f := newDragFixture()

	f.coord.Update(10, 10)
	_, dropped := f.coord.End(10, 10)
	f.coord.Cancel()

	require.False(t, dropped)
	require.Empty(t, f.feedback.events)
}
