package domain

import "errors"

var (
	ErrDragActive  = errors.New("drag already active")
	ErrDragPayload = errors.New("drag payload missing")
)

// Pointer is the current drag position in absolute screen coordinates.
type Pointer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DragSession is the observable state of the drag lifecycle: whether a drag
// is active, what it carries, where the pointer is and which zone it hovers.
// Inactive sessions carry a zero payload. Exactly one session exists per
// coordinator; a new drag requires the prior one to have ended.
type DragSession struct {
	Active         bool          `json:"active"`
	Payload        DragPayload   `json:"payload"`
	Pointer        Pointer       `json:"pointer"`
	HoveredTableID int           `json:"hoveredTableId"`
	HoverDecision  *DropDecision `json:"hoverDecision,omitempty"`
}

// DropResult reports a validated drop: the target table and the payload that
// landed on it.
type DropResult struct {
	TableID  int
	Payload  DragPayload
	Decision DropDecision
}

// DropFunc is invoked after a successful validation. Performing the actual
// seating/assignment belongs to the caller, not the coordinator.
type DropFunc func(tableID int, payload DragPayload)

// DragCoordinator owns the semantic drag lifecycle. Gesture recognition
// (activation thresholds, pointer tracking) happens upstream; the
// coordinator only decides what is dragged, what it is over, and whether
// releasing there is legal. Single-writer: all calls come from the event
// path that owns the session.
type DragCoordinator struct {
	registry *ZoneRegistry
	floor    *FloorState
	feedback FeedbackSink
	onDrop   DropFunc
	session  DragSession
}

func NewDragCoordinator(registry *ZoneRegistry, floor *FloorState, feedback FeedbackSink, onDrop DropFunc) *DragCoordinator {
	return &DragCoordinator{
		registry: registry,
		floor:    floor,
		feedback: feedback,
		onDrop:   onDrop,
	}
}

// Start begins a drag with the given payload at the initial pointer
// position. A drag supersedes any floor selection, so the selection is
// cleared. Returns ErrDragActive when a session is already running.
func (c *DragCoordinator) Start(payload DragPayload, x, y float64) error {
	if c.session.Active {
		return ErrDragActive
	}
	if payload.IsZero() {
		return ErrDragPayload
	}
	if c.floor != nil {
		c.floor.ClearSelection()
	}
	c.session = DragSession{
		Active:  true,
		Payload: payload,
		Pointer: Pointer{X: x, Y: y},
	}
	c.emit(FeedbackDragStart)
	return nil
}

// Update moves the pointer and re-resolves the hovered zone. The hover
// feedback fires once per transition, not on every pointer tick. No-op when
// no drag is active.
func (c *DragCoordinator) Update(x, y float64) {
	if !c.session.Active {
		return
	}
	c.session.Pointer = Pointer{X: x, Y: y}

	hoveredID := 0
	var decision *DropDecision
	if zone, ok := c.registry.HitTest(x, y); ok {
		hoveredID = zone.TableID
		d := ValidateDrop(c.session.Payload, zone)
		decision = &d
	}

	if hoveredID != c.session.HoveredTableID {
		c.session.HoveredTableID = hoveredID
		c.session.HoverDecision = decision
		c.emit(FeedbackHoverChanged)
	}
}

// End releases the drag at the given point. When the release lands on a zone
// and validation passes, the drop callback fires with the target table and
// the payload; otherwise only feedback is emitted. The session always
// returns to idle. The boolean reports whether a drop was completed.
func (c *DragCoordinator) End(x, y float64) (DropResult, bool) {
	if !c.session.Active {
		return DropResult{}, false
	}
	payload := c.session.Payload
	c.session = DragSession{}

	zone, ok := c.registry.HitTest(x, y)
	if !ok {
		c.emit(FeedbackDropMiss)
		return DropResult{}, false
	}

	decision := ValidateDrop(payload, zone)
	if !decision.Valid {
		c.emit(FeedbackDropInvalid)
		return DropResult{}, false
	}

	c.emit(FeedbackDropSuccess)
	if c.onDrop != nil {
		c.onDrop(zone.TableID, payload)
	}
	return DropResult{TableID: zone.TableID, Payload: payload, Decision: decision}, true
}

// Cancel aborts an interrupted gesture (multi-touch conflict, app
// backgrounding). No validation, no callback; the session must never leak an
// active drag that blocks future gestures.
func (c *DragCoordinator) Cancel() {
	if !c.session.Active {
		return
	}
	c.session = DragSession{}
	c.emit(FeedbackDragCancelled)
}

// Session returns a copy of the current drag session for rendering.
func (c *DragCoordinator) Session() DragSession {
	session := c.session
	if session.HoverDecision != nil {
		decision := *session.HoverDecision
		session.HoverDecision = &decision
	}
	return session
}

func (c *DragCoordinator) emit(event FeedbackEvent) {
	if c.feedback != nil {
		c.feedback.Emit(event)
	}
}
