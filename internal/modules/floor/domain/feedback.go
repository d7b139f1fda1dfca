package domain

// FeedbackEvent names a discrete haptic/visual cue emitted by the drag
// lifecycle. The rendering layer maps each flavor to its own effect; tests
// assert on the events without a haptics backend.
type FeedbackEvent string

const (
	FeedbackDragStart     FeedbackEvent = "drag_start"
	FeedbackHoverChanged  FeedbackEvent = "hover_changed"
	FeedbackDropSuccess   FeedbackEvent = "drop_success"
	FeedbackDropInvalid   FeedbackEvent = "drop_invalid"
	FeedbackDropMiss      FeedbackEvent = "drop_miss"
	FeedbackDragCancelled FeedbackEvent = "drag_cancelled"
)

// FeedbackSink receives feedback events as they occur.
type FeedbackSink interface {
	Emit(event FeedbackEvent)
}

// FeedbackFunc adapts a function to the FeedbackSink interface.
type FeedbackFunc func(event FeedbackEvent)

func (f FeedbackFunc) Emit(event FeedbackEvent) { f(event) }
