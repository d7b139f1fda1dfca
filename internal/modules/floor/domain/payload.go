package domain

import "strings"

// PayloadKind discriminates what a drag gesture is carrying.
type PayloadKind string

const (
	PayloadNone          PayloadKind = ""
	PayloadReservation   PayloadKind = "reservation"
	PayloadWaitlistEntry PayloadKind = "waitlistEntry"
	PayloadWalkIn        PayloadKind = "walkIn"
)

// DragPayload is the semantic "thing being dragged": a reservation being
// moved, a waitlist entry being seated, or an ad-hoc walk-in party.
// It is immutable once a drag starts; only the fields for its Kind are set.
type DragPayload struct {
	Kind          PayloadKind
	ReservationID int
	WaitlistUUID  string
	Name          string
	PartySize     int
}

// ReservationPayload builds the payload for dragging a reservation onto a table.
func ReservationPayload(id int, name string, partySize int) DragPayload {
	return DragPayload{
		Kind:          PayloadReservation,
		ReservationID: id,
		Name:          strings.TrimSpace(name),
		PartySize:     partySize,
	}
}

// WaitlistPayload builds the payload for seating a waitlist entry.
func WaitlistPayload(uuid, name string, partySize int) DragPayload {
	return DragPayload{
		Kind:         PayloadWaitlistEntry,
		WaitlistUUID: strings.TrimSpace(uuid),
		Name:         strings.TrimSpace(name),
		PartySize:    partySize,
	}
}

// WalkInPayload builds the payload for seating an ad-hoc walk-in party.
func WalkInPayload(name string, partySize int) DragPayload {
	return DragPayload{
		Kind:      PayloadWalkIn,
		Name:      strings.TrimSpace(name),
		PartySize: partySize,
	}
}

// IsZero reports whether no payload is present.
func (p DragPayload) IsZero() bool {
	return p.Kind == PayloadNone
}
