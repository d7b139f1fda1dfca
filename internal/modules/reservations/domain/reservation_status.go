package domain

import "strings"

// ReservationStatus represents the lifecycle of a reservation as exposed by the REST API.
type ReservationStatus string

const (
	ReservationStatusUnknown   ReservationStatus = ""
	ReservationStatusBooked    ReservationStatus = "BOOKED"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusSeated    ReservationStatus = "SEATED"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusNoShow    ReservationStatus = "NO_SHOW"
)

var allowedReservationStatuses = map[string]ReservationStatus{
	string(ReservationStatusBooked):    ReservationStatusBooked,
	string(ReservationStatusConfirmed): ReservationStatusConfirmed,
	string(ReservationStatusSeated):    ReservationStatusSeated,
	string(ReservationStatusCompleted): ReservationStatusCompleted,
	string(ReservationStatusCancelled): ReservationStatusCancelled,
	string(ReservationStatusNoShow):    ReservationStatusNoShow,
}

// NormalizeReservationStatus returns the canonical ReservationStatus for the given input.
// Unknown statuses are uppercased and returned as-is to avoid data loss.
func NormalizeReservationStatus(value any) ReservationStatus {
	s, ok := value.(string)
	if !ok {
		return ReservationStatusUnknown
	}
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if trimmed == "" {
		return ReservationStatusUnknown
	}
	if status, ok := allowedReservationStatuses[trimmed]; ok {
		return status
	}
	return ReservationStatus(trimmed)
}

// Expected reports whether the reservation still anticipates a party arriving.
func (s ReservationStatus) Expected() bool {
	return s == ReservationStatusBooked || s == ReservationStatusConfirmed
}
