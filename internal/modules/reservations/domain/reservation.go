package domain

import "mesaYaFloor/internal/shared/normalization"

// Reservation represents a booking for the displayed service day. Time is the
// wall-clock "HH:MM" slot; TableIDs lists the tables the party is assigned to.
type Reservation struct {
	ID       int
	Name     string
	Covers   int
	Time     string
	Status   ReservationStatus
	TableIDs []int
	Notes    string
	SeatedAt string
}

// ReservationList aggregates reservations with pagination metadata.
type ReservationList struct {
	Items []Reservation
	Total int
}

// References reports whether the reservation is assigned to the given table.
func (r Reservation) References(tableID int) bool {
	for _, id := range r.TableIDs {
		if id == tableID {
			return true
		}
	}
	return false
}

// NormalizeReservation constructs a Reservation from a loosely typed map.
func NormalizeReservation(raw map[string]any) (Reservation, bool) {
	id := normalization.AsInt(raw["id"])
	if id <= 0 {
		return Reservation{}, false
	}

	reservation := Reservation{
		ID:       id,
		Name:     normalization.AsString(raw["name"]),
		Covers:   normalization.AsInt(raw["covers"]),
		Time:     normalization.AsString(raw["time"]),
		TableIDs: normalization.AsIntSlice(raw["table_ids"]),
		Notes:    normalization.AsString(raw["notes"]),
		SeatedAt: normalization.AsString(raw["seated_at"]),
	}
	if reservation.Covers == 0 {
		reservation.Covers = normalization.AsInt(raw["partySize"])
	}

	status := NormalizeReservationStatus(raw["status"])
	if status == ReservationStatusUnknown {
		status = NormalizeReservationStatus(raw["state"])
	}
	reservation.Status = status

	return reservation, true
}

// BuildReservationList projects payloads into a ReservationList.
func BuildReservationList(payload any) (*ReservationList, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}

	rawItems := normalization.AsInterfaceSlice(container["items"])
	if len(rawItems) == 0 {
		rawItems = normalization.AsInterfaceSlice(container["reservations"])
	}
	if len(rawItems) == 0 {
		return nil, false
	}

	result := &ReservationList{Items: make([]Reservation, 0, len(rawItems))}
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if reservation, ok := NormalizeReservation(rawMap); ok {
				result.Items = append(result.Items, reservation)
			}
		}
	}
	if len(result.Items) == 0 {
		return nil, false
	}

	if total := normalization.AsInt(container["total"]); total > 0 {
		result.Total = total
	} else {
		result.Total = len(result.Items)
	}

	return result, true
}
