package domain

import (
	"time"

	reservations "mesaYaFloor/internal/modules/reservations/domain"
	tables "mesaYaFloor/internal/modules/tables/domain"
)

// TableStatus is the derived live classification of a table.
type TableStatus string

const (
	StatusSeated    TableStatus = "seated"
	StatusUpcoming  TableStatus = "upcoming"
	StatusAvailable TableStatus = "available"
)

// TableWithStatus augments a table with its projected status and the
// reservations backing it. Derived on every projection, never stored.
type TableWithStatus struct {
	Table    tables.Table               `json:"table"`
	Status   TableStatus                `json:"status"`
	Current  *reservations.Reservation  `json:"currentReservation,omitempty"`
	Upcoming []reservations.Reservation `json:"upcomingReservations,omitempty"`
}

// ProjectorConfig tunes the upcoming-reservation window around now.
type ProjectorConfig struct {
	// UpcomingLateMinutes extends the window into the past for parties
	// running late.
	UpcomingLateMinutes int
	// UpcomingLeadMinutes extends the window into the future.
	UpcomingLeadMinutes int
	// DefaultTurnTimeMinutes is the assumed turn time. Not consumed by the
	// status decision; carried for clients that display it.
	DefaultTurnTimeMinutes int
}

func DefaultProjectorConfig() ProjectorConfig {
	return ProjectorConfig{
		UpcomingLateMinutes:    15,
		UpcomingLeadMinutes:    30,
		DefaultTurnTimeMinutes: 90,
	}
}

// ProjectTables derives each table's status from the day's reservations and
// the current wall-clock time. Pure: inputs are never mutated and identical
// inputs yield identical output. Reservations referencing unknown tables are
// ignored. Time comparison is minutes-since-midnight on the displayed day;
// date filtering is the caller's precondition.
func ProjectTables(tbls []tables.Table, items []reservations.Reservation, now time.Time, cfg ProjectorConfig) []TableWithStatus {
	if cfg.UpcomingLateMinutes <= 0 {
		cfg.UpcomingLateMinutes = 15
	}
	if cfg.UpcomingLeadMinutes <= 0 {
		cfg.UpcomingLeadMinutes = 30
	}
	nowMinutes := reservations.ClockMinutes(now)

	result := make([]TableWithStatus, 0, len(tbls))
	for _, table := range tbls {
		result = append(result, projectTable(table, items, nowMinutes, cfg))
	}
	return result
}

func projectTable(table tables.Table, items []reservations.Reservation, nowMinutes int, cfg ProjectorConfig) TableWithStatus {
	projected := TableWithStatus{Table: table, Status: StatusAvailable}

	// A seated reservation wins outright. With more than one (a data
	// anomaly; a table has at most one occupant) the first in list order is
	// taken.
	for _, item := range items {
		if item.Status == reservations.ReservationStatusSeated && item.References(table.ID) {
			projected.Status = StatusSeated
			current := item
			projected.Current = &current
			return projected
		}
	}

	var inWindow []reservations.Reservation
	var later []reservations.Reservation
	windowStart := nowMinutes - cfg.UpcomingLateMinutes
	windowEnd := nowMinutes + cfg.UpcomingLeadMinutes
	for _, item := range items {
		if !item.Status.Expected() || !item.References(table.ID) {
			continue
		}
		minutes, ok := reservations.MinutesOfDay(item.Time)
		if !ok {
			continue
		}
		switch {
		case minutes >= windowStart && minutes <= windowEnd:
			inWindow = append(inWindow, item)
		case minutes > windowEnd:
			later = append(later, item)
		}
	}

	if len(inWindow) > 0 {
		projected.Status = StatusUpcoming
		earliest := inWindow[0]
		earliestMinutes, _ := reservations.MinutesOfDay(earliest.Time)
		for _, item := range inWindow[1:] {
			if minutes, _ := reservations.MinutesOfDay(item.Time); minutes < earliestMinutes {
				earliest = item
				earliestMinutes = minutes
			}
		}
		projected.Current = &earliest
		projected.Upcoming = inWindow
		return projected
	}

	// Free for now, but later reservations are surfaced so the floor view
	// can hint at the evening ahead.
	projected.Upcoming = later
	return projected
}
