package port

import (
	"context"
	"errors"

	floor "mesaYaFloor/internal/modules/floor/domain"
	reservations "mesaYaFloor/internal/modules/reservations/domain"
	tables "mesaYaFloor/internal/modules/tables/domain"
	waitlist "mesaYaFloor/internal/modules/waitlist/domain"
)

var (
	ErrSnapshotNotFound  = errors.New("floor snapshot not found")
	ErrSnapshotForbidden = errors.New("floor snapshot forbidden")
	ErrSubmitRejected    = errors.New("floor mutation rejected")
)

// FloorSnapshot is the immutable per-refresh view of one section's data as
// fetched from the REST API: the tables, the displayed day's reservations,
// the waitlist and the current table→server assignments.
type FloorSnapshot struct {
	Tables            []tables.Table
	Reservations      []reservations.Reservation
	Waitlist          []waitlist.Entry
	ServerAssignments map[int]string
}

// FloorSnapshotFetcher loads a section's floor snapshot for a service day.
type FloorSnapshotFetcher interface {
	FetchFloorSnapshot(ctx context.Context, token, restaurantID, sectionID, date string) (*FloorSnapshot, error)
}

// AssignmentSubmitter performs the backend mutations the floor core stages:
// seating drops and batched server-assignment edits. The backend owns the
// business rules; rejections surface as ErrSubmitRejected.
type AssignmentSubmitter interface {
	SubmitAssignments(ctx context.Context, token, restaurantID string, edits []floor.ServerAssignment) error
	SeatWalkIn(ctx context.Context, token string, tableID, partySize int, name string) error
	SeatWaitlistEntry(ctx context.Context, token string, tableID int, entryUUID string) error
	MoveReservation(ctx context.Context, token string, reservationID, tableID int) error
}
