package domain

// WarningOversizedTable flags a drop that seats a party on a table whose
// minimum capacity exceeds the party size. The drop is allowed; the floor
// view renders it as a soft warning.
const WarningOversizedTable = "party is below the table minimum"

// DropDecision is the outcome of validating a drop. Warning is non-empty
// only when Valid is true.
type DropDecision struct {
	Valid   bool   `json:"valid"`
	Warning string `json:"warning,omitempty"`
}

// ValidateDrop decides whether the payload may be dropped on the zone.
// Pure and deterministic: occupied tables reject everything, parties that
// do not fit are rejected, undersized parties pass with a warning.
func ValidateDrop(payload DragPayload, zone DropZone) DropDecision {
	if !zone.Available {
		return DropDecision{}
	}
	if payload.PartySize > zone.MaxCapacity {
		return DropDecision{}
	}
	if payload.PartySize < zone.MinCapacity {
		return DropDecision{Valid: true, Warning: WarningOversizedTable}
	}
	return DropDecision{Valid: true}
}
