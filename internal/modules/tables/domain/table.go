package domain

import "mesaYaFloor/internal/shared/normalization"

// Table represents a seating resource within a section. MinCapacity and
// MaxCapacity bound the party sizes the table can host; PosX/PosY/Width/Height
// describe its layout footprint in the section plan.
type Table struct {
	ID          int
	Number      int
	SectionID   string
	MinCapacity int
	MaxCapacity int
	State       TableState
	PosX        float64
	PosY        float64
	Width       float64
	Height      float64
}

// TableList contains a collection of tables alongside pagination metadata.
type TableList struct {
	Items []Table
	Total int
}

// NormalizeTable attempts to construct a Table from an arbitrary map payload.
func NormalizeTable(raw map[string]any) (Table, bool) {
	id := normalization.AsInt(raw["id"])
	if id <= 0 {
		return Table{}, false
	}
	table := Table{
		ID:          id,
		Number:      normalization.AsInt(raw["number"]),
		SectionID:   normalization.AsString(raw["sectionId"]),
		MinCapacity: normalization.AsInt(raw["minCapacity"]),
		MaxCapacity: normalization.AsInt(raw["maxCapacity"]),
		PosX:        normalization.AsFloat64(raw["posX"]),
		PosY:        normalization.AsFloat64(raw["posY"]),
		Width:       normalization.AsFloat64(raw["width"]),
		Height:      normalization.AsFloat64(raw["height"]),
	}

	// Older payloads carry a single capacity value.
	if table.MaxCapacity == 0 {
		table.MaxCapacity = normalization.AsInt(raw["capacity"])
	}
	if table.MinCapacity > table.MaxCapacity {
		table.MinCapacity = table.MaxCapacity
	}

	state := NormalizeTableState(raw["state"])
	if state == TableStateUnknown {
		state = NormalizeTableState(raw["status"])
	}
	table.State = state

	return table, true
}

// BuildTableList tries to project the payload into a TableList structure.
func BuildTableList(payload any) (*TableList, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}

	rawItems := normalization.AsInterfaceSlice(container["items"])
	if len(rawItems) == 0 {
		rawItems = normalization.AsInterfaceSlice(container["tables"])
	}
	if len(rawItems) == 0 {
		return nil, false
	}

	result := &TableList{Items: make([]Table, 0, len(rawItems))}
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if table, ok := NormalizeTable(rawMap); ok {
				result.Items = append(result.Items, table)
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
