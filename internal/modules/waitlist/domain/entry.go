package domain

import (
	"strings"

	"github.com/google/uuid"

	"mesaYaFloor/internal/shared/normalization"
)

// EntryStatus represents the lifecycle of a waitlist entry.
type EntryStatus string

const (
	EntryStatusUnknown  EntryStatus = ""
	EntryStatusWaiting  EntryStatus = "WAITING"
	EntryStatusNotified EntryStatus = "NOTIFIED"
	EntryStatusSeated   EntryStatus = "SEATED"
	EntryStatusRemoved  EntryStatus = "REMOVED"
)

var allowedEntryStatuses = map[string]EntryStatus{
	string(EntryStatusWaiting):  EntryStatusWaiting,
	string(EntryStatusNotified): EntryStatusNotified,
	string(EntryStatusSeated):   EntryStatusSeated,
	string(EntryStatusRemoved):  EntryStatusRemoved,
}

// NormalizeEntryStatus coerces any input into a canonical waitlist status.
func NormalizeEntryStatus(value any) EntryStatus {
	s, ok := value.(string)
	if !ok {
		return EntryStatusUnknown
	}
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if trimmed == "" {
		return EntryStatusUnknown
	}
	if status, ok := allowedEntryStatuses[trimmed]; ok {
		return status
	}
	return EntryStatus(trimmed)
}

// Entry represents a waiting party. UUID is the backend identifier; entries
// created on-device before first sync get a locally generated one.
type Entry struct {
	UUID          string
	Name          string
	PartySize     int
	QuotedMinutes int
	Status        EntryStatus
}

// EntryList aggregates waitlist entries with pagination metadata.
type EntryList struct {
	Items []Entry
	Total int
}

// NewLocalEntry creates a waitlist entry for a party added on-device.
func NewLocalEntry(name string, partySize int) Entry {
	return Entry{
		UUID:      uuid.NewString(),
		Name:      strings.TrimSpace(name),
		PartySize: partySize,
		Status:    EntryStatusWaiting,
	}
}

// NormalizeEntry constructs an Entry from a loosely typed map.
func NormalizeEntry(raw map[string]any) (Entry, bool) {
	id := normalization.AsString(raw["uuid"])
	if id == "" {
		id = normalization.AsString(raw["id"])
	}
	if id == "" {
		return Entry{}, false
	}

	entry := Entry{
		UUID:          id,
		Name:          normalization.AsString(raw["name"]),
		PartySize:     normalization.AsInt(raw["partySize"]),
		QuotedMinutes: normalization.AsInt(raw["quotedMinutes"]),
	}
	if entry.PartySize == 0 {
		entry.PartySize = normalization.AsInt(raw["covers"])
	}
	entry.Status = NormalizeEntryStatus(raw["status"])

	return entry, true
}

// BuildEntryList projects payloads into an EntryList.
func BuildEntryList(payload any) (*EntryList, bool) {
	container := normalization.MapFromPayload(payload)
	if len(container) == 0 {
		return nil, false
	}

	rawItems := normalization.AsInterfaceSlice(container["items"])
	if len(rawItems) == 0 {
		rawItems = normalization.AsInterfaceSlice(container["waitlist"])
	}
	if len(rawItems) == 0 {
		return nil, false
	}

	result := &EntryList{Items: make([]Entry, 0, len(rawItems))}
	for _, item := range rawItems {
		if rawMap, ok := item.(map[string]any); ok {
			if entry, ok := NormalizeEntry(rawMap); ok {
				result.Items = append(result.Items, entry)
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
