package domain

import "testing"

func TestNormalizeEntryStatus(t *testing.T) {
	cases := []struct {
		name     string
		input    any
		expected EntryStatus
	}{
		{name: "waiting", input: "waiting", expected: EntryStatusWaiting},
		{name: "notified padded", input: " NOTIFIED ", expected: EntryStatusNotified},
		{name: "unknown passthrough", input: "paged", expected: EntryStatus("PAGED")},
		{name: "non string", input: 7, expected: EntryStatusUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := NormalizeEntryStatus(tc.input)
			if result != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestNormalizeEntry(t *testing.T) {
	entry, ok := NormalizeEntry(map[string]any{
		"uuid":          "wl-123",
		"name":          " Ortiz ",
		"partySize":     float64(3),
		"quotedMinutes": float64(20),
		"status":        "waiting",
	})
	if !ok {
		t.Fatal("expected entry to normalize")
	}
	if entry.UUID != "wl-123" || entry.Name != "Ortiz" || entry.PartySize != 3 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Status != EntryStatusWaiting {
		t.Fatalf("unexpected status: %q", entry.Status)
	}
}

func TestNormalizeEntryRejectsMissingID(t *testing.T) {
	if _, ok := NormalizeEntry(map[string]any{"name": "nobody"}); ok {
		t.Fatal("expected entry without uuid to be rejected")
	}
}

func TestNewLocalEntry(t *testing.T) {
	first := NewLocalEntry(" Walk In ", 2)
	second := NewLocalEntry("Walk In", 2)

	if first.UUID == "" || second.UUID == "" {
		t.Fatal("expected generated uuids")
	}
	if first.UUID == second.UUID {
		t.Fatal("expected distinct uuids per entry")
	}
	if first.Name != "Walk In" {
		t.Fatalf("expected trimmed name, got %q", first.Name)
	}
	if first.Status != EntryStatusWaiting {
		t.Fatalf("unexpected status: %q", first.Status)
	}
}
