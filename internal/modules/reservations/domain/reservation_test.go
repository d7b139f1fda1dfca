package domain

import (
	"testing"
	"time"
)

func TestNormalizeReservation(t *testing.T) {
	raw := map[string]any{
		"id":        float64(42),
		"name":      " Elena Ruiz ",
		"covers":    float64(4),
		"time":      "19:30",
		"status":    "confirmed",
		"table_ids": []any{float64(3), float64(4)},
		"notes":     "window seat",
	}

	reservation, ok := NormalizeReservation(raw)
	if !ok {
		t.Fatal("expected reservation to normalize")
	}
	if reservation.ID != 42 || reservation.Name != "Elena Ruiz" {
		t.Fatalf("unexpected identity: %+v", reservation)
	}
	if reservation.Status != ReservationStatusConfirmed {
		t.Fatalf("unexpected status: %q", reservation.Status)
	}
	if !reservation.References(3) || !reservation.References(4) {
		t.Fatalf("unexpected table ids: %v", reservation.TableIDs)
	}
	if reservation.References(5) {
		t.Fatal("reservation should not reference table 5")
	}
}

func TestNormalizeReservationRejectsMissingID(t *testing.T) {
	if _, ok := NormalizeReservation(map[string]any{"name": "nobody"}); ok {
		t.Fatal("expected reservation without id to be rejected")
	}
}

func TestBuildReservationList(t *testing.T) {
	payload := map[string]any{
		"reservations": []any{
			map[string]any{"id": float64(1), "time": "18:00", "status": "BOOKED"},
			map[string]any{"id": float64(2), "time": "20:15", "status": "SEATED"},
		},
	}

	list, ok := BuildReservationList(payload)
	if !ok {
		t.Fatal("expected list to build")
	}
	if len(list.Items) != 2 || list.Total != 2 {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestMinutesOfDay(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected int
		ok       bool
	}{
		{name: "evening", input: "19:30", expected: 1170, ok: true},
		{name: "midnight", input: "00:00", expected: 0, ok: true},
		{name: "padded", input: " 08:05 ", expected: 485, ok: true},
		{name: "missing minutes", input: "19", ok: false},
		{name: "out of range hour", input: "25:00", ok: false},
		{name: "out of range minute", input: "12:75", ok: false},
		{name: "garbage", input: "soon", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := MinutesOfDay(tc.input)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if ok && got != tc.expected {
				t.Fatalf("expected %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestClockMinutes(t *testing.T) {
	now := time.Date(2026, 3, 14, 19, 45, 30, 0, time.Local)
	if got := ClockMinutes(now); got != 19*60+45 {
		t.Fatalf("expected %d, got %d", 19*60+45, got)
	}
}
