package domain

import "testing"

func TestNormalizeTableState(t *testing.T) {
	cases := []struct {
		name     string
		input    any
		expected TableState
	}{
		{name: "available", input: "available", expected: TableStateAvailable},
		{name: "cleaning", input: " CLEANING ", expected: TableStateCleaning},
		{name: "unknown passthrough", input: "maintenance", expected: TableState("MAINTENANCE")},
		{name: "non string", input: 42, expected: TableStateUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := NormalizeTableState(tc.input)
			if result != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestTableStateDroppable(t *testing.T) {
	cases := []struct {
		state    TableState
		expected bool
	}{
		{TableStateAvailable, true},
		{TableStateReserved, true},
		{TableStateSeated, false},
		{TableStateBlocked, false},
		{TableStateCleaning, false},
		{TableStateUnknown, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.state), func(t *testing.T) {
			if got := tc.state.Droppable(); got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}
