package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func zoneAt(tableID int, x, y, w, h float64) DropZone {
	return DropZone{
		TableID:     tableID,
		Bounds:      Bounds{X: x, Y: y, Width: w, Height: h},
		MinCapacity: 2,
		MaxCapacity: 4,
		Available:   true,
	}
}

func TestRegistryRegisterReplaces(t *testing.T) {
	registry := NewZoneRegistry()
	registry.Register(zoneAt(1, 0, 0, 100, 100))
	registry.Register(zoneAt(1, 200, 200, 100, 100))

	require.Equal(t, 1, registry.Len())
	zone, ok := registry.Zone(1)
	require.True(t, ok)
	require.Equal(t, 200.0, zone.Bounds.X)
}

func TestRegistryIgnoresInvalidTableID(t *testing.T) {
	registry := NewZoneRegistry()
	registry.Register(zoneAt(0, 0, 0, 100, 100))
	registry.Register(zoneAt(-3, 0, 0, 100, 100))
	require.Equal(t, 0, registry.Len())
}

func TestRegistryUnregister(t *testing.T) {
	registry := NewZoneRegistry()
	registry.Register(zoneAt(1, 0, 0, 100, 100))
	registry.Unregister(1)
	registry.Unregister(99) // absent id is a no-op

	require.Equal(t, 0, registry.Len())
	_, ok := registry.HitTest(50, 50)
	require.False(t, ok)
}

func TestRegistryHitTest(t *testing.T) {
	registry := NewZoneRegistry()
	registry.Register(zoneAt(1, 0, 0, 100, 100))
	registry.Register(zoneAt(2, 150, 0, 100, 100))

	zone, ok := registry.HitTest(50, 50)
	require.True(t, ok)
	require.Equal(t, 1, zone.TableID)

	zone, ok = registry.HitTest(200, 99)
	require.True(t, ok)
	require.Equal(t, 2, zone.TableID)

	_, ok = registry.HitTest(125, 50)
	require.False(t, ok, "gap between zones is a miss")
}

func TestRegistryHitTestBeforeAnyRegistration(t *testing.T) {
	registry := NewZoneRegistry()
	_, ok := registry.HitTest(10, 10)
	require.False(t, ok)
}

func TestRegistryZeroSizedBoundsNeverMatch(t *testing.T) {
	registry := NewZoneRegistry()
	registry.Register(zoneAt(1, 40, 40, 0, 0))

	_, ok := registry.HitTest(40, 40)
	require.False(t, ok, "unmeasured bounds must not capture drops")
}

func TestBoundsContainsEdges(t *testing.T) {
	bounds := Bounds{X: 10, Y: 10, Width: 20, Height: 20}

	require.True(t, bounds.Contains(10, 10), "origin is inside")
	require.True(t, bounds.Contains(29.9, 29.9))
	require.False(t, bounds.Contains(30, 30), "far edge is exclusive")
	require.False(t, bounds.Contains(9.9, 15))
}

func TestRegistryClear(t *testing.T) {
	registry := NewZoneRegistry()
	registry.Register(zoneAt(1, 0, 0, 100, 100))
	registry.Register(zoneAt(2, 150, 0, 100, 100))
	registry.Clear()

	require.Equal(t, 0, registry.Len())
	require.Empty(t, registry.Snapshot())
}
