package domain

import "sync"

// ZoneRegistry holds the drop zones for the currently mounted floor view,
// keyed by table id. Registration replaces any prior entry for the table, so
// re-measuring after a layout change is idempotent. The registry has no life
// beyond the view's mount span; Clear is called on unmount.
type ZoneRegistry struct {
	mu    sync.RWMutex
	zones map[int]DropZone
}

func NewZoneRegistry() *ZoneRegistry {
	return &ZoneRegistry{zones: make(map[int]DropZone)}
}

// Register inserts or replaces the zone keyed by its table id.
// Zones without a positive table id are ignored.
func (r *ZoneRegistry) Register(zone DropZone) {
	if zone.TableID <= 0 {
		return
	}
	r.mu.Lock()
	r.zones[zone.TableID] = zone
	r.mu.Unlock()
}

// Unregister removes the zone for the given table, if present.
func (r *ZoneRegistry) Unregister(tableID int) {
	r.mu.Lock()
	delete(r.zones, tableID)
	r.mu.Unlock()
}

// Zone returns the registered zone for a table.
func (r *ZoneRegistry) Zone(tableID int) (DropZone, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	zone, ok := r.zones[tableID]
	return zone, ok
}

// HitTest returns the zone containing the point. Zones are few (dozens at
// most), so a linear scan is fine. With overlapping bounds the first match
// wins and iteration order is undefined; real layouts do not overlap.
func (r *ZoneRegistry) HitTest(x, y float64) (DropZone, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, zone := range r.zones {
		if zone.Bounds.Contains(x, y) {
			return zone, true
		}
	}
	return DropZone{}, false
}

// Len returns the number of registered zones.
func (r *ZoneRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.zones)
}

// Snapshot copies the current zone set for rendering or inspection.
func (r *ZoneRegistry) Snapshot() []DropZone {
	r.mu.RLock()
	defer r.mu.RUnlock()
	zones := make([]DropZone, 0, len(r.zones))
	for _, zone := range r.zones {
		zones = append(zones, zone)
	}
	return zones
}

// Clear drops every registered zone.
func (r *ZoneRegistry) Clear() {
	r.mu.Lock()
	r.zones = make(map[int]DropZone)
	r.mu.Unlock()
}
