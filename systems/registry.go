package systems

import "github.com/pthm-cable/murmur/telemetry"

// SystemInfo describes one tick phase for UI display.
type SystemInfo struct {
	ID          string // perf phase name
	Name        string // Display name
	Description string
	Category    string // "core", "signal" or "internal"
}

// SystemRegistry holds metadata about the tick phases so the perf panel and
// tooltips use the same names.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with every phase the swarm reports.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: telemetry.PhaseSpatialGrid, Name: "Spatial Grid", Description: "Snapshots agents and rebuilds the neighbour grid", Category: "core"})
	r.Register(SystemInfo{ID: telemetry.PhaseCompute, Name: "Steering", Description: "Neighbour queries, edges and flocking forces", Category: "core"})
	r.Register(SystemInfo{ID: telemetry.PhaseApply, Name: "Integrate", Description: "Moves agents, decays activation, breathes", Category: "core"})
	r.Register(SystemInfo{ID: telemetry.PhaseSignal, Name: "Signal", Description: "Cursor boost and activation spread", Category: "signal"})
	r.Register(SystemInfo{ID: telemetry.PhaseTelemetry, Name: "Telemetry", Description: "Window stats and output", Category: "internal"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns phases filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}
