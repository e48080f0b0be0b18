package systems

// SystemInfo describes one phase of the frame for UI display.
type SystemInfo struct {
	ID          string // Internal identifier (matches the perf phase name)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "sim", "output")
}

// SystemRegistry holds metadata about all frame phases.
// This centralizes phase naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the frame phases in execution order.
// Update this when adding a phase.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: "snapshot", Name: "Snapshot", Description: "Copies agent state out of the world", Category: "sim"})
	r.Register(SystemInfo{ID: "sense_move", Name: "Sense+Move", Description: "Senses, steers, moves and bounces agents", Category: "sim"})
	r.Register(SystemInfo{ID: "deposit", Name: "Deposit", Description: "Writes agent moves back and deposits trail", Category: "sim"})
	r.Register(SystemInfo{ID: "decay", Name: "Decay", Description: "Fades the whole field once", Category: "sim"})

	r.Register(SystemInfo{ID: "render", Name: "Colorize", Description: "Maps the field into the display buffer", Category: "output"})
	r.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Tallies steps and flushes stats windows", Category: "output"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// Categories returns all unique categories.
func (r *SystemRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, info := range r.systems {
		if !seen[info.Category] {
			seen[info.Category] = true
			cats = append(cats, info.Category)
		}
	}
	return cats
}
