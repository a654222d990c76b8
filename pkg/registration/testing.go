package registration

// Test doubles for the collaborator interfaces. Provider packages and
// embedding applications use these in their own tests; they carry no testing
// dependency so they are safe to ship.

import "sync"

// RecordingRegistry is a ServiceRegistry that records every Add call.
type RecordingRegistry struct {
	mu       sync.Mutex
	services map[string]any
	order    []string
}

// NewRecordingRegistry creates an empty recording registry.
func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{services: make(map[string]any)}
}

// Add records the service under name.
func (r *RecordingRegistry) Add(name string, service any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, seen := r.services[name]; !seen {
		r.order = append(r.order, name)
	}
	r.services[name] = service
}

// Service returns the recorded service with the given name.
func (r *RecordingRegistry) Service(name string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	service, ok := r.services[name]
	return service, ok
}

// Names returns the recorded service names in first-add order.
func (r *RecordingRegistry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of distinct services recorded.
func (r *RecordingRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.services)
}

// StaticConfig is a ConfigSource backed by a fixed map of sections.
type StaticConfig map[string]map[string]any

// Section returns the named section.
func (c StaticConfig) Section(name string) (map[string]any, bool) {
	section, ok := c[name]
	return section, ok
}

// NewTestTarget builds a Target wired to a fresh RecordingRegistry and the
// given sections, returning the registry for assertions.
func NewTestTarget(sections StaticConfig) (Target, *RecordingRegistry) {
	registry := NewRecordingRegistry()
	return Target{Services: registry, Config: sections}, registry
}
