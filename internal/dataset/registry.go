package dataset

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownDataset is returned when switching to a name that was
// never registered.
var ErrUnknownDataset = errors.New("dataset: unknown dataset")

// Registry holds the loaded datasets and tracks the active one. It is
// safe for concurrent readers; switches notify registered callbacks.
type Registry struct {
	mu       sync.RWMutex
	datasets map[string]*Dataset
	order    []string
	active   string
	onSwitch []func(*Dataset)
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{datasets: make(map[string]*Dataset)}
}

// Add registers a dataset. The first dataset added becomes active.
// Re-adding a name replaces the dataset in place.
func (r *Registry) Add(d *Dataset) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.datasets[d.Name]; !exists {
		r.order = append(r.order, d.Name)
	}
	r.datasets[d.Name] = d
	if r.active == "" {
		r.active = d.Name
	}
}

// Names lists registered dataset names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Get returns a dataset by name.
func (r *Registry) Get(name string) (*Dataset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.datasets[name]
	return d, ok
}

// Active returns the active dataset, nil when the registry is empty.
func (r *Registry) Active() *Dataset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.datasets[r.active]
}

// ActiveName returns the active dataset's name.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// Switch makes the named dataset active and notifies switch callbacks.
func (r *Registry) Switch(name string) error {
	r.mu.Lock()
	d, ok := r.datasets[name]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
	r.active = name
	callbacks := make([]func(*Dataset), len(r.onSwitch))
	copy(callbacks, r.onSwitch)
	r.mu.Unlock()

	for _, fn := range callbacks {
		fn(d)
	}
	return nil
}

// OnSwitch registers a callback invoked after every successful switch.
func (r *Registry) OnSwitch(fn func(*Dataset)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onSwitch = append(r.onSwitch, fn)
}
