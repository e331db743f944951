package resource

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages the descriptors of all annotated domain classes in
// the application. Descriptors are immutable, so reads never need to
// copy beyond the map itself.
type Registry struct {
	descriptors map[string]*Descriptor
	mu          sync.RWMutex
}

// NewRegistry creates a new descriptor registry
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[string]*Descriptor),
	}
}

// Register registers the descriptor for a domain class. A class is
// described exactly once; duplicate registration is an error.
func (r *Registry) Register(class string, d *Descriptor) error {
	if d == nil {
		return fmt.Errorf("descriptor for %s cannot be nil", class)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[class]; exists {
		return fmt.Errorf("resource %s is already registered", class)
	}

	r.descriptors[class] = d
	return nil
}

// Get retrieves the descriptor for a domain class
func (r *Registry) Get(class string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, exists := r.descriptors[class]
	return d, exists
}

// All returns a copy of all registered descriptors keyed by class name
func (r *Registry) All() map[string]*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*Descriptor, len(r.descriptors))
	for class, d := range r.descriptors {
		result[class] = d
	}
	return result
}

// List returns the sorted class names of all registered descriptors
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.descriptors))
	for class := range r.descriptors {
		names = append(names, class)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered descriptors
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.descriptors)
}

// Exists checks if a descriptor is registered for a class
func (r *Registry) Exists(class string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.descriptors[class]
	return exists
}

// Clear removes all registered descriptors (useful for testing)
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.descriptors = make(map[string]*Descriptor)
}

// Routes returns the expanded route metadata for a registered class
func (r *Registry) Routes(class string) ([]Route, error) {
	r.mu.RLock()
	d, exists := r.descriptors[class]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("resource %s not found", class)
	}

	return ExpandRoutes(class, d), nil
}

// Stats returns statistics about the registry
type RegistryStats struct {
	TotalResources           int
	TotalItemOperations      int
	TotalCollectionOps       int
	TotalSubresourceOps      int
	TotalGraphqlOperations   int
	ResourcesWithSecurity    int
	ResourcesWithPagination  int
	ResourcesWithDeprecation int
}

// GetStats returns statistics about the registry
func (r *Registry) GetStats() *RegistryStats {
	r.mu.RLock()
	snapshot := make(map[string]*Descriptor, len(r.descriptors))
	for class, d := range r.descriptors {
		snapshot[class] = d
	}
	r.mu.RUnlock()

	stats := &RegistryStats{TotalResources: len(snapshot)}

	for _, d := range snapshot {
		stats.TotalItemOperations += len(d.ItemOperations)
		stats.TotalCollectionOps += len(d.CollectionOperations)
		stats.TotalSubresourceOps += len(d.SubresourceOperations)
		stats.TotalGraphqlOperations += len(d.Graphql)

		if _, ok := d.String("security"); ok {
			stats.ResourcesWithSecurity++
		}
		if _, ok := d.Bool("paginationEnabled"); ok {
			stats.ResourcesWithPagination++
		}
		if _, ok := d.String("deprecationReason"); ok {
			stats.ResourcesWithDeprecation++
		}
	}

	return stats
}
