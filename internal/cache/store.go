package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apimeta-io/apimeta/internal/resource"
)

// DescriptorStore persists normalized descriptors through a cache
// backend. Descriptors are serialized via their configuration map, so a
// fetched descriptor is rebuilt by the same hydration path that built
// the original.
type DescriptorStore struct {
	cache Cache
	ttl   time.Duration
}

// NewDescriptorStore creates a descriptor store on top of a cache
// backend. A zero ttl uses the backend's default.
func NewDescriptorStore(cache Cache, ttl time.Duration) *DescriptorStore {
	return &DescriptorStore{cache: cache, ttl: ttl}
}

// Put serializes and stores the descriptor for a domain class
func (s *DescriptorStore) Put(ctx context.Context, class string, d *resource.Descriptor) error {
	data, err := json.Marshal(d.ConfigMap())
	if err != nil {
		return fmt.Errorf("failed to serialize descriptor for %s: %w", class, err)
	}
	return s.cache.Set(ctx, descriptorKey(class), data, s.ttl)
}

// Fetch retrieves and rehydrates the descriptor for a domain class.
// A cache miss is reported through ErrCacheMiss.
func (s *DescriptorStore) Fetch(ctx context.Context, class string) (*resource.Descriptor, error) {
	data, err := s.cache.Get(ctx, descriptorKey(class))
	if err != nil {
		return nil, err
	}

	var config map[string]interface{}
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to decode cached descriptor for %s: %w", class, err)
	}

	d, err := resource.FromMap(config)
	if err != nil {
		return nil, fmt.Errorf("cached descriptor for %s no longer hydrates: %w", class, err)
	}
	return d, nil
}

// Evict removes the cached descriptor for a domain class
func (s *DescriptorStore) Evict(ctx context.Context, class string) error {
	return s.cache.Delete(ctx, descriptorKey(class))
}

// Clear removes all cached descriptors. Used after a registry reload,
// when any cached entry may be stale.
func (s *DescriptorStore) Clear(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

// descriptorKey builds the cache key for a domain class
func descriptorKey(class string) string {
	return "descriptor:" + class
}
