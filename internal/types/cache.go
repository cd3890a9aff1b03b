package types

import "sync"

// Cache memoizes lookups of an underlying Resolver. It is owned by whoever
// creates it, safe for concurrent use, and forgets everything on Clear.
type Cache struct {
	inner Resolver

	mu       sync.RWMutex
	types    map[string]cachedType
	features map[featureKey]cachedFeature
	all      map[string][]*PropertyDescriptor
	names    []string
}

type cachedType struct {
	t  *TypeDescriptor
	ok bool
}

type featureKey struct {
	typeName string
	feature  string
}

type cachedFeature struct {
	p  *PropertyDescriptor
	ok bool
}

func NewCache(inner Resolver) *Cache {
	c := &Cache{inner: inner}
	c.Clear()
	return c
}

// Clear drops all memoized results, for example after the catalog changed.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types = make(map[string]cachedType)
	c.features = make(map[featureKey]cachedFeature)
	c.all = make(map[string][]*PropertyDescriptor)
	c.names = nil
}

func (c *Cache) ResolveType(name string) (*TypeDescriptor, bool) {
	c.mu.RLock()
	hit, found := c.types[name]
	c.mu.RUnlock()
	if found {
		return hit.t, hit.ok
	}

	t, ok := c.inner.ResolveType(name)
	c.mu.Lock()
	c.types[name] = cachedType{t: t, ok: ok}
	c.mu.Unlock()
	return t, ok
}

func (c *Cache) ResolveFeature(t *TypeDescriptor, name string) (*PropertyDescriptor, bool) {
	if t == nil {
		return nil, false
	}
	key := featureKey{typeName: t.Name, feature: name}

	c.mu.RLock()
	hit, found := c.features[key]
	c.mu.RUnlock()
	if found {
		return hit.p, hit.ok
	}

	p, ok := c.inner.ResolveFeature(t, name)
	c.mu.Lock()
	c.features[key] = cachedFeature{p: p, ok: ok}
	c.mu.Unlock()
	return p, ok
}

func (c *Cache) Features(t *TypeDescriptor) []*PropertyDescriptor {
	if t == nil {
		return nil
	}

	c.mu.RLock()
	hit, found := c.all[t.Name]
	c.mu.RUnlock()
	if found {
		return hit
	}

	features := c.inner.Features(t)
	c.mu.Lock()
	c.all[t.Name] = features
	c.mu.Unlock()
	return features
}

func (c *Cache) TypeNames() []string {
	c.mu.RLock()
	names := c.names
	c.mu.RUnlock()
	if names != nil {
		return names
	}

	names = c.inner.TypeNames()
	c.mu.Lock()
	c.names = names
	c.mu.Unlock()
	return names
}

// Len returns the number of memoized type lookups.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.types)
}
