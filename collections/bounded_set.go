package collections

// BoundedSet is a set holding at most Capacity keys, built on BoundedMap.
// It is not safe for concurrent use.
type BoundedSet[K comparable] struct {
	m *BoundedMap[K, struct{}]
}

// NewBoundedSet creates a set that holds at most capacity keys.
// It panics if capacity is less than 1.
func NewBoundedSet[K comparable](capacity int) *BoundedSet[K] {
	return &BoundedSet[K]{m: NewBoundedMap[K, struct{}](capacity)}
}

// Add inserts key, or refreshes it if already present.
func (s *BoundedSet[K]) Add(key K) { s.m.Put(key, struct{}{}) }

func (s *BoundedSet[K]) Contains(key K) bool { return s.m.Contains(key) }
func (s *BoundedSet[K]) Len() int            { return s.m.Len() }
func (s *BoundedSet[K]) Capacity() int       { return s.m.Capacity() }

// Keys returns the members from least to most recently refreshed.
func (s *BoundedSet[K]) Keys() []K { return s.m.Keys() }

func (s *BoundedSet[K]) Clear() { s.m.Clear() }
