package collections

import (
	"container/list"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key is not present.
var ErrNotFound = errors.New("key not found")

type entry[K comparable, V any] struct {
	key   K
	value V
}

// BoundedMap is a key/value map holding at most Capacity entries.
// It is not safe for concurrent use.
type BoundedMap[K comparable, V any] struct {
	capacity int
	order    *list.List // front = least recently refreshed
	index    map[K]*list.Element
}

// NewBoundedMap creates a map that holds at most capacity entries.
// It panics if capacity is less than 1.
func NewBoundedMap[K comparable, V any](capacity int) *BoundedMap[K, V] {
	if capacity < 1 {
		panic(fmt.Sprintf("collections: capacity must be positive, got %d", capacity))
	}
	return &BoundedMap[K, V]{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[K]*list.Element, capacity+1),
	}
}

// Put inserts or overwrites key and moves it to the most-recently-used end.
// When the map is over capacity the least recently refreshed key is evicted.
func (m *BoundedMap[K, V]) Put(key K, value V) {
	if el, ok := m.index[key]; ok {
		el.Value.(*entry[K, V]).value = value
		m.order.MoveToBack(el)
		return
	}
	m.index[key] = m.order.PushBack(&entry[K, V]{key: key, value: value})
	if m.order.Len() > m.capacity {
		oldest := m.order.Front()
		m.order.Remove(oldest)
		delete(m.index, oldest.Value.(*entry[K, V]).key)
	}
}

// Get returns the value stored for key. Reading does not refresh the key.
func (m *BoundedMap[K, V]) Get(key K) (V, error) {
	el, ok := m.index[key]
	if !ok {
		var zero V
		return zero, fmt.Errorf("%v: %w", key, ErrNotFound)
	}
	return el.Value.(*entry[K, V]).value, nil
}

// Contains reports whether key is present.
func (m *BoundedMap[K, V]) Contains(key K) bool {
	_, ok := m.index[key]
	return ok
}

func (m *BoundedMap[K, V]) Len() int      { return m.order.Len() }
func (m *BoundedMap[K, V]) Capacity() int { return m.capacity }

// Keys returns the keys from least to most recently refreshed.
func (m *BoundedMap[K, V]) Keys() []K {
	keys := make([]K, 0, m.order.Len())
	for el := m.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry[K, V]).key)
	}
	return keys
}

// Clear removes every entry.
func (m *BoundedMap[K, V]) Clear() {
	m.order.Init()
	clear(m.index)
}
