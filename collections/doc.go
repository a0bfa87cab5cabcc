// Package collections provides fixed-capacity ordered containers.
//
// BoundedSet and BoundedMap never grow past the capacity given at
// construction. Adding a key that is already present refreshes it to the
// most-recently-used end; adding a new key to a full container silently
// evicts the least-recently-refreshed key. There is no TTL.
package collections
