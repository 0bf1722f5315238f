// package depot implements a handle-keyed arena for polymorphic entities
// (wires, components) with O(1) insert, lookup, and remove. Handles are
// opaque, totally ordered, and minted from a process-global monotonic
// counter — the same pattern the teacher's engine/camera package uses for
// cameraCount, generalized here to any entity type via a Go generic.
package depot

import (
	"fmt"
	"sync/atomic"
)

// handleCounter mints globally unique Handle values across every Depot in the
// process. A per-manager counter would scope handles more tightly, but a
// single global counter keeps handles comparable across independently
// constructed Depots, which simplifies debug output and cross-depot handle
// maps.
var handleCounter atomic.Uint64

// Handle is an opaque, comparable, totally-ordered identifier for an entity
// stored in a Depot. Handles are never reused within a process.
type Handle uint64

// String implements fmt.Stringer for debug output.
func (h Handle) String() string {
	return fmt.Sprintf("handle(%d)", uint64(h))
}

// nextHandle mints the next globally unique handle value.
func nextHandle() Handle {
	return Handle(handleCounter.Add(1))
}

// Depot is a handle-keyed arena over T. Lookup on an unknown handle is a
// programmer error and panics, matching the original's `expect(...)` style
// and the teacher's own panic-on-invariant-violation convention (see
// engine/window.NewWindow panicking on platform window failure).
type Depot[T any] struct {
	entries map[Handle]T
}

// New creates an empty Depot.
func New[T any]() *Depot[T] {
	return &Depot[T]{entries: make(map[Handle]T)}
}

// Insert stores value under a freshly minted Handle and returns it.
func (d *Depot[T]) Insert(value T) Handle {
	h := nextHandle()
	d.entries[h] = value
	return h
}

// Get looks up the value stored under h. Panics if h is not present.
func (d *Depot[T]) Get(h Handle) T {
	v, ok := d.entries[h]
	if !ok {
		panic(fmt.Sprintf("depot: unknown handle %v", h))
	}
	return v
}

// TryGet looks up the value stored under h without panicking.
func (d *Depot[T]) TryGet(h Handle) (T, bool) {
	v, ok := d.entries[h]
	return v, ok
}

// Set overwrites the value stored under h. Panics if h is not present,
// matching Get's programmer-error contract.
func (d *Depot[T]) Set(h Handle, value T) {
	if _, ok := d.entries[h]; !ok {
		panic(fmt.Sprintf("depot: unknown handle %v", h))
	}
	d.entries[h] = value
}

// Remove deletes the entry stored under h. A no-op if h is not present.
func (d *Depot[T]) Remove(h Handle) {
	delete(d.entries, h)
}

// Contains reports whether h currently identifies a live entry.
func (d *Depot[T]) Contains(h Handle) bool {
	_, ok := d.entries[h]
	return ok
}

// Len returns the number of live entries.
func (d *Depot[T]) Len() int {
	return len(d.entries)
}

// Range calls fn for every live (Handle, T) pair. Iteration order is
// unspecified, matching Go's native map iteration.
func (d *Depot[T]) Range(fn func(Handle, T) bool) {
	for h, v := range d.entries {
		if !fn(h, v) {
			return
		}
	}
}
