// package instancing maintains a dense GPU-ready instance array indexed by
// stable handles. A fixed-capacity Go channel carries mutation requests from
// Handle values so that releasing a handle can schedule removal without the
// handle holding a back-reference to the manager; the manager drains the
// channel before every buffer read.
//
// Go has no destructors, so the original's drop-driven cleanup (a Rust Drop
// impl enqueueing a removal message) is replaced by an explicit
// InstanceManager.Release(h) call — callers must make it themselves.
package instancing

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cogentcore/webgpu/wgpu"
)

// updatesChannelCapacity bounds the pending-mutation channel. Release and
// RequestSet panic rather than block when the channel is full.
const updatesChannelCapacity = 4096

// Handle is a stable, opaque identifier for a slot in an InstanceManager.
// Handles are minted from a per-manager atomic counter, scoped tighter than
// depot.Handle's process-global counter since nothing here requires
// uniqueness across independently constructed managers.
type Handle uint64

type updateKind int

const (
	updateSet updateKind = iota
	updateRemove
)

// update is the sum type carried over an InstanceManager's mutation channel.
type update[T any] struct {
	kind   updateKind
	handle Handle
	value  T
}

// InstanceManager maintains a dense array of GPU-ready instance records of
// type T, indexed by stable Handle values, and lazily uploads the packed
// array to a GPU buffer on read.
type InstanceManager[T any] struct {
	mu sync.Mutex

	nextHandle atomic.Uint64

	handleToIndex map[Handle]int
	indexToHandle []Handle
	data          []T

	dirty    bool
	buffer   *wgpu.Buffer
	capacity int

	updates chan update[T]

	label string
}

// New creates an empty InstanceManager[T]. label is used for GPU buffer
// debug labels, matching the teacher's bind_group_provider.Label() convention.
func New[T any](label string) *InstanceManager[T] {
	return &InstanceManager[T]{
		handleToIndex: make(map[Handle]int),
		updates:       make(chan update[T], updatesChannelCapacity),
		label:         label,
	}
}

// NewHandle mints a fresh handle scoped to this manager.
func (m *InstanceManager[T]) newHandle() Handle {
	return Handle(m.nextHandle.Add(1))
}

// Insert appends value to the instance array, returns the new handle, and
// marks the GPU buffer dirty.
func (m *InstanceManager[T]) Insert(value T) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	h := m.newHandle()
	idx := len(m.data)
	m.data = append(m.data, value)
	m.indexToHandle = append(m.indexToHandle, h)
	m.handleToIndex[h] = idx
	m.dirty = true
	return h
}

// Set updates the record at handle's slot in place if present; otherwise it
// behaves like Insert.
func (m *InstanceManager[T]) Set(h Handle, value T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(h, value)
}

func (m *InstanceManager[T]) setLocked(h Handle, value T) {
	if idx, ok := m.handleToIndex[h]; ok {
		m.data[idx] = value
		m.dirty = true
		return
	}
	idx := len(m.data)
	m.data = append(m.data, value)
	m.indexToHandle = append(m.indexToHandle, h)
	m.handleToIndex[h] = idx
	m.dirty = true
}

// Remove swap-removes the record at handle's slot, if present. A no-op for
// an unknown handle, matching the spec's double-remove tolerance.
func (m *InstanceManager[T]) Remove(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(h)
}

func (m *InstanceManager[T]) removeLocked(h Handle) {
	idx, ok := m.handleToIndex[h]
	if !ok {
		return
	}

	last := len(m.data) - 1
	if idx != last {
		m.data[idx] = m.data[last]
		movedHandle := m.indexToHandle[last]
		m.indexToHandle[idx] = movedHandle
		m.handleToIndex[movedHandle] = idx
	}

	m.data = m.data[:last]
	m.indexToHandle = m.indexToHandle[:last]
	delete(m.handleToIndex, h)
	m.dirty = true
}

// Release enqueues a removal request for h without blocking on the internal
// mutex, standing in for the original's Drop-driven cleanup: a Handle caller
// holds onto ends its ownership of the slot by calling Release exactly once,
// and the manager drains the request the next time Buffer is called.
func (m *InstanceManager[T]) Release(h Handle) {
	select {
	case m.updates <- update[T]{kind: updateRemove, handle: h}:
	default:
		panic(fmt.Sprintf("instancing: update channel full releasing handle %v", h))
	}
}

// RequestSet enqueues a set request for h through the same channel Release
// uses, for callers that mutate from outside the owning goroutine.
func (m *InstanceManager[T]) RequestSet(h Handle, value T) {
	select {
	case m.updates <- update[T]{kind: updateSet, handle: h, value: value}:
	default:
		panic(fmt.Sprintf("instancing: update channel full setting handle %v", h))
	}
}

// drain applies every pending channel message in FIFO order. Must be called
// with mu held.
func (m *InstanceManager[T]) drain() {
	for {
		select {
		case u := <-m.updates:
			switch u.kind {
			case updateSet:
				m.setLocked(u.handle, u.value)
			case updateRemove:
				m.removeLocked(u.handle)
			}
		default:
			return
		}
	}
}

// Len returns the number of live instances after draining pending updates.
func (m *InstanceManager[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drain()
	return len(m.data)
}

// nextPowerOfTwo mirrors the original's checked_next_power_of_two() capacity
// growth: the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Buffer drains pending channel updates, lazily (re)allocates the backing
// GPU buffer to the next power-of-two capacity at or above the current
// length, uploads the packed array if dirty, and returns it. Returns nil
// when the manager is empty, matching the original's Option<GpuBuffer>.
//
// elemSize is the marshaled byte size of one T record; marshal packs the
// current instance array into a GPU-ready byte buffer.
func (m *InstanceManager[T]) Buffer(device *wgpu.Device, queue *wgpu.Queue, elemSize int, marshal func([]T) []byte) (*wgpu.Buffer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.drain()

	if len(m.data) == 0 {
		return nil, nil
	}

	needed := nextPowerOfTwo(len(m.data))
	if m.buffer == nil || needed > m.capacity {
		if m.buffer != nil {
			m.buffer.Release()
		}
		buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            m.label + " Instance Buffer",
			Size:             uint64(needed * elemSize),
			Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return nil, err
		}
		m.buffer = buf
		m.capacity = needed
		m.dirty = true
	}

	if m.dirty {
		queue.WriteBuffer(m.buffer, 0, marshal(m.data))
		m.dirty = false
	}

	return m.buffer, nil
}

// ReleaseBuffer releases the backing GPU buffer, if any.
func (m *InstanceManager[T]) ReleaseBuffer() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.buffer != nil {
		m.buffer.Release()
		m.buffer = nil
		m.capacity = 0
		m.dirty = true
	}
}
