package circuit

import (
	"sync"

	"github.com/agausmann/flipflop-go/depot"
	"github.com/agausmann/flipflop-go/direction"
	"github.com/agausmann/flipflop-go/simulation"
)

// Circuit owns the tile map, the component and wire depots, and the
// Simulation the topology drives. It is the sole owner of all three; no
// other package mutates them directly.
//
// The tick loop and the render loop both call into a live Circuit from
// separate goroutines (engine.Engine runs ticks and renders on independent
// schedules), so every exported method takes mu, matching the locking the
// teacher's scene.scene uses to guard state shared between those same two
// loops.
type Circuit struct {
	mu *sync.RWMutex

	tiles      map[Pos]*tile
	components *depot.Depot[*component]
	wires      *depot.Depot[*wire]
	sim        *simulation.Simulation
}

// New creates an empty Circuit with no tiles, components, or wires.
func New() *Circuit {
	return &Circuit{
		mu:         &sync.RWMutex{},
		tiles:      make(map[Pos]*tile),
		components: depot.New[*component](),
		wires:      depot.New[*wire](),
		sim:        simulation.New(),
	}
}

// Simulation returns the underlying Simulation directly, for tests that
// need to force cluster power with Power/Unpower. The engine loop should
// drive ticks through Circuit.Tick instead, which holds the same lock every
// other Circuit method does; calling Tick directly on the returned
// Simulation from the engine's tick goroutine would race with the render
// goroutine's reads.
func (c *Circuit) Simulation() *simulation.Simulation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sim
}

// Tick advances the underlying Simulation by one step, holding the same
// lock every placement/removal/query method takes so a tick can never
// interleave with a concurrent render-loop read or an editor mutation.
func (c *Circuit) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sim.Tick()
}

func (c *Circuit) tileAt(pos Pos) (*tile, bool) {
	t, ok := c.tiles[pos]
	return t, ok
}

func (c *Circuit) tileOrCreate(pos Pos) *tile {
	t, ok := c.tiles[pos]
	if !ok {
		t = &tile{}
		c.tiles[pos] = t
	}
	return t
}

// pruneIfEmpty removes a tile from the sparse map once it holds neither a
// component nor any wire.
func (c *Circuit) pruneIfEmpty(pos Pos) {
	if t, ok := c.tiles[pos]; ok && t.isEmpty() {
		delete(c.tiles, pos)
	}
}

// ComponentAt returns the component occupying pos, if any.
func (c *Circuit) ComponentAt(pos Pos) (Type ComponentType, Orientation direction.Direction, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, present := c.tileAt(pos)
	if !present || t.Component == 0 {
		return 0, 0, false
	}
	comp := c.components.Get(t.Component)
	return comp.Type, comp.Orientation, true
}

// WireConnection returns the handle of the wire occupying direction d of
// pos, if any.
func (c *Circuit) WireConnection(pos Pos, d direction.Direction) (depot.Handle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, present := c.tileAt(pos)
	if !present {
		return 0, false
	}
	h := t.wireAt(d)
	return h, h != 0
}

// HasCrossover reports whether pos should render a crossover sprite: no
// component and at least two distinct wires passing through it.
func (c *Circuit) HasCrossover(pos Pos) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tileAt(pos)
	return ok && t.hasCrossover()
}

// DebugTile returns, for a tile, the component type (if any) and, for each
// direction, the cluster ID of the wire in that slot — external inspection
// support for debugging and tests.
func (c *Circuit) DebugTile(pos Pos) (compType ComponentType, hasComponent bool, wires [4]simulation.ClusterID, present [4]bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tileAt(pos)
	if !ok {
		return 0, false, wires, present
	}
	if t.Component != 0 {
		comp := c.components.Get(t.Component)
		compType = comp.Type
		hasComponent = true
	}
	for i, h := range t.Wires {
		if h != 0 {
			w := c.wires.Get(h)
			wires[i] = w.Cluster
			present[i] = true
		}
	}
	return
}

// IsPowered reports the current tick's power state of the given cluster ID.
func (c *Circuit) IsPowered(id simulation.ClusterID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sim.IsPowered(id)
}

// PoweredAt reports the power state the board renderer should use to tint
// pos's sprite: a component's output-facing cluster (Pin's single cluster,
// or a Flip/Flop's output cluster — the visually relevant side, matching
// original_source/src/rect.rs's wire_color(is_powered) convention), falling
// back to whichever wire occupies the tile if there's no component, or
// false for an empty tile.
func (c *Circuit) PoweredAt(pos Pos) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tileAt(pos)
	if !ok {
		return false
	}
	if t.Component != 0 {
		comp := c.components.Get(t.Component)
		switch comp.Type {
		case Pin:
			return c.sim.IsPowered(comp.Cluster)
		case Flip, Flop:
			return c.sim.IsPowered(comp.OutputCluster)
		}
	}
	for _, h := range t.Wires {
		if h != 0 {
			return c.sim.IsPowered(c.wires.Get(h).Cluster)
		}
	}
	return false
}
