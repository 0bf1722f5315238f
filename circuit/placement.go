package circuit

import (
	"github.com/agausmann/flipflop-go/depot"
	"github.com/agausmann/flipflop-go/direction"
	"github.com/agausmann/flipflop-go/simulation"
)

// directionBetween returns the unit Direction stepping from a towards b.
// Requires a and b to be axis-aligned and distinct.
func directionBetween(a, b Pos) direction.Direction {
	dx := sign(b.X - a.X)
	dy := sign(b.Y - a.Y)
	switch {
	case dx == 1:
		return direction.East
	case dx == -1:
		return direction.West
	case dy == 1:
		return direction.North
	case dy == -1:
		return direction.South
	default:
		panic("circuit: directionBetween called on identical positions")
	}
}

func isAxisHorizontal(d direction.Direction) bool {
	return d == direction.East || d == direction.West
}

// CanPlaceWire reports whether a wire could legally be placed between start
// and end. Every tile on the segment with a component is checked against
// that component's placement rules; tiles with no component (including
// crossover tiles) never block placement.
func (c *Circuit) CanPlaceWire(start, end Pos) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.canPlaceWireLocked(start, end)
}

// canPlaceWireLocked is CanPlaceWire's body, callable by other Circuit
// methods that already hold mu.
func (c *Circuit) canPlaceWireLocked(start, end Pos) bool {
	if start == end {
		return false
	}
	if start.X != end.X && start.Y != end.Y {
		return false
	}

	segTiles := (&wire{Start: start, End: end}).Tiles()

	for i, p := range segTiles {
		isEndpoint := i == 0 || i == len(segTiles)-1

		t, ok := c.tileAt(p)
		if !ok || t.Component == 0 {
			continue
		}
		comp := c.components.Get(t.Component)

		switch comp.Type {
		case Pin:
			continue
		case Flip:
			if isEndpoint {
				continue
			}
			if isAxisHorizontal(comp.Orientation) == (start.Y == end.Y) {
				return false
			}
		case Flop:
			if !isEndpoint {
				return false
			}
			var into direction.Direction
			if p == start {
				into = directionBetween(start, end)
			} else {
				into = directionBetween(start, end).Opposite()
			}
			if into != comp.Orientation && into != comp.Orientation.Opposite() {
				return false
			}
		}
	}
	return true
}

// CanPlaceComponent reports whether a component of type ctype could legally
// be placed at pos with the given orientation.
func (c *Circuit) CanPlaceComponent(ctype ComponentType, pos Pos, orient direction.Direction) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.canPlaceComponentLocked(ctype, pos, orient)
}

// canPlaceComponentLocked is CanPlaceComponent's body, callable by other
// Circuit methods that already hold mu.
func (c *Circuit) canPlaceComponentLocked(ctype ComponentType, pos Pos, orient direction.Direction) bool {
	t, ok := c.tileAt(pos)
	if !ok {
		return true
	}
	if t.Component != 0 {
		return false
	}

	switch ctype {
	case Pin:
		return true
	case Flip:
		return t.wireAt(orient) == 0
	case Flop:
		for _, h := range t.Wires {
			if h != 0 {
				return false
			}
		}
		return true
	default:
		panic("circuit: unknown component type")
	}
}

// straightAxisSplit captures a wire that passed straight through a tile
// before a component was placed there, so the two halves can be
// re-inserted once the component exists.
type straightAxisSplit struct {
	start, end Pos
	cluster    simulation.ClusterID
}

// PlaceComponent places a component at pos: if a wire currently passes
// straight through pos on either axis, that wire is split in two to meet at
// pos; the component is then inserted and re-attached to whichever
// straight-through cluster(s) existed, merging them if both axes were
// crossing. Returns false (no mutation) if placement is illegal.
func (c *Circuit) PlaceComponent(ctype ComponentType, pos Pos, orient direction.Direction) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.placeComponentLocked(ctype, pos, orient)
}

// placeComponentLocked is PlaceComponent's body, callable by other Circuit
// methods that already hold mu.
func (c *Circuit) placeComponentLocked(ctype ComponentType, pos Pos, orient direction.Direction) bool {
	if !c.canPlaceComponentLocked(ctype, pos, orient) {
		return false
	}

	t := c.tileOrCreate(pos)

	var splits []straightAxisSplit
	if hE, hW := t.wireAt(direction.East), t.wireAt(direction.West); hE != 0 && hE == hW {
		w := c.wires.Get(hE)
		splits = append(splits, straightAxisSplit{w.Start, w.End, w.Cluster})
		c.removeWireHandle(hE)
	}
	if hN, hS := t.wireAt(direction.North), t.wireAt(direction.South); hN != 0 && hN == hS {
		w := c.wires.Get(hN)
		splits = append(splits, straightAxisSplit{w.Start, w.End, w.Cluster})
		c.removeWireHandle(hN)
	}

	t = c.tileOrCreate(pos)

	baseCluster := func() simulation.ClusterID {
		if len(splits) > 0 {
			return splits[0].cluster
		}
		return c.sim.AllocCluster()
	}

	var compH depot.Handle
	switch ctype {
	case Pin:
		compH = c.components.Insert(&component{Type: Pin, Position: pos, Orientation: orient, Cluster: baseCluster()})
	case Flip:
		in := baseCluster()
		out := c.sim.AllocCluster()
		compH = c.components.Insert(&component{Type: Flip, Position: pos, Orientation: orient, InputCluster: in, OutputCluster: out})
		c.sim.AddFlip(in, out)
	case Flop:
		in := baseCluster()
		out := c.sim.AllocCluster()
		compH = c.components.Insert(&component{Type: Flop, Position: pos, Orientation: orient, InputCluster: in, OutputCluster: out})
		c.sim.AddFlop(in, out)
	default:
		panic("circuit: unknown component type")
	}
	t.Component = compH

	for _, s := range splits {
		c.insertWire(s.start, pos)
		c.insertWire(pos, s.end)
		c.freeClusterIfOrphaned(s.cluster)
	}

	return true
}

// PlaceWire places a wire between start and end: ensures Pin components at
// both endpoints (placing them if absent), then inserts a wire between
// every consecutive pair of "split points" — start, every intermediate tile
// with a component, and end. Returns false (no mutation) if placement is
// illegal.
func (c *Circuit) PlaceWire(start, end Pos) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.placeWireLocked(start, end)
}

// placeWireLocked is PlaceWire's body, callable by other Circuit methods
// that already hold mu.
func (c *Circuit) placeWireLocked(start, end Pos) bool {
	if !c.canPlaceWireLocked(start, end) {
		return false
	}

	if _, has := c.componentHandleAt(start); !has {
		c.placeComponentLocked(Pin, start, direction.East)
	}
	if _, has := c.componentHandleAt(end); !has {
		c.placeComponentLocked(Pin, end, direction.East)
	}

	segTiles := (&wire{Start: start, End: end}).Tiles()

	splitPoints := []Pos{start}
	for _, p := range segTiles[1 : len(segTiles)-1] {
		if _, has := c.componentHandleAt(p); has {
			splitPoints = append(splitPoints, p)
		}
	}
	splitPoints = append(splitPoints, end)

	deduped := splitPoints[:1]
	for _, p := range splitPoints[1:] {
		if p != deduped[len(deduped)-1] {
			deduped = append(deduped, p)
		}
	}

	for i := 0; i < len(deduped)-1; i++ {
		c.insertWire(deduped[i], deduped[i+1])
	}
	return true
}

// freeClusterIfOrphaned frees id if no live wire or component face still
// references it and it is not already on the free-list. Used as a general
// safety net after removals that might (or, thanks to an already-triggered
// merge/split, might not) have left a cluster with zero references.
func (c *Circuit) freeClusterIfOrphaned(id simulation.ClusterID) {
	if c.sim.IsFree(id) {
		return
	}

	referenced := false
	c.wires.Range(func(_ depot.Handle, w *wire) bool {
		if w.Cluster == id {
			referenced = true
			return false
		}
		return true
	})
	if !referenced {
		c.components.Range(func(_ depot.Handle, comp *component) bool {
			switch comp.Type {
			case Pin:
				if comp.Cluster == id {
					referenced = true
					return false
				}
			case Flip, Flop:
				if comp.InputCluster == id || comp.OutputCluster == id {
					referenced = true
					return false
				}
			}
			return true
		})
	}

	if !referenced {
		c.sim.FreeCluster(id)
	}
}
