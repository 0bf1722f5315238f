package circuit

import (
	"github.com/agausmann/flipflop-go/depot"
	"github.com/agausmann/flipflop-go/direction"
	"github.com/agausmann/flipflop-go/simulation"
)

func (c *Circuit) componentHandleAt(pos Pos) (depot.Handle, bool) {
	t, ok := c.tileAt(pos)
	if !ok || t.Component == 0 {
		return 0, false
	}
	return t.Component, true
}

// wireDirection returns the Direction a wire with the given canonical
// endpoints runs in, from Start towards End.
func wireDirection(start, end Pos) direction.Direction {
	if start.X == end.X {
		return direction.North
	}
	return direction.East
}

// insertWire is the internal wire-insertion primitive. Canonicalizes
// endpoints, rejects exact duplicates, resolves cluster
// assignment by folding the endpoint nodes (allocating, adopting, or
// merging as needed), creates the wire record, and wires up the tile
// direction slots for every covered tile. Returns the handle of the
// inserted wire, or the existing handle and false if start/end duplicated
// an incident wire already at start.
func (c *Circuit) insertWire(start, end Pos) (depot.Handle, bool) {
	if end.Less(start) {
		start, end = end, start
	}
	if start == end {
		panic("circuit: attempted to insert a zero-length wire")
	}
	if start.X != end.X && start.Y != end.Y {
		panic("circuit: attempted to insert a non-axis-aligned wire")
	}

	if t, ok := c.tileAt(start); ok {
		for _, h := range t.Wires {
			if h == 0 {
				continue
			}
			w := c.wires.Get(h)
			if w.Start == start && w.End == end {
				return h, false
			}
		}
	}

	wireDir := wireDirection(start, end)

	startComp, startHasComp := c.componentHandleAt(start)
	endComp, endHasComp := c.componentHandleAt(end)

	var clusterID simulation.ClusterID
	switch {
	case !startHasComp && !endHasComp:
		clusterID = c.sim.AllocCluster()
	case startHasComp && !endHasComp:
		clusterID = c.clusterID(faceNode(startComp, wireDir))
	case !startHasComp && endHasComp:
		clusterID = c.clusterID(faceNode(endComp, wireDir.Opposite()))
	default:
		keep := faceNode(startComp, wireDir)
		other := faceNode(endComp, wireDir.Opposite())
		c.merge(keep, other)
		clusterID = c.clusterID(keep)
	}

	return c.placeWireRecord(start, end, clusterID), true
}

// placeWireRecord creates a wire record spanning start..end (already
// canonical) under the given cluster and populates every covered tile's
// direction slots. Shared by insertWire and by joinStraightWires, which
// needs to preserve a cluster id insertWire's own resolution logic would
// otherwise discard.
func (c *Circuit) placeWireRecord(start, end Pos, cluster simulation.ClusterID) depot.Handle {
	wireDir := wireDirection(start, end)
	h := c.wires.Insert(&wire{Start: start, End: end, Cluster: cluster})

	for _, pos := range (&wire{Start: start, End: end}).Tiles() {
		t := c.tileOrCreate(pos)
		switch {
		case pos == start && pos == end:
			panic("circuit: unreachable, wire has positive length")
		case pos == start:
			t.setWireAt(wireDir, h)
		case pos == end:
			t.setWireAt(wireDir.Opposite(), h)
		default:
			t.setWireAt(wireDir, h)
			t.setWireAt(wireDir.Opposite(), h)
		}
	}

	return h
}

// removeWireHandle deletes the wire record h and clears its tile direction
// slots. Does not touch cluster state; callers are responsible for invoking
// split() afterwards when the removal could disconnect the graph.
func (c *Circuit) removeWireHandle(h depot.Handle) *wire {
	w := c.wires.Get(h)
	wireDir := wireDirection(w.Start, w.End)

	for _, pos := range w.Tiles() {
		t, ok := c.tileAt(pos)
		if !ok {
			continue
		}
		switch pos {
		case w.Start:
			t.setWireAt(wireDir, 0)
		case w.End:
			t.setWireAt(wireDir.Opposite(), 0)
		default:
			t.setWireAt(wireDir, 0)
			t.setWireAt(wireDir.Opposite(), 0)
		}
		c.pruneIfEmpty(pos)
	}

	c.wires.Remove(h)
	return w
}
