package circuit

import (
	"github.com/agausmann/flipflop-go/depot"
	"github.com/agausmann/flipflop-go/direction"
)

var allDirections = [4]direction.Direction{direction.East, direction.North, direction.West, direction.South}

// otherEnd returns whichever of w.Start/w.End is not at.
func otherEnd(w wire, at Pos) Pos {
	if w.Start == at {
		return w.End
	}
	return w.Start
}

// straightPassThroughWire reports, independently for each axis, whether t
// hosts exactly two distinct wires meeting end-to-end across that axis —
// the configuration under which deleting a Pin restores continuity by
// re-joining that axis's two segments into one wire. The east-west and
// north-south axes are checked independently, not mutually exclusively: a
// 4-way crossover pin qualifies on both axes at once, and each pair is
// rejoined on its own.
func straightPassThroughWire(t *tile) [][2]depot.Handle {
	var pairs [][2]depot.Handle
	if hE, hW := t.wireAt(direction.East), t.wireAt(direction.West); hE != 0 && hW != 0 && hE != hW {
		pairs = append(pairs, [2]depot.Handle{hE, hW})
	}
	if hN, hS := t.wireAt(direction.North), t.wireAt(direction.South); hN != 0 && hS != 0 && hN != hS {
		pairs = append(pairs, [2]depot.Handle{hN, hS})
	}
	return pairs
}

// joinStraightWires replaces the two wire segments meeting at `at` with a
// single wire spanning their far endpoints, preserving the shared cluster
// id rather than letting it be re-resolved (and possibly re-allocated) by
// the generic insertion path.
func (c *Circuit) joinStraightWires(h1, h2 depot.Handle, at Pos) {
	w1 := *c.wires.Get(h1)
	w2 := *c.wires.Get(h2)
	far1 := otherEnd(w1, at)
	far2 := otherEnd(w2, at)
	cluster := w1.Cluster

	c.removeWireHandle(h1)
	c.removeWireHandle(h2)

	start, end := far1, far2
	if end.Less(start) {
		start, end = end, start
	}
	c.placeWireRecord(start, end, cluster)
}

// DeleteComponent removes the component at pos, if any.
//
// Deleting a Pin that sits on a straight, uninterrupted pass-through (two
// wires meeting end-to-end on an axis) restores continuity on that axis: the
// two segments are rejoined into a single wire under the same cluster. Both
// axes are checked independently, so a 4-way crossover pin rejoins both the
// east-west and north-south pairs; the wires left at pos are then checked
// with split(), so the two axes of the resulting crossover end up in
// separate clusters unless connected elsewhere. In every other configuration — including
// every Flip/Flop deletion, which never restores continuity regardless of
// how its faces were wired — the component is simply removed and any wires
// it had bonded together are checked with split() to see whether they
// remain connected via some other path in the graph.
func (c *Circuit) DeleteComponent(pos Pos) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleteComponentLocked(pos)
}

// deleteComponentLocked is DeleteComponent's body, callable by other
// Circuit methods that already hold mu.
func (c *Circuit) deleteComponentLocked(pos Pos) bool {
	t, ok := c.tileAt(pos)
	if !ok || t.Component == 0 {
		return false
	}
	compH := t.Component
	comp := c.components.Get(compH)

	if comp.Type == Pin {
		if pairs := straightPassThroughWire(t); len(pairs) > 0 {
			for _, pair := range pairs {
				c.joinStraightWires(pair[0], pair[1], pos)
			}
			t.Component = 0
			c.components.Remove(compH)

			// Without the Pin, the wires left at pos no longer share a face:
			// each axis keeps its cluster only if still connected elsewhere.
			var remaining []depot.Handle
			remainingSeen := map[depot.Handle]bool{}
			for _, d := range allDirections {
				if h := t.wireAt(d); h != 0 && !remainingSeen[h] {
					remainingSeen[h] = true
					remaining = append(remaining, h)
				}
			}
			for _, h := range remaining[1:] {
				c.split(wireNode(remaining[0]), wireNode(h))
			}
			c.pruneIfEmpty(pos)
			return true
		}
	}

	var attached []depot.Handle
	seen := map[depot.Handle]bool{}
	for _, d := range allDirections {
		if h := t.wireAt(d); h != 0 && !seen[h] {
			seen[h] = true
			attached = append(attached, h)
		}
	}

	switch comp.Type {
	case Flip:
		c.sim.RemoveFlip(comp.InputCluster, comp.OutputCluster)
	case Flop:
		c.sim.RemoveFlop(comp.InputCluster, comp.OutputCluster)
	}

	t.Component = 0
	c.components.Remove(compH)
	c.pruneIfEmpty(pos)

	if len(attached) > 0 {
		keep := wireNode(attached[0])
		for _, h := range attached[1:] {
			c.split(keep, wireNode(h))
		}
	}

	switch comp.Type {
	case Pin:
		c.freeClusterIfOrphaned(comp.Cluster)
	case Flip, Flop:
		c.freeClusterIfOrphaned(comp.InputCluster)
		c.freeClusterIfOrphaned(comp.OutputCluster)
	}

	return true
}

// DeleteAllAt clears everything occupying pos: the component (if any, via
// DeleteComponent) and every wire that terminates at or passes through pos,
// in its entirety — a wire removed this way is deleted along
// its full span, not just the portion touching pos. For any such wire whose
// two endpoints both still carry a surviving component, split() checks
// whether those components remain connected through some other path before
// the wire's cluster is allowed to separate.
func (c *Circuit) DeleteAllAt(pos Pos) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.tileAt(pos)
	if !ok {
		return false
	}
	hadSomething := t.Component != 0
	for _, h := range t.Wires {
		if h != 0 {
			hadSomething = true
		}
	}
	if !hadSomething {
		return false
	}

	if t.Component != 0 {
		c.deleteComponentLocked(pos)
		t, ok = c.tileAt(pos)
		if !ok {
			t = nil
		}
	}

	var wires []depot.Handle
	if t != nil {
		seen := map[depot.Handle]bool{}
		for _, h := range t.Wires {
			if h != 0 && !seen[h] {
				seen[h] = true
				wires = append(wires, h)
			}
		}
	}

	for _, h := range wires {
		w := *c.wires.Get(h)
		wireDir := wireDirection(w.Start, w.End)

		startH, startHas := c.componentHandleAt(w.Start)
		endH, endHas := c.componentHandleAt(w.End)

		doSplit := startHas && endHas
		var keep, other node
		if doSplit {
			keep = faceNode(startH, wireDir)
			other = faceNode(endH, wireDir.Opposite())
		}

		removed := c.removeWireHandle(h)
		if doSplit {
			c.split(keep, other)
		}
		c.freeClusterIfOrphaned(removed.Cluster)
	}

	return true
}
