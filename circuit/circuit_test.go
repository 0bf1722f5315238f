package circuit

import (
	"testing"

	"github.com/agausmann/flipflop-go/depot"
	"github.com/agausmann/flipflop-go/direction"
	"github.com/agausmann/flipflop-go/simulation"
)

// checkInvariants re-validates the live state of c: every wire is referenced
// by the direction slots along its axis on every tile it covers, every
// referenced cluster is live (not on Simulation's free-list), and every
// Flip/Flop's (in, out) pair is registered with Simulation at least once.
func checkInvariants(t *testing.T, c *Circuit) {
	t.Helper()

	c.wires.Range(func(h depot.Handle, w *wire) bool {
		if c.sim.IsFree(w.Cluster) {
			t.Errorf("wire %v references free cluster %v", h, w.Cluster)
		}

		tiles := w.Tiles()
		wd := wireDirection(w.Start, w.End)
		for i, p := range tiles {
			tl, ok := c.tileAt(p)
			if !ok {
				t.Errorf("wire %v tile %v missing from tile map", h, p)
				continue
			}
			isEndpoint := i == 0 || i == len(tiles)-1
			if isEndpoint {
				want := wd
				if p == w.End {
					want = wd.Opposite()
				}
				if tl.wireAt(want) != h {
					t.Errorf("wire %v endpoint %v: slot %v does not reference it", h, p, want)
				}
			} else {
				if tl.wireAt(wd) != h || tl.wireAt(wd.Opposite()) != h {
					t.Errorf("wire %v interior tile %v: both axis slots should reference it", h, p)
				}
			}
		}
		return true
	})

	c.components.Range(func(h depot.Handle, comp *component) bool {
		switch comp.Type {
		case Pin:
			if c.sim.IsFree(comp.Cluster) {
				t.Errorf("pin %v references free cluster %v", h, comp.Cluster)
			}
		case Flip, Flop:
			if c.sim.IsFree(comp.InputCluster) || c.sim.IsFree(comp.OutputCluster) {
				t.Errorf("component %v references a free cluster", h)
			}
			var count int
			if comp.Type == Flip {
				count = c.sim.FlipCount(comp.InputCluster, comp.OutputCluster)
			} else {
				count = c.sim.FlopCount(comp.InputCluster, comp.OutputCluster)
			}
			if count < 1 {
				t.Errorf("component %v (%v) not registered with Simulation", h, comp.Type)
			}
		}
		return true
	})

	for pos, tl := range c.tiles {
		if got, want := c.HasCrossover(pos), tl.Component == 0 && tl.wireCount() >= 2; got != want {
			t.Errorf("tile %v crossover mismatch: got %v want %v", pos, got, want)
		}
	}
}

func TestPinPlaceAndDelete(t *testing.T) {
	c := New()
	pos := Pos{X: 0, Y: 0}

	if !c.PlaceComponent(Pin, pos, direction.East) {
		t.Fatal("expected Pin placement on empty tile to succeed")
	}
	ctype, _, has := c.ComponentAt(pos)
	if !has || ctype != Pin {
		t.Fatalf("expected Pin at %v, got type=%v has=%v", pos, ctype, has)
	}
	checkInvariants(t, c)

	if !c.DeleteComponent(pos) {
		t.Fatal("expected DeleteComponent to succeed")
	}
	if _, _, has := c.ComponentAt(pos); has {
		t.Fatal("expected tile to be empty after deleting its only component")
	}
	checkInvariants(t, c)
}

func TestWireWithAutoPins(t *testing.T) {
	c := New()
	start, end := Pos{X: 0, Y: 0}, Pos{X: 3, Y: 0}

	if !c.PlaceWire(start, end) {
		t.Fatal("expected place_wire to succeed on an empty straight run")
	}

	if ctype, _, has := c.ComponentAt(start); !has || ctype != Pin {
		t.Fatalf("expected auto-Pin at %v", start)
	}
	if ctype, _, has := c.ComponentAt(end); !has || ctype != Pin {
		t.Fatalf("expected auto-Pin at %v", end)
	}

	mid := Pos{X: 1, Y: 0}
	_, hasComp, wires, present := c.DebugTile(mid)
	if hasComp {
		t.Fatalf("expected %v to have no component", mid)
	}
	if !present[dirIndex(direction.East)] || !present[dirIndex(direction.West)] {
		t.Fatalf("expected both east and west slots set at %v", mid)
	}
	if wires[dirIndex(direction.East)] != wires[dirIndex(direction.West)] {
		t.Fatalf("expected a single straight-through wire at %v", mid)
	}
	sharedCluster := wires[dirIndex(direction.East)]

	_, _, startWires, startPresent := c.DebugTile(start)
	if !startPresent[dirIndex(direction.East)] {
		t.Fatalf("expected east slot set at %v", start)
	}
	if startPresent[dirIndex(direction.West)] {
		t.Fatalf("expected west slot unset at %v", start)
	}
	if startWires[dirIndex(direction.East)] != sharedCluster {
		t.Fatalf("expected wire at %v to share the single cluster", start)
	}

	_, _, endWires, endPresent := c.DebugTile(end)
	if !endPresent[dirIndex(direction.West)] {
		t.Fatalf("expected west slot set at %v", end)
	}
	if endWires[dirIndex(direction.West)] != sharedCluster {
		t.Fatalf("expected wire at %v to share the single cluster", end)
	}

	checkInvariants(t, c)
}

func TestSplittingOnComponentInsertion(t *testing.T) {
	c := New()
	start, mid, end := Pos{X: 0, Y: 0}, Pos{X: 1, Y: 0}, Pos{X: 3, Y: 0}
	if !c.PlaceWire(start, end) {
		t.Fatal("setup: place_wire failed")
	}

	if !c.PlaceComponent(Pin, mid, direction.East) {
		t.Fatal("expected Pin placement to split the straight-through wire")
	}

	westHandle, ok := c.WireConnection(mid, direction.West)
	if !ok {
		t.Fatal("expected a wire west of the new split Pin")
	}
	startEast, _ := c.WireConnection(start, direction.East)
	if startEast != westHandle {
		t.Fatal("expected the west sub-wire to span start..mid")
	}

	eastHandle, ok := c.WireConnection(mid, direction.East)
	if !ok {
		t.Fatal("expected a wire east of the new split Pin")
	}
	endWest, _ := c.WireConnection(end, direction.West)
	if endWest != eastHandle {
		t.Fatal("expected the east sub-wire to span mid..end")
	}

	if westHandle == eastHandle {
		t.Fatal("expected two distinct sub-wires, not one straight-through wire")
	}

	_, _, wires, _ := c.DebugTile(mid)
	if wires[dirIndex(direction.East)] != wires[dirIndex(direction.West)] {
		t.Fatal("expected both sub-wires and the new Pin to share one cluster")
	}

	checkInvariants(t, c)
}

func TestFlopBarrier(t *testing.T) {
	c := New()
	a, mid, b := Pos{X: 0, Y: 0}, Pos{X: 2, Y: 0}, Pos{X: 4, Y: 0}

	if !c.PlaceWire(a, b) {
		t.Fatal("setup: place_wire failed")
	}

	if c.CanPlaceComponent(Flop, mid, direction.East) {
		t.Fatal("expected a Flop to be illegal on a straight-through wire tile")
	}
	if c.PlaceComponent(Flop, mid, direction.East) {
		t.Fatal("expected Flop placement to fail on a straight-through wire tile")
	}

	if !c.DeleteAllAt(mid) {
		t.Fatal("expected delete_all_at to clear the wire through mid")
	}
	if !c.PlaceComponent(Flop, mid, direction.East) {
		t.Fatal("expected Flop placement to succeed on the now-empty tile")
	}
	if ctype, _, has := c.ComponentAt(mid); !has || ctype != Flop {
		t.Fatalf("expected a Flop at %v", mid)
	}

	if !c.PlaceWire(a, mid) {
		t.Fatal("expected wire into the Flop's input face to succeed")
	}
	if !c.PlaceWire(mid, b) {
		t.Fatal("expected wire out of the Flop's output face to succeed")
	}

	_, _, inWires, _ := c.DebugTile(Pos{X: 1, Y: 0})
	_, _, outWires, _ := c.DebugTile(Pos{X: 3, Y: 0})
	inCluster := inWires[dirIndex(direction.East)]
	outCluster := outWires[dirIndex(direction.East)]
	if inCluster == outCluster {
		t.Fatal("expected the Flop to keep its input and output sides in distinct clusters")
	}

	checkInvariants(t, c)
}

func TestCrossoverThenPinMerge(t *testing.T) {
	c := New()
	if !c.PlaceWire(Pos{X: -2, Y: 0}, Pos{X: 2, Y: 0}) {
		t.Fatal("setup: horizontal place_wire failed")
	}
	if !c.PlaceWire(Pos{X: 0, Y: -2}, Pos{X: 0, Y: 2}) {
		t.Fatal("setup: vertical place_wire failed")
	}

	center := Pos{X: 0, Y: 0}
	if !c.HasCrossover(center) {
		t.Fatal("expected a crossover at the intersection")
	}

	_, hasComp, wires, present := c.DebugTile(center)
	if hasComp {
		t.Fatal("expected no component at the crossover")
	}
	for _, d := range allDirections {
		if !present[dirIndex(d)] {
			t.Fatalf("expected all four slots set at the crossover, missing %v", d)
		}
	}
	horizCluster := wires[dirIndex(direction.East)]
	vertCluster := wires[dirIndex(direction.North)]
	if horizCluster == vertCluster {
		t.Fatal("expected the horizontal and vertical wires to start in distinct clusters")
	}

	if !c.PlaceComponent(Pin, center, direction.East) {
		t.Fatal("expected a Pin to be placeable over a crossover")
	}
	if c.HasCrossover(center) {
		t.Fatal("expected the crossover to disappear once a Pin occupies the tile")
	}

	_, _, wiresAfter, presentAfter := c.DebugTile(center)
	var merged simulation.ClusterID
	for i, d := range allDirections {
		if !presentAfter[dirIndex(d)] {
			t.Fatalf("expected all four sub-wires to remain after the Pin split them, missing %v", d)
		}
		if i == 0 {
			merged = wiresAfter[dirIndex(d)]
			continue
		}
		if wiresAfter[dirIndex(d)] != merged {
			t.Fatalf("expected all four sub-wires to merge into one cluster via the new Pin")
		}
	}

	checkInvariants(t, c)
}

// TestPlaceWireThenDeleteAllAtBothEndsEmptiesGrid checks that placing a
// wire and then clearing both of its endpoints leaves nothing behind: no
// tiles, no live clusters.
func TestPlaceWireThenDeleteAllAtBothEndsEmptiesGrid(t *testing.T) {
	c := New()
	start, end := Pos{X: 0, Y: 0}, Pos{X: 3, Y: 0}

	if !c.PlaceWire(start, end) {
		t.Fatal("setup: place_wire failed")
	}
	checkInvariants(t, c)

	if !c.DeleteAllAt(start) {
		t.Fatal("expected delete_all_at to clear the wire at its start")
	}
	if !c.DeleteAllAt(end) {
		t.Fatal("expected delete_all_at to clear the remainder at its end")
	}

	if n := len(c.tiles); n != 0 {
		t.Fatalf("expected an empty tile map, got %d tiles", n)
	}
	if n := c.wires.Len(); n != 0 {
		t.Fatalf("expected no live wires, got %d", n)
	}
	if n := c.components.Len(); n != 0 {
		t.Fatalf("expected no live components, got %d", n)
	}
	if n := c.sim.NumClusters(); n != 0 {
		for i := 0; i < n; i++ {
			if !c.sim.IsFree(simulation.ClusterID(i)) {
				t.Fatalf("expected cluster %d to be freed", i)
			}
		}
	}
}

// TestPlaceWireIsOrderIndependent checks that place_wire(a, b) results in
// the same tile/cluster layout as place_wire(b, a).
func TestPlaceWireIsOrderIndependent(t *testing.T) {
	a, b := Pos{X: 0, Y: 0}, Pos{X: 3, Y: 0}
	mid := Pos{X: 1, Y: 0}

	forward := New()
	if !forward.PlaceWire(a, b) {
		t.Fatal("setup: place_wire(a, b) failed")
	}
	checkInvariants(t, forward)

	backward := New()
	if !backward.PlaceWire(b, a) {
		t.Fatal("setup: place_wire(b, a) failed")
	}
	checkInvariants(t, backward)

	// Cluster IDs depend on allocation order, so each circuit's wire slots
	// are compared against the cluster of its own wire at a.
	_, _, fRefWires, _ := forward.DebugTile(a)
	_, _, bRefWires, _ := backward.DebugTile(a)
	fRef, bRef := fRefWires[dirIndex(direction.East)], bRefWires[dirIndex(direction.East)]

	for _, pos := range []Pos{a, mid, b} {
		fType, fOrient, fHas := forward.ComponentAt(pos)
		bType, bOrient, bHas := backward.ComponentAt(pos)
		if fHas != bHas || fType != bType || fOrient != bOrient {
			t.Fatalf("component at %v differs by placement order: forward=(%v,%v,%v) backward=(%v,%v,%v)",
				pos, fType, fOrient, fHas, bType, bOrient, bHas)
		}

		_, fHasComp, fWires, fPresent := forward.DebugTile(pos)
		_, bHasComp, bWires, bPresent := backward.DebugTile(pos)
		if fHasComp != bHasComp || fPresent != bPresent {
			t.Fatalf("tile shape at %v differs by placement order", pos)
		}
		for i := range fWires {
			if fPresent[i] && (fWires[i] == fRef) != (bWires[i] == bRef) {
				t.Fatalf("wire cluster at %v slot %d differs by placement order", pos, i)
			}
		}
	}
}

// TestDeletePinIsNoOpOnlyWhenNoWiresCross checks that placing a Pin and then
// deleting it round-trips to an empty tile exactly when no wire crosses the
// tile: a bare Pin leaves nothing behind, while deleting a Pin on a
// straight-through pair or on a full four-way crossover leaves no component
// but rejoins the wires that passed through it to their full spans.
func TestDeletePinIsNoOpOnlyWhenNoWiresCross(t *testing.T) {
	t.Run("bare pin", func(t *testing.T) {
		c := New()
		pos := Pos{X: 0, Y: 0}
		if !c.PlaceComponent(Pin, pos, direction.East) {
			t.Fatal("setup: Pin placement failed")
		}
		checkInvariants(t, c)

		if !c.DeleteComponent(pos) {
			t.Fatal("expected delete_component to succeed")
		}
		if _, ok := c.tileAt(pos); ok {
			t.Fatal("expected the tile to vanish entirely")
		}
		if n := len(c.tiles); n != 0 {
			t.Fatalf("expected an empty grid, got %d tiles", n)
		}
	})

	t.Run("straight-through crossing", func(t *testing.T) {
		c := New()
		start, mid, end := Pos{X: 0, Y: 0}, Pos{X: 1, Y: 0}, Pos{X: 2, Y: 0}
		if !c.PlaceWire(start, end) {
			t.Fatal("setup: place_wire failed")
		}
		if !c.PlaceComponent(Pin, mid, direction.East) {
			t.Fatal("setup: Pin placement failed")
		}
		checkInvariants(t, c)

		if !c.DeleteComponent(mid) {
			t.Fatal("expected delete_component to succeed")
		}
		checkInvariants(t, c)

		if _, _, hasComp := c.ComponentAt(mid); hasComp {
			t.Fatal("expected no component left at mid")
		}
		eastOfStart, ok := c.WireConnection(start, direction.East)
		if !ok {
			t.Fatal("expected the east-west wires to rejoin into a single wire spanning start..end")
		}
		westOfEnd, _ := c.WireConnection(end, direction.West)
		if eastOfStart != westOfEnd {
			t.Fatal("expected start and end to reference the same rejoined wire")
		}
	})

	t.Run("four-way crossover", func(t *testing.T) {
		c := New()
		center := Pos{X: 0, Y: 0}
		if !c.PlaceWire(Pos{X: -2, Y: 0}, Pos{X: 2, Y: 0}) {
			t.Fatal("setup: horizontal place_wire failed")
		}
		if !c.PlaceWire(Pos{X: 0, Y: -2}, Pos{X: 0, Y: 2}) {
			t.Fatal("setup: vertical place_wire failed")
		}
		if !c.PlaceComponent(Pin, center, direction.East) {
			t.Fatal("setup: Pin placement over the crossover failed")
		}
		checkInvariants(t, c)

		if !c.DeleteComponent(center) {
			t.Fatal("expected delete_component to succeed")
		}
		checkInvariants(t, c)

		if _, _, hasComp := c.ComponentAt(center); hasComp {
			t.Fatal("expected no component left at the former crossover")
		}
		westEast, ok := c.WireConnection(Pos{X: -2, Y: 0}, direction.East)
		if !ok {
			t.Fatal("expected the horizontal pair to rejoin")
		}
		if other, _ := c.WireConnection(Pos{X: 2, Y: 0}, direction.West); other != westEast {
			t.Fatal("expected the horizontal wire to span the full -2..2 run again")
		}
		northSouth, ok := c.WireConnection(Pos{X: 0, Y: -2}, direction.North)
		if !ok {
			t.Fatal("expected the vertical pair to rejoin")
		}
		if other, _ := c.WireConnection(Pos{X: 0, Y: 2}, direction.South); other != northSouth {
			t.Fatal("expected the vertical wire to span the full -2..2 run again")
		}
		if !c.HasCrossover(center) {
			t.Fatal("expected the rejoined horizontal and vertical wires to again register as a crossover")
		}
	})
}

// TestFlipSelfLoopOscillates wires a single Flip's output face back around to
// one of its own (mutually bonded) input faces, closing the loop so the
// merge triggered by the final connecting wire unifies the Flip's input and
// output clusters into one — the circuit-level analogue of Simulation's
// flip(c, c) self-loop, which oscillates with period 2 forever.
func TestFlipSelfLoopOscillates(t *testing.T) {
	c := New()
	flipPos := Pos{X: 0, Y: 0}
	if !c.PlaceComponent(Flip, flipPos, direction.East) {
		t.Fatal("setup: Flip placement failed")
	}

	if !c.PlaceWire(flipPos, Pos{X: 2, Y: 0}) {
		t.Fatal("setup: wire off the Flip's output face failed")
	}
	if !c.PlaceWire(flipPos, Pos{X: 0, Y: -2}) {
		t.Fatal("setup: wire off the Flip's south input face failed")
	}
	if !c.PlaceWire(Pos{X: 2, Y: 0}, Pos{X: 2, Y: -2}) {
		t.Fatal("setup: corner wire failed")
	}
	if !c.PlaceWire(Pos{X: 2, Y: -2}, Pos{X: 0, Y: -2}) {
		t.Fatal("setup: closing wire failed")
	}

	checkInvariants(t, c)

	_, _, wires, _ := c.DebugTile(Pos{X: 1, Y: 0})
	loopCluster := wires[dirIndex(direction.East)]

	sim := c.Simulation()
	want := !sim.IsPowered(loopCluster)
	for i := 0; i < 6; i++ {
		sim.Tick()
		if got := sim.IsPowered(loopCluster); got != want {
			t.Fatalf("tick %d: expected is_powered=%v, got %v", i, want, got)
		}
		want = !want
	}
}
