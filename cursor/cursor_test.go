package cursor_test

import (
	"testing"

	"github.com/agausmann/flipflop-go/circuit"
	"github.com/agausmann/flipflop-go/cursor"
	"github.com/agausmann/flipflop-go/direction"
)

func TestDefaultStateIsNormalWithPinSelected(t *testing.T) {
	m := cursor.New()
	if m.State().Kind != cursor.Normal {
		t.Fatalf("expected Normal state, got %v", m.State().Kind)
	}
	if m.PlaceType() != circuit.Pin {
		t.Fatalf("expected Pin selected by default, got %v", m.PlaceType())
	}
}

func TestPanAccumulatesScreenDelta(t *testing.T) {
	m := cursor.New()
	m.StartPan(100, 50)

	dx, dy := m.Update(circuit.Pos{}, 110, 70)
	if dx != 10 || dy != 20 {
		t.Fatalf("expected delta (10, 20), got (%v, %v)", dx, dy)
	}

	dx, dy = m.Update(circuit.Pos{}, 110, 70)
	if dx != 0 || dy != 0 {
		t.Fatalf("expected zero delta on a second call with unchanged position, got (%v, %v)", dx, dy)
	}
}

func TestPlaceWireSnapsToDominantAxis(t *testing.T) {
	m := cursor.New()
	start := circuit.Pos{X: 0, Y: 0}
	m.StartPlaceWire(start)

	m.Update(circuit.Pos{X: 5, Y: 2}, 0, 0)
	if got := m.State().WireEnd; got != (circuit.Pos{X: 5, Y: 0}) {
		t.Fatalf("expected horizontal snap to (5,0), got %v", got)
	}

	m.Update(circuit.Pos{X: 2, Y: 5}, 0, 0)
	if got := m.State().WireEnd; got != (circuit.Pos{X: 0, Y: 5}) {
		t.Fatalf("expected vertical snap to (0,5), got %v", got)
	}
}

func TestCommitPlaceWireReturnsToNormal(t *testing.T) {
	c := circuit.New()
	m := cursor.New()
	m.StartPlaceWire(circuit.Pos{X: 0, Y: 0})
	m.Update(circuit.Pos{X: 3, Y: 0}, 0, 0)

	if !m.Commit(c, circuit.Pos{}) {
		t.Fatal("expected committing a legal wire drag to succeed")
	}
	if m.State().Kind != cursor.Normal {
		t.Fatalf("expected Normal state after commit, got %v", m.State().Kind)
	}
	if ctype, _, has := c.ComponentAt(circuit.Pos{X: 0, Y: 0}); !has || ctype != circuit.Pin {
		t.Fatal("expected an auto-placed Pin at the wire's start")
	}
}

func TestCommitIllegalWireStaysInPlaceWireState(t *testing.T) {
	c := circuit.New()
	if !c.PlaceComponent(circuit.Flop, circuit.Pos{X: 2, Y: 0}, direction.North) {
		t.Fatal("setup: Flop placement failed")
	}

	m := cursor.New()
	m.StartPlaceWire(circuit.Pos{X: 0, Y: 0})
	m.Update(circuit.Pos{X: 4, Y: 0}, 0, 0)

	if m.Commit(c, circuit.Pos{}) {
		t.Fatal("expected commit to fail: wire passes through a Flop's non-matching face")
	}
	if m.State().Kind != cursor.PlaceWire {
		t.Fatal("expected state to remain PlaceWire after a failed commit")
	}
}

func TestValidPlacementReflectsCanPlaceComponent(t *testing.T) {
	c := circuit.New()
	pos := circuit.Pos{X: 0, Y: 0}
	if !c.PlaceWire(circuit.Pos{X: -2, Y: 0}, circuit.Pos{X: 2, Y: 0}) {
		t.Fatal("setup: place_wire failed")
	}

	m := cursor.New()
	m.SetPlaceType(circuit.Flop)
	m.SetPlaceOrientation(direction.East)

	if m.ValidPlacement(c, pos) {
		t.Fatal("expected a Flop to be invalid on a straight-through wire tile")
	}

	m.SetPlaceType(circuit.Pin)
	if !m.ValidPlacement(c, pos) {
		t.Fatal("expected a Pin to be valid on a bare wire tile")
	}
}

func TestValidPlacementRejectsPinOverExistingComponent(t *testing.T) {
	c := circuit.New()
	pos := circuit.Pos{X: 0, Y: 0}
	if !c.PlaceComponent(circuit.Flip, pos, direction.East) {
		t.Fatal("setup: place_component failed")
	}

	m := cursor.New()
	m.SetPlaceType(circuit.Pin)
	if m.ValidPlacement(c, pos) {
		t.Fatal("expected a Pin to be invalid over a tile already occupied by a Flip")
	}
}

func TestEndReturnsToNormalFromAnyState(t *testing.T) {
	m := cursor.New()
	m.StartPan(0, 0)
	m.End()
	if m.State().Kind != cursor.Normal {
		t.Fatal("expected End() to reset to Normal from Pan")
	}

	m.StartPlaceWire(circuit.Pos{})
	m.End()
	if m.State().Kind != cursor.Normal {
		t.Fatal("expected End() to reset to Normal from PlaceWire")
	}
}
