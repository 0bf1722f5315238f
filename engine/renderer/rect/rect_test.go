package rect

import (
	"testing"

	"github.com/agausmann/flipflop-go/circuit"
	"github.com/agausmann/flipflop-go/cursor"
)

func TestSyncPlacementPreviewTogglesWithComponentType(t *testing.T) {
	c := circuit.New()
	m := cursor.New() // defaults to Pin
	r := New()

	r.Sync(c, m, circuit.Pos{X: 0, Y: 0})
	if r.instances.Len() == 0 {
		t.Fatal("expected at least one preview instance for the default Pin selection")
	}

	m.SetPlaceType(circuit.Flip)
	r.Sync(c, m, circuit.Pos{X: 0, Y: 0})
	countAfterFlip := r.instances.Len()
	if countAfterFlip < 3 {
		t.Fatalf("expected 3 preview sprites (pin/body/output) for Flip, got %d live instances", countAfterFlip)
	}
}

func TestSyncHidesPlacementPreviewWhilePlacingWire(t *testing.T) {
	c := circuit.New()
	m := cursor.New()
	r := New()

	m.StartPlaceWire(circuit.Pos{X: 0, Y: 0})
	r.Sync(c, m, circuit.Pos{X: 0, Y: 0})

	for i, h := range r.handles {
		if h != 0 {
			t.Fatalf("expected placement preview slot %d to be hidden while dragging a wire", i)
		}
	}
}

func TestSyncWirePreviewShowsEndpointsAndBody(t *testing.T) {
	c := circuit.New()
	m := cursor.New()
	r := New()

	m.StartPlaceWire(circuit.Pos{X: 0, Y: 0})
	m.Update(circuit.Pos{X: 3, Y: 0}, 0, 0)
	r.Sync(c, m, circuit.Pos{X: 3, Y: 0})

	if r.wireStart == 0 || r.wireEnd == 0 || r.wireBody == 0 {
		t.Fatal("expected wire preview start/end/body instances to all be present")
	}
}

func TestSyncOutlineReflectsValidity(t *testing.T) {
	c := circuit.New()
	m := cursor.New()
	r := New()

	r.Sync(c, m, circuit.Pos{X: 0, Y: 0})
	if r.outline == 0 {
		t.Fatal("expected an outline instance to always be present")
	}
}
