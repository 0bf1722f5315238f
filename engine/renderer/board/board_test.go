package board

import (
	"testing"

	"github.com/agausmann/flipflop-go/circuit"
	"github.com/agausmann/flipflop-go/direction"
)

func TestSyncTileAddsAndRemovesInstance(t *testing.T) {
	c := circuit.New()
	r := New()
	pos := circuit.Pos{X: 0, Y: 0}

	r.SyncTile(c, pos)
	if r.Len() != 0 {
		t.Fatalf("expected no instance for an empty tile, got %d", r.Len())
	}

	if !c.PlaceComponent(circuit.Pin, pos, direction.East) {
		t.Fatal("setup: Pin placement failed")
	}
	r.SyncTile(c, pos)
	if r.Len() != 1 {
		t.Fatalf("expected one instance after placing a Pin, got %d", r.Len())
	}

	if !c.DeleteComponent(pos) {
		t.Fatal("setup: DeleteComponent failed")
	}
	r.SyncTile(c, pos)
	if r.Len() != 0 {
		t.Fatalf("expected the instance to be released once the Pin is deleted, got %d", r.Len())
	}
}

func TestSyncTileResyncsInPlace(t *testing.T) {
	c := circuit.New()
	r := New()
	pos := circuit.Pos{X: 0, Y: 0}

	if !c.PlaceComponent(circuit.Pin, pos, direction.East) {
		t.Fatal("setup: Pin placement failed")
	}
	r.SyncTile(c, pos)
	r.SyncTile(c, pos)
	if r.Len() != 1 {
		t.Fatalf("expected re-syncing the same tile to update in place, got %d instances", r.Len())
	}
}

func TestTileVisualCrossoverAndWire(t *testing.T) {
	c := circuit.New()
	if !c.PlaceWire(circuit.Pos{X: -2, Y: 0}, circuit.Pos{X: 2, Y: 0}) {
		t.Fatal("setup: horizontal place_wire failed")
	}
	if !c.PlaceWire(circuit.Pos{X: 0, Y: -2}, circuit.Pos{X: 0, Y: 2}) {
		t.Fatal("setup: vertical place_wire failed")
	}

	center := circuit.Pos{X: 0, Y: 0}
	visual, ok := tileVisual(c, center)
	if !ok || visual.sprite != SpriteCrossover {
		t.Fatalf("expected a crossover sprite at the intersection, got %+v ok=%v", visual, ok)
	}

	mid := circuit.Pos{X: 1, Y: 0}
	visual, ok = tileVisual(c, mid)
	if !ok || visual.sprite != SpriteWire || visual.rotation != 0 {
		t.Fatalf("expected a horizontal wire sprite at %v, got %+v ok=%v", mid, visual, ok)
	}
}

func TestTileVisualEmptyTile(t *testing.T) {
	c := circuit.New()
	if _, ok := tileVisual(c, circuit.Pos{X: 5, Y: 5}); ok {
		t.Fatal("expected no visual for an untouched tile")
	}
}
