// package circuit owns the tile topology, the component and wire arenas, and
// the electrical cluster graph they induce, incrementally maintained under
// insertion and removal. Grounded on original_source/src/circuit.rs's
// tile-map/wire/pin shape, extended with the cluster graph, Flip/Flop
// components, and the BFS merge/split that keeps cluster membership correct
// as wires and components are placed and removed.
package circuit

import (
	"github.com/agausmann/flipflop-go/depot"
	"github.com/agausmann/flipflop-go/direction"
	"github.com/agausmann/flipflop-go/simulation"
)

// Pos is an integer tile coordinate on the infinite sparse grid.
type Pos struct {
	X, Y int
}

// Less reports whether p sorts before other in the canonical lexicographic
// order (X first, then Y) that wire endpoints are stored in.
func (p Pos) Less(other Pos) bool {
	if p.X != other.X {
		return p.X < other.X
	}
	return p.Y < other.Y
}

// Step returns the tile reached by moving one step from p in direction d.
func (p Pos) Step(d direction.Direction) Pos {
	dx, dy := d.Vector()
	return Pos{X: p.X + dx, Y: p.Y + dy}
}

// ComponentType distinguishes the three kinds of placeable component.
type ComponentType int

const (
	Pin ComponentType = iota
	Flip
	Flop
)

// String implements fmt.Stringer for debug output.
func (t ComponentType) String() string {
	switch t {
	case Pin:
		return "Pin"
	case Flip:
		return "Flip"
	case Flop:
		return "Flop"
	default:
		return "Unknown"
	}
}

// component is the internal record stored in the component depot. A Pin uses
// only Cluster; Flip/Flop use InputCluster/OutputCluster and leave Cluster
// unset (zero).
type component struct {
	Type        ComponentType
	Position    Pos
	Orientation direction.Direction

	Cluster       simulation.ClusterID // Pin only
	InputCluster  simulation.ClusterID // Flip/Flop only
	OutputCluster simulation.ClusterID // Flip/Flop only
}

// wire is the internal record stored in the wire depot. Start/End are stored
// canonically with Start.Less(End) never false (Start <= End).
type wire struct {
	Start, End Pos
	Cluster    simulation.ClusterID
}

// Tiles returns every tile covered by the wire's segment, inclusive of both
// endpoints, in order from Start to End. Translated from
// original_source/src/circuit.rs's free function `tiles`.
func (w wire) Tiles() []Pos {
	dx := sign(w.End.X - w.Start.X)
	dy := sign(w.End.Y - w.Start.Y)
	length := abs(w.End.X-w.Start.X) + abs(w.End.Y-w.Start.Y)

	out := make([]Pos, 0, length+1)
	for i := 0; i <= length; i++ {
		out = append(out, Pos{X: w.Start.X + dx*i, Y: w.Start.Y + dy*i})
	}
	return out
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// tile is the per-position record: at most one component, plus four
// optional wire slots indexed by direction. A zero depot.Handle means the
// slot is empty (depot handles are minted starting at 1).
type tile struct {
	Component depot.Handle
	Wires     [4]depot.Handle
}

func dirIndex(d direction.Direction) int {
	switch d {
	case direction.East:
		return 0
	case direction.North:
		return 1
	case direction.West:
		return 2
	case direction.South:
		return 3
	default:
		panic("circuit: invalid direction")
	}
}

func (t *tile) wireAt(d direction.Direction) depot.Handle {
	return t.Wires[dirIndex(d)]
}

func (t *tile) setWireAt(d direction.Direction, h depot.Handle) {
	t.Wires[dirIndex(d)] = h
}

// isEmpty reports whether the tile has no component and no wires, meaning it
// can be removed from the sparse tile map.
func (t *tile) isEmpty() bool {
	return t.Component == 0 && t.Wires == [4]depot.Handle{}
}

// wireCount returns the number of distinct wires referenced by the tile's
// direction slots (a straight-through wire occupies two slots but counts
// once).
func (t *tile) wireCount() int {
	seen := make(map[depot.Handle]struct{}, 4)
	for _, h := range t.Wires {
		if h != 0 {
			seen[h] = struct{}{}
		}
	}
	return len(seen)
}

// hasCrossover reports whether the tile should render a crossover sprite:
// no component and at least two distinct wires passing through.
func (t *tile) hasCrossover() bool {
	return t.Component == 0 && t.wireCount() >= 2
}
