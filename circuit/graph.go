package circuit

import (
	"github.com/agausmann/flipflop-go/depot"
	"github.com/agausmann/flipflop-go/direction"
	"github.com/agausmann/flipflop-go/simulation"
)

// node is a graph vertex in the electrical connectivity flood-fill: either a
// wire or a single face of a component. Components expose a different
// electrical topology per face (a Pin bonds all four faces into one node
// class; a Flip bonds its three non-output faces; a Flop bonds none of its
// faces to each other), so the face is part of the node's identity.
type node struct {
	isWire    bool
	wire      depot.Handle
	component depot.Handle
	face      direction.Direction
}

func wireNode(h depot.Handle) node {
	return node{isWire: true, wire: h}
}

func faceNode(h depot.Handle, face direction.Direction) node {
	return node{isWire: false, component: h, face: face}
}

// clusterID resolves the cluster a node currently belongs to.
func (c *Circuit) clusterID(n node) simulation.ClusterID {
	if n.isWire {
		return c.wires.Get(n.wire).Cluster
	}

	comp := c.components.Get(n.component)
	switch comp.Type {
	case Pin:
		return comp.Cluster
	case Flip:
		if n.face == comp.Orientation {
			return comp.OutputCluster
		}
		return comp.InputCluster
	case Flop:
		switch n.face {
		case comp.Orientation:
			return comp.OutputCluster
		case comp.Orientation.Opposite():
			return comp.InputCluster
		default:
			panic("circuit: cluster_id queried on a Flop side face")
		}
	default:
		panic("circuit: unknown component type")
	}
}

// setClusterID rewrites the cluster a node belongs to, used while flooding
// during merge/split.
func (c *Circuit) setClusterID(n node, id simulation.ClusterID) {
	if n.isWire {
		c.wires.Get(n.wire).Cluster = id
		return
	}

	comp := c.components.Get(n.component)
	switch comp.Type {
	case Pin:
		comp.Cluster = id
	case Flip:
		if n.face == comp.Orientation {
			comp.OutputCluster = id
		} else {
			comp.InputCluster = id
		}
	case Flop:
		switch n.face {
		case comp.Orientation:
			comp.OutputCluster = id
		case comp.Orientation.Opposite():
			comp.InputCluster = id
		default:
			panic("circuit: set_cluster_id on a Flop side face")
		}
	default:
		panic("circuit: unknown component type")
	}
}

// neighbors returns every node directly electrically bonded to n.
func (c *Circuit) neighbors(n node) []node {
	if n.isWire {
		w := c.wires.Get(n.wire)
		return c.wireNeighbors(w)
	}
	return c.faceNeighbors(n)
}

// wireNeighbors returns the component face(s) bonded to w's two endpoints,
// if a component is present there.
func (c *Circuit) wireNeighbors(w *wire) []node {
	var out []node

	wireDir := direction.East
	if w.Start.X == w.End.X {
		wireDir = direction.North
	}

	if t, ok := c.tileAt(w.Start); ok && t.Component != 0 {
		out = append(out, faceNode(t.Component, wireDir))
	}
	if t, ok := c.tileAt(w.End); ok && t.Component != 0 {
		out = append(out, faceNode(t.Component, wireDir.Opposite()))
	}
	return out
}

// faceNeighbors returns the wires (and, transitively, bonded sibling faces)
// reachable directly from n via its tile's wire slots.
func (c *Circuit) faceNeighbors(n node) []node {
	comp := c.components.Get(n.component)
	t, ok := c.tileAt(comp.Position)
	if !ok {
		return nil
	}

	bondedFaces := c.bondedFaces(comp, n.face)

	var out []node
	for _, face := range bondedFaces {
		if h := t.wireAt(face); h != 0 {
			out = append(out, wireNode(h))
		}
	}
	return out
}

// bondedFaces returns the set of faces electrically bonded to face on comp,
// including face itself.
func (c *Circuit) bondedFaces(comp *component, face direction.Direction) []direction.Direction {
	switch comp.Type {
	case Pin:
		return []direction.Direction{direction.East, direction.North, direction.West, direction.South}
	case Flip:
		if face == comp.Orientation {
			return []direction.Direction{comp.Orientation}
		}
		return []direction.Direction{
			comp.Orientation.Opposite(),
			comp.Orientation.Left(),
			comp.Orientation.Right(),
		}
	case Flop:
		return []direction.Direction{face}
	default:
		panic("circuit: unknown component type")
	}
}

// flood performs a breadth-first search from start, returning the visited
// node set as a slice (in visit order).
func (c *Circuit) flood(start node) []node {
	visited := map[node]bool{start: true}
	queue := []node{start}
	order := []node{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, nb := range c.neighbors(cur) {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			order = append(order, nb)
			queue = append(queue, nb)
		}
	}
	return order
}

// rewireFlipFlops re-registers every Flip/Flop component referenced by
// visited faces with Simulation, using each component's *current* (already
// rewritten) input/output clusters. oldEdges maps a component handle to the
// (inCluster, outCluster) pair that Simulation still has registered for it,
// captured by the caller before rewriting cluster references.
func (c *Circuit) rewireFlipFlops(visited []node, oldEdges map[depot.Handle][2]simulation.ClusterID) {
	seen := map[depot.Handle]bool{}
	for _, n := range visited {
		if n.isWire || seen[n.component] {
			continue
		}
		seen[n.component] = true

		comp := c.components.Get(n.component)
		old, ok := oldEdges[n.component]
		if !ok {
			continue
		}

		switch comp.Type {
		case Flip:
			c.sim.RemoveFlip(old[0], old[1])
			c.sim.AddFlip(comp.InputCluster, comp.OutputCluster)
		case Flop:
			c.sim.RemoveFlop(old[0], old[1])
			c.sim.AddFlop(comp.InputCluster, comp.OutputCluster)
		}
	}
}

// captureFlipFlopEdges snapshots the current (inCluster, outCluster) pair of
// every Flip/Flop component referenced by visited, before any cluster
// rewriting happens.
func (c *Circuit) captureFlipFlopEdges(visited []node) map[depot.Handle][2]simulation.ClusterID {
	edges := map[depot.Handle][2]simulation.ClusterID{}
	for _, n := range visited {
		if n.isWire {
			continue
		}
		if _, already := edges[n.component]; already {
			continue
		}
		comp := c.components.Get(n.component)
		if comp.Type == Flip || comp.Type == Flop {
			edges[n.component] = [2]simulation.ClusterID{comp.InputCluster, comp.OutputCluster}
		}
	}
	return edges
}

// merge unions the clusters of keepNode and otherNode: floods the
// subgraph reachable from otherNode, rewrites every visited reference to
// keepNode's cluster, re-registers Flip/Flop edges with Simulation, ORs the
// power state into keepNode's cluster, and frees otherNode's old cluster.
func (c *Circuit) merge(keepNode, otherNode node) {
	keepID := c.clusterID(keepNode)
	otherID := c.clusterID(otherNode)
	if keepID == otherID {
		return
	}

	visited := c.flood(otherNode)
	edges := c.captureFlipFlopEdges(visited)

	for _, n := range visited {
		c.setClusterID(n, keepID)
	}
	c.rewireFlipFlops(visited, edges)

	wasPowered := c.sim.IsPowered(keepID) || c.sim.IsPowered(otherID)
	c.sim.SetPowered(keepID, wasPowered)
	c.sim.FreeCluster(otherID)
}

// split is called after removing a wire that connected keepNode and
// splitNode. If the two are still connected through some other path nothing
// changes; otherwise splitNode's subgraph is rewritten onto a freshly
// allocated cluster seeded with the old cluster's power state.
func (c *Circuit) split(keepNode, splitNode node) {
	keepID := c.clusterID(keepNode)
	splitID := c.clusterID(splitNode)
	if keepID != splitID {
		return
	}

	visited := c.flood(splitNode)
	for _, n := range visited {
		if n == keepNode {
			return
		}
	}

	newID := c.sim.AllocCluster()
	c.sim.SetPowered(newID, c.sim.IsPowered(keepID))

	edges := c.captureFlipFlopEdges(visited)
	for _, n := range visited {
		c.setClusterID(n, newID)
	}
	c.rewireFlipFlops(visited, edges)
}
