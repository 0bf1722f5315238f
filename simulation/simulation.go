// package simulation implements the discrete two-phase tick simulator that
// runs over the cluster graph a Circuit maintains. It is translated directly
// from original_source/src/simulation.rs: parallel arrays indexed by cluster
// ID, a free-list of reusable IDs, and multi-sets of incoming Flip/Flop
// connections keyed by source cluster.
package simulation

// ClusterID identifies one equivalence class of electrically connected wire
// and component faces. IDs are reused without generation tags once freed:
// no code path in this package retains a ClusterID across a free+alloc
// boundary.
type ClusterID int

// Simulation owns per-cluster power state and the Flip/Flop connection
// multi-sets that drive Tick.
type Simulation struct {
	numClusters  int
	freeClusters []ClusterID

	isPowered   []bool
	wasPowered  []bool
	flipsIn     []map[ClusterID]int
	flopsIn     []map[ClusterID]int
	manualPower []int
}

// New creates an empty Simulation with no allocated clusters.
func New() *Simulation {
	return &Simulation{}
}

// AllocCluster pops a reusable ID off the free-list or grows the parallel
// arrays by one, returning a fresh ClusterID with every field at its
// default (unpowered, no connections, no manual power).
func (s *Simulation) AllocCluster() ClusterID {
	if n := len(s.freeClusters); n > 0 {
		id := s.freeClusters[n-1]
		s.freeClusters = s.freeClusters[:n-1]
		s.isPowered[id] = false
		s.wasPowered[id] = false
		return id
	}

	id := ClusterID(s.numClusters)
	s.numClusters++

	s.isPowered = append(s.isPowered, false)
	s.wasPowered = append(s.wasPowered, false)
	s.flipsIn = append(s.flipsIn, make(map[ClusterID]int))
	s.flopsIn = append(s.flopsIn, make(map[ClusterID]int))
	s.manualPower = append(s.manualPower, 0)

	return id
}

// FreeCluster returns id to the free-list. Panics if the cluster still has
// live Flip/Flop connections or manual power — this is an invariant
// violation, not a recoverable condition.
func (s *Simulation) FreeCluster(id ClusterID) {
	if len(s.flipsIn[id]) != 0 {
		panic("simulation: free_cluster called with live flip connections")
	}
	if len(s.flopsIn[id]) != 0 {
		panic("simulation: free_cluster called with live flop connections")
	}
	if s.manualPower[id] != 0 {
		panic("simulation: free_cluster called with nonzero manual power")
	}
	s.freeClusters = append(s.freeClusters, id)
}

// AddFlip registers a Flip component's (input, output) cluster pair,
// incrementing the multiplicity of src in flipsIn[dst].
func (s *Simulation) AddFlip(src, dst ClusterID) {
	s.flipsIn[dst][src]++
}

// AddFlop registers a Flop component's (input, output) cluster pair.
func (s *Simulation) AddFlop(src, dst ClusterID) {
	s.flopsIn[dst][src]++
}

// RemoveFlip decrements the multiplicity of src in flipsIn[dst], erasing the
// entry at zero. Panics if src was not registered (count would go negative).
func (s *Simulation) RemoveFlip(src, dst ClusterID) {
	count, ok := s.flipsIn[dst][src]
	if !ok {
		panic("simulation: remove_flip on a connection that was never added")
	}
	count--
	if count == 0 {
		delete(s.flipsIn[dst], src)
	} else {
		s.flipsIn[dst][src] = count
	}
}

// RemoveFlop decrements the multiplicity of src in flopsIn[dst], erasing the
// entry at zero. Panics if src was not registered.
func (s *Simulation) RemoveFlop(src, dst ClusterID) {
	count, ok := s.flopsIn[dst][src]
	if !ok {
		panic("simulation: remove_flop on a connection that was never added")
	}
	count--
	if count == 0 {
		delete(s.flopsIn[dst], src)
	} else {
		s.flopsIn[dst][src] = count
	}
}

// Power bumps id's manual_power counter up by one. While nonzero, the
// cluster is powered level-sensitively regardless of its inputs.
func (s *Simulation) Power(id ClusterID) {
	s.manualPower[id]++
}

// Unpower bumps id's manual_power counter down by one.
func (s *Simulation) Unpower(id ClusterID) {
	s.manualPower[id]--
}

// IsPowered returns the current tick's power state for id.
func (s *Simulation) IsPowered(id ClusterID) bool {
	return s.isPowered[id]
}

// WasPowered returns the previous tick's power state for id.
func (s *Simulation) WasPowered(id ClusterID) bool {
	return s.wasPowered[id]
}

// SetPowered directly overwrites is_powered[id], used during cluster merges
// to preserve accumulated state across a union.
func (s *Simulation) SetPowered(id ClusterID, powered bool) {
	s.isPowered[id] = powered
}

// Tick advances the simulator by exactly one combinational pass: swap
// is_powered/was_powered, then recompute every live cluster's is_powered
// from the snapshot just moved into was_powered. There is no convergence
// loop — feedback oscillates with a period of 2 ticks by construction.
func (s *Simulation) Tick() {
	s.isPowered, s.wasPowered = s.wasPowered, s.isPowered

	for i := range s.numClusters {
		c := ClusterID(i)
		powered := s.manualPower[c] > 0

		if !powered {
			for src := range s.flipsIn[c] {
				if !s.wasPowered[src] {
					powered = true
					break
				}
			}
		}
		if !powered {
			for src := range s.flopsIn[c] {
				if s.wasPowered[src] {
					powered = true
					break
				}
			}
		}

		s.isPowered[c] = powered
	}
}

// NumClusters returns the high-water mark of allocated cluster IDs
// (including freed ones still below the mark).
func (s *Simulation) NumClusters() int {
	return s.numClusters
}

// FlipCount returns the multiplicity of the (src, dst) Flip connection, used
// to verify connection-count invariants in tests.
func (s *Simulation) FlipCount(src, dst ClusterID) int {
	return s.flipsIn[dst][src]
}

// FlopCount returns the multiplicity of the (src, dst) Flop connection.
func (s *Simulation) FlopCount(src, dst ClusterID) int {
	return s.flopsIn[dst][src]
}

// IsFree reports whether id is currently on the free-list (not live).
func (s *Simulation) IsFree(id ClusterID) bool {
	for _, free := range s.freeClusters {
		if free == id {
			return true
		}
	}
	return false
}
