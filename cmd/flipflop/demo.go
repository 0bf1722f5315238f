package main

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/agausmann/flipflop-go/circuit"
	"github.com/agausmann/flipflop-go/direction"
)

// demoPlacement is one component or wire the opening demo circuit lays
// down, scripted so the program has something interactive on screen
// without requiring the player to touch the mouse first.
type demoPlacement struct {
	kind string // "pin", "flip", "flop", or "wire"
	pos  circuit.Pos
	end  circuit.Pos // wire only
	orie direction.Direction
}

// runDemo lays out a small reproducible opening circuit — a Pin feeding a
// Flip's input face over a wire run, with a second wire trailing off the
// Flip's output face so its driven power state is visible on something
// other than the component sprite itself — submitting each placement to a
// DynamicWorkerPool the way the teacher's engine/scene.go submits
// per-animator prep work to its compute pool. Placement order matters
// across steps (a wire's endpoints must already exist as the intended
// component before the wire bonds to a specific face), so every step still
// runs through its own WaitGroup barrier rather than firing all placements
// at once; the pool is reused purely to pick up the teacher's worker-pool
// idiom for this smoke-test entry point, not because same-step placements
// are independent enough to race.
//
// Parameters:
//   - c: the circuit to populate
func runDemo(c *circuit.Circuit) {
	pool := worker.NewDynamicWorkerPool(4, 16, 1*time.Second)

	steps := [][]demoPlacement{
		{
			{kind: "pin", pos: circuit.Pos{X: 0, Y: 0}},
		},
		{
			{kind: "flip", pos: circuit.Pos{X: 2, Y: 0}, orie: direction.East},
		},
		{
			// Bonds to the Flip's West input face (the Pin sits upstream).
			{kind: "wire", pos: circuit.Pos{X: 0, Y: 0}, end: circuit.Pos{X: 2, Y: 0}},
			// Bonds to the Flip's East output face; PlaceWire puts a Pin at
			// the far end, which carries the Flip's driven state.
			{kind: "wire", pos: circuit.Pos{X: 2, Y: 0}, end: circuit.Pos{X: 5, Y: 0}},
		},
	}

	for stepIdx, step := range steps {
		var wg sync.WaitGroup
		for i, p := range step {
			wg.Add(1)
			placement := p
			taskID := stepIdx*len(steps) + i
			pool.SubmitTask(worker.Task{
				ID: taskID,
				Do: func() (any, error) {
					defer wg.Done()
					applyDemoPlacement(c, placement)
					return nil, nil
				},
			})
		}
		wg.Wait()
	}

	log.Println("demo circuit ready: pin-fed Flip with an output wire run")
}

// applyDemoPlacement places a single demoPlacement onto c, logging (but
// not failing the program over) any placement the circuit's invariants
// reject — a scripted demo circuit is a convenience, not a critical path.
func applyDemoPlacement(c *circuit.Circuit, p demoPlacement) {
	var ok bool
	switch p.kind {
	case "pin":
		ok = c.PlaceComponent(circuit.Pin, p.pos, direction.North)
	case "flip":
		ok = c.PlaceComponent(circuit.Flip, p.pos, p.orie)
	case "flop":
		ok = c.PlaceComponent(circuit.Flop, p.pos, p.orie)
	case "wire":
		ok = c.PlaceWire(p.pos, p.end)
	}
	if !ok {
		log.Printf("demo: placement %s at %v rejected by circuit invariants", p.kind, p.pos)
	}
}
