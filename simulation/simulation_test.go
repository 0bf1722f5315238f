package simulation

import "testing"

func TestFeedbackFlip(t *testing.T) {
	sim := New()

	cluster := sim.AllocCluster()
	sim.AddFlip(cluster, cluster)
	if sim.IsPowered(cluster) {
		t.Fatalf("cluster powered before first tick")
	}
	for i := range 10 {
		sim.Tick()
		if !sim.IsPowered(cluster) {
			t.Errorf("iteration %d: expected powered after odd tick", i)
		}
		sim.Tick()
		if sim.IsPowered(cluster) {
			t.Errorf("iteration %d: expected unpowered after even tick", i)
		}
	}
	sim.RemoveFlip(cluster, cluster)
	sim.Tick()
	if sim.IsPowered(cluster) {
		t.Errorf("expected unpowered once feedback removed")
	}
	sim.FreeCluster(cluster)
}

func TestSRLatchAstable(t *testing.T) {
	sim := New()

	a := sim.AllocCluster()
	b := sim.AllocCluster()
	sim.AddFlip(a, b)
	sim.AddFlip(b, a)

	for i := range 10 {
		sim.Tick()
		if !sim.IsPowered(a) || !sim.IsPowered(b) {
			t.Errorf("iteration %d: expected both powered", i)
		}
		sim.Tick()
		if sim.IsPowered(a) || sim.IsPowered(b) {
			t.Errorf("iteration %d: expected both unpowered", i)
		}
	}
	sim.RemoveFlip(a, b)
	sim.RemoveFlip(b, a)
	sim.Tick()
	if sim.IsPowered(a) || sim.IsPowered(b) {
		t.Errorf("expected both unpowered once feedback removed")
	}
	sim.FreeCluster(a)
	sim.FreeCluster(b)
}

func TestSRLatchStable(t *testing.T) {
	sim := New()

	a := sim.AllocCluster()
	b := sim.AllocCluster()
	sim.AddFlip(a, b)
	sim.Tick()
	sim.AddFlip(b, a)

	for i := range 10 {
		sim.Tick()
		if sim.IsPowered(a) {
			t.Errorf("iteration %d: expected a unpowered", i)
		}
		if !sim.IsPowered(b) {
			t.Errorf("iteration %d: expected b powered", i)
		}
	}

	sim.Power(a)
	sim.Tick()
	sim.Tick()
	sim.Unpower(a)

	for i := range 10 {
		sim.Tick()
		if !sim.IsPowered(a) {
			t.Errorf("iteration %d: expected a powered after pulse", i)
		}
		if sim.IsPowered(b) {
			t.Errorf("iteration %d: expected b unpowered after pulse", i)
		}
	}

	sim.RemoveFlip(a, b)
	sim.RemoveFlip(b, a)
	sim.FreeCluster(a)
	sim.FreeCluster(b)
}

func TestSRLatchEnterAstable(t *testing.T) {
	sim := New()

	a := sim.AllocCluster()
	b := sim.AllocCluster()
	sim.AddFlip(a, b)
	sim.Tick()
	sim.AddFlip(b, a)

	for i := range 10 {
		sim.Tick()
		if sim.IsPowered(a) {
			t.Errorf("iteration %d: expected a unpowered", i)
		}
		if !sim.IsPowered(b) {
			t.Errorf("iteration %d: expected b powered", i)
		}
	}

	sim.Power(a)
	sim.Tick()
	sim.Unpower(a)

	for i := range 10 {
		sim.Tick()
		if sim.IsPowered(a) || sim.IsPowered(b) {
			t.Errorf("iteration %d: expected both unpowered on even half", i)
		}
		sim.Tick()
		if !sim.IsPowered(a) || !sim.IsPowered(b) {
			t.Errorf("iteration %d: expected both powered on odd half", i)
		}
	}

	sim.RemoveFlip(a, b)
	sim.RemoveFlip(b, a)
	sim.FreeCluster(a)
	sim.FreeCluster(b)
}
