package instancing

import "testing"

func TestInsertSetRemove(t *testing.T) {
	m := New[int]("test")

	h1 := m.Insert(10)
	h2 := m.Insert(20)

	if m.Len() != 2 {
		t.Fatalf("Len() = %d; want 2", m.Len())
	}

	m.Set(h1, 11)
	if m.data[m.handleToIndex[h1]] != 11 {
		t.Errorf("Set did not update in place")
	}

	m.Remove(h1)
	if m.Len() != 1 {
		t.Errorf("Len() = %d after Remove; want 1", m.Len())
	}
	if got := m.data[m.handleToIndex[h2]]; got != 20 {
		t.Errorf("swap-remove corrupted remaining entry: got %d want 20", got)
	}

	// double-remove is harmless
	m.Remove(h1)
	if m.Len() != 1 {
		t.Errorf("Len() = %d after double Remove; want 1", m.Len())
	}
}

func TestReleaseDrainsOnLen(t *testing.T) {
	m := New[int]("test")
	h1 := m.Insert(1)
	m.Insert(2)

	m.Release(h1)

	if got := m.Len(); got != 1 {
		t.Errorf("Len() after Release+drain = %d; want 1", got)
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := []struct{ n, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {4, 4}, {5, 8}, {17, 32},
	}
	for _, tc := range cases {
		if got := nextPowerOfTwo(tc.n); got != tc.want {
			t.Errorf("nextPowerOfTwo(%d) = %d; want %d", tc.n, got, tc.want)
		}
	}
}
