package depot

import "testing"

func TestInsertGetRemove(t *testing.T) {
	d := New[string]()

	h1 := d.Insert("a")
	h2 := d.Insert("b")

	if h1 == h2 {
		t.Fatalf("expected distinct handles, got %v and %v", h1, h2)
	}
	if got := d.Get(h1); got != "a" {
		t.Errorf("Get(h1) = %q; want %q", got, "a")
	}
	if got := d.Get(h2); got != "b" {
		t.Errorf("Get(h2) = %q; want %q", got, "b")
	}
	if d.Len() != 2 {
		t.Errorf("Len() = %d; want 2", d.Len())
	}

	d.Remove(h1)
	if d.Contains(h1) {
		t.Errorf("Contains(h1) = true after Remove; want false")
	}
	if d.Len() != 1 {
		t.Errorf("Len() = %d after Remove; want 1", d.Len())
	}

	// double-remove is harmless
	d.Remove(h1)
}

func TestGetUnknownHandlePanics(t *testing.T) {
	d := New[int]()

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Get on unknown handle did not panic")
		}
	}()
	d.Get(Handle(999999))
}

func TestHandlesAreGloballyUnique(t *testing.T) {
	d1 := New[int]()
	d2 := New[int]()

	h1 := d1.Insert(1)
	h2 := d2.Insert(2)

	if h1 == h2 {
		t.Errorf("handles minted from different Depots collided: %v == %v", h1, h2)
	}
}
