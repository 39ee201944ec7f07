package renderer

import "testing"

func TestUnwindRunsInReverse(t *testing.T) {
	var order []int
	var u Unwind
	u.Add(func() { order = append(order, 1) })
	u.Add(func() { order = append(order, 2) })
	u.Add(func() { order = append(order, 3) })

	u.Unwind()

	if len(order) != 3 || order[0] != 3 || order[1] != 2 || order[2] != 1 {
		t.Errorf("Expected cleanups in reverse order, got %v", order)
	}
	if len(u) != 0 {
		t.Error("Unwind should empty the list")
	}
}

func TestUnwindDiscard(t *testing.T) {
	called := false
	var u Unwind
	u.Add(func() { called = true })

	u.Discard()
	u.Unwind()

	if called {
		t.Error("Discarded cleanups must not run")
	}
}
