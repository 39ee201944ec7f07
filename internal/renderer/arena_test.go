package renderer

import "testing"

func TestArenaAddGet(t *testing.T) {
	arena := NewArena()
	a := &Model{Name: "a"}
	b := &Model{Name: "b"}

	ha := arena.Add(a)
	hb := arena.Add(b)

	if ha == NilHandle || hb == NilHandle {
		t.Fatal("Add should never return NilHandle")
	}
	if ha == hb {
		t.Fatal("Handles should be unique")
	}

	got, ok := arena.Get(hb)
	if !ok || got != b {
		t.Errorf("Get(%d) = %v, %v; want model b", hb, got, ok)
	}
	if arena.Len() != 2 {
		t.Errorf("Expected 2 models, got %d", arena.Len())
	}
}

func TestArenaRejectsInvalidHandles(t *testing.T) {
	arena := NewArena()
	arena.Add(&Model{})

	for _, h := range []Handle{NilHandle, -1, 2, 100} {
		if _, ok := arena.Get(h); ok {
			t.Errorf("Get(%d) should fail", h)
		}
	}
}

func TestArenaEachOrder(t *testing.T) {
	arena := NewArena()
	names := []string{"cube", "blade", "text"}
	for _, n := range names {
		arena.Add(&Model{Name: n})
	}

	i := 0
	arena.Each(func(h Handle, m *Model) {
		if m.Name != names[i] {
			t.Errorf("Each visited %s at position %d, want %s", m.Name, i, names[i])
		}
		if h != Handle(i+1) {
			t.Errorf("Each handle %d at position %d", h, i)
		}
		i++
	})
	if i != len(names) {
		t.Errorf("Each visited %d models, want %d", i, len(names))
	}
}
