package behaviour

import "testing"

type recorder struct {
	name  string
	calls *[]string
}

func (r *recorder) Start()       { *r.calls = append(*r.calls, r.name+".start") }
func (r *recorder) Update()      { *r.calls = append(*r.calls, r.name+".update") }
func (r *recorder) UpdateFixed() { *r.calls = append(*r.calls, r.name+".fixed") }

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStartRunsOnceBeforeUpdate(t *testing.T) {
	var calls []string
	m := NewBehaviourManager()
	m.Add(&recorder{name: "loop", calls: &calls})

	m.UpdateAll()
	m.UpdateAll()
	m.UpdateAllFixed()

	want := []string{"loop.start", "loop.update", "loop.update", "loop.fixed"}
	if !equal(calls, want) {
		t.Errorf("Got calls %v, want %v", calls, want)
	}
}

func TestFixedUpdateAlsoStarts(t *testing.T) {
	var calls []string
	m := NewBehaviourManager()
	m.Add(&recorder{name: "a", calls: &calls})

	m.UpdateAllFixed()

	want := []string{"a.start", "a.fixed"}
	if !equal(calls, want) {
		t.Errorf("Got calls %v, want %v", calls, want)
	}
}

func TestRemoveKeepsOrder(t *testing.T) {
	var calls []string
	m := NewBehaviourManager()
	a := &recorder{name: "a", calls: &calls}
	b := &recorder{name: "b", calls: &calls}
	c := &recorder{name: "c", calls: &calls}
	m.Add(a)
	m.Add(b)
	m.Add(c)

	m.Remove(a)
	m.UpdateAll()

	want := []string{"b.start", "b.update", "c.start", "c.update"}
	if !equal(calls, want) {
		t.Errorf("Got calls %v, want %v", calls, want)
	}
	if m.Len() != 2 {
		t.Errorf("Expected 2 behaviours, got %d", m.Len())
	}

	m.Clear()
	if m.Len() != 0 {
		t.Error("Clear should remove every behaviour")
	}
}
