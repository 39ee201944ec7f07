package renderer

// Handle identifies a model stored in an Arena.
type Handle int

// NilHandle is never returned by Arena.Add.
const NilHandle Handle = 0

// Arena owns the scene's models. Everything else (animation, panel, builder
// bookkeeping) holds Handles, not pointers it could retain or swap.
type Arena struct {
	models []*Model
}

func NewArena() *Arena {
	return &Arena{}
}

// Add stores model and returns its handle. Handles stay valid for the life of
// the arena; models are never removed.
func (a *Arena) Add(model *Model) Handle {
	a.models = append(a.models, model)
	return Handle(len(a.models))
}

// Get returns the model for h, or false for NilHandle and unknown handles.
func (a *Arena) Get(h Handle) (*Model, bool) {
	if h <= NilHandle || int(h) > len(a.models) {
		return nil, false
	}
	return a.models[h-1], true
}

func (a *Arena) Len() int {
	return len(a.models)
}

// Each visits models in insertion order.
func (a *Arena) Each(fn func(Handle, *Model)) {
	for i, m := range a.models {
		fn(Handle(i+1), m)
	}
}
