package renderer

// Unwind collects cleanup funcs during multi-step GL setup so a failure
// midway can release what was already created, newest first.
type Unwind []func()

func (u *Unwind) Add(cleanup func()) {
	*u = append(*u, cleanup)
}

func (u *Unwind) Unwind() {
	for i := len(*u) - 1; i >= 0; i-- {
		(*u)[i]()
	}
	*u = (*u)[:0]
}

// Discard forgets the collected cleanups once setup has succeeded.
func (u *Unwind) Discard() {
	*u = (*u)[:0]
}
