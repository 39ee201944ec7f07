package behaviour

// Behaviour is per-frame logic driven by the engine. Start runs once before
// the first Update or UpdateFixed.
type Behaviour interface {
	Start()
	Update()
	UpdateFixed()
}

type BehaviourWrapper struct {
	Behaviour Behaviour
	started   bool
}

type BehaviourManager struct {
	behaviours []BehaviourWrapper
}

var GlobalBehaviourManager = NewBehaviourManager()

func NewBehaviourManager() *BehaviourManager {
	return &BehaviourManager{}
}

func (m *BehaviourManager) Add(behaviour Behaviour) {
	m.behaviours = append(m.behaviours, BehaviourWrapper{Behaviour: behaviour, started: false})
}

// Remove drops behaviour. Order of the remaining behaviours is kept.
func (m *BehaviourManager) Remove(behaviour Behaviour) {
	for i := range m.behaviours {
		if m.behaviours[i].Behaviour == behaviour {
			m.behaviours = append(m.behaviours[:i], m.behaviours[i+1:]...)
			return
		}
	}
}

func (m *BehaviourManager) Len() int {
	return len(m.behaviours)
}

// Clear removes all behaviours from the manager
func (m *BehaviourManager) Clear() {
	m.behaviours = m.behaviours[:0]
}

func (m *BehaviourManager) start(i int) {
	if !m.behaviours[i].started {
		m.behaviours[i].Behaviour.Start()
		m.behaviours[i].started = true
	}
}

func (m *BehaviourManager) UpdateAll() {
	for i := range m.behaviours {
		m.start(i)
		m.behaviours[i].Behaviour.Update()
	}
}

func (m *BehaviourManager) UpdateAllFixed() {
	for i := range m.behaviours {
		m.start(i)
		m.behaviours[i].Behaviour.UpdateFixed()
	}
}
