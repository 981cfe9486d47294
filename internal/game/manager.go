package game

// Manager tracks the global run state of a level. It stands in for the
// engine-provided game manager: the suite reads its running flag but has no
// authority to restore it once a level ends.
type Manager struct {
	running bool
}

// NewManager creates a manager with the level not yet running.
func NewManager() *Manager {
	return &Manager{}
}

// StartLevel marks the level as running.
func (m *Manager) StartLevel() {
	m.running = true
}

// EndLevel marks the level as finished. There is no way back to running
// short of starting a new level.
func (m *Manager) EndLevel() {
	m.running = false
}

// Running reports whether the level is currently in progress.
func (m *Manager) Running() bool {
	return m.running
}
