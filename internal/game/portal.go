package game

// Portal is the goal trigger. The first time the player enters its region it
// latches the entered flag and ends the level; repeat entries are ignored
// until the flag is reset.
type Portal struct {
	manager *Manager
	entered bool
}

// NewPortal creates a portal that ends the level through the given manager.
func NewPortal(manager *Manager) *Portal {
	return &Portal{manager: manager}
}

// OnTriggerEnter ends the level on the player's first entry.
func (p *Portal) OnTriggerEnter(obj *Object) {
	if obj.Tag != TagPlayer {
		return
	}
	if p.entered {
		return
	}
	p.entered = true
	p.manager.EndLevel()
}

// OnTriggerStay is a no-op; the portal only reacts to entry.
func (p *Portal) OnTriggerStay(obj *Object, dt float64) {}

// OnTriggerExit is a no-op.
func (p *Portal) OnTriggerExit(obj *Object) {}

// Entered reports whether the player has already entered the portal.
func (p *Portal) Entered() bool {
	return p.entered
}

// ResetEntered clears the entered latch. Test instrumentation only, the
// counterpart of HealthProbe for the goal trigger.
func (p *Portal) ResetEntered() {
	p.entered = false
}
