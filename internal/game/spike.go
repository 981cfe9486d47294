package game

// Spike is a hazard trigger that damages overlapping objects. The first
// damage tick lands on entry; further ticks land once per damage interval
// while the object stays inside the region.
type Spike struct {
	damage   int
	interval float64 // seconds between damage ticks
	elapsed  map[*Object]float64
}

// NewSpike creates a spike hazard from the simulation parameters.
func NewSpike(params Params) *Spike {
	return &Spike{
		damage:   params.SpikeDamage,
		interval: params.DamageInterval.Seconds(),
		elapsed:  map[*Object]float64{},
	}
}

// OnTriggerEnter applies the first damage tick and starts the interval clock.
func (s *Spike) OnTriggerEnter(obj *Object) {
	s.elapsed[obj] = 0
	s.hit(obj)
}

// intervalSlack absorbs float accumulation error so a full interval of
// fixed steps always lands its damage tick.
const intervalSlack = 1e-9

// OnTriggerStay accumulates overlap time and applies damage once per interval.
func (s *Spike) OnTriggerStay(obj *Object, dt float64) {
	s.elapsed[obj] += dt
	for s.elapsed[obj]+intervalSlack >= s.interval {
		s.elapsed[obj] -= s.interval
		s.hit(obj)
	}
}

// OnTriggerExit stops tracking the object.
func (s *Spike) OnTriggerExit(obj *Object) {
	delete(s.elapsed, obj)
}

func (s *Spike) hit(obj *Object) {
	if obj.Health == nil {
		return
	}
	obj.Health.Damage(s.damage)
}
