package object

// Phase is one stage of a phased spawn schedule: for Duration ticks a hazard
// of Kind appears every Every ticks.
type Phase struct {
	Kind     HazardKind
	Duration int
	Every    int
}

// PhasedSpawner walks an ordered list of phases, one call to Tick per game tick.
type PhasedSpawner struct {
	phases    []Phase
	loop      bool
	index     int
	phaseLeft int
	spawnLeft int
	done      bool
}

// NewPhasedSpawner creates a spawner positioned at the first phase. When
// loop is false the spawner goes quiet after the last phase.
func NewPhasedSpawner(phases []Phase, loop bool) *PhasedSpawner {
	s := &PhasedSpawner{
		phases: append([]Phase(nil), phases...),
		loop:   loop,
	}
	if len(s.phases) == 0 {
		s.done = true
		return s
	}
	s.enter(0)
	return s
}

func (s *PhasedSpawner) enter(i int) {
	s.index = i
	s.phaseLeft = max(s.phases[i].Duration, 1)
	s.spawnLeft = max(s.phases[i].Every, 1)
}

// Current returns the active phase.
func (s *PhasedSpawner) Current() (Phase, bool) {
	if s.done {
		return Phase{}, false
	}
	return s.phases[s.index], true
}

// Done reports whether a non-looping schedule has run out.
func (s *PhasedSpawner) Done() bool {
	return s.done
}

// Tick advances both countdowns and reports whether a hazard of the
// returned kind should be created this tick.
func (s *PhasedSpawner) Tick() (HazardKind, bool) {
	if s.done {
		return 0, false
	}

	phase := s.phases[s.index]
	spawn := false

	s.spawnLeft--
	if s.spawnLeft <= 0 {
		spawn = true
		s.spawnLeft = max(phase.Every, 1)
	}

	s.phaseLeft--
	if s.phaseLeft <= 0 {
		next := s.index + 1
		switch {
		case next < len(s.phases):
			s.enter(next)
		case s.loop:
			s.enter(0)
		default:
			s.done = true
		}
	}

	return phase.Kind, spawn
}
