// Package placeholder animates the input placeholder of a widget: each
// candidate is typed out one character at a time, held, erased, and the
// next candidate follows.
package placeholder

import (
	"errors"
	"time"
)

// ErrNoCandidates is returned when there is nothing to animate. The caller
// shows a static placeholder instead.
var ErrNoCandidates = errors.New("placeholder: no candidates to animate")

// Phase is a state of the animation machine. Phases advance strictly in the
// order they are declared and wrap around.
type Phase int

const (
	Typing Phase = iota
	PausedAfterTyping
	Erasing
	PausedAfterErasing
)

func (p Phase) String() string {
	switch p {
	case Typing:
		return "typing"
	case PausedAfterTyping:
		return "paused-after-typing"
	case Erasing:
		return "erasing"
	case PausedAfterErasing:
		return "paused-after-erasing"
	}
	return "unknown"
}

// Timings controls how long each phase step takes.
type Timings struct {
	Type              time.Duration // Per character while typing.
	PauseAfterTyping  time.Duration
	Erase             time.Duration // Per character while erasing.
	PauseAfterErasing time.Duration
	Tick              time.Duration // Scheduler resolution.
}

// DefaultTimings are the reference timings of the widget.
func DefaultTimings() Timings {
	return Timings{
		Type:              60 * time.Millisecond,
		PauseAfterTyping:  1200 * time.Millisecond,
		Erase:             30 * time.Millisecond,
		PauseAfterErasing: 400 * time.Millisecond,
		Tick:              10 * time.Millisecond,
	}
}

func (t Timings) withDefaults() Timings {
	d := DefaultTimings()
	if t.Type <= 0 {
		t.Type = d.Type
	}
	if t.PauseAfterTyping <= 0 {
		t.PauseAfterTyping = d.PauseAfterTyping
	}
	if t.Erase <= 0 {
		t.Erase = d.Erase
	}
	if t.PauseAfterErasing <= 0 {
		t.PauseAfterErasing = d.PauseAfterErasing
	}
	if t.Tick <= 0 {
		t.Tick = d.Tick
	}
	return t
}

// Machine is the animation state: which candidate is shown, how many of its
// runes are visible, and the current phase. It has no timers of its own and
// is driven by Advance.
type Machine struct {
	candidates [][]rune
	timings    Timings

	index   int
	offset  int
	phase   Phase
	elapsed time.Duration
}

// NewMachine builds a machine positioned at the start of the first candidate.
func NewMachine(candidates []string, timings Timings) (*Machine, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	runes := make([][]rune, len(candidates))
	for i, c := range candidates {
		runes[i] = []rune(c)
	}
	return &Machine{candidates: runes, timings: timings.withDefaults()}, nil
}

// Index returns the position of the current candidate.
func (m *Machine) Index() int { return m.index }

// Offset returns how many runes of the current candidate are visible.
func (m *Machine) Offset() int { return m.offset }

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Frame returns the visible prefix of the current candidate.
func (m *Machine) Frame() string {
	return string(m.candidates[m.index][:m.offset])
}

// Advance feeds elapsed time into the machine and performs every step that
// became due, calling emit with the frame after each one.
func (m *Machine) Advance(elapsed time.Duration, emit func(string)) {
	m.elapsed += elapsed
	for {
		due := m.stepDuration()
		if m.elapsed < due {
			return
		}
		m.elapsed -= due
		m.step()
		if emit != nil {
			emit(m.Frame())
		}
	}
}

func (m *Machine) stepDuration() time.Duration {
	switch m.phase {
	case Typing:
		return m.timings.Type
	case PausedAfterTyping:
		return m.timings.PauseAfterTyping
	case Erasing:
		return m.timings.Erase
	default:
		return m.timings.PauseAfterErasing
	}
}

func (m *Machine) step() {
	current := m.candidates[m.index]
	switch m.phase {
	case Typing:
		if m.offset < len(current) {
			m.offset++
		}
		if m.offset == len(current) {
			m.phase = PausedAfterTyping
		}
	case PausedAfterTyping:
		m.phase = Erasing
	case Erasing:
		if m.offset > 0 {
			m.offset--
		}
		if m.offset == 0 {
			m.phase = PausedAfterErasing
		}
	case PausedAfterErasing:
		m.index = (m.index + 1) % len(m.candidates)
		m.offset = 0
		m.phase = Typing
	}
}
