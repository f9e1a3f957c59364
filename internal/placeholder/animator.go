package placeholder

import (
	"sync"
	"time"
)

// Animator runs Machines on a single recurring ticker each.
type Animator struct {
	timings Timings
}

// NewAnimator creates an Animator. Zero fields of timings take the defaults.
func NewAnimator(timings Timings) *Animator {
	return &Animator{timings: timings.withDefaults()}
}

// Timings returns the effective timings.
func (a *Animator) Timings() Timings { return a.timings }

// Start animates candidates until the returned cancel function is called.
// onFrame runs on the animator's goroutine with the visible text after every
// step. Calling cancel more than once is a no-op; once it returns, onFrame is
// neither running nor called again. cancel waits for the animator goroutine,
// so onFrame must not call it directly: that deadlocks. To stop from inside
// onFrame, run it on another goroutine with go cancel().
func (a *Animator) Start(candidates []string, onFrame func(string)) (func(), error) {
	machine, err := NewMachine(candidates, a.timings)
	if err != nil {
		return nil, err
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	var once sync.Once

	go func() {
		defer close(done)
		ticker := time.NewTicker(a.timings.Tick)
		defer ticker.Stop()

		last := time.Now()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				elapsed := now.Sub(last)
				last = now
				machine.Advance(elapsed, func(frame string) {
					select {
					case <-stop:
					default:
						onFrame(frame)
					}
				})
			}
		}
	}()

	cancel := func() {
		once.Do(func() {
			close(stop)
			<-done
		})
	}
	return cancel, nil
}
