package placeholder

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMachine_NoCandidates(t *testing.T) {
	_, err := NewMachine(nil, DefaultTimings())
	assert.ErrorIs(t, err, ErrNoCandidates)

	_, err = NewAnimator(Timings{}).Start([]string{}, func(string) {})
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestMachine_FullCycle(t *testing.T) {
	m, err := NewMachine([]string{"ab", "c"}, DefaultTimings())
	require.NoError(t, err)

	var frames []string
	record := func(f string) { frames = append(frames, f) }

	m.Advance(60*time.Millisecond, record)
	assert.Equal(t, "a", m.Frame())
	assert.Equal(t, Typing, m.Phase())

	m.Advance(60*time.Millisecond, record)
	assert.Equal(t, "ab", m.Frame())
	assert.Equal(t, PausedAfterTyping, m.Phase())

	// The pause holds the full text until it has fully elapsed.
	m.Advance(1199*time.Millisecond, record)
	assert.Equal(t, PausedAfterTyping, m.Phase())
	m.Advance(time.Millisecond, record)
	assert.Equal(t, Erasing, m.Phase())
	assert.Equal(t, "ab", m.Frame())

	m.Advance(30*time.Millisecond, record)
	assert.Equal(t, "a", m.Frame())
	m.Advance(30*time.Millisecond, record)
	assert.Equal(t, "", m.Frame())
	assert.Equal(t, PausedAfterErasing, m.Phase())

	m.Advance(400*time.Millisecond, record)
	assert.Equal(t, 1, m.Index())
	assert.Equal(t, Typing, m.Phase())

	m.Advance(60*time.Millisecond, record)
	assert.Equal(t, "c", m.Frame())

	assert.Equal(t, []string{"a", "ab", "ab", "a", "", "", "c"}, frames)
}

func TestMachine_WrapsAroundToFirstCandidate(t *testing.T) {
	m, err := NewMachine([]string{"x"}, DefaultTimings())
	require.NoError(t, err)

	// One whole cycle of a single-rune candidate: type, hold, erase, hold.
	m.Advance(60*time.Millisecond+1200*time.Millisecond+30*time.Millisecond+400*time.Millisecond, nil)

	assert.Equal(t, 0, m.Index())
	assert.Equal(t, Typing, m.Phase())
	assert.Equal(t, 0, m.Offset())
}

func TestMachine_CountsRunesNotBytes(t *testing.T) {
	m, err := NewMachine([]string{"héllo"}, DefaultTimings())
	require.NoError(t, err)

	m.Advance(2*60*time.Millisecond, nil)

	assert.Equal(t, "hé", m.Frame())
}

func TestMachine_EmptyCandidateDoesNotStall(t *testing.T) {
	m, err := NewMachine([]string{"", "a"}, DefaultTimings())
	require.NoError(t, err)

	m.Advance(60*time.Millisecond, nil)
	assert.Equal(t, PausedAfterTyping, m.Phase())

	m.Advance(1200*time.Millisecond+30*time.Millisecond+400*time.Millisecond, nil)
	assert.Equal(t, 1, m.Index())
}

// TestMachineInvariants drives the machine with random tick sizes.
// Property: the frame is always a prefix of the current candidate, the offset
// stays in bounds, phases and indices only move forward cyclically, and every
// candidate is eventually shown in full.
func TestMachineInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("animation invariants hold", prop.ForAll(
		func(candidates []string, ticks []int) bool {
			if len(candidates) == 0 {
				return true
			}
			m, err := NewMachine(candidates, DefaultTimings())
			if err != nil {
				return false
			}

			shown := make(map[int]bool)
			check := func() bool {
				current := candidates[m.Index()]
				if !strings.HasPrefix(current, m.Frame()) {
					return false
				}
				if m.Offset() < 0 || m.Offset() > len([]rune(current)) {
					return false
				}
				if m.Offset() == len([]rune(current)) {
					shown[m.Index()] = true
				}
				return true
			}

			prevPhase, prevIndex := m.Phase(), m.Index()
			ok := true
			step := func(string) {
				if !check() {
					ok = false
				}
				phase, index := m.Phase(), m.Index()
				if phase != prevPhase && phase != (prevPhase+1)%4 {
					ok = false
				}
				if index != prevIndex && index != (prevIndex+1)%len(candidates) {
					ok = false
				}
				prevPhase, prevIndex = phase, index
			}

			for _, tick := range ticks {
				m.Advance(time.Duration(tick)*time.Millisecond, step)
			}

			// Run long enough for every candidate to be typed in full at least once.
			for i := 0; i < len(candidates)+1; i++ {
				m.Advance(4*time.Second, step)
				for j := 0; j < 20 && ok; j++ {
					m.Advance(time.Second, step)
				}
			}
			return ok && len(shown) == len(candidates)
		},
		gen.SliceOfN(4, gen.AlphaString()),
		gen.SliceOf(gen.IntRange(0, 500)),
	))

	properties.TestingRun(t)
}

func TestAnimator_StartAndCancel(t *testing.T) {
	animator := NewAnimator(Timings{
		Type:              time.Millisecond,
		PauseAfterTyping:  time.Millisecond,
		Erase:             time.Millisecond,
		PauseAfterErasing: time.Millisecond,
		Tick:              time.Millisecond,
	})

	var mu sync.Mutex
	seen := make(map[string]bool)
	bothShown := make(chan struct{})
	var signal sync.Once

	cancel, err := animator.Start([]string{"hi", "yo"}, func(frame string) {
		mu.Lock()
		defer mu.Unlock()
		seen[frame] = true
		if seen["hi"] && seen["yo"] {
			signal.Do(func() { close(bothShown) })
		}
	})
	require.NoError(t, err)

	select {
	case <-bothShown:
	case <-time.After(5 * time.Second):
		t.Fatal("animator did not cycle through both candidates")
	}

	cancel()
	cancel() // Idempotent.

	mu.Lock()
	count := len(seen)
	mu.Unlock()
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, count, len(seen), "no frames after cancel")
}

func TestAnimator_CancelFromFrameCallback(t *testing.T) {
	animator := NewAnimator(Timings{
		Type:              time.Millisecond,
		PauseAfterTyping:  time.Millisecond,
		Erase:             time.Millisecond,
		PauseAfterErasing: time.Millisecond,
		Tick:              time.Millisecond,
	})

	cancelCh := make(chan func(), 1)
	stopped := make(chan struct{})
	var frames sync.WaitGroup
	var once sync.Once
	var mu sync.Mutex
	count := 0

	cancel, err := animator.Start([]string{"hello"}, func(string) {
		mu.Lock()
		count++
		mu.Unlock()
		once.Do(func() {
			frames.Add(1)
			go func() {
				defer frames.Done()
				(<-cancelCh)()
				close(stopped)
			}()
		})
	})
	require.NoError(t, err)
	cancelCh <- cancel

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("cancel started from the frame callback did not return")
	}
	frames.Wait()

	mu.Lock()
	after := count
	mu.Unlock()
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, after, count, "no frames after cancel")
	assert.Positive(t, after)
}
