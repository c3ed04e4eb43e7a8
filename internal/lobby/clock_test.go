package lobby

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doneRecorder collects onDone invocations.
type doneRecorder struct {
	mu      sync.Mutex
	reasons []DoneReason
}

func (d *doneRecorder) onDone(r DoneReason) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reasons = append(d.reasons, r)
}

func (d *doneRecorder) snapshot() []DoneReason {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]DoneReason(nil), d.reasons...)
}

func TestClockExpiresWithTimeout(t *testing.T) {
	c := NewRoundClock()
	var rec doneRecorder
	var mu sync.Mutex
	var ticks []int

	c.Start(2, func(remaining int) {
		mu.Lock()
		ticks = append(ticks, remaining)
		mu.Unlock()
	}, rec.onDone)

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, 4*time.Second, 50*time.Millisecond)

	assert.Equal(t, []DoneReason{ReasonTimeout}, rec.snapshot())
	assert.Equal(t, ClockExpired, c.State())
	mu.Lock()
	assert.Equal(t, []int{1}, ticks)
	mu.Unlock()
}

func TestClockStopSuppressesDone(t *testing.T) {
	c := NewRoundClock()
	var rec doneRecorder

	c.Start(1, func(int) {}, rec.onDone)
	c.Stop()
	c.Stop() // idempotent

	assert.Equal(t, ClockCancelled, c.State())
	time.Sleep(1500 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}

func TestClockFinishEarly(t *testing.T) {
	c := NewRoundClock()
	var rec doneRecorder

	c.Start(60, func(int) {}, rec.onDone)
	c.FinishEarly()

	require.Eventually(t, func() bool {
		return len(rec.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, []DoneReason{ReasonAllGuessed}, rec.snapshot())
	assert.Equal(t, ClockExpired, c.State())

	// Further signals are no-ops once expired.
	c.FinishEarly()
	c.Stop()
	time.Sleep(100 * time.Millisecond)
	assert.Len(t, rec.snapshot(), 1)
}

// runningClockRun puts a clock into a running state without a goroutine, so
// the final-tick settlement can be exercised against exact interleavings.
func runningClockRun(c *RoundClock) *clockRun {
	run := &clockRun{
		stop:   make(chan struct{}),
		finish: make(chan struct{}, 1),
	}
	c.mu.Lock()
	c.cur = run
	c.state = ClockRunning
	c.mu.Unlock()
	return run
}

func TestClockFinishEarlyRacingFinalTickStillFires(t *testing.T) {
	// FinishEarly lands after the final tick has been drawn from the
	// ticker but before the run settles: the queued signal must still
	// terminate the run as all-guessed rather than being stranded.
	c := NewRoundClock()
	run := runningClockRun(c)

	c.FinishEarly()

	var got []DoneReason
	c.conclude(run, func(r DoneReason) { got = append(got, r) })

	assert.Equal(t, []DoneReason{ReasonAllGuessed}, got)
	assert.Equal(t, ClockExpired, c.State())
}

func TestClockStopRacingFinalTickStaysSilent(t *testing.T) {
	c := NewRoundClock()
	run := runningClockRun(c)

	c.Stop()

	var got []DoneReason
	c.conclude(run, func(r DoneReason) { got = append(got, r) })

	assert.Empty(t, got)
	assert.Equal(t, ClockCancelled, c.State())
}

func TestClockConcludeNaturalTimeout(t *testing.T) {
	c := NewRoundClock()
	run := runningClockRun(c)

	var got []DoneReason
	c.conclude(run, func(r DoneReason) { got = append(got, r) })

	assert.Equal(t, []DoneReason{ReasonTimeout}, got)
	assert.Equal(t, ClockExpired, c.State())
}

func TestClockRestartStopsPreviousRun(t *testing.T) {
	c := NewRoundClock()
	var first, second doneRecorder

	c.Start(1, func(int) {}, first.onDone)
	c.Start(60, func(int) {}, second.onDone)

	// The first run must never complete.
	time.Sleep(1500 * time.Millisecond)
	assert.Empty(t, first.snapshot())
	assert.Equal(t, ClockRunning, c.State())

	c.FinishEarly()
	require.Eventually(t, func() bool {
		return len(second.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)
}
