package lobby

import (
	"sync"
	"time"
)

// ClockState is the lifecycle of a single countdown run.
type ClockState int

const (
	ClockIdle ClockState = iota
	ClockRunning
	ClockCancelled
	ClockExpired
)

// DoneReason says why a run terminated.
type DoneReason string

const (
	ReasonTimeout    DoneReason = "timeout"
	ReasonAllGuessed DoneReason = "all_guessed"
)

// clockRun is the channel pair owned by one run goroutine. A fresh pair per
// run keeps a restarted clock from seeing signals meant for its predecessor.
type clockRun struct {
	stop   chan struct{}
	finish chan struct{}
}

// RoundClock is a cancellable one-second countdown. Exactly one of stop,
// early finish or natural expiry terminates a run, and onDone fires at most
// once, always from the run goroutine — so FinishEarly is safe to call while
// holding the lobby lock.
type RoundClock struct {
	mu    sync.Mutex
	state ClockState
	cur   *clockRun
}

func NewRoundClock() *RoundClock {
	return &RoundClock{}
}

func (c *RoundClock) State() ClockState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start begins a countdown from seconds. onTick receives the remaining time
// after each elapsed second; onDone fires on expiry or early finish, never
// on Stop. A run already in flight is stopped first.
func (c *RoundClock) Start(seconds int, onTick func(remaining int), onDone func(DoneReason)) {
	c.mu.Lock()
	if c.state == ClockRunning && c.cur != nil {
		close(c.cur.stop)
	}
	run := &clockRun{
		stop:   make(chan struct{}),
		finish: make(chan struct{}, 1),
	}
	c.cur = run
	c.state = ClockRunning
	c.mu.Unlock()

	go c.loop(run, seconds, onTick, onDone)
}

// Stop cancels the current run without firing onDone. Idempotent.
func (c *RoundClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != ClockRunning || c.cur == nil {
		return
	}
	c.state = ClockCancelled
	close(c.cur.stop)
}

// FinishEarly terminates the current run as expired and fires
// onDone(ReasonAllGuessed) from the run goroutine.
func (c *RoundClock) FinishEarly() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != ClockRunning || c.cur == nil {
		return
	}
	c.state = ClockExpired
	select {
	case c.cur.finish <- struct{}{}:
	default:
	}
}

// expire marks a natural timeout. Returns false when run is stale or the
// clock was stopped in the meantime, in which case onDone must not fire.
func (c *RoundClock) expire(run *clockRun) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cur != run || c.state != ClockRunning {
		return false
	}
	c.state = ClockExpired
	return true
}

// ticking reports whether run is still the live, running run.
func (c *RoundClock) ticking(run *clockRun) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur == run && c.state == ClockRunning
}

// conclude settles the final tick of a run. Normally the run expires as a
// timeout, but a FinishEarly landing between the tick being drawn and this
// point has already moved the state off running; its queued signal still
// owns the termination and must not be lost.
func (c *RoundClock) conclude(run *clockRun, onDone func(DoneReason)) {
	if c.expire(run) {
		onDone(ReasonTimeout)
		return
	}
	select {
	case <-run.finish:
		onDone(ReasonAllGuessed)
	default:
	}
}

func (c *RoundClock) loop(run *clockRun, remaining int, onTick func(int), onDone func(DoneReason)) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-run.stop:
			return

		case <-run.finish:
			onDone(ReasonAllGuessed)
			return

		case <-ticker.C:
			// A stop or early finish racing this tick wins.
			select {
			case <-run.stop:
				return
			case <-run.finish:
				onDone(ReasonAllGuessed)
				return
			default:
			}

			remaining--
			if remaining <= 0 {
				c.conclude(run, onDone)
				return
			}
			if c.ticking(run) {
				onTick(remaining)
			}
		}
	}
}
