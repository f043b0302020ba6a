package sim

import (
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/mindgrid/internal/games/mindgrid"
)

// ManualClock is a mindgrid.Clock whose timers fire only on Advance.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	clock *ManualClock
	when  time.Time
	f     func()
	done  bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

// NewManualClock creates a clock set to start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc arms f to run once the clock has advanced by d.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) mindgrid.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, when: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward and runs due timers in deadline order on the
// calling goroutine. Timers armed by those callbacks run too if already due.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var due []*manualTimer
		live := c.timers[:0]
		for _, t := range c.timers {
			switch {
			case t.done:
			case !t.when.After(c.now):
				t.done = true
				due = append(due, t)
			default:
				live = append(live, t)
			}
		}
		c.timers = live
		c.mu.Unlock()

		if len(due) == 0 {
			return
		}
		sort.Slice(due, func(i, j int) bool { return due[i].when.Before(due[j].when) })
		for _, t := range due {
			t.f()
		}
	}
}
