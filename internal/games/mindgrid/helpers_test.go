package mindgrid

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mindgrid/internal/config"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(config.DefaultMindgrindConfig())
	require.NoError(t, err)
	return e
}

// numbersOnlyConfig spawns only Number tiles of a fixed value and no rarity.
func numbersOnlyConfig(value int) config.MindgridConfig {
	cfg := config.DefaultMindgrindConfig()
	cfg.Weights.Bonus = config.WeightRamp{}
	cfg.Weights.Chain = config.WeightRamp{}
	cfg.Weights.Risk = config.WeightRamp{}
	cfg.Values.Number = config.ValueRange{Min: value, Max: value}
	cfg.Rarity.Chance = config.RarityChance{}
	return cfg
}

// filledGrid returns a size x size grid of one kind and value.
func filledGrid(size int, kind Kind, value int) Grid {
	g := newGrid(size)
	for r := range g {
		for c := range g[r] {
			g[r][c].Kind = kind
			g[r][c].Value = value
		}
	}
	return g
}

type fakeTimer struct {
	clock   *fakeClock
	when    time.Time
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// fakeClock fires timers only when advanced.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, when: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves time forward and runs every due timer, including timers
// armed by callbacks that are already due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var due []*fakeTimer
		for _, t := range c.timers {
			if !t.stopped && !t.fired && !t.when.After(c.now) {
				t.fired = true
				due = append(due, t)
			}
		}
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

// Pending returns the number of armed, unfired timers.
func (c *fakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// eventLog records run events.
type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) handle(ev Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) kinds() []EventKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]EventKind, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Kind
	}
	return out
}

func (l *eventLog) last() Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.events[len(l.events)-1]
}
