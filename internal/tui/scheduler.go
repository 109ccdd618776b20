package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// GameTickMsg is delivered when an armed fall timer fires. Gen identifies the
// arming it belongs to; ticks from a cancelled arming are dropped.
type GameTickMsg struct {
	Gen  uint64
	Time time.Time
}

// TeaScheduler implements game.Scheduler on top of tea.Tick. Because
// bubbletea timers cannot be stopped, each Arm and Cancel bumps a generation
// counter and stale ticks are discarded when they arrive.
type TeaScheduler struct {
	gen     uint64
	period  time.Duration
	armed   bool
	pending bool
}

func (s *TeaScheduler) Arm(period time.Duration) {
	s.gen++
	s.period = period
	s.armed = true
	s.pending = true
}

func (s *TeaScheduler) Cancel() {
	s.gen++
	s.armed = false
	s.pending = false
}

// Armed reports whether a schedule is active.
func (s *TeaScheduler) Armed() bool {
	return s.armed
}

// Period is the interval of the current schedule.
func (s *TeaScheduler) Period() time.Duration {
	return s.period
}

// Fire reports whether msg belongs to the live schedule. A live tick queues the
// next one at the same period.
func (s *TeaScheduler) Fire(msg GameTickMsg) bool {
	if !s.armed || msg.Gen != s.gen {
		return false
	}
	s.pending = true
	return true
}

// Cmd returns the timer command for the next tick, or nil if none is due.
func (s *TeaScheduler) Cmd() tea.Cmd {
	if !s.pending {
		return nil
	}
	s.pending = false
	gen := s.gen
	return tea.Tick(s.period, func(t time.Time) tea.Msg {
		return GameTickMsg{Gen: gen, Time: t}
	})
}
