package loop

import "time"

// Token identifies a scheduled callback so it can be cancelled.
type Token uint64

type task struct {
	token Token
	due   time.Time
	every time.Duration
	fn    func()
}

// Scheduler is a timer queue driven by the game loop. Callbacks run only
// inside Advance, on the caller's goroutine, so they may touch game state
// without locking.
type Scheduler struct {
	now   time.Time
	next  Token
	tasks []*task
}

// NewScheduler creates an empty scheduler whose current time is now.
func NewScheduler(now time.Time) *Scheduler {
	return &Scheduler{now: now}
}

// Now returns the time of the last Advance.
func (s *Scheduler) Now() time.Time {
	return s.now
}

// After runs fn once, d after the scheduler's current time.
func (s *Scheduler) After(d time.Duration, fn func()) Token {
	return s.add(d, 0, fn)
}

// Every runs fn each d, starting d after the scheduler's current time.
// Occurrences missed during a long stall are skipped, not replayed.
func (s *Scheduler) Every(d time.Duration, fn func()) Token {
	if d <= 0 {
		d = time.Millisecond
	}
	return s.add(d, d, fn)
}

func (s *Scheduler) add(d, every time.Duration, fn func()) Token {
	s.next++
	s.tasks = append(s.tasks, &task{token: s.next, due: s.now.Add(d), every: every, fn: fn})
	return s.next
}

// Cancel removes a pending callback. It reports whether one was removed.
// The zero token and tokens of finished callbacks are ignored.
func (s *Scheduler) Cancel(tok Token) bool {
	for i, t := range s.tasks {
		if t.token == tok {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll removes every pending callback.
func (s *Scheduler) CancelAll() {
	s.tasks = nil
}

// Pending returns the number of scheduled callbacks.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Advance moves the scheduler's time to now, running every callback that
// falls due in timestamp order. Callbacks may schedule or cancel others.
// It returns the number of callbacks run.
func (s *Scheduler) Advance(now time.Time) int {
	ran := 0
	for {
		i := s.earliest(now)
		if i < 0 {
			break
		}
		t := s.tasks[i]
		s.now = t.due
		if t.every > 0 {
			// Missed slots are skipped, not replayed.
			t.due = t.due.Add((now.Sub(t.due)/t.every + 1) * t.every)
		} else {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		}
		t.fn()
		ran++
	}
	if now.After(s.now) {
		s.now = now
	}
	return ran
}

// earliest returns the index of the first task due at or before now, or -1.
// Ties go to the task scheduled first.
func (s *Scheduler) earliest(now time.Time) int {
	best := -1
	for i, t := range s.tasks {
		if t.due.After(now) {
			continue
		}
		if best < 0 || t.due.Before(s.tasks[best].due) ||
			(t.due.Equal(s.tasks[best].due) && t.token < s.tasks[best].token) {
			best = i
		}
	}
	return best
}
