package quiz

import (
	"fmt"
	"time"
)

// Phase enumerates the states of a quiz attempt.
type Phase string

const (
	PhaseNotStarted     Phase = "NOT_STARTED"
	PhaseInProgress     Phase = "IN_PROGRESS"
	PhaseAnswerRevealed Phase = "ANSWER_REVEALED"
	PhaseTimedOut       Phase = "TIMED_OUT"
	PhaseCompleted      Phase = "COMPLETED"
)

// Terminal reports whether only a restart can leave the phase.
func (p Phase) Terminal() bool {
	return p == PhaseTimedOut || p == PhaseCompleted
}

// Running reports whether the countdown is active.
func (p Phase) Running() bool {
	return p == PhaseInProgress || p == PhaseAnswerRevealed
}

const DefaultDuration = 600 * time.Second

const noSelection = -1

// Session is a single quiz attempt. The zero value is not usable; build one
// with NewSession. Copying a Session yields an independent attempt over the
// same read-only question list.
type Session struct {
	questions []Question
	duration  time.Duration

	phase     Phase
	index     int
	selected  int
	score     int
	startedAt time.Time
}

// NewSession returns a session in PhaseNotStarted. A non-positive duration
// falls back to DefaultDuration.
func NewSession(questions []Question, duration time.Duration) Session {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return Session{
		questions: questions,
		duration:  duration,
		phase:     PhaseNotStarted,
		selected:  noSelection,
	}
}

func (s *Session) Start(now time.Time) bool {
	if s.phase != PhaseNotStarted {
		return false
	}

	s.startedAt = now
	s.index = 0
	s.score = 0
	s.selected = noSelection
	s.phase = PhaseInProgress
	if len(s.questions) == 0 {
		s.phase = PhaseCompleted
	}
	return true
}

// Select marks option i of the current question. Calling it again before
// Submit overwrites the choice.
func (s *Session) Select(i int, now time.Time) bool {
	if s.expire(now) || s.phase != PhaseInProgress {
		return false
	}
	if i < 0 || i >= len(s.questions[s.index].Options) {
		return false
	}

	s.selected = i
	return true
}

func (s *Session) Submit(now time.Time) bool {
	if s.expire(now) || s.phase != PhaseInProgress || s.selected == noSelection {
		return false
	}

	if s.questions[s.index].Options[s.selected].IsCorrect {
		s.score++
	}
	s.phase = PhaseAnswerRevealed
	return true
}

func (s *Session) Next(now time.Time) bool {
	if s.expire(now) || s.phase != PhaseAnswerRevealed {
		return false
	}

	s.selected = noSelection
	if s.index+1 >= len(s.questions) {
		s.phase = PhaseCompleted
		return true
	}
	s.index++
	s.phase = PhaseInProgress
	return true
}

// Tick moves a running session to PhaseTimedOut once its time is spent.
// It reports whether that happened.
func (s *Session) Tick(now time.Time) bool {
	return s.expire(now)
}

// Restart discards the attempt. Only the question list and duration survive.
func (s *Session) Restart() bool {
	if !s.phase.Terminal() {
		return false
	}
	*s = NewSession(s.questions, s.duration)
	return true
}

// expire runs before every intent so a timeout wins over whatever the user
// did in the same instant. Reveal does not pause the clock.
func (s *Session) expire(now time.Time) bool {
	if !s.phase.Running() || s.Remaining(now) > 0 {
		return false
	}
	s.phase = PhaseTimedOut
	s.selected = noSelection
	return true
}

func (s Session) Phase() Phase            { return s.phase }
func (s Session) Score() int              { return s.score }
func (s Session) Total() int              { return len(s.questions) }
func (s Session) StartedAt() time.Time    { return s.startedAt }
func (s Session) Duration() time.Duration { return s.duration }

// Questions returns a copy of the bank, so callers cannot break the
// one-correct-option invariant of a running session.
func (s Session) Questions() []Question {
	out := make([]Question, len(s.questions))
	for i, q := range s.questions {
		q.Options = append([]Option(nil), q.Options...)
		out[i] = q
	}
	return out
}

// Index returns the current question index while the quiz is running.
func (s Session) Index() (int, bool) {
	if !s.phase.Running() {
		return 0, false
	}
	return s.index, true
}

func (s Session) Selected() (int, bool) {
	if s.selected == noSelection {
		return 0, false
	}
	return s.selected, true
}

func (s Session) Current() (Question, bool) {
	if !s.phase.Running() {
		return Question{}, false
	}
	return s.questions[s.index], true
}

// AnsweredCorrectly reports the verdict on the revealed answer. The second
// result is false outside PhaseAnswerRevealed.
func (s Session) AnsweredCorrectly() (bool, bool) {
	if s.phase != PhaseAnswerRevealed || s.selected == noSelection {
		return false, false
	}
	return s.questions[s.index].Options[s.selected].IsCorrect, true
}

// Remaining returns whole seconds left: duration - floor(now - startedAt),
// clamped at zero. Before Start the full duration is left.
func (s Session) Remaining(now time.Time) int {
	total := int(s.duration / time.Second)
	if s.phase == PhaseNotStarted {
		return total
	}

	elapsed := now.Sub(s.startedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := total - int(elapsed/time.Second)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Countdown formats Remaining as m:ss.
func (s Session) Countdown(now time.Time) string {
	return FormatSeconds(s.Remaining(now))
}

func FormatSeconds(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Summary is the final result shown on both terminal screens.
type Summary struct {
	Score    int
	Total    int
	TimedOut bool
}

func (s Session) Summary() (Summary, bool) {
	if !s.phase.Terminal() {
		return Summary{}, false
	}
	return Summary{
		Score:    s.score,
		Total:    len(s.questions),
		TimedOut: s.phase == PhaseTimedOut,
	}, true
}
