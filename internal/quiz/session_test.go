package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// sixQuestions builds a bank where option (i % 4) is correct for question i.
func sixQuestions() []Question {
	qs := make([]Question, 6)
	for i := range qs {
		opts := make([]Option, 4)
		for j := range opts {
			opts[j] = Option{Text: string(rune('A' + j)), IsCorrect: j == i%4}
		}
		qs[i] = Question{Prompt: "Q", Options: opts, Explanation: "because"}
	}
	return qs
}

func wrongIndex(q Question) int {
	return (q.CorrectIndex() + 1) % len(q.Options)
}

func started(t *testing.T) Session {
	t.Helper()
	s := NewSession(sixQuestions(), DefaultDuration)
	require.True(t, s.Start(t0))
	return s
}

func TestStartResetsCounters(t *testing.T) {
	s := NewSession(sixQuestions(), DefaultDuration)
	assert.Equal(t, PhaseNotStarted, s.Phase())

	require.True(t, s.Start(t0))
	idx, ok := s.Index()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, PhaseInProgress, s.Phase())
	assert.Equal(t, t0, s.StartedAt())

	assert.False(t, s.Start(t0.Add(time.Second)), "second start must be rejected")
}

func TestSelectOption(t *testing.T) {
	s := started(t)

	assert.False(t, s.Select(-1, t0))
	assert.False(t, s.Select(4, t0))
	_, ok := s.Selected()
	assert.False(t, ok)

	require.True(t, s.Select(1, t0))
	require.True(t, s.Select(2, t0))
	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, 2, sel)
}

func TestSubmitWithoutSelectionIsRejected(t *testing.T) {
	s := started(t)

	assert.False(t, s.Submit(t0))
	assert.Equal(t, PhaseInProgress, s.Phase())
	assert.Equal(t, 0, s.Score())
}

func TestSubmitScoresOnlyCorrectAnswers(t *testing.T) {
	s := started(t)
	q, _ := s.Current()

	require.True(t, s.Select(q.CorrectIndex(), t0))
	require.True(t, s.Submit(t0))
	assert.Equal(t, 1, s.Score())
	assert.Equal(t, PhaseAnswerRevealed, s.Phase())
	correct, ok := s.AnsweredCorrectly()
	assert.True(t, ok)
	assert.True(t, correct)

	require.True(t, s.Next(t0))
	q, _ = s.Current()
	require.True(t, s.Select(wrongIndex(q), t0))
	require.True(t, s.Submit(t0))
	assert.Equal(t, 1, s.Score())
	correct, ok = s.AnsweredCorrectly()
	assert.True(t, ok)
	assert.False(t, correct)
}

func TestOptionsInertAfterReveal(t *testing.T) {
	s := started(t)
	require.True(t, s.Select(0, t0))
	require.True(t, s.Submit(t0))

	assert.False(t, s.Select(1, t0))
	assert.False(t, s.Submit(t0))
	sel, _ := s.Selected()
	assert.Equal(t, 0, sel)
	assert.Equal(t, 1, s.Score())
}

func TestNextClearsSelection(t *testing.T) {
	s := started(t)
	assert.False(t, s.Next(t0), "next before reveal")

	require.True(t, s.Select(3, t0))
	require.True(t, s.Submit(t0))
	require.True(t, s.Next(t0))

	idx, _ := s.Index()
	assert.Equal(t, 1, idx)
	_, ok := s.Selected()
	assert.False(t, ok)
	assert.Equal(t, PhaseInProgress, s.Phase())
}

func TestAlternatingAnswersScoreThree(t *testing.T) {
	s := started(t)
	now := t0

	for i := 0; i < s.Total(); i++ {
		now = now.Add(10 * time.Second)
		q, ok := s.Current()
		require.True(t, ok)

		choice := q.CorrectIndex()
		if i%2 == 1 {
			choice = wrongIndex(q)
		}
		require.True(t, s.Select(choice, now))
		require.True(t, s.Submit(now))
		require.True(t, s.Next(now))

		assert.GreaterOrEqual(t, s.Score(), 0)
		assert.LessOrEqual(t, s.Score(), s.Total())
	}

	assert.Equal(t, PhaseCompleted, s.Phase())
	assert.Equal(t, 3, s.Score())
	_, ok := s.Index()
	assert.False(t, ok)

	summary, ok := s.Summary()
	require.True(t, ok)
	assert.Equal(t, Summary{Score: 3, Total: 6}, summary)
}

func TestLastNextCompletes(t *testing.T) {
	s := NewSession(sixQuestions()[:1], DefaultDuration)
	require.True(t, s.Start(t0))
	require.True(t, s.Select(0, t0))
	require.True(t, s.Submit(t0))
	require.True(t, s.Next(t0))

	assert.Equal(t, PhaseCompleted, s.Phase())
	assert.False(t, s.Next(t0))
	assert.Equal(t, PhaseCompleted, s.Phase())
}

func TestRemaining(t *testing.T) {
	s := NewSession(sixQuestions(), DefaultDuration)
	assert.Equal(t, 600, s.Remaining(t0.Add(time.Hour)), "clock idle before start")

	require.True(t, s.Start(t0))

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
		display string
	}{
		{"at start", 0, 600, "10:00"},
		{"fraction floors elapsed", 1500 * time.Millisecond, 599, "9:59"},
		{"padded seconds", 595 * time.Second, 5, "0:05"},
		{"mid", 4*time.Minute + 55*time.Second, 305, "5:05"},
		{"exactly over", 600 * time.Second, 0, "0:00"},
		{"long after", 2 * time.Hour, 0, "0:00"},
		{"clock behind start", -5 * time.Second, 600, "10:00"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			now := t0.Add(tc.elapsed)
			assert.Equal(t, tc.want, s.Remaining(now))
			assert.Equal(t, tc.display, s.Countdown(now))
		})
	}
}

func TestTickTimesOutAtDeadline(t *testing.T) {
	s := started(t)

	assert.False(t, s.Tick(t0.Add(599*time.Second+999*time.Millisecond)))
	assert.Equal(t, PhaseInProgress, s.Phase())

	require.True(t, s.Tick(t0.Add(600*time.Second)))
	assert.Equal(t, PhaseTimedOut, s.Phase())
	idx, ok := s.Index()
	assert.False(t, ok)
	assert.Equal(t, 0, idx)

	assert.False(t, s.Tick(t0.Add(700*time.Second)))
	assert.Equal(t, PhaseTimedOut, s.Phase())
}

func TestTimeoutWhileAnswerRevealed(t *testing.T) {
	s := started(t)
	require.True(t, s.Select(0, t0))
	require.True(t, s.Submit(t0))

	require.True(t, s.Tick(t0.Add(10*time.Minute)))
	assert.Equal(t, PhaseTimedOut, s.Phase())
	_, ok := s.Selected()
	assert.False(t, ok)

	summary, ok := s.Summary()
	require.True(t, ok)
	assert.Equal(t, Summary{Score: 1, Total: 6, TimedOut: true}, summary)
}

func TestTimeoutBeatsPendingIntent(t *testing.T) {
	s := started(t)
	require.True(t, s.Select(0, t0))

	late := t0.Add(DefaultDuration)
	assert.False(t, s.Submit(late))
	assert.Equal(t, PhaseTimedOut, s.Phase())
	assert.Equal(t, 0, s.Score())
}

func TestTickIgnoredBeforeStart(t *testing.T) {
	s := NewSession(sixQuestions(), DefaultDuration)
	assert.False(t, s.Tick(t0.Add(24*time.Hour)))
	assert.Equal(t, PhaseNotStarted, s.Phase())
}

func TestRestartOnlyFromTerminal(t *testing.T) {
	fresh := NewSession(sixQuestions(), DefaultDuration)
	s := fresh
	assert.False(t, s.Restart(), "not started")

	require.True(t, s.Start(t0))
	assert.False(t, s.Restart(), "in progress")

	require.True(t, s.Select(0, t0))
	require.True(t, s.Submit(t0))
	assert.False(t, s.Restart(), "answer revealed")

	require.True(t, s.Tick(t0.Add(time.Hour)))
	require.True(t, s.Restart())
	assert.Equal(t, fresh, s)
	assert.Equal(t, 600, s.Remaining(t0.Add(2*time.Hour)))

	assert.False(t, s.Restart(), "already reset")
}

func TestRestartFromEitherTerminalIsIdentical(t *testing.T) {
	completed := NewSession(sixQuestions()[:1], DefaultDuration)
	require.True(t, completed.Start(t0))
	require.True(t, completed.Select(0, t0))
	require.True(t, completed.Submit(t0))
	require.True(t, completed.Next(t0))

	timedOut := NewSession(sixQuestions()[:1], DefaultDuration)
	require.True(t, timedOut.Start(t0))
	require.True(t, timedOut.Tick(t0.Add(DefaultDuration)))

	require.True(t, completed.Restart())
	require.True(t, timedOut.Restart())
	assert.Equal(t, completed, timedOut)
	assert.Equal(t, NewSession(sixQuestions()[:1], DefaultDuration), completed)
}

func TestEmptyBankCompletesOnStart(t *testing.T) {
	s := NewSession(nil, DefaultDuration)
	require.True(t, s.Start(t0))
	assert.Equal(t, PhaseCompleted, s.Phase())

	summary, ok := s.Summary()
	require.True(t, ok)
	assert.Equal(t, Summary{}, summary)
}

func TestNonPositiveDurationUsesDefault(t *testing.T) {
	s := NewSession(sixQuestions(), 0)
	assert.Equal(t, DefaultDuration, s.Duration())
}

func TestValidate(t *testing.T) {
	good := sixQuestions()[0]
	require.NoError(t, good.Validate())

	tests := []struct {
		name   string
		mutate func(q *Question)
		want   error
	}{
		{"blank prompt", func(q *Question) { q.Prompt = "  " }, ErrEmptyPrompt},
		{"one option", func(q *Question) { q.Options = q.Options[:1] }, ErrTooFewOptions},
		{"no correct", func(q *Question) { q.Options[0].IsCorrect = false }, ErrCorrectOptionCount},
		{"two correct", func(q *Question) { q.Options[1].IsCorrect = true }, ErrCorrectOptionCount},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := sixQuestions()[0]
			tc.mutate(&q)
			err := q.Validate()
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestQuestionsReturnsCopy(t *testing.T) {
	s := started(t)

	bank := s.Questions()
	bank[0].Options[0].IsCorrect = true
	bank[0].Options[1].IsCorrect = true
	bank[1].Prompt = "changed"

	q, _ := s.Current()
	assert.NoError(t, q.Validate())
	assert.Equal(t, 0, q.CorrectIndex())
	assert.Equal(t, "Q", s.Questions()[1].Prompt)
}
