// Package render turns a quiz session into the text of its current screen.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/PoluyanbIch/GoQuizBot/internal/quiz"
)

const (
	Title           = "Quiz App"
	SelectedMarker  = "▶"
	CorrectVerdict  = "Correct!"
	WrongVerdict    = "Wrong!"
	TimedOutHeading = "Time's up! Quiz Completed"
	CompleteHeading = "Quiz Completed"
)

// Text renders one of the five screens: welcome, question, feedback,
// timed out or completed.
func Text(s quiz.Session, now time.Time) string {
	var b strings.Builder

	switch s.Phase() {
	case quiz.PhaseNotStarted:
		fmt.Fprintf(&b, "Welcome to the Quiz\n\n%s\n", Budget(s.Duration()))

	case quiz.PhaseInProgress, quiz.PhaseAnswerRevealed:
		writeQuestion(&b, s, now)

	case quiz.PhaseTimedOut, quiz.PhaseCompleted:
		summary, _ := s.Summary()
		heading := CompleteHeading
		if summary.TimedOut {
			heading = TimedOutHeading
		}
		fmt.Fprintf(&b, "%s\n\n%s\n", heading, Score(summary))
	}

	return b.String()
}

func writeQuestion(b *strings.Builder, s quiz.Session, now time.Time) {
	idx, _ := s.Index()
	q, _ := s.Current()
	selected, hasSelection := s.Selected()

	fmt.Fprintf(b, "Time Remaining: %s\n\n", s.Countdown(now))
	fmt.Fprintf(b, "Question %d/%d: %s\n\n", idx+1, s.Total(), q.Prompt)
	for i, opt := range q.Options {
		marker := " "
		if hasSelection && i == selected {
			marker = SelectedMarker
		}
		fmt.Fprintf(b, "%s %d. %s\n", marker, i+1, opt.Text)
	}

	if correct, revealed := s.AnsweredCorrectly(); revealed {
		verdict := WrongVerdict
		if correct {
			verdict = CorrectVerdict
		}
		fmt.Fprintf(b, "\n%s\n%s\n", verdict, q.Explanation)
	}
}

// Score is the summary line shared by both end screens.
func Score(summary quiz.Summary) string {
	return fmt.Sprintf("You scored %d out of %d.", summary.Score, summary.Total)
}

// Budget describes the time allowed, e.g. "You have 10 minutes to complete the quiz."
func Budget(d time.Duration) string {
	secs := int(d / time.Second)
	switch {
	case secs%60 != 0:
		return fmt.Sprintf("You have %s to complete the quiz.", quiz.FormatSeconds(secs))
	case secs == 60:
		return "You have 1 minute to complete the quiz."
	default:
		return fmt.Sprintf("You have %d minutes to complete the quiz.", secs/60)
	}
}
