// Package console runs the quiz in a terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/PoluyanbIch/GoQuizBot/internal/quiz"
	"github.com/PoluyanbIch/GoQuizBot/internal/render"
	"github.com/PoluyanbIch/GoQuizBot/internal/service"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

const clearScreen = "\033[H\033[2J"

type Options struct {
	Clock        quiz.Clock
	TickInterval time.Duration
	// Live redraws the countdown on every tick.
	Live   bool
	Logger zerolog.Logger
}

type Runner struct {
	in          io.Reader
	out         io.Writer
	quizService *service.QuizService
	clock       quiz.Clock
	tick        time.Duration
	live        bool
	log         zerolog.Logger

	session quiz.Session
}

func NewRunner(in io.Reader, out io.Writer, quizService *service.QuizService, opts Options) *Runner {
	clock := opts.Clock
	if clock == nil {
		clock = quiz.SystemClock
	}
	tick := opts.TickInterval
	if tick <= 0 {
		tick = time.Second
	}
	return &Runner{
		in:          in,
		out:         out,
		quizService: quizService,
		clock:       clock,
		tick:        tick,
		live:        opts.Live,
		log:         opts.Logger,
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Run drives one session until the input ends, the user quits or ctx is
// done. Input lines and ticks are handled on the calling goroutine.
func (r *Runner) Run(ctx context.Context) error {
	// Stops the reader on every return path, including quit.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
		close(lines)
	}()

	ticker := time.NewTicker(r.tick)
	defer ticker.Stop()

	r.session = r.quizService.NewSession()
	r.draw(r.clock.Now())

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				if err := <-errc; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return nil
			}
			cmd, valid := ParseCommand(line)
			if !valid {
				fmt.Fprintln(r.out, "Unknown command.", hint(r.session))
				continue
			}
			if cmd.Quit {
				fmt.Fprintln(r.out, "Bye.")
				return nil
			}
			r.apply(cmd.Intent)

		case <-ticker.C:
			now := r.clock.Now()
			next, changed := quiz.Apply(r.session, quiz.Intent{Kind: quiz.IntentTick}, now)
			r.session = next
			if changed || (r.live && next.Phase().Running()) {
				r.draw(now)
			}
		}
	}
}

func (r *Runner) apply(in quiz.Intent) {
	now := r.clock.Now()
	next, changed := quiz.Apply(r.session, in, now)
	if !changed {
		r.log.Debug().Str("intent", in.String()).Str("phase", string(r.session.Phase())).Msg("Intent rejected")
		fmt.Fprintln(r.out, "Not available right now.", hint(r.session))
		return
	}

	r.session = next
	if in.Kind == quiz.IntentRestart && next.Phase() == quiz.PhaseNotStarted {
		r.session = r.quizService.NewSession()
	}
	r.draw(now)
}

func (r *Runner) draw(now time.Time) {
	if r.live {
		fmt.Fprint(r.out, clearScreen)
	}
	fmt.Fprintf(r.out, "%s\n\n%s\n%s\n", render.Title, render.Text(r.session, now), hint(r.session))
}

func hint(s quiz.Session) string {
	switch s.Phase() {
	case quiz.PhaseInProgress:
		return "Type an option number, 'submit' to answer or 'quit'."
	case quiz.PhaseAnswerRevealed:
		if idx, _ := s.Index(); idx+1 == s.Total() {
			return "Type 'next' to finish."
		}
		return "Type 'next' for the next question."
	case quiz.PhaseTimedOut, quiz.PhaseCompleted:
		return "Type 'restart' to play again or 'quit'."
	default:
		return "Type 'start' to begin or 'quit'."
	}
}
