package service

import (
	"math/rand"
	"time"

	"github.com/PoluyanbIch/GoQuizBot/internal/quiz"
)

// QuizService hands out fresh sessions over one question bank.
type QuizService struct {
	questions []quiz.Question
	duration  time.Duration
	shuffle   bool
	limit     int
	rnd       *rand.Rand
}

type Options struct {
	Duration time.Duration
	Shuffle  bool
	// Limit caps the number of questions per attempt; 0 means all.
	Limit int
	// Rand drives shuffling. Nil seeds one from the wall clock.
	Rand *rand.Rand
}

func NewQuizService(questions []quiz.Question, opts Options) *QuizService {
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &QuizService{
		questions: questions,
		duration:  opts.Duration,
		shuffle:   opts.Shuffle,
		limit:     opts.Limit,
		rnd:       rnd,
	}
}

// NewSession returns a session in quiz.PhaseNotStarted. With shuffling on,
// every attempt gets its own question order.
func (s *QuizService) NewSession() quiz.Session {
	questions := s.questions
	if s.shuffle {
		questions = ShuffleQuestionsWithLimit(questions, s.limit, s.rnd)
	} else if s.limit > 0 && s.limit < len(questions) {
		questions = questions[:s.limit]
	}
	return quiz.NewSession(questions, s.duration)
}
