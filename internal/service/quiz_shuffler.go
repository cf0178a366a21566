package service

import (
	"math/rand"

	"github.com/PoluyanbIch/GoQuizBot/internal/quiz"
)

// ShuffleQuestions returns the questions in random order. The input slice is
// left untouched and option order inside each question is kept.
func ShuffleQuestions(questions []quiz.Question, rnd *rand.Rand) []quiz.Question {
	shuffled := make([]quiz.Question, len(questions))
	copy(shuffled, questions)

	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled
}

// ShuffleQuestionsWithLimit shuffles and keeps at most limit questions.
func ShuffleQuestionsWithLimit(questions []quiz.Question, limit int, rnd *rand.Rand) []quiz.Question {
	shuffled := ShuffleQuestions(questions, rnd)

	if limit <= 0 || limit > len(shuffled) {
		limit = len(shuffled)
	}

	return shuffled[:limit]
}
