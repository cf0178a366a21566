package service

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/PoluyanbIch/GoQuizBot/internal/quiz"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var ErrNoQuestions = errors.New("no questions found")

// ParseQuizQuestions decodes a YAML list of questions, each with
// question, explanation and options keys; an option has text and correct.
// See questions.example.yaml.
func ParseQuizQuestions(r io.Reader) ([]quiz.Question, error) {
	var questions []quiz.Question
	if err := yaml.NewDecoder(r).Decode(&questions); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoQuestions
		}
		return nil, fmt.Errorf("decode questions: %w", err)
	}

	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	return questions, nil
}

func ParseQuizQuestionsFile(filename string) ([]quiz.Question, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return ParseQuizQuestions(f)
}

// LoadQuizQuestions loads the bank from filename, or returns the default
// bank when filename is empty or cannot be parsed.
func LoadQuizQuestions(filename string, log zerolog.Logger) []quiz.Question {
	if filename == "" {
		log.Info().Int("count", len(defaultQuestions)).Msg("Using built-in questions")
		return DefaultQuizQuestions()
	}

	questions, err := ParseQuizQuestionsFile(filename)
	if err != nil {
		log.Warn().Err(err).Str("file", filename).Msg("Failed to load questions, using built-in questions")
		return DefaultQuizQuestions()
	}

	log.Info().Int("count", len(questions)).Str("file", filename).Msg("Loaded questions")
	return questions
}

// DefaultQuizQuestions returns a copy of the built-in bank.
func DefaultQuizQuestions() []quiz.Question {
	out := make([]quiz.Question, len(defaultQuestions))
	for i, q := range defaultQuestions {
		q.Options = append([]quiz.Option(nil), q.Options...)
		out[i] = q
	}
	return out
}

var defaultQuestions = []quiz.Question{
	{
		Prompt: "What is the purpose of Supplementary Certificates in relation to the Permit to Work?",
		Options: []quiz.Option{
			{Text: "They authorize the work"},
			{Text: "They provide additional information for safe work practices", IsCorrect: true},
			{Text: "They replace the need for a Permit to Work"},
			{Text: "They serve as isolation points for the worksite"},
		},
		Explanation: "Supplementary Certificates provide additional information for safe work practices.",
	},
	{
		Prompt: "What is the minimum time during a shift handover of permit?",
		Options: []quiz.Option{
			{Text: "120 minutes"},
			{Text: "60 minutes", IsCorrect: true},
			{Text: "30 minutes"},
			{Text: "None of above"},
		},
		Explanation: "The minimum time during a shift handover of permit is 60 minutes.",
	},
	{
		Prompt: "What is meant by the grey dot in this flow diagram?",
		Options: []quiz.Option{
			{Text: "Awaiting for Acceptance"},
			{Text: "Initiated"},
			{Text: "Not started", IsCorrect: true},
			{Text: "None of the above"},
		},
		Explanation: "The grey dot in the flow diagram means that the task is not started.",
	},
	{
		Prompt: "Why is there no 'revert to PAP' workflow action at this point?",
		Options: []quiz.Option{
			{Text: "There is no 'revert to PAP' status because the PAP can still edit the permit at this point", IsCorrect: true},
			{Text: "Because Permit is Live"},
			{Text: "Need Approval From PA"},
			{Text: "None"},
		},
		Explanation: "There is no 'revert to PAP' status because the PAP can still edit the permit at this point.",
	},
	{
		Prompt: "How many Permits or Certificates are in 'Live' status?",
		Options: []quiz.Option{
			{Text: "One"},
			{Text: "Two"},
			{Text: "Three"},
			{Text: "None", IsCorrect: true},
		},
		Explanation: "There are no Permits or Certificates in 'Live' status.",
	},
	{
		Prompt: "Refer to the screenshot, how do you obtain a list of company and persons able to sign the next action?",
		Options: []quiz.Option{
			{Text: "Click on the Head/ Shoulders icon next to the action", IsCorrect: true},
			{Text: "Check In Main Menu"},
			{Text: "PC Will Inform"},
			{Text: "By sending request to PA"},
		},
		Explanation: "You obtain a list of company and persons able to sign the next action by clicking on the Head/ Shoulders icon next to the action.",
	},
}
