package quiz

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyPrompt        = errors.New("question prompt is empty")
	ErrTooFewOptions      = errors.New("question needs at least two options")
	ErrCorrectOptionCount = errors.New("question needs exactly one correct option")
)

type Option struct {
	Text      string `yaml:"text"`
	IsCorrect bool   `yaml:"correct"`
}

type Question struct {
	Prompt      string   `yaml:"question"`
	Options     []Option `yaml:"options"`
	Explanation string   `yaml:"explanation"`
}

// Validate checks the shape every question in a bank must have.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Prompt) == "" {
		return ErrEmptyPrompt
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewOptions, len(q.Options))
	}

	correct := 0
	for _, opt := range q.Options {
		if opt.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return fmt.Errorf("%w: got %d", ErrCorrectOptionCount, correct)
	}

	return nil
}

// CorrectIndex returns the index of the correct option, or -1.
func (q Question) CorrectIndex() int {
	for i, opt := range q.Options {
		if opt.IsCorrect {
			return i
		}
	}
	return -1
}
