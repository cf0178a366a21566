package console

import (
	"strconv"
	"strings"

	"github.com/PoluyanbIch/GoQuizBot/internal/quiz"
)

// Command is one parsed input line.
type Command struct {
	Intent quiz.Intent
	Quit   bool
}

// ParseCommand maps a line to an intent. Option numbers are 1-based.
func ParseCommand(line string) (Command, bool) {
	word := strings.ToLower(strings.TrimSpace(line))

	switch word {
	case "start":
		return Command{Intent: quiz.Intent{Kind: quiz.IntentStart}}, true
	case "submit", "s":
		return Command{Intent: quiz.Intent{Kind: quiz.IntentSubmit}}, true
	case "next", "n":
		return Command{Intent: quiz.Intent{Kind: quiz.IntentNext}}, true
	case "restart", "r":
		return Command{Intent: quiz.Intent{Kind: quiz.IntentRestart}}, true
	case "quit", "q", "exit":
		return Command{Quit: true}, true
	}

	n, err := strconv.Atoi(word)
	if err != nil {
		return Command{}, false
	}
	return Command{Intent: quiz.Intent{Kind: quiz.IntentSelect, Option: n - 1}}, true
}
