package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/PoluyanbIch/GoQuizBot/internal/config"
	"github.com/PoluyanbIch/GoQuizBot/internal/console"
	"github.com/PoluyanbIch/GoQuizBot/internal/logger"
	"github.com/PoluyanbIch/GoQuizBot/internal/service"
)

func main() {
	cfg := config.Load()
	// Logs go to stderr so they do not interleave with the quiz screen.
	log := logger.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	questions := service.LoadQuizQuestions(cfg.QuestionsFile, log)
	quizService := service.NewQuizService(questions, service.Options{
		Duration: cfg.QuizDuration,
		Shuffle:  cfg.Shuffle,
		Limit:    cfg.QuestionLimit,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := console.NewRunner(os.Stdin, os.Stdout, quizService, console.Options{
		TickInterval: cfg.TickInterval,
		Live:         console.IsTerminal(os.Stdin) && console.IsTerminal(os.Stdout),
		Logger:       log,
	})
	if err := runner.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Quiz stopped")
	}
}
