package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/PoluyanbIch/GoQuizBot/internal/config"
	"github.com/PoluyanbIch/GoQuizBot/internal/logger"
	"github.com/PoluyanbIch/GoQuizBot/internal/service"
	"github.com/PoluyanbIch/GoQuizBot/internal/telegram"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.TelegramToken == "" {
		log.Fatal().Msg("TELEGRAM_BOT_TOKEN environment variable is required")
	}

	questions := service.LoadQuizQuestions(cfg.QuestionsFile, log)
	quizService := service.NewQuizService(questions, service.Options{
		Duration: cfg.QuizDuration,
		Shuffle:  cfg.Shuffle,
		Limit:    cfg.QuestionLimit,
	})

	bot, err := telegram.NewBot(cfg.TelegramToken, quizService, telegram.Options{
		TickInterval: cfg.TickInterval,
		Debug:        cfg.BotDebug,
		Logger:       log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Msg("🤖 Bot is starting...")
	bot.Start(ctx)
}
