package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	TelegramToken string
	BotDebug      bool
	QuestionsFile string
	QuizDuration  time.Duration
	TickInterval  time.Duration
	Shuffle       bool
	// QuestionLimit caps questions per attempt; 0 keeps the whole bank.
	QuestionLimit int
	LogLevel      string
	LogFormat     string
}

// Load reads configuration from environment variables with defaults.
// A .env file is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		TelegramToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		BotDebug:      getEnvBool("BOT_DEBUG", false),
		QuestionsFile: getEnv("QUESTIONS_FILE", ""),
		QuizDuration:  time.Duration(getEnvInt("QUIZ_DURATION_SECONDS", 600)) * time.Second,
		TickInterval:  time.Duration(getEnvInt("TICK_INTERVAL_MS", 1000)) * time.Millisecond,
		Shuffle:       getEnvBool("SHUFFLE_QUESTIONS", false),
		QuestionLimit: getEnvInt("QUESTION_LIMIT", 0),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "pretty"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
