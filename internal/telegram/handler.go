package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PoluyanbIch/GoQuizBot/internal/quiz"
	"github.com/PoluyanbIch/GoQuizBot/internal/render"
	"github.com/PoluyanbIch/GoQuizBot/internal/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// sender is the part of *tgbotapi.BotAPI the bot talks through.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// chatQuiz is the quiz owned by one chat and the message that shows it.
type chatQuiz struct {
	attemptID uuid.UUID
	session   quiz.Session
	messageID int
	lastText  string
	touched   time.Time
}

const defaultIdleTimeout = 30 * time.Minute

type Options struct {
	Clock        quiz.Clock
	TickInterval time.Duration
	// IdleTimeout drops finished or unstarted quizzes nobody touched for
	// that long. Zero means 30 minutes.
	IdleTimeout time.Duration
	Debug       bool
	Logger      zerolog.Logger
}

type Bot struct {
	bot         *tgbotapi.BotAPI
	api         sender
	quizzes     map[int64]*chatQuiz
	quizService *service.QuizService
	clock       quiz.Clock
	tick        time.Duration
	idle        time.Duration
	log         zerolog.Logger
}

func NewBot(token string, quizService *service.QuizService, opts Options) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("tgbotapi.NewBotAPI: %w", err)
	}
	api.Debug = opts.Debug

	b := newBot(api, quizService, opts)
	b.bot = api
	return b, nil
}

func newBot(api sender, quizService *service.QuizService, opts Options) *Bot {
	clock := opts.Clock
	if clock == nil {
		clock = quiz.SystemClock
	}
	tick := opts.TickInterval
	if tick <= 0 {
		tick = time.Second
	}
	idle := opts.IdleTimeout
	if idle <= 0 {
		idle = defaultIdleTimeout
	}
	return &Bot{
		api:         api,
		quizzes:     make(map[int64]*chatQuiz),
		quizService: quizService,
		clock:       clock,
		tick:        tick,
		idle:        idle,
		log:         opts.Logger,
	}
}

// Start polls Telegram until ctx is done. Updates and timer ticks are
// handled on this goroutine only, so sessions need no locking.
func (b *Bot) Start(ctx context.Context) {
	b.log.Info().Str("account", b.bot.Self.UserName).Msg("Authorised")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)
	defer b.bot.StopReceivingUpdates()

	ticker := time.NewTicker(b.tick)
	defer ticker.Stop()

	b.run(ctx, updates, ticker.C)
}

func (b *Bot) run(ctx context.Context, updates <-chan tgbotapi.Update, ticks <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			b.log.Info().Msg("Bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(update)
		case <-ticks:
			b.tickAll(b.clock.Now())
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	if update.Message != nil {
		chatID := update.Message.Chat.ID
		switch update.Message.Command() {
		case "start":
			b.sendWelcome(chatID)
		case "quiz":
			b.startQuiz(chatID)
		case "info":
			b.handleInfo(chatID)
		default:
			b.sendMessage(chatID, "Unknown command. Use /start to open the quiz.")
		}
	}
	if update.CallbackQuery != nil {
		b.handleCallback(update.CallbackQuery)
	}
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.log.Error().Err(err).Msg("Error answering callback")
	}
	if callback.Message == nil {
		return
	}

	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID
	data := callback.Data

	switch {
	case data == dataStart:
		b.apply(chatID, messageID, quiz.Intent{Kind: quiz.IntentStart})
	case data == dataSubmit:
		b.apply(chatID, messageID, quiz.Intent{Kind: quiz.IntentSubmit})
	case data == dataNext:
		b.apply(chatID, messageID, quiz.Intent{Kind: quiz.IntentNext})
	case data == dataRestart:
		b.apply(chatID, messageID, quiz.Intent{Kind: quiz.IntentRestart})
	case strings.HasPrefix(data, dataOptionPrefix):
		i, err := strconv.Atoi(strings.TrimPrefix(data, dataOptionPrefix))
		if err != nil {
			b.log.Warn().Str("data", data).Msg("Malformed option callback")
			return
		}
		b.apply(chatID, messageID, quiz.Intent{Kind: quiz.IntentSelect, Option: i})
	case data == dataInfo:
		b.handleInfo(chatID)
	case data == dataMenu:
		b.sendWelcome(chatID)
	default:
		b.sendMessage(chatID, "Unknown command")
	}
}

func (b *Bot) newChatQuiz() *chatQuiz {
	return &chatQuiz{
		attemptID: uuid.New(),
		session:   b.quizService.NewSession(),
	}
}

// sendWelcome discards whatever the chat had and posts a fresh quiz message.
func (b *Bot) sendWelcome(chatID int64) {
	cq := b.newChatQuiz()
	b.replace(chatID, cq)
	b.render(chatID, cq, b.clock.Now())
}

func (b *Bot) startQuiz(chatID int64) {
	cq := b.newChatQuiz()
	now := b.clock.Now()
	cq.session.Start(now)
	b.replace(chatID, cq)

	b.log.Info().Int64("chat_id", chatID).Str("attempt_id", cq.attemptID.String()).Msg("Quiz started")
	b.render(chatID, cq, now)
}

// replace makes cq the chat's quiz and disarms the previous quiz message.
func (b *Bot) replace(chatID int64, cq *chatQuiz) {
	if old, exists := b.quizzes[chatID]; exists && old.messageID != 0 {
		b.retire(chatID, old.messageID)
	}
	b.quizzes[chatID] = cq
}

// retire strips the keyboard from a quiz message that no longer drives
// the chat's quiz.
func (b *Bot) retire(chatID int64, messageID int) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := b.api.Request(edit); err != nil {
		b.log.Debug().Err(err).Int64("chat_id", chatID).Int("message_id", messageID).Msg("Error removing stale keyboard")
	}
}

func (b *Bot) apply(chatID int64, messageID int, in quiz.Intent) {
	now := b.clock.Now()

	cq, exists := b.quizzes[chatID]
	if !exists {
		// Buttons outlived the session: evicted, or the bot restarted.
		cq = b.newChatQuiz()
		cq.messageID = messageID
		b.quizzes[chatID] = cq
		if in.Kind == quiz.IntentRestart {
			b.render(chatID, cq, now)
			return
		}
	}

	if cq.messageID != 0 && messageID != cq.messageID {
		b.log.Debug().
			Int64("chat_id", chatID).
			Int("message_id", messageID).
			Int("active_message_id", cq.messageID).
			Str("intent", in.String()).
			Msg("Intent from inactive quiz message")
		b.retire(chatID, messageID)
		return
	}

	next, changed := quiz.Apply(cq.session, in, now)
	logger := b.log.With().
		Int64("chat_id", chatID).
		Str("attempt_id", cq.attemptID.String()).
		Str("intent", in.String()).
		Logger()
	if !changed {
		logger.Debug().Str("phase", string(cq.session.Phase())).Msg("Intent rejected")
		return
	}

	cq.session = next
	switch {
	case in.Kind == quiz.IntentRestart && next.Phase() == quiz.PhaseNotStarted:
		// New attempt: fresh id and, with shuffling on, a fresh order.
		cq.attemptID = uuid.New()
		cq.session = b.quizService.NewSession()
	case next.Phase() == quiz.PhaseTimedOut:
		logger.Info().Int("score", next.Score()).Msg("Quiz timed out")
	case next.Phase() == quiz.PhaseCompleted:
		logger.Info().Int("score", next.Score()).Int("total", next.Total()).Msg("Quiz completed")
	}

	b.render(chatID, cq, now)
}

// tickAll advances every running quiz and refreshes its countdown.
func (b *Bot) tickAll(now time.Time) {
	for chatID, cq := range b.quizzes {
		if !cq.session.Phase().Running() {
			if now.Sub(cq.touched) >= b.idle {
				delete(b.quizzes, chatID)
				b.log.Debug().Int64("chat_id", chatID).Str("attempt_id", cq.attemptID.String()).Msg("Idle quiz dropped")
			}
			continue
		}

		next, expired := quiz.Apply(cq.session, quiz.Intent{Kind: quiz.IntentTick}, now)
		cq.session = next
		if expired {
			b.log.Info().
				Int64("chat_id", chatID).
				Str("attempt_id", cq.attemptID.String()).
				Int("score", next.Score()).
				Msg("Quiz timed out")
		}
		b.render(chatID, cq, now)
	}
}

// render posts the quiz message once and edits it in place afterwards.
func (b *Bot) render(chatID int64, cq *chatQuiz, now time.Time) {
	cq.touched = now
	text := render.Text(cq.session, now)
	if cq.messageID != 0 && text == cq.lastText {
		return
	}
	kb := keyboard(cq.session)

	if cq.messageID == 0 {
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ReplyMarkup = kb
		sent, err := b.api.Send(msg)
		if err != nil {
			b.log.Error().Err(err).Int64("chat_id", chatID).Msg("Error sending quiz message")
			return
		}
		cq.messageID = sent.MessageID
		cq.lastText = text
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, cq.messageID, text, kb)
	if _, err := b.api.Send(edit); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("Error updating quiz message")
		return
	}
	cq.lastText = text
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("Error sending message")
	}
}

func (b *Bot) handleInfo(chatID int64) {
	text := "A timed multiple-choice quiz.\n\n" +
		"/start - open the quiz\n" +
		"/quiz - start right away\n" +
		"/info - this message\n\n" +
		"Pick an option, press Submit to see the explanation, then Next. " +
		"The clock keeps running while the explanation is shown."

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back", dataMenu),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error().Err(err).Int64("chat_id", chatID).Msg("Error sending info")
	}
}
