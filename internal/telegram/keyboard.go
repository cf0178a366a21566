package telegram

import (
	"fmt"

	"github.com/PoluyanbIch/GoQuizBot/internal/quiz"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data carried by the inline buttons.
const (
	dataStart        = "start_quiz"
	dataOptionPrefix = "option_"
	dataSubmit       = "submit"
	dataNext         = "next"
	dataRestart      = "restart"
	dataInfo         = "info"
	dataMenu         = "back_to_menu"
)

func keyboard(s quiz.Session) tgbotapi.InlineKeyboardMarkup {
	switch s.Phase() {
	case quiz.PhaseInProgress:
		return questionKeyboard(s)

	case quiz.PhaseAnswerRevealed:
		label := "➡️ Next"
		if idx, _ := s.Index(); idx+1 == s.Total() {
			label = "🏁 Finish"
		}
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(label, dataNext)),
		)

	case quiz.PhaseTimedOut, quiz.PhaseCompleted:
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🎯 Restart Quiz", dataRestart)),
		)

	default:
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("🎯 Start Quiz", dataStart),
				tgbotapi.NewInlineKeyboardButtonData("ℹ️ Info", dataInfo),
			),
		)
	}
}

func questionKeyboard(s quiz.Session) tgbotapi.InlineKeyboardMarkup {
	q, _ := s.Current()
	selected, hasSelection := s.Selected()

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, option := range q.Options {
		label := fmt.Sprintf("%d. %s", i+1, option.Text)
		if hasSelection && i == selected {
			label = "✅ " + label
		}
		button := tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", dataOptionPrefix, i))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}

	if hasSelection {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📨 Submit Answer", dataSubmit),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
