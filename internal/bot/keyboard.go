package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"printk/internal/calculators"
)

// BOT KEYBOARDS

func levelRow(prefix, suffix string) []tgbotapi.InlineKeyboardButton {
	row := make([]tgbotapi.InlineKeyboardButton, 0, calculators.MaxLevel+1)
	for i := 0; i <= calculators.MaxLevel; i++ {
		label := fmt.Sprintf("%d%s", i, suffix)
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", prefix, i)))
	}
	return row
}

func (b *Bot) createInkKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		levelRow(CallbackCMYK, "×"),
		levelRow(CallbackWhite, "W"),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧮 Calcola", CallbackRecalc),
			tgbotapi.NewInlineKeyboardButtonData("📊 Report", CallbackReport),
		),
	)
}
