package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gratefultolord/prep_requests_bot/internal/bot"
)

func MainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(bot.ButtonNewRequest),
		),
	)
	kb.ResizeKeyboard = true

	return kb
}

func YesNoKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewOneTimeReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(bot.ButtonYes),
			tgbotapi.NewKeyboardButton(bot.ButtonNo),
		),
	)
	kb.ResizeKeyboard = true

	return kb
}

func CancelKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(bot.ButtonCancel),
		),
	)
	kb.ResizeKeyboard = true

	return kb
}

func ApprovalKeyboard(approveToken, rejectToken string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(bot.ButtonApprove, approveToken),
			tgbotapi.NewInlineKeyboardButtonData(bot.ButtonReject, rejectToken),
		),
	)
}

// replyMarkup returns nil for bot.KeyboardNone so the current keyboard stays.
func replyMarkup(kind bot.Keyboard) interface{} {
	switch kind {
	case bot.KeyboardMain:
		return MainKeyboard()
	case bot.KeyboardYesNo:
		return YesNoKeyboard()
	case bot.KeyboardCancel:
		return CancelKeyboard()
	default:
		return nil
	}
}
