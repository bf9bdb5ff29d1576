package telegram

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gratefultolord/prep_requests_bot/internal/bot"
)

// API is the subset of *tgbotapi.BotAPI used for outbound calls.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Gateway implements bot.Gateway on the Telegram Bot API. Every outgoing
// text is sent in HTML parse mode.
type Gateway struct {
	api     API
	channel string
}

func NewGateway(api API, channelID string) *Gateway {
	return &Gateway{
		api:     api,
		channel: channelID,
	}
}

func (g *Gateway) PostModerationNotice(ctx context.Context, text, approveToken, rejectToken string) (bot.MessageHandle, error) {
	if err := ctx.Err(); err != nil {
		return bot.MessageHandle{}, err
	}

	msg := g.channelMessage(text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = ApprovalKeyboard(approveToken, rejectToken)

	sent, err := g.api.Send(msg)
	if err != nil {
		return bot.MessageHandle{}, fmt.Errorf("Gateway.PostModerationNotice: %w", err)
	}

	handle := bot.MessageHandle{MessageID: sent.MessageID}
	if sent.Chat != nil {
		handle.ChatID = sent.Chat.ID
	}

	return handle, nil
}

func (g *Gateway) EditMessage(ctx context.Context, handle bot.MessageHandle, text string, removeControls bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	edit := tgbotapi.NewEditMessageText(handle.ChatID, handle.MessageID, text)
	edit.ParseMode = tgbotapi.ModeHTML
	if removeControls {
		edit.ReplyMarkup = &tgbotapi.InlineKeyboardMarkup{
			InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
		}
	}

	if _, err := g.api.Request(edit); err != nil {
		return fmt.Errorf("Gateway.EditMessage: %w", err)
	}

	return nil
}

func (g *Gateway) RespondToApplicant(ctx context.Context, chatID int64, text string, keyboard bot.Keyboard) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup := replyMarkup(keyboard); markup != nil {
		msg.ReplyMarkup = markup
	}

	if _, err := g.api.Send(msg); err != nil {
		return fmt.Errorf("Gateway.RespondToApplicant: %w", err)
	}

	return nil
}

func (g *Gateway) AcknowledgeActor(ctx context.Context, actionID string, text string, prominent bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	answer := tgbotapi.NewCallback(actionID, text)
	if prominent {
		answer = tgbotapi.NewCallbackWithAlert(actionID, text)
	}

	if _, err := g.api.Request(answer); err != nil {
		return fmt.Errorf("Gateway.AcknowledgeActor: %w", err)
	}

	return nil
}

// channelMessage addresses the moderation channel by numeric id or by
// @username.
func (g *Gateway) channelMessage(text string) tgbotapi.MessageConfig {
	if id, err := strconv.ParseInt(g.channel, 10, 64); err == nil {
		return tgbotapi.NewMessage(id, text)
	}

	return tgbotapi.NewMessageToChannel(g.channel, text)
}
