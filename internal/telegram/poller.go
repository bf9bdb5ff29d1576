package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/gratefultolord/prep_requests_bot/internal/bot"
)

// UpdatesAPI is the inbound side of *tgbotapi.BotAPI.
type UpdatesAPI interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Dispatcher interface {
	HandleMessage(ctx context.Context, msg bot.Message)
	HandleAction(ctx context.Context, action bot.Action)
}

// Poller long-polls for updates and hands them to the dispatcher strictly one
// at a time.
type Poller struct {
	api        UpdatesAPI
	dispatcher Dispatcher
	logger     *zap.Logger
	timeout    int
}

func NewPoller(api UpdatesAPI, dispatcher Dispatcher, logger *zap.Logger) *Poller {
	return &Poller{
		api:        api,
		dispatcher: dispatcher,
		logger:     logger,
		timeout:    60,
	}
}

// Setup drops the webhook together with updates queued while the bot was
// down, and registers the command menu.
func (p *Poller) Setup() error {
	if _, err := p.api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		return fmt.Errorf("Poller.Setup: cannot delete webhook: %w", err)
	}

	commands := tgbotapi.NewSetMyCommands(
		tgbotapi.BotCommand{Command: bot.CommandStart, Description: "🏠 بدء البوت والقائمة الرئيسية"},
		tgbotapi.BotCommand{Command: bot.CommandAdmin, Description: "📊 عرض الإحصائيات (للأدمن فقط)"},
	)
	if _, err := p.api.Request(commands); err != nil {
		return fmt.Errorf("Poller.Setup: cannot set commands: %w", err)
	}

	p.logger.Info("bot commands registered")

	return nil
}

// Run blocks until ctx is done or the updates channel closes.
func (p *Poller) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = p.timeout
	updates := p.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			p.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}

			p.dispatch(ctx, update)
		}
	}
}

func (p *Poller) dispatch(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("update handler panicked", zap.Int("update_id", update.UpdateID), zap.Any("panic", r))
		}
	}()

	if update.CallbackQuery != nil {
		action, ok := actionFromCallback(update.CallbackQuery)
		if ok {
			p.dispatcher.HandleAction(ctx, action)
		}
		return
	}

	if update.Message != nil {
		msg, ok := messageFromTelegram(update.Message)
		if ok {
			p.dispatcher.HandleMessage(ctx, msg)
		}
	}
}

func senderFromUser(u *tgbotapi.User) bot.Sender {
	return bot.Sender{
		ID:       u.ID,
		FullName: strings.TrimSpace(u.FirstName + " " + u.LastName),
		Username: u.UserName,
	}
}

func messageFromTelegram(m *tgbotapi.Message) (bot.Message, bool) {
	if m.From == nil || m.Chat == nil {
		return bot.Message{}, false
	}

	return bot.Message{
		ChatID:  m.Chat.ID,
		From:    senderFromUser(m.From),
		Text:    m.Text,
		Command: m.Command(),
	}, true
}

func actionFromCallback(q *tgbotapi.CallbackQuery) (bot.Action, bool) {
	if q.From == nil {
		return bot.Action{}, false
	}

	action := bot.Action{
		ID:   q.ID,
		From: senderFromUser(q.From),
		Data: q.Data,
	}

	if q.Message != nil && q.Message.Chat != nil {
		action.Message = bot.MessageHandle{ChatID: q.Message.Chat.ID, MessageID: q.Message.MessageID}
	}

	return action, true
}
