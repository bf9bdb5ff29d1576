package bot

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gratefultolord/prep_requests_bot/internal/config"
	"github.com/gratefultolord/prep_requests_bot/internal/db"
)

// Repository is the part of db.SubmissionRepository the bot uses.
type Repository interface {
	Create(ctx context.Context, id string, sub *db.Submission) error
	Resolve(ctx context.Context, id string, outcome db.Status) (*db.Submission, error)
	GetStatistics(ctx context.Context) (db.Statistics, error)
}

// BotService is the application context: it owns the sessions and is
// driven one inbound event at a time.
type BotService struct {
	gateway  Gateway
	repo     Repository
	cfg      *config.Config
	sessions *Sessions
	logger   *zap.Logger
	now      func() time.Time
}

func New(gateway Gateway, repo Repository, cfg *config.Config, logger *zap.Logger) *BotService {
	return &BotService{
		gateway:  gateway,
		repo:     repo,
		cfg:      cfg,
		sessions: NewSessions(),
		logger:   logger,
		now:      time.Now,
	}
}

func (b *BotService) Sessions() *Sessions {
	return b.sessions
}

// HandleMessage processes one applicant message. The allow-list check comes
// before everything else, including cancel.
func (b *BotService) HandleMessage(ctx context.Context, msg Message) {
	if !b.cfg.IsAllowed(msg.From.ID) {
		b.logger.Info("unauthorized message", zap.Int64("user_id", msg.From.ID))
		b.reply(ctx, msg.ChatID, b.cfg.UnauthorizedMessage, KeyboardNone)
		return
	}

	intent := ParseIntent(msg)

	switch intent {
	case IntentStart:
		b.sessions.Destroy(msg.From.ID)
		b.reply(ctx, msg.ChatID, b.cfg.WelcomeMessage, KeyboardMain)
		return
	case IntentAdmin:
		b.handleAdmin(ctx, msg)
		return
	case IntentCancel:
		b.sessions.Destroy(msg.From.ID)
		b.reply(ctx, msg.ChatID, textCancelled, KeyboardMain)
		return
	case IntentNewRequest:
		draft := b.sessions.Start(msg.From.ID)
		b.prompt(ctx, msg.ChatID, draft.Step())
		return
	}

	draft, ok := b.sessions.Get(msg.From.ID)
	if !ok {
		b.reply(ctx, msg.ChatID, textUnrecognized, KeyboardMain)
		return
	}

	b.handleStep(ctx, msg, intent, draft)
}

func (b *BotService) handleAdmin(ctx context.Context, msg Message) {
	if !b.cfg.IsAdmin(msg.From.ID) {
		b.reply(ctx, msg.ChatID, textAdminOnly, KeyboardNone)
		return
	}

	stats, err := b.repo.GetStatistics(ctx)
	if err != nil {
		b.logger.Error("cannot read statistics", zap.Error(err))
		b.reply(ctx, msg.ChatID, textGenericFailed, KeyboardNone)
		return
	}

	b.reply(ctx, msg.ChatID, StatisticsText(stats), KeyboardNone)
}

func (b *BotService) prompt(ctx context.Context, chatID int64, step Step) {
	p := stepPrompts[step]
	b.reply(ctx, chatID, p.text, p.keyboard)
}

func (b *BotService) reply(ctx context.Context, chatID int64, text string, keyboard Keyboard) {
	if err := b.gateway.RespondToApplicant(ctx, chatID, text, keyboard); err != nil {
		b.logger.Error("failed to respond to applicant", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
