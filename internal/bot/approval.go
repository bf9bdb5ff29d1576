package bot

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/gratefultolord/prep_requests_bot/internal/db"
)

const (
	approvePrefix = "approve_"
	rejectPrefix  = "reject_"
)

func ApproveToken(id string) string {
	return approvePrefix + id
}

func RejectToken(id string) string {
	return rejectPrefix + id
}

// ParseActionData splits control data into the intended outcome and the
// submission id.
func ParseActionData(data string) (db.Status, string, bool) {
	if id, ok := strings.CutPrefix(data, approvePrefix); ok && id != "" {
		return db.StatusAccepted, id, true
	}

	if id, ok := strings.CutPrefix(data, rejectPrefix); ok && id != "" {
		return db.StatusRejected, id, true
	}

	return "", "", false
}

// HandleAction resolves the submission named by a moderator control. Only a
// pending submission changes; anything else is answered as not found or
// already resolved.
func (b *BotService) HandleAction(ctx context.Context, action Action) {
	outcome, id, ok := ParseActionData(action.Data)
	if !ok {
		b.logger.Warn("unknown control data", zap.String("data", action.Data), zap.Int64("user_id", action.From.ID))
		b.acknowledge(ctx, action.ID, "", false)
		return
	}

	sub, err := b.repo.Resolve(ctx, id, outcome)

	var resolved *db.AlreadyResolvedError
	switch {
	case errors.Is(err, db.ErrSubmissionNotFound):
		b.acknowledge(ctx, action.ID, textNotFound, true)
		return
	case errors.As(err, &resolved):
		b.logger.Info("submission already resolved",
			zap.String("request_id", id), zap.String("status", string(resolved.Status)), zap.Int64("user_id", action.From.ID))
		b.acknowledge(ctx, action.ID, conflictText(resolved.Status), true)
		return
	case err != nil:
		b.logger.Error("failed to resolve submission", zap.String("request_id", id), zap.Error(err))
		b.acknowledge(ctx, action.ID, textGenericFailed, true)
		return
	}

	actor := displayName(action.From, unknownModerator)
	text := NoticeText(sub, headerResolvedNotice) + ResolutionBanner(outcome, actor, b.now().Format(TimestampLayout))

	if err := b.gateway.EditMessage(ctx, action.Message, text, true); err != nil {
		b.logger.Error("failed to update channel message", zap.String("request_id", id), zap.Error(err))
	}

	if outcome == db.StatusAccepted {
		b.logger.Info("submission accepted",
			zap.String("request_id", id),
			zap.String("moderator", actor),
			zap.Int("codes_count", sub.CodesCount),
			zap.Int("english_codes_count", sub.EnglishCodesCount),
		)
		b.acknowledge(ctx, action.ID, acceptedText(sub), true)
		return
	}

	b.logger.Info("submission rejected", zap.String("request_id", id), zap.String("moderator", actor))
	b.acknowledge(ctx, action.ID, textRejected, true)
}

func (b *BotService) acknowledge(ctx context.Context, actionID, text string, prominent bool) {
	if err := b.gateway.AcknowledgeActor(ctx, actionID, text, prominent); err != nil {
		b.logger.Error("failed to answer control action", zap.String("action_id", actionID), zap.Error(err))
	}
}
