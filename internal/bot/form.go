package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/AlekSi/pointer"
	"go.uber.org/zap"
)

func (b *BotService) handleStep(ctx context.Context, msg Message, intent Intent, draft *Draft) {
	text := strings.TrimSpace(msg.Text)
	step := draft.Step()

	if text == "" {
		b.prompt(ctx, msg.ChatID, step)
		return
	}

	switch step {
	case StepStudentName:
		draft.StudentName = text
		b.advance(ctx, msg, draft, eventNext)

	case StepStudentNumber:
		draft.StudentNumber = text
		b.advance(ctx, msg, draft, eventNext)

	case StepTelegramHandle:
		draft.TelegramHandle = text
		b.advance(ctx, msg, draft, eventNext)

	case StepDeviceID:
		draft.DeviceID = text
		b.advance(ctx, msg, draft, eventNext)

	case StepSubjects:
		draft.Subjects = text
		b.advance(ctx, msg, draft, eventNext)

	case StepCodesCount:
		n, ok := ParseDigits(text)
		if !ok {
			b.reply(ctx, msg.ChatID, textDigitsOnly, KeyboardNone)
			return
		}

		draft.CodesCount = n
		b.advance(ctx, msg, draft, eventNext)

	case StepHasEnglishCodes:
		switch intent {
		case IntentYes:
			draft.HasEnglishCodes = true
			b.advance(ctx, msg, draft, eventEnglishYes)
		case IntentNo:
			draft.HasEnglishCodes = false
			draft.EnglishCodesCount = 0
			b.advance(ctx, msg, draft, eventEnglishNo)
		default:
			b.reply(ctx, msg.ChatID, textChooseYesNo, KeyboardYesNo)
		}

	case StepEnglishCodesCount:
		n, ok := ParseDigits(text)
		if !ok {
			b.reply(ctx, msg.ChatID, textDigitsOnly, KeyboardNone)
			return
		}

		draft.EnglishCodesCount = n
		b.advance(ctx, msg, draft, eventNext)

	case StepNotes:
		draft.Notes = text
		b.finalize(ctx, msg, draft)

	default:
		b.logger.Warn("unknown form step", zap.String("step", string(step)), zap.Int64("user_id", msg.From.ID))
		b.sessions.Destroy(msg.From.ID)
		b.reply(ctx, msg.ChatID, textUnrecognized, KeyboardMain)
	}
}

func (b *BotService) advance(ctx context.Context, msg Message, draft *Draft, event string) {
	if err := draft.fire(ctx, event); err != nil {
		b.logger.Error("form transition failed", zap.Int64("user_id", msg.From.ID), zap.Error(err))
		b.sessions.Destroy(msg.From.ID)
		b.reply(ctx, msg.ChatID, textGenericFailed, KeyboardMain)
		return
	}

	b.prompt(ctx, msg.ChatID, draft.Step())
}

// finalize persists the draft and posts it for moderation. The draft is gone
// either way; a failed post leaves the stored submission pending.
func (b *BotService) finalize(ctx context.Context, msg Message, draft *Draft) {
	b.sessions.Destroy(msg.From.ID)

	now := b.now()
	id := fmt.Sprintf("REQ_%d_%d", msg.From.ID, now.Unix())

	sub := draft.submission()
	sub.SubmitterID = msg.From.ID
	sub.SubmitterName = displayName(msg.From, unknownSubmitter)
	if msg.From.Username != "" {
		sub.SubmitterHandle = pointer.ToString("@" + msg.From.Username)
	}
	sub.Timestamp = now.Format(TimestampLayout)

	if err := b.repo.Create(ctx, id, sub); err != nil {
		b.logger.Error("failed to save submission", zap.String("request_id", id), zap.Error(err))
		b.reply(ctx, msg.ChatID, textSubmitFailed, KeyboardMain)
		return
	}

	_, err := b.gateway.PostModerationNotice(ctx, NoticeText(sub, headerNewNotice), ApproveToken(id), RejectToken(id))
	if err != nil {
		b.logger.Error("failed to post submission to channel",
			zap.String("request_id", id), zap.Int64("user_id", msg.From.ID), zap.Error(err))
		b.reply(ctx, msg.ChatID, textSubmitFailed, KeyboardMain)
		return
	}

	b.logger.Info("submission posted",
		zap.String("request_id", id),
		zap.Int64("user_id", msg.From.ID),
		zap.Int("codes_count", sub.CodesCount),
		zap.Int("english_codes_count", sub.EnglishCodesCount),
	)

	b.reply(ctx, msg.ChatID, textSubmitted, KeyboardMain)
}
