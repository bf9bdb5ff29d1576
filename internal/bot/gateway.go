package bot

import "context"

type Keyboard int

const (
	// KeyboardNone leaves whatever keyboard the applicant has.
	KeyboardNone Keyboard = iota
	KeyboardMain
	KeyboardYesNo
	KeyboardCancel
)

// MessageHandle addresses a message that was posted earlier.
type MessageHandle struct {
	ChatID    int64
	MessageID int
}

// Gateway is everything the bot needs from the chat transport.
type Gateway interface {
	PostModerationNotice(ctx context.Context, text, approveToken, rejectToken string) (MessageHandle, error)
	EditMessage(ctx context.Context, handle MessageHandle, text string, removeControls bool) error
	RespondToApplicant(ctx context.Context, chatID int64, text string, keyboard Keyboard) error
	AcknowledgeActor(ctx context.Context, actionID string, text string, prominent bool) error
}

type Sender struct {
	ID       int64
	FullName string
	Username string
}

// Message is one inbound applicant message. Command is the bot command
// without the leading slash, empty for plain text.
type Message struct {
	ChatID  int64
	From    Sender
	Text    string
	Command string
}

// Action is a tap on a moderation control.
type Action struct {
	ID      string
	From    Sender
	Data    string
	Message MessageHandle
}
