package bot

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gratefultolord/prep_requests_bot/internal/config"
	"github.com/gratefultolord/prep_requests_bot/internal/db"
)

const (
	adminID     int64 = 100
	applicantID int64 = 200
	strangerID  int64 = 999
)

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

type sentReply struct {
	chatID   int64
	text     string
	keyboard Keyboard
}

type postedNotice struct {
	text    string
	approve string
	reject  string
}

type editedMessage struct {
	handle MessageHandle
	text   string
	remove bool
}

type actorAck struct {
	actionID  string
	text      string
	prominent bool
}

type fakeGateway struct {
	replies []sentReply
	posts   []postedNotice
	edits   []editedMessage
	acks    []actorAck

	postErr error
	editErr error
}

func (g *fakeGateway) PostModerationNotice(_ context.Context, text, approveToken, rejectToken string) (MessageHandle, error) {
	if g.postErr != nil {
		return MessageHandle{}, g.postErr
	}

	g.posts = append(g.posts, postedNotice{text: text, approve: approveToken, reject: rejectToken})
	return MessageHandle{ChatID: -1001, MessageID: len(g.posts)}, nil
}

func (g *fakeGateway) EditMessage(_ context.Context, handle MessageHandle, text string, removeControls bool) error {
	if g.editErr != nil {
		return g.editErr
	}

	g.edits = append(g.edits, editedMessage{handle: handle, text: text, remove: removeControls})
	return nil
}

func (g *fakeGateway) RespondToApplicant(_ context.Context, chatID int64, text string, keyboard Keyboard) error {
	g.replies = append(g.replies, sentReply{chatID: chatID, text: text, keyboard: keyboard})
	return nil
}

func (g *fakeGateway) AcknowledgeActor(_ context.Context, actionID, text string, prominent bool) error {
	g.acks = append(g.acks, actorAck{actionID: actionID, text: text, prominent: prominent})
	return nil
}

func (g *fakeGateway) lastReply(t *testing.T) sentReply {
	t.Helper()
	require.NotEmpty(t, g.replies)
	return g.replies[len(g.replies)-1]
}

func (g *fakeGateway) lastAck(t *testing.T) actorAck {
	t.Helper()
	require.NotEmpty(t, g.acks)
	return g.acks[len(g.acks)-1]
}

type testEnv struct {
	bot     *BotService
	gateway *fakeGateway
	repo    *db.SubmissionRepository
	path    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	path := filepath.Join(t.TempDir(), "database.json")
	store, err := db.NewFileStore(path, zap.NewNop())
	require.NoError(t, err)

	repo := db.NewSubmissionRepository(store)
	gateway := &fakeGateway{}
	cfg := &config.Config{
		AdminID:             adminID,
		AllowedUsers:        map[int64]bool{adminID: true, applicantID: true},
		WelcomeMessage:      "welcome",
		UnauthorizedMessage: "unauthorized",
	}

	b := New(gateway, repo, cfg, zap.NewNop())
	b.now = func() time.Time { return fixedNow }

	return &testEnv{bot: b, gateway: gateway, repo: repo, path: path}
}

func (e *testEnv) send(userID int64, text string) {
	msg := Message{
		ChatID: userID,
		From:   Sender{ID: userID, FullName: "Sara Applicant", Username: "sara"},
		Text:   text,
	}
	if strings.HasPrefix(text, "/") {
		msg.Command = strings.TrimPrefix(text, "/")
	}

	e.bot.HandleMessage(context.Background(), msg)
}

func (e *testEnv) tap(data string) {
	e.bot.HandleAction(context.Background(), Action{
		ID:      "cb-1",
		From:    Sender{ID: adminID, FullName: "Omar Moderator"},
		Data:    data,
		Message: MessageHandle{ChatID: -1001, MessageID: 1},
	})
}

func sampleInputs() []string {
	return []string{
		"Ali Hassan",
		"12345",
		"@ali",
		"DEV-1",
		"Math, Physics",
		"3",
		ButtonYes,
		"1",
		"none",
	}
}

// submit runs a whole form and returns the id it was stored under.
func (e *testEnv) submit(t *testing.T, inputs []string) string {
	t.Helper()

	e.send(applicantID, ButtonNewRequest)
	for _, in := range inputs {
		e.send(applicantID, in)
	}

	require.NotEmpty(t, e.gateway.posts)
	return strings.TrimPrefix(e.gateway.posts[len(e.gateway.posts)-1].approve, approvePrefix)
}
