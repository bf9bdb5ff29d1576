package bot

import "strings"

type Intent int

const (
	IntentText Intent = iota
	IntentStart
	IntentAdmin
	IntentCancel
	IntentNewRequest
	IntentYes
	IntentNo
)

const (
	CommandStart = "start"
	CommandAdmin = "admin"
)

// ParseIntent maps the literal buttons and commands to an intent. Anything
// else is IntentText and is read as step input.
func ParseIntent(msg Message) Intent {
	switch msg.Command {
	case CommandStart:
		return IntentStart
	case CommandAdmin:
		return IntentAdmin
	}

	switch strings.TrimSpace(msg.Text) {
	case ButtonCancel:
		return IntentCancel
	case ButtonNewRequest:
		return IntentNewRequest
	case ButtonYes:
		return IntentYes
	case ButtonNo:
		return IntentNo
	}

	return IntentText
}
