// Package chat classifies raw user messages into typed actions and produces
// a reply for each one. Classification is total: every message maps to
// exactly one action, in a fixed priority order.
package chat

// Turn is one prior exchange supplied by the caller. The core keeps no
// conversation state of its own.
type Turn struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

// Action is the typed result of classifying one message.
type Action interface {
	isAction()
}

// Command is a sigil-prefixed message. Name is the lower-cased first token
// without the sigil; Args is everything after the first space. Unknown
// commands are data, not errors: Known is false and Name carries the
// original token.
type Command struct {
	Name  string
	Args  string
	Known bool
}

// ActivityIntent is a free-form message asking to create an activity.
// Project resolution is deferred to the handler.
type ActivityIntent struct {
	RawText string
}

// CasualCategory names one family of casual-conversation keywords.
type CasualCategory string

const (
	CasualGreeting     CasualCategory = "greeting"
	CasualWellbeing    CasualCategory = "wellbeing"
	CasualThanks       CasualCategory = "thanks"
	CasualFarewell     CasualCategory = "farewell"
	CasualIntroduction CasualCategory = "introduction"
)

// Casual is a greeting-like message answered with a canned reply.
type Casual struct {
	Category CasualCategory
}

// GeneralChat is everything else: the message is forwarded to the model
// with the serialized prior context, no structured-output requirement.
type GeneralChat struct {
	Prompt string
}

func (Command) isAction()        {}
func (ActivityIntent) isAction() {}
func (Casual) isAction()         {}
func (GeneralChat) isAction()    {}
