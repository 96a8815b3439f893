package chat

import "strings"

// DefaultSigil marks a message as a command when it is the first character.
const DefaultSigil = "/"

// Router classifies raw chat messages. It is a pure function of its inputs
// and safe for concurrent use.
type Router struct {
	sigil string
}

// NewRouter creates a Router using the given command sigil. An empty sigil
// falls back to the default.
func NewRouter(sigil string) *Router {
	if sigil == "" {
		sigil = DefaultSigil
	}
	return &Router{sigil: sigil}
}

// Sigil returns the configured command sigil.
func (r *Router) Sigil() string { return r.sigil }

// Classify maps one raw message to an Action. The stage order is fixed:
// command, then activity intent, then casual conversation, then general
// chat. A message matching several stages is governed by the first one.
// Classification never fails.
func (r *Router) Classify(raw string, context []Turn) Action {
	message := strings.TrimSpace(raw)

	if strings.HasPrefix(message, r.sigil) {
		return r.parseCommand(message)
	}

	lower := strings.ToLower(message)

	for _, kw := range activityKeywords {
		if strings.Contains(lower, kw) {
			return ActivityIntent{RawText: message}
		}
	}

	for _, cat := range casualCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				return Casual{Category: cat.category}
			}
		}
	}

	return GeneralChat{Prompt: BuildChatPrompt(message, context)}
}

// parseCommand splits a sigil-prefixed message into name and args at the
// first space. Unknown names still produce a Command action.
func (r *Router) parseCommand(message string) Command {
	body := strings.TrimPrefix(message, r.sigil)
	name, args, _ := strings.Cut(body, " ")
	name = strings.ToLower(name)
	return Command{
		Name:  name,
		Args:  strings.TrimSpace(args),
		Known: knownCommands[name],
	}
}

// MatchProjectTitle finds the first project whose title occurs in the
// message, case-insensitively. Returns the index and true, or -1 and false
// when nothing matches; no match is a defined result, not a failure.
func MatchProjectTitle(message string, titles []string) (int, bool) {
	lower := strings.ToLower(message)
	for i, title := range titles {
		if title == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(title)) {
			return i, true
		}
	}
	return -1, false
}
