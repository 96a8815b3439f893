package chat

import (
	"fmt"
	"strings"
)

// BuildChatPrompt renders the conversational prompt for general chat: the
// assistant persona, the serialized prior context (two lines per turn) and
// the user message. Deterministic for identical inputs.
func BuildChatPrompt(message string, context []Turn) string {
	var b strings.Builder

	b.WriteString("Tu es un assistant IA spécialisé dans la gestion de projet. Réponds de manière helpful et professionnelle.\n\n")

	if len(context) > 0 {
		b.WriteString("Contexte de la conversation:\n")
		for _, turn := range context {
			fmt.Fprintf(&b, "- Utilisateur: %s\n", turn.User)
			fmt.Fprintf(&b, "- IA: %s\n", turn.Bot)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Message utilisateur: %s\n\n", message)
	b.WriteString("Réponds de manière concise et utile. Si l'utilisateur demande quelque chose en rapport avec la gestion de projet, fournis des conseils pratiques.")

	return b.String()
}
