package chat

import (
	"fmt"
	"strings"

	"github.com/nbelkacem/gestia/internal/domain"
)

// Canned replies are plain text. Rendering (terminal, web) is left to the
// caller.

// CasualReply returns the fixed reply for a casual category.
func CasualReply(category CasualCategory, sigil string) string {
	switch category {
	case CasualGreeting:
		return "👋 Bonjour ! Je suis votre assistant IA pour la gestion de projets.\n" +
			"Tapez " + sigil + "help pour découvrir les commandes disponibles."
	case CasualWellbeing:
		return "😊 Je vais très bien, merci ! Je suis prêt à vous aider avec vos projets.\n" +
			"Que souhaitez-vous faire ?"
	case CasualThanks:
		return "😊 De rien ! N'hésitez pas si vous avez besoin d'aide avec vos projets."
	case CasualFarewell:
		return "👋 Au revoir ! Passez une excellente journée. À bientôt !"
	case CasualIntroduction:
		return "🤝 Enchanté également ! Je suis ravi de vous aider avec vos projets de gestion."
	}
	return "💬 Ravi de discuter avec vous ! Je suis là pour vous aider avec la gestion de vos projets.\n" +
		"Que puis-je faire pour vous ?"
}

// HelpReply returns the command catalogue.
func HelpReply(sigil string) string {
	var b strings.Builder
	b.WriteString("📚 Commandes disponibles\n\n")
	b.WriteString("🎯 Gestion des projets\n")
	fmt.Fprintf(&b, "  %screate-project [titre] | [description] | [date_debut] | [date_fin]\n", sigil)
	b.WriteString("      Créer un nouveau projet\n")
	fmt.Fprintf(&b, "  %screate-activity [nom du projet]\n", sigil)
	b.WriteString("      Générer une activité par IA pour un projet\n")
	fmt.Fprintf(&b, "  %slist-projects\n", sigil)
	b.WriteString("      Lister tous vos projets\n")
	fmt.Fprintf(&b, "  %sproject-status [nom]\n", sigil)
	b.WriteString("      Voir le statut du projet\n")
	return b.String()
}

// UnknownCommandReply is returned for a sigil-prefixed message whose name is
// not in the registry.
func UnknownCommandReply(name, sigil string) string {
	return fmt.Sprintf("Commande inconnue : %s%s\nUtilisez %shelp pour voir les commandes disponibles.", sigil, name, sigil)
}

// ProcessingErrorReply is the canned reply when a model call fails. Raw
// errors never reach the user.
func ProcessingErrorReply(sigil string) string {
	return "Je n'ai pas pu traiter votre demande.\n" +
		"Utilisez " + sigil + "help pour voir les commandes disponibles."
}

// StatusIcon maps a project status to its display icon.
func StatusIcon(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectCompleted:
		return "✅"
	case domain.ProjectInProgress:
		return "🔄"
	case domain.ProjectPending:
		return "⏳"
	}
	return "📌"
}

// StatusLabel maps a project status to its French label.
func StatusLabel(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectCompleted:
		return "Terminé"
	case domain.ProjectInProgress:
		return "En cours"
	case domain.ProjectPending:
		return "En attente"
	}
	return string(status)
}
