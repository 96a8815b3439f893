package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nbelkacem/gestia/internal/chat"
)

var (
	userStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [message]",
		Short: "Chat with the assistant",
		Long:  "Without arguments, opens the interactive chat shell. With a message, answers once and exits.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				reply := app.Responder.Respond(cmd.Context(), app.UserID, strings.Join(args, " "), nil)
				fmt.Fprintln(cmd.OutOrStdout(), reply)
				return nil
			}

			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("stdin is not a terminal; pass the message as an argument")
			}

			model := newChatModel(app)
			_, err := tea.NewProgram(model).Run()
			return err
		},
	}
}

// chatModel is the interactive chat shell. It keeps the turn history the
// core itself is stateless about.
type chatModel struct {
	app   *App
	input textinput.Model

	lines []string
	turns []chat.Turn
}

func newChatModel(app *App) *chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500

	return &chatModel{
		app: app,
		lines: []string{
			botStyle.Render("Assistant de gestion de projets."),
			dimStyle.Render(fmt.Sprintf("Tapez %shelp pour les commandes, Esc pour quitter.", app.Config.Sigil)),
		},
	}
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			message := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if message == "" {
				return m, nil
			}
			m.send(message)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) send(message string) {
	reply := m.app.Responder.Respond(context.Background(), m.app.UserID, message, m.turns)

	m.lines = append(m.lines,
		userStyle.Render("Vous: ")+message,
		botStyle.Render(reply),
	)
	m.turns = append(m.turns, chat.Turn{User: message, Bot: reply})

	// The prompt only carries a bounded window of history.
	const maxTurns = 10
	if len(m.turns) > maxTurns {
		m.turns = m.turns[len(m.turns)-maxTurns:]
	}
}

func (m *chatModel) View() string {
	var b strings.Builder
	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(userStyle.Render("chat") + dimStyle.Render("> "))
	b.WriteString(m.input.View())
	return b.String()
}
