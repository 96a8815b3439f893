// Package cli wires the gestia commands: the HTTP server, the interactive
// chat shell and the project management subcommands.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nbelkacem/gestia/internal/analysis"
	"github.com/nbelkacem/gestia/internal/chat"
	"github.com/nbelkacem/gestia/internal/config"
	"github.com/nbelkacem/gestia/internal/llm"
	"github.com/nbelkacem/gestia/internal/service"
)

// App holds references to everything the CLI commands need.
type App struct {
	Config    *config.Config
	Projects  service.ProjectService
	Responder *chat.Responder
	Pipeline  *analysis.Pipeline
	Client    llm.Client
	Logger    *slog.Logger

	// UserID identifies the local user for ownership checks.
	UserID string

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "gestia" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "gestia",
		Short: "AI-assisted project management",
	}

	root.AddCommand(
		newServeCmd(app),
		newChatCmd(app),
		newProjectCmd(app),
		newAnalyzeCmd(app),
		newLLMCmd(app),
	)

	return root
}
