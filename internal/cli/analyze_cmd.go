package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nbelkacem/gestia/internal/analysis"
	"github.com/nbelkacem/gestia/internal/chat"
	"github.com/nbelkacem/gestia/internal/service"
)

// resolveProject finds the user's project whose title contains the joined
// arguments, case-insensitively.
func resolveProject(cmd *cobra.Command, app *App, args []string) (*service.ProjectOverview, error) {
	needle := strings.Join(args, " ")

	overviews, err := app.Projects.Overviews(cmd.Context(), app.UserID)
	if err != nil {
		return nil, err
	}
	titles := make([]string, len(overviews))
	for i, ov := range overviews {
		titles[i] = ov.Project.Title
	}
	if i, ok := chat.MatchProjectTitle(needle, titles); ok {
		return &overviews[i], nil
	}
	return nil, fmt.Errorf("project not found: %q", needle)
}

func newAnalyzeCmd(app *App) *cobra.Command {
	var single bool

	cmd := &cobra.Command{
		Use:   "analyze NAME",
		Short: "Generate and persist an AI breakdown for a project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ov, err := resolveProject(cmd, app, args)
			if err != nil {
				return err
			}

			snap, err := app.Projects.Snapshot(cmd.Context(), ov.Project.ID)
			if err != nil {
				return err
			}

			mode := analysis.ModeFullProject
			if single {
				mode = analysis.ModeSingleActivity
			}

			result := app.Pipeline.Analyze(cmd.Context(), snap, snap.Progress(), mode)
			stats, err := app.Projects.Materialize(cmd.Context(), ov.Project.ID, result.Breakdown)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %d activities and %d tasks for %q\n",
				stats.Activities, stats.Tasks, ov.Project.Title)
			if result.UsedFallback {
				fmt.Fprintln(cmd.OutOrStdout(), "Model unavailable; the standard plan template was applied.")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&single, "single-activity", false, "Generate exactly one new activity instead of a full plan")
	return cmd
}
