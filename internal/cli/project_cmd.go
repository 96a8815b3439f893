package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nbelkacem/gestia/internal/chat"
	"github.com/nbelkacem/gestia/internal/service"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectNewCmd(app),
		newProjectStatusCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects with their progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			overviews, err := app.Projects.Overviews(cmd.Context(), app.UserID)
			if err != nil {
				return err
			}
			if len(overviews) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			for _, ov := range overviews {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-30s %d activities, %d/%d tasks, %d%%\n",
					chat.StatusIcon(ov.Project.Status), ov.Project.Title,
					ov.Activities, ov.DoneTasks, ov.TotalTasks, ov.Progress)
			}
			return nil
		},
	}
}

func newProjectNewCmd(app *App) *cobra.Command {
	var title, description, start, due string

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new project with its team",
		Long:  "Without flags, opens an interactive form. Dates default to today and today+30d.",
		RunE: func(cmd *cobra.Command, args []string) error {
			interactive := title == "" && app.IsInteractive != nil && app.IsInteractive()
			if interactive {
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().
							Title("Title").
							Value(&title).
							Validate(func(s string) error {
								if s == "" {
									return fmt.Errorf("title is required")
								}
								return nil
							}),
						huh.NewInput().
							Title("Description (optional)").
							Value(&description),
						huh.NewInput().
							Title("Start date (YYYY-MM-DD, blank for today)").
							Placeholder("2026-01-10").
							Value(&start).
							Validate(validateOptionalDate),
						huh.NewInput().
							Title("Due date (YYYY-MM-DD, blank for +30 days)").
							Placeholder("2026-03-01").
							Value(&due).
							Validate(validateOptionalDate),
					),
				)
				if err := form.Run(); err != nil {
					return err
				}
			}
			if title == "" {
				return fmt.Errorf("title is required")
			}

			now := time.Now().UTC()
			startDate := now
			if start != "" {
				d, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
				startDate = d
			}
			dueDate := startDate.AddDate(0, 0, 30)
			if due != "" {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q: %w", due, err)
				}
				dueDate = d
			}
			if startDate.After(dueDate) {
				return fmt.Errorf("due date must be after start date")
			}

			params := service.CreateProjectParams{
				OwnerID:   app.UserID,
				Title:     title,
				StartDate: startDate,
				DueDate:   dueDate,
			}
			if description != "" {
				params.Description = &description
			}

			project, team, err := app.Projects.CreateWithTeam(cmd.Context(), params)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %q (%s) with team %q\n",
				project.Title, chat.StatusLabel(project.Status), team.Name)
			return nil
		},
	}

	addProjectFlags(cmd.Flags(), &title, &description, &start, &due)

	return cmd
}

func addProjectFlags(flags *pflag.FlagSet, title, description, start, due *string) {
	flags.StringVar(title, "title", "", "Project title")
	flags.StringVar(description, "description", "", "Project description")
	flags.StringVar(start, "start", "", "Start date (YYYY-MM-DD)")
	flags.StringVar(due, "due", "", "Due date (YYYY-MM-DD)")
}

func newProjectStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status NAME",
		Short: "Show project progress",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ov, err := resolveProject(cmd, app, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", chat.StatusIcon(ov.Project.Status), ov.Project.Title)
			fmt.Fprintf(out, "Status:     %s\n", ov.Project.Status)
			fmt.Fprintf(out, "Activities: %d\n", ov.Activities)
			fmt.Fprintf(out, "Tasks:      %d/%d done\n", ov.DoneTasks, ov.TotalTasks)
			fmt.Fprintf(out, "Progress:   %d%%\n", ov.Progress)
			if ov.Project.DueDate != nil {
				fmt.Fprintf(out, "Due:        %s\n", ov.Project.DueDate.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("expected YYYY-MM-DD")
	}
	return nil
}
