package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/nbelkacem/gestia/internal/analysis"
	"github.com/nbelkacem/gestia/internal/chat"
	"github.com/nbelkacem/gestia/internal/cli"
	"github.com/nbelkacem/gestia/internal/config"
	"github.com/nbelkacem/gestia/internal/db"
	"github.com/nbelkacem/gestia/internal/llm"
	"github.com/nbelkacem/gestia/internal/repository"
	"github.com/nbelkacem/gestia/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("GESTIA_CONFIG"))
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	projectRepo := repository.NewSQLiteProjectRepo(database)
	teamRepo := repository.NewSQLiteTeamRepo(database)
	activityRepo := repository.NewSQLiteActivityRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	projects := service.NewProjectService(
		projectRepo, teamRepo, activityRepo, taskRepo, uow,
		service.NewLogUseCaseObserver(logger),
	)

	var observer llm.Observer = llm.NoopObserver{}
	if cfg.LLM.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}
	client := llm.NewGeminiClient(cfg.LLM, observer)

	pipeline := analysis.NewPipeline(client, logger)
	router := chat.NewRouter(cfg.Sigil)
	responder := chat.NewResponder(router, projects, pipeline, client, logger)

	userID := os.Getenv("GESTIA_USER")
	if userID == "" {
		userID = "local"
	}

	app := &cli.App{
		Config:    cfg,
		Projects:  projects,
		Responder: responder,
		Pipeline:  pipeline,
		Client:    client,
		Logger:    logger,
		UserID:    userID,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}
