package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aekeus/ralph-test/internal/env"
	"github.com/aekeus/ralph-test/internal/export"
	"github.com/aekeus/ralph-test/internal/subtask"
	"github.com/aekeus/ralph-test/internal/tag"
	"github.com/aekeus/ralph-test/internal/todo"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	env.Init()

	ctx := context.Background()

	cfg := config{
		addr:              env.GetString("API_PORT", ":3001"),
		requestTimeoutSec: env.GetInt("REQUEST_TIMEOUT_SECONDS", 60),
		db: dbConfig{
			dsn: env.GetString("GOOSE_DBSTRING", "postgresql://postgres@localhost:5432/ralph_todos"),
		},
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := pgxpool.New(ctx, cfg.db.dsn)
	if err != nil {
		slog.Error("cannot create db pool", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		slog.Error("cannot connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connected")

	app := &application{
		config:         cfg,
		db:             db,
		todoService:    todo.NewService(todo.NewRepository(db)),
		subtaskService: subtask.NewService(subtask.NewRepository(db)),
		tagService:     tag.NewService(tag.NewRepository(db)),
		exportService:  export.NewService(export.NewRepository(db)),
	}

	if err := app.run(ctx, app.mount()); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
