package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mindgrid/internal/httpapi"
	"github.com/vovakirdan/mindgrid/internal/leaderboard"
	"github.com/vovakirdan/mindgrid/internal/storage"
)

var flagHTTPAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP leaderboard API",
	Long: `Start an HTTP server exposing the leaderboard and difficulty tables.

Endpoints:
  GET  /healthz
  GET  /api/variants
  GET  /api/leaderboard?variant=&limit=
  POST /api/leaderboard   {"run_id", "name", "score", "level", "variant"}
  GET  /api/levels/:level?variant=

The submission policy (minimum score, name filter) comes from the tuning
of --variant.

Examples:
  mindgrid api
  mindgrid api --http 127.0.0.1:9000 --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP listen address (host:port)")
}

func runAPI(_ *cobra.Command, _ []string) {
	checkVariant(flagVariant)
	logger := newLogger("mindgrid-api")
	gin.SetMode(gin.ReleaseMode)

	engine, err := engineFor(flagVariant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	policy, err := leaderboard.NewPolicy(engine.Config().Leaderboard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building leaderboard policy: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	server := httpapi.NewServer(httpapi.Config{
		Address:        flagHTTPAddr,
		DefaultVariant: flagVariant,
		Board:          leaderboard.NewService(policy, store, logger),
		Engines:        engineFor,
		Logger:         logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("server error", "error", err)
		store.Close()
		os.Exit(1)
	}
}
