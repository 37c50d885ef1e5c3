package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"launchwatch/internal/core/config"
	"launchwatch/internal/infra/storage/postgres"
)

var pruneOlderThan time.Duration

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete ledger entries older than the given age",
	Run:   runPrune,
}

func init() {
	pruneCmd.Flags().DurationVar(&pruneOlderThan, "older-than", 7*24*time.Hour, "age threshold")
	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = db.Close()
	}()

	ledger := postgres.NewLedgerRepo(db)
	pruned, err := ledger.Prune(ctx, time.Now().Add(-pruneOlderThan))
	if err != nil {
		slog.Error("Failed to prune ledger", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Pruned %d ledger entries older than %s\n", pruned, pruneOlderThan)
}
