package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"launchwatch/internal/core/config"
	"launchwatch/internal/infra/storage/postgres"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show watched wallets and ledger size",
	Run:   runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) {
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
	count, err := ledger.Count(ctx)
	if err != nil {
		slog.Error("Failed to count ledger entries", "error", err)
		os.Exit(1)
	}
	fmt.Printf("Ledger entries: %d\n\n", count)

	wallets := postgres.NewWalletRepo(db)
	watches, err := wallets.GetAll(ctx)
	if err != nil {
		slog.Error("Failed to load wallet watches", "error", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "WALLET\tCHAT\tLAST CHECKED")
	for _, watch := range watches {
		last := "never"
		if !watch.LastCheckedAt.IsZero() {
			last = watch.LastCheckedAt.Format("2006-01-02 15:04:05")
		}
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", watch.Address, watch.ChatID, last)
	}
	_ = w.Flush()
}
