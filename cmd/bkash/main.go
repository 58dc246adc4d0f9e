// Command bkash exercises the client against the gateway. Credentials
// and tuning come from BKASH_* environment variables.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sabitahmadumid/bkash-go/bkash"
	"github.com/sabitahmadumid/bkash-go/config"
	"github.com/sabitahmadumid/bkash-go/logging"
	"github.com/sabitahmadumid/bkash-go/storage/sqlite"
)

var dbPath string

func main() {
	root := &cobra.Command{
		Use:           "bkash",
		Short:         "Client for the bKash tokenized checkout API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite file for the transaction log (empty disables logging)")

	root.AddCommand(
		createAgreementCmd(),
		executeAgreementCmd(),
		queryAgreementCmd(),
		cancelAgreementCmd(),
		createPaymentCmd(),
		executePaymentCmd(),
		queryPaymentCmd(),
		refundCmd(),
		refundStatusCmd(),
		searchCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newClient() (*bkash.Client, error) {
	cfg := config.FromEnv()

	zl, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	opts := []bkash.Option{bkash.WithLogger(logging.NewZap(zl))}

	if dbPath != "" {
		db, err := sqlite.Open(dbPath)
		if err != nil {
			return nil, fmt.Errorf("open transaction log: %w", err)
		}
		if err := sqlite.RunMigrations(db); err != nil {
			return nil, fmt.Errorf("migrate transaction log: %w", err)
		}
		opts = append(opts, bkash.WithTransactionStore(sqlite.NewTransactionRepository(db)))
	}

	return bkash.New(cfg, opts...), nil
}

func printPayload(raw any) error {
	out, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
