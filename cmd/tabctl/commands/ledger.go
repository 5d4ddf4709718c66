package commands

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmynk/tabsplit/internal/auth"
	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/money"
	"github.com/mmynk/tabsplit/internal/notify"
	"github.com/mmynk/tabsplit/internal/service"
	"github.com/mmynk/tabsplit/internal/storage/sqlite"
)

// balances <tab-id>: print a tab's ledger from a database file.
func balancesCmd() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "balances <tab-id>",
		Short: "Print net balances and suggested transfers for a tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = cfg.DBPath
			}
			store, err := sqlite.New(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			tab, err := store.GetTab(ctx, args[0])
			if err != nil {
				return err
			}
			ledger := service.NewLedger(store, nil, nil, cfg.BalanceFetchConcurrency)
			balances, err := ledger.Balances(ctx, tab)
			if err != nil {
				return err
			}

			names := make(map[string]string, len(tab.Participants))
			for _, p := range tab.Participants {
				names[p.ID] = p.DisplayName
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", tab.Name)
			w := newTable(out)
			fmt.Fprintln(w, "PARTICIPANT\tPAID\tOWED\tNET\tSTATUS")
			for _, b := range balances {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					nameOr(names, b.ParticipantID),
					money.FormatCents(b.PaidCents),
					money.FormatCents(b.OwedCents),
					money.FormatCents(b.NetCents),
					b.Status(),
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			transfers := calculator.SuggestTransfers(balances)
			if len(transfers) == 0 {
				fmt.Fprintln(out, "\nAll settled.")
				return nil
			}
			fmt.Fprintln(out)
			for _, t := range transfers {
				fmt.Fprintf(out, "%s pays %s %s\n",
					nameOr(names, t.FromID), nameOr(names, t.ToID), money.FormatCents(t.AmountCents))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database file (default $DB_PATH)")
	return cmd
}

func nameOr(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return id
}

// token <tab-id> <participant-id>: mint a guest token for local testing.
func tokenCmd() *cobra.Command {
	var secret string
	cmd := &cobra.Command{
		Use:   "token <tab-id> <participant-id>",
		Short: "Mint a guest token for a participant of a tab",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = cfg.JWTSecret
			}
			if secret == "" {
				return fmt.Errorf("no secret: set JWT_SECRET or pass --secret")
			}
			token, err := auth.NewJWTManager(secret, cfg.TokenTTL).Generate(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "signing secret (default $JWT_SECRET)")
	return cmd
}

// watch: print balance snapshots from the reminder queue as they arrive.
func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow balance snapshots on the AMQP queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.AMQPURL == "" {
				return fmt.Errorf("AMQP_URL is not set")
			}
			consumer, err := notify.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
			if err != nil {
				return err
			}
			defer consumer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			enc := json.NewEncoder(cmd.OutOrStdout())
			err = consumer.ConsumeBalances(ctx, func(msg *notify.BalanceSnapshotMessage) error {
				return enc.Encode(msg)
			})
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
}
