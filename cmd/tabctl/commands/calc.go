package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/money"
)

// parse <amount>: print the amount in cents.
func parseCmd() *cobra.Command {
	var allowZero bool
	cmd := &cobra.Command{
		Use:   "parse <amount>",
		Short: "Parse a decimal amount into cents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cents, err := money.ParseCents(args[0], allowZero)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", cents, money.FormatCents(cents))
			return nil
		},
	}
	cmd.Flags().BoolVar(&allowZero, "allow-zero", false, "accept 0 as a valid amount")
	return cmd
}

// allocate <total> <id=weight>...: largest remainder allocation.
func allocateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "allocate <total> <id=weight>...",
		Short: "Distribute a total proportionally to weights",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := money.ParseCents(args[0], true)
			if err != nil {
				return fmt.Errorf("total: %w", err)
			}
			pairs, err := parsePairs(args[1:])
			if err != nil {
				return err
			}

			buckets := make([]calculator.Bucket, len(pairs))
			for i, p := range pairs {
				buckets[i] = calculator.Bucket{ID: p.id, Weight: p.cents}
			}
			shares := calculator.Allocate(buckets, total)

			w := newTable(cmd.OutOrStdout())
			for i, b := range buckets {
				fmt.Fprintf(w, "%s\t%s\n", b.ID, money.FormatCents(shares[i]))
			}
			return w.Flush()
		},
	}
}

// even <total> <id>...: equal split, extra cents to the last ids.
func evenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "even <total> <id>...",
		Short: "Split a total evenly",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := money.ParseCents(args[0], false)
			if err != nil {
				return fmt.Errorf("total: %w", err)
			}
			splits, err := calculator.EvenBreakdown(total, args[1:])
			if err != nil {
				return err
			}
			return printSplits(cmd.OutOrStdout(), splits)
		},
	}
}

// custom <id=amount>...: custom bases plus proportional tax and tip.
func customCmd() *cobra.Command {
	var tax, tip string
	cmd := &cobra.Command{
		Use:   "custom <id=amount>...",
		Short: "Split tax and tip over custom amounts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extras, err := parseExtras(tax, "", tip)
			if err != nil {
				return err
			}
			pairs, err := parsePairs(args)
			if err != nil {
				return err
			}

			bases := make([]calculator.BaseAmount, len(pairs))
			amounts := make([]int64, len(pairs))
			for i, p := range pairs {
				bases[i] = calculator.BaseAmount{ParticipantID: p.id, BaseCents: p.cents}
				amounts[i] = p.cents
			}
			if err := checkTotal(extras, amounts...); err != nil {
				return err
			}
			return printSplits(cmd.OutOrStdout(), calculator.CustomBreakdown(bases, extras.TaxCents, extras.TipCents))
		},
	}
	cmd.Flags().StringVar(&tax, "tax", "", "tax amount")
	cmd.Flags().StringVar(&tip, "tip", "", "tip amount")
	return cmd
}

// claim <description=amount:id,id>...: itemized receipt split.
func claimCmd() *cobra.Command {
	var tax, fee, tip, policy string
	var participants []string
	cmd := &cobra.Command{
		Use:     "claim <description=amount:id,id>...",
		Short:   "Split an itemized receipt by who claimed each item",
		Example: `  tabctl claim "Pizza=30.00:alice,bob" "Salad=10.00:carol" --tax 4 --tip 6`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extras, err := parseExtras(tax, fee, tip)
			if err != nil {
				return err
			}
			remainder, err := calculator.ParseRemainderPolicy(policy)
			if err != nil {
				return err
			}
			items, err := parseItems(args)
			if err != nil {
				return err
			}
			amounts := make([]int64, len(items))
			for i, item := range items {
				amounts[i] = item.AmountCents
			}
			if err := checkTotal(extras, amounts...); err != nil {
				return err
			}

			result, err := calculator.CalculateItemClaims(items, participants, extras, remainder)
			if err != nil {
				return err
			}
			if err := printSplits(cmd.OutOrStdout(), result.Splits); err != nil {
				return err
			}
			if result.UnassignedCents > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "unassigned\t%s\n", money.FormatCents(result.UnassignedCents))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tax, "tax", "", "tax amount")
	cmd.Flags().StringVar(&fee, "fee", "", "service or delivery fee")
	cmd.Flags().StringVar(&tip, "tip", "", "tip amount")
	cmd.Flags().StringVar(&policy, "remainder", string(calculator.RemainderToClaimants), "item remainder policy (claimants or leak)")
	cmd.Flags().StringSliceVar(&participants, "participants", nil, "participant ids (default: everyone who claimed an item)")
	return cmd
}

// checkTotal rejects receipts whose grand total doesn't fit in int64 cents.
func checkTotal(extras calculator.Extras, amounts ...int64) error {
	if _, err := money.Sum(append(amounts, extras.TaxCents, extras.FeeCents, extras.TipCents)...); err != nil {
		return fmt.Errorf("receipt total: %w", err)
	}
	return nil
}

type pair struct {
	id    string
	cents int64
}

func parsePairs(args []string) ([]pair, error) {
	pairs := make([]pair, len(args))
	for i, arg := range args {
		id, amount, ok := strings.Cut(arg, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("expected id=amount, got %q", arg)
		}
		cents, err := money.ParseCents(amount, true)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		pairs[i] = pair{id: id, cents: cents}
	}
	return pairs, nil
}

func parseItems(args []string) ([]calculator.ClaimItem, error) {
	items := make([]calculator.ClaimItem, len(args))
	for i, arg := range args {
		desc, rest, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("expected description=amount:claimants, got %q", arg)
		}
		amount, claimants, _ := strings.Cut(rest, ":")
		cents, err := money.ParseCents(amount, false)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w", desc, err)
		}
		items[i] = calculator.ClaimItem{
			ID:          fmt.Sprintf("item%d", i+1),
			Description: desc,
			AmountCents: cents,
		}
		if claimants != "" {
			items[i].Claimants = strings.Split(claimants, ",")
		}
	}
	return items, nil
}

func parseExtras(tax, fee, tip string) (calculator.Extras, error) {
	var extras calculator.Extras
	for _, f := range []struct {
		name  string
		value string
		dst   *int64
	}{
		{"tax", tax, &extras.TaxCents},
		{"fee", fee, &extras.FeeCents},
		{"tip", tip, &extras.TipCents},
	} {
		if f.value == "" {
			continue
		}
		cents, err := money.ParseCents(f.value, true)
		if err != nil {
			return extras, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = cents
	}
	return extras, nil
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func printSplits(out io.Writer, splits []calculator.PersonSplit) error {
	w := newTable(out)
	fmt.Fprintln(w, "PARTICIPANT\tSUBTOTAL\tTAX\tFEE\tTIP\tTOTAL")
	var total int64
	for _, s := range splits {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ParticipantID,
			money.FormatCents(s.SubtotalCents),
			money.FormatCents(s.TaxCents),
			money.FormatCents(s.FeeCents),
			money.FormatCents(s.TipCents),
			money.FormatCents(s.TotalCents),
		)
		total += s.TotalCents
	}
	fmt.Fprintf(w, "\t\t\t\t\t%s\n", money.FormatCents(total))
	return w.Flush()
}
