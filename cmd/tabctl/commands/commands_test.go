package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/tabsplit/internal/auth"
	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/storage/sqlite"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCalculatorCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"parse", []string{"parse", "5.5"}, []string{"550", "$5.50"}},
		{"parse zero allowed", []string{"parse", "0", "--allow-zero"}, []string{"0"}},
		{"allocate", []string{"allocate", "1.00", "item1=10", "item2=20"}, []string{"item1  $0.33", "item2  $0.67"}},
		{"even", []string{"even", "10", "carol", "alice", "bob"}, []string{"$3.34", "$10.00"}},
		{"custom", []string{"custom", "alice=45", "bob=30", "carol=25", "--tax", "10", "--tip", "20"}, []string{"$58.50", "$39.00", "$32.50", "$130.00"}},
		{"claim", []string{"claim", "Pizza=30.00:alice,bob", "Salad=10.00:carol", "--tax", "4", "--tip", "6"}, []string{"$18.75", "$12.50", "$50.00"}},
		{"claim leak", []string{"claim", "Fries=10:a,b,c", "--remainder", "leak"}, []string{"$3.33", "unassigned"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("%v failed: %v\n%s", tt.args, err, out)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestCalculatorCommands_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"parse too precise", []string{"parse", "5.123"}},
		{"parse zero", []string{"parse", "0"}},
		{"allocate bad pair", []string{"allocate", "1", "item1"}},
		{"custom bad tax", []string{"custom", "a=1", "--tax", "x"}},
		{"claim unclaimed", []string{"claim", "Fries=5"}},
		{"claim bad policy", []string{"claim", "Fries=5:a", "--remainder", "random"}},
		{"custom total overflow", []string{"custom", "a=92233720368547758", "--tax", "92233720368547758"}},
		{"claim total overflow", []string{"claim", "Yacht=92233720368547758:a", "Island=92233720368547758:b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Errorf("%v: expected error", tt.args)
			}
		})
	}
}

func TestTokenCommand(t *testing.T) {
	const secret = "0123456789abcdef"

	out, err := run(t, "token", "tab-1", "alice", "--secret", secret)
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}

	claims, err := auth.NewJWTManager(secret, time.Hour).Validate(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("minted token does not validate: %v", err)
	}
	if claims.TabID != "tab-1" || claims.ParticipantID != "alice" {
		t.Errorf("claims: expected tab-1/alice, got %s/%s", claims.TabID, claims.ParticipantID)
	}
}

func TestBalancesCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tabs.db")
	store, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	ctx := context.Background()
	tab := &models.Tab{Name: "Road trip", Participants: []models.Participant{
		{DisplayName: "Alice"},
		{DisplayName: "Bob"},
	}}
	if err := store.CreateTab(ctx, tab); err != nil {
		t.Fatalf("CreateTab failed: %v", err)
	}
	alice, bob := tab.Participants[0].ID, tab.Participants[1].ID
	if err := store.CreateExpense(ctx, &models.Expense{
		TabID:         tab.ID,
		Description:   "Gas",
		PayerID:       alice,
		Mode:          calculator.SplitModeEven,
		SubtotalCents: 6000,
		TotalCents:    6000,
		Splits: []models.Split{
			{ParticipantID: alice, AmountCents: 3000},
			{ParticipantID: bob, AmountCents: 3000},
		},
	}); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	store.Close()

	out, err := run(t, "balances", tab.ID, "--db", dbPath)
	if err != nil {
		t.Fatalf("balances failed: %v\n%s", err, out)
	}
	for _, want := range []string{"Road trip", "creditor", "debtor", "Bob pays Alice $30.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if _, err := run(t, "balances", "missing", "--db", dbPath); err == nil {
		t.Error("expected error for unknown tab")
	}
}
