package notify

import (
	"context"
	"errors"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmynk/tabsplit/internal/calculator"
)

func TestNewBalanceSnapshot(t *testing.T) {
	balances := []calculator.NetBalance{
		{ParticipantID: "alice", PaidCents: 3000, OwedCents: 2100, NetCents: 900},
		{ParticipantID: "bob", PaidCents: 1201, OwedCents: 1601, NetCents: -400},
		{ParticipantID: "carol", PaidCents: 500, OwedCents: 1000, NetCents: -500},
		{ParticipantID: "dave"},
	}

	msg := NewBalanceSnapshot("tab-1", balances)

	want := []BalanceEntry{
		{ParticipantID: "alice", NetCents: 900, Status: "creditor"},
		{ParticipantID: "bob", NetCents: -400, Status: "debtor"},
		{ParticipantID: "carol", NetCents: -500, Status: "debtor"},
	}
	if msg.TabID != "tab-1" {
		t.Errorf("TabID = %q, want tab-1", msg.TabID)
	}
	if !reflect.DeepEqual(msg.Balances, want) {
		t.Errorf("Balances = %+v, want %+v", msg.Balances, want)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Expected Timestamp to be set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	decoded, err := BalanceSnapshotFromJSON(body)
	if err != nil {
		t.Fatalf("BalanceSnapshotFromJSON failed: %v", err)
	}
	if !reflect.DeepEqual(decoded.Balances, want) {
		t.Errorf("decoded Balances = %+v, want %+v", decoded.Balances, want)
	}
}

func TestNewBalanceSnapshot_SettledTab(t *testing.T) {
	msg := NewBalanceSnapshot("tab-1", []calculator.NetBalance{{ParticipantID: "alice"}, {ParticipantID: "bob"}})
	if len(msg.Balances) != 0 {
		t.Errorf("Expected no outstanding balances, got %+v", msg.Balances)
	}
}

func TestAMQPPublisher_CircuitBreaker(t *testing.T) {
	p := &AMQPPublisher{exchangeName: "test_exchange", queueName: "test_queue"}

	t.Run("initial state is closed", func(t *testing.T) {
		if p.isCircuitOpen() {
			t.Error("Circuit breaker should be closed initially")
		}
	})

	t.Run("multiple failures open circuit", func(t *testing.T) {
		for i := 0; i < maxFailures; i++ {
			p.recordFailure()
		}
		if !p.isCircuitOpen() {
			t.Error("Circuit breaker should be open after max failures")
		}
	})

	t.Run("publish fails fast when circuit is open", func(t *testing.T) {
		err := p.PublishBalances(context.Background(), &BalanceSnapshotMessage{TabID: "tab-1"})
		if !errors.Is(err, ErrCircuitOpen) {
			t.Errorf("Expected ErrCircuitOpen, got %v", err)
		}
	})

	t.Run("circuit transitions to half-open after timeout", func(t *testing.T) {
		p.lastFailure = time.Now().Add(-openTimeout - time.Second)
		if p.isCircuitOpen() {
			t.Error("Circuit should transition to half-open after timeout")
		}
		if atomic.LoadInt32(&p.state) != StateHalfOpen {
			t.Error("State should be StateHalfOpen after timeout")
		}
	})

	t.Run("failure in half-open reopens", func(t *testing.T) {
		atomic.StoreInt64(&p.failureCount, 0)
		p.recordFailure()
		if atomic.LoadInt32(&p.state) != StateOpen {
			t.Error("State should be StateOpen after a half-open failure")
		}
	})

	t.Run("record success resets state", func(t *testing.T) {
		p.recordSuccess()
		if p.isCircuitOpen() {
			t.Error("Circuit breaker should be closed after success")
		}
		if atomic.LoadInt64(&p.failureCount) != 0 {
			t.Error("Failure count should be reset to 0 after success")
		}
	})
}

func TestLogPublisher(t *testing.T) {
	var p BalancePublisher = LogPublisher{}
	if err := p.PublishBalances(context.Background(), &BalanceSnapshotMessage{TabID: "tab-1"}); err != nil {
		t.Errorf("PublishBalances() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
