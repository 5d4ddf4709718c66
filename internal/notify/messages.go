package notify

import (
	"encoding/json"
	"time"

	"github.com/mmynk/tabsplit/internal/calculator"
)

// BalanceSnapshotMessage carries a tab's outstanding balances to the reminder
// subsystem. Settled participants are omitted; an empty Balances list means the
// tab is fully settled.
type BalanceSnapshotMessage struct {
	TabID     string         `json:"tab_id"`
	Balances  []BalanceEntry `json:"balances"`
	Timestamp time.Time      `json:"timestamp"`
}

// BalanceEntry is one participant's outstanding position.
type BalanceEntry struct {
	ParticipantID string `json:"participant_id"`
	NetCents      int64  `json:"net_cents"`
	Status        string `json:"status"`
}

// NewBalanceSnapshot builds a snapshot of the outstanding entries in balances.
func NewBalanceSnapshot(tabID string, balances []calculator.NetBalance) *BalanceSnapshotMessage {
	outstanding := calculator.Outstanding(balances)
	entries := make([]BalanceEntry, len(outstanding))
	for i, b := range outstanding {
		entries[i] = BalanceEntry{
			ParticipantID: b.ParticipantID,
			NetCents:      b.NetCents,
			Status:        string(b.Status()),
		}
	}
	return &BalanceSnapshotMessage{
		TabID:     tabID,
		Balances:  entries,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *BalanceSnapshotMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BalanceSnapshotFromJSON decodes a message produced by ToJSON.
func BalanceSnapshotFromJSON(data []byte) (*BalanceSnapshotMessage, error) {
	var msg BalanceSnapshotMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
