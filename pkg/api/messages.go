package api

// Participant is a member of a tab.
type Participant struct {
	ID          string `json:"id"`
	TabID       string `json:"tabId"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
}

// Tab is a group of participants sharing expenses.
type Tab struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Participants []*Participant `json:"participants,omitempty"`
	CreatedAt    int64          `json:"createdAt"`
}

type CreateTabRequest struct {
	Name             string   `json:"name"`
	ParticipantNames []string `json:"participantNames"`
}

type CreateTabResponse struct {
	Tab *Tab `json:"tab"`
}

type GetTabRequest struct {
	TabID string `json:"tabId"`
}

type GetTabResponse struct {
	Tab *Tab `json:"tab"`
}

type ListTabsRequest struct{}

type ListTabsResponse struct {
	Tabs []*Tab `json:"tabs"`
}

type AddParticipantRequest struct {
	TabID       string `json:"tabId"`
	DisplayName string `json:"displayName"`
}

type AddParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

type DeleteTabRequest struct {
	TabID string `json:"tabId"`
}

type DeleteTabResponse struct{}

// Balance is one participant's position on a tab. Net is positive when the
// participant is owed money.
type Balance struct {
	ParticipantID string `json:"participantId"`
	DisplayName   string `json:"displayName"`
	PaidCents     int64  `json:"paidCents"`
	OwedCents     int64  `json:"owedCents"`
	NetCents      int64  `json:"netCents"`
	Net           string `json:"net"`
	Status        string `json:"status"`
}

// Transfer is a suggested payment that moves a tab toward settled.
type Transfer struct {
	FromID      string `json:"fromId"`
	ToID        string `json:"toId"`
	AmountCents int64  `json:"amountCents"`
	Amount      string `json:"amount"`
}

type GetTabBalancesRequest struct {
	TabID string `json:"tabId"`
}

type GetTabBalancesResponse struct {
	TabID       string      `json:"tabId"`
	Balances    []*Balance  `json:"balances"`
	Outstanding []*Balance  `json:"outstanding"`
	Transfers   []*Transfer `json:"transfers"`
}

// Settlement is a recorded repayment between two participants.
type Settlement struct {
	ID          string `json:"id"`
	TabID       string `json:"tabId"`
	FromID      string `json:"fromId"`
	ToID        string `json:"toId"`
	AmountCents int64  `json:"amountCents"`
	Amount      string `json:"amount"`
	Note        string `json:"note,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}

type RecordSettlementRequest struct {
	TabID  string `json:"tabId"`
	FromID string `json:"fromId"`
	ToID   string `json:"toId"`
	Amount string `json:"amount"`
	Note   string `json:"note,omitempty"`
}

type RecordSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

// CustomAmount is a participant's base amount in custom mode.
type CustomAmount struct {
	ParticipantID string `json:"participantId"`
	Amount        string `json:"amount"`
}

// ItemInput is a receipt line in claim mode.
type ItemInput struct {
	Description string   `json:"description"`
	Amount      string   `json:"amount"`
	Claimants   []string `json:"claimants"`
}

// SplitInput describes how to divide an expense. All amounts are decimal strings
// such as "12.50".
//
//   - split: Total is divided evenly among ParticipantIDs.
//   - custom: CustomAmounts must sum to Subtotal; Tax and Tip are apportioned over them.
//   - claim: Items are split among their claimants; Tax, Fee and Tip cascade over
//     the claimed subtotals. ParticipantIDs may add people who claimed nothing.
type SplitInput struct {
	Mode           string          `json:"mode"`
	Total          string          `json:"total,omitempty"`
	Subtotal       string          `json:"subtotal,omitempty"`
	Tax            string          `json:"tax,omitempty"`
	Fee            string          `json:"fee,omitempty"`
	Tip            string          `json:"tip,omitempty"`
	ParticipantIDs []string        `json:"participantIds,omitempty"`
	CustomAmounts  []*CustomAmount `json:"customAmounts,omitempty"`
	Items          []*ItemInput    `json:"items,omitempty"`
}

// ItemShare is one participant's portion of a claimed item.
type ItemShare struct {
	ItemID      string `json:"itemId"`
	Description string `json:"description"`
	AmountCents int64  `json:"amountCents"`
}

// PersonSplit is the full breakdown of what one participant owes.
type PersonSplit struct {
	ParticipantID string       `json:"participantId"`
	SubtotalCents int64        `json:"subtotalCents"`
	TaxCents      int64        `json:"taxCents"`
	FeeCents      int64        `json:"feeCents"`
	TipCents      int64        `json:"tipCents"`
	TotalCents    int64        `json:"totalCents"`
	Total         string       `json:"total"`
	Items         []*ItemShare `json:"items,omitempty"`
}

type PreviewSplitRequest struct {
	SplitInput
}

type PreviewSplitResponse struct {
	Mode          string         `json:"mode"`
	SubtotalCents int64          `json:"subtotalCents"`
	TaxCents      int64          `json:"taxCents"`
	FeeCents      int64          `json:"feeCents"`
	TipCents      int64          `json:"tipCents"`
	TotalCents    int64          `json:"totalCents"`
	Total         string         `json:"total"`
	Splits        []*PersonSplit `json:"splits"`

	// UnassignedCents is non-zero only when item remainders are left unassigned.
	UnassignedCents int64 `json:"unassignedCents,omitempty"`
}

// Split is what one participant owes for a stored expense.
type Split struct {
	ParticipantID string `json:"participantId"`
	AmountCents   int64  `json:"amountCents"`
	Amount        string `json:"amount"`
}

// Item is a stored receipt line.
type Item struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	AmountCents int64    `json:"amountCents"`
	Claimants   []string `json:"claimants"`
}

// Expense is a stored payment on a tab.
type Expense struct {
	ID            string   `json:"id"`
	TabID         string   `json:"tabId"`
	Description   string   `json:"description"`
	PayerID       string   `json:"payerId"`
	Mode          string   `json:"mode"`
	SubtotalCents int64    `json:"subtotalCents"`
	TaxCents      int64    `json:"taxCents"`
	FeeCents      int64    `json:"feeCents"`
	TipCents      int64    `json:"tipCents"`
	TotalCents    int64    `json:"totalCents"`
	Total         string   `json:"total"`
	Splits        []*Split `json:"splits"`
	Items         []*Item  `json:"items,omitempty"`
	CreatedAt     int64    `json:"createdAt"`
	CreatedBy     string   `json:"createdBy,omitempty"`
}

type CreateExpenseRequest struct {
	TabID       string `json:"tabId"`
	Description string `json:"description"`
	PayerID     string `json:"payerId"`
	SplitInput
}

type CreateExpenseResponse struct {
	Expense   *Expense       `json:"expense"`
	Breakdown []*PersonSplit `json:"breakdown"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct {
	TabID string `json:"tabId"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}
