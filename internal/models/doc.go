// Package models defines the persisted domain models for tabsplit.
//
// # Models
//
//   - Tab: a group of participants whose expenses settle against each other
//   - Participant: a member of one tab, identified by an opaque id
//   - Expense: one payment, its split mode, and the per-participant splits
//   - Item: a receipt line claimed by participants (claim mode only)
//   - Settlement: a recorded repayment between two participants of a tab
//
// # Design Principles
//
//  1. **Integer cents**: every amount is an int64 number of cents
//  2. **Ids, not pointers**: relationships use id strings to avoid cycles
//  3. **Closed expenses**: an expense's splits always sum to its total, checked by
//     Expense.Validate before anything is written
//
// Amounts are computed by the calculator package; models only carry them.
package models
