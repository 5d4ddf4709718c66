package service

import (
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/money"
	"github.com/mmynk/tabsplit/internal/storage"
)

var (
	// ErrSplitMismatch is returned when custom amounts don't add up to the subtotal.
	ErrSplitMismatch = errors.New("custom amounts do not sum to the expense subtotal")

	// ErrNotInTab is returned when a payer, claimant or settlement party isn't on the tab.
	ErrNotInTab = errors.New("participant is not on this tab")

	// ErrInvalidRequest covers missing or contradictory request fields.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrForbidden is returned when a caller's token is scoped to a different tab.
	ErrForbidden = errors.New("token does not grant access to this tab")
)

var invalidArgument = []error{
	money.ErrInvalidFormat,
	money.ErrInvalidAmount,
	money.ErrNonPositiveAmount,
	calculator.ErrUnknownSplitMode,
	calculator.ErrEmptyParticipantSet,
	calculator.ErrUnclaimedItem,
	calculator.ErrUnknownClaimant,
	calculator.ErrUnbalancedExpense,
	calculator.ErrMissingPayer,
	models.ErrEmptyExpense,
	models.ErrNegativeSplit,
	ErrSplitMismatch,
	ErrNotInTab,
	ErrInvalidRequest,
}

// codeOf maps a domain error to the Connect code clients see.
func codeOf(err error) connect.Code {
	for _, target := range invalidArgument {
		if errors.Is(err, target) {
			return connect.CodeInvalidArgument
		}
	}
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, storage.ErrAlreadyExists):
		return connect.CodeAlreadyExists
	case errors.Is(err, ErrForbidden):
		return connect.CodePermissionDenied
	default:
		return connect.CodeInternal
	}
}

// rpcError logs a failed operation and wraps err for Connect.
func rpcError(op string, err error, args ...any) error {
	code := codeOf(err)
	args = append(args, "error", err)
	if code == connect.CodeInternal {
		slog.Error(op+" failed", args...)
	} else {
		slog.Warn(op+" rejected", append(args, "code", code)...)
	}
	return connect.NewError(code, err)
}
