package ledger

import "errors"

var (
	ErrNotFound        = errors.New("record not found")
	ErrInvalidAmount   = errors.New("amount must be a non-negative number")
	ErrInvalidKind     = errors.New("unknown transaction kind")
	ErrUnknownNetwork  = errors.New("unknown network")
	ErrNetworkRequired = errors.New("credit sales require a network")
	ErrPolicyMismatch  = errors.New("operation not supported by the configured credit policy")
	ErrUnknownPolicy   = errors.New("unknown credit policy")
)
