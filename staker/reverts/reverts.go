// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies a revert so transports can map it to a response.
type Kind uint8

const (
	// Validation means the request itself is malformed or out of range.
	Validation Kind = iota + 1
	// Precondition means the request is well formed but the ledger state rejects it.
	Precondition
	// Authorization means the caller may not perform the operation.
	Authorization
	// Integrity means the ledger detected an internal inconsistency.
	Integrity
	// Resource means a pool cannot cover the request.
	Resource
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Precondition:
		return "precondition"
	case Authorization:
		return "authorization"
	case Integrity:
		return "integrity"
	case Resource:
		return "resource"
	default:
		return "unknown"
	}
}

// ErrRevert is a domain failure. Two reverts match under errors.Is when their codes match,
// so a sentinel wrapped with extra context still compares equal.
type ErrRevert struct {
	kind    Kind
	code    string
	message string
}

func New(kind Kind, code, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		code:    code,
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

func (e *ErrRevert) Code() string {
	return e.code
}

func (e *ErrRevert) Is(target error) bool {
	t, ok := target.(*ErrRevert)
	return ok && t.code == e.code
}

// Withf returns a copy of e carrying a more specific message.
func (e *ErrRevert) Withf(format string, args ...any) *ErrRevert {
	return &ErrRevert{
		kind:    e.kind,
		code:    e.code,
		message: e.message + ": " + fmt.Sprintf(format, args...),
	}
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// KindOf returns the kind of the first revert in err's chain.
func KindOf(err error) (Kind, bool) {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.kind, true
	}
	return 0, false
}

var (
	ErrInvalidTier             = New(Validation, "InvalidTier", "invalid tier")
	ErrInvalidTierConfig       = New(Validation, "InvalidTierConfig", "invalid tier configuration")
	ErrInsufficientStakeAmount = New(Validation, "InsufficientStakeAmount", "stake amount below tier minimum")
	ErrStakeNotFound           = New(Validation, "StakeNotFound", "stake not found")
	ErrInvalidAmount           = New(Validation, "InvalidAmount", "invalid amount")
	ErrInvalidAddress          = New(Validation, "InvalidAddress", "invalid address")
	ErrInvalidTokenMint        = New(Validation, "InvalidTokenMint", "invalid token mint")
	ErrInvalidAsset            = New(Validation, "InvalidAsset", "invalid asset")

	ErrStakeLocked          = New(Precondition, "StakeLocked", "stake is still locked")
	ErrStakeAlreadyInactive = New(Precondition, "StakeAlreadyInactive", "stake is no longer active")
	ErrNoRewardsAvailable   = New(Precondition, "NoRewardsAvailable", "no rewards available")
	ErrMaxRewardsClaimed    = New(Precondition, "MaxRewardsClaimed", "maximum rewards already claimed")
	ErrProgramPaused        = New(Precondition, "ProgramPaused", "program is paused")
	ErrNotInitialized       = New(Precondition, "NotInitialized", "platform not initialized")
	ErrAlreadyInitialized   = New(Precondition, "AlreadyInitialized", "platform already initialized")

	ErrUnauthorized = New(Authorization, "Unauthorized", "unauthorized")

	ErrArithmeticUnderflow = New(Integrity, "ArithmeticUnderflow", "arithmetic underflow")
	ErrNumericalOverflow   = New(Integrity, "NumericalOverflow", "numerical overflow")
	ErrInvariantViolation  = New(Integrity, "InvariantViolation", "ledger invariant violated")
	ErrLedgerHalted        = New(Integrity, "LedgerHalted", "ledger halted after integrity failure")

	ErrInsufficientTreasuryBalance = New(Resource, "InsufficientTreasuryBalance", "insufficient treasury balance")
)
