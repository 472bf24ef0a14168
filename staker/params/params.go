// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package params holds the fixed economic constants of the ledger.
package params

const (
	// BpsDenominator is the basis point scale: 10000 bps = 100%.
	BpsDenominator uint64 = 10_000
	// DepositFeeBps is charged on every deposit and credited to the treasury.
	DepositFeeBps uint64 = 200
	// ForceWithdrawPenaltyBps is taken from the rewards owed on an early exit.
	ForceWithdrawPenaltyBps uint64 = 2_000
	// DailyYieldBps is the base daily yield before the tier multiplier.
	DailyYieldBps uint64 = 100
	// SecondsPerDay is the length of one accrual period.
	SecondsPerDay uint64 = 86_400
	// MaxLockDays bounds a tier lock to one hundred years.
	MaxLockDays uint64 = 36_500

	// UnitScale is the default number of base units per whole asset unit.
	UnitScale uint64 = 1_000_000_000
)
