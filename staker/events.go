// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"encoding/binary"

	"github.com/holiman/uint256"

	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/payout"
	"github.com/spacemoney/stakeledger/staker/tiers"
)

// EventKind names a state change.
type EventKind string

const (
	EventInitialized      EventKind = "Initialized"
	EventDeposited        EventKind = "Deposited"
	EventWithdrew         EventKind = "Withdrew"
	EventForceWithdrew    EventKind = "ForceWithdrew"
	EventClaimedRewards   EventKind = "ClaimedRewards"
	EventAdminTransferred EventKind = "AdminTransferred"
	EventAdminChanged     EventKind = "AdminChanged"
	EventProgramPaused    EventKind = "ProgramPaused"
	EventProgramResumed   EventKind = "ProgramResumed"
	EventTierUpdated      EventKind = "TierUpdated"
	EventTokenMintChanged EventKind = "TokenMintChanged"
)

// EventKinds lists every kind, for filters and validation.
var EventKinds = []EventKind{
	EventInitialized, EventDeposited, EventWithdrew, EventForceWithdrew, EventClaimedRewards,
	EventAdminTransferred, EventAdminChanged, EventProgramPaused, EventProgramResumed,
	EventTierUpdated, EventTokenMintChanged,
}

// Event describes one committed state change. Amount fields that do not apply to a
// kind are nil.
type Event struct {
	Seq          uint64
	Kind         EventKind
	Actor        core.Address // the calling principal
	Counterparty core.Address // transfer recipient, new admin or new token mint
	Asset        core.Asset
	Tier         tiers.ID
	StakeIndex   uint64
	Amount       *uint256.Int // gross deposit, total payout, claim or transfer amount
	Principal    *uint256.Int // stake principal involved
	Rewards      *uint256.Int // rewards paid to the staker
	Fee          *uint256.Int // deposit fee or force-withdraw penalty
	LockUntil    uint64
	Timestamp    uint64
}

// Receipt is returned by every successful mutation.
type Receipt struct {
	ID     core.Bytes32
	Event  *Event
	Payout *payout.Instruction // nil when no funds leave the ledger
}

func receiptID(ev *Event) core.Bytes32 {
	var nums [24]byte
	binary.BigEndian.PutUint64(nums[0:], ev.Seq)
	binary.BigEndian.PutUint64(nums[8:], ev.StakeIndex)
	binary.BigEndian.PutUint64(nums[16:], ev.Timestamp)
	return core.Blake2b([]byte(ev.Kind), ev.Actor.Bytes(), nums[:])
}

// Journal persists committed events outside the ledger store.
type Journal interface {
	Append(events ...*Event) error
}
