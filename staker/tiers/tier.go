// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tiers

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"

	"github.com/spacemoney/stakeledger/staker/params"
	"github.com/spacemoney/stakeledger/staker/reverts"
)

// ID is the closed set of staking tiers.
type ID uint8

const (
	Boot ID = iota
	Symbiotic
	Space
)

// All lists every tier in ID order.
var All = []ID{Boot, Symbiotic, Space}

// Parse converts a raw tier number, rejecting anything outside the closed set.
func Parse(v uint8) (ID, error) {
	id := ID(v)
	switch id {
	case Boot, Symbiotic, Space:
		return id, nil
	default:
		return 0, reverts.ErrInvalidTier.Withf("tier %d", v)
	}
}

// ParseName accepts either the tier name or its number.
func ParseName(s string) (ID, error) {
	switch strings.ToLower(s) {
	case "boot", "0":
		return Boot, nil
	case "symbiotic", "1":
		return Symbiotic, nil
	case "space", "2":
		return Space, nil
	}
	return 0, reverts.ErrInvalidTier.Withf("tier %q", s)
}

func (id ID) String() string {
	switch id {
	case Boot:
		return "boot"
	case Symbiotic:
		return "symbiotic"
	case Space:
		return "space"
	default:
		return fmt.Sprintf("tier(%d)", uint8(id))
	}
}

func (id ID) Bytes() []byte {
	return []byte{byte(id)}
}

// Tier is the configuration a stake is created under.
type Tier struct {
	ID         ID
	MinStake   *uint256.Int // gross base units
	Multiplier uint64
	LockDays   uint64
}

// Validate checks MinStake > 0, Multiplier >= 1 and 0 < LockDays <= params.MaxLockDays.
func (t *Tier) Validate() error {
	switch {
	case t.MinStake == nil || t.MinStake.IsZero():
		return reverts.ErrInvalidTierConfig.Withf("minimum stake must be positive")
	case t.Multiplier < 1:
		return reverts.ErrInvalidTierConfig.Withf("multiplier must be at least 1")
	case t.LockDays == 0:
		return reverts.ErrInvalidTierConfig.Withf("lock days must be positive")
	case t.LockDays > params.MaxLockDays:
		return reverts.ErrInvalidTierConfig.Withf("lock days must not exceed %d", params.MaxLockDays)
	}
	return nil
}

// LockSeconds is the lock duration in seconds.
func (t *Tier) LockSeconds() uint64 {
	return t.LockDays * params.SecondsPerDay
}

// Defaults returns the initial tier table with minimums expressed in base units of
// the given scale.
func Defaults(unitScale uint64) []*Tier {
	scale := uint256.NewInt(unitScale)
	units := func(n uint64) *uint256.Int {
		return new(uint256.Int).Mul(uint256.NewInt(n), scale)
	}
	return []*Tier{
		{ID: Boot, MinStake: units(1), Multiplier: 1, LockDays: 30},
		{ID: Symbiotic, MinStake: units(5), Multiplier: 2, LockDays: 90},
		{ID: Space, MinStake: units(25), Multiplier: 3, LockDays: 180},
	}
}
