// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"fmt"
	"os"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/staker"
	"github.com/spacemoney/stakeledger/staker/params"
	"github.com/spacemoney/stakeledger/staker/tiers"
)

// Genesis is the initial platform configuration.
type Genesis struct {
	Name      string         `yaml:"name"`
	Admin     core.Address   `yaml:"admin"`
	TokenMint core.Address   `yaml:"token_mint"`
	UnitScale uint64         `yaml:"unit_scale"` // base units per whole token, defaults to 1e9
	Tiers     []TierOverride `yaml:"tiers"`
}

// TierOverride replaces the default configuration of one tier.
type TierOverride struct {
	Tier       string `yaml:"tier"`      // name or number
	MinStake   string `yaml:"min_stake"` // gross base units, decimal
	Multiplier uint64 `yaml:"multiplier"`
	LockDays   uint64 `yaml:"lock_days"`
}

// LoadFile reads a YAML genesis file. Unknown keys are rejected.
func LoadFile(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	return Decode(data)
}

// Decode parses a YAML genesis document.
func Decode(data []byte) (*Genesis, error) {
	var gen Genesis
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	if _, err := gen.TierTable(); err != nil {
		return nil, err
	}
	if gen.Admin.IsZero() {
		return nil, errors.New("genesis: admin must be set")
	}
	if gen.TokenMint.IsZero() {
		return nil, errors.New("genesis: token_mint must be set")
	}
	return &gen, nil
}

// TierTable returns the default tiers scaled by UnitScale with overrides applied.
func (g *Genesis) TierTable() ([]*tiers.Tier, error) {
	scale := g.UnitScale
	if scale == 0 {
		scale = params.UnitScale
	}
	table := tiers.Defaults(scale)
	seen := make(map[tiers.ID]bool)
	for _, o := range g.Tiers {
		id, err := tiers.ParseName(o.Tier)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			return nil, fmt.Errorf("genesis: tier %s overridden twice", id)
		}
		seen[id] = true

		minStake, err := uint256.FromDecimal(o.MinStake)
		if err != nil {
			return nil, errors.Wrapf(err, "genesis: tier %s min_stake", id)
		}
		t := &tiers.Tier{ID: id, MinStake: minStake, Multiplier: o.Multiplier, LockDays: o.LockDays}
		if err := t.Validate(); err != nil {
			return nil, errors.WithMessagef(err, "genesis: tier %s", id)
		}
		table[id] = t
	}
	return table, nil
}

// Apply initializes s from the genesis.
func (g *Genesis) Apply(s *staker.Staker) (*staker.Receipt, error) {
	table, err := g.TierTable()
	if err != nil {
		return nil, err
	}
	return s.Initialize(g.Admin, g.TokenMint, table)
}
