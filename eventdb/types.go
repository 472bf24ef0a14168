// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/staker"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive timestamp range. A To below From leaves the range open ended.
type Range struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Filter selects journaled events. Nil fields match everything.
type Filter struct {
	Actor   *core.Address      `json:"actor"`
	Kinds   []staker.EventKind `json:"kinds"`
	Range   *Range             `json:"range"`
	Order   Order              `json:"order"`
	Options *Options           `json:"options"`
}
