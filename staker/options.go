// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"fmt"
	"strings"
)

// PausePolicy selects which operations the pause flag blocks. Admin operations are
// never blocked.
type PausePolicy uint8

const (
	// PauseDepositsOnly blocks new deposits; stakers can still exit and claim.
	PauseDepositsOnly PausePolicy = iota
	// PauseAll also blocks withdraw, force-withdraw and claim.
	PauseAll
)

func (p PausePolicy) String() string {
	switch p {
	case PauseDepositsOnly:
		return "deposits"
	case PauseAll:
		return "all"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

func ParsePausePolicy(s string) (PausePolicy, error) {
	switch strings.ToLower(s) {
	case "", "deposits":
		return PauseDepositsOnly, nil
	case "all":
		return PauseAll, nil
	}
	return 0, fmt.Errorf("unknown pause policy %q", s)
}

// Options configures a Staker.
type Options struct {
	PausePolicy PausePolicy
	// Journal receives every committed event; nil disables journaling.
	Journal Journal
}
