// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import (
	"errors"
	"strings"

	"github.com/holiman/uint256"
)

// Amount is a base unit amount. It marshals as a decimal string and accepts either a
// decimal or a 0x prefixed hex string.
type Amount uint256.Int

func NewAmount(v *uint256.Int) *Amount {
	if v == nil {
		return nil
	}
	a := Amount(*v)
	return &a
}

// Int returns the amount as *uint256.Int, zero for a nil amount.
func (a *Amount) Int() *uint256.Int {
	if a == nil {
		return new(uint256.Int)
	}
	v := uint256.Int(*a)
	return &v
}

func (a Amount) MarshalText() ([]byte, error) {
	v := uint256.Int(a)
	return []byte(v.Dec()), nil
}

func (a *Amount) UnmarshalText(data []byte) error {
	s := string(data)
	if s == "" {
		return errors.New("empty amount")
	}
	var (
		v   *uint256.Int
		err error
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = uint256.FromHex(s)
	} else {
		v, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return err
	}
	*a = Amount(*v)
	return nil
}
