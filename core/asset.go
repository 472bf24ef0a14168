// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package core

import (
	"fmt"
	"strings"
)

// Asset selects one of the two accounting pools.
type Asset uint8

const (
	// Native is the chain's native asset.
	Native Asset = iota
	// Token is the configured fungible token, identified by the platform token mint.
	Token
)

// Assets lists every asset in pool order.
var Assets = []Asset{Native, Token}

func (a Asset) String() string {
	switch a {
	case Native:
		return "native"
	case Token:
		return "token"
	default:
		return fmt.Sprintf("asset(%d)", uint8(a))
	}
}

// Valid reports whether a is a known asset.
func (a Asset) Valid() bool {
	return a == Native || a == Token
}

// Bytes returns the single byte key form of the asset.
func (a Asset) Bytes() []byte {
	return []byte{byte(a)}
}

// ParseAsset parses the string form produced by String.
func ParseAsset(s string) (Asset, error) {
	switch strings.ToLower(s) {
	case "native":
		return Native, nil
	case "token":
		return Token, nil
	}
	return 0, fmt.Errorf("unknown asset %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Asset) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("unknown asset %d", uint8(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Asset) UnmarshalText(data []byte) error {
	parsed, err := ParseAsset(string(data))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
