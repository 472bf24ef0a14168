// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package store

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

func encode(value any) ([]byte, error) {
	raw, err := rlp.EncodeToBytes(value)
	if err != nil {
		return nil, errors.Wrap(err, "rlp encode")
	}
	return snappy.Encode(nil, raw), nil
}

func decode(data []byte, value any) error {
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return errors.Wrap(err, "snappy decode")
	}
	if err := rlp.DecodeBytes(raw, value); err != nil {
		return errors.Wrap(err, "rlp decode")
	}
	return nil
}
