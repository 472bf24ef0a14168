// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManual(t *testing.T) {
	c := NewManual(100)
	assert.Equal(t, uint64(100), c.Now())
	assert.Equal(t, uint64(186_500), c.Advance(186_400))
	c.Set(5)
	assert.Equal(t, uint64(5), c.Now())
}

func TestSystem(t *testing.T) {
	now := uint64(time.Now().Unix())
	got := System{}.Now()
	assert.InDelta(t, float64(now), float64(got), 2)
}

func TestOffsetUnreachable(t *testing.T) {
	_, err := CheckDrift("invalid.invalid", time.Second)
	assert.Error(t, err)
}
