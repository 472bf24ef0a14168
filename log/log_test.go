// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalHandler(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(NewTerminalHandlerWithLevel(&buf, levelVar(slog.LevelInfo), false))

	l.Debug("hidden")
	assert.Empty(t, buf.String())

	l.Info("deposited", "amount", uint256.NewInt(980000000), "tier", "boot")
	out := buf.String()
	assert.Contains(t, out, "INFO ")
	assert.Contains(t, out, "deposited")
	assert.Contains(t, out, "amount=980000000")
	assert.Contains(t, out, "tier=boot")
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	prev := Root()
	defer SetDefault(prev)

	pkgLogger := WithContext("pkg", "test")
	SetDefault(NewLogger(NewTerminalHandlerWithLevel(&buf, levelVar(LevelTrace), false)))

	pkgLogger.Trace("trace line", "k", "v")
	assert.Contains(t, buf.String(), "pkg=test")
	assert.Contains(t, buf.String(), "k=v")
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(JSONHandler(&buf))
	l.Warn("penalty", "value", uint256.NewInt(200000000))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "warn", rec["lvl"])
	assert.Equal(t, "200000000", rec["value"])
}

func TestAppendUint64(t *testing.T) {
	tests := []struct {
		in       uint64
		expected string
	}{
		{0, "0"},
		{99999, "99999"},
		{100000, "100,000"},
		{1000000000, "1,000,000,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, string(appendUint64(nil, tt.in, false)))
	}
	assert.Equal(t, "-1,234,567", string(appendInt64(nil, -1234567)))
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(0))
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(3))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
}
