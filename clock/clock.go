// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clock supplies the time source of the ledger in whole seconds.
package clock

import (
	"sync/atomic"
	"time"

	"github.com/beevik/ntp"
	"github.com/pkg/errors"
)

// Clock returns the current time in seconds since the Unix epoch.
type Clock interface {
	Now() uint64
}

// System reads the wall clock.
type System struct{}

func (System) Now() uint64 {
	return uint64(time.Now().Unix())
}

// Manual is a clock under test control.
type Manual struct {
	now atomic.Uint64
}

func NewManual(now uint64) *Manual {
	m := &Manual{}
	m.now.Store(now)
	return m
}

func (m *Manual) Now() uint64 {
	return m.now.Load()
}

func (m *Manual) Set(now uint64) {
	m.now.Store(now)
}

// Advance moves the clock forward by d seconds and returns the new time.
func (m *Manual) Advance(d uint64) uint64 {
	return m.now.Add(d)
}

// DefaultNTPServer is queried when no server is configured.
const DefaultNTPServer = "pool.ntp.org"

// Offset queries server and returns the local clock offset.
func Offset(server string) (time.Duration, error) {
	if server == "" {
		server = DefaultNTPServer
	}
	resp, err := ntp.Query(server)
	if err != nil {
		return 0, errors.Wrap(err, "query ntp")
	}
	return resp.ClockOffset, nil
}

// CheckDrift returns an error when the local clock is off by more than tolerance.
func CheckDrift(server string, tolerance time.Duration) (time.Duration, error) {
	offset, err := Offset(server)
	if err != nil {
		return 0, err
	}
	if offset > tolerance || offset < -tolerance {
		return offset, errors.Errorf("clock offset %v exceeds %v", offset, tolerance)
	}
	return offset, nil
}
