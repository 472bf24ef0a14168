// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import "sync"

// Signal is a level-triggered wake-up: any number of Broadcast calls between two
// receives collapse into one.
type Signal struct {
	once sync.Once
	ch   chan struct{}
}

func (s *Signal) init() {
	s.once.Do(func() { s.ch = make(chan struct{}, 1) })
}

// Broadcast wakes the waiter without blocking.
func (s *Signal) Broadcast() {
	s.init()
	select {
	case s.ch <- struct{}{}:
	default:
	}
}

// C returns the channel to receive wake-ups from.
func (s *Signal) C() <-chan struct{} {
	s.init()
	return s.ch
}
