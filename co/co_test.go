// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoop(t *testing.T) {
	var (
		l      Loop
		s      Signal
		passes atomic.Int32
		ran    = make(chan struct{}, 8)
	)
	l.Start(context.Background(), time.Hour, s.C(), func(context.Context) {
		passes.Add(1)
		ran <- struct{}{}
	})

	wait := func() {
		select {
		case <-ran:
		case <-time.After(time.Second):
			t.Fatal("pass did not run")
		}
	}
	wait() // initial pass
	s.Broadcast()
	wait()

	l.Stop()
	assert.Equal(t, int32(2), passes.Load())

	// stopped loops stay stopped
	s.Broadcast()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, int32(2), passes.Load())
}

func TestLoop_StopCancelsPass(t *testing.T) {
	var l Loop
	started := make(chan struct{})
	l.Start(context.Background(), time.Hour, nil, func(ctx context.Context) {
		close(started)
		<-ctx.Done()
	})
	<-started

	stopped := make(chan struct{})
	go func() {
		l.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("stop did not cancel the running pass")
	}
}

func TestSignal(t *testing.T) {
	var s Signal
	s.Broadcast()
	s.Broadcast()

	select {
	case <-s.C():
	default:
		t.Fatal("expected pending signal")
	}
	select {
	case <-s.C():
		t.Fatal("broadcasts should collapse")
	default:
	}
}
