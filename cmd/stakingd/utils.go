// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/spacemoney/stakeledger/clock"
	"github.com/spacemoney/stakeledger/eventdb"
	"github.com/spacemoney/stakeledger/genesis"
	"github.com/spacemoney/stakeledger/log"
	"github.com/spacemoney/stakeledger/lvldb"
	"github.com/spacemoney/stakeledger/staker"
)

const (
	// clock offsets above this are reported at startup
	clockDriftTolerance = 2 * time.Second
	ledgerDBCacheMiB    = 128
)

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".stakeledger")
	}
	return filepath.Join(os.TempDir(), ".stakeledger")
}

func initLogger(ctx *cli.Context) *slog.LevelVar {
	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))
	log.SetDefault(log.NewLogger(newLogHandler(os.Stderr, &level, ctx.Bool(jsonLogsFlag.Name))))
	return &level
}

func newLogHandler(w io.Writer, level *slog.LevelVar, jsonLogs bool) slog.Handler {
	if jsonLogs {
		return log.JSONHandlerWithLevel(w, level)
	}
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) && os.Getenv("TERM") != "dumb"
	}
	return log.NewTerminalHandlerWithLevel(w, level, useColor)
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		log.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func checkClock(server string) {
	offset, err := clock.CheckDrift(server, clockDriftTolerance)
	switch {
	case err == nil:
		log.Debug("clock checked", "server", server, "offset", offset)
	case offset != 0:
		log.Warn("clock offset detected, lock periods and rewards follow the local clock", "offset", offset)
	default:
		log.Debug("failed to access NTP", "server", server, "err", err)
	}
}

// selectGenesis returns nil when neither --dev nor --genesis is set; the ledger must
// then already be initialized.
func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	if path := ctx.String(genesisFlag.Name); path != "" {
		return genesis.LoadFile(path)
	}
	if ctx.Bool(devFlag.Name) {
		return genesis.NewDevnet(), nil
	}
	return nil, nil
}

type databases struct {
	dir    string
	main   *lvldb.LevelDB
	events *eventdb.EventDB
}

func (d *databases) Close() {
	log.Info("closing event database...")
	if err := d.events.Close(); err != nil {
		log.Warn("close event database", "err", err)
	}
	log.Info("closing main database...")
	if err := d.main.Close(); err != nil {
		log.Warn("close main database", "err", err)
	}
}

func openDatabases(ctx *cli.Context) (*databases, error) {
	if ctx.Bool(devFlag.Name) && !ctx.Bool(persistFlag.Name) {
		mainDB, err := lvldb.NewMem()
		if err != nil {
			return nil, errors.Wrap(err, "open main database")
		}
		events, err := eventdb.NewMem()
		if err != nil {
			mainDB.Close()
			return nil, errors.Wrap(err, "open event database")
		}
		return &databases{dir: "Memory", main: mainDB, events: events}, nil
	}

	dir := ctx.String(dataDirFlag.Name)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "create data dir [%v]", dir)
	}
	mainDB, err := lvldb.New(filepath.Join(dir, "ledger"), ledgerDBCacheMiB)
	if err != nil {
		return nil, errors.Wrap(err, "open main database")
	}
	events, err := eventdb.New(filepath.Join(dir, "events.db"))
	if err != nil {
		mainDB.Close()
		return nil, errors.Wrap(err, "open event database")
	}
	return &databases{dir: dir, main: mainDB, events: events}, nil
}

// initLedger applies gene to a fresh ledger. An initialized ledger keeps its state.
func initLedger(s *staker.Staker, gene *genesis.Genesis) error {
	st, err := s.Platform()
	if err != nil {
		return err
	}
	if st.Initialized {
		if gene != nil && gene.Admin != st.Admin {
			log.Warn("ledger already initialized, genesis admin ignored", "admin", st.Admin)
		}
		return nil
	}
	if gene == nil {
		return errors.New("ledger not initialized: pass --genesis or --dev")
	}
	if _, err := gene.Apply(s); err != nil {
		return errors.WithMessage(err, "apply genesis")
	}
	return nil
}

func printStartupMessage(gene *genesis.Genesis, s *staker.Staker, dataDir, apiURL, metricsURL string) {
	st, err := s.Platform()
	if err != nil {
		log.Warn("read platform state", "err", err)
		return
	}
	name := "existing ledger"
	if gene != nil && gene.Name != "" {
		name = gene.Name
	}
	fmt.Printf(`Starting %v
    Network      [ %v ]
    Admin        [ %v ]
    Token mint   [ %v ]
    Paused       [ %v ]
    Data dir     [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
`,
		"Stakingd "+fullVersion(),
		name,
		st.Admin,
		st.TokenMint,
		st.Paused,
		dataDir,
		apiURL,
		metricsURL)
}
