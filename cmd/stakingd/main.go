// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/spacemoney/stakeledger/api"
	"github.com/spacemoney/stakeledger/clock"
	"github.com/spacemoney/stakeledger/log"
	"github.com/spacemoney/stakeledger/metrics"
	"github.com/spacemoney/stakeledger/payout"
	"github.com/spacemoney/stakeledger/staker"
	"github.com/spacemoney/stakeledger/store"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

// committed ledger values kept decoded in memory
const ledgerCacheSize = 4096

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "Stakingd",
		Usage:   "Tiered staking ledger service",
		Flags: []cli.Flag{
			dataDirFlag,
			genesisFlag,
			devFlag,
			persistFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiEventsLimitFlag,
			enableAPILogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			verbosityFlag,
			jsonLogsFlag,
			pausePolicyFlag,
			payoutIntervalFlag,
			skipClockCheckFlag,
			ntpServerFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { log.Info("exited") }()

	initLogger(ctx)

	policy, err := staker.ParsePausePolicy(ctx.String(pausePolicyFlag.Name))
	if err != nil {
		return err
	}
	if !ctx.Bool(skipClockCheckFlag.Name) {
		checkClock(ctx.String(ntpServerFlag.Name))
	}
	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}

	// meters are created lazily, so the backend must be chosen before first use
	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	dbs, err := openDatabases(ctx)
	if err != nil {
		return err
	}
	defer dbs.Close()

	s := staker.New(
		store.NewContext(dbs.main, ledgerCacheSize),
		clock.System{},
		staker.Options{PausePolicy: policy, Journal: dbs.events},
	)
	if err := initLedger(s, gene); err != nil {
		return err
	}
	if _, err := s.Audit(); err != nil {
		return fmt.Errorf("ledger audit failed: %w", err)
	}

	dispatcher := payout.NewDispatcher(s, payout.LogMover{}, s.PayoutsReady(), ctx.Duration(payoutIntervalFlag.Name))
	dispatcher.Start(exitSignal)
	defer func() { log.Info("stopping payout dispatcher..."); dispatcher.Stop() }()

	apiHandler, closeSubs := api.New(s, dbs.events, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		EventsLimit:     ctx.Uint64(apiEventsLimitFlag.Name),
		PausePolicy:     policy,
		EnableReqLogger: ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:   ctx.Bool(enableMetricsFlag.Name),
	})
	apiSrv, err := listen("api", ctx.String(apiAddrFlag.Name),
		wrapAPIHandler(apiHandler, time.Duration(ctx.Uint64(apiTimeoutFlag.Name))*time.Millisecond))
	if err != nil {
		closeSubs()
		return err
	}
	servers := []*server{apiSrv}

	metricsURL := "disabled"
	if ctx.Bool(enableMetricsFlag.Name) {
		metricsSrv, err := listen("metrics", ctx.String(metricsAddrFlag.Name), metricsHandler())
		if err != nil {
			closeSubs()
			apiSrv.shutdown()
			return err
		}
		servers = append(servers, metricsSrv)
		metricsURL = metricsSrv.url("/metrics")
	}

	printStartupMessage(gene, s, dbs.dir, apiSrv.url("/"), metricsURL)

	group, gctx := errgroup.WithContext(exitSignal)
	for _, srv := range servers {
		group.Go(srv.serve)
	}
	group.Go(func() error {
		<-gctx.Done()
		log.Info("stopping API server...")
		closeSubs()
		for _, srv := range servers {
			srv.shutdown()
		}
		return nil
	})
	return group.Wait()
}
