// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/metrics"
	"github.com/spacemoney/stakeledger/staker/reverts"
)

var (
	metricOperations        = metrics.LazyLoadCounterVec("staker_operations_count", []string{"op", "outcome"})
	metricIntegrityFailures = metrics.LazyLoadCounter("staker_integrity_failures_count")
	metricJournalFailures   = metrics.LazyLoadCounter("staker_journal_failures_count")
	metricTreasury          = metrics.LazyLoadGaugeVec("staker_treasury", []string{"asset"})
	metricTotalStaked       = metrics.LazyLoadGaugeVec("staker_total_staked", []string{"asset"})
	metricPaused            = metrics.LazyLoadGauge("staker_paused")
)

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if kind, ok := reverts.KindOf(err); ok {
		return kind.String()
	}
	return "internal"
}

// gaugeValue clips amounts to the gauge range.
func gaugeValue(v *uint256.Int) int64 {
	if !v.IsUint64() || v.Uint64() > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v.Uint64())
}

func (s *Staker) updateGauges() {
	st, err := s.treasury.State()
	if err != nil {
		logger.Debug("failed to read platform state for metrics", "error", err)
		return
	}
	for _, a := range core.Assets {
		labels := map[string]string{"asset": a.String()}
		metricTreasury().SetWithLabel(gaugeValue(st.Treasury[a]), labels)
		metricTotalStaked().SetWithLabel(gaugeValue(st.TotalStaked[a]), labels)
	}
	if st.Paused {
		metricPaused().Set(1)
	} else {
		metricPaused().Set(0)
	}
}
