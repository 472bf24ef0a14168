// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"strings"

	"github.com/spacemoney/stakeledger/metrics"
)

var (
	metricAppended        = metrics.LazyLoadCounter("eventdb_appended_count")
	metricQueryParameters = metrics.LazyLoadCounterVec("eventdb_query_parameters", []string{"parameters"})
	metricQueryOrder      = metrics.LazyLoadCounterVec("eventdb_query_order", []string{"order"})
	metricLimitBucket     = metrics.LazyLoadHistogramVec("eventdb_query_limit_bucket", []string{"type"}, []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
)

func metricsHandleFilter(filter *Filter) {
	used := make([]string, 0, 3)
	if filter.Actor != nil {
		used = append(used, "actor")
	}
	if len(filter.Kinds) > 0 {
		used = append(used, "kinds")
	}
	if filter.Range != nil {
		used = append(used, "range")
	}
	metricQueryParameters().AddWithLabel(1, map[string]string{"parameters": strings.Join(used, ",")})

	order := "asc"
	if filter.Order == DESC {
		order = "desc"
	}
	metricQueryOrder().AddWithLabel(1, map[string]string{"order": order})

	if filter.Options != nil {
		limit := filter.Options.Limit
		if limit > 1000 {
			limit = 1001
		}
		metricLimitBucket().ObserveWithLabels(int64(limit), map[string]string{"type": "event"})
	}
}
