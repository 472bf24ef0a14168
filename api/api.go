// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/spacemoney/stakeledger/api/accounts"
	"github.com/spacemoney/stakeledger/api/admin"
	"github.com/spacemoney/stakeledger/api/events"
	"github.com/spacemoney/stakeledger/api/payouts"
	"github.com/spacemoney/stakeledger/api/platform"
	"github.com/spacemoney/stakeledger/api/stakes"
	"github.com/spacemoney/stakeledger/api/subscriptions"
	"github.com/spacemoney/stakeledger/api/tiers"
	"github.com/spacemoney/stakeledger/api/utils"
	"github.com/spacemoney/stakeledger/eventdb"
	"github.com/spacemoney/stakeledger/log"
	"github.com/spacemoney/stakeledger/staker"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	EventsLimit     uint64
	PausePolicy     staker.PausePolicy
	EnableReqLogger bool
	EnableMetrics   bool
}

// New return api router. The returned func closes websocket subscribers.
func New(s *staker.Staker, eventDB *eventdb.EventDB, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()
	router.NotFoundHandler = utils.WrapHandlerFunc(func(http.ResponseWriter, *http.Request) error {
		return utils.NotFound(errNotFound)
	})

	platform.New(s, opts.PausePolicy).
		Mount(router, "/platform")
	tiers.New(s).
		Mount(router, "/tiers")
	accounts.New(s).
		Mount(router, "/accounts")
	stakes.New(s).
		Mount(router, "/stakes")
	admin.New(s).
		Mount(router, "/admin")
	payouts.New(s).
		Mount(router, "/payouts")
	if eventDB != nil {
		events.New(eventDB, opts.EventsLimit).
			Mount(router, "/events")
	}
	subs := subscriptions.New(s, origins)
	subs.Mount(router, "/subscriptions")

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut}),
		handlers.AllowedHeaders([]string{"content-type", strings.ToLower(utils.PrincipalHeader)}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP, subs.Close
}
