// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/spacemoney/stakeledger/log"
	"github.com/spacemoney/stakeledger/metrics"
)

const (
	maxRequestBodySize = 200 * 1024
	shutdownTimeout    = 5 * time.Second
)

type server struct {
	name     string
	srv      *http.Server
	listener net.Listener
}

func listen(name, addr string, handler http.Handler) (*server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "listen %s addr [%v]", name, addr)
	}
	return &server{
		name:     name,
		srv:      &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second},
		listener: listener,
	}, nil
}

func (s *server) url(path string) string {
	return "http://" + s.listener.Addr().String() + path
}

func (s *server) serve() error {
	if err := s.srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrapf(err, "%s server", s.name)
	}
	return nil
}

func (s *server) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		log.Warn("server shutdown", "name", s.name, "err", err)
	}
}

// wrapAPIHandler limits request bodies and applies timeout to plain requests.
// Websocket upgrades are exempt from the timeout.
func wrapAPIHandler(h http.Handler, timeout time.Duration) http.Handler {
	var timed http.Handler = h
	if timeout > 0 {
		timed = http.TimeoutHandler(h, timeout, `{"error":"request timeout"}`)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
			h.ServeHTTP(w, r)
			return
		}
		timed.ServeHTTP(w, r)
	})
}

func metricsHandler() http.Handler {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	return handlers.CompressHandler(router)
}
