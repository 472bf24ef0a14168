// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/spacemoney/stakeledger/api/types"
	"github.com/spacemoney/stakeledger/api/utils"
	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/eventdb"
	"github.com/spacemoney/stakeledger/staker"
)

type Events struct {
	db    *eventdb.EventDB
	limit uint64
}

// New serves journaled events. limit caps the page size of a single query.
func New(db *eventdb.EventDB, limit uint64) *Events {
	return &Events{db: db, limit: limit}
}

func (e *Events) parseFilter(req *http.Request) (*eventdb.Filter, error) {
	q := req.URL.Query()
	filter := &eventdb.Filter{Order: eventdb.ASC}

	if raw := q.Get("actor"); raw != "" {
		actor, err := core.ParseAddress(raw)
		if err != nil {
			return nil, utils.BadRequest(errors.WithMessage(err, "actor"))
		}
		filter.Actor = actor
	}
	if raw := q.Get("kind"); raw != "" {
		for _, k := range strings.Split(raw, ",") {
			kind, ok := parseKind(strings.TrimSpace(k))
			if !ok {
				return nil, utils.BadRequest(fmt.Errorf("kind: unknown event kind %q", k))
			}
			filter.Kinds = append(filter.Kinds, kind)
		}
	}
	if q.Has("from") || q.Has("to") {
		from, err := utils.Uint64Query(req, "from", 0)
		if err != nil {
			return nil, err
		}
		to, err := utils.Uint64Query(req, "to", 0)
		if err != nil {
			return nil, err
		}
		if q.Has("to") && to < from {
			return nil, utils.BadRequest(errors.New("to: must not be below from"))
		}
		filter.Range = &eventdb.Range{From: from, To: to}
	}
	switch strings.ToLower(q.Get("order")) {
	case "", "asc":
	case "desc":
		filter.Order = eventdb.DESC
	default:
		return nil, utils.BadRequest(errors.New("order: must be asc or desc"))
	}

	offset, err := utils.Uint64Query(req, "offset", 0)
	if err != nil {
		return nil, err
	}
	limit, err := utils.Uint64Query(req, "limit", e.limit)
	if err != nil {
		return nil, err
	}
	if limit > e.limit {
		return nil, utils.Forbidden(fmt.Errorf("limit: exceeds maximum of %d", e.limit))
	}
	filter.Options = &eventdb.Options{Offset: offset, Limit: limit}
	return filter, nil
}

func parseKind(s string) (staker.EventKind, bool) {
	for _, k := range staker.EventKinds {
		if strings.EqualFold(string(k), s) {
			return k, true
		}
	}
	return "", false
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	filter, err := e.parseFilter(req)
	if err != nil {
		return err
	}
	evs, err := e.db.Filter(req.Context(), filter)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, types.ConvertEvents(evs))
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodGet).Name("GET /events").HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
