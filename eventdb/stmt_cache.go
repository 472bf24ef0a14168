// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"database/sql"
	"sync"

	"github.com/pkg/errors"
)

// maxCachedStmts bounds the number of distinct filter shapes kept prepared.
const maxCachedStmts = 256

// stmtCache keeps statements prepared per query text. Filter queries differ only in
// which clauses are present, so the set of texts stays small.
type stmtCache struct {
	db    *sql.DB
	mu    sync.Mutex
	stmts map[string]*sql.Stmt
}

func newStmtCache(db *sql.DB) *stmtCache {
	return &stmtCache{db: db, stmts: make(map[string]*sql.Stmt)}
}

// Prepare returns the statement for query. When the cache is full the statement is
// not kept and release closes it; otherwise release is a no-op.
func (sc *stmtCache) Prepare(query string) (stmt *sql.Stmt, release func(), err error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if stmt, ok := sc.stmts[query]; ok {
		return stmt, func() {}, nil
	}
	stmt, err = sc.db.Prepare(query)
	if err != nil {
		return nil, nil, errors.Wrap(err, "prepare statement")
	}
	if len(sc.stmts) >= maxCachedStmts {
		return stmt, func() { _ = stmt.Close() }, nil
	}
	sc.stmts[query] = stmt
	return stmt, func() {}, nil
}

// Close releases every cached statement and returns the first failure.
func (sc *stmtCache) Close() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var first error
	for query, stmt := range sc.stmts {
		if err := stmt.Close(); err != nil && first == nil {
			first = err
		}
		delete(sc.stmts, query)
	}
	return first
}
