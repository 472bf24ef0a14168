// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"context"
	"database/sql"
	"strings"

	"github.com/holiman/uint256"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/spacemoney/stakeledger/core"
	"github.com/spacemoney/stakeledger/staker"
	"github.com/spacemoney/stakeledger/staker/tiers"
)

const (
	insertEvent = "INSERT OR REPLACE INTO event(seq, kind, actor, counterparty, asset, tier, stakeIndex, amount, principal, rewards, fee, lockUntil, timestamp) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	selectEvent = "SELECT seq, kind, actor, counterparty, asset, tier, stakeIndex, amount, principal, rewards, fee, lockUntil, timestamp FROM event"
)

var _ staker.Journal = (*EventDB)(nil)

// EventDB journals staking events in sqlite for history queries.
type EventDB struct {
	path          string
	db            *sql.DB
	driverVersion string
	stmtCache     *stmtCache
}

// New create or open event db at given path.
func New(path string) (eventDB *EventDB, err error) {
	dsn := path
	if path != ":memory:" {
		dsn += "?_journal_mode=WAL"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	defer func() {
		if eventDB == nil {
			db.Close()
		}
	}()
	// sqlite allows a single writer; an in memory db must also stay on one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, errors.Wrap(err, "create schema")
	}

	driverVer, _, _ := sqlite3.Version()
	return &EventDB{
		path:          path,
		db:            db,
		driverVersion: driverVer,
		stmtCache:     newStmtCache(db),
	}, nil
}

// NewMem create an event db in ram.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Close close the event db.
func (db *EventDB) Close() error {
	if err := db.stmtCache.Close(); err != nil {
		_ = db.db.Close()
		return err
	}
	return db.db.Close()
}

func (db *EventDB) Path() string {
	return db.path
}

func (db *EventDB) DriverVersion() string {
	return db.driverVersion
}

// Append writes events in one transaction. Re-appending a sequence number replaces it.
func (db *EventDB) Append(events ...*staker.Event) error {
	if len(events) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	stmt, release, err := db.stmtCache.Prepare(insertEvent)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer release()
	txStmt := tx.Stmt(stmt)
	for _, ev := range events {
		if _, err := txStmt.Exec(
			ev.Seq,
			string(ev.Kind),
			ev.Actor.Bytes(),
			ev.Counterparty.Bytes(),
			uint8(ev.Asset),
			uint8(ev.Tier),
			ev.StakeIndex,
			amountValue(ev.Amount),
			amountValue(ev.Principal),
			amountValue(ev.Rewards),
			amountValue(ev.Fee),
			ev.LockUntil,
			ev.Timestamp,
		); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "insert event %d", ev.Seq)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	metricAppended().Add(int64(len(events)))
	return nil
}

// LastSeq returns the highest journaled sequence number, 0 when empty.
func (db *EventDB) LastSeq(ctx context.Context) (uint64, error) {
	var seq sql.NullInt64
	if err := db.db.QueryRowContext(ctx, "SELECT MAX(seq) FROM event").Scan(&seq); err != nil {
		return 0, err
	}
	return uint64(seq.Int64), nil
}

// Filter returns journaled events matching filter, ordered by sequence.
func (db *EventDB) Filter(ctx context.Context, filter *Filter) ([]*staker.Event, error) {
	if filter == nil {
		return db.query(ctx, selectEvent+" ORDER BY seq ASC")
	}
	metricsHandleFilter(filter)

	var args []any
	stmt := selectEvent + " WHERE 1"
	if filter.Actor != nil {
		args = append(args, filter.Actor.Bytes())
		stmt += " AND actor = ?"
	}
	if len(filter.Kinds) > 0 {
		stmt += " AND kind IN (" + strings.TrimSuffix(strings.Repeat("?,", len(filter.Kinds)), ",") + ")"
		for _, k := range filter.Kinds {
			args = append(args, string(k))
		}
	}
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND timestamp >= ?"
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND timestamp <= ?"
		}
	}

	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC"
	} else {
		stmt += " ORDER BY seq ASC"
	}

	if filter.Options != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(ctx, stmt, args...)
}

func (db *EventDB) query(ctx context.Context, stmt string, args ...any) ([]*staker.Event, error) {
	prepared, release, err := db.stmtCache.Prepare(stmt)
	if err != nil {
		return nil, err
	}
	defer release()
	rows, err := prepared.QueryContext(ctx, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*staker.Event
	for rows.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var (
			ev                              staker.Event
			kind                            string
			actor, counterparty             []byte
			asset, tier                     uint8
			amount, principal, rewards, fee sql.NullString
		)
		if err := rows.Scan(
			&ev.Seq,
			&kind,
			&actor,
			&counterparty,
			&asset,
			&tier,
			&ev.StakeIndex,
			&amount,
			&principal,
			&rewards,
			&fee,
			&ev.LockUntil,
			&ev.Timestamp,
		); err != nil {
			return nil, err
		}
		ev.Kind = staker.EventKind(kind)
		ev.Actor = core.BytesToAddress(actor)
		ev.Counterparty = core.BytesToAddress(counterparty)
		ev.Asset = core.Asset(asset)
		ev.Tier = tiers.ID(tier)
		for _, f := range []struct {
			dst **uint256.Int
			src sql.NullString
		}{{&ev.Amount, amount}, {&ev.Principal, principal}, {&ev.Rewards, rewards}, {&ev.Fee, fee}} {
			if *f.dst, err = parseAmount(f.src); err != nil {
				return nil, errors.Wrapf(err, "event %d", ev.Seq)
			}
		}
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func amountValue(v *uint256.Int) any {
	if v == nil {
		return nil
	}
	return v.Dec()
}

func parseAmount(s sql.NullString) (*uint256.Int, error) {
	if !s.Valid {
		return nil, nil
	}
	return uint256.FromDecimal(s.String)
}
