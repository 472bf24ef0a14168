// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

// amounts are decimal strings; NULL when the event kind carries no such amount.
const eventTableSchema = `
CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY,
	kind TEXT NOT NULL,
	actor BLOB(20) NOT NULL,
	counterparty BLOB(20) NOT NULL,
	asset INTEGER NOT NULL,
	tier INTEGER NOT NULL,
	stakeIndex INTEGER NOT NULL,
	amount TEXT,
	principal TEXT,
	rewards TEXT,
	fee TEXT,
	lockUntil INTEGER NOT NULL,
	timestamp INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS event_i0 ON event(actor, seq);
CREATE INDEX IF NOT EXISTS event_i1 ON event(kind, seq);
CREATE INDEX IF NOT EXISTS event_i2 ON event(timestamp);
`
