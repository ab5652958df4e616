package events

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	id "bureau/pkg/domain"
	dErrors "bureau/pkg/domain-errors"
)

// migrations returns the event log schema statements.
// Each string is a single SQL statement (SQLite executes one at a time).
func migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS credit_events (
			id         TEXT PRIMARY KEY,
			type       TEXT NOT NULL,
			timestamp  TEXT NOT NULL,
			account    TEXT NOT NULL DEFAULT '',
			principal  TEXT NOT NULL DEFAULT '',
			actor      TEXT NOT NULL DEFAULT '',
			device     TEXT NOT NULL DEFAULT '',
			score      INTEGER NOT NULL DEFAULT 0,
			amount     INTEGER NOT NULL DEFAULT 0,
			on_time    INTEGER NOT NULL DEFAULT 0,
			seq        INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_credit_events_account ON credit_events(account, seq)`,
	}
}

// SQLiteStore persists the event stream in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the event database at path and
// applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not open event database")
	}
	// SQLite handles one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent appends.
	db.SetMaxOpenConns(1)

	for _, stmt := range migrations() {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not migrate event database")
		}
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, event Event) error {
	onTime := 0
	if event.OnTime {
		onTime = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO credit_events
			(id, type, timestamp, account, principal, actor, device, score, amount, on_time, seq)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM credit_events))`,
		event.ID,
		string(event.Type),
		event.Timestamp.UTC().Format(time.RFC3339Nano),
		event.Account.String(),
		event.Principal.String(),
		event.Actor.String(),
		event.Device,
		int64(event.Score),
		int64(event.Amount),
		onTime,
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not append event")
	}
	return nil
}

func (s *SQLiteStore) ListByAccount(ctx context.Context, account id.AccountID) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, timestamp, account, principal, actor, device, score, amount, on_time
		   FROM credit_events
		  WHERE account = ?
		  ORDER BY seq`,
		account.String(),
	)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not list events")
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			e                      Event
			ts                     string
			typ, acct, prin, actor string
			score, amount          int64
			onTime                 int
		)
		if err := rows.Scan(&e.ID, &typ, &ts, &acct, &prin, &actor, &e.Device, &score, &amount, &onTime); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not scan event")
		}
		e.Type = Type(typ)
		e.Account = id.AccountID(acct)
		e.Principal = id.PrincipalID(prin)
		e.Actor = id.PrincipalID(actor)
		e.Score = uint64(score)
		e.Amount = uint64(amount)
		e.OnTime = onTime != 0
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.Timestamp = parsed
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not read events")
	}
	return out, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable, for readiness checks.
func (s *SQLiteStore) Ping() error {
	return s.db.Ping()
}
