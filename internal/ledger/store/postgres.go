package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bureau/internal/ledger"
	id "bureau/pkg/domain"
)

// Schema returns the profile table statements, applied by the server at boot.
// Counters are NUMERIC(20,0) because volumes in the smallest subunit exceed
// the signed 64-bit range postgres BIGINT offers.
func Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS credit_profiles (
			account            TEXT PRIMARY KEY,
			total_transactions NUMERIC(20,0) NOT NULL DEFAULT 0,
			total_volume       NUMERIC(20,0) NOT NULL DEFAULT 0,
			default_count      NUMERIC(20,0) NOT NULL DEFAULT 0,
			on_time_payments   NUMERIC(20,0) NOT NULL DEFAULT 0,
			account_age_days   NUMERIC(20,0) NOT NULL DEFAULT 0,
			last_updated       TIMESTAMPTZ NOT NULL,
			active             BOOLEAN NOT NULL DEFAULT TRUE,
			credit_score       INTEGER NOT NULL DEFAULT 300
		)`,
	}
}

// NewPool connects a pgx pool and verifies connectivity.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolCfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// Postgres persists profiles in PostgreSQL.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed profile store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate applies the profile schema.
func (s *Postgres) Migrate(ctx context.Context) error {
	for _, stmt := range Schema() {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate profiles: %w", err)
		}
	}
	return nil
}

// Find retrieves a profile by account.
func (s *Postgres) Find(ctx context.Context, account id.AccountID) (*ledger.CreditProfile, error) {
	query := `
		SELECT total_transactions::text, total_volume::text, default_count::text,
		       on_time_payments::text, account_age_days::text, last_updated, active, credit_score
		FROM credit_profiles
		WHERE account = $1
	`
	var (
		p                                  ledger.CreditProfile
		txs, volume, defaults, onTime, age string
		score                              int64
	)
	err := s.pool.QueryRow(ctx, query, account.String()).
		Scan(&txs, &volume, &defaults, &onTime, &age, &p.LastUpdated, &p.Active, &score)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}

	for _, f := range []struct {
		src string
		dst *uint64
	}{
		{txs, &p.TotalTransactions},
		{volume, &p.TotalVolume},
		{defaults, &p.DefaultCount},
		{onTime, &p.OnTimePayments},
		{age, &p.AccountAgeDays},
	} {
		v, err := strconv.ParseUint(f.src, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decode profile counter: %w", err)
		}
		*f.dst = v
	}
	p.CreditScore = uint64(score)
	return &p, nil
}

// Save upserts a profile.
func (s *Postgres) Save(ctx context.Context, account id.AccountID, profile *ledger.CreditProfile) error {
	query := `
		INSERT INTO credit_profiles
			(account, total_transactions, total_volume, default_count,
			 on_time_payments, account_age_days, last_updated, active, credit_score)
		VALUES ($1, $2::numeric, $3::numeric, $4::numeric, $5::numeric, $6::numeric, $7, $8, $9)
		ON CONFLICT (account) DO UPDATE SET
			total_transactions = EXCLUDED.total_transactions,
			total_volume       = EXCLUDED.total_volume,
			default_count      = EXCLUDED.default_count,
			on_time_payments   = EXCLUDED.on_time_payments,
			account_age_days   = EXCLUDED.account_age_days,
			last_updated       = EXCLUDED.last_updated,
			active             = EXCLUDED.active,
			credit_score       = EXCLUDED.credit_score
	`
	_, err := s.pool.Exec(ctx, query,
		account.String(),
		strconv.FormatUint(profile.TotalTransactions, 10),
		strconv.FormatUint(profile.TotalVolume, 10),
		strconv.FormatUint(profile.DefaultCount, 10),
		strconv.FormatUint(profile.OnTimePayments, 10),
		strconv.FormatUint(profile.AccountAgeDays, 10),
		profile.LastUpdated,
		profile.Active,
		int64(profile.CreditScore),
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// Exists reports whether an account has a profile.
func (s *Postgres) Exists(ctx context.Context, account id.AccountID) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM credit_profiles WHERE account = $1)`,
		account.String(),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check profile existence: %w", err)
	}
	return exists, nil
}

// Ping reports database reachability, for readiness checks.
func (s *Postgres) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
