// Package store persists simulation runs to Postgres.
package store

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lox/tagpoker/internal/statistics"
	"github.com/lox/tagpoker/sdk/strategy"
)

//go:embed schema.sql
var schema embed.FS

type DB struct{ *pgxpool.Pool }

func Open(ctx context.Context, dsn string) (*DB, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &DB{p}, nil
}

func (db *DB) Close()                         { db.Pool.Close() }
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

// Migrate creates the tables if they do not exist.
func (db *DB) Migrate(ctx context.Context) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

// Run is a finished simulation to record.
type Run struct {
	Strategy string
	Street   strategy.Street
	Seed     int64
	Elapsed  time.Duration
	Stats    *statistics.Statistics
}

// RunSummary is a stored run row.
type RunSummary struct {
	ID        int64
	Strategy  string
	Street    string
	Seed      int64
	Boards    int
	Passes    int
	Showdowns int
	Wins      int
	Ties      int
	Losses    int
	Elapsed   time.Duration
	CreatedAt time.Time
}

// PassRate is the fraction of boards that met the minimum.
func (r RunSummary) PassRate() float64 {
	if r.Boards == 0 {
		return 0
	}
	return float64(r.Passes) / float64(r.Boards)
}

// WinRate is showdown equity with ties counted as half.
func (r RunSummary) WinRate() float64 {
	if r.Showdowns == 0 {
		return 0
	}
	return (float64(r.Wins) + float64(r.Ties)/2) / float64(r.Showdowns)
}

var textureColumns = []string{
	"run_id", "texture", "tier", "boards", "passes", "showdowns", "wins", "ties", "losses",
}

// SaveRun writes the run and its per-texture breakdown in one transaction
// and returns the run id.
func (db *DB) SaveRun(ctx context.Context, run Run) (int64, error) {
	if run.Stats == nil {
		return 0, fmt.Errorf("save run: no statistics")
	}
	s := run.Stats

	var id int64
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO runs(strategy, street, seed, boards, passes, showdowns,
			                 wins, ties, losses, unscored, elapsed_ms)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
			RETURNING id
		`, run.Strategy, run.Street.String(), run.Seed, s.Boards, s.Passes, s.Showdowns,
			s.Wins, s.Ties, s.Losses, s.Unscored, run.Elapsed.Milliseconds()).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		textures := s.Textures()
		rows := make([][]any, 0, len(textures))
		for _, t := range textures {
			b := s.ByTexture[t]
			rows = append(rows, []any{
				id, t.String(), strategy.TierOf(t).String(),
				b.Boards, b.Passes, b.Showdowns, b.Wins, b.Ties, b.Losses,
			})
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"run_textures"}, textureColumns, pgx.CopyFromRows(rows)); err != nil {
			return fmt.Errorf("copy textures: %w", err)
		}
		return nil
	})
	return id, err
}

// RecentRuns returns up to limit runs, newest first.
func (db *DB) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := db.Query(ctx, `
		SELECT id, strategy, street, seed, boards, passes, showdowns,
		       wins, ties, losses, elapsed_ms, created_at
		  FROM runs
		 ORDER BY id DESC
		 LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		var ms int64
		if err := rows.Scan(&r.ID, &r.Strategy, &r.Street, &r.Seed, &r.Boards, &r.Passes,
			&r.Showdowns, &r.Wins, &r.Ties, &r.Losses, &ms, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Elapsed = time.Duration(ms) * time.Millisecond
		out = append(out, r)
	}
	return out, rows.Err()
}

// TextureBuckets returns the stored per-texture counts for a run.
func (db *DB) TextureBuckets(ctx context.Context, runID int64) (map[string]statistics.Bucket, error) {
	rows, err := db.Query(ctx, `
		SELECT texture, boards, passes, showdowns, wins, ties, losses
		  FROM run_textures
		 WHERE run_id = $1
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]statistics.Bucket{}
	for rows.Next() {
		var name string
		var b statistics.Bucket
		if err := rows.Scan(&name, &b.Boards, &b.Passes, &b.Showdowns, &b.Wins, &b.Ties, &b.Losses); err != nil {
			return nil, err
		}
		out[name] = b
	}
	return out, rows.Err()
}
