package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tagpoker/internal/statistics"
	"github.com/lox/tagpoker/sdk/classification"
	"github.com/lox/tagpoker/sdk/strategy"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("TAGPOKER_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TAGPOKER_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Ping(ctx))
	require.NoError(t, db.Migrate(ctx))
	// Migrations are idempotent
	require.NoError(t, db.Migrate(ctx))
	return db
}

func TestSaveRun(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	stats := statistics.New()
	stats.Add(statistics.BoardResult{
		Street:   strategy.River,
		Texture:  classification.TextureOnePair,
		Tier:     strategy.Scary,
		Required: strategy.Trips,
		Score:    strategy.Trips,
		Scored:   true,
		Passed:   true,
		Outcome:  statistics.Win,
	})
	stats.Add(statistics.BoardResult{
		Street:   strategy.River,
		Texture:  classification.NoTexture,
		Tier:     strategy.NonScary,
		Required: strategy.Overpair,
	})

	id, err := db.SaveRun(ctx, Run{
		Strategy: "tight-aggressive",
		Street:   strategy.River,
		Seed:     7,
		Elapsed:  1500 * time.Millisecond,
		Stats:    stats,
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	runs, err := db.RecentRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, "river", runs[0].Street)
	assert.Equal(t, 2, runs[0].Boards)
	assert.Equal(t, 1, runs[0].Wins)
	assert.Equal(t, 1500*time.Millisecond, runs[0].Elapsed)
	assert.InDelta(t, 0.5, runs[0].PassRate(), 1e-9)

	buckets, err := db.TextureBuckets(ctx, id)
	require.NoError(t, err)
	assert.Len(t, buckets, 2)
	assert.Equal(t, 1, buckets["one-pair"].Passes)
	assert.Equal(t, 0, buckets["none"].Passes)
}

func TestSaveRunWithoutStats(t *testing.T) {
	t.Parallel()
	var db DB
	_, err := db.SaveRun(context.Background(), Run{})
	assert.Error(t, err)
}

func TestRunSummaryPassRate(t *testing.T) {
	t.Parallel()
	assert.Zero(t, RunSummary{}.PassRate())
	assert.InDelta(t, 0.25, RunSummary{Boards: 4, Passes: 1}.PassRate(), 1e-9)
	assert.Zero(t, RunSummary{}.WinRate())
	assert.InDelta(t, 0.75, RunSummary{Showdowns: 2, Wins: 1, Ties: 1}.WinRate(), 1e-9)
}
