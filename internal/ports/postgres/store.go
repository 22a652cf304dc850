package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tripeaks/internal/app"
	"tripeaks/internal/ports"
)

//go:embed schema.sql
var schema embed.FS

// DB is a pooled connection to the score database.
type DB struct{ *pgxpool.Pool }

// Open connects to dsn.
func Open(ctx context.Context, dsn string) (*DB, error) {
	p, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open pool: %w", err)
	}
	return &DB{p}, nil
}

func (db *DB) Close()                         { db.Pool.Close() }
func (db *DB) Ping(ctx context.Context) error { return db.Pool.Ping(ctx) }

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db *DB) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, string(sqlBytes))
	return err
}

// ScoreStore is a ports.ScoreStore for one player backed by player_values.
type ScoreStore struct {
	db       *DB
	playerID string
}

// PlayerStore returns the store for playerID.
func (db *DB) PlayerStore(playerID string) *ScoreStore {
	return &ScoreStore{db: db, playerID: playerID}
}

// Get returns the value for key, or 0 when the row does not exist.
func (s *ScoreStore) Get(ctx context.Context, key string) (int64, error) {
	var value int64
	err := s.db.QueryRow(ctx, `
		SELECT value FROM player_values
		 WHERE player_id = $1 AND key = $2
	`, s.playerID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read %s for %s: %w", key, s.playerID, err)
	}
	return value, nil
}

// Set upserts value under key.
func (s *ScoreStore) Set(ctx context.Context, key string, value int64) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO player_values(player_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (player_id, key) DO UPDATE
		  SET value = EXCLUDED.value,
		      updated_at = now()
	`, s.playerID, key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s for %s: %w", key, s.playerID, err)
	}
	return nil
}

// RecordRound appends one simulated round to simulated_rounds.
func (db *DB) RecordRound(ctx context.Context, runID uuid.UUID, playerID string, level int, result app.RoundResult) error {
	_, err := db.Exec(ctx, `
		INSERT INTO simulated_rounds(run_id, player_id, level, round, won, total_score, total_coins)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, runID.String(), playerID, level, result.Round, result.Won, result.TotalScore, result.TotalCoins)
	return err
}

// RunSummary aggregates the rounds of one simulator run.
type RunSummary struct {
	Rounds       int
	Wins         int
	AverageScore float64
}

// SummarizeRun reads back the totals for runID.
func (db *DB) SummarizeRun(ctx context.Context, runID uuid.UUID) (RunSummary, error) {
	var sum RunSummary
	err := db.QueryRow(ctx, `
		SELECT count(*), count(*) FILTER (WHERE won), COALESCE(avg(total_score), 0)::float8
		  FROM simulated_rounds
		 WHERE run_id = $1
	`, runID.String()).Scan(&sum.Rounds, &sum.Wins, &sum.AverageScore)
	return sum, err
}

var _ ports.ScoreStore = (*ScoreStore)(nil)
