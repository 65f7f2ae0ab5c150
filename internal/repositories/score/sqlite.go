package score

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/KirkDiggler/crocodile/internal/common/clock"
	"github.com/KirkDiggler/crocodile/internal/models"
	"github.com/KirkDiggler/crocodile/internal/repositories"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const schema = `
CREATE TABLE IF NOT EXISTS scores (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	chat_id      TEXT    NOT NULL,
	user_id      TEXT    NOT NULL,
	display_name TEXT    NOT NULL DEFAULT '',
	score        INTEGER NOT NULL DEFAULT 0 CHECK (score >= 0),
	coins        INTEGER NOT NULL DEFAULT 0 CHECK (coins >= 0),
	xp           INTEGER NOT NULL DEFAULT 0 CHECK (xp >= 0),
	created_at   INTEGER NOT NULL,
	updated_at   INTEGER NOT NULL,
	UNIQUE (chat_id, user_id)
);
CREATE INDEX IF NOT EXISTS idx_scores_leaderboard ON scores (chat_id, score DESC, created_at, id);
`

const upsertScore = `
INSERT INTO scores (chat_id, user_id, display_name, score, coins, xp, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (chat_id, user_id) DO UPDATE SET
	display_name = CASE WHEN excluded.display_name <> '' THEN excluded.display_name ELSE scores.display_name END,
	score        = scores.score + excluded.score,
	coins        = scores.coins + excluded.coins,
	xp           = scores.xp + excluded.xp,
	updated_at   = excluded.updated_at`

const selectColumns = `chat_id, user_id, display_name, score, coins, xp, created_at, updated_at`

// Config holds configuration for the SQLite score repository
type Config struct {
	// DB is an open handle, see Open
	DB *sql.DB

	// Clock stamps created_at and updated_at
	Clock clock.Clock
}

// sqliteRepository implements the Repository interface on SQLite
type sqliteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open opens (and creates if missing) the SQLite database at path.
// ":memory:" opens a private in-memory database.
func Open(path string) (*sql.DB, error) {
	dsn := path + "?_busy_timeout=5000&_foreign_keys=on"
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
		dsn += "&_journal_mode=WAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	// one writer at a time, and an in-memory database lives on a single connection
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewSQLite creates the score repository and applies the schema
func NewSQLite(cfg *Config) (*sqliteRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DB == nil {
		return nil, errors.New("db cannot be nil")
	}

	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	if _, err := cfg.DB.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Debug().Msg("score schema applied")

	return &sqliteRepository{
		db:    cfg.DB,
		clock: cfg.Clock,
	}, nil
}

// Ping checks that the database answers
func (r *sqliteRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return repositories.NewStorageError("ping scores", err)
	}
	return nil
}

// GetScore returns the stored record or a zeroed one
func (r *sqliteRepository) GetScore(ctx context.Context, input *GetScoreInput) (*models.ScoreRecord, error) {
	if input == nil || input.ChatID == "" || input.UserID == "" {
		return nil, errors.New("input, chat ID and user ID cannot be empty")
	}

	record, err := getRecord(ctx, r.db, input.ChatID, input.UserID)
	if err != nil {
		return nil, repositories.NewStorageError("get score", err)
	}

	return record, nil
}

// Increment upserts the record and returns its new totals
func (r *sqliteRepository) Increment(ctx context.Context, input *IncrementInput) (*models.ScoreRecord, error) {
	if input == nil || input.ChatID == "" || input.UserID == "" {
		return nil, errors.New("input, chat ID and user ID cannot be empty")
	}

	if input.Score < 0 || input.Coins < 0 || input.XP < 0 {
		return nil, errors.New("deltas cannot be negative")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, repositories.NewStorageError("increment score", err)
	}
	defer tx.Rollback()

	now := r.clock.Now().UnixMilli()
	if _, err := tx.ExecContext(ctx, upsertScore,
		input.ChatID, input.UserID, input.DisplayName,
		input.Score, input.Coins, input.XP, now, now,
	); err != nil {
		return nil, repositories.NewStorageError("increment score", err)
	}

	record, err := getRecord(ctx, tx, input.ChatID, input.UserID)
	if err != nil {
		return nil, repositories.NewStorageError("increment score", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, repositories.NewStorageError("increment score", err)
	}

	return record, nil
}

// Transfer debits the sender and credits the receiver in one transaction.
// Nothing changes when the sender holds fewer coins than the amount.
func (r *sqliteRepository) Transfer(ctx context.Context, input *TransferInput) (*TransferOutput, error) {
	if input == nil || input.ChatID == "" || input.FromUserID == "" || input.ToUserID == "" {
		return nil, errors.New("input, chat ID and user IDs cannot be empty")
	}

	if input.Amount <= 0 {
		return nil, errors.New("amount must be positive")
	}

	if input.FromUserID == input.ToUserID {
		return nil, errors.New("cannot transfer to the same user")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, repositories.NewStorageError("transfer coins", err)
	}
	defer tx.Rollback()

	var coins int64
	err = tx.QueryRowContext(ctx,
		`SELECT coins FROM scores WHERE chat_id = ? AND user_id = ?`,
		input.ChatID, input.FromUserID,
	).Scan(&coins)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, repositories.NewStorageError("transfer coins", err)
	}

	if coins < input.Amount {
		return nil, ErrInsufficientFunds
	}

	now := r.clock.Now().UnixMilli()
	if _, err := tx.ExecContext(ctx,
		`UPDATE scores SET coins = coins - ?, updated_at = ? WHERE chat_id = ? AND user_id = ?`,
		input.Amount, now, input.ChatID, input.FromUserID,
	); err != nil {
		return nil, repositories.NewStorageError("transfer coins", err)
	}

	if _, err := tx.ExecContext(ctx, upsertScore,
		input.ChatID, input.ToUserID, input.ToDisplayName,
		0, input.Amount, 0, now, now,
	); err != nil {
		return nil, repositories.NewStorageError("transfer coins", err)
	}

	from, err := getRecord(ctx, tx, input.ChatID, input.FromUserID)
	if err != nil {
		return nil, repositories.NewStorageError("transfer coins", err)
	}

	to, err := getRecord(ctx, tx, input.ChatID, input.ToUserID)
	if err != nil {
		return nil, repositories.NewStorageError("transfer coins", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, repositories.NewStorageError("transfer coins", err)
	}

	return &TransferOutput{From: from, To: to}, nil
}

// TopN orders by score, then by who scored first
func (r *sqliteRepository) TopN(ctx context.Context, input *TopNInput) ([]*models.ScoreRecord, error) {
	if input == nil || input.ChatID == "" {
		return nil, errors.New("input and chat ID cannot be empty")
	}

	if input.Limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM scores
		 WHERE chat_id = ?
		 ORDER BY score DESC, created_at ASC, id ASC
		 LIMIT ?`,
		input.ChatID, input.Limit,
	)
	if err != nil {
		return nil, repositories.NewStorageError("top scores", err)
	}
	defer rows.Close()

	records := make([]*models.ScoreRecord, 0, input.Limit)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, repositories.NewStorageError("top scores", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, repositories.NewStorageError("top scores", err)
	}

	return records, nil
}

func getRecord(ctx context.Context, q queryer, chatID, userID string) (*models.ScoreRecord, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM scores WHERE chat_id = ? AND user_id = ?`,
		chatID, userID,
	)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.ScoreRecord{ChatID: chatID, UserID: userID}, nil
	}

	return record, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*models.ScoreRecord, error) {
	var (
		record    models.ScoreRecord
		createdAt int64
		updatedAt int64
	)

	if err := row.Scan(
		&record.ChatID, &record.UserID, &record.DisplayName,
		&record.Score, &record.Coins, &record.XP,
		&createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	record.CreatedAt = time.UnixMilli(createdAt).UTC()
	record.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return &record, nil
}
