// Package sqlite provides a SQLite implementation of the RelationalDB interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/andyphuawc114/boardgamewhiz/internal/domain/entities"
	"github.com/andyphuawc114/boardgamewhiz/internal/infrastructure/config"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.RelationalDB using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	// busy_timeout in the DSN applies to every pooled connection
	dsn := cfg.Path
	if cfg.Path != ":memory:" {
		dsn += "?_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Every connection to :memory: is a separate database
	if cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS reviews (
		id TEXT PRIMARY KEY,
		bgg_id INTEGER NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		user TEXT NOT NULL DEFAULT '',
		rating REAL NOT NULL DEFAULT 0,
		comment TEXT NOT NULL,
		sentiment TEXT NOT NULL,
		subjectivity REAL NOT NULL DEFAULT 0,
		label_proba REAL NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_reviews_game_sentiment ON reviews(bgg_id, sentiment, label_proba DESC);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

// SaveReviews inserts or replaces reviews by ID in a single transaction.
func (r *Repository) SaveReviews(ctx context.Context, reviews []entities.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO reviews (id, bgg_id, name, user, rating, comment, sentiment, subjectivity, label_proba, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			bgg_id = excluded.bgg_id,
			name = excluded.name,
			user = excluded.user,
			rating = excluded.rating,
			comment = excluded.comment,
			sentiment = excluded.sentiment,
			subjectivity = excluded.subjectivity,
			label_proba = excluded.label_proba
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i := range reviews {
		rv := &reviews[i]
		if rv.ID == "" {
			return fmt.Errorf("review of game %d has no id", rv.GameID)
		}
		createdAt := rv.CreatedAt
		if createdAt.IsZero() {
			createdAt = timeNow()
		}
		if _, err := stmt.ExecContext(ctx,
			rv.ID, rv.GameID, rv.GameName, rv.User, rv.Rating, rv.Comment,
			string(rv.Sentiment), rv.Subjectivity, rv.LabelProba, createdAt,
		); err != nil {
			return fmt.Errorf("saving review %s: %w", rv.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reviews: %w", err)
	}
	return nil
}

const reviewColumns = `id, bgg_id, name, user, rating, comment, sentiment, subjectivity, label_proba, created_at`

// FindReviews returns the reviews of one game matching the query, most confident label first.
func (r *Repository) FindReviews(ctx context.Context, q entities.ReviewQuery) ([]entities.Review, error) {
	var (
		where = []string{"bgg_id = ?"}
		args  = []any{q.GameID}
	)
	if q.Sentiment != "" {
		where = append(where, "sentiment = ?")
		args = append(args, string(q.Sentiment))
	}
	if q.Rating != nil {
		where = append(where, "CAST(rating AS INTEGER) = ?")
		args = append(args, *q.Rating)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews
		WHERE %s
		ORDER BY label_proba DESC, id ASC
		LIMIT ?
	`, reviewColumns, strings.Join(where, " AND "))

	return r.queryReviews(ctx, query, args...)
}

// FindReviewsByIDs finds multiple reviews by their IDs in a single query.
func (r *Repository) FindReviewsByIDs(ctx context.Context, ids []string) ([]entities.Review, error) {
	if len(ids) == 0 {
		return []entities.Review{}, nil
	}

	// Build placeholders for IN clause
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE id IN (%s)`, reviewColumns, strings.Join(placeholders, ","))
	return r.queryReviews(ctx, query, args...)
}

// ListReviews lists all reviews with pagination.
func (r *Repository) ListReviews(ctx context.Context, limit, offset int) ([]entities.Review, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM reviews
		ORDER BY id ASC
		LIMIT ? OFFSET ?
	`, reviewColumns)
	return r.queryReviews(ctx, query, limit, offset)
}

// CountReviews returns the number of reviews of a game, or of all games when gameID is 0.
func (r *Repository) CountReviews(ctx context.Context, gameID int64) (int, error) {
	query := `SELECT COUNT(*) FROM reviews`
	var args []any
	if gameID != 0 {
		query += ` WHERE bgg_id = ?`
		args = append(args, gameID)
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting reviews: %w", err)
	}
	return count, nil
}

// CountBySentiment returns the number of reviews of a game per sentiment.
func (r *Repository) CountBySentiment(ctx context.Context, gameID int64) (map[entities.Sentiment]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT sentiment, COUNT(*)
		FROM reviews
		WHERE bgg_id = ?
		GROUP BY sentiment
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("counting reviews by sentiment: %w", err)
	}
	defer rows.Close()

	counts := make(map[entities.Sentiment]int)
	for rows.Next() {
		var (
			sentiment string
			n         int
		)
		if err := rows.Scan(&sentiment, &n); err != nil {
			return nil, fmt.Errorf("scanning sentiment count: %w", err)
		}
		counts[entities.Sentiment(sentiment)] = n
	}
	return counts, rows.Err()
}

func (r *Repository) queryReviews(ctx context.Context, query string, args ...any) ([]entities.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reviews: %w", err)
	}
	defer rows.Close()

	result := []entities.Review{}
	for rows.Next() {
		var (
			rv        entities.Review
			sentiment string
		)
		if err := rows.Scan(
			&rv.ID,
			&rv.GameID,
			&rv.GameName,
			&rv.User,
			&rv.Rating,
			&rv.Comment,
			&sentiment,
			&rv.Subjectivity,
			&rv.LabelProba,
			&rv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}
		rv.Sentiment = entities.Sentiment(sentiment)
		result = append(result, rv)
	}
	return result, rows.Err()
}
