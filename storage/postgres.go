package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"gameplay-analysis-api/config"
)

// IndexDB is the optional Postgres-backed manifest of stored analyses: one
// row per analyzed video, so the set of identifiers can be listed without
// scanning the whole key-value store.
type IndexDB struct {
	db     *sql.DB
	logger *zap.Logger
}

// IndexRow summarizes one stored analysis.
type IndexRow struct {
	ID                  int       `json:"id"`
	VideoName           string    `json:"video_name"`
	Game                string    `json:"game"`
	Mistakes            int       `json:"mistakes"`
	RepeatedErrors      int       `json:"repeated_errors"`
	MissedOpportunities int       `json:"missed_opportunities"`
	CreatedAt           time.Time `json:"created_at"`
}

// OpenIndex connects to Postgres and verifies the connection.
func OpenIndex(cfg config.PostgresConfig, logger *zap.Logger) (*IndexDB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("Analysis index connection established")
	return &IndexDB{db: db, logger: logger}, nil
}

// Close closes the underlying connection pool.
func (i *IndexDB) Close() error { return i.db.Close() }

// CreateSchema creates the index table if it does not exist.
func (i *IndexDB) CreateSchema(ctx context.Context) error {
	_, err := i.db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS video_analyses (
            id SERIAL PRIMARY KEY,
            video_name VARCHAR(255) NOT NULL,
            game VARCHAR(255) NOT NULL,
            mistakes INTEGER NOT NULL,
            repeated_errors INTEGER NOT NULL,
            missed_opportunities INTEGER NOT NULL,
            created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
            UNIQUE(video_name)
        )
    `)
	if err != nil {
		return fmt.Errorf("create video_analyses table: %w", err)
	}

	_, err = i.db.ExecContext(ctx, `
        CREATE INDEX IF NOT EXISTS idx_video_analyses_created_at ON video_analyses(created_at)
    `)
	if err != nil {
		return fmt.Errorf("create video_analyses index: %w", err)
	}

	i.logger.Info("Analysis index schema ready")
	return nil
}

// Insert records one analyzed video in the index.
func (i *IndexDB) Insert(ctx context.Context, row IndexRow) error {
	_, err := i.db.ExecContext(ctx, `
        INSERT INTO video_analyses (video_name, game, mistakes, repeated_errors, missed_opportunities)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (video_name) DO NOTHING
    `, row.VideoName, row.Game, row.Mistakes, row.RepeatedErrors, row.MissedOpportunities)
	if err != nil {
		return fmt.Errorf("insert index row for %s: %w", row.VideoName, err)
	}
	return nil
}

// List returns every indexed analysis, newest first.
func (i *IndexDB) List(ctx context.Context) ([]IndexRow, error) {
	rows, err := i.db.QueryContext(ctx, `
        SELECT id, video_name, game, mistakes, repeated_errors, missed_opportunities, created_at
        FROM video_analyses
        ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	defer rows.Close()

	var out []IndexRow
	for rows.Next() {
		var r IndexRow
		if err := rows.Scan(&r.ID, &r.VideoName, &r.Game, &r.Mistakes, &r.RepeatedErrors, &r.MissedOpportunities, &r.CreatedAt); err != nil {
			i.logger.Error("Index row scan failed", zap.Error(err))
			continue
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
