package summary

import (
	"context"
	"database/sql"
)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Save(ctx context.Context, s *Summary) error {
	query := `INSERT INTO summaries (video_id, url, markdown) VALUES ($1, $2, $3) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, s.VideoID, s.URL, s.Markdown).Scan(&s.ID, &s.CreatedAt)
}

func (r *PostgresRepo) ListRecent(ctx context.Context, limit int) ([]Summary, error) {
	query := `SELECT id, video_id, url, markdown, created_at FROM summaries ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.VideoID, &s.URL, &s.Markdown, &s.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
