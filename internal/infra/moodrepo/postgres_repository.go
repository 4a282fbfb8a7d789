package moodrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/outfit-studio/internal/domain/mood"
)

const moodColumns = `id, title, description, colors, tags, vibe, emoji, created_at, updated_at`

// PostgresRepository implements mood.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores a mood.
func (r *PostgresRepository) Insert(ctx context.Context, m mood.Mood) (mood.Mood, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO moods (id, title, description, colors, tags, vibe, emoji, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+moodColumns,
		m.ID, m.Title, m.Description, m.Colors, m.Tags, string(m.Vibe), m.Emoji, m.CreatedAt, m.UpdatedAt)
	return scanMood(row)
}

// Get fetches a mood by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (mood.Mood, bool, error) {
	m, err := scanMood(r.pool.QueryRow(ctx, `SELECT `+moodColumns+` FROM moods WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return mood.Mood{}, false, nil
	}
	if err != nil {
		return mood.Mood{}, false, err
	}
	return m, true, nil
}

// List returns moods newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]mood.Mood, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+moodColumns+` FROM moods ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	moods := make([]mood.Mood, 0)
	for rows.Next() {
		m, err := scanMood(rows)
		if err != nil {
			return nil, err
		}
		moods = append(moods, m)
	}
	return moods, rows.Err()
}

// Update rewrites the editable fields.
func (r *PostgresRepository) Update(ctx context.Context, m mood.Mood) (mood.Mood, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE moods
		SET title = $2, description = $3, colors = $4, tags = $5, vibe = $6, emoji = $7, updated_at = $8
		WHERE id = $1
		RETURNING `+moodColumns,
		m.ID, m.Title, m.Description, m.Colors, m.Tags, string(m.Vibe), m.Emoji, m.UpdatedAt)
	updated, err := scanMood(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return mood.Mood{}, mood.ErrNotFound
	}
	return updated, err
}

// Delete removes a mood.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM moods WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return mood.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMood(row rowScanner) (mood.Mood, error) {
	var (
		m    mood.Mood
		vibe string
	)
	if err := row.Scan(&m.ID, &m.Title, &m.Description, &m.Colors, &m.Tags, &vibe, &m.Emoji, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return mood.Mood{}, err
	}
	m.Vibe = mood.Vibe(vibe)
	return m, nil
}

var _ mood.Repository = (*PostgresRepository)(nil)
