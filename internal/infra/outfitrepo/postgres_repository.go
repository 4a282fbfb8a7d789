package outfitrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/yanqian/outfit-studio/internal/domain/outfit"
)

const savedColumns = `id, name, notes, outfit, rating, is_favorite, worn_count, last_worn_at, created_at, updated_at`

// PostgresRepository implements outfit.SavedRepository using pgx. The outfit
// body is stored as JSONB and the palette as a pgvector column.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores a saved outfit with its palette vector.
func (r *PostgresRepository) Insert(ctx context.Context, saved outfit.SavedOutfit, palette []float32) (outfit.SavedOutfit, error) {
	body, err := json.Marshal(saved.Outfit)
	if err != nil {
		return outfit.SavedOutfit{}, fmt.Errorf("encode outfit: %w", err)
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO saved_outfits (id, name, notes, outfit, palette, rating, is_favorite, worn_count, last_worn_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+savedColumns,
		saved.ID, saved.Name, saved.Notes, body, pgvector.NewVector(palette), saved.Rating,
		saved.IsFavorite, saved.WornCount, saved.LastWornAt, saved.CreatedAt, saved.UpdatedAt)
	return scanSaved(row)
}

// Get fetches a saved outfit.
func (r *PostgresRepository) Get(ctx context.Context, id string) (outfit.SavedOutfit, bool, error) {
	saved, err := scanSaved(r.pool.QueryRow(ctx, `SELECT `+savedColumns+` FROM saved_outfits WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return outfit.SavedOutfit{}, false, nil
	}
	if err != nil {
		return outfit.SavedOutfit{}, false, err
	}
	return saved, true, nil
}

// List returns saved outfits newest first.
func (r *PostgresRepository) List(ctx context.Context, filter outfit.SavedFilter) ([]outfit.SavedOutfit, error) {
	query := `SELECT ` + savedColumns + ` FROM saved_outfits`
	var args []any
	if filter.FavoritesOnly {
		query += ` WHERE is_favorite`
	}
	query += ` ORDER BY created_at DESC, id ASC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $1`
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]outfit.SavedOutfit, 0)
	for rows.Next() {
		saved, err := scanSaved(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, saved)
	}
	return out, rows.Err()
}

// Update writes the mutable fields back.
func (r *PostgresRepository) Update(ctx context.Context, saved outfit.SavedOutfit) (outfit.SavedOutfit, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE saved_outfits
		SET name = $2, notes = $3, rating = $4, is_favorite = $5, worn_count = $6, last_worn_at = $7, updated_at = $8
		WHERE id = $1
		RETURNING `+savedColumns,
		saved.ID, saved.Name, saved.Notes, saved.Rating, saved.IsFavorite, saved.WornCount, saved.LastWornAt, saved.UpdatedAt)
	updated, err := scanSaved(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return outfit.SavedOutfit{}, outfit.ErrNotFound
	}
	return updated, err
}

// Delete removes a saved outfit.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM saved_outfits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return outfit.ErrNotFound
	}
	return nil
}

// FindNearest returns the closest palettes by pgvector L2 distance.
func (r *PostgresRepository) FindNearest(ctx context.Context, palette []float32, excludeID string, limit int) ([]outfit.SimilarMatch, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+savedColumns+`, palette <-> $1 AS distance
		FROM saved_outfits
		WHERE id <> $2
		ORDER BY palette <-> $1
		LIMIT $3
	`, pgvector.NewVector(palette), excludeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	matches := make([]outfit.SimilarMatch, 0, limit)
	for rows.Next() {
		var distance float64
		saved, err := scanSaved(rows, &distance)
		if err != nil {
			return nil, err
		}
		matches = append(matches, outfit.SimilarMatch{Saved: saved, Distance: distance})
	}
	return matches, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSaved(row rowScanner, extras ...any) (outfit.SavedOutfit, error) {
	var (
		saved outfit.SavedOutfit
		body  []byte
	)
	args := []any{&saved.ID, &saved.Name, &saved.Notes, &body, &saved.Rating,
		&saved.IsFavorite, &saved.WornCount, &saved.LastWornAt, &saved.CreatedAt, &saved.UpdatedAt}
	args = append(args, extras...)
	if err := row.Scan(args...); err != nil {
		return outfit.SavedOutfit{}, err
	}
	if err := json.Unmarshal(body, &saved.Outfit); err != nil {
		return outfit.SavedOutfit{}, fmt.Errorf("decode outfit: %w", err)
	}
	return saved, nil
}

var _ outfit.SavedRepository = (*PostgresRepository)(nil)
