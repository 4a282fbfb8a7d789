package itemrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/outfit-studio/internal/domain/wardrobe"
)

const itemColumns = `id, name, category, description, colors, tags, image_url, created_at, updated_at`

// PostgresRepository implements wardrobe.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Insert stores a new item.
func (r *PostgresRepository) Insert(ctx context.Context, item wardrobe.Item) (wardrobe.Item, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO wardrobe_items (id, name, category, description, colors, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+itemColumns,
		item.ID, item.Name, item.Category, item.Description, item.Colors, item.Tags, item.CreatedAt, item.UpdatedAt)
	return scanItem(row)
}

// Get fetches one item.
func (r *PostgresRepository) Get(ctx context.Context, id string) (wardrobe.Item, bool, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM wardrobe_items WHERE id = $1`, id)
	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return wardrobe.Item{}, false, nil
	}
	if err != nil {
		return wardrobe.Item{}, false, err
	}
	return item, true, nil
}

// List applies the filter in SQL. Tags and colors use array overlap.
func (r *PostgresRepository) List(ctx context.Context, filter wardrobe.Filter) (wardrobe.ListResult, error) {
	where, args := buildWhere(filter)

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM wardrobe_items`+where, args...).Scan(&total); err != nil {
		return wardrobe.ListResult{}, err
	}

	query := `SELECT ` + itemColumns + ` FROM wardrobe_items` + where + orderBy(filter)
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	items, err := r.query(ctx, query, args...)
	if err != nil {
		return wardrobe.ListResult{}, err
	}
	return wardrobe.ListResult{Items: items, TotalCount: total}, nil
}

// All returns every item, oldest first.
func (r *PostgresRepository) All(ctx context.Context) ([]wardrobe.Item, error) {
	return r.query(ctx, `SELECT `+itemColumns+` FROM wardrobe_items ORDER BY created_at ASC, id ASC`)
}

// SetImageURL records the uploaded picture location.
func (r *PostgresRepository) SetImageURL(ctx context.Context, id, url string) (wardrobe.Item, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE wardrobe_items SET image_url = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+itemColumns, id, url)
	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return wardrobe.Item{}, wardrobe.ErrNotFound
	}
	return item, err
}

// Delete removes an item.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM wardrobe_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return wardrobe.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]wardrobe.Item, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]wardrobe.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func buildWhere(filter wardrobe.Filter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if len(filter.Tags) > 0 {
		args = append(args, filter.Tags)
		clauses = append(clauses, fmt.Sprintf("tags && $%d", len(args)))
	}
	if len(filter.Colors) > 0 {
		args = append(args, filter.Colors)
		clauses = append(clauses, fmt.Sprintf("colors && $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// orderBy only emits whitelisted columns.
func orderBy(filter wardrobe.Filter) string {
	column := "created_at"
	switch filter.SortBy {
	case wardrobe.SortByName:
		column = "name"
	case wardrobe.SortByCategory:
		column = "category"
	}
	dir := "DESC"
	if filter.Ascending() {
		dir = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", column, dir, dir)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (wardrobe.Item, error) {
	var (
		item     wardrobe.Item
		imageURL sql.NullString
	)
	if err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Description,
		&item.Colors, &item.Tags, &imageURL, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return wardrobe.Item{}, err
	}
	item.ImageURL = imageURL.String
	if item.Colors == nil {
		item.Colors = []string{}
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	return item, nil
}

var _ wardrobe.Repository = (*PostgresRepository)(nil)
