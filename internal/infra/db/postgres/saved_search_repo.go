package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"property-marketplace/internal/domain"
	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/repository"
)

// Ensure interface compliance at compile time
var _ repository.SavedSearchRepository = (*savedSearchRepo)(nil)

type savedSearchRepo struct{ pool *pgxpool.Pool }

func NewSavedSearchRepo(pool *pgxpool.Pool) *savedSearchRepo {
	return &savedSearchRepo{pool: pool}
}

func (r *savedSearchRepo) Save(ctx context.Context, tx repository.Tx, s *model.SavedSearch) error {
	filters, err := json.Marshal(s.Filters)
	if err != nil {
		return fmt.Errorf("marshal search filters: %w", err)
	}
	const q = `
INSERT INTO saved_searches (id, user_id, name, filters, created_at)
VALUES ($1,$2,$3,$4,$5);`
	if _, err := execSQL(ctx, r.pool, tx, q, s.ID, s.UserID, s.Name, filters, s.CreatedAt); err != nil {
		return fmt.Errorf("save search: %w", err)
	}
	return nil
}

func (r *savedSearchRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string) ([]*model.SavedSearch, error) {
	const q = `
SELECT id, user_id, name, filters, created_at
  FROM saved_searches
 WHERE user_id=$1
 ORDER BY created_at DESC;`
	rows, err := queryRows(ctx, r.pool, tx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list saved searches: %w", err)
	}
	defer rows.Close()

	var out []*model.SavedSearch
	for rows.Next() {
		s := &model.SavedSearch{}
		var filters []byte
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &filters, &s.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		if len(filters) > 0 {
			if err := json.Unmarshal(filters, &s.Filters); err != nil {
				return nil, fmt.Errorf("unmarshal search filters: %w", err)
			}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *savedSearchRepo) Delete(ctx context.Context, tx repository.Tx, id, userID string) error {
	const q = `DELETE FROM saved_searches WHERE id=$1 AND user_id=$2;`
	cmd, err := execSQL(ctx, r.pool, tx, q, id, userID)
	if err != nil {
		return fmt.Errorf("delete saved search: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
