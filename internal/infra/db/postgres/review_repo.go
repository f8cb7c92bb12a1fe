package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"property-marketplace/internal/domain"
	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/repository"
)

// Ensure interface compliance at compile time
var _ repository.ReviewRepository = (*reviewRepo)(nil)

type reviewRepo struct{ pool *pgxpool.Pool }

func NewReviewRepo(pool *pgxpool.Pool) *reviewRepo {
	return &reviewRepo{pool: pool}
}

func (r *reviewRepo) Save(ctx context.Context, tx repository.Tx, rev *model.Review) error {
	const q = `
INSERT INTO reviews (id, property_id, user_id, rating, comment, created_at)
VALUES ($1,$2,$3,$4,$5,$6);`
	_, err := execSQL(ctx, r.pool, tx, q, rev.ID, rev.PropertyID, rev.UserID, rev.Rating, rev.Comment, rev.CreatedAt)
	if err != nil {
		return fmt.Errorf("save review: %w", err)
	}
	return nil
}

func (r *reviewRepo) ListByProperty(ctx context.Context, tx repository.Tx, propertyID string, limit int) ([]*model.Review, error) {
	const q = `
SELECT id, property_id, user_id, rating, comment, created_at
  FROM reviews
 WHERE property_id=$1
 ORDER BY created_at DESC
 LIMIT $2;`
	rows, err := queryRows(ctx, r.pool, tx, q, propertyID, limit)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var out []*model.Review
	for rows.Next() {
		rev := &model.Review{}
		if err := rows.Scan(&rev.ID, &rev.PropertyID, &rev.UserID, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}
