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
var _ repository.ReferralRepository = (*referralRepo)(nil)

type referralRepo struct{ pool *pgxpool.Pool }

func NewReferralRepo(pool *pgxpool.Pool) *referralRepo {
	return &referralRepo{pool: pool}
}

func (r *referralRepo) Create(ctx context.Context, tx repository.Tx, ref *model.Referral) error {
	const q = `
INSERT INTO referrals (id, code, referred_email, created_at)
VALUES ($1,$2,$3,$4);`
	if _, err := execSQL(ctx, r.pool, tx, q, ref.ID, ref.Code, ref.ReferredEmail, ref.CreatedAt); err != nil {
		return fmt.Errorf("insert referral: %w", err)
	}
	return nil
}

func (r *referralRepo) ListByCode(ctx context.Context, tx repository.Tx, code string, limit int) ([]*model.Referral, error) {
	const q = `
SELECT id, code, referred_email, created_at
  FROM referrals
 WHERE code=$1
 ORDER BY created_at DESC
 LIMIT $2;`
	rows, err := queryRows(ctx, r.pool, tx, q, code, limit)
	if err != nil {
		return nil, fmt.Errorf("list referrals: %w", err)
	}
	defer rows.Close()

	var out []*model.Referral
	for rows.Next() {
		ref := &model.Referral{}
		if err := rows.Scan(&ref.ID, &ref.Code, &ref.ReferredEmail, &ref.CreatedAt); err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}
