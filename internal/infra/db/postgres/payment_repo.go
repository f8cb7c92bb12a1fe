package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"property-marketplace/internal/domain"
	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/repository"
)

// Ensure interface compliance at compile time
var _ repository.PaymentRepository = (*paymentRepo)(nil)

type paymentRepo struct{ pool *pgxpool.Pool }

func NewPaymentRepo(pool *pgxpool.Pool) *paymentRepo {
	return &paymentRepo{pool: pool}
}

const paymentColumns = `id, user_id, amount, currency, method, status, provider_ref, plan, role, created_at`

// Create inserts the payment row. provider_ref carries a UNIQUE constraint;
// a duplicate reference maps to domain.ErrAlreadyExists so callers can treat
// repeated gateway callbacks idempotently.
func (r *paymentRepo) Create(ctx context.Context, tx repository.Tx, p *model.Payment) (string, error) {
	const q = `
INSERT INTO payments (id, user_id, amount, currency, method, status, provider_ref, plan, role, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10);`
	_, err := execSQL(ctx, r.pool, tx, q,
		p.ID, p.UserID, p.Amount, p.Currency, string(p.Method), string(p.Status),
		p.ProviderRef, string(p.Plan), string(p.Role), p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", domain.ErrAlreadyExists
		}
		return "", fmt.Errorf("insert payment: %w", err)
	}
	return p.ID, nil
}

func (r *paymentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Payment, error) {
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanPayment(row)
}

func (r *paymentRepo) FindByProviderRef(ctx context.Context, tx repository.Tx, providerRef string) (*model.Payment, error) {
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE provider_ref=$1 LIMIT 1;`
	row, err := pickRow(ctx, r.pool, tx, q, providerRef)
	if err != nil {
		return nil, err
	}
	return scanPayment(row)
}

func (r *paymentRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string, limit int) ([]*model.Payment, error) {
	q := `SELECT ` + paymentColumns + ` FROM payments WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2;`
	rows, err := queryRows(ctx, r.pool, tx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	return scanPayments(rows)
}

func (r *paymentRepo) SumCompletedSince(ctx context.Context, tx repository.Tx, since time.Time) (float64, error) {
	const q = `SELECT COALESCE(SUM(amount),0) FROM payments WHERE status='completed' AND created_at >= $1;`
	row, err := pickRow(ctx, r.pool, tx, q, since)
	if err != nil {
		return 0, err
	}
	var sum float64
	if err := row.Scan(&sum); err != nil {
		return 0, domain.ErrReadDatabaseRow
	}
	return sum, nil
}

func scanPayment(row pgx.Row) (*model.Payment, error) {
	p := &model.Payment{}
	var method, status, plan, role string
	if err := row.Scan(&p.ID, &p.UserID, &p.Amount, &p.Currency, &method, &status, &p.ProviderRef, &plan, &role, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	p.Method = model.PaymentMethod(method)
	p.Status = model.PaymentStatus(status)
	p.Plan = model.PlanCadence(plan)
	p.Role = model.Role(role)
	return p, nil
}

func scanPayments(rows pgx.Rows) ([]*model.Payment, error) {
	var out []*model.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
