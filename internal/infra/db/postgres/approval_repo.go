package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"property-marketplace/internal/domain"
	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/repository"
)

// Ensure interface compliance at compile time
var _ repository.ApprovalRepository = (*approvalRepo)(nil)

type approvalRepo struct{ pool *pgxpool.Pool }

func NewApprovalRepo(pool *pgxpool.Pool) *approvalRepo {
	return &approvalRepo{pool: pool}
}

const approvalColumns = `id, applicant_name, email, phone, role, company, license, experience, status, reject_reason, submitted_at`

func (r *approvalRepo) Save(ctx context.Context, tx repository.Tx, a *model.Approval) error {
	const q = `
INSERT INTO approvals (id, applicant_name, email, phone, role, company, license, experience, status, reject_reason, submitted_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11);`
	_, err := execSQL(ctx, r.pool, tx, q,
		a.ID, a.ApplicantName, a.Email, a.Phone, string(a.Role),
		a.Company, a.License, a.Experience, string(a.Status), a.RejectReason, a.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("save approval: %w", err)
	}
	return nil
}

func (r *approvalRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Approval, error) {
	q := `SELECT ` + approvalColumns + ` FROM approvals WHERE id=$1`
	if _, ok := tx.(pgx.Tx); ok {
		q += " FOR UPDATE"
	}
	q += ";"
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanApproval(row)
}

func (r *approvalRepo) ListPending(ctx context.Context, tx repository.Tx) ([]*model.Approval, error) {
	q := `SELECT ` + approvalColumns + ` FROM approvals WHERE status='pending' ORDER BY submitted_at DESC;`
	rows, err := queryRows(ctx, r.pool, tx, q)
	if err != nil {
		return nil, fmt.Errorf("list pending approvals: %w", err)
	}
	defer rows.Close()

	var out []*model.Approval
	for rows.Next() {
		a, err := scanApproval(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *approvalRepo) UpdateStatus(ctx context.Context, tx repository.Tx, id string, status model.ApprovalStatus, reason string) error {
	const q = `UPDATE approvals SET status=$2, reject_reason=$3 WHERE id=$1;`
	cmd, err := execSQL(ctx, r.pool, tx, q, id, string(status), reason)
	if err != nil {
		return fmt.Errorf("update approval status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanApproval(row pgx.Row) (*model.Approval, error) {
	a := &model.Approval{}
	var role, status string
	if err := row.Scan(&a.ID, &a.ApplicantName, &a.Email, &a.Phone, &role,
		&a.Company, &a.License, &a.Experience, &status, &a.RejectReason, &a.SubmittedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	a.Role = model.Role(role)
	a.Status = model.ApprovalStatus(status)
	return a, nil
}
