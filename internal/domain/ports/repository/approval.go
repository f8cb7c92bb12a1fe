package repository

import (
	"context"

	"property-marketplace/internal/domain/model"
)

type ApprovalRepository interface {
	Save(ctx context.Context, tx Tx, a *model.Approval) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Approval, error)
	ListPending(ctx context.Context, tx Tx) ([]*model.Approval, error)
	UpdateStatus(ctx context.Context, tx Tx, id string, status model.ApprovalStatus, reason string) error
}
