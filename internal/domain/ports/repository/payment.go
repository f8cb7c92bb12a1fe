package repository

import (
	"context"
	"time"

	"property-marketplace/internal/domain/model"
)

// PaymentRepository persists payment records. Create is called exactly once
// per verified settlement; a duplicate provider reference must surface as
// domain.ErrAlreadyExists (unique constraint), not as a second row. Rows are
// never updated after insert; deferred confirmations live in the pending
// attempt store until verification settles them.
type PaymentRepository interface {
	Create(ctx context.Context, tx Tx, p *model.Payment) (string, error)
	FindByID(ctx context.Context, tx Tx, id string) (*model.Payment, error)
	FindByProviderRef(ctx context.Context, tx Tx, providerRef string) (*model.Payment, error)
	ListByUser(ctx context.Context, tx Tx, userID string, limit int) ([]*model.Payment, error)
	SumCompletedSince(ctx context.Context, tx Tx, since time.Time) (float64, error)
}
