package repository

import (
	"context"

	"property-marketplace/internal/domain/model"
)

type ReferralRepository interface {
	Create(ctx context.Context, tx Tx, ref *model.Referral) error
	ListByCode(ctx context.Context, tx Tx, code string, limit int) ([]*model.Referral, error)
}
