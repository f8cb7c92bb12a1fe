package usecase

import (
	"context"

	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/repository"
)

// Compile-time check
var _ ReferralUseCase = (*referralUC)(nil)

type ReferralUseCase interface {
	Record(ctx context.Context, code, referredEmail string) (*model.Referral, error)
	ListByCode(ctx context.Context, code string, limit int) ([]*model.Referral, error)
}

type referralUC struct {
	referrals repository.ReferralRepository
}

func NewReferralUseCase(referrals repository.ReferralRepository) *referralUC {
	return &referralUC{referrals: referrals}
}

func (u *referralUC) Record(ctx context.Context, code, referredEmail string) (*model.Referral, error) {
	ref, err := model.NewReferral(code, referredEmail)
	if err != nil {
		return nil, err
	}
	if err := u.referrals.Create(ctx, nil, ref); err != nil {
		return nil, err
	}
	return ref, nil
}

func (u *referralUC) ListByCode(ctx context.Context, code string, limit int) ([]*model.Referral, error) {
	return u.referrals.ListByCode(ctx, nil, code, limit)
}
