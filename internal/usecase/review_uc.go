package usecase

import (
	"context"

	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/repository"
)

// Compile-time check
var _ ReviewUseCase = (*reviewUC)(nil)

type ReviewUseCase interface {
	Add(ctx context.Context, propertyID, userID string, rating int, comment string) (*model.Review, error)
	ListByProperty(ctx context.Context, propertyID string, limit int) ([]*model.Review, error)
}

type reviewUC struct {
	reviews    repository.ReviewRepository
	properties repository.PropertyRepository
}

func NewReviewUseCase(reviews repository.ReviewRepository, properties repository.PropertyRepository) *reviewUC {
	return &reviewUC{reviews: reviews, properties: properties}
}

func (u *reviewUC) Add(ctx context.Context, propertyID, userID string, rating int, comment string) (*model.Review, error) {
	if _, err := u.properties.FindByID(ctx, nil, propertyID); err != nil {
		return nil, err
	}
	r, err := model.NewReview(propertyID, userID, rating, comment)
	if err != nil {
		return nil, err
	}
	if err := u.reviews.Save(ctx, nil, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (u *reviewUC) ListByProperty(ctx context.Context, propertyID string, limit int) ([]*model.Review, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	return u.reviews.ListByProperty(ctx, nil, propertyID, limit)
}
