package usecase

import (
	"context"
	"errors"

	"property-marketplace/internal/domain"
	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/repository"
)

// Compile-time check
var _ PropertyUseCase = (*propertyUC)(nil)

type PropertyUseCase interface {
	Create(ctx context.Context, p *model.Property) (*model.Property, error)
	Get(ctx context.Context, id string) (*model.Property, error)
	List(ctx context.Context, f repository.PropertyFilter) ([]*model.Property, error)
	Update(ctx context.Context, p *model.Property) error
	Delete(ctx context.Context, id, requesterID string) error
}

type propertyUC struct {
	properties repository.PropertyRepository
	users      repository.UserRepository
	subs       SubscriptionUseCase
}

func NewPropertyUseCase(properties repository.PropertyRepository, users repository.UserRepository, subs SubscriptionUseCase) *propertyUC {
	return &propertyUC{properties: properties, users: users, subs: subs}
}

// Create saves a listing. Professional roles need an active subscription for
// the listing to go live; without one the listing is stored inactive.
func (u *propertyUC) Create(ctx context.Context, p *model.Property) (*model.Property, error) {
	if p == nil || p.OwnerUserID == "" || p.Title == "" || p.Price <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	owner, err := u.users.FindByID(ctx, nil, p.OwnerUserID)
	if err != nil {
		return nil, err
	}

	if owner.Role.IsProfessional() {
		active, err := u.subs.HasActive(ctx, owner.ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		if !active {
			p.Status = model.PropertyStatusInactive
		}
	}
	if p.Status == "" {
		p.Status = model.PropertyStatusActive
	}
	if err := u.properties.Save(ctx, nil, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *propertyUC) Get(ctx context.Context, id string) (*model.Property, error) {
	return u.properties.FindByID(ctx, nil, id)
}

func (u *propertyUC) List(ctx context.Context, f repository.PropertyFilter) ([]*model.Property, error) {
	if f.Limit <= 0 || f.Limit > 500 {
		f.Limit = 500
	}
	return u.properties.List(ctx, nil, f)
}

func (u *propertyUC) Update(ctx context.Context, p *model.Property) error {
	if p == nil || p.ID == "" {
		return domain.ErrInvalidArgument
	}
	return u.properties.Save(ctx, nil, p)
}

func (u *propertyUC) Delete(ctx context.Context, id, requesterID string) error {
	p, err := u.properties.FindByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if p.OwnerUserID != requesterID {
		return domain.ErrInvalidArgument
	}
	return u.properties.Delete(ctx, nil, id)
}
