package repository

import (
	"context"

	"property-marketplace/internal/domain/model"
)

// PropertyFilter narrows List results. Zero values mean "no filter".
type PropertyFilter struct {
	Status      model.PropertyStatus
	ListingType model.ListingType
	Location    string
	OwnerUserID string
	Limit       int
}

type PropertyRepository interface {
	Save(ctx context.Context, tx Tx, p *model.Property) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Property, error)
	List(ctx context.Context, tx Tx, f PropertyFilter) ([]*model.Property, error)
	Delete(ctx context.Context, tx Tx, id string) error
}
