package model

import (
	"time"

	"github.com/google/uuid"

	"property-marketplace/internal/domain"
)

type ListingType string

const (
	ListingRent ListingType = "rent"
	ListingSale ListingType = "sale"
)

type PropertyStatus string

const (
	PropertyStatusActive   PropertyStatus = "active"
	PropertyStatusInactive PropertyStatus = "inactive"
	PropertyStatusRented   PropertyStatus = "rented"
	PropertyStatusSold     PropertyStatus = "sold"
)

// Property is a marketplace listing.
type Property struct {
	ID          string
	OwnerUserID string
	Title       string
	Description string
	Type        string // house, apartment, office, ...
	ListingType ListingType
	Bedrooms    int
	Bathrooms   int
	Area        float64
	Price       float64
	Location    string // city / district
	Address     string
	Status      PropertyStatus
	Images      []string
	Features    []string
	CreatedAt   time.Time
}

func NewProperty(ownerUserID, title string, price float64, listingType ListingType) (*Property, error) {
	if ownerUserID == "" || title == "" || price <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	if listingType == "" {
		listingType = ListingRent
	}
	return &Property{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Title:       title,
		Price:       price,
		ListingType: listingType,
		Status:      PropertyStatusActive,
		CreatedAt:   time.Now(),
	}, nil
}
