package model

import (
	"time"

	"github.com/google/uuid"

	"property-marketplace/internal/domain"
)

// Review is a seeker's rating of a property. Rating is 1..5 inclusive.
type Review struct {
	ID         string
	PropertyID string
	UserID     string
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

func NewReview(propertyID, userID string, rating int, comment string) (*Review, error) {
	if propertyID == "" || userID == "" || rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidArgument
	}
	return &Review{
		ID:         uuid.NewString(),
		PropertyID: propertyID,
		UserID:     userID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now(),
	}, nil
}
