package model

import (
	"time"

	"github.com/google/uuid"

	"property-marketplace/internal/domain"
)

// SavedSearch stores a seeker's named search filters (serialized as JSONB).
type SavedSearch struct {
	ID        string
	UserID    string
	Name      string
	Filters   map[string]string
	CreatedAt time.Time
}

func NewSavedSearch(userID, name string, filters map[string]string) (*SavedSearch, error) {
	if userID == "" || name == "" || len(filters) == 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &SavedSearch{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Filters:   filters,
		CreatedAt: time.Now(),
	}, nil
}
