package model

import (
	"time"

	"github.com/google/uuid"

	"property-marketplace/internal/domain"
)

// Role is a marketplace account role.
type Role string

const (
	RoleSeeker        Role = "seeker"
	RoleLandlord      Role = "landlord"
	RoleAgent         Role = "agent"
	RoleAgency        Role = "agency"
	RoleLandlordAgent Role = "landlord_agent"
	RoleAdmin         Role = "admin"
)

// IsProfessional reports whether the role requires an approved account and an
// active subscription to publish listings.
func (r Role) IsProfessional() bool {
	switch r {
	case RoleLandlord, RoleAgent, RoleAgency, RoleLandlordAgent:
		return true
	}
	return false
}

// User is a marketplace account.
type User struct {
	ID                 string
	Email              string
	Name               string
	Phone              string
	Role               Role
	SubscriptionStatus SubscriptionStatus
	CreatedAt          time.Time
}

func NewUser(id, email, name string, role Role) (*User, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if email == "" || role == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &User{
		ID:                 id,
		Email:              email,
		Name:               name,
		Role:               role,
		SubscriptionStatus: SubscriptionStatusTrial,
		CreatedAt:          time.Now(),
	}, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }
