package model

import "property-marketplace/internal/domain"

// PlatformSettings is the admin-tunable platform configuration, stored as a
// single JSONB row. Fields absent from the stored value keep their defaults,
// so new knobs can ship without a migration.
type PlatformSettings struct {
	Commission                 float64 `json:"commission"` // percent taken per transaction
	TrialDays                  int     `json:"trial_days"`
	AutoApproveSeekers         bool    `json:"auto_approve_seekers"`
	ManualApproveLandlordAgent bool    `json:"manual_approve_landlord_agent"`
	ManualApproveAgencies      bool    `json:"manual_approve_agencies"`
	MaintenanceMode            bool    `json:"maintenance_mode"`
	AllowRegistrations         bool    `json:"allow_registrations"`
}

func DefaultPlatformSettings() PlatformSettings {
	return PlatformSettings{
		Commission:                 5,
		TrialDays:                  14,
		AutoApproveSeekers:         true,
		ManualApproveLandlordAgent: true,
		ManualApproveAgencies:      true,
		AllowRegistrations:         true,
	}
}

func (s PlatformSettings) Validate() error {
	if s.Commission < 0 || s.Commission > 100 {
		return domain.ErrInvalidArgument
	}
	if s.TrialDays < 0 {
		return domain.ErrInvalidArgument
	}
	return nil
}
