package models

import "time"

// RegistrationStatus is the acceptance state of a team's application.
type RegistrationStatus string

const (
	RegistrationStatusPending  RegistrationStatus = "pending"
	RegistrationStatusAccepted RegistrationStatus = "accepted"
	RegistrationStatusRejected RegistrationStatus = "rejected"
)

type Registration struct {
	ID           int                `json:"id" db:"id"`
	TournamentID int                `json:"tournament_id" db:"tournament_id"`
	TeamID       int                `json:"team_id" db:"team_id"`
	Status       RegistrationStatus `json:"status" db:"status"`
	RegisteredAt time.Time          `json:"registered_at" db:"registered_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}

func (s RegistrationStatus) Valid() bool {
	switch s {
	case RegistrationStatusPending, RegistrationStatusAccepted, RegistrationStatusRejected:
		return true
	}
	return false
}
