package models

import "time"

// Prize is awarded for a final position in a tournament.
// (tournament_id, award_date) is unique.
type Prize struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	Description  *string   `json:"description,omitempty" db:"description"`
	Position     string    `json:"position" db:"position"`
	AwardDate    time.Time `json:"award_date" db:"award_date"`

	Tournament *Tournament `json:"tournament,omitempty" db:"-"`
}
