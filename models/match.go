package models

import "time"

// MatchStatus mirrors the match state ENUM in the database.
type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusInPlay    MatchStatus = "in_play"
	MatchStatusFinished  MatchStatus = "finished"
	MatchStatusSuspended MatchStatus = "suspended"
)

type Match struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	HomeTeamID   int         `json:"home_team_id" db:"home_team_id"`
	AwayTeamID   int         `json:"away_team_id" db:"away_team_id"`
	VenueID      *int        `json:"venue_id,omitempty" db:"venue_id"`
	RefereeID    *int        `json:"referee_id,omitempty" db:"referee_id"`
	ScheduledAt  *time.Time  `json:"scheduled_at,omitempty" db:"scheduled_at"`
	HomeScore    *int        `json:"home_score,omitempty" db:"home_score"`
	AwayScore    *int        `json:"away_score,omitempty" db:"away_score"`
	Status       MatchStatus `json:"status" db:"status"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`

	HomeTeam *Team `json:"home_team,omitempty" db:"-"`
	AwayTeam *Team `json:"away_team,omitempty" db:"-"`
	Venue    *Venue `json:"venue,omitempty" db:"-"`
	Referee  *User  `json:"referee,omitempty" db:"-"`
}

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusPending, MatchStatusInPlay, MatchStatusFinished, MatchStatusSuspended:
		return true
	}
	return false
}
