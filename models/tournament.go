package models

import "time"

// TournamentStatus mirrors the tournament lifecycle ENUM in the database.
type TournamentStatus string

const (
	TournamentStatusPending          TournamentStatus = "pending"
	TournamentStatusRegistrationOpen TournamentStatus = "registration_open"
	TournamentStatusActive           TournamentStatus = "active"
	TournamentStatusFinished         TournamentStatus = "finished"
)

// TournamentType selects the fixture generation algorithm.
type TournamentType string

const (
	TournamentTypeElimination TournamentType = "elimination"
	TournamentTypeRoundRobin  TournamentType = "round_robin"
)

// GameFormat is the pitch size the tournament is played in.
type GameFormat string

const (
	GameFormatFive   GameFormat = "5-a-side"
	GameFormatEight  GameFormat = "8-a-side"
	GameFormatEleven GameFormat = "11-a-side"
)

type Tournament struct {
	ID            int              `json:"id" db:"id"`
	Name          string           `json:"name" db:"name"`
	Type          TournamentType   `json:"type" db:"type"`
	GameFormat    GameFormat       `json:"game_format" db:"game_format"`
	DivisionCount *int             `json:"division_count,omitempty" db:"division_count"`
	TeamCount     *int             `json:"team_count,omitempty" db:"team_count"`
	StartDate     time.Time        `json:"start_date" db:"start_date"`
	EndDate       time.Time        `json:"end_date" db:"end_date"`
	Status        TournamentStatus `json:"status" db:"status"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`

	// Related collections, populated by services when requested.
	Registrations []Registration `json:"registrations,omitempty" db:"-"`
	Matches       []Match        `json:"matches,omitempty" db:"-"`
}

func (t TournamentType) Valid() bool {
	switch t {
	case TournamentTypeElimination, TournamentTypeRoundRobin:
		return true
	}
	return false
}

func (f GameFormat) Valid() bool {
	switch f {
	case GameFormatFive, GameFormatEight, GameFormatEleven:
		return true
	}
	return false
}

func (s TournamentStatus) Valid() bool {
	switch s {
	case TournamentStatusPending, TournamentStatusRegistrationOpen,
		TournamentStatusActive, TournamentStatusFinished:
		return true
	}
	return false
}
