package models

import (
	"fmt"
	"time"
)

// UserRole discriminates the single user record. The old schema modelled each
// role as a subclass sharing a discriminator column; here a role enum plus an
// optional per-role profile group replaces the inheritance mapping.
type UserRole string

const (
	RoleAdministrator UserRole = "administrator"
	RoleManager       UserRole = "manager"
	RoleReceptionist  UserRole = "receptionist"
	RoleReferee       UserRole = "referee"
	RolePlayer        UserRole = "player"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdministrator, RoleManager, RoleReceptionist, RoleReferee, RolePlayer:
		return true
	}
	return false
}

type User struct {
	ID           int        `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FirstName    string     `json:"first_name" db:"first_name"`
	LastName     string     `json:"last_name" db:"last_name"`
	Role         UserRole   `json:"role" db:"role"`
	Document     *string    `json:"document,omitempty" db:"document"`
	Phone        *string    `json:"phone,omitempty" db:"phone"`
	BirthDate    *time.Time `json:"birth_date,omitempty" db:"birth_date"`
	Active       bool       `json:"active" db:"active"`
	LastLogin    *time.Time `json:"last_login,omitempty" db:"last_login"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`

	// Exactly one of these is non-nil, matching Role.
	Administrator *AdministratorProfile `json:"administrator,omitempty" db:"-"`
	Manager       *ManagerProfile       `json:"manager,omitempty" db:"-"`
	Receptionist  *ReceptionistProfile  `json:"receptionist,omitempty" db:"-"`
	Referee       *RefereeProfile       `json:"referee,omitempty" db:"-"`
	Player        *PlayerProfile        `json:"player,omitempty" db:"-"`
}

type AdministratorProfile struct {
	AccessLevel string     `json:"access_level" db:"access_level"` // admin, super_admin
	AppointedAt *time.Time `json:"appointed_at,omitempty" db:"appointed_at"`
}

type ManagerProfile struct {
	Department     *string `json:"department,omitempty" db:"department"` // youth, first_division, reserve
	CanManageTeams bool    `json:"can_manage_teams" db:"can_manage_teams"`
}

type ReceptionistProfile struct {
	Shift            *string `json:"shift,omitempty" db:"shift"` // morning, afternoon, night
	CanRecordResults bool    `json:"can_record_results" db:"can_record_results"`
}

type RefereeProfile struct {
	Category      *string `json:"category,omitempty" db:"category"` // regional, national, international
	LicenseNumber *string `json:"license_number,omitempty" db:"license_number"`
	Specialty     *string `json:"specialty,omitempty" db:"specialty"` // main, assistant, fourth_official
	Available     bool    `json:"available" db:"available"`
	MatchesWorked int     `json:"matches_worked" db:"matches_worked"`
}

type PlayerProfile struct {
	Position    *string `json:"position,omitempty" db:"position"` // goalkeeper, defender, midfielder, forward
	ShirtNumber *int    `json:"shirt_number,omitempty" db:"shirt_number"`
	TeamID      *int    `json:"team_id,omitempty" db:"team_id"`
	Goals       int     `json:"goals" db:"goals"`
	YellowCards int     `json:"yellow_cards" db:"yellow_cards"`
	RedCards    int     `json:"red_cards" db:"red_cards"`
}

// NewUser builds a user with the profile variant matching the role.
// It replaces the subclass-per-role factory from the old schema.
func NewUser(email, passwordHash, firstName, lastName string, role UserRole) (*User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid user role %q", role)
	}

	u := &User{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    firstName,
		LastName:     lastName,
		Role:         role,
		Active:       true,
	}

	switch role {
	case RoleAdministrator:
		u.Administrator = &AdministratorProfile{AccessLevel: "admin"}
	case RoleManager:
		u.Manager = &ManagerProfile{CanManageTeams: true}
	case RoleReceptionist:
		u.Receptionist = &ReceptionistProfile{CanRecordResults: true}
	case RoleReferee:
		u.Referee = &RefereeProfile{Available: true}
	case RolePlayer:
		u.Player = &PlayerProfile{}
	}

	return u, nil
}

// Profile returns the active profile variant for marshalling checks.
func (u *User) Profile() any {
	switch u.Role {
	case RoleAdministrator:
		return u.Administrator
	case RoleManager:
		return u.Manager
	case RoleReceptionist:
		return u.Receptionist
	case RoleReferee:
		return u.Referee
	case RolePlayer:
		return u.Player
	}
	return nil
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
