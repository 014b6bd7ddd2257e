package services

import "errors"

// Shared business errors, mapped to HTTP statuses at the handler boundary.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Tournaments
	ErrTournamentNotFound                = errors.New("tournament not found")
	ErrTournamentNameRequired            = errors.New("tournament name is required")
	ErrTournamentNameConflict            = errors.New("tournament name already exists")
	ErrTournamentInvalidType             = errors.New("invalid tournament type")
	ErrTournamentInvalidGameFormat       = errors.New("invalid game format")
	ErrTournamentInvalidDateRange        = errors.New("tournament end date must be after start date")
	ErrTournamentDivisionCountNotAllowed = errors.New("division count is only valid for round robin tournaments")
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")
	ErrTournamentInUse                   = errors.New("tournament has registrations, matches or prizes and cannot be deleted")

	// Registrations
	ErrRegistrationNotFound      = errors.New("registration not found")
	ErrRegistrationConflict      = errors.New("team is already registered for this tournament")
	ErrRegistrationClosed        = errors.New("tournament registration is not open")
	ErrRegistrationInvalidStatus = errors.New("invalid registration status")

	// Teams
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameRequired = errors.New("team name is required")
	ErrTeamNameConflict = errors.New("team name is already in use")
	ErrTeamInactive     = errors.New("team is inactive")
	ErrTeamInUse        = errors.New("team has registrations or matches and cannot be deleted")

	// Venues
	ErrVenueNotFound     = errors.New("venue not found")
	ErrVenueNameRequired = errors.New("venue name and location are required")
	ErrVenueConflict     = errors.New("venue with this name and location already exists")
	ErrVenueInUse        = errors.New("venue is referenced by matches and cannot be deleted")

	// Divisions
	ErrDivisionNotFound     = errors.New("division not found")
	ErrDivisionNameRequired = errors.New("division name is required")
	ErrDivisionNameConflict = errors.New("division name is already in use")

	// Prizes
	ErrPrizeNotFound     = errors.New("prize not found")
	ErrPrizeNameRequired = errors.New("prize name and position are required")
	ErrPrizeConflict     = errors.New("a prize for this tournament and award date already exists")

	// Matches
	ErrMatchNotFound       = errors.New("match not found")
	ErrMatchSameTeam       = errors.New("a team cannot play against itself")
	ErrMatchInvalidStatus  = errors.New("invalid match status")
	ErrMatchTeamInvalid    = errors.New("match references an unknown team")
	ErrMatchVenueInvalid   = errors.New("match references an unknown venue")
	ErrMatchRefereeInvalid = errors.New("match referee must be a user with the referee role")

	// Users & auth
	ErrUserNotFound           = errors.New("user not found")
	ErrUserEmailRequired      = errors.New("user email is required")
	ErrUserEmailConflict      = errors.New("email address is already in use")
	ErrUserInvalidRole        = errors.New("invalid user role")
	ErrPasswordTooShort       = errors.New("password must be at least 8 characters")
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive           = errors.New("user account is inactive")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Media
	ErrMediaStorageDisabled = errors.New("media storage is not configured")
	ErrUnsupportedMediaType = errors.New("unsupported media content type")
)
