package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/copapymes/league-system/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound       = errors.New("match not found")
	ErrMatchTeamInvalid    = errors.New("invalid team reference")
	ErrMatchVenueInvalid   = errors.New("invalid venue reference")
	ErrMatchRefereeInvalid = errors.New("invalid referee reference")
	ErrMatchSameTeam       = errors.New("a team cannot play against itself")
)

type ListMatchesFilter struct {
	TournamentID *int
	Status       *models.MatchStatus
}

type MatchRepository interface {
	// Create accepts an optional transaction executor so the fixture
	// generator can stage the whole batch atomically.
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter ListMatchesFilter) ([]*models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	Delete(ctx context.Context, id int) error
	CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (tournament_id, home_team_id, away_team_id, venue_id, referee_id, scheduled_at, home_score, away_score, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query,
		m.TournamentID, m.HomeTeamID, m.AwayTeamID, m.VenueID, m.RefereeID,
		m.ScheduledAt, m.HomeScore, m.AwayScore, m.Status,
	).Scan(&m.ID, &m.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `
		SELECT id, tournament_id, home_team_id, away_team_id, venue_id, referee_id,
		       scheduled_at, home_score, away_score, status, created_at
		FROM matches WHERE id = $1`

	m := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.TournamentID, &m.HomeTeamID, &m.AwayTeamID, &m.VenueID, &m.RefereeID,
		&m.ScheduledAt, &m.HomeScore, &m.AwayScore, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return m, nil
}

// List returns matches with home/away team data joined in, plus venue and
// referee when assigned.
func (r *postgresMatchRepository) List(ctx context.Context, filter ListMatchesFilter) ([]*models.Match, error) {
	query := `
		SELECT m.id, m.tournament_id, m.home_team_id, m.away_team_id, m.venue_id, m.referee_id,
		       m.scheduled_at, m.home_score, m.away_score, m.status, m.created_at,
		       ht.name, ht.short_name,
		       at.name, at.short_name,
		       v.name, v.location,
		       u.first_name, u.last_name
		FROM matches m
		JOIN teams ht ON ht.id = m.home_team_id
		JOIN teams at ON at.id = m.away_team_id
		LEFT JOIN venues v ON v.id = m.venue_id
		LEFT JOIN users u ON u.id = m.referee_id
		WHERE 1=1`

	args := []interface{}{}
	argID := 1

	if filter.TournamentID != nil {
		query += fmt.Sprintf(" AND m.tournament_id = $%d", argID)
		args = append(args, *filter.TournamentID)
		argID++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND m.status = $%d", argID)
		args = append(args, *filter.Status)
	}

	query += " ORDER BY m.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m := &models.Match{}
		var homeName, homeShort, awayName, awayShort string
		var venueName, venueLocation, refFirst, refLast sql.NullString

		if err := rows.Scan(
			&m.ID, &m.TournamentID, &m.HomeTeamID, &m.AwayTeamID, &m.VenueID, &m.RefereeID,
			&m.ScheduledAt, &m.HomeScore, &m.AwayScore, &m.Status, &m.CreatedAt,
			&homeName, &homeShort,
			&awayName, &awayShort,
			&venueName, &venueLocation,
			&refFirst, &refLast,
		); err != nil {
			return nil, err
		}

		m.HomeTeam = &models.Team{ID: m.HomeTeamID, Name: homeName, ShortName: homeShort}
		m.AwayTeam = &models.Team{ID: m.AwayTeamID, Name: awayName, ShortName: awayShort}
		if m.VenueID != nil && venueName.Valid {
			m.Venue = &models.Venue{ID: *m.VenueID, Name: venueName.String, Location: venueLocation.String}
		}
		if m.RefereeID != nil && refFirst.Valid {
			m.Referee = &models.User{ID: *m.RefereeID, FirstName: refFirst.String, LastName: refLast.String, Role: models.RoleReferee}
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) Update(ctx context.Context, m *models.Match) error {
	query := `
		UPDATE matches SET
			venue_id = $1,
			referee_id = $2,
			scheduled_at = $3,
			home_score = $4,
			away_score = $5,
			status = $6
		WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		m.VenueID, m.RefereeID, m.ScheduledAt, m.HomeScore, m.AwayScore, m.Status, m.ID,
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM matches WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) CountByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error) {
	executor := r.getExecutor(exec)
	var count int
	err := executor.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM matches WHERE tournament_id = $1`, tournamentID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23503":
			switch pqErr.Constraint {
			case "matches_home_team_id_fkey", "matches_away_team_id_fkey":
				return ErrMatchTeamInvalid
			case "matches_venue_id_fkey":
				return ErrMatchVenueInvalid
			case "matches_referee_id_fkey":
				return ErrMatchRefereeInvalid
			}
		case "23514":
			if pqErr.Constraint == "chk_matches_distinct_teams" {
				return ErrMatchSameTeam
			}
		}
	}
	return err
}
