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
	ErrRegistrationNotFound          = errors.New("registration not found")
	ErrRegistrationConflict          = errors.New("team is already registered for this tournament")
	ErrRegistrationTeamInvalid       = errors.New("invalid team reference")
	ErrRegistrationTournamentInvalid = errors.New("invalid tournament reference")
)

type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.Registration) error
	GetByID(ctx context.Context, id int) (*models.Registration, error)
	// ListByTournament returns registrations in insertion order; this order
	// is what the fixture generator pairs on. includeTeams joins team data.
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, statusFilter *models.RegistrationStatus, includeTeams bool) ([]*models.Registration, error)
	UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error
	Delete(ctx context.Context, id int) error
}

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func (r *postgresRegistrationRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	query := `
		INSERT INTO registrations (tournament_id, team_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, registered_at`

	err := r.db.QueryRowContext(ctx, query,
		reg.TournamentID, reg.TeamID, reg.Status,
	).Scan(&reg.ID, &reg.RegisteredAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505":
				if pqErr.Constraint == "registrations_tournament_id_team_id_key" {
					return ErrRegistrationConflict
				}
			case "23503":
				switch pqErr.Constraint {
				case "registrations_team_id_fkey":
					return ErrRegistrationTeamInvalid
				case "registrations_tournament_id_fkey":
					return ErrRegistrationTournamentInvalid
				}
			}
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *postgresRegistrationRepository) GetByID(ctx context.Context, id int) (*models.Registration, error) {
	query := `
		SELECT id, tournament_id, team_id, status, registered_at
		FROM registrations WHERE id = $1`

	reg := &models.Registration{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&reg.ID, &reg.TournamentID, &reg.TeamID, &reg.Status, &reg.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *postgresRegistrationRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int, statusFilter *models.RegistrationStatus, includeTeams bool) ([]*models.Registration, error) {
	executor := r.getExecutor(exec)

	query := `
		SELECT r.id, r.tournament_id, r.team_id, r.status, r.registered_at`
	if includeTeams {
		query += `,
			t.id, t.name, t.short_name, t.active, t.created_at, t.crest_key`
	}
	query += `
		FROM registrations r`
	if includeTeams {
		query += `
		JOIN teams t ON t.id = r.team_id`
	}
	query += `
		WHERE r.tournament_id = $1`

	args := []interface{}{tournamentID}
	if statusFilter != nil {
		query += ` AND r.status = $2`
		args = append(args, *statusFilter)
	}
	query += ` ORDER BY r.id`

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	registrations := make([]*models.Registration, 0)
	for rows.Next() {
		reg := &models.Registration{}
		if includeTeams {
			team := &models.Team{}
			if err := rows.Scan(
				&reg.ID, &reg.TournamentID, &reg.TeamID, &reg.Status, &reg.RegisteredAt,
				&team.ID, &team.Name, &team.ShortName, &team.Active, &team.CreatedAt, &team.CrestKey,
			); err != nil {
				return nil, err
			}
			reg.Team = team
		} else {
			if err := rows.Scan(
				&reg.ID, &reg.TournamentID, &reg.TeamID, &reg.Status, &reg.RegisteredAt,
			); err != nil {
				return nil, err
			}
		}
		registrations = append(registrations, reg)
	}
	return registrations, rows.Err()
}

func (r *postgresRegistrationRepository) UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) error {
	query := `UPDATE registrations SET status = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update registration status: %w", err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

func (r *postgresRegistrationRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM registrations WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}
