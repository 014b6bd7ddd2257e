package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/copapymes/league-system/models"
	"github.com/copapymes/league-system/repositories"
)

type RegistrationService interface {
	Register(ctx context.Context, tournamentID, teamID int) (*models.Registration, error)
	GetByID(ctx context.Context, id int) (*models.Registration, error)
	ListByTournament(ctx context.Context, tournamentID int, statusFilter *models.RegistrationStatus) ([]*models.Registration, error)
	UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) (*models.Registration, error)
	Delete(ctx context.Context, id int) error
}

type registrationService struct {
	registrationRepo repositories.RegistrationRepository
	tournamentRepo   repositories.TournamentRepository
	teamRepo         repositories.TeamRepository
	logger           *slog.Logger
}

func NewRegistrationService(
	registrationRepo repositories.RegistrationRepository,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	logger *slog.Logger,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		tournamentRepo:   tournamentRepo,
		teamRepo:         teamRepo,
		logger:           logger,
	}
}

func (s *registrationService) Register(ctx context.Context, tournamentID, teamID int) (*models.Registration, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.Status != models.TournamentStatusRegistrationOpen {
		return nil, ErrRegistrationClosed
	}

	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	if !team.Active {
		return nil, ErrTeamInactive
	}

	reg := &models.Registration{
		TournamentID: tournamentID,
		TeamID:       teamID,
		Status:       models.RegistrationStatusPending,
	}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRegistrationConflict):
			return nil, ErrRegistrationConflict
		case errors.Is(err, repositories.ErrRegistrationTeamInvalid):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrRegistrationTournamentInvalid):
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to register team %d for tournament %d: %w", teamID, tournamentID, err)
	}
	reg.Team = team

	s.logger.Info("team registered",
		slog.Int("tournament_id", tournamentID),
		slog.Int("team_id", teamID),
	)
	return reg, nil
}

func (s *registrationService) GetByID(ctx context.Context, id int) (*models.Registration, error) {
	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (s *registrationService) ListByTournament(ctx context.Context, tournamentID int, statusFilter *models.RegistrationStatus) ([]*models.Registration, error) {
	if statusFilter != nil && !statusFilter.Valid() {
		return nil, ErrRegistrationInvalidStatus
	}
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return s.registrationRepo.ListByTournament(ctx, nil, tournamentID, statusFilter, true)
}

// UpdateStatus accepts or rejects a registration. Decisions are only allowed
// while the tournament is still taking registrations; once the fixture has
// been generated the ledger is frozen.
func (s *registrationService) UpdateStatus(ctx context.Context, id int, status models.RegistrationStatus) (*models.Registration, error) {
	if status != models.RegistrationStatusAccepted && status != models.RegistrationStatusRejected {
		return nil, ErrRegistrationInvalidStatus
	}

	reg, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, reg.TournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.TournamentStatusRegistrationOpen {
		return nil, ErrRegistrationClosed
	}

	if err := s.registrationRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to update registration %d: %w", id, err)
	}
	reg.Status = status

	s.logger.Info("registration decided",
		slog.Int("registration_id", id),
		slog.String("status", string(status)),
	)
	return reg, nil
}

func (s *registrationService) Delete(ctx context.Context, id int) error {
	reg, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, reg.TournamentID)
	if err != nil {
		return err
	}
	if tournament.Status != models.TournamentStatusRegistrationOpen {
		return ErrRegistrationClosed
	}

	if err := s.registrationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return ErrRegistrationNotFound
		}
		return fmt.Errorf("failed to delete registration %d: %w", id, err)
	}
	return nil
}
