package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/copapymes/league-system/live"
	"github.com/copapymes/league-system/models"
	"github.com/copapymes/league-system/repositories"
)

type CreateTournamentInput struct {
	Name          string                `json:"name"`
	Type          models.TournamentType `json:"type"`
	GameFormat    models.GameFormat     `json:"game_format"`
	DivisionCount *int                  `json:"division_count"`
	TeamCount     *int                  `json:"team_count"`
	StartDate     time.Time             `json:"start_date"`
	EndDate       time.Time             `json:"end_date"`
}

type UpdateTournamentInput struct {
	Name          *string               `json:"name"`
	GameFormat    *models.GameFormat    `json:"game_format"`
	DivisionCount *int                  `json:"division_count"`
	TeamCount     *int                  `json:"team_count"`
	StartDate     *time.Time            `json:"start_date"`
	EndDate       *time.Time            `json:"end_date"`
}

type TournamentService interface {
	Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error)
	Update(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, id int) error

	// Lifecycle: pending -> registration_open -> active -> finished.
	OpenRegistration(ctx context.Context, id int) (*models.Tournament, error)
	CloseRegistration(ctx context.Context, id int) (*models.Tournament, []*models.Match, error)
	FinishDueTournaments(ctx context.Context) error
}

type tournamentService struct {
	txm            repositories.TxManager
	tournamentRepo repositories.TournamentRepository
	fixtureService FixtureService
	hub            live.Broadcaster
	logger         *slog.Logger
	now            func() time.Time
}

func NewTournamentService(
	txm repositories.TxManager,
	tournamentRepo repositories.TournamentRepository,
	fixtureService FixtureService,
	hub live.Broadcaster,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		txm:            txm,
		tournamentRepo: tournamentRepo,
		fixtureService: fixtureService,
		hub:            hub,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *tournamentService) Create(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Name == "" {
		return nil, ErrTournamentNameRequired
	}
	// Unknown types are rejected here, never silently skipped at
	// fixture-generation time.
	if !input.Type.Valid() {
		return nil, ErrTournamentInvalidType
	}
	if !input.GameFormat.Valid() {
		return nil, ErrTournamentInvalidGameFormat
	}
	if !input.EndDate.After(input.StartDate) {
		return nil, ErrTournamentInvalidDateRange
	}
	if input.DivisionCount != nil && input.Type != models.TournamentTypeRoundRobin {
		return nil, ErrTournamentDivisionCountNotAllowed
	}

	t := &models.Tournament{
		Name:          input.Name,
		Type:          input.Type,
		GameFormat:    input.GameFormat,
		DivisionCount: input.DivisionCount,
		TeamCount:     input.TeamCount,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Status:        models.TournamentStatusPending,
	}

	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return t, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *tournamentService) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	return s.tournamentRepo.List(ctx, filter)
}

func (s *tournamentService) Update(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrTournamentNameRequired
		}
		t.Name = *input.Name
	}
	if input.GameFormat != nil {
		if !input.GameFormat.Valid() {
			return nil, ErrTournamentInvalidGameFormat
		}
		t.GameFormat = *input.GameFormat
	}
	if input.DivisionCount != nil {
		if t.Type != models.TournamentTypeRoundRobin {
			return nil, ErrTournamentDivisionCountNotAllowed
		}
		t.DivisionCount = input.DivisionCount
	}
	if input.TeamCount != nil {
		t.TeamCount = input.TeamCount
	}
	if input.StartDate != nil {
		t.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		t.EndDate = *input.EndDate
	}
	if !t.EndDate.After(t.StartDate) {
		return nil, ErrTournamentInvalidDateRange
	}

	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTournamentNotFound):
			return nil, ErrTournamentNotFound
		case errors.Is(err, repositories.ErrTournamentNameConflict):
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to update tournament %d: %w", id, err)
	}
	return t, nil
}

func (s *tournamentService) Delete(ctx context.Context, id int) error {
	err := s.tournamentRepo.Delete(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrTournamentInUse):
		return ErrTournamentInUse
	}
	return fmt.Errorf("failed to delete tournament %d: %w", id, err)
}

func (s *tournamentService) OpenRegistration(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status != models.TournamentStatusPending {
		return nil, ErrTournamentInvalidStatusTransition
	}

	if err := s.tournamentRepo.UpdateStatus(ctx, nil, id, models.TournamentStatusRegistrationOpen); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to open registration for tournament %d: %w", id, err)
	}
	t.Status = models.TournamentStatusRegistrationOpen

	s.broadcastStatus(t)
	s.logger.Info("registration opened", slog.Int("tournament_id", id))
	return t, nil
}

// CloseRegistration flips the tournament to active and generates its fixture
// from the accepted registrations, all inside one transaction. The row lock
// serializes concurrent closes: the loser of the race observes the status
// change and fails the transition guard instead of generating a second
// fixture.
func (s *tournamentService) CloseRegistration(ctx context.Context, id int) (*models.Tournament, []*models.Match, error) {
	var (
		tournament *models.Tournament
		matches    []*models.Match
	)

	err := s.txm.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, err := s.tournamentRepo.GetByIDForUpdate(ctx, exec, id)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return err
		}
		if t.Status != models.TournamentStatusRegistrationOpen {
			return ErrTournamentInvalidStatusTransition
		}

		if err := s.tournamentRepo.UpdateStatus(ctx, exec, id, models.TournamentStatusActive); err != nil {
			return fmt.Errorf("failed to activate tournament %d: %w", id, err)
		}
		t.Status = models.TournamentStatusActive

		generated, err := s.fixtureService.Generate(ctx, exec, t)
		if err != nil {
			return err
		}

		tournament = t
		matches = generated
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.broadcastStatus(tournament)
	if s.hub != nil {
		s.hub.BroadcastToTournament(strconv.Itoa(id), live.Message{
			Type:         live.EventFixtureGenerated,
			Payload:      matches,
			TournamentID: strconv.Itoa(id),
		})
	}

	s.logger.Info("registration closed, fixture generated",
		slog.Int("tournament_id", id),
		slog.Int("matches", len(matches)),
	)
	return tournament, matches, nil
}

// FinishDueTournaments moves active tournaments past their end date to
// finished. Called periodically by the scheduler in main.
func (s *tournamentService) FinishDueTournaments(ctx context.Context) error {
	due, err := s.tournamentRepo.ListFinishableBefore(ctx, s.now())
	if err != nil {
		return fmt.Errorf("failed to list due tournaments: %w", err)
	}

	for _, t := range due {
		if err := s.tournamentRepo.UpdateStatus(ctx, nil, t.ID, models.TournamentStatusFinished); err != nil {
			s.logger.Error("failed to finish tournament",
				slog.Int("tournament_id", t.ID),
				slog.Any("error", err),
			)
			continue
		}
		t.Status = models.TournamentStatusFinished
		s.broadcastStatus(t)
		s.logger.Info("tournament finished", slog.Int("tournament_id", t.ID))
	}
	return nil
}

func (s *tournamentService) broadcastStatus(t *models.Tournament) {
	if s.hub == nil || t == nil {
		return
	}
	s.hub.BroadcastToTournament(strconv.Itoa(t.ID), live.Message{
		Type:         live.EventTournamentStatus,
		Payload:      t,
		TournamentID: strconv.Itoa(t.ID),
	})
}
