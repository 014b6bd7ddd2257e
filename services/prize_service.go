package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/copapymes/league-system/models"
	"github.com/copapymes/league-system/repositories"
)

type CreatePrizeInput struct {
	TournamentID int       `json:"tournament_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Position     string    `json:"position"`
	AwardDate    time.Time `json:"award_date"`
}

type UpdatePrizeInput struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Position    *string    `json:"position"`
	AwardDate   *time.Time `json:"award_date"`
}

type PrizeService interface {
	Create(ctx context.Context, input CreatePrizeInput) (*models.Prize, error)
	GetByID(ctx context.Context, id int) (*models.Prize, error)
	List(ctx context.Context) ([]models.Prize, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Prize, error)
	Update(ctx context.Context, id int, input UpdatePrizeInput) (*models.Prize, error)
	Delete(ctx context.Context, id int) error
}

type prizeService struct {
	prizeRepo      repositories.PrizeRepository
	tournamentRepo repositories.TournamentRepository
}

func NewPrizeService(prizeRepo repositories.PrizeRepository, tournamentRepo repositories.TournamentRepository) PrizeService {
	return &prizeService{prizeRepo: prizeRepo, tournamentRepo: tournamentRepo}
}

func (s *prizeService) Create(ctx context.Context, input CreatePrizeInput) (*models.Prize, error) {
	if input.Name == "" || input.Position == "" {
		return nil, ErrPrizeNameRequired
	}
	if _, err := s.tournamentRepo.GetByID(ctx, input.TournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	prize := &models.Prize{
		TournamentID: input.TournamentID,
		Name:         input.Name,
		Description:  input.Description,
		Position:     input.Position,
		AwardDate:    input.AwardDate,
	}
	if err := s.prizeRepo.Create(ctx, prize); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPrizeConflict):
			return nil, ErrPrizeConflict
		case errors.Is(err, repositories.ErrPrizeTournamentInvalid):
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create prize: %w", err)
	}
	return prize, nil
}

func (s *prizeService) GetByID(ctx context.Context, id int) (*models.Prize, error) {
	prize, err := s.prizeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPrizeNotFound) {
			return nil, ErrPrizeNotFound
		}
		return nil, err
	}
	return prize, nil
}

func (s *prizeService) List(ctx context.Context) ([]models.Prize, error) {
	return s.prizeRepo.List(ctx)
}

func (s *prizeService) ListByTournament(ctx context.Context, tournamentID int) ([]models.Prize, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return s.prizeRepo.ListByTournament(ctx, tournamentID)
}

func (s *prizeService) Update(ctx context.Context, id int, input UpdatePrizeInput) (*models.Prize, error) {
	prize, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrPrizeNameRequired
		}
		prize.Name = *input.Name
	}
	if input.Description != nil {
		prize.Description = input.Description
	}
	if input.Position != nil {
		if *input.Position == "" {
			return nil, ErrPrizeNameRequired
		}
		prize.Position = *input.Position
	}
	if input.AwardDate != nil {
		prize.AwardDate = *input.AwardDate
	}

	if err := s.prizeRepo.Update(ctx, prize); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPrizeNotFound):
			return nil, ErrPrizeNotFound
		case errors.Is(err, repositories.ErrPrizeConflict):
			return nil, ErrPrizeConflict
		}
		return nil, fmt.Errorf("failed to update prize %d: %w", id, err)
	}
	return prize, nil
}

func (s *prizeService) Delete(ctx context.Context, id int) error {
	if err := s.prizeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPrizeNotFound) {
			return ErrPrizeNotFound
		}
		return fmt.Errorf("failed to delete prize %d: %w", id, err)
	}
	return nil
}
