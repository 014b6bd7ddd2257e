package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/copapymes/league-system/models"
	"github.com/copapymes/league-system/repositories"
)

type CreateDivisionInput struct {
	Name  string `json:"name"`
	Quota *int   `json:"quota"`
}

type UpdateDivisionInput struct {
	Name  *string `json:"name"`
	Quota *int    `json:"quota"`
}

type DivisionService interface {
	Create(ctx context.Context, input CreateDivisionInput) (*models.Division, error)
	GetByID(ctx context.Context, id int) (*models.Division, error)
	List(ctx context.Context) ([]models.Division, error)
	Update(ctx context.Context, id int, input UpdateDivisionInput) (*models.Division, error)
	Delete(ctx context.Context, id int) error
}

type divisionService struct {
	divisionRepo repositories.DivisionRepository
}

func NewDivisionService(divisionRepo repositories.DivisionRepository) DivisionService {
	return &divisionService{divisionRepo: divisionRepo}
}

func (s *divisionService) Create(ctx context.Context, input CreateDivisionInput) (*models.Division, error) {
	if input.Name == "" {
		return nil, ErrDivisionNameRequired
	}

	division := &models.Division{Name: input.Name, Quota: input.Quota}
	if err := s.divisionRepo.Create(ctx, division); err != nil {
		if errors.Is(err, repositories.ErrDivisionNameConflict) {
			return nil, ErrDivisionNameConflict
		}
		return nil, fmt.Errorf("failed to create division: %w", err)
	}
	return division, nil
}

func (s *divisionService) GetByID(ctx context.Context, id int) (*models.Division, error) {
	division, err := s.divisionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return nil, ErrDivisionNotFound
		}
		return nil, err
	}
	return division, nil
}

func (s *divisionService) List(ctx context.Context) ([]models.Division, error) {
	return s.divisionRepo.List(ctx)
}

func (s *divisionService) Update(ctx context.Context, id int, input UpdateDivisionInput) (*models.Division, error) {
	division, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrDivisionNameRequired
		}
		division.Name = *input.Name
	}
	if input.Quota != nil {
		division.Quota = input.Quota
	}

	if err := s.divisionRepo.Update(ctx, division); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDivisionNotFound):
			return nil, ErrDivisionNotFound
		case errors.Is(err, repositories.ErrDivisionNameConflict):
			return nil, ErrDivisionNameConflict
		}
		return nil, fmt.Errorf("failed to update division %d: %w", id, err)
	}
	return division, nil
}

func (s *divisionService) Delete(ctx context.Context, id int) error {
	if err := s.divisionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrDivisionNotFound) {
			return ErrDivisionNotFound
		}
		return fmt.Errorf("failed to delete division %d: %w", id, err)
	}
	return nil
}
