package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/copapymes/league-system/live"
	"github.com/copapymes/league-system/models"
	"github.com/copapymes/league-system/repositories"
)

type CreateMatchInput struct {
	TournamentID int        `json:"tournament_id"`
	HomeTeamID   int        `json:"home_team_id"`
	AwayTeamID   int        `json:"away_team_id"`
	VenueID      *int       `json:"venue_id"`
	RefereeID    *int       `json:"referee_id"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
}

type UpdateMatchInput struct {
	VenueID     *int                `json:"venue_id"`
	RefereeID   *int                `json:"referee_id"`
	ScheduledAt *time.Time          `json:"scheduled_at"`
	HomeScore   *int                `json:"home_score"`
	AwayScore   *int                `json:"away_score"`
	Status      *models.MatchStatus `json:"status"`
}

type MatchService interface {
	Create(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter repositories.ListMatchesFilter) ([]*models.Match, error)
	Update(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error)
	Delete(ctx context.Context, id int) error
}

type matchService struct {
	matchRepo repositories.MatchRepository
	teamRepo  repositories.TeamRepository
	venueRepo repositories.VenueRepository
	userRepo  repositories.UserRepository
	hub       live.Broadcaster
	logger    *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	venueRepo repositories.VenueRepository,
	userRepo repositories.UserRepository,
	hub live.Broadcaster,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo: matchRepo,
		teamRepo:  teamRepo,
		venueRepo: venueRepo,
		userRepo:  userRepo,
		hub:       hub,
		logger:    logger,
	}
}

func (s *matchService) Create(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.HomeTeamID == input.AwayTeamID {
		return nil, ErrMatchSameTeam
	}
	if input.RefereeID != nil {
		if err := s.validateReferee(ctx, *input.RefereeID); err != nil {
			return nil, err
		}
	}

	m := &models.Match{
		TournamentID: input.TournamentID,
		HomeTeamID:   input.HomeTeamID,
		AwayTeamID:   input.AwayTeamID,
		VenueID:      input.VenueID,
		RefereeID:    input.RefereeID,
		ScheduledAt:  input.ScheduledAt,
		Status:       models.MatchStatusPending,
	}
	if err := s.matchRepo.Create(ctx, nil, m); err != nil {
		return nil, s.mapRepoError(err, m.ID)
	}
	return m, nil
}

// GetByID loads the match with its related entities fetched concurrently.
func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	m, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		team, err := s.teamRepo.GetByID(gctx, m.HomeTeamID)
		if err != nil {
			return err
		}
		m.HomeTeam = team
		return nil
	})
	g.Go(func() error {
		team, err := s.teamRepo.GetByID(gctx, m.AwayTeamID)
		if err != nil {
			return err
		}
		m.AwayTeam = team
		return nil
	})
	if m.VenueID != nil {
		venueID := *m.VenueID
		g.Go(func() error {
			venue, err := s.venueRepo.GetByID(gctx, venueID)
			if err != nil {
				return err
			}
			m.Venue = venue
			return nil
		})
	}
	if m.RefereeID != nil {
		refereeID := *m.RefereeID
		g.Go(func() error {
			referee, err := s.userRepo.GetByID(gctx, refereeID)
			if err != nil {
				return err
			}
			m.Referee = referee
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load match %d relations: %w", id, err)
	}
	return m, nil
}

func (s *matchService) List(ctx context.Context, filter repositories.ListMatchesFilter) ([]*models.Match, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, ErrMatchInvalidStatus
	}
	return s.matchRepo.List(ctx, filter)
}

func (s *matchService) Update(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error) {
	m, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	if input.VenueID != nil {
		m.VenueID = input.VenueID
	}
	if input.RefereeID != nil {
		if err := s.validateReferee(ctx, *input.RefereeID); err != nil {
			return nil, err
		}
		m.RefereeID = input.RefereeID
	}
	if input.ScheduledAt != nil {
		m.ScheduledAt = input.ScheduledAt
	}
	if input.HomeScore != nil {
		m.HomeScore = input.HomeScore
	}
	if input.AwayScore != nil {
		m.AwayScore = input.AwayScore
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrMatchInvalidStatus
		}
		m.Status = *input.Status
	}

	if err := s.matchRepo.Update(ctx, m); err != nil {
		return nil, s.mapRepoError(err, id)
	}

	if s.hub != nil {
		s.hub.BroadcastToTournament(strconv.Itoa(m.TournamentID), live.Message{
			Type:         live.EventMatchUpdated,
			Payload:      m,
			TournamentID: strconv.Itoa(m.TournamentID),
		})
	}

	s.logger.Info("match updated",
		slog.Int("match_id", id),
		slog.String("status", string(m.Status)),
	)
	return m, nil
}

func (s *matchService) Delete(ctx context.Context, id int) error {
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return nil
}

func (s *matchService) validateReferee(ctx context.Context, userID int) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrMatchRefereeInvalid
		}
		return err
	}
	if user.Role != models.RoleReferee {
		return ErrMatchRefereeInvalid
	}
	return nil
}

func (s *matchService) mapRepoError(err error, id int) error {
	switch {
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrMatchSameTeam):
		return ErrMatchSameTeam
	case errors.Is(err, repositories.ErrMatchTeamInvalid):
		return ErrMatchTeamInvalid
	case errors.Is(err, repositories.ErrMatchVenueInvalid):
		return ErrMatchVenueInvalid
	case errors.Is(err, repositories.ErrMatchRefereeInvalid):
		return ErrMatchRefereeInvalid
	}
	return fmt.Errorf("match operation failed (id: %d): %w", id, err)
}
