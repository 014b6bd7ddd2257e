package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/copapymes/league-system/fixture"
	"github.com/copapymes/league-system/models"
	"github.com/copapymes/league-system/repositories"
)

// FixtureService turns a tournament's accepted registrations into its initial
// set of matches. Generate stages every insert on the caller's executor, so a
// surrounding transaction makes the whole fixture all-or-nothing.
type FixtureService interface {
	Generate(ctx context.Context, exec repositories.SQLExecutor, tournament *models.Tournament) ([]*models.Match, error)
}

type fixtureService struct {
	registrationRepo repositories.RegistrationRepository
	matchRepo        repositories.MatchRepository
	logger           *slog.Logger
}

func NewFixtureService(
	registrationRepo repositories.RegistrationRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) FixtureService {
	return &fixtureService{
		registrationRepo: registrationRepo,
		matchRepo:        matchRepo,
		logger:           logger,
	}
}

func (s *fixtureService) Generate(ctx context.Context, exec repositories.SQLExecutor, tournament *models.Tournament) ([]*models.Match, error) {
	accepted := models.RegistrationStatusAccepted
	registrations, err := s.registrationRepo.ListByTournament(ctx, exec, tournament.ID, &accepted, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list accepted registrations for tournament %d: %w", tournament.ID, err)
	}

	// Pairing order is registration insertion order; never shuffled.
	teams := make([]*models.Team, 0, len(registrations))
	for _, reg := range registrations {
		if reg.Team != nil {
			teams = append(teams, reg.Team)
		} else {
			teams = append(teams, &models.Team{ID: reg.TeamID})
		}
	}

	generator, err := fixture.ForType(tournament.Type)
	if err != nil {
		return nil, err
	}

	params := fixture.GenerateParams{Tournament: tournament, Teams: teams}
	pairings, err := generator.Generate(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s fixture for tournament %d: %w", generator.Name(), tournament.ID, err)
	}

	if eg, ok := generator.(*fixture.EliminationGenerator); ok {
		if byeTeamID, hasBye := eg.ByeTeamID(params); hasBye {
			s.logger.Info("odd team count, trailing team left without a match",
				slog.Int("tournament_id", tournament.ID),
				slog.Int("team_id", byeTeamID),
			)
		}
	}

	matches := make([]*models.Match, 0, len(pairings))
	for _, p := range pairings {
		m := &models.Match{
			TournamentID: tournament.ID,
			HomeTeamID:   p.HomeTeamID,
			AwayTeamID:   p.AwayTeamID,
			Status:       models.MatchStatusPending,
		}
		if err := s.matchRepo.Create(ctx, exec, m); err != nil {
			return nil, fmt.Errorf("failed to stage match %d/%d for tournament %d: %w", p.Order, len(pairings), tournament.ID, err)
		}
		matches = append(matches, m)
	}

	s.logger.Info("fixture generated",
		slog.Int("tournament_id", tournament.ID),
		slog.String("type", string(tournament.Type)),
		slog.Int("teams", len(teams)),
		slog.Int("matches", len(matches)),
	)

	return matches, nil
}
