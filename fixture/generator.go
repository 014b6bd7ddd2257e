package fixture

import (
	"context"
	"fmt"

	"github.com/copapymes/league-system/models"
)

// GenerateParams carries the tournament and its accepted teams, in the order
// their registrations were loaded. Generators must not reorder or shuffle.
type GenerateParams struct {
	Tournament *models.Tournament
	Teams      []*models.Team
}

// Pairing is one generated match, before persistence. HomeTeamID and
// AwayTeamID are conceptually unordered; the stored pair keeps this order.
type Pairing struct {
	Order      int
	HomeTeamID int
	AwayTeamID int
}

// Generator produces the initial pairings for one competition type.
// Zero or one eligible teams yield zero pairings without error.
type Generator interface {
	Generate(ctx context.Context, params GenerateParams) ([]*Pairing, error)
	Name() string
}

// ForType returns the generator for the given competition type.
// Unknown types are a hard error, never a silent no-op.
func ForType(t models.TournamentType) (Generator, error) {
	switch t {
	case models.TournamentTypeElimination:
		return NewEliminationGenerator(), nil
	case models.TournamentTypeRoundRobin:
		return NewRoundRobinGenerator(), nil
	default:
		return nil, fmt.Errorf("unsupported tournament type %q", t)
	}
}
