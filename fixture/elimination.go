package fixture

import (
	"context"
)

// EliminationGenerator pairs consecutive teams by registration position:
// (teams[0], teams[1]), (teams[2], teams[3]), ...
// Only the opening round is generated. With an odd team count the trailing
// team has no opponent and produces no match; it is not advanced.
type EliminationGenerator struct{}

func NewEliminationGenerator() Generator {
	return &EliminationGenerator{}
}

func (g *EliminationGenerator) Name() string {
	return "Elimination"
}

func (g *EliminationGenerator) Generate(_ context.Context, params GenerateParams) ([]*Pairing, error) {
	teams := params.Teams

	pairings := make([]*Pairing, 0, len(teams)/2)
	for i := 0; i+1 < len(teams); i += 2 {
		pairings = append(pairings, &Pairing{
			Order:      len(pairings) + 1,
			HomeTeamID: teams[i].ID,
			AwayTeamID: teams[i+1].ID,
		})
	}

	return pairings, nil
}

// ByeTeamID returns the unpaired trailing team for an odd-sized field,
// so callers can log it. There is no bye advancement.
func (g *EliminationGenerator) ByeTeamID(params GenerateParams) (int, bool) {
	if len(params.Teams)%2 == 1 {
		return params.Teams[len(params.Teams)-1].ID, true
	}
	return 0, false
}
