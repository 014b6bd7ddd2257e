package fixture

import (
	"context"
)

// RoundRobinGenerator emits every unordered pair of teams exactly once:
// for i < j, a match (teams[i], teams[j]). n teams yield n(n-1)/2 matches.
type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() Generator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) Name() string {
	return "RoundRobin"
}

func (g *RoundRobinGenerator) Generate(_ context.Context, params GenerateParams) ([]*Pairing, error) {
	teams := params.Teams

	pairings := make([]*Pairing, 0, len(teams)*(len(teams)-1)/2)
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			pairings = append(pairings, &Pairing{
				Order:      len(pairings) + 1,
				HomeTeamID: teams[i].ID,
				AwayTeamID: teams[j].ID,
			})
		}
	}

	return pairings, nil
}
