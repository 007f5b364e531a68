package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/pokearena/models"
	"github.com/Dosada05/pokearena/utils"
	"github.com/rs/zerolog"
)

type GenerateBracketParams struct {
	Tournament   *models.Tournament
	Participants []*models.TournamentParticipant
}

type BracketGenerator interface {
	// GenerateBracket returns the matches of the first round only for
	// elimination formats, and every match for round robin.
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error)

	TotalRounds(participantCount int) int

	GetName() string
}

type BracketMatch struct {
	UID          string
	Round        int
	OrderInRound int

	Participant1ID *int
	Participant2ID *int

	IsBye            bool
	ByeParticipantID *int
}

// GeneratorFor picks the generator for a tournament format. Double elimination
// has no loser bracket yet and is generated as single elimination.
func GeneratorFor(format models.TournamentFormat, rng utils.Rand, logger zerolog.Logger) (BracketGenerator, error) {
	switch format {
	case models.FormatSingleElimination:
		return NewSingleEliminationGenerator(rng), nil
	case models.FormatDoubleElimination:
		logger.Warn().
			Str("format", string(format)).
			Msg("double elimination is not implemented, generating single elimination")
		return NewSingleEliminationGenerator(rng), nil
	case models.FormatRoundRobin:
		return NewRoundRobinGenerator(), nil
	default:
		return nil, fmt.Errorf("unsupported tournament format %q", format)
	}
}

func participantIDs(participants []*models.TournamentParticipant) []int {
	ids := make([]int, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.ID)
	}
	return ids
}
