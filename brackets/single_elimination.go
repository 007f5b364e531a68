package brackets

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/Dosada05/pokearena/models"
	"github.com/Dosada05/pokearena/utils"
)

var (
	ErrNotEnoughParticipants = errors.New("not enough participants to generate a bracket (minimum 2)")
	ErrRoundNotComplete      = errors.New("round is not complete")
)

type SingleEliminationGenerator struct {
	rng utils.Rand
}

func NewSingleEliminationGenerator(rng utils.Rand) *SingleEliminationGenerator {
	return &SingleEliminationGenerator{rng: rng}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

func (g *SingleEliminationGenerator) TotalRounds(participantCount int) int {
	return TotalRounds(participantCount)
}

// TotalRounds is ceil(log2(n)).
func TotalRounds(participantCount int) int {
	if participantCount < 2 {
		return 0
	}
	return int(math.Ceil(math.Log2(float64(participantCount))))
}

// GenerateBracket seeds by random shuffle and pairs the first round.
func (g *SingleEliminationGenerator) GenerateBracket(_ context.Context, params GenerateBracketParams) ([]*BracketMatch, error) {
	if len(params.Participants) < 2 {
		return nil, ErrNotEnoughParticipants
	}

	seeded := participantIDs(params.Participants)
	utils.Shuffle(g.rng, seeded)
	return PairRound(1, seeded), nil
}

// PairRound pairs entrants in order. With an odd count the last entrant gets a bye.
func PairRound(round int, entrants []int) []*BracketMatch {
	matches := make([]*BracketMatch, 0, (len(entrants)+1)/2)
	order := 0
	for i := 0; i < len(entrants); i += 2 {
		order++
		p1 := entrants[i]
		bm := &BracketMatch{
			UID:            fmt.Sprintf("R%dM%d", round, order),
			Round:          round,
			OrderInRound:   order,
			Participant1ID: &p1,
		}
		if i+1 < len(entrants) {
			p2 := entrants[i+1]
			bm.Participant2ID = &p2
		} else {
			bm.IsBye = true
			bm.ByeParticipantID = &p1
		}
		matches = append(matches, bm)
	}
	return matches
}

// RoundWinners returns the winners of a finished round in bracket order.
func RoundWinners(matches []*models.TournamentMatch) ([]int, error) {
	if !IsRoundComplete(matches) {
		return nil, ErrRoundNotComplete
	}

	ordered := make([]*models.TournamentMatch, len(matches))
	copy(ordered, matches)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].OrderInRound < ordered[j].OrderInRound
	})

	winners := make([]int, 0, len(ordered))
	for _, m := range ordered {
		if m.WinnerParticipantID == nil {
			return nil, fmt.Errorf("match %d is finished without a winner", m.ID)
		}
		winners = append(winners, *m.WinnerParticipantID)
	}
	return winners, nil
}

// AdvanceRound builds the next round from the finished one. A nil result
// means the round produced the champion.
func AdvanceRound(round int, matches []*models.TournamentMatch) ([]*BracketMatch, error) {
	winners, err := RoundWinners(matches)
	if err != nil {
		return nil, err
	}
	if len(winners) <= 1 {
		return nil, nil
	}
	return PairRound(round+1, winners), nil
}

// IsRoundComplete is true when every match is COMPLETED or WALKOVER.
func IsRoundComplete(matches []*models.TournamentMatch) bool {
	if len(matches) == 0 {
		return false
	}
	for _, m := range matches {
		if !m.Status.IsFinished() {
			return false
		}
	}
	return true
}
