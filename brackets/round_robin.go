package brackets

import (
	"context"
	"fmt"
	"sort"

	"github.com/Dosada05/pokearena/models"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() *RoundRobinGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// TotalRounds is always 1: every match of a round robin sits in round 1.
func (g *RoundRobinGenerator) TotalRounds(participantCount int) int {
	if participantCount < 2 {
		return 0
	}
	return 1
}

// GenerateBracket creates one match for every unordered pair of participants.
func (g *RoundRobinGenerator) GenerateBracket(_ context.Context, params GenerateBracketParams) ([]*BracketMatch, error) {
	ids := participantIDs(params.Participants)
	if len(ids) < 2 {
		return nil, ErrNotEnoughParticipants
	}

	matches := make([]*BracketMatch, 0, len(ids)*(len(ids)-1)/2)
	order := 0
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			order++
			p1, p2 := ids[i], ids[j]
			matches = append(matches, &BracketMatch{
				UID:            fmt.Sprintf("RR%d_P%dvP%d", order, p1, p2),
				Round:          1,
				OrderInRound:   order,
				Participant1ID: &p1,
				Participant2ID: &p2,
			})
		}
	}
	return matches, nil
}

type Standing struct {
	ParticipantID int `json:"participant_id"`
	Played        int `json:"played"`
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
}

// Standings ranks by wins; ties go to the lower participant id.
func Standings(matches []*models.TournamentMatch) []Standing {
	table := map[int]*Standing{}
	row := func(id int) *Standing {
		if s, ok := table[id]; ok {
			return s
		}
		s := &Standing{ParticipantID: id}
		table[id] = s
		return s
	}

	for _, m := range matches {
		if m.Participant1ID != nil {
			row(*m.Participant1ID)
		}
		if m.Participant2ID != nil {
			row(*m.Participant2ID)
		}
		if !m.Status.IsFinished() || m.WinnerParticipantID == nil {
			continue
		}
		winner := *m.WinnerParticipantID
		row(winner).Wins++
		row(winner).Played++
		for _, p := range []*int{m.Participant1ID, m.Participant2ID} {
			if p != nil && *p != winner {
				row(*p).Losses++
				row(*p).Played++
			}
		}
	}

	out := make([]Standing, 0, len(table))
	for _, s := range table {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].ParticipantID < out[j].ParticipantID
	})
	return out
}
