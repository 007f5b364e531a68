package brackets

import (
	"sort"

	"github.com/Dosada05/pokearena/models"
)

// BuildView groups persisted matches into rounds. The bracket is always
// derived from the matches, never stored.
func BuildView(t *models.Tournament, matches []*models.TournamentMatch, participants []*models.TournamentParticipant) *models.TournamentBracket {
	byRound := map[int][]*models.TournamentMatch{}
	for _, m := range matches {
		byRound[m.Round] = append(byRound[m.Round], m)
	}

	rounds := make([]models.BracketRound, 0, len(byRound))
	for round, ms := range byRound {
		sort.Slice(ms, func(i, j int) bool { return ms[i].OrderInRound < ms[j].OrderInRound })
		rounds = append(rounds, models.BracketRound{
			Round:    round,
			Matches:  ms,
			Complete: IsRoundComplete(ms),
		})
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].Round < rounds[j].Round })

	if participants == nil {
		participants = []*models.TournamentParticipant{}
	}
	return &models.TournamentBracket{
		TournamentID: t.ID,
		Format:       t.Format,
		Status:       t.Status,
		CurrentRound: t.CurrentRound,
		TotalRounds:  t.TotalRounds,
		Rounds:       rounds,
		Participants: participants,
	}
}
