package battle

import (
	"github.com/Dosada05/pokearena/models"
)

const DefaultMaxTurns = 50

// ActionPolicy picks what the active combatant does this turn.
type ActionPolicy interface {
	Choose(self, opponent *models.Combatant) models.BattleAction
}

// FirstMovePolicy always attacks with the first known move.
type FirstMovePolicy struct{}

func (FirstMovePolicy) Choose(self, _ *models.Combatant) models.BattleAction {
	if len(self.Moves) == 0 || self.Moves[0] == "" {
		return models.AttackAction(FallbackMove)
	}
	return models.AttackAction(self.Moves[0])
}

type BattleOptions struct {
	MaxTurns   int
	Mode       models.BattleMode
	Difficulty float64
	Policy     ActionPolicy
}

// SimulateBattle runs two teams to a terminal state. The input teams are
// copied, never mutated.
func (e *Engine) SimulateBattle(team1, team2 []*models.Combatant, opts BattleOptions) *models.BattleSummary {
	maxTurns := opts.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	policy := opts.Policy
	if policy == nil {
		policy = e.policy
	}
	mode := opts.Mode
	if mode == "" {
		mode = models.BattleModeArena
	}

	sides := [2][]*models.Combatant{cloneTeam(team1), cloneTeam(team2)}
	start := e.now()
	summary := &models.BattleSummary{Log: make([]models.BattleLogEntry, 0)}

	for turn := 1; turn <= maxTurns; turn++ {
		active := [2]*models.Combatant{firstAlive(sides[0]), firstAlive(sides[1])}
		if active[0] == nil || active[1] == nil {
			break
		}
		summary.Turns = turn

		actions := [2]models.BattleAction{
			policy.Choose(active[0], active[1]),
			policy.Choose(active[1], active[0]),
		}
		first, second := e.DetermineActionOrder(active[0], active[1], actions[0], actions[1])

		for _, side := range []Side{first, second} {
			self, opponent := active[side], active[1-side]
			if self.IsFainted() || opponent.IsFainted() {
				continue
			}
			summary.Log = append(summary.Log, e.SimulateTurn(turn, self, opponent, actions[side])...)
		}

		if models.CountAlive(sides[0]) == 0 || models.CountAlive(sides[1]) == 0 {
			break
		}
	}

	for _, entry := range summary.Log {
		if entry.Damage != nil {
			summary.TotalDamage += *entry.Damage
		}
		if entry.IsCritical != nil && *entry.IsCritical {
			summary.CriticalHits++
		}
	}

	summary.Winner = decideWinner(sides[0], sides[1])
	summary.Team1Final = snapshots(sides[0])
	summary.Team2Final = snapshots(sides[1])
	summary.Rewards = e.CalculateRewards(summary.Winner, mode, opts.Difficulty)
	summary.Duration = e.now().Sub(start)
	return summary
}

// decideWinner: a side wins only when the other has nobody left standing.
// Mutual wipe-out and the turn cap are both draws.
func decideWinner(team1, team2 []*models.Combatant) models.BattleWinner {
	alive1, alive2 := models.CountAlive(team1), models.CountAlive(team2)
	switch {
	case alive1 > 0 && alive2 == 0:
		return models.WinnerPlayer1
	case alive2 > 0 && alive1 == 0:
		return models.WinnerPlayer2
	default:
		return models.WinnerDraw
	}
}

func firstAlive(team []*models.Combatant) *models.Combatant {
	for _, c := range team {
		if c != nil && !c.IsFainted() {
			return c
		}
	}
	return nil
}

func cloneTeam(team []*models.Combatant) []*models.Combatant {
	out := make([]*models.Combatant, 0, len(team))
	for _, c := range team {
		if c == nil {
			continue
		}
		cp := c.Clone()
		if cp.MaxHP <= 0 {
			cp.MaxHP = max(cp.Stats.HP, 1)
		}
		cp.CurrentHP = min(max(cp.CurrentHP, 0), cp.MaxHP)
		out = append(out, cp)
	}
	return out
}

func snapshots(team []*models.Combatant) []models.CombatantSnapshot {
	out := make([]models.CombatantSnapshot, 0, len(team))
	for _, c := range team {
		out = append(out, c.Snapshot())
	}
	return out
}
