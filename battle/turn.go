package battle

import (
	"fmt"

	"github.com/Dosada05/pokearena/models"
)

type Side int

const (
	SidePlayer1 Side = iota
	SidePlayer2
)

const (
	priorityItem   = 6
	prioritySwitch = 5
	priorityFlee   = 4
	priorityQuick  = 1
	priorityAttack = 0

	potionDivisor = 5
)

func (e *Engine) actionPriority(action models.BattleAction) int {
	switch action.Kind {
	case models.ActionItem:
		return priorityItem
	case models.ActionSwitch:
		return prioritySwitch
	case models.ActionFlee:
		return priorityFlee
	}
	if e.moves.Lookup(action.MoveName).Quick {
		return priorityQuick
	}
	return priorityAttack
}

// DetermineActionOrder sorts by action priority, then speed. Equal speed keeps
// player 1 first; there is no random tiebreak.
func (e *Engine) DetermineActionOrder(p1, p2 *models.Combatant, a1, a2 models.BattleAction) (Side, Side) {
	pr1, pr2 := e.actionPriority(a1), e.actionPriority(a2)
	if pr1 != pr2 {
		if pr1 > pr2 {
			return SidePlayer1, SidePlayer2
		}
		return SidePlayer2, SidePlayer1
	}
	if p2.Stats.Speed > p1.Stats.Speed {
		return SidePlayer2, SidePlayer1
	}
	return SidePlayer1, SidePlayer2
}

// SimulateTurn resolves one action and returns its log lines. It mutates the
// defender's HP and, through status damage, the attacker's.
func (e *Engine) SimulateTurn(turn int, attacker, defender *models.Combatant, action models.BattleAction) []models.BattleLogEntry {
	var entries []models.BattleLogEntry

	switch action.Kind {
	case models.ActionItem:
		entries = append(entries, e.usePotion(turn, attacker))
	case models.ActionSwitch:
		entries = append(entries, e.entry(turn, fmt.Sprintf("%s stays in: no other Pokémon is ready to switch in.", attacker.Name)))
	case models.ActionFlee:
		entries = append(entries, e.entry(turn, fmt.Sprintf("%s tried to flee, but there is no running from a trainer battle!", attacker.Name)))
	default:
		entries = append(entries, e.attack(turn, attacker, defender, action)...)
	}

	if !attacker.IsFainted() {
		kind := attacker.Status.Kind
		if dmg := ApplyStatusEffects(attacker); dmg > 0 {
			fainted := ApplyDamage(attacker, dmg)
			line := e.entry(turn, fmt.Sprintf("%s is hurt by its %s!", attacker.Name, kind))
			line.Damage = &dmg
			entries = append(entries, line)
			if fainted {
				entries = append(entries, e.entry(turn, fmt.Sprintf("%s fainted!", attacker.Name)))
			}
		}
	}

	return entries
}

func (e *Engine) attack(turn int, attacker, defender *models.Combatant, action models.BattleAction) []models.BattleLogEntry {
	move := e.moves.Lookup(action.MoveName)
	isCritical := e.IsCriticalHit(attacker)
	effectiveness := Effectiveness(move.Type, defender.Types)
	damage := e.CalculateDamage(attacker, defender, move, isCritical)
	fainted := ApplyDamage(defender, damage)

	head := e.entry(turn, fmt.Sprintf("%s used %s! %s took %d damage.", attacker.Name, move.Name, defender.Name, damage))
	head.Damage = &damage
	head.Effectiveness = &effectiveness
	head.IsCritical = &isCritical
	entries := []models.BattleLogEntry{head}

	if effectiveness != 1 {
		entries = append(entries, e.entry(turn, effectivenessNarrative(effectiveness)))
	}
	if isCritical {
		entries = append(entries, e.entry(turn, "A critical hit!"))
	}
	if fainted {
		entries = append(entries, e.entry(turn, fmt.Sprintf("%s fainted!", defender.Name)))
	} else if inflicted := e.tryInflict(defender, move); inflicted != "" {
		entries = append(entries, e.entry(turn, inflicted))
	}
	return entries
}

func (e *Engine) tryInflict(defender *models.Combatant, move Move) string {
	if move.Inflicts == "" || move.Inflicts == models.StatusNone || defender.Status.Active() {
		return ""
	}
	if e.rng.Float64() >= move.InflictChance {
		return ""
	}
	duration := move.Duration
	if duration <= 0 {
		duration = 3
	}
	defender.Status = models.StatusCondition{Kind: move.Inflicts, TurnsRemaining: duration}
	if move.Inflicts == models.StatusBurn {
		return fmt.Sprintf("%s was burned!", defender.Name)
	}
	return fmt.Sprintf("%s was poisoned!", defender.Name)
}

func (e *Engine) usePotion(turn int, c *models.Combatant) models.BattleLogEntry {
	heal := max(c.MaxHP/potionDivisor, 1)
	heal = min(heal, c.MaxHP-c.CurrentHP)
	c.CurrentHP += heal
	return e.entry(turn, fmt.Sprintf("%s used a potion and restored %d HP.", c.Name, heal))
}

func (e *Engine) entry(turn int, description string) models.BattleLogEntry {
	return models.BattleLogEntry{Turn: turn, Description: description, Timestamp: e.now()}
}
