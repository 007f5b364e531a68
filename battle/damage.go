package battle

import (
	"math"
	"time"

	"github.com/Dosada05/pokearena/models"
	"github.com/Dosada05/pokearena/utils"
)

const (
	CriticalChance     = 0.0625
	CriticalMultiplier = 1.5
	STABMultiplier     = 1.5
	minRandomFactor    = 0.85
	maxRandomFactor    = 1.0

	burnDivisor   = 16
	poisonDivisor = 8
)

// Engine resolves damage, turns and whole battles. It is safe for concurrent
// use as long as rng is.
type Engine struct {
	moves  MoveCatalog
	rng    utils.Rand
	now    func() time.Time
	policy ActionPolicy
}

func NewEngine(moves MoveCatalog, rng utils.Rand) *Engine {
	if moves == nil {
		moves = DefaultMoves
	}
	return &Engine{
		moves:  moves,
		rng:    rng,
		now:    time.Now,
		policy: FirstMovePolicy{},
	}
}

func (e *Engine) Moves() MoveCatalog {
	return e.moves
}

// CalculateDamage applies the level/power/stat formula and its modifiers.
// Only the final value is floored; a hit always deals at least 1.
func (e *Engine) CalculateDamage(attacker, defender *models.Combatant, move Move, isCritical bool) int {
	level := float64(max(attacker.Level, 1))
	attack := float64(max(attacker.Stats.Attack, 1))
	defense := float64(max(defender.Stats.Defense, 1))
	power := float64(move.Power)
	if power <= 0 {
		power = DefaultMovePower
	}

	damage := (((2*level/5+2)*power*attack/defense)/50 + 2)

	if isCritical {
		damage *= CriticalMultiplier
	}
	damage *= Effectiveness(move.Type, defender.Types)
	if attacker.HasType(move.Type) {
		damage *= STABMultiplier
	}
	damage *= minRandomFactor + e.rng.Float64()*(maxRandomFactor-minRandomFactor)

	final := int(math.Floor(damage))
	if final < 1 {
		return 1
	}
	return final
}

func (e *Engine) IsCriticalHit(_ *models.Combatant) bool {
	return e.rng.Float64() < CriticalChance
}

// ApplyDamage reports true only when this hit took the combatant to 0 HP.
func ApplyDamage(c *models.Combatant, damage int) bool {
	if damage < 0 {
		damage = 0
	}
	wasStanding := c.CurrentHP > 0
	c.CurrentHP -= damage
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
	return wasStanding && c.CurrentHP == 0
}

// ApplyStatusEffects ticks the status condition and returns the damage it deals.
// The caller applies the damage.
func ApplyStatusEffects(c *models.Combatant) int {
	if !c.Status.Active() {
		if c.Status.Kind != models.StatusNone && c.Status.Kind != "" {
			c.Status = models.StatusCondition{Kind: models.StatusNone}
		}
		return 0
	}

	var damage int
	switch c.Status.Kind {
	case models.StatusBurn:
		damage = c.MaxHP / burnDivisor
	case models.StatusPoison:
		damage = c.MaxHP / poisonDivisor
	}

	c.Status.TurnsRemaining--
	if c.Status.TurnsRemaining <= 0 {
		c.Status = models.StatusCondition{Kind: models.StatusNone}
	}
	return damage
}
