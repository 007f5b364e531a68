package battle

import (
	"testing"

	"github.com/Dosada05/pokearena/models"
	"github.com/Dosada05/pokearena/utils"
)

// scriptedRand replays fixed draws, then falls back to a constant.
type scriptedRand struct {
	floats   []float64
	fallback float64
	calls    int
}

func (s *scriptedRand) Float64() float64 {
	s.calls++
	if len(s.floats) == 0 {
		return s.fallback
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scriptedRand) Intn(n int) int { return 0 }

func newCombatant(name string, types []models.PokemonType, level, hp, atk, def, speed int) *models.Combatant {
	return &models.Combatant{
		Name:      name,
		Species:   name,
		Types:     types,
		Level:     level,
		Stats:     models.Stats{HP: hp, Attack: atk, Defense: def, Speed: speed},
		MaxHP:     hp,
		CurrentHP: hp,
		Status:    models.StatusCondition{Kind: models.StatusNone},
	}
}

func TestCalculateDamageReferenceScenario(t *testing.T) {
	engine := NewEngine(DefaultMoves, utils.NewLockedRand(3))
	attacker := newCombatant("Charmander", []models.PokemonType{models.TypeFire}, 50, 150, 100, 100, 50)
	defender := newCombatant("Rattata", []models.PokemonType{models.TypeNormal}, 50, 150, 100, 100, 50)
	move := Move{Name: "surf", Type: models.TypeWater, Power: 90}

	for i := 0; i < 500; i++ {
		dmg := engine.CalculateDamage(attacker, defender, move, false)
		if dmg < 35 || dmg > 42 {
			t.Fatalf("damage %d outside [35, 42]", dmg)
		}
	}
}

func TestCalculateDamageRandomFactorBounds(t *testing.T) {
	attacker := newCombatant("Charmander", []models.PokemonType{models.TypeFire}, 50, 150, 100, 100, 50)
	defender := newCombatant("Rattata", []models.PokemonType{models.TypeNormal}, 50, 150, 100, 100, 50)
	move := Move{Name: "surf", Type: models.TypeWater, Power: 90}

	low := NewEngine(DefaultMoves, &scriptedRand{fallback: 0})
	if got := low.CalculateDamage(attacker, defender, move, false); got != 35 {
		t.Fatalf("expected 35 at the lowest roll, got %d", got)
	}
	high := NewEngine(DefaultMoves, &scriptedRand{fallback: 0.999999})
	if got := high.CalculateDamage(attacker, defender, move, false); got != 41 {
		t.Fatalf("expected 41 at the highest roll, got %d", got)
	}
}

func TestCalculateDamageModifiers(t *testing.T) {
	engine := NewEngine(DefaultMoves, &scriptedRand{fallback: 0.5})
	attacker := newCombatant("Squirtle", []models.PokemonType{models.TypeWater}, 50, 150, 100, 100, 50)
	neutral := newCombatant("Rattata", []models.PokemonType{models.TypeNormal}, 50, 150, 100, 100, 50)
	weak := newCombatant("Charmander", []models.PokemonType{models.TypeFire}, 50, 150, 100, 100, 50)
	surf := DefaultMoves.Lookup("surf")
	tackle := DefaultMoves.Lookup("tackle")

	plain := engine.CalculateDamage(attacker, neutral, tackle, false)
	crit := engine.CalculateDamage(attacker, neutral, tackle, true)
	if crit <= plain {
		t.Fatalf("critical hit should deal more: plain=%d crit=%d", plain, crit)
	}

	stab := engine.CalculateDamage(attacker, neutral, surf, false)
	superEffective := engine.CalculateDamage(attacker, weak, surf, false)
	if superEffective < 2*stab-1 || superEffective > 2*stab+1 {
		t.Fatalf("super-effective hit should roughly double: stab=%d super=%d", stab, superEffective)
	}
}

func TestCalculateDamageNeverBelowOne(t *testing.T) {
	engine := NewEngine(DefaultMoves, &scriptedRand{fallback: 0})
	attacker := newCombatant("Magikarp", []models.PokemonType{models.TypeWater}, 1, 10, 1, 1, 1)
	defender := newCombatant("Gengar", []models.PokemonType{models.TypeGhost}, 100, 300, 100, 500, 100)

	for _, move := range []Move{DefaultMoves.Lookup("tackle"), DefaultMoves.Lookup("poison-sting"), {Name: "splash", Power: 0}} {
		if got := engine.CalculateDamage(attacker, defender, move, false); got < 1 {
			t.Fatalf("move %s dealt %d, expected at least 1", move.Name, got)
		}
	}
}

func TestUnknownMoveFallsBackToDefaultPower(t *testing.T) {
	m := DefaultMoves.Lookup("hyper-mega-blast")
	if m.Power != DefaultMovePower || m.Type != models.TypeNormal {
		t.Fatalf("unexpected fallback move: %+v", m)
	}
	if m := DefaultMoves.Lookup("  Thunderbolt "); m.Power != 90 || m.Type != models.TypeElectric {
		t.Fatalf("lookup should be case-insensitive: %+v", m)
	}
}

func TestIsCriticalHitUsesFixedChance(t *testing.T) {
	if !NewEngine(nil, &scriptedRand{fallback: 0.06}).IsCriticalHit(nil) {
		t.Fatal("0.06 should be a critical hit")
	}
	if NewEngine(nil, &scriptedRand{fallback: 0.0625}).IsCriticalHit(nil) {
		t.Fatal("0.0625 should not be a critical hit")
	}
}

func TestApplyDamageClampsAndReportsKnockOutOnce(t *testing.T) {
	c := newCombatant("Pidgey", []models.PokemonType{models.TypeNormal, models.TypeFlying}, 5, 20, 10, 10, 10)

	if ApplyDamage(c, 5) {
		t.Fatal("non-lethal hit reported a knock-out")
	}
	if !ApplyDamage(c, 100) {
		t.Fatal("lethal hit did not report a knock-out")
	}
	if c.CurrentHP != 0 {
		t.Fatalf("expected HP clamped to 0, got %d", c.CurrentHP)
	}
	if ApplyDamage(c, 3) {
		t.Fatal("hitting a fainted combatant should not report a second knock-out")
	}
}

func TestApplyStatusEffects(t *testing.T) {
	burned := newCombatant("Eevee", []models.PokemonType{models.TypeNormal}, 10, 160, 10, 10, 10)
	burned.Status = models.StatusCondition{Kind: models.StatusBurn, TurnsRemaining: 2}

	if got := ApplyStatusEffects(burned); got != 10 {
		t.Fatalf("burn should deal 1/16 max HP (10), got %d", got)
	}
	if burned.Status.TurnsRemaining != 1 {
		t.Fatalf("expected 1 turn remaining, got %d", burned.Status.TurnsRemaining)
	}
	if got := ApplyStatusEffects(burned); got != 10 {
		t.Fatalf("second burn tick should deal 10, got %d", got)
	}
	if burned.Status.Kind != models.StatusNone {
		t.Fatalf("status should clear at 0 turns, got %s", burned.Status.Kind)
	}
	if got := ApplyStatusEffects(burned); got != 0 {
		t.Fatalf("no status should deal 0, got %d", got)
	}
	if burned.CurrentHP != 160 {
		t.Fatalf("ApplyStatusEffects must not touch HP, got %d", burned.CurrentHP)
	}

	poisoned := newCombatant("Weedle", []models.PokemonType{models.TypeBug}, 10, 100, 10, 10, 10)
	poisoned.Status = models.StatusCondition{Kind: models.StatusPoison, TurnsRemaining: 4}
	if got := ApplyStatusEffects(poisoned); got != 12 {
		t.Fatalf("poison should deal floor(100/8)=12, got %d", got)
	}
}
