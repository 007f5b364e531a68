package models

// PokemonType is one of the 18 elemental types of the standard chart.
type PokemonType string

const (
	TypeNormal   PokemonType = "normal"
	TypeFire     PokemonType = "fire"
	TypeWater    PokemonType = "water"
	TypeElectric PokemonType = "electric"
	TypeGrass    PokemonType = "grass"
	TypeIce      PokemonType = "ice"
	TypeFighting PokemonType = "fighting"
	TypePoison   PokemonType = "poison"
	TypeGround   PokemonType = "ground"
	TypeFlying   PokemonType = "flying"
	TypePsychic  PokemonType = "psychic"
	TypeBug      PokemonType = "bug"
	TypeRock     PokemonType = "rock"
	TypeGhost    PokemonType = "ghost"
	TypeDragon   PokemonType = "dragon"
	TypeDark     PokemonType = "dark"
	TypeSteel    PokemonType = "steel"
	TypeFairy    PokemonType = "fairy"
)

// AllTypes lists every type in chart order.
var AllTypes = []PokemonType{
	TypeNormal, TypeFire, TypeWater, TypeElectric, TypeGrass, TypeIce,
	TypeFighting, TypePoison, TypeGround, TypeFlying, TypePsychic, TypeBug,
	TypeRock, TypeGhost, TypeDragon, TypeDark, TypeSteel, TypeFairy,
}

func (t PokemonType) IsValid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

type StatusKind string

const (
	StatusNone   StatusKind = "none"
	StatusBurn   StatusKind = "burn"
	StatusPoison StatusKind = "poison"
)

type StatusCondition struct {
	Kind           StatusKind `json:"kind"`
	TurnsRemaining int        `json:"turns_remaining"`
}

// Active reports whether the condition still deals damage.
func (s StatusCondition) Active() bool {
	return s.Kind != "" && s.Kind != StatusNone && s.TurnsRemaining > 0
}

type Stats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"special_attack"`
	SpecialDefense int `json:"special_defense"`
	Speed          int `json:"speed"`
}

// Combatant is a roster Pokémon snapshot that lives for a single battle.
type Combatant struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Species   string          `json:"species"`
	Types     []PokemonType   `json:"types"`
	Level     int             `json:"level"`
	Stats     Stats           `json:"stats"`
	MaxHP     int             `json:"max_hp"`
	CurrentHP int             `json:"current_hp"`
	Moves     []string        `json:"moves,omitempty"`
	Status    StatusCondition `json:"status"`
}

func (c *Combatant) IsFainted() bool {
	return c.CurrentHP <= 0
}

func (c *Combatant) HasType(t PokemonType) bool {
	for _, own := range c.Types {
		if own == t {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so a battle never mutates the caller's team.
func (c *Combatant) Clone() *Combatant {
	cp := *c
	cp.Types = append([]PokemonType(nil), c.Types...)
	cp.Moves = append([]string(nil), c.Moves...)
	return &cp
}

func (c *Combatant) Snapshot() CombatantSnapshot {
	return CombatantSnapshot{
		ID:        c.ID,
		Name:      c.Name,
		CurrentHP: c.CurrentHP,
		MaxHP:     c.MaxHP,
		Fainted:   c.IsFainted(),
	}
}

type CombatantSnapshot struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	CurrentHP int    `json:"current_hp"`
	MaxHP     int    `json:"max_hp"`
	Fainted   bool   `json:"fainted"`
}

// CountAlive returns how many combatants still have HP left.
func CountAlive(team []*Combatant) int {
	alive := 0
	for _, c := range team {
		if c != nil && !c.IsFainted() {
			alive++
		}
	}
	return alive
}
