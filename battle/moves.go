package battle

import (
	"strings"

	"github.com/Dosada05/pokearena/models"
)

const (
	DefaultMovePower = 50
	FallbackMove     = "tackle"
)

type Move struct {
	Name  string             `json:"name"`
	Type  models.PokemonType `json:"type"`
	Power int                `json:"power"`
	// Quick moves act before regular attacks.
	Quick bool `json:"quick,omitempty"`

	Inflicts      models.StatusKind `json:"inflicts,omitempty"`
	InflictChance float64           `json:"inflict_chance,omitempty"`
	Duration      int               `json:"duration,omitempty"`
}

// MoveCatalog resolves a move by name. Unknown names must still return a usable move.
type MoveCatalog interface {
	Lookup(name string) Move
}

type StaticMoveCatalog map[string]Move

func (c StaticMoveCatalog) Lookup(name string) Move {
	key := strings.ToLower(strings.TrimSpace(name))
	if m, ok := c[key]; ok {
		return m
	}
	return Move{Name: name, Type: models.TypeNormal, Power: DefaultMovePower}
}

var DefaultMoves = StaticMoveCatalog{
	"tackle":        {Name: "tackle", Type: models.TypeNormal, Power: 40},
	"scratch":       {Name: "scratch", Type: models.TypeNormal, Power: 40},
	"quick-attack":  {Name: "quick-attack", Type: models.TypeNormal, Power: 40, Quick: true},
	"body-slam":     {Name: "body-slam", Type: models.TypeNormal, Power: 85},
	"ember":         {Name: "ember", Type: models.TypeFire, Power: 40, Inflicts: models.StatusBurn, InflictChance: 0.1, Duration: 3},
	"flamethrower":  {Name: "flamethrower", Type: models.TypeFire, Power: 90, Inflicts: models.StatusBurn, InflictChance: 0.1, Duration: 3},
	"water-gun":     {Name: "water-gun", Type: models.TypeWater, Power: 40},
	"surf":          {Name: "surf", Type: models.TypeWater, Power: 90},
	"aqua-jet":      {Name: "aqua-jet", Type: models.TypeWater, Power: 40, Quick: true},
	"thunder-shock": {Name: "thunder-shock", Type: models.TypeElectric, Power: 40},
	"thunderbolt":   {Name: "thunderbolt", Type: models.TypeElectric, Power: 90},
	"vine-whip":     {Name: "vine-whip", Type: models.TypeGrass, Power: 45},
	"razor-leaf":    {Name: "razor-leaf", Type: models.TypeGrass, Power: 55},
	"ice-beam":      {Name: "ice-beam", Type: models.TypeIce, Power: 90},
	"ice-shard":     {Name: "ice-shard", Type: models.TypeIce, Power: 40, Quick: true},
	"brick-break":   {Name: "brick-break", Type: models.TypeFighting, Power: 75},
	"mach-punch":    {Name: "mach-punch", Type: models.TypeFighting, Power: 40, Quick: true},
	"poison-sting":  {Name: "poison-sting", Type: models.TypePoison, Power: 15, Inflicts: models.StatusPoison, InflictChance: 0.3, Duration: 4},
	"sludge-bomb":   {Name: "sludge-bomb", Type: models.TypePoison, Power: 90, Inflicts: models.StatusPoison, InflictChance: 0.3, Duration: 4},
	"earthquake":    {Name: "earthquake", Type: models.TypeGround, Power: 100},
	"wing-attack":   {Name: "wing-attack", Type: models.TypeFlying, Power: 60},
	"psychic":       {Name: "psychic", Type: models.TypePsychic, Power: 90},
	"bug-bite":      {Name: "bug-bite", Type: models.TypeBug, Power: 60},
	"rock-slide":    {Name: "rock-slide", Type: models.TypeRock, Power: 75},
	"shadow-ball":   {Name: "shadow-ball", Type: models.TypeGhost, Power: 80},
	"shadow-sneak":  {Name: "shadow-sneak", Type: models.TypeGhost, Power: 40, Quick: true},
	"dragon-claw":   {Name: "dragon-claw", Type: models.TypeDragon, Power: 80},
	"bite":          {Name: "bite", Type: models.TypeDark, Power: 60},
	"iron-tail":     {Name: "iron-tail", Type: models.TypeSteel, Power: 100},
	"moonblast":     {Name: "moonblast", Type: models.TypeFairy, Power: 95},
}
