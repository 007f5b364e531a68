package rarity

import (
	"fmt"

	"github.com/Dosada05/pokearena/models"
	"github.com/Dosada05/pokearena/utils"
)

type PackType string

const (
	PackStarter PackType = "starter"
	PackPremium PackType = "premium"
	PackEvent   PackType = "event"
)

const (
	StarterPackSize    = 3
	defaultRewardLevel = 5
)

// WeightTable maps each rarity to a weight. Tables must sum to 100.
type WeightTable map[models.Rarity]float64

var weightTables = map[PackType]WeightTable{
	PackStarter: {
		models.RarityCommon: 60, models.RarityUncommon: 25, models.RarityRare: 10,
		models.RarityEpic: 4, models.RarityLegendary: 1,
	},
	PackPremium: {
		models.RarityCommon: 40, models.RarityUncommon: 30, models.RarityRare: 18,
		models.RarityEpic: 9, models.RarityLegendary: 3,
	},
	PackEvent: {
		models.RarityCommon: 25, models.RarityUncommon: 30, models.RarityRare: 25,
		models.RarityEpic: 15, models.RarityLegendary: 5,
	},
}

var speciesPools = map[models.Rarity][]string{
	models.RarityCommon:    {"rattata", "pidgey", "caterpie", "weedle", "zubat", "magikarp"},
	models.RarityUncommon:  {"pikachu", "eevee", "growlithe", "machop", "geodude"},
	models.RarityRare:      {"bulbasaur", "charmander", "squirtle", "abra", "gastly"},
	models.RarityEpic:      {"lapras", "snorlax", "dratini", "scyther"},
	models.RarityLegendary: {"articuno", "zapdos", "moltres", "mewtwo"},
}

type Generator struct {
	rng utils.Rand
}

func NewGenerator(rng utils.Rand) *Generator {
	return &Generator{rng: rng}
}

// Table returns the weights for a pack; unknown packs use the starter table.
func Table(pack PackType) WeightTable {
	if t, ok := weightTables[pack]; ok {
		return t
	}
	return weightTables[PackStarter]
}

func (t WeightTable) Sum() float64 {
	var total float64
	for _, w := range t {
		total += w
	}
	return total
}

// GenerateRarity walks cumulative weights in fixed rarity order against a
// draw in [0, 100).
func (g *Generator) GenerateRarity(pack PackType) models.Rarity {
	return pick(Table(pack), g.rng.Float64()*100)
}

func pick(table WeightTable, roll float64) models.Rarity {
	var cumulative float64
	for _, r := range models.Rarities {
		cumulative += table[r]
		if cumulative >= roll {
			return r
		}
	}
	return models.RarityCommon
}

// GenerateStarterPack has exactly one guaranteed UNCOMMON slot.
func (g *Generator) GenerateStarterPack() []models.Rarity {
	pack := make([]models.Rarity, 0, StarterPackSize)
	pack = append(pack, models.RarityUncommon)
	for len(pack) < StarterPackSize {
		pack = append(pack, g.GenerateRarity(PackStarter))
	}
	utils.Shuffle(g.rng, pack)
	return pack
}

func (g *Generator) GeneratePack(pack PackType, size int) ([]models.Rarity, error) {
	if size <= 0 {
		return nil, fmt.Errorf("pack size must be positive, got %d", size)
	}
	out := make([]models.Rarity, size)
	for i := range out {
		out[i] = g.GenerateRarity(pack)
	}
	return out, nil
}

// RollPokemonReward draws a rarity and a species from that rarity's pool.
func (g *Generator) RollPokemonReward(pack PackType) (models.PokemonReward, error) {
	r := g.GenerateRarity(pack)
	pool := speciesPools[r]
	return models.NewPokemonReward(pool[g.rng.Intn(len(pool))], r, defaultRewardLevel)
}
