package battle

import "github.com/Dosada05/pokearena/models"

// typeChart holds only the non-neutral pairings; anything missing is 1.0.
var typeChart = map[models.PokemonType]map[models.PokemonType]float64{
	models.TypeNormal: {
		models.TypeRock: 0.5, models.TypeGhost: 0, models.TypeSteel: 0.5,
	},
	models.TypeFire: {
		models.TypeFire: 0.5, models.TypeWater: 0.5, models.TypeGrass: 2, models.TypeIce: 2,
		models.TypeBug: 2, models.TypeRock: 0.5, models.TypeDragon: 0.5, models.TypeSteel: 2,
	},
	models.TypeWater: {
		models.TypeFire: 2, models.TypeWater: 0.5, models.TypeGrass: 0.5, models.TypeGround: 2,
		models.TypeRock: 2, models.TypeDragon: 0.5,
	},
	models.TypeElectric: {
		models.TypeWater: 2, models.TypeElectric: 0.5, models.TypeGrass: 0.5, models.TypeGround: 0,
		models.TypeFlying: 2, models.TypeDragon: 0.5,
	},
	models.TypeGrass: {
		models.TypeFire: 0.5, models.TypeWater: 2, models.TypeGrass: 0.5, models.TypePoison: 0.5,
		models.TypeGround: 2, models.TypeFlying: 0.5, models.TypeBug: 0.5, models.TypeRock: 2,
		models.TypeDragon: 0.5, models.TypeSteel: 0.5,
	},
	models.TypeIce: {
		models.TypeFire: 0.5, models.TypeWater: 0.5, models.TypeGrass: 2, models.TypeIce: 0.5,
		models.TypeGround: 2, models.TypeFlying: 2, models.TypeDragon: 2, models.TypeSteel: 0.5,
	},
	models.TypeFighting: {
		models.TypeNormal: 2, models.TypeIce: 2, models.TypePoison: 0.5, models.TypeFlying: 0.5,
		models.TypePsychic: 0.5, models.TypeBug: 0.5, models.TypeRock: 2, models.TypeGhost: 0,
		models.TypeDark: 2, models.TypeSteel: 2, models.TypeFairy: 0.5,
	},
	models.TypePoison: {
		models.TypeGrass: 2, models.TypePoison: 0.5, models.TypeGround: 0.5, models.TypeRock: 0.5,
		models.TypeGhost: 0.5, models.TypeSteel: 0, models.TypeFairy: 2,
	},
	models.TypeGround: {
		models.TypeFire: 2, models.TypeElectric: 2, models.TypeGrass: 0.5, models.TypePoison: 2,
		models.TypeFlying: 0, models.TypeBug: 0.5, models.TypeRock: 2, models.TypeSteel: 2,
	},
	models.TypeFlying: {
		models.TypeElectric: 0.5, models.TypeGrass: 2, models.TypeFighting: 2, models.TypeBug: 2,
		models.TypeRock: 0.5, models.TypeSteel: 0.5,
	},
	models.TypePsychic: {
		models.TypeFighting: 2, models.TypePoison: 2, models.TypePsychic: 0.5, models.TypeDark: 0,
		models.TypeSteel: 0.5,
	},
	models.TypeBug: {
		models.TypeFire: 0.5, models.TypeGrass: 2, models.TypeFighting: 0.5, models.TypePoison: 0.5,
		models.TypeFlying: 0.5, models.TypePsychic: 2, models.TypeGhost: 0.5, models.TypeDark: 2,
		models.TypeSteel: 0.5, models.TypeFairy: 0.5,
	},
	models.TypeRock: {
		models.TypeFire: 2, models.TypeIce: 2, models.TypeFighting: 0.5, models.TypeGround: 0.5,
		models.TypeFlying: 2, models.TypeBug: 2, models.TypeSteel: 0.5,
	},
	models.TypeGhost: {
		models.TypeNormal: 0, models.TypePsychic: 2, models.TypeGhost: 2, models.TypeDark: 0.5,
	},
	models.TypeDragon: {
		models.TypeDragon: 2, models.TypeSteel: 0.5, models.TypeFairy: 0,
	},
	models.TypeDark: {
		models.TypeFighting: 0.5, models.TypePsychic: 2, models.TypeGhost: 2, models.TypeDark: 0.5,
		models.TypeFairy: 0.5,
	},
	models.TypeSteel: {
		models.TypeFire: 0.5, models.TypeWater: 0.5, models.TypeElectric: 0.5, models.TypeIce: 2,
		models.TypeRock: 2, models.TypeSteel: 0.5, models.TypeFairy: 2,
	},
	models.TypeFairy: {
		models.TypeFire: 0.5, models.TypeFighting: 2, models.TypePoison: 0.5, models.TypeDragon: 2,
		models.TypeDark: 2, models.TypeSteel: 0.5,
	},
}

// Effectiveness multiplies the chart entry against every defending type.
func Effectiveness(attack models.PokemonType, defense []models.PokemonType) float64 {
	multiplier := 1.0
	row := typeChart[attack]
	for _, d := range defense {
		if m, ok := row[d]; ok {
			multiplier *= m
		}
	}
	return multiplier
}

// Weaknesses returns every attack type that hits the type set super-effectively.
func Weaknesses(types []models.PokemonType) []models.PokemonType {
	return filterAttackTypes(types, func(m float64) bool { return m > 1 })
}

func Resistances(types []models.PokemonType) []models.PokemonType {
	return filterAttackTypes(types, func(m float64) bool { return m > 0 && m < 1 })
}

func Immunities(types []models.PokemonType) []models.PokemonType {
	return filterAttackTypes(types, func(m float64) bool { return m == 0 })
}

func filterAttackTypes(types []models.PokemonType, keep func(float64) bool) []models.PokemonType {
	out := make([]models.PokemonType, 0)
	for _, attack := range models.AllTypes {
		if keep(Effectiveness(attack, types)) {
			out = append(out, attack)
		}
	}
	return out
}

func effectivenessNarrative(multiplier float64) string {
	switch {
	case multiplier == 0:
		return "It had no effect..."
	case multiplier > 1:
		return "It's super effective!"
	case multiplier < 1:
		return "It's not very effective..."
	default:
		return ""
	}
}
