package battle

import (
	"math"

	"github.com/Dosada05/pokearena/models"
)

const (
	bonusItemChance = 0.10
	BonusItemID     = "rare-candy"
)

type rewardBase struct {
	credits    int
	gems       int
	experience int
}

var rewardBases = map[models.BattleMode]rewardBase{
	models.BattleModeFree:     {credits: 50, gems: 0, experience: 20},
	models.BattleModeSurvival: {credits: 100, gems: 1, experience: 40},
	models.BattleModeArena:    {credits: 150, gems: 2, experience: 60},
}

// resultPercents are the win/draw/loss multipliers in percent.
var resultPercents = map[models.BattleWinner]int{
	models.WinnerPlayer1: 100,
	models.WinnerDraw:    50,
	models.WinnerPlayer2: 30,
}

// CalculateRewards is computed from player 1's point of view. The loser still
// gets a share.
func (e *Engine) CalculateRewards(winner models.BattleWinner, mode models.BattleMode, difficulty float64) models.BattleRewards {
	base, ok := rewardBases[mode]
	if !ok {
		base = rewardBases[models.BattleModeFree]
	}
	if difficulty <= 0 {
		difficulty = 1
	}
	percent := float64(resultPercents[winner])
	scaled := func(amount int) int {
		return int(math.Floor(float64(amount) * percent * difficulty / 100))
	}

	rewards := models.BattleRewards{
		Credits:    scaled(base.credits),
		Gems:       scaled(base.gems),
		Experience: scaled(base.experience),
	}

	if winner == models.WinnerPlayer1 && e.rng.Float64() < bonusItemChance {
		item := models.ItemReward{ItemID: BonusItemID, Quantity: 1}
		rewards.BonusItem = &item
	}
	return rewards
}
