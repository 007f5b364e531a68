package matchmaking

import (
	"math"

	"github.com/Dosada05/pokearena/models"
)

const KFactor = 32

type Outcome int

const (
	OutcomeLoss Outcome = iota
	OutcomeWin
	OutcomeDraw
)

func (o Outcome) Score() float64 {
	switch o {
	case OutcomeWin:
		return 1
	case OutcomeDraw:
		return 0.5
	default:
		return 0
	}
}

// ExpectedScore is the standard ELO win expectancy.
func ExpectedScore(playerRating, opponentRating int) float64 {
	return 1 / (1 + math.Pow(10, float64(opponentRating-playerRating)/400))
}

func Delta(playerRating, opponentRating int, outcome Outcome) int {
	return int(math.Round(KFactor * (outcome.Score() - ExpectedScore(playerRating, opponentRating))))
}

// Deltas returns the rating change for both sides of one result.
func Deltas(winnerRating, loserRating int, draw bool) (int, int) {
	if draw {
		return Delta(winnerRating, loserRating, OutcomeDraw), Delta(loserRating, winnerRating, OutcomeDraw)
	}
	return Delta(winnerRating, loserRating, OutcomeWin), Delta(loserRating, winnerRating, OutcomeLoss)
}

// ApplyResult updates rating, counters and streaks. The rating is not
// floored, so the stored change always equals the reported delta.
// A draw leaves the streak alone.
func ApplyResult(r *models.ArenaRating, delta int, outcome Outcome) {
	r.Rating += delta
	r.TotalMatches++

	switch outcome {
	case OutcomeWin:
		r.Wins++
		r.CurrentStreak++
		if r.CurrentStreak > r.BestStreak {
			r.BestStreak = r.CurrentStreak
		}
	case OutcomeLoss:
		r.Losses++
		r.CurrentStreak = 0
	case OutcomeDraw:
		r.Draws++
	}
}
