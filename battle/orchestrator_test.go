package battle

import (
	"testing"

	"github.com/Dosada05/pokearena/models"
	"github.com/Dosada05/pokearena/utils"
)

func randomTeam(rng *utils.LockedRand, size int) []*models.Combatant {
	moves := []string{"tackle", "ember", "surf", "thunderbolt", "poison-sting", "quick-attack", "razor-leaf"}
	team := make([]*models.Combatant, 0, size)
	for i := 0; i < size; i++ {
		t := models.AllTypes[rng.Intn(len(models.AllTypes))]
		c := newCombatant("mon", []models.PokemonType{t}, 5+rng.Intn(60), 20+rng.Intn(200), 5+rng.Intn(150), 5+rng.Intn(150), rng.Intn(150))
		c.ID = i + 1
		c.Moves = []string{moves[rng.Intn(len(moves))]}
		team = append(team, c)
	}
	return team
}

func TestSimulateBattleTerminatesAndRespectsAliveRule(t *testing.T) {
	rng := utils.NewLockedRand(99)
	engine := NewEngine(DefaultMoves, rng)

	for i := 0; i < 200; i++ {
		team1 := randomTeam(rng, 1+rng.Intn(6))
		team2 := randomTeam(rng, 1+rng.Intn(6))
		maxTurns := 5 + rng.Intn(40)

		summary := engine.SimulateBattle(team1, team2, BattleOptions{MaxTurns: maxTurns})

		if summary.Turns > maxTurns {
			t.Fatalf("battle ran %d turns, cap was %d", summary.Turns, maxTurns)
		}
		alive1, alive2 := aliveSnapshots(summary.Team1Final), aliveSnapshots(summary.Team2Final)
		var want models.BattleWinner
		switch {
		case alive1 > 0 && alive2 == 0:
			want = models.WinnerPlayer1
		case alive2 > 0 && alive1 == 0:
			want = models.WinnerPlayer2
		default:
			want = models.WinnerDraw
		}
		if summary.Winner != want {
			t.Fatalf("winner %s does not match alive counts %d/%d", summary.Winner, alive1, alive2)
		}
		for _, snap := range append(summary.Team1Final, summary.Team2Final...) {
			if snap.CurrentHP < 0 || snap.CurrentHP > snap.MaxHP {
				t.Fatalf("HP out of range: %+v", snap)
			}
		}
	}
}

func aliveSnapshots(snaps []models.CombatantSnapshot) int {
	n := 0
	for _, s := range snaps {
		if !s.Fainted {
			n++
		}
	}
	return n
}

func TestSimulateBattleTurnCapIsDraw(t *testing.T) {
	engine := NewEngine(DefaultMoves, &scriptedRand{fallback: 0.5})
	wall1 := newCombatant("Shuckle", []models.PokemonType{models.TypeBug}, 5, 5000, 5, 500, 5)
	wall2 := newCombatant("Blissey", []models.PokemonType{models.TypeNormal}, 5, 5000, 5, 500, 55)

	summary := engine.SimulateBattle([]*models.Combatant{wall1}, []*models.Combatant{wall2}, BattleOptions{MaxTurns: 3})
	if summary.Winner != models.WinnerDraw {
		t.Fatalf("expected draw at the turn cap, got %s", summary.Winner)
	}
	if summary.Turns != 3 {
		t.Fatalf("expected 3 turns, got %d", summary.Turns)
	}
	if summary.TotalDamage <= 0 {
		t.Fatal("expected some damage to be recorded")
	}
}

func TestSimulateBattleMutualKnockOutIsDraw(t *testing.T) {
	engine := NewEngine(DefaultMoves, &scriptedRand{fallback: 0.5})
	poisoned := newCombatant("Nidoran", []models.PokemonType{models.TypePoison}, 20, 80, 60, 40, 90)
	poisoned.CurrentHP = 5
	poisoned.Status = models.StatusCondition{Kind: models.StatusPoison, TurnsRemaining: 2}
	target := newCombatant("Caterpie", []models.PokemonType{models.TypeBug}, 5, 30, 10, 10, 20)
	target.CurrentHP = 1

	summary := engine.SimulateBattle([]*models.Combatant{poisoned}, []*models.Combatant{target}, BattleOptions{MaxTurns: 10})
	if summary.Winner != models.WinnerDraw {
		t.Fatalf("both sides wiped in the same turn should be a draw, got %s", summary.Winner)
	}
	if summary.Turns != 1 {
		t.Fatalf("expected the battle to end on turn 1, got %d", summary.Turns)
	}
	if aliveSnapshots(summary.Team1Final) != 0 || aliveSnapshots(summary.Team2Final) != 0 {
		t.Fatalf("expected no survivors: %+v %+v", summary.Team1Final, summary.Team2Final)
	}
}

func TestSimulateBattleUsesNextAliveCombatant(t *testing.T) {
	engine := NewEngine(DefaultMoves, &scriptedRand{fallback: 0.5})
	strong := newCombatant("Mewtwo", []models.PokemonType{models.TypePsychic}, 70, 400, 200, 150, 130)
	strong.Moves = []string{"psychic"}
	weak1 := newCombatant("Zubat", []models.PokemonType{models.TypePoison}, 5, 20, 10, 10, 10)
	weak2 := newCombatant("Grimer", []models.PokemonType{models.TypePoison}, 5, 20, 10, 10, 10)

	summary := engine.SimulateBattle([]*models.Combatant{strong}, []*models.Combatant{weak1, weak2}, BattleOptions{})
	if summary.Winner != models.WinnerPlayer1 {
		t.Fatalf("expected player1 to win, got %s", summary.Winner)
	}
	if summary.Turns != 2 {
		t.Fatalf("expected one knock-out per turn over 2 turns, got %d", summary.Turns)
	}
	if summary.Rewards.Credits != 150 {
		t.Fatalf("expected full arena credits for a win, got %d", summary.Rewards.Credits)
	}
}

func TestSimulateBattleDoesNotMutateInputTeams(t *testing.T) {
	engine := NewEngine(DefaultMoves, utils.NewLockedRand(5))
	a := newCombatant("Geodude", []models.PokemonType{models.TypeRock}, 20, 60, 80, 100, 20)
	b := newCombatant("Vulpix", []models.PokemonType{models.TypeFire}, 20, 60, 50, 40, 65)

	engine.SimulateBattle([]*models.Combatant{a}, []*models.Combatant{b}, BattleOptions{MaxTurns: 20})
	if a.CurrentHP != 60 || b.CurrentHP != 60 {
		t.Fatalf("input teams were mutated: %d %d", a.CurrentHP, b.CurrentHP)
	}
}

func TestCalculateRewards(t *testing.T) {
	engine := NewEngine(DefaultMoves, &scriptedRand{fallback: 0.5})

	tests := []struct {
		name       string
		winner     models.BattleWinner
		mode       models.BattleMode
		difficulty float64
		want       models.BattleRewards
	}{
		{"arena win", models.WinnerPlayer1, models.BattleModeArena, 1, models.BattleRewards{Credits: 150, Gems: 2, Experience: 60}},
		{"arena draw", models.WinnerDraw, models.BattleModeArena, 1, models.BattleRewards{Credits: 75, Gems: 1, Experience: 30}},
		{"arena loss", models.WinnerPlayer2, models.BattleModeArena, 1, models.BattleRewards{Credits: 45, Gems: 0, Experience: 18}},
		{"free win", models.WinnerPlayer1, models.BattleModeFree, 1, models.BattleRewards{Credits: 50, Gems: 0, Experience: 20}},
		{"survival hard win", models.WinnerPlayer1, models.BattleModeSurvival, 2, models.BattleRewards{Credits: 200, Gems: 2, Experience: 80}},
		{"zero difficulty counts as normal", models.WinnerPlayer1, models.BattleModeFree, 0, models.BattleRewards{Credits: 50, Gems: 0, Experience: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.CalculateRewards(tt.winner, tt.mode, tt.difficulty)
			if got.Credits != tt.want.Credits || got.Gems != tt.want.Gems || got.Experience != tt.want.Experience || got.BonusItem != nil {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}

	free := engine.CalculateRewards(models.WinnerPlayer1, models.BattleModeFree, 1)
	survival := engine.CalculateRewards(models.WinnerPlayer1, models.BattleModeSurvival, 1)
	arena := engine.CalculateRewards(models.WinnerPlayer1, models.BattleModeArena, 1)
	if !(free.Credits < survival.Credits && survival.Credits < arena.Credits) {
		t.Fatalf("mode bases must be ordered free < survival < arena: %d %d %d", free.Credits, survival.Credits, arena.Credits)
	}
}

func TestCalculateRewardsBonusItemOnlyForPlayer1Win(t *testing.T) {
	lucky := &scriptedRand{fallback: 0.05}
	engine := NewEngine(DefaultMoves, lucky)

	win := engine.CalculateRewards(models.WinnerPlayer1, models.BattleModeArena, 1)
	if win.BonusItem == nil || win.BonusItem.ItemID != BonusItemID {
		t.Fatalf("expected a bonus item, got %+v", win.BonusItem)
	}

	calls := lucky.calls
	loss := engine.CalculateRewards(models.WinnerPlayer2, models.BattleModeArena, 1)
	if loss.BonusItem != nil {
		t.Fatal("losses never grant a bonus item")
	}
	if lucky.calls != calls {
		t.Fatal("bonus roll should only happen on a player1 win")
	}
}
