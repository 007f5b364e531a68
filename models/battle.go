package models

import "time"

type ActionKind string

const (
	ActionAttack ActionKind = "attack"
	ActionItem   ActionKind = "item"
	ActionSwitch ActionKind = "switch"
	ActionFlee   ActionKind = "flee"
)

// BattleAction is chosen once per combatant per turn.
type BattleAction struct {
	Kind     ActionKind `json:"kind"`
	MoveName string     `json:"move_name,omitempty"`
}

func AttackAction(move string) BattleAction {
	return BattleAction{Kind: ActionAttack, MoveName: move}
}

func ItemAction() BattleAction   { return BattleAction{Kind: ActionItem} }
func SwitchAction() BattleAction { return BattleAction{Kind: ActionSwitch} }
func FleeAction() BattleAction   { return BattleAction{Kind: ActionFlee} }

type BattleLogEntry struct {
	Turn          int       `json:"turn"`
	Description   string    `json:"description"`
	Damage        *int      `json:"damage,omitempty"`
	Effectiveness *float64  `json:"effectiveness,omitempty"`
	IsCritical    *bool     `json:"is_critical,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

type BattleWinner string

const (
	WinnerPlayer1 BattleWinner = "player1"
	WinnerPlayer2 BattleWinner = "player2"
	WinnerDraw    BattleWinner = "draw"
)

// BattleMode selects the reward base of a simulated battle.
type BattleMode string

const (
	BattleModeFree     BattleMode = "free"
	BattleModeSurvival BattleMode = "survival"
	BattleModeArena    BattleMode = "arena"
)

type BattleRewards struct {
	Credits    int         `json:"credits"`
	Gems       int         `json:"gems"`
	Experience int         `json:"experience"`
	BonusItem  *ItemReward `json:"bonus_item,omitempty"`
}

// Items flattens the rewards into their tagged form.
func (r BattleRewards) Items() []Reward {
	var out []Reward
	if r.Credits > 0 {
		out = append(out, CurrencyReward{Currency: CurrencyCredits, Amount: r.Credits})
	}
	if r.Gems > 0 {
		out = append(out, CurrencyReward{Currency: CurrencyGems, Amount: r.Gems})
	}
	if r.Experience > 0 {
		out = append(out, CurrencyReward{Currency: CurrencyExperience, Amount: r.Experience})
	}
	if r.BonusItem != nil {
		out = append(out, *r.BonusItem)
	}
	return out
}

type BattleSummary struct {
	BattleID     string              `json:"battle_id"`
	Winner       BattleWinner        `json:"winner"`
	Duration     time.Duration       `json:"duration"`
	Turns        int                 `json:"turns"`
	TotalDamage  int                 `json:"total_damage"`
	CriticalHits int                 `json:"critical_hits"`
	Rewards      BattleRewards       `json:"rewards"`
	Team1Final   []CombatantSnapshot `json:"team1_final"`
	Team2Final   []CombatantSnapshot `json:"team2_final"`
	Log          []BattleLogEntry    `json:"log"`
	LogURL       string              `json:"log_url,omitempty"`
}
