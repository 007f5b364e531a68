package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

type RewardKind string

const (
	RewardKindCurrency RewardKind = "currency"
	RewardKindPokemon  RewardKind = "pokemon"
	RewardKindItem     RewardKind = "item"
)

type Currency string

const (
	CurrencyCredits    Currency = "credits"
	CurrencyGems       Currency = "gems"
	CurrencyExperience Currency = "experience"
)

type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

// Rarities is the fixed order used by weighted draws.
var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}

func (r Rarity) IsValid() bool {
	for _, known := range Rarities {
		if r == known {
			return true
		}
	}
	return false
}

var (
	ErrInvalidReward     = errors.New("invalid reward")
	ErrUnknownRewardKind = errors.New("unknown reward kind")
)

// Reward is one of CurrencyReward, PokemonReward or ItemReward.
type Reward interface {
	Kind() RewardKind
	Validate() error
}

type CurrencyReward struct {
	Currency Currency `json:"currency"`
	Amount   int      `json:"amount"`
}

func NewCurrencyReward(currency Currency, amount int) (CurrencyReward, error) {
	r := CurrencyReward{Currency: currency, Amount: amount}
	return r, r.Validate()
}

func (CurrencyReward) Kind() RewardKind { return RewardKindCurrency }

func (r CurrencyReward) Validate() error {
	switch r.Currency {
	case CurrencyCredits, CurrencyGems, CurrencyExperience:
	default:
		return fmt.Errorf("%w: unknown currency %q", ErrInvalidReward, r.Currency)
	}
	if r.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %d", ErrInvalidReward, r.Amount)
	}
	return nil
}

func (r CurrencyReward) MarshalJSON() ([]byte, error) {
	type alias CurrencyReward
	return json.Marshal(struct {
		Kind RewardKind `json:"kind"`
		alias
	}{RewardKindCurrency, alias(r)})
}

type PokemonReward struct {
	Species string `json:"species"`
	Rarity  Rarity `json:"rarity"`
	Level   int    `json:"level"`
}

func NewPokemonReward(species string, rarity Rarity, level int) (PokemonReward, error) {
	r := PokemonReward{Species: species, Rarity: rarity, Level: level}
	return r, r.Validate()
}

func (PokemonReward) Kind() RewardKind { return RewardKindPokemon }

func (r PokemonReward) Validate() error {
	if r.Species == "" {
		return fmt.Errorf("%w: species is required", ErrInvalidReward)
	}
	if !r.Rarity.IsValid() {
		return fmt.Errorf("%w: unknown rarity %q", ErrInvalidReward, r.Rarity)
	}
	if r.Level < 1 || r.Level > 100 {
		return fmt.Errorf("%w: level must be within 1..100, got %d", ErrInvalidReward, r.Level)
	}
	return nil
}

func (r PokemonReward) MarshalJSON() ([]byte, error) {
	type alias PokemonReward
	return json.Marshal(struct {
		Kind RewardKind `json:"kind"`
		alias
	}{RewardKindPokemon, alias(r)})
}

type ItemReward struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

func NewItemReward(itemID string, quantity int) (ItemReward, error) {
	r := ItemReward{ItemID: itemID, Quantity: quantity}
	return r, r.Validate()
}

func (ItemReward) Kind() RewardKind { return RewardKindItem }

func (r ItemReward) Validate() error {
	if r.ItemID == "" {
		return fmt.Errorf("%w: item id is required", ErrInvalidReward)
	}
	if r.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidReward, r.Quantity)
	}
	return nil
}

func (r ItemReward) MarshalJSON() ([]byte, error) {
	type alias ItemReward
	return json.Marshal(struct {
		Kind RewardKind `json:"kind"`
		alias
	}{RewardKindItem, alias(r)})
}

// DecodeReward reads a tagged reward and validates it.
func DecodeReward(data []byte) (Reward, error) {
	var head struct {
		Kind RewardKind `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode reward kind: %w", err)
	}

	var reward Reward
	switch head.Kind {
	case RewardKindCurrency:
		var r CurrencyReward
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode currency reward: %w", err)
		}
		reward = r
	case RewardKindPokemon:
		var r PokemonReward
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode pokemon reward: %w", err)
		}
		reward = r
	case RewardKindItem:
		var r ItemReward
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("decode item reward: %w", err)
		}
		reward = r
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRewardKind, head.Kind)
	}

	if err := reward.Validate(); err != nil {
		return nil, err
	}
	return reward, nil
}

// TaggedReward carries any Reward through JSON, keeping its kind tag.
type TaggedReward struct {
	Reward
}

func (t TaggedReward) MarshalJSON() ([]byte, error) {
	if t.Reward == nil {
		return []byte("null"), nil
	}
	return json.Marshal(t.Reward)
}

func (t *TaggedReward) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Reward = nil
		return nil
	}
	r, err := DecodeReward(data)
	if err != nil {
		return err
	}
	t.Reward = r
	return nil
}
