package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Dosada05/pokearena/models"
)

const battleLogPrefix = "battles/"

// BattleArchiver stores the full battle log outside the database and returns
// its public URL. An empty URL means nothing was archived.
type BattleArchiver interface {
	ArchiveBattle(ctx context.Context, summary *models.BattleSummary) (string, error)
	// DiscardBattle removes a log whose battle was never persisted.
	DiscardBattle(ctx context.Context, battleID string) error
}

func BattleLogKey(battleID string) string {
	return battleLogPrefix + battleID + ".json"
}

type storeArchive struct {
	store ObjectStore
}

func NewBattleArchive(store ObjectStore) BattleArchiver {
	if store == nil {
		return NoopArchive{}
	}
	return &storeArchive{store: store}
}

func (a *storeArchive) ArchiveBattle(ctx context.Context, summary *models.BattleSummary) (string, error) {
	if summary == nil || summary.BattleID == "" {
		return "", fmt.Errorf("battle summary without id cannot be archived")
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("failed to encode battle %s: %w", summary.BattleID, err)
	}
	obj, err := a.store.Put(ctx, BattleLogKey(summary.BattleID), "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	return obj.URL, nil
}

func (a *storeArchive) DiscardBattle(ctx context.Context, battleID string) error {
	if battleID == "" {
		return nil
	}
	return a.store.Delete(ctx, BattleLogKey(battleID))
}

// NoopArchive is used when object storage is not configured.
type NoopArchive struct{}

func (NoopArchive) ArchiveBattle(context.Context, *models.BattleSummary) (string, error) {
	return "", nil
}

func (NoopArchive) DiscardBattle(context.Context, string) error { return nil }
