// Package repository defines persistence interfaces implemented by the
// postgres and redis sub-packages.
package repository

import (
	"context"
	"time"

	"github.com/strait-command/api/internal/model"
)

// CampaignRepository is the durable store of campaign records.
type CampaignRepository interface {
	Create(ctx context.Context, name, creatorID, scenario string, seed int64) (*model.Campaign, error)
	FindByID(ctx context.Context, id string) (*model.Campaign, error)
	ListActive(ctx context.Context) ([]model.Campaign, error)
	ListFinished(ctx context.Context) ([]model.Campaign, error)
	UpdateTurn(ctx context.Context, id string, turn int) error
	Finish(ctx context.Context, id string, result *model.CampaignResult) error
	Losses(ctx context.Context, id string) ([]model.FactionLosses, error)
}

// StateCache holds hot campaign state between requests. Snapshots are
// the engine's JSON serialization; the event log is a capped list of
// recent engine events for late-joining spectators.
type StateCache interface {
	SetSnapshot(ctx context.Context, campaignID string, snapshot []byte, ttl time.Duration) error
	GetSnapshot(ctx context.Context, campaignID string) ([]byte, error)
	DeleteSnapshot(ctx context.Context, campaignID string) error
	AppendEvents(ctx context.Context, campaignID string, events [][]byte) error
	RecentEvents(ctx context.Context, campaignID string, limit int) ([][]byte, error)
}
