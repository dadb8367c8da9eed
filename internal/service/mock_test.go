package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/strait-command/api/internal/model"
)

type mockCampaignRepo struct {
	mu        sync.Mutex
	campaigns map[string]*model.Campaign
	losses    map[string][]model.FactionLosses
}

func newMockCampaignRepo() *mockCampaignRepo {
	return &mockCampaignRepo{
		campaigns: make(map[string]*model.Campaign),
		losses:    make(map[string][]model.FactionLosses),
	}
}

func (m *mockCampaignRepo) Create(_ context.Context, name, creatorID, scenario string, seed int64) (*model.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := &model.Campaign{
		ID:        fmt.Sprintf("campaign-%d", len(m.campaigns)+1),
		Name:      name,
		CreatorID: creatorID,
		Scenario:  scenario,
		Status:    "active",
		Turn:      1,
		Seed:      seed,
		CreatedAt: time.Now(),
	}
	m.campaigns[c.ID] = c
	return c, nil
}

func (m *mockCampaignRepo) FindByID(_ context.Context, id string) (*model.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *mockCampaignRepo) ListActive(_ context.Context) ([]model.Campaign, error) {
	return m.listByStatus("active"), nil
}

func (m *mockCampaignRepo) ListFinished(_ context.Context) ([]model.Campaign, error) {
	return m.listByStatus("finished"), nil
}

func (m *mockCampaignRepo) listByStatus(status string) []model.Campaign {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Campaign
	for _, c := range m.campaigns {
		if c.Status == status {
			out = append(out, *c)
		}
	}
	return out
}

func (m *mockCampaignRepo) UpdateTurn(_ context.Context, id string, turn int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok || c.Status != "active" {
		return fmt.Errorf("campaign %s not active", id)
	}
	c.Turn = turn
	return nil
}

func (m *mockCampaignRepo) Finish(_ context.Context, id string, result *model.CampaignResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok || c.Status != "active" {
		return fmt.Errorf("campaign %s not active", id)
	}
	now := time.Now()
	c.Status = "finished"
	c.Winner = result.Winner
	c.Reason = result.Reason
	c.Turn = result.Turn
	c.FinishedAt = &now
	for faction, lost := range result.Casualties {
		m.losses[id] = append(m.losses[id], model.FactionLosses{
			CampaignID: id,
			Faction:    faction,
			Casualties: lost,
			Fielded:    result.Fielded[faction],
		})
	}
	return nil
}

func (m *mockCampaignRepo) Losses(_ context.Context, id string) ([]model.FactionLosses, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.losses[id], nil
}

type mockStateCache struct {
	mu        sync.Mutex
	snapshots map[string][]byte
	events    map[string][][]byte
}

func newMockStateCache() *mockStateCache {
	return &mockStateCache{
		snapshots: make(map[string][]byte),
		events:    make(map[string][][]byte),
	}
}

func (m *mockStateCache) SetSnapshot(_ context.Context, id string, snapshot []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[id] = snapshot
	return nil
}

func (m *mockStateCache) GetSnapshot(_ context.Context, id string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshots[id], nil
}

func (m *mockStateCache) DeleteSnapshot(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, id)
	delete(m.events, id)
	return nil
}

func (m *mockStateCache) AppendEvents(_ context.Context, id string, events [][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[id] = append(m.events[id], events...)
	return nil
}

func (m *mockStateCache) RecentEvents(_ context.Context, id string, limit int) ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.events[id]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

// recordingBroadcaster captures broadcast events for assertions.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []broadcastEvent
}

type broadcastEvent struct {
	CampaignID string
	Type       string
	Data       any
}

func (b *recordingBroadcaster) BroadcastCampaignEvent(campaignID, eventType string, data any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, broadcastEvent{CampaignID: campaignID, Type: eventType, Data: data})
}

func (b *recordingBroadcaster) typesSeen() map[string]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string]int)
	for _, e := range b.events {
		out[e.Type]++
	}
	return out
}
