package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/strait-command/api/internal/model"
	"github.com/strait-command/api/internal/repository"
	"github.com/strait-command/api/pkg/strait"
)

var (
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrCampaignFinished = errors.New("campaign is finished")
	ErrUnknownScenario  = errors.New("unknown scenario")
)

// ScenarioDefault is the built-in cross-strait invasion scenario.
const ScenarioDefault = "default"

// snapshotTTL of zero keeps snapshots cached until explicitly deleted.
// Finished campaigns keep their final snapshot for post-game review.
const snapshotTTL = 0

// CampaignService owns the live simulation sessions. Each active
// campaign holds an in-memory engine instance; every mutation is
// snapshotted to the cache so a restarted server can resume, and
// finished campaigns are archived to Postgres.
type CampaignService struct {
	repo  repository.CampaignRepository
	cache repository.StateCache
	bc    Broadcaster

	defaults strait.GameConfig

	mu   sync.Mutex
	live map[string]*session
}

// session serializes access to one engine instance. The engine itself
// is not goroutine-safe.
type session struct {
	mu   sync.Mutex
	game *strait.Game
}

// NewCampaignService creates a CampaignService.
func NewCampaignService(repo repository.CampaignRepository, cache repository.StateCache, bc Broadcaster, defaults strait.GameConfig) *CampaignService {
	if bc == nil {
		bc = NoopBroadcaster{}
	}
	return &CampaignService{
		repo:     repo,
		cache:    cache,
		bc:       bc,
		defaults: defaults,
		live:     make(map[string]*session),
	}
}

// CreateCampaign starts a new campaign from a named scenario. A zero
// seed uses the configured default.
func (s *CampaignService) CreateCampaign(ctx context.Context, name, creatorID, scenario string, seed int64) (*model.Campaign, error) {
	if scenario == "" {
		scenario = ScenarioDefault
	}
	if scenario != ScenarioDefault {
		return nil, ErrUnknownScenario
	}

	cfg := s.defaults
	if seed != 0 {
		cfg.Seed = seed
	}

	game, err := strait.NewGame(cfg)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	strait.LoadDefaultScenario(game)

	campaign, err := s.repo.Create(ctx, name, creatorID, scenario, cfg.Seed)
	if err != nil {
		return nil, err
	}

	sess := &session{game: game}
	s.mu.Lock()
	s.live[campaign.ID] = sess
	s.mu.Unlock()

	if err := s.persist(ctx, campaign.ID, game); err != nil {
		log.Warn().Err(err).Str("campaignId", campaign.ID).Msg("Initial snapshot write failed")
	}

	return campaign, nil
}

// GetCampaign returns the campaign record.
func (s *CampaignService) GetCampaign(ctx context.Context, id string) (*model.Campaign, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCampaignNotFound
	}
	return c, nil
}

// ListCampaigns returns campaigns filtered by status.
func (s *CampaignService) ListCampaigns(ctx context.Context, filter string) ([]model.Campaign, error) {
	if filter == "finished" {
		return s.repo.ListFinished(ctx)
	}
	return s.repo.ListActive(ctx)
}

// State returns the serialized engine snapshot for a campaign. Live
// campaigns serve from the in-memory engine; finished ones fall back to
// the cached final snapshot.
func (s *CampaignService) State(ctx context.Context, id string) ([]byte, error) {
	sess, err := s.sessionFor(ctx, id)
	if err == nil {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		return sess.game.Snapshot().Encode()
	}
	if !errors.Is(err, ErrCampaignFinished) {
		return nil, err
	}
	data, cerr := s.cache.GetSnapshot(ctx, id)
	if cerr != nil {
		return nil, cerr
	}
	if data == nil {
		return nil, ErrCampaignNotFound
	}
	return data, nil
}

// Losses returns the archived loss ledger for a campaign.
func (s *CampaignService) Losses(ctx context.Context, id string) ([]model.FactionLosses, error) {
	return s.repo.Losses(ctx, id)
}

// RecentEvents returns the newest cached events for a campaign,
// oldest first, as raw JSON.
func (s *CampaignService) RecentEvents(ctx context.Context, id string, limit int) ([]json.RawMessage, error) {
	raw, err := s.cache.RecentEvents(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, len(raw))
	for i, b := range raw {
		out[i] = json.RawMessage(b)
	}
	return out, nil
}

// Move orders a unit to a new position.
func (s *CampaignService) Move(ctx context.Context, id string, unitID int, x, y float64) error {
	return s.mutate(ctx, id, func(g *strait.Game) error {
		return g.MoveUnit(unitID, x, y)
	})
}

// Attack resolves one attack between two units and returns the
// combat report.
func (s *CampaignService) Attack(ctx context.Context, id string, attackerID, defenderID int) (*strait.CombatResult, error) {
	var result *strait.CombatResult
	err := s.mutate(ctx, id, func(g *strait.Game) error {
		var err error
		result, err = g.AttackUnit(attackerID, defenderID)
		return err
	})
	return result, err
}

// Bombard strikes a city with a unit.
func (s *CampaignService) Bombard(ctx context.Context, id string, unitID, cityID int) error {
	return s.mutate(ctx, id, func(g *strait.Game) error {
		return g.BombardCity(unitID, cityID)
	})
}

// Resupply draws from the nearest connected source onto a unit.
func (s *CampaignService) Resupply(ctx context.Context, id string, unitID int) error {
	return s.mutate(ctx, id, func(g *strait.Game) error {
		return g.ResupplyUnit(unitID)
	})
}

// Repair restores strength to a unit near a friendly facility.
func (s *CampaignService) Repair(ctx context.Context, id string, unitID int) error {
	return s.mutate(ctx, id, func(g *strait.Game) error {
		return g.RepairUnit(unitID)
	})
}

// Entrench digs a land unit in.
func (s *CampaignService) Entrench(ctx context.Context, id string, unitID int) error {
	return s.mutate(ctx, id, func(g *strait.Game) error {
		return g.EntrenchUnit(unitID)
	})
}

// RoadAction applies an interdiction or repair action to a road.
func (s *CampaignService) RoadAction(ctx context.Context, id string, roadID int, action string, damage float64) error {
	return s.mutate(ctx, id, func(g *strait.Game) error {
		switch action {
		case "bomb":
			return g.BombRoad(roadID, damage)
		case "mine":
			return g.MineRoad(roadID)
		case "clear":
			return g.ClearRoad(roadID)
		default:
			return fmt.Errorf("unknown road action %q", action)
		}
	})
}

// AdvancePhase moves the campaign to its next phase.
func (s *CampaignService) AdvancePhase(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(g *strait.Game) error {
		return g.AdvancePhase()
	})
}

// EndTurn runs the campaign forward to the next planning phase.
func (s *CampaignService) EndTurn(ctx context.Context, id string) error {
	return s.mutate(ctx, id, func(g *strait.Game) error {
		return g.EndTurn()
	})
}

// mutate runs fn against the campaign's engine under the session lock,
// then flushes events, persists the snapshot, and archives the outcome
// if the action ended the campaign. Events still flush when fn fails:
// a rejected attack can follow a successful one in the same drain
// window.
func (s *CampaignService) mutate(ctx context.Context, id string, fn func(*strait.Game) error) error {
	sess, err := s.sessionFor(ctx, id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	ferr := fn(sess.game)
	s.flushEvents(ctx, id, sess.game)

	if err := s.persist(ctx, id, sess.game); err != nil {
		log.Warn().Err(err).Str("campaignId", id).Msg("Snapshot write failed")
	}

	if outcome := sess.game.Outcome(); outcome.Over {
		if err := s.finish(ctx, id, sess.game, outcome); err != nil {
			log.Error().Err(err).Str("campaignId", id).Msg("Campaign archive failed")
		}
	} else if ferr == nil {
		if err := s.repo.UpdateTurn(ctx, id, sess.game.Turn()); err != nil {
			log.Warn().Err(err).Str("campaignId", id).Msg("Turn update failed")
		}
	}

	return ferr
}

// sessionFor resolves the live session for a campaign, restoring it
// from the cached snapshot after a server restart.
func (s *CampaignService) sessionFor(ctx context.Context, id string) (*session, error) {
	s.mu.Lock()
	if sess, ok := s.live[id]; ok {
		s.mu.Unlock()
		return sess, nil
	}
	s.mu.Unlock()

	campaign, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	if campaign.Status != "active" {
		return nil, ErrCampaignFinished
	}

	data, err := s.cache.GetSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("campaign %s: %w", id, ErrCampaignNotFound)
	}
	snap, err := strait.DecodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	game, err := strait.RestoreGame(snap)
	if err != nil {
		return nil, fmt.Errorf("restore campaign: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.live[id]; ok {
		// Lost the race; another request restored it first.
		return sess, nil
	}
	sess := &session{game: game}
	s.live[id] = sess
	log.Info().Str("campaignId", id).Int("turn", game.Turn()).Msg("Campaign restored from snapshot")
	return sess, nil
}

// flushEvents drains the engine queue, broadcasts each event, and
// appends the batch to the cached event log.
func (s *CampaignService) flushEvents(ctx context.Context, id string, g *strait.Game) {
	events := g.DrainEvents()
	if len(events) == 0 {
		return
	}

	encoded := make([][]byte, 0, len(events))
	for _, e := range events {
		s.bc.BroadcastCampaignEvent(id, e.Kind.String(), e)
		b, err := json.Marshal(e)
		if err != nil {
			continue
		}
		encoded = append(encoded, b)
	}
	if err := s.cache.AppendEvents(ctx, id, encoded); err != nil {
		log.Warn().Err(err).Str("campaignId", id).Msg("Event log append failed")
	}
}

func (s *CampaignService) persist(ctx context.Context, id string, g *strait.Game) error {
	data, err := g.Snapshot().Encode()
	if err != nil {
		return err
	}
	return s.cache.SetSnapshot(ctx, id, data, snapshotTTL)
}

// finish archives the outcome to Postgres, broadcasts the result, and
// drops the live session. The final snapshot stays cached for review.
func (s *CampaignService) finish(ctx context.Context, id string, g *strait.Game, outcome strait.Outcome) error {
	result := &model.CampaignResult{
		Winner:     outcome.Winner,
		Reason:     outcome.Reason.String(),
		Turn:       g.Turn(),
		Casualties: make(map[string]int),
		Fielded:    make(map[string]int),
	}
	for _, f := range g.Participants() {
		result.Casualties[f] = g.Casualties(f)
		result.Fielded[f] = g.FieldedUnits(f)
	}

	if err := s.repo.Finish(ctx, id, result); err != nil {
		return err
	}

	s.bc.BroadcastCampaignEvent(id, "campaign_over", result)

	s.mu.Lock()
	delete(s.live, id)
	s.mu.Unlock()

	log.Info().
		Str("campaignId", id).
		Str("winner", outcome.Winner).
		Str("reason", outcome.Reason.String()).
		Int("turn", result.Turn).
		Msg("Campaign finished")
	return nil
}
