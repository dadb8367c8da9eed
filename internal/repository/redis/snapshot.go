package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key patterns for cached campaign state.
func snapshotKey(campaignID string) string { return "campaign:" + campaignID + ":snapshot" }
func eventsKey(campaignID string) string   { return "campaign:" + campaignID + ":events" }

// eventLogCap bounds the per-campaign event list. Old entries fall off
// the tail; spectators who need full history replay the snapshot.
const eventLogCap = 500

// SetSnapshot stores the serialized engine snapshot for a campaign.
// A zero TTL keeps the snapshot until the campaign is deleted.
func (c *Client) SetSnapshot(ctx context.Context, campaignID string, snapshot []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, snapshotKey(campaignID), snapshot, ttl).Err()
}

// GetSnapshot retrieves the cached snapshot, or nil if none is stored.
func (c *Client) GetSnapshot(ctx context.Context, campaignID string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, snapshotKey(campaignID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return data, nil
}

// DeleteSnapshot removes all cached state for a campaign.
func (c *Client) DeleteSnapshot(ctx context.Context, campaignID string) error {
	return c.rdb.Del(ctx, snapshotKey(campaignID), eventsKey(campaignID)).Err()
}

// AppendEvents pushes serialized engine events onto the campaign's
// event log, trimming the log to its cap.
func (c *Client) AppendEvents(ctx context.Context, campaignID string, events [][]byte) error {
	if len(events) == 0 {
		return nil
	}
	vals := make([]interface{}, len(events))
	for i, e := range events {
		vals[i] = e
	}
	pipe := c.rdb.TxPipeline()
	pipe.RPush(ctx, eventsKey(campaignID), vals...)
	pipe.LTrim(ctx, eventsKey(campaignID), -eventLogCap, -1)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("append events: %w", err)
	}
	return nil
}

// RecentEvents returns up to limit of the newest events, oldest first.
func (c *Client) RecentEvents(ctx context.Context, campaignID string, limit int) ([][]byte, error) {
	if limit <= 0 || limit > eventLogCap {
		limit = eventLogCap
	}
	raw, err := c.rdb.LRange(ctx, eventsKey(campaignID), int64(-limit), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}
	out := make([][]byte, len(raw))
	for i, s := range raw {
		out[i] = []byte(s)
	}
	return out, nil
}
