// Package recents keeps a short per-user list of recent generations so
// the client can restore a previous result without re-running the model.
package recents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// MaxItems is how many recent generations are kept per user. Older
// entries are trimmed on every add.
const MaxItems = 5

// Item is one recent generation. Data carries the full generation
// output; FormValues carries the request fields so the client can
// prefill the form when restoring.
type Item struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Title      string          `json:"title"`
	Timestamp  time.Time       `json:"timestamp"`
	Data       json.RawMessage `json:"data,omitempty"`
	FormValues json.RawMessage `json:"formValues,omitempty"`
}

// Store is a Redis-backed recents list.
type Store struct {
	client *redis.Client
}

// NewStore creates a recents store from an existing Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) key(userID string) string {
	return "recents:" + userID
}

// Add pushes an item to the front of the user's list and trims the
// list to MaxItems.
func (s *Store) Add(ctx context.Context, userID string, item Item) error {
	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now()
	}

	jsonData, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal recent item: %w", err)
	}

	key := s.key(userID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, jsonData)
	pipe.LTrim(ctx, key, 0, MaxItems-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save recent item: %w", err)
	}
	return nil
}

// List returns the user's recent generations, newest first.
func (s *Store) List(ctx context.Context, userID string) ([]Item, error) {
	entries, err := s.client.LRange(ctx, s.key(userID), 0, MaxItems-1).Result()
	if err != nil {
		return nil, fmt.Errorf("list recent items: %w", err)
	}

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		var item Item
		if err := json.Unmarshal([]byte(entry), &item); err != nil {
			// Skip entries written by an incompatible older build.
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Clear removes all recent generations for a user.
func (s *Store) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("clear recent items: %w", err)
	}
	return nil
}
