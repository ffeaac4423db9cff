package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"codequiz-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ResultsStore keeps the payload of each slot as a JSON string.
// Keys: quiz:results:{slot}. A zero ttl keeps payloads until overwritten.
type ResultsStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResultsStore(client *redis.Client, ttl time.Duration) *ResultsStore {
	return &ResultsStore{client: client, ttl: ttl}
}

func (s *ResultsStore) Save(ctx context.Context, slot string, payload domain.ResultsPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := s.client.Set(ctx, s.key(slot), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	return nil
}

func (s *ResultsStore) Load(ctx context.Context, slot string) (domain.ResultsPayload, error) {
	raw, err := s.client.Get(ctx, s.key(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ResultsPayload{}, domain.ErrResultsNotFound
	}
	if err != nil {
		return domain.ResultsPayload{}, fmt.Errorf("load results: %w", err)
	}
	var payload domain.ResultsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.ResultsPayload{}, fmt.Errorf("unmarshal results: %w", err)
	}
	return payload, nil
}

func (s *ResultsStore) key(slot string) string {
	return "quiz:results:" + slot
}
