package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
)

const DefaultDraftTTL = 24 * time.Hour

// PlanDraft is a generated plan waiting to be persisted
type PlanDraft struct {
	ID               string             `json:"id"`
	CreatedAt        time.Time          `json:"created_at"`
	PractitionerID   uuid.UUID          `json:"practitioner_id"`
	PatientID        *uuid.UUID         `json:"patient_id,omitempty"`
	Vegetarian       bool               `json:"vegetarian"`
	HealthConditions []string           `json:"health_conditions,omitempty"`
	Plan             *engine.WeeklyPlan `json:"plan"`
}

// RedisDraftCache stores drafts as JSON under dietplan:draft:<ulid>
type RedisDraftCache struct {
	redis *redis.Client
	ttl   time.Duration

	mu      sync.Mutex
	entropy *rand.Rand
}

// NewRedisDraftCache creates a new RedisDraftCache instance
func NewRedisDraftCache(client *redis.Client, ttl time.Duration) *RedisDraftCache {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &RedisDraftCache{
		redis:   client,
		ttl:     ttl,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func draftKey(id string) string {
	return fmt.Sprintf("dietplan:draft:%s", id)
}

func (c *RedisDraftCache) newID(at time.Time) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(at), c.entropy).String()
}

// Save stores the draft and returns its id
func (c *RedisDraftCache) Save(ctx context.Context, draft *PlanDraft) (string, error) {
	now := time.Now()
	if draft.ID == "" {
		draft.ID = c.newID(now)
	}
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = now
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return "", fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := c.redis.Set(ctx, draftKey(draft.ID), data, c.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to save draft to Redis: %w", err)
	}
	return draft.ID, nil
}

// Get retrieves a draft by id
func (c *RedisDraftCache) Get(ctx context.Context, id string) (*PlanDraft, error) {
	if _, err := ulid.ParseStrict(id); err != nil {
		return nil, ErrDraftNotFound
	}
	data, err := c.redis.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var draft PlanDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

// Delete removes a draft
func (c *RedisDraftCache) Delete(ctx context.Context, id string) error {
	if err := c.redis.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}
	return nil
}
