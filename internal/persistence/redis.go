package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/salonhq/scheduler-api/internal/model"
	"github.com/salonhq/scheduler-api/pkg/circuitbreaker"
)

const snapshotKey = "scheduler:appointments:snapshot"

// RedisSnapshotter persists the appointment collection as a single
// last-write-wins JSON document. The scheduling core treats it as
// synchronous-enough local storage.
type RedisSnapshotter struct {
	client *redis.Client
	cb     *circuitbreaker.CircuitBreaker
}

type Config struct {
	URL          string
	PoolSize     int
	MinIdleConns int
}

func NewRedisSnapshotter(cfg Config) (*RedisSnapshotter, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSnapshotter{
		client: client,
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "appointment-snapshot",
			MaxFailures: 5,
			Timeout:     5 * time.Second,
		}),
	}, nil
}

func (s *RedisSnapshotter) Save(ctx context.Context, appointments []*model.Appointment) error {
	payload, err := json.Marshal(appointments)
	if err != nil {
		return fmt.Errorf("failed to marshal appointments: %w", err)
	}
	return s.cb.Execute(func() error {
		return s.client.Set(ctx, snapshotKey, payload, 0).Err()
	})
}

func (s *RedisSnapshotter) Load(ctx context.Context) ([]*model.Appointment, error) {
	payload, err := s.client.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("no appointment snapshot present")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment snapshot: %w", err)
	}

	var appointments []*model.Appointment
	if err := json.Unmarshal(payload, &appointments); err != nil {
		return nil, fmt.Errorf("failed to decode appointment snapshot: %w", err)
	}
	return appointments, nil
}

func (s *RedisSnapshotter) Close() error {
	return s.client.Close()
}
