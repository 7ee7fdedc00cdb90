package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/envcheck/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "envcheck:report:"

// farFuture is the index score of reports that never expire (2100-01-01).
const farFuture = 4102444800

// Store implements ports.ReportStore using Redis.
// Reports are JSON strings; a sorted set indexes workspaces by expiry.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for reports.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(workspace string) string {
	return s.prefix + workspace
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Client returns the underlying client, shared with the Locker.
func (s *Store) Client() *backend.Client {
	return s.client
}

// Save writes the report and refreshes its index entry in one pipeline.
func (s *Store) Save(ctx context.Context, workspace string, report *domain.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = farFuture
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(workspace), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: workspace,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load reads the report for workspace.
func (s *Store) Load(ctx context.Context, workspace string) (*domain.Report, error) {
	val, err := s.client.Get(ctx, s.key(workspace)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var report domain.Report
	if err := json.Unmarshal(val, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}

// Delete removes the report and its index entry.
func (s *Store) Delete(ctx context.Context, workspace string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(workspace))
	pipe.ZRem(ctx, s.indexKey(), workspace)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns workspaces with a live report.
// Expired entries are pruned from the index first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired reports: %w", err)
	}

	workspaces, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return workspaces, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
