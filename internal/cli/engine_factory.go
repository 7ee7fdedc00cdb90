package cli

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/aretw0/envcheck"
	"github.com/aretw0/envcheck/pkg/adapters/memory"
	"github.com/aretw0/envcheck/pkg/adapters/redis"
	"github.com/aretw0/envcheck/pkg/observability"
	"github.com/aretw0/envcheck/pkg/persistence/middleware"
	"github.com/aretw0/envcheck/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// CreateEngine builds an engine with the CLI conventions: the given
// logger, Redis-backed reports and locking when a URL is configured.
// Stored reports always have sensitive values masked, and are sealed
// when a report key is set.
// The returned close function releases the Redis client.
func CreateEngine(opts Options, logger *slog.Logger, metrics *observability.Metrics) (*envcheck.Engine, func() error, error) {
	engineOpts := []envcheck.Option{envcheck.WithLogger(logger)}
	if metrics != nil {
		engineOpts = append(engineOpts, envcheck.WithMetrics(metrics))
	}

	mws := []middleware.Middleware{middleware.NewPIIMiddleware(middleware.DefaultSensitivePatterns)}
	if opts.ReportKey != "" {
		key, err := ParseKey(opts.ReportKey)
		if err != nil {
			return nil, nil, err
		}
		enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			return nil, nil, fmt.Errorf("invalid report key: %w", err)
		}
		mws = append(mws, enc)
	}

	var store ports.ReportStore = memory.NewStore()
	closer := func() error { return nil }
	if opts.RedisURL != "" {
		redisOpts, err := backend.ParseURL(opts.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := backend.NewClient(redisOpts)

		prefix := opts.RedisPrefix
		if prefix == "" {
			prefix = redis.DefaultPrefix
		}
		redisStore := redis.NewFromClient(client, redis.WithPrefix(prefix), redis.WithTTL(opts.ReportTTL))
		store = redisStore
		engineOpts = append(engineOpts, envcheck.WithLocker(redis.NewLocker(client, prefix)))
		closer = redisStore.Close
		logger.Debug("using redis report store", "addr", redisOpts.Addr, "prefix", prefix)
	}
	engineOpts = append(engineOpts, envcheck.WithReportStore(middleware.Chain(store, mws...)))

	engine, err := envcheck.New(opts.Dir, engineOpts...)
	if err != nil {
		_ = closer()
		return nil, nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, closer, nil
}

// ParseKey decodes a report key given as hex or standard base64.
func ParseKey(s string) ([]byte, error) {
	if key, err := hex.DecodeString(s); err == nil && len(key) == middleware.KeySize {
		return key, nil
	}
	if key, err := base64.StdEncoding.DecodeString(s); err == nil && len(key) == middleware.KeySize {
		return key, nil
	}
	return nil, fmt.Errorf("invalid report key: want %d bytes as hex or base64", middleware.KeySize)
}
