package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/leafcycle/plantcare-backend/internal/logger"
	"github.com/leafcycle/plantcare-backend/internal/types"
)

const templateListKey = "plantcare:templates:list"

// TemplateCache is a read-through cache for the template list. The
// template table is seeded once and essentially immutable, so a short
// TTL plus invalidate-on-write is enough.
type TemplateCache interface {
	Get(ctx context.Context) ([]*types.PlantTemplate, bool)
	Set(ctx context.Context, templates []*types.PlantTemplate)
	Invalidate(ctx context.Context)
	Close() error
}

type templateCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewTemplateCache connects using REDIS_ADDR. A missing address is an
// error; callers treat the cache as optional and run without it.
func NewTemplateCache(log *logger.Logger) (TemplateCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &templateCache{
		log: log.With("service", "RedisTemplateCache"),
		rdb: rdb,
		ttl: 5 * time.Minute,
	}, nil
}

func (tc *templateCache) Get(ctx context.Context) ([]*types.PlantTemplate, bool) {
	raw, err := tc.rdb.Get(ctx, templateListKey).Bytes()
	if err != nil {
		if err != goredis.Nil {
			tc.log.Debug("Template cache read failed", "error", err)
		}
		return nil, false
	}
	var templates []*types.PlantTemplate
	if err := json.Unmarshal(raw, &templates); err != nil {
		tc.log.Warn("Template cache payload corrupt, dropping", "error", err)
		_ = tc.rdb.Del(ctx, templateListKey).Err()
		return nil, false
	}
	return templates, true
}

func (tc *templateCache) Set(ctx context.Context, templates []*types.PlantTemplate) {
	raw, err := json.Marshal(templates)
	if err != nil {
		tc.log.Warn("Template cache marshal failed", "error", err)
		return
	}
	if err := tc.rdb.Set(ctx, templateListKey, raw, tc.ttl).Err(); err != nil {
		tc.log.Debug("Template cache write failed", "error", err)
	}
}

func (tc *templateCache) Invalidate(ctx context.Context) {
	if err := tc.rdb.Del(ctx, templateListKey).Err(); err != nil {
		tc.log.Debug("Template cache invalidate failed", "error", err)
	}
}

func (tc *templateCache) Close() error {
	return tc.rdb.Close()
}
