package boundary

import (
	"context"
	"net/http"
	"strings"
	"time"

	"gatemap/data"
	"gatemap/internal/logger"
	"gatemap/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// Source：省界加载参数
type Source struct {
	URL      string
	Client   *http.Client
	Timeout  time.Duration
	Redis    *redis.Client
	CacheTTL time.Duration
}

func cacheKey(src string) string { return "boundary:" + src }

// Load：获取（优先 Redis 缓存）、解析并着色
func (s Source) Load(ctx context.Context, c Colorer) (*Layer, error) {
	raw, err := s.raw(ctx)
	if err != nil {
		return nil, err
	}
	l, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return l.Style(c), nil
}

func remote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// raw：URL 为空时返回内置省界；仅远程来源经过 Redis 缓存，本地文件每次重新读取
func (s Source) raw(ctx context.Context) ([]byte, error) {
	if s.URL == "" {
		logger.L().Debug("boundary_bundled", "bytes", len(data.Provinces))
		return data.Provinces, nil
	}
	if s.Redis == nil || !remote(s.URL) {
		return Fetch(ctx, s.Client, s.URL, s.Timeout)
	}
	key := cacheKey(s.URL)
	if b, err := s.Redis.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		metrics.RedisHitsTotal.Inc()
		logger.L().Debug("boundary_cache_hit", "key", key, "bytes", len(b))
		return b, nil
	}
	metrics.RedisMissesTotal.Inc()
	b, err := Fetch(ctx, s.Client, s.URL, s.Timeout)
	if err != nil {
		return nil, err
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if err := s.Redis.Set(ctx, key, b, ttl).Err(); err != nil {
		logger.L().Warn("boundary_cache_set_error", "err", err)
	}
	return b, nil
}

// LoadInto：后台加载并发布到 Holder
// 约束：失败不致命，仅记录日志；Holder 保持空图层，底图与标记不受影响
func (s Source) LoadInto(ctx context.Context, h *Holder, c Colorer) {
	l, err := s.Load(ctx, c)
	if err != nil {
		logger.L().Error("boundary_fetch_error", "src", s.URL, "err", err)
		return
	}
	h.Set(l)
	logger.L().Info("boundary_ready", "features", len(l.Collection.Features), "provinces", len(l.Provinces))
}
