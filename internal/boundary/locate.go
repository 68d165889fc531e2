package boundary

import (
	"time"

	"gatemap/internal/metrics"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Contains：点是否位于省界内（包围盒预筛后做面内判定）
func (p Province) Contains(pt orb.Point) bool {
	if !p.Bound.Contains(pt) {
		return false
	}
	switch g := p.Geom.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, pt)
	}
	return false
}

// Locate：返回包含该点的第一个省名
func (l *Layer) Locate(lat, lon float64) (string, bool) {
	pt := orb.Point{lon, lat}
	for _, p := range l.Provinces {
		if p.Contains(pt) {
			return p.Name, true
		}
	}
	return "", false
}

// Locator：带缓存的点所在省查询，图层从 Holder 读取
// 约束：缓存按 geohash 单元命中，单元可能跨越省界，命中后须以当前点复核
type Locator struct {
	h     *Holder
	cache *LRU
}

// geohashPrecision：8 位单元约 38m × 19m
const geohashPrecision = 8

func NewLocator(h *Holder, capacity int, ttl time.Duration) *Locator {
	return &Locator{h: h, cache: NewLRU(capacity, ttl)}
}

func (lc *Locator) Locate(lat, lon float64) (string, bool) {
	if !lc.h.Ready() {
		return "", false
	}
	l := lc.h.Load()
	key := encodeGeohash(lat, lon, geohashPrecision)
	if v, ok := lc.cache.Get(key); ok && l.confirms(v, orb.Point{lon, lat}) {
		metrics.LocateCacheHitsTotal.Inc()
		return v, v != ""
	}
	name, ok := l.Locate(lat, lon)
	lc.cache.Set(key, name)
	return name, ok
}

// confirms：缓存值对该点是否仍然成立
// 空名表示“不在任何省内”，只在没有省界包围盒覆盖该点时成立
func (l *Layer) confirms(name string, pt orb.Point) bool {
	for _, p := range l.Provinces {
		if name == "" {
			if p.Bound.Contains(pt) {
				return false
			}
			continue
		}
		if p.Name == name && p.Contains(pt) {
			return true
		}
	}
	return name == ""
}
