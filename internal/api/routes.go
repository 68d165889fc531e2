// 包 api：集中注册 HTTP API 路由以解耦主入口，便于在 API_BASE 前缀下挂载
package api

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gatemap/internal/boundary"
	"gatemap/internal/filter"
	"gatemap/internal/gate"
	"gatemap/internal/logger"
	"gatemap/internal/metrics"
	"gatemap/internal/render"

	"github.com/redis/go-redis/v9"
)

// Deps：路由依赖；Redis 与 Locator 可为空
type Deps struct {
	Data      Dataset
	Boundary  *boundary.Holder
	Locator   *boundary.Locator
	Redis     *redis.Client
	FilterTTL time.Duration
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.Header().Set("cache-control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError：错误响应携带请求号，便于与访问日志对应
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	rid := logger.RequestID(r.Context())
	logger.L().Warn("api_error", "path", r.URL.Path, "status", status, "msg", msg, "request_id", rid)
	writeJSON(w, status, map[string]string{"error": msg, "request_id": rid})
}

// instrument：按路由记录请求数与耗时
func instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t0 := time.Now()
		metrics.RequestsTotal.WithLabelValues(route).Inc()
		h(w, r)
		metrics.RequestDurationMs.WithLabelValues(route).Observe(float64(time.Since(t0).Milliseconds()))
	}
}

// stateFromQuery：缺省或空值视为 all
func stateFromQuery(r *http.Request) filter.State {
	q := r.URL.Query()
	return filter.State{
		Office:  strings.TrimSpace(q.Get("office")),
		Project: strings.TrimSpace(q.Get("project")),
	}.Normalize()
}

// validCoord：NaN 与越界值均拒绝
func validCoord(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// gatesKey：数据版本 + JSON 编码的筛选状态，避免分隔符冲突与跨数据集命中
func gatesKey(version string, s filter.State) string {
	b, _ := json.Marshal([2]string{s.Office, s.Project})
	return "gates:" + version + ":" + string(b)
}

func observeSelection(n int) {
	metrics.SelectedGates.Observe(float64(n))
	if n == 0 {
		metrics.EmptyResultsTotal.Inc()
	}
}

// BuildRoutes：构建并返回 API 路由
func BuildRoutes(d Deps) *http.ServeMux {
	mux := http.NewServeMux()
	gates := d.Data.Gates
	version := d.Data.Version
	if version == "" {
		version = d.Data.Fingerprint()
	}
	if d.Boundary == nil {
		d.Boundary = &boundary.Holder{}
	}

	mux.HandleFunc("/gates", instrument("gates", func(w http.ResponseWriter, r *http.Request) {
		s := stateFromQuery(r)
		key := gatesKey(version, s)
		var res gatesResult
		if d.cacheGet(r.Context(), key, &res) {
			writeJSON(w, http.StatusOK, res)
			return
		}
		ms := render.Markers(filter.SelectGates(gates, s.Office, s.Project), d.Data.Palette)
		observeSelection(len(ms))
		res = gatesResult{State: s, Count: len(ms), Markers: ms}
		d.cacheSet(r.Context(), key, res)
		writeJSON(w, http.StatusOK, res)
	}))

	mux.HandleFunc("/offices", instrument("offices", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"offices": filter.DistinctOffices(gates)})
	}))

	mux.HandleFunc("/projects", instrument("projects", func(w http.ResponseWriter, r *http.Request) {
		s := stateFromQuery(r)
		writeJSON(w, http.StatusOK, map[string]any{
			"office":   s.Office,
			"projects": filter.DistinctProvincesForOffice(gates, s.Office),
		})
	}))

	// /view：携带当前状态与一个界面事件，返回推进后的状态与全部展示数据
	mux.HandleFunc("/view", instrument("view", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		s := stateFromQuery(r).Apply(filter.Action{Kind: q.Get("action"), Value: strings.TrimSpace(q.Get("value"))})
		v := filter.Derive(gates, s)
		ms := render.Markers(v.Gates, d.Data.Palette)
		observeSelection(len(ms))
		writeJSON(w, http.StatusOK, viewResult{State: v.State, Offices: v.Offices, Projects: v.Projects, Count: len(ms), Markers: ms})
	}))

	mux.HandleFunc("/color", instrument("color", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if p := q.Get("project"); p != "" {
			writeJSON(w, http.StatusOK, colorResult{Name: p, Kind: "project", Color: d.Data.Palette.ColorForProject(p)})
			return
		}
		p := q.Get("province")
		writeJSON(w, http.StatusOK, colorResult{Name: p, Kind: "province", Color: d.Data.Palette.ColorForProvince(p)})
	}))

	mux.HandleFunc("/boundaries", instrument("boundaries", func(w http.ResponseWriter, r *http.Request) {
		b, err := d.Boundary.Load().Collection.MarshalJSON()
		if err != nil {
			logger.L().Error("boundary_encode_error", "err", err)
			writeError(w, r, http.StatusInternalServerError, "encode boundaries")
			return
		}
		w.Header().Set("content-type", "application/geo+json; charset=utf-8")
		w.Header().Set("cache-control", "no-store")
		_, _ = w.Write(b)
	}))

	mux.HandleFunc("/locate", instrument("locate", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		lat, err1 := strconv.ParseFloat(q.Get("lat"), 64)
		lon, err2 := strconv.ParseFloat(q.Get("lon"), 64)
		if err1 != nil || err2 != nil || !validCoord(lat, lon) {
			writeError(w, r, http.StatusBadRequest, "lat and lon must be valid coordinates")
			return
		}
		res := locateResult{Lat: lat, Lon: lon}
		if d.Locator != nil {
			res.Province, res.Found = d.Locator.Locate(lat, lon)
		}
		if res.Found {
			res.Office, _ = d.Data.Palette.OfficeForProvince(res.Province)
		}
		res.Color = d.Data.Palette.ColorForProvince(res.Province)
		writeJSON(w, http.StatusOK, res)
	}))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		s := gate.Summarize(gates)
		writeJSON(w, http.StatusOK, healthResult{
			Gates:         s.Total,
			Positioned:    s.Positioned,
			Unpositioned:  s.Unpositioned,
			BoundaryReady: d.Boundary.Ready(),
		})
	})

	return mux
}

// cacheGet：Redis 命中时解码到 v；Redis 未配置或异常视为未命中
func (d Deps) cacheGet(ctx context.Context, key string, v any) bool {
	if d.Redis == nil {
		return false
	}
	s, err := d.Redis.Get(ctx, key).Result()
	if err != nil || s == "" {
		metrics.RedisMissesTotal.Inc()
		return false
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return false
	}
	metrics.RedisHitsTotal.Inc()
	return true
}

func (d Deps) cacheSet(ctx context.Context, key string, v any) {
	if d.Redis == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	ttl := d.FilterTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if err := d.Redis.Set(ctx, key, b, ttl).Err(); err != nil {
		logger.L().Debug("redis_set_error", "key", key, "err", err)
	}
}
