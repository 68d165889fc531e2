// 程序入口：仅负责读取配置、初始化依赖并启动服务；API 注册在 internal/api 以便扩展
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"gatemap/internal/api"
	"gatemap/internal/boundary"
	"gatemap/internal/config"
	"gatemap/internal/dataset"
	"gatemap/internal/logger"
	"gatemap/internal/metrics"
	"gatemap/internal/middleware"
	"gatemap/internal/migrate"
	"gatemap/internal/store"
	"gatemap/internal/utils"
	"gatemap/internal/version"

	"github.com/redis/go-redis/v9"
)

func main() {
	config.LoadEnvFiles()
	// 日志初始化
	l := logger.Setup()
	l.Debug("log_init_ok")
	cfg := config.FromEnv()
	l.Debug("config_api_base", "base", cfg.APIBase)
	l.Debug("config_ui_dir", "dir", cfg.UIDir)

	ctx := context.Background()

	var st *store.Store
	if cfg.PGEnabled {
		db, err := utils.OpenPostgresFromEnv()
		if err != nil {
			l.Error("db_open_error", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		l.Info("db_open_ok")
		if err := db.Ping(); err != nil {
			l.Error("db_ping_error", "err", err)
		} else {
			l.Info("db_ping_ok")
		}
		if err := migrate.EnsureSchema(db); err != nil {
			l.Error("schema_error", "err", err)
			os.Exit(1)
		}
		st = store.AttachDB(db)
	} else {
		l.Info("db_disabled")
	}

	var rc *redis.Client
	if cfg.RedisEnabled {
		rc = utils.OpenRedisFromEnv()
		if err := rc.Ping(ctx).Err(); err != nil {
			l.Error("redis_ping_error", "err", err)
		} else {
			l.Info("redis_ping_ok")
		}
	} else {
		l.Info("redis_disabled")
	}

	var reader dataset.Reader
	if st != nil {
		reader = st
	}
	data, err := dataset.Load(ctx, cfg, reader)
	if err != nil {
		l.Error("dataset_error", "err", err)
		os.Exit(1)
	}

	// 背景：省界与水闸数据并行就绪；省界失败仅影响叠加层
	holder := &boundary.Holder{}
	src := boundary.Source{
		URL:      cfg.BoundaryURL,
		Client:   &http.Client{},
		Timeout:  cfg.BoundaryTimeout,
		Redis:    rc,
		CacheTTL: cfg.BoundaryCacheTTL,
	}
	go src.LoadInto(ctx, holder, data.Palette)

	apiMux := api.BuildRoutes(api.Deps{
		Data:      data,
		Boundary:  holder,
		Locator:   boundary.NewLocator(holder, 10000, time.Hour),
		Redis:     rc,
		FilterTTL: cfg.FilterTTL,
	})
	mux := http.NewServeMux()
	mux.Handle(cfg.APIBase+"/", http.StripPrefix(cfg.APIBase, apiMux))
	mux.Handle(cfg.APIBase+"/metrics", metrics.Handler())

	fs := http.FileServer(http.Dir(cfg.UIDir))
	mux.Handle("/", fs)

	// NOTE: 向前端暴露 API 基础路径，避免硬编码；生产环境由后端统一提供
	mux.HandleFunc("/config.js", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/javascript; charset=utf-8")
		w.Header().Set("cache-control", "no-store")
		_, _ = w.Write([]byte("window.__API_BASE__='" + cfg.APIBase + "'\n"))
		_, _ = w.Write([]byte("window.__DEFAULT_COLOR__='#cccccc'\n"))
		_, _ = w.Write([]byte("window.__COMMIT_SHA__='" + version.Commit + "'"))
	})

	handler := logger.AccessMiddleware(l)(mux)
	handler = middleware.Wrap(handler, cfg.RateLimitEnabled, cfg.RateLimitQPS)
	s := &http.Server{Addr: cfg.Addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	if cfg.TLSEnabled {
		if err := utils.EnsureSelfSignedCert(cfg.TLSCertPath, cfg.TLSKeyPath, "gatemap.local"); err != nil {
			l.Error("tls_cert_error", "err", err)
			os.Exit(1)
		}
		l.Info("listening_tls", "addr", cfg.Addr, "cert", cfg.TLSCertPath)
		if err := s.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("server_error", "err", err)
		}
		return
	}
	l.Info("listening", "addr", cfg.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Error("server_error", "err", err)
	}
}
