// 包 config：集中读取 .env 与环境变量，提供带默认值的服务配置
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config：服务与命令行工具共用的配置项
type Config struct {
	APIBase string
	Addr    string
	UIDir   string

	// 数据来源：bundled（内置）、file（GATES_PATH/OFFICES_PATH）、db（Postgres）
	DataSource  string
	GatesPath   string
	OfficesPath string

	// BoundaryURL 为空时使用内置省界
	BoundaryURL      string
	BoundaryTimeout  time.Duration
	BoundaryCacheTTL time.Duration

	PGEnabled    bool
	RedisEnabled bool
	FilterTTL    time.Duration

	RateLimitEnabled bool
	RateLimitQPS     int

	TLSEnabled  bool
	TLSCertPath string
	TLSKeyPath  string
}

// LoadEnvFiles：加载 .env 文件；文件缺失时静默忽略
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join("data", "env", ".env"))
}

// FromEnv：从环境变量构建配置
func FromEnv() Config {
	c := Config{
		APIBase:          str("API_BASE", "/api"),
		Addr:             str("ADDR", ":8080"),
		UIDir:            str("UI_DIST", filepath.Join("ui", "dist")),
		DataSource:       strings.ToLower(str("DATA_SOURCE", "bundled")),
		GatesPath:        os.Getenv("GATES_PATH"),
		OfficesPath:      os.Getenv("OFFICES_PATH"),
		BoundaryURL:      os.Getenv("BOUNDARY_URL"),
		BoundaryTimeout:  seconds("BOUNDARY_TIMEOUT_S", 10),
		BoundaryCacheTTL: seconds("BOUNDARY_CACHE_TTL_S", 86400),
		PGEnabled:        os.Getenv("PG_ENABLE") == "true",
		RedisEnabled:     os.Getenv("REDIS_ENABLE") == "true",
		FilterTTL:        seconds("FILTER_CACHE_TTL_S", 300),
		RateLimitEnabled: os.Getenv("RATE_LIMIT_ENABLED") == "true",
		RateLimitQPS:     num("RATE_LIMIT_QPS", 200),
		TLSEnabled:       os.Getenv("TLS_ENABLE") == "true",
		TLSCertPath:      str("TLS_CERT_PATH", filepath.Join("data", "certs", "server.crt")),
		TLSKeyPath:       str("TLS_KEY_PATH", filepath.Join("data", "certs", "server.key")),
	}
	if c.DataSource == "db" {
		c.PGEnabled = true
	}
	return c
}

func str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// num：解析正整数，失败或非正值回退默认值
func num(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func seconds(key string, def int) time.Duration {
	return time.Duration(num(key, def)) * time.Second
}
