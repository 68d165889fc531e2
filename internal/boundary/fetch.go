package boundary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gatemap/internal/logger"
	"gatemap/internal/metrics"
)

// maxBody：省界文件上限，防止异常源耗尽内存
const maxBody = 64 << 20

// Fetch：获取省界原始字节
// 参数：src 为 http(s) 地址、file:// 地址或本地路径；client 为空时使用默认客户端；timeout 作用于整个请求
// 约束：非 2xx 视为失败；失败只返回错误，由调用方决定降级
func Fetch(ctx context.Context, client *http.Client, src string, timeout time.Duration) ([]byte, error) {
	t0 := time.Now()
	b, err := fetch(ctx, client, src, timeout)
	metrics.BoundaryFetchDurationMs.Observe(float64(time.Since(t0).Milliseconds()))
	if err != nil {
		metrics.BoundaryFetchTotal.WithLabelValues("fail").Inc()
		return nil, err
	}
	metrics.BoundaryFetchTotal.WithLabelValues("ok").Inc()
	logger.L().Debug("boundary_fetch_ok", "src", src, "bytes", len(b), "duration_ms", time.Since(t0).Milliseconds())
	return b, nil
}

func fetch(ctx context.Context, client *http.Client, src string, timeout time.Duration) ([]byte, error) {
	if !remote(src) {
		b, err := os.ReadFile(strings.TrimPrefix(src, "file://"))
		if err != nil {
			return nil, fmt.Errorf("read boundary file: %w", err)
		}
		return b, nil
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("accept", "application/geo+json, application/json")
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch boundary: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch boundary: status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read boundary body: %w", err)
	}
	return b, nil
}
