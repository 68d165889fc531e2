// 包 dataset：按 DATA_SOURCE 选择水闸列表与配色表的来源
package dataset

import (
	"context"
	"fmt"

	"gatemap/internal/api"
	"gatemap/internal/config"
	"gatemap/internal/gate"
	"gatemap/internal/logger"
	"gatemap/internal/palette"
)

// Reader：数据库来源的最小读取接口，由 store.Store 实现
type Reader interface {
	LoadGates(ctx context.Context) ([]gate.Gate, error)
	LoadPalette(ctx context.Context) (*palette.Table, error)
}

// Bundled：构建时内置的数据
// 约束：内置数据解码失败属于构建缺陷，直接返回错误
func Bundled() (api.Dataset, error) {
	gs, err := gate.Bundled()
	if err != nil {
		return api.Dataset{}, fmt.Errorf("bundled gates: %w", err)
	}
	t, err := palette.Bundled()
	if err != nil {
		return api.Dataset{}, fmt.Errorf("bundled palette: %w", err)
	}
	return api.Dataset{Gates: gs, Palette: t}, nil
}

// Load：文档注释：按配置加载数据集
// 背景：file 与 db 来源用于覆盖内置数据；任一部分读取失败时该部分回退内置数据并记录错误
// 约束：db 来源要求 r 非空
func Load(ctx context.Context, c config.Config, r Reader) (api.Dataset, error) {
	d, err := Bundled()
	if err != nil {
		return d, err
	}
	l := logger.L()
	switch c.DataSource {
	case "file":
		if c.GatesPath != "" {
			if gs, err := gate.LoadFile(c.GatesPath); err != nil {
				l.Error("gates_file_error", "path", c.GatesPath, "err", err)
			} else {
				d.Gates = gs
			}
		}
		if c.OfficesPath != "" {
			if t, err := palette.LoadFile(c.OfficesPath); err != nil {
				l.Error("offices_file_error", "path", c.OfficesPath, "err", err)
			} else {
				d.Palette = t
			}
		}
	case "db":
		if r == nil {
			return d, fmt.Errorf("data source db requires a database")
		}
		if gs, err := r.LoadGates(ctx); err != nil {
			l.Error("gates_db_error", "err", err)
		} else if len(gs) > 0 {
			d.Gates = gs
		} else {
			l.Warn("gates_db_empty")
		}
		if t, err := r.LoadPalette(ctx); err != nil {
			l.Error("offices_db_error", "err", err)
		} else if len(t.Offices) > 0 {
			d.Palette = t
		}
	case "bundled", "":
	default:
		l.Warn("data_source_unknown", "source", c.DataSource)
	}
	d.Version = d.Fingerprint()
	s := gate.Summarize(d.Gates)
	l.Info("gates_loaded", "source", c.DataSource, "version", d.Version, "total", s.Total, "positioned", s.Positioned, "unpositioned", s.Unpositioned)
	return d, nil
}
