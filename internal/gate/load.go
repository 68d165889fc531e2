package gate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gatemap/data"
	"gatemap/internal/logger"

	"gopkg.in/yaml.v3"
)

// rawGate：外部输入结构，容纳历次数据版本的字段名
type rawGate struct {
	Name      string `json:"name" yaml:"name"`
	Office    string `json:"office" yaml:"office"`
	Project   string `json:"project" yaml:"project"`
	Province  string `json:"province" yaml:"province"`
	River     string `json:"river" yaml:"river"`
	Lat       any    `json:"lat" yaml:"lat"`
	Lon       any    `json:"lon" yaml:"lon"`
	Latitude  any    `json:"latitude" yaml:"latitude"`
	Longitude any    `json:"longitude" yaml:"longitude"`
}

// normalize：归一为规范结构；project 优先于 province
func (r rawGate) normalize() Gate {
	g := Gate{
		Name:    strings.TrimSpace(r.Name),
		Office:  strings.TrimSpace(r.Office),
		Project: strings.TrimSpace(r.Project),
		River:   strings.TrimSpace(r.River),
	}
	if g.Project == "" {
		g.Project = strings.TrimSpace(r.Province)
	}
	lat, lon := r.Lat, r.Lon
	if lat == nil {
		lat = r.Latitude
	}
	if lon == nil {
		lon = r.Longitude
	}
	g.Lat = toCoord(lat)
	g.Lon = toCoord(lon)
	return g
}

// toCoord：数字、数字字符串或空值；其余视为无坐标
func toCoord(v any) *float64 {
	switch x := v.(type) {
	case float64:
		return &x
	case float32:
		f := float64(x)
		return &f
	case int:
		f := float64(x)
		return &f
	case int64:
		f := float64(x)
		return &f
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return &f
		}
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return &f
		}
	}
	return nil
}

// Decode：按格式解码水闸列表（json 或 yaml）
// 约束：缺少名称的记录跳过并记录告警，不视为错误
func Decode(r io.Reader, format string) ([]Gate, error) {
	var raws []rawGate
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&raws); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode gates yaml: %w", err)
		}
	case "json", "":
		if err := json.NewDecoder(r).Decode(&raws); err != nil {
			return nil, fmt.Errorf("decode gates json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported gates format %q", format)
	}
	out := make([]Gate, 0, len(raws))
	for i, rg := range raws {
		g := rg.normalize()
		if g.Name == "" {
			logger.L().Warn("gate_skip_unnamed", "index", i)
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

// LoadFile：按扩展名选择格式读取文件
func LoadFile(path string) ([]Gate, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gates: %w", err)
	}
	return Decode(bytes.NewReader(b), formatOf(path))
}

// Bundled：构建时打包的水闸列表
func Bundled() ([]Gate, error) {
	return Decode(bytes.NewReader(data.Gates), "json")
}

func formatOf(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}
