// 包 gate：水闸数据的规范结构与加载边界；外部字段名差异在此统一，过滤层只见到规范字段
package gate

import (
	"math"
)

// Gate：水闸记录（只读，启动时加载一次）
// 约束：Project 为规范字段，旧数据中的 province 在加载时归一到 Project；Lat/Lon 为空表示无已知位置
type Gate struct {
	Name    string   `json:"name" yaml:"name"`
	Office  string   `json:"office" yaml:"office"`
	Project string   `json:"project" yaml:"project"`
	River   string   `json:"river" yaml:"river"`
	Lat     *float64 `json:"lat" yaml:"lat"`
	Lon     *float64 `json:"lon" yaml:"lon"`
}

// Position：返回坐标与是否可渲染
// 约束：任一分量为空、为 0 或非有限数均视为无位置，与原前端的真值判断保持一致
func (g Gate) Position() (lat, lon float64, ok bool) {
	if g.Lat == nil || g.Lon == nil {
		return 0, 0, false
	}
	lat, lon = *g.Lat, *g.Lon
	if lat == 0 || lon == 0 || !finite(lat) || !finite(lon) {
		return 0, 0, false
	}
	return lat, lon, true
}

// HasPosition：Position 的布尔简写
func (g Gate) HasPosition() bool {
	_, _, ok := g.Position()
	return ok
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Coord：构造坐标指针，便于测试与导入
func Coord(v float64) *float64 { return &v }

// Summary：加载结果统计
type Summary struct {
	Total        int
	Positioned   int
	Unpositioned int
}

func Summarize(gs []Gate) Summary {
	s := Summary{Total: len(gs)}
	for _, g := range gs {
		if g.HasPosition() {
			s.Positioned++
		} else {
			s.Unpositioned++
		}
	}
	return s
}
