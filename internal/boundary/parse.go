package boundary

import (
	"fmt"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Parse：解析 GeoJSON FeatureCollection 并归一省名属性
// 约束：仅 Polygon/MultiPolygon 参与点查询；其它几何保留在集合中但不可定位
func Parse(b []byte) (*Layer, error) {
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return nil, fmt.Errorf("parse boundary geojson: %w", err)
	}
	l := &Layer{Collection: fc, BuiltAt: time.Now()}
	for _, f := range fc.Features {
		if f.Properties == nil {
			f.Properties = geojson.Properties{}
		}
		name := ProvinceName(f.Properties)
		f.Properties[ProvinceKey] = name
		if f.Geometry == nil {
			continue
		}
		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
			l.Provinces = append(l.Provinces, Province{Name: name, Geom: f.Geometry, Bound: f.Geometry.Bound()})
		}
	}
	return l, nil
}

// ProvinceName：按 NameKeys 顺序读取省名
func ProvinceName(p geojson.Properties) string {
	for _, k := range NameKeys {
		if s, ok := p[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}
