// 包 render：把筛选结果转换为地图标记，并负责显示面上标记集合的整体替换
package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"gatemap/internal/gate"
	"gatemap/internal/palette"
)

// Marker：显示面消费的点标记
type Marker struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Label   string  `json:"label"`
	Project string  `json:"project"`
	River   string  `json:"river"`
	Popup   string  `json:"popup"`
	MapURL  string  `json:"map_url"`
	Color   string  `json:"color,omitempty"`
}

// MapURL：外部地图链接
func MapURL(lat, lon float64) string {
	return "https://www.google.com/maps?q=" + formatCoord(lat) + "," + formatCoord(lon)
}

func formatCoord(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// PopupHTML：弹窗内容（名称、项目、河流、外部地图链接），文本统一转义
func PopupHTML(name, project, river, mapURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b><br>", html.EscapeString(name))
	fmt.Fprintf(&b, "โครงการ: %s<br>", html.EscapeString(project))
	fmt.Fprintf(&b, "แม่น้ำ: %s<br>", html.EscapeString(river))
	fmt.Fprintf(&b, `<a href="%s" target="_blank" rel="noopener">ดูใน Google Maps</a>`, html.EscapeString(mapURL))
	return b.String()
}

// MarkerFor：单个水闸的标记；无位置时返回 false
func MarkerFor(g gate.Gate, t *palette.Table) (Marker, bool) {
	lat, lon, ok := g.Position()
	if !ok {
		return Marker{}, false
	}
	u := MapURL(lat, lon)
	m := Marker{
		Lat:     lat,
		Lon:     lon,
		Label:   g.Name,
		Project: g.Project,
		River:   g.River,
		Popup:   PopupHTML(g.Name, g.Project, g.River, u),
		MapURL:  u,
	}
	if t != nil {
		m.Color = t.ColorForProject(g.Project)
	}
	return m, true
}

// Markers：批量构建，静默跳过无位置的水闸
func Markers(gs []gate.Gate, t *palette.Table) []Marker {
	out := make([]Marker, 0, len(gs))
	for _, g := range gs {
		if m, ok := MarkerFor(g, t); ok {
			out = append(out, m)
		}
	}
	return out
}
