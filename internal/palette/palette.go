// 包 palette：管理处 → 省 → 项目 → 颜色 的嵌套配色表，用于省界底色与标记颜色
package palette

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gatemap/data"

	"gopkg.in/yaml.v3"
)

// DefaultColor：无匹配时的中性灰
const DefaultColor = "#cccccc"

type Project struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

type Province struct {
	Name     string    `json:"name" yaml:"name"`
	Projects []Project `json:"projects" yaml:"projects"`
}

type Office struct {
	Name      string     `json:"name" yaml:"name"`
	Provinces []Province `json:"provinces" yaml:"provinces"`
}

// Table：配色表；顺序即文件顺序，查找时首个匹配生效
type Table struct {
	Offices []Office `json:"offices" yaml:"offices"`
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// normalizeColor：统一为小写，非法值置空
func normalizeColor(c string) string {
	c = strings.TrimSpace(c)
	if !hexColor.MatchString(c) {
		return ""
	}
	return strings.ToLower(c)
}

// ColorForProvince：省名 → 首个匹配省份的首个项目的颜色
// 约束：无匹配、省份无项目或首个项目颜色非法时返回 DefaultColor，不向后续项目查找
func (t *Table) ColorForProvince(name string) string {
	if t == nil {
		return DefaultColor
	}
	for _, o := range t.Offices {
		for _, p := range o.Provinces {
			if p.Name != name {
				continue
			}
			if len(p.Projects) == 0 || p.Projects[0].Color == "" {
				return DefaultColor
			}
			return p.Projects[0].Color
		}
	}
	return DefaultColor
}

// ColorForProject：项目名 → 首个同名项目的颜色；颜色非法时同样回退 DefaultColor
func (t *Table) ColorForProject(name string) string {
	if t == nil {
		return DefaultColor
	}
	for _, o := range t.Offices {
		for _, p := range o.Provinces {
			for _, pj := range p.Projects {
				if pj.Name != name {
					continue
				}
				if pj.Color == "" {
					return DefaultColor
				}
				return pj.Color
			}
		}
	}
	return DefaultColor
}

// OfficeForProvince：省名 → 所属管理处；未找到返回空串
func (t *Table) OfficeForProvince(name string) (string, bool) {
	if t == nil {
		return "", false
	}
	for _, o := range t.Offices {
		for _, p := range o.Provinces {
			if p.Name == name {
				return o.Name, true
			}
		}
	}
	return "", false
}

// Entry：配色表的扁平行，用于入库与展示
type Entry struct {
	Office   string
	Province string
	Project  string
	Color    string
}

// Entries：按表顺序展开
// 约束：无项目的省份输出一行空项目，重建后省份顺序与首个匹配结果不变
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	var out []Entry
	for _, o := range t.Offices {
		for _, p := range o.Provinces {
			if len(p.Projects) == 0 {
				out = append(out, Entry{Office: o.Name, Province: p.Name})
				continue
			}
			for _, pj := range p.Projects {
				out = append(out, Entry{Office: o.Name, Province: p.Name, Project: pj.Name, Color: pj.Color})
			}
		}
	}
	return out
}

// FromEntries：由扁平行重建嵌套表，保持首次出现顺序
func FromEntries(es []Entry) *Table {
	t := &Table{}
	oi := map[string]int{}
	pi := map[string]int{}
	for _, e := range es {
		i, ok := oi[e.Office]
		if !ok {
			t.Offices = append(t.Offices, Office{Name: e.Office})
			i = len(t.Offices) - 1
			oi[e.Office] = i
		}
		o := &t.Offices[i]
		key := e.Office + "\x00" + e.Province
		j, ok := pi[key]
		if !ok {
			o.Provinces = append(o.Provinces, Province{Name: e.Province})
			j = len(o.Provinces) - 1
			pi[key] = j
		}
		if e.Project != "" {
			o.Provinces[j].Projects = append(o.Provinces[j].Projects, Project{Name: e.Project, Color: normalizeColor(e.Color)})
		}
	}
	return t
}

func (t *Table) normalize() {
	for i := range t.Offices {
		o := &t.Offices[i]
		o.Name = strings.TrimSpace(o.Name)
		for j := range o.Provinces {
			p := &o.Provinces[j]
			p.Name = strings.TrimSpace(p.Name)
			for k := range p.Projects {
				p.Projects[k].Name = strings.TrimSpace(p.Projects[k].Name)
				p.Projects[k].Color = normalizeColor(p.Projects[k].Color)
			}
		}
	}
}

// Decode：解码 yaml 或 json 配色表
func Decode(r io.Reader, format string) (*Table, error) {
	t := &Table{}
	switch strings.ToLower(format) {
	case "yaml", "yml", "":
		if err := yaml.NewDecoder(r).Decode(t); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode palette yaml: %w", err)
		}
	case "json":
		if err := json.NewDecoder(r).Decode(t); err != nil {
			return nil, fmt.Errorf("decode palette json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported palette format %q", format)
	}
	t.normalize()
	return t, nil
}

func LoadFile(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette: %w", err)
	}
	return Decode(bytes.NewReader(b), strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// Bundled：构建时打包的配色表
func Bundled() (*Table, error) {
	return Decode(bytes.NewReader(data.Offices), "yaml")
}
