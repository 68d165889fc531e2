// 包 filter：水闸筛选引擎。输入为只读的水闸切片与两个筛选值，输出为新切片，不修改输入
package filter

import (
	"sort"

	"gatemap/internal/gate"
)

// All：通配值，表示不约束
const All = "all"

func matches(want, got string) bool { return want == All || want == got }

// SelectGates：按管理处与项目筛选，并剔除无位置的水闸
// 约束：两个条件为独立等值判断的与；结果保持输入顺序；空结果合法
func SelectGates(gates []gate.Gate, office, project string) []gate.Gate {
	out := make([]gate.Gate, 0, len(gates))
	for _, g := range gates {
		if !matches(office, g.Office) || !matches(project, g.Project) {
			continue
		}
		if !g.HasPosition() {
			continue
		}
		out = append(out, g)
	}
	return out
}

// DistinctOffices：去重并升序的管理处列表
func DistinctOffices(gates []gate.Gate) []string {
	return distinct(gates, func(g gate.Gate) (string, bool) { return g.Office, true })
}

// DistinctProvincesForOffice：指定管理处（或全部）下去重升序的项目列表
func DistinctProvincesForOffice(gates []gate.Gate, office string) []string {
	return distinct(gates, func(g gate.Gate) (string, bool) { return g.Project, matches(office, g.Office) })
}

func distinct(gates []gate.Gate, key func(gate.Gate) (string, bool)) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, g := range gates {
		k, ok := key(g)
		if !ok || k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
