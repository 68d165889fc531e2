package filter

import "gatemap/internal/gate"

// State：当前筛选选择；只通过下列转换函数改变
type State struct {
	Office  string `json:"office"`
	Project string `json:"project"`
}

func Initial() State { return State{Office: All, Project: All} }

// SelectOffice：切换管理处，项目选择无条件复位为全部
func (s State) SelectOffice(office string) State {
	if office == "" {
		office = All
	}
	return State{Office: office, Project: All}
}

// SelectProject：切换项目，管理处不变
func (s State) SelectProject(project string) State {
	if project == "" {
		project = All
	}
	return State{Office: s.Office, Project: project}
}

func (s State) Reset() State { return Initial() }

// Normalize：空值视为全部
func (s State) Normalize() State {
	if s.Office == "" {
		s.Office = All
	}
	if s.Project == "" {
		s.Project = All
	}
	return s
}

// Action：界面事件
type Action struct {
	Kind  string // office / project / reset
	Value string
}

const (
	ActOffice  = "office"
	ActProject = "project"
	ActReset   = "reset"
)

// Apply：按事件推进状态；未知事件保持原状态
func (s State) Apply(a Action) State {
	switch a.Kind {
	case ActOffice:
		return s.SelectOffice(a.Value)
	case ActProject:
		return s.SelectProject(a.Value)
	case ActReset:
		return s.Reset()
	}
	return s
}

// View：由状态派生的展示数据
type View struct {
	State    State       `json:"state"`
	Offices  []string    `json:"offices"`
	Projects []string    `json:"projects"`
	Gates    []gate.Gate `json:"-"`
}

// Derive：计算选中水闸与两级选项
func Derive(gates []gate.Gate, s State) View {
	s = s.Normalize()
	return View{
		State:    s,
		Offices:  DistinctOffices(gates),
		Projects: DistinctProvincesForOffice(gates, s.Office),
		Gates:    SelectGates(gates, s.Office, s.Project),
	}
}
