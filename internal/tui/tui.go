// 包 tui：终端版水闸浏览器。筛选状态只经 filter.State 的转换函数推进，标记集合经 render.Layer 整体替换
package tui

import (
	"fmt"
	"strings"

	"gatemap/internal/filter"
	"gatemap/internal/gate"
	"gatemap/internal/palette"
	"gatemap/internal/render"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeBrowse mode = iota
	modePickOffice
	modePickProject
)

// showAll：选项列表中的“全部”
const showAll = "แสดงทั้งหมด"

// option：选择器条目
type option struct {
	label string
	value string
}

func (o option) Title() string       { return o.label }
func (o option) Description() string { return "" }
func (o option) FilterValue() string { return o.label }

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4e79a7")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
)

type Model struct {
	gates   []gate.Gate
	pal     *palette.Table
	state   filter.State
	view    filter.View
	surface *render.MemorySurface
	layer   *render.Layer
	picker  list.Model
	mode    mode
	offset  int
	width   int
	height  int
	status  string
}

func New(gs []gate.Gate, pal *palette.Table) Model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	p := list.New(nil, d, 40, 20)
	p.SetShowHelp(false)
	p.SetShowStatusBar(false)
	p.SetFilteringEnabled(true)
	s := render.NewMemorySurface()
	m := Model{
		gates:   gs,
		pal:     pal,
		surface: s,
		layer:   render.NewLayer(s),
		picker:  p,
		width:   100,
		height:  30,
	}
	m.apply(filter.Action{Kind: filter.ActReset})
	return m
}

// apply：推进状态并整体重建标记
func (m *Model) apply(a filter.Action) {
	m.state = m.state.Apply(a)
	m.view = filter.Derive(m.gates, m.state)
	n := m.layer.Replace(render.Markers(m.view.Gates, m.pal))
	m.offset = 0
	m.status = fmt.Sprintf("%d markers", n)
}

func (m *Model) openPicker(md mode) tea.Cmd {
	title := "เลือกสำนักชลประทาน"
	values := m.view.Offices
	if md == modePickProject {
		title = "เลือกโครงการ"
		values = m.view.Projects
	}
	items := make([]list.Item, 0, len(values)+1)
	items = append(items, option{label: showAll, value: filter.All})
	for _, v := range values {
		items = append(items, option{label: v, value: v})
	}
	m.picker.Title = title
	m.picker.ResetFilter()
	cmd := m.picker.SetItems(items)
	m.picker.Select(0)
	m.mode = md
	return cmd
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.picker.SetSize(msg.Width-4, msg.Height-4)
		return m, nil
	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updatePicker(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "o":
			return m, m.openPicker(modePickOffice)
		case "p":
			return m, m.openPicker(modePickProject)
		case "r":
			m.apply(filter.Action{Kind: filter.ActReset})
		case "down", "j":
			if m.offset < m.layer.Len()-1 {
				m.offset++
			}
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		}
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeBrowse
		return m, nil
	case "enter":
		if o, ok := m.picker.SelectedItem().(option); ok {
			kind := filter.ActOffice
			if m.mode == modePickProject {
				kind = filter.ActProject
			}
			m.apply(filter.Action{Kind: kind, Value: o.value})
		}
		m.mode = modeBrowse
		return m, nil
	}
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func display(v string) string {
	if v == filter.All {
		return showAll
	}
	return v
}

func (m Model) View() string {
	if m.mode != modeBrowse {
		return boxStyle.Render(m.picker.View())
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("ระบบแสดงตำแหน่งประตูระบายน้ำในประเทศไทย"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("สำนักชลประทาน: ") + valueStyle.Render(display(m.state.Office)) + "  ")
	b.WriteString(labelStyle.Render("โครงการ: ") + valueStyle.Render(display(m.state.Project)))
	b.WriteString("\n\n")
	rows := m.height - 6
	if rows < 1 {
		rows = 1
	}
	vis := m.surface.Visible()
	if len(vis) == 0 {
		b.WriteString(statusStyle.Render("ไม่มีประตูระบายน้ำในตัวกรองนี้"))
		b.WriteString("\n")
	}
	for i := m.offset; i < len(vis) && i < m.offset+rows; i++ {
		mk := vis[i]
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(mk.Color)).Render("●")
		fmt.Fprintf(&b, "%s %s  %s  %s  (%.4f, %.4f)\n", dot, mk.Label, labelStyle.Render(mk.Project), mk.River, mk.Lat, mk.Lon)
	}
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status + "  ·  o: office  p: project  r: reset  j/k: scroll  q: quit"))
	return b.String()
}

// Run：启动终端浏览器
func Run(gs []gate.Gate, pal *palette.Table) error {
	_, err := tea.NewProgram(New(gs, pal), tea.WithAltScreen()).Run()
	return err
}
