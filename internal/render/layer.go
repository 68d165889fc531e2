package render

import "sync"

// Handle：显示面返回的标记句柄
type Handle int

// Surface：地图显示面（浏览器地图、终端视图等）
type Surface interface {
	AddMarker(m Marker) Handle
	RemoveMarker(h Handle)
}

// Layer：持有当前已显示的标记集合
// 约束：每次筛选变化整体丢弃并重建，先全部移除旧标记再添加新标记，不做增量修补
type Layer struct {
	mu      sync.Mutex
	surface Surface
	shown   []Handle
}

func NewLayer(s Surface) *Layer { return &Layer{surface: s} }

// Replace：移除全部旧标记后添加新标记，返回新集合数量
func (l *Layer) Replace(ms []Marker) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, h := range l.shown {
		l.surface.RemoveMarker(h)
	}
	l.shown = l.shown[:0]
	for _, m := range ms {
		l.shown = append(l.shown, l.surface.AddMarker(m))
	}
	return len(l.shown)
}

// Clear：移除全部标记
func (l *Layer) Clear() { l.Replace(nil) }

func (l *Layer) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.shown)
}

// MemorySurface：内存显示面，按句柄保存当前标记；终端浏览与测试共用
type MemorySurface struct {
	mu      sync.Mutex
	next    Handle
	markers map[Handle]Marker
	order   []Handle
}

func NewMemorySurface() *MemorySurface {
	return &MemorySurface{markers: make(map[Handle]Marker)}
}

func (s *MemorySurface) AddMarker(m Marker) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.markers[s.next] = m
	s.order = append(s.order, s.next)
	return s.next
}

func (s *MemorySurface) RemoveMarker(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.markers[h]; !ok {
		return
	}
	delete(s.markers, h)
	for i, x := range s.order {
		if x == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Visible：按添加顺序返回当前可见标记
func (s *MemorySurface) Visible() []Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Marker, 0, len(s.order))
	for _, h := range s.order {
		out = append(out, s.markers[h])
	}
	return out
}
