package boundary

import "sync/atomic"

// Holder：图层原子持有者
// 背景：省界异步加载，与水闸加载相互独立；读路径无锁，加载完成后一次性发布
type Holder struct{ v atomic.Pointer[Layer] }

// Load：当前图层；未发布时返回空图层
func (h *Holder) Load() *Layer {
	if l := h.v.Load(); l != nil {
		return l
	}
	return Empty()
}

func (h *Holder) Ready() bool { return h.v.Load() != nil }

func (h *Holder) Set(l *Layer) { h.v.Store(l) }
