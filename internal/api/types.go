package api

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"gatemap/internal/filter"
	"gatemap/internal/gate"
	"gatemap/internal/palette"
	"gatemap/internal/render"
)

// Dataset：启动时加载的只读数据，请求间共享
// Version 为内容指纹，作为共享缓存键的命名空间；为空时由 BuildRoutes 计算
type Dataset struct {
	Gates   []gate.Gate
	Palette *palette.Table
	Version string
}

// Fingerprint：水闸列表与配色表内容的 sha256 前 16 位十六进制
func (d Dataset) Fingerprint() string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	_ = enc.Encode(d.Gates)
	_ = enc.Encode(d.Palette.Entries())
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// 对外返回结构：字段稳定，新增字段需评估前端依赖
type gatesResult struct {
	State   filter.State    `json:"state"`
	Count   int             `json:"count"`
	Markers []render.Marker `json:"markers"`
}

type viewResult struct {
	State    filter.State    `json:"state"`
	Offices  []string        `json:"offices"`
	Projects []string        `json:"projects"`
	Count    int             `json:"count"`
	Markers  []render.Marker `json:"markers"`
}

type colorResult struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Color string `json:"color"`
}

type locateResult struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Found    bool    `json:"found"`
	Province string  `json:"province"`
	Office   string  `json:"office"`
	Color    string  `json:"color"`
}

type healthResult struct {
	Gates         int  `json:"gates"`
	Positioned    int  `json:"positioned"`
	Unpositioned  int  `json:"unpositioned"`
	BoundaryReady bool `json:"boundary_ready"`
}
