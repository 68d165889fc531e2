// 包 boundary：省界几何的获取、属性归一、着色与点所在省查询
package boundary

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// NameKeys：省名属性的候选键，按顺序取第一个非空值
// 背景：上游文件在不同版本使用 PROV_NAM_T 或 pro_th 等键名
var NameKeys = []string{"PROV_NAM_T", "pro_th", "PROV_NAMT", "name_th", "name"}

// ProvinceKey：归一后的规范属性键
const ProvinceKey = "province"

// Province：单个省的几何与包围盒
type Province struct {
	Name  string
	Geom  orb.Geometry
	Bound orb.Bound
}

// Layer：只读快照，加载完成后在请求间共享
type Layer struct {
	Collection *geojson.FeatureCollection
	Provinces  []Province
	BuiltAt    time.Time
}

// Empty：未加载或加载失败时对外提供的空图层
func Empty() *Layer {
	return &Layer{Collection: geojson.NewFeatureCollection()}
}
