package boundary

import "gatemap/internal/palette"

// 省界样式常量，与前端原有样式一致
const (
	StrokeColor = "#444444"
	StrokeWidth = 1.5
	FillOpacity = 0.3
)

// Colorer：省名到填充色
type Colorer interface {
	ColorForProvince(name string) string
}

var _ Colorer = (*palette.Table)(nil)

// Style：为每个要素写入填充色与样式属性；就地修改图层
func (l *Layer) Style(c Colorer) *Layer {
	for _, f := range l.Collection.Features {
		name, _ := f.Properties[ProvinceKey].(string)
		f.Properties["fill"] = c.ColorForProvince(name)
		f.Properties["stroke"] = StrokeColor
		f.Properties["weight"] = StrokeWidth
		f.Properties["fillOpacity"] = FillOpacity
		f.Properties["tooltip"] = name
	}
	return l
}
