// 包 data：构建时打包的静态数据（水闸列表、管理处配色表、省界样例）
package data

import _ "embed"

//go:embed gates.json
var Gates []byte

//go:embed offices.yaml
var Offices []byte

//go:embed geojson/provinces.geojson
var Provinces []byte
