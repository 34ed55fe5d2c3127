// Package scene exports a generated town for renderers and checks the
// exported geometry.
package scene

// Kind tags every exported feature.
type Kind string

const (
	KindBuilding    Kind = "building"
	KindWall        Kind = "wall"
	KindTower       Kind = "tower"
	KindGate        Kind = "gate"
	KindRoad        Kind = "road"
	KindStreet      Kind = "street"
	KindWater       Kind = "water"
	KindWaterBorder Kind = "water_border"
	KindPatch       Kind = "patch"
)

// kindProperty is the feature property holding the Kind.
const kindProperty = "kind"
