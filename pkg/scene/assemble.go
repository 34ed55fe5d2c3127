package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	geojson "github.com/paulmach/go.geojson"

	"github.com/ChicagoDave/towngen/pkg/geo"
	"github.com/ChicagoDave/towngen/pkg/town"
)

// Assemble converts a town snapshot into a GeoJSON feature collection. Every
// feature carries a "kind" property.
func Assemble(g *town.Geometry) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, b := range g.Buildings {
		f := geojson.NewPolygonFeature(rings(b.Shape))
		f.ID = b.ID
		f.SetProperty(kindProperty, KindBuilding)
		f.SetProperty("district", string(b.District))
		f.SetProperty("description", b.Description)
		f.SetProperty("patch", b.PatchID)
		fc.AddFeature(f)
	}
	for _, w := range g.Walls {
		addLine(fc, KindWall, []geo.Point2D{w.A, w.B})
	}
	for _, p := range g.Towers {
		addPoint(fc, KindTower, p)
	}
	for _, p := range g.Gates {
		addPoint(fc, KindGate, p)
	}
	for _, r := range g.Roads {
		addLine(fc, KindRoad, r)
	}
	for _, s := range g.Streets {
		addLine(fc, KindStreet, s)
	}
	for _, w := range g.Water {
		f := geojson.NewPolygonFeature(rings(w))
		f.SetProperty(kindProperty, KindWater)
		fc.AddFeature(f)
	}
	if g.WaterBorder.Len() > 1 {
		addLine(fc, KindWaterBorder, append(g.WaterBorder.Clone().Vertices, g.WaterBorder.Vertices[0]))
	}
	for _, p := range g.Overlay {
		f := geojson.NewPolygonFeature(rings(p.Shape))
		f.ID = p.ID
		f.SetProperty(kindProperty, KindPatch)
		f.SetProperty("district", string(p.District))
		f.SetProperty("within_city", p.WithinCity)
		f.SetProperty("water", p.Water)
		f.SetProperty("castle", p.HasCastle)
		fc.AddFeature(f)
	}

	return fc
}

// Encode writes the snapshot as GeoJSON.
func Encode(w io.Writer, g *town.Geometry, indent bool) error {
	data, err := Assemble(g).MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding geojson: %w", err)
	}
	if indent {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return fmt.Errorf("indenting geojson: %w", err)
		}
		data = buf.Bytes()
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing geojson: %w", err)
	}
	return nil
}

// KindOf returns the kind property of f.
func KindOf(f *geojson.Feature) Kind {
	switch k := f.Properties[kindProperty].(type) {
	case Kind:
		return k
	case string:
		return Kind(k)
	}
	return ""
}

// Count tallies the features of a collection by kind.
func Count(fc *geojson.FeatureCollection) map[Kind]int {
	counts := make(map[Kind]int)
	for _, f := range fc.Features {
		counts[KindOf(f)]++
	}
	return counts
}

func addPoint(fc *geojson.FeatureCollection, kind Kind, p geo.Point2D) {
	f := geojson.NewPointFeature([]float64{p.X, p.Y})
	f.SetProperty(kindProperty, kind)
	fc.AddFeature(f)
}

func addLine(fc *geojson.FeatureCollection, kind Kind, pts []geo.Point2D) {
	f := geojson.NewLineStringFeature(coords(pts))
	f.SetProperty(kindProperty, kind)
	fc.AddFeature(f)
}

// rings returns the closed outer ring of p, counter-clockwise as GeoJSON
// expects of an exterior ring.
func rings(p geo.Polygon) [][][]float64 {
	if p.Len() == 0 {
		return [][][]float64{{}}
	}
	if p.SignedArea() < 0 {
		p = p.Reverse()
	}
	ring := coords(p.Vertices)
	ring = append(ring, ring[0])
	return [][][]float64{ring}
}

func coords(pts []geo.Point2D) [][]float64 {
	out := make([][]float64, len(pts))
	for i, p := range pts {
		out[i] = []float64{p.X, p.Y}
	}
	return out
}
