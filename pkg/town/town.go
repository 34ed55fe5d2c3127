// Package town generates a walled medieval town from a seed.
package town

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/furui/fastnoiselite-go"
	"github.com/quasilyte/gmath"

	"github.com/ChicagoDave/towngen/internal/rnd"
	"github.com/ChicagoDave/towngen/pkg/geo"
	"github.com/ChicagoDave/towngen/pkg/layout"
)

const (
	patchMultiplier = 8
	relaxPasses     = 3
	weldDistance    = 8.0
	waterSmoothing  = 0.2
	spiralNoiseFreq = 0.7
)

// Town is the generated layout. It is read-only once Generate returns.
type Town struct {
	Options     Options
	Center      geo.Point2D
	Patches     []*Patch
	Castle      *Castle
	CityWall    *Wall
	Market      *Patch
	Roads       [][]geo.Point2D
	Streets     [][]geo.Point2D
	Gates       []geo.Point2D
	WaterBorder []geo.Point2D
	Buildings   []layout.Building

	rng    *rand.Rand
	nextID int
}

// Generate builds a town, retrying the whole pipeline until an attempt
// succeeds or opts.MaxAttempts attempts have failed. One random source runs
// across all attempts, so the outcome depends only on the options.
func Generate(opts Options) (*Town, error) {
	opts = opts.withDefaults()
	if err := opts.check(); err != nil {
		return nil, err
	}
	return generate(opts, build)
}

// pipeline is one full generation attempt.
type pipeline func(opts Options, rng *rand.Rand) (*Town, error)

func generate(opts Options, run pipeline) (*Town, error) {
	logger := opts.logger()
	rng := rnd.New(opts.Seed)

	var last error
	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		t, err := guarded(run, opts, rng)
		if err == nil {
			return t, nil
		}
		logger.Printf("town: seed %d attempt %d/%d failed: %v", opts.Seed, attempt, opts.MaxAttempts, err)
		last = err
	}
	return nil, fmt.Errorf("%w after %d attempts: %w", ErrGenerationFailed, opts.MaxAttempts, last)
}

// guarded turns a panic inside run into an attempt error.
func guarded(run pipeline, opts Options, rng *rand.Rand) (t *Town, err error) {
	defer func() {
		if r := recover(); r != nil {
			t, err = nil, fmt.Errorf("%w: %v", errPanicked, r)
		}
	}()
	return run(opts, rng)
}

func build(opts Options, rng *rand.Rand) (*Town, error) {
	t := &Town{
		Options: opts,
		Center:  geo.Pt(rnd.Float(rng, -1.0, 1.0), rnd.Float(rng, -1.0, 1.0)),
		rng:     rng,
	}
	if err := t.buildPatches(); err != nil {
		return nil, fmt.Errorf("building patches: %w", err)
	}
	t.optimizePatches()
	if err := t.buildWalls(); err != nil {
		return nil, fmt.Errorf("building walls: %w", err)
	}
	if err := t.buildRoads(); err != nil {
		return nil, fmt.Errorf("building roads: %w", err)
	}
	t.populate()
	return t, nil
}

func (t *Town) seedPoints() []geo.Point2D {
	noise := fastnoiselite.NewNoise()
	noise.SetNoiseType(fastnoiselite.NoiseTypeValueCubic)
	noise.Seed = t.rng.Int32()
	noise.Frequency = spiralNoiseFreq

	start := t.rng.Float64() * 2 * math.Pi
	points := make([]geo.Point2D, t.Options.Patches*patchMultiplier)
	for i := range points {
		a := start + math.Sqrt(float64(i))*5
		r := 0.0
		if i > 0 {
			r = 10 + float64(i)*(2+spiralJitter(noise, i))
		}
		v := gmath.Vec{X: r}.Rotated(gmath.Rad(a))
		points[i] = t.Center.Add(geo.Pt(v.X, v.Y))
	}
	return points
}

// spiralJitter maps value noise along the spiral to [0, 1).
func spiralJitter(noise *fastnoiselite.FastNoiseLite, i int) float64 {
	v := float64(noise.GetNoise2D(fastnoiselite.FNLfloat(i), 0))
	return math.Max(0, math.Min(0.999, (v+1)/2))
}

func (t *Town) buildPatches() error {
	v, err := geo.BuildVoronoi(t.seedPoints())
	if err != nil {
		return err
	}
	for i := 0; i < relaxPasses; i++ {
		seeds := v.Seeds()
		targets := append(seeds[:3:3], seeds[t.Options.Patches])
		if v, err = v.Relax(targets); err != nil {
			return fmt.Errorf("relaxing: %w", err)
		}
	}
	if v, err = v.Relax(nil); err != nil {
		return fmt.Errorf("relaxing: %w", err)
	}
	v.SortPoints(func(a, b geo.Point2D) bool {
		return a.Distance(t.Center) < b.Distance(t.Center)
	})

	for _, r := range v.Partitioning() {
		t.Patches = append(t.Patches, t.newPatch(r.Polygon()))
	}
	if len(t.Patches) <= t.Options.Patches {
		return fmt.Errorf("%w: %d cells for %d patches", ErrDegenerate, len(t.Patches), t.Options.Patches)
	}

	if t.Options.Water {
		t.floodWater()
	}

	city := t.closestPatches(func(p *Patch) bool { return !p.Water })
	if len(city) < t.Options.Patches {
		return fmt.Errorf("%w: only %d dry patches", ErrDegenerate, len(city))
	}
	for _, p := range city {
		p.WithinCity = true
		p.WithinWalls = true
	}
	castle := city[len(city)-1]
	castle.HasCastle = true
	t.Castle = &Castle{Patch: castle}
	t.Market = city[0]

	circumference := FindCircumference(city)
	if t.Options.Walls && len(circumference) > 0 {
		t.smoothBorder(circumference, math.Min(1, 40/float64(len(circumference))))
	}
	if t.Options.Water {
		border := FindCircumference(t.waterPatches())
		t.smoothBorder(border, waterSmoothing)
		t.WaterBorder = border
	}
	return nil
}

// closestPatches returns up to Options.Patches patches accepted by keep,
// nearest to the center first.
func (t *Town) closestPatches(keep func(*Patch) bool) []*Patch {
	var out []*Patch
	for _, p := range t.Patches {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Center().Distance(t.Center) < out[j].Center().Distance(t.Center)
	})
	if len(out) > t.Options.Patches {
		out = out[:t.Options.Patches]
	}
	return out
}

// floodWater starts a lake on the edge of the would-be town and spreads it
// outwards through patches lying within 45 degrees of its direction.
func (t *Town) floodWater() {
	town := t.closestPatches(func(*Patch) bool { return true })
	inTown := make(map[*Patch]bool, len(town))
	for _, p := range town {
		inTown[p] = true
	}

	var edge []*Patch
	for _, p := range town {
		for _, n := range t.Neighbours(p) {
			if !inTown[n] {
				edge = append(edge, p)
				break
			}
		}
	}
	if len(edge) == 0 {
		return
	}
	first := rnd.Choose(t.rng, edge...)
	first.Water = true
	direction := first.Center().Sub(t.Center)
	cone := float64(gmath.DegToRad(45))

	queue := []*Patch{first}
	for len(queue) > 0 {
		checking := queue[0]
		queue = queue[1:]
		for _, n := range t.Neighbours(checking) {
			if inTown[n] || n.Water {
				continue
			}
			if math.Abs(direction.AngleBetween(n.Center().Sub(t.Center))) >= cone {
				continue
			}
			n.Water = true
			queue = append(queue, n)
		}
	}
}

// optimizePatches welds city corners closer than weldDistance to their
// midpoint, in every patch that holds either of them.
func (t *Town) optimizePatches() {
	var touched []*Patch
	for _, p := range t.cityPatches() {
		for i := 0; i < len(p.Shape.Vertices); i++ {
			n := len(p.Shape.Vertices)
			p0, p1 := p.Shape.Vertices[i], p.Shape.Vertices[(i+1)%n]
			if p0.Equal(p1) || p0.Distance(p1) >= weldDistance {
				continue
			}
			owners := t.PatchesAt(p0)
			for _, o := range t.PatchesAt(p1) {
				if !containsPatch(owners, o) {
					owners = append(owners, o)
				}
			}
			mid := geo.MidPoint(p0, p1)
			if !canWeld(owners, p0, p1, mid) {
				continue
			}
			for _, o := range owners {
				o.Shape.ReplaceVertex(p0, mid)
				o.Shape.ReplaceVertex(p1, mid)
				if !containsPatch(touched, o) {
					touched = append(touched, o)
				}
			}
			replaceAll(t.WaterBorder, p0, mid)
			replaceAll(t.WaterBorder, p1, mid)
		}
	}
	for _, p := range touched {
		p.Shape.Dedupe()
	}
	t.WaterBorder = dedupePoints(t.WaterBorder)
}

func canWeld(owners []*Patch, p0, p1, mid geo.Point2D) bool {
	for _, o := range owners {
		shape := o.Shape.Clone()
		shape.ReplaceVertex(p0, mid)
		shape.ReplaceVertex(p1, mid)
		if shape.DistinctCount() < 3 {
			return false
		}
	}
	return true
}

func containsPatch(list []*Patch, p *Patch) bool {
	for _, o := range list {
		if o == p {
			return true
		}
	}
	return false
}

func dedupePoints(pts []geo.Point2D) []geo.Point2D {
	if len(pts) == 0 {
		return pts
	}
	poly := geo.Polygon{Vertices: pts}
	poly.Dedupe()
	return poly.Vertices
}
