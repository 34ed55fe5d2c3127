package layout

import (
	"math"
	"sort"

	"github.com/ChicagoDave/towngen/pkg/geo"
)

// Building is a finished lot on a patch.
type Building struct {
	ID          string      `json:"id"`
	PatchID     int         `json:"patch_id"`
	District    District    `json:"district"`
	Description string      `json:"description"`
	Shape       geo.Polygon `json:"shape"`
}

// Archetype is a kind of building and the population one of it serves.
type Archetype struct {
	Description string `json:"description"`
	Population  int    `json:"population"`
	MinSize     int    `json:"min_size"`
}

// avgPopulation is the assumed number of residents per building.
const avgPopulation = 10

// Catalog lists every building archetype.
var Catalog = []Archetype{
	{"Empty", 1, 1},
	{"Home", 10, 1},
	{"Shoemakers", 150, 1},
	{"Furriers", 250, 1},
	{"Maidservants", 250, 1},
	{"Tailors", 250, 1},
	{"Barbers", 350, 1},
	{"Healer", 350, 1},
	{"Jewelers", 400, 1},
	{"Old-Clothes", 400, 1},
	{"Taverns/Restaurants", 400, 2},
	{"Masons", 500, 1},
	{"Pastrycooks", 500, 1},
	{"Shrine", 500, 1},
	{"Carpenters", 550, 2},
	{"Weavers", 600, 2},
	{"Barrel maker (cooper)", 700, 2},
	{"Chandlers", 700, 1},
	{"Textile trader (mercer)", 700, 2},
	{"Bakers", 800, 2},
	{"Scabbardmakers", 850, 1},
	{"Watercarriers", 850, 1},
	{"Wine-Sellers", 900, 1},
	{"Hatmakers", 950, 1},
	{"Chicken Butchers", 1000, 3},
	{"Saddlers", 1000, 2},
	{"Pursemakers", 1100, 2},
	{"Butchers", 1200, 3},
	{"Fishmongers", 1200, 2},
	{"Beer-Sellers", 1400, 2},
	{"Buckle Makers", 1400, 2},
	{"Plasterers", 1400, 1},
	{"Spice Merchants", 1400, 1},
	{"Blacksmiths", 1500, 2},
	{"Painters", 1500, 1},
	{"Doctors", 1700, 2},
	{"Roofers", 1800, 1},
	{"Bathers", 1900, 3},
	{"Locksmiths", 1900, 1},
	{"Ropemakers", 1900, 2},
	{"Copyists", 2000, 2},
	{"Harness-Makers", 2000, 2},
	{"Rugmakers", 2000, 2},
	{"Inns", 2000, 3},
	{"Sculptors", 2000, 3},
	{"Tanners", 2000, 3},
	{"Bleachers", 2100, 3},
	{"Cutlers", 2300, 2},
	{"Hay Merchants", 2300, 3},
	{"Glovemakers", 2400, 2},
	{"Woodcarvers", 2400, 2},
	{"Woodsellers", 2400, 2},
	{"Magic-Shops", 2800, 2},
	{"Bookbinders", 3000, 2},
	{"Illuminators", 3900, 2},
	{"Temple", 6000, 4},
	{"Booksellers", 6300, 2},
	{"University", 10000, 4},
}

// EstimatedPopulation is the population assumed for n buildings.
func EstimatedPopulation(n int) int {
	return avgPopulation * n
}

// PlaceBuildings labels buildings in place. The largest footprints go to the
// archetypes serving the most people; every archetype the town can support
// gets ceil(population / archetype population) buildings.
func PlaceBuildings(buildings []Building) {
	order := make([]int, len(buildings))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return buildings[order[i]].Shape.Area() > buildings[order[j]].Shape.Area()
	})

	population := EstimatedPopulation(len(buildings))
	var types []Archetype
	for _, a := range Catalog {
		if a.Population <= population {
			types = append(types, a)
		}
	}
	sort.SliceStable(types, func(i, j int) bool {
		if types[i].Population != types[j].Population {
			return types[i].Population > types[j].Population
		}
		return types[i].MinSize > types[j].MinSize
	})

	next := 0
	for _, a := range types {
		count := int(math.Ceil(float64(population) / float64(a.Population)))
		for k := 0; k < count && next < len(order); k++ {
			buildings[order[next]].Description = a.Description
			next++
		}
	}
}
