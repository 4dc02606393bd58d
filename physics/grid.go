package physics

import "math"

type cellKey struct {
	x, y, z int
}

// maxCellsPerSphere bounds the dense layout. A bead flung far from the
// pile would otherwise blow the cell array up, so such scenes fall back
// to the sparse map.
const maxCellsPerSphere = 64

// SpatialGrid is a uniform grid used as the broad phase for spheres.
// Spheres are counting-sorted into a dense cell array spanning their
// bounding box, with z varying fastest so each neighbour row is one
// contiguous run. Non-sphere shapes are few and large; they are tested
// against every sphere.
type SpatialGrid struct {
	CellSize float64

	origin cellKey
	dims   cellKey
	start  []int
	sorted []*Body

	spheres []*Body
	keys    []cellKey

	sparse bool
	cells  map[cellKey][]*Body

	large []*Body
	runs  [][]*Body
}

// NewSpatialGrid creates a grid with the given cell size
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	return &SpatialGrid{
		CellSize: cellSize,
		cells:    make(map[cellKey][]*Body),
	}
}

func (g *SpatialGrid) key(b *Body) cellKey {
	return cellKey{
		x: int(math.Floor(b.Position[0] / g.CellSize)),
		y: int(math.Floor(b.Position[1] / g.CellSize)),
		z: int(math.Floor(b.Position[2] / g.CellSize)),
	}
}

func (g *SpatialGrid) index(k cellKey) int {
	return ((k.x-g.origin.x)*g.dims.y+(k.y-g.origin.y))*g.dims.z + (k.z - g.origin.z)
}

// Rebuild re-buckets all colliding bodies. Buffers are kept between calls.
func (g *SpatialGrid) Rebuild(bodies []*Body) {
	g.spheres = g.spheres[:0]
	g.keys = g.keys[:0]
	g.large = g.large[:0]

	lo := cellKey{math.MaxInt, math.MaxInt, math.MaxInt}
	hi := cellKey{math.MinInt, math.MinInt, math.MinInt}
	for _, b := range bodies {
		if !b.Collide || b.Hidden || b.Shape == nil {
			continue
		}
		if _, ok := b.Shape.(Sphere); !ok {
			g.large = append(g.large, b)
			continue
		}
		k := g.key(b)
		g.spheres = append(g.spheres, b)
		g.keys = append(g.keys, k)
		lo = cellKey{min(lo.x, k.x), min(lo.y, k.y), min(lo.z, k.z)}
		hi = cellKey{max(hi.x, k.x), max(hi.y, k.y), max(hi.z, k.z)}
	}

	if len(g.spheres) == 0 {
		g.sparse = false
		g.dims = cellKey{}
		g.start = g.start[:0]
		g.sorted = g.sorted[:0]
		return
	}

	dims := cellKey{hi.x - lo.x + 1, hi.y - lo.y + 1, hi.z - lo.z + 1}
	limit := maxCellsPerSphere*len(g.spheres) + 4096
	if dims.x > limit || dims.y > limit || dims.z > limit || dims.x*dims.y*dims.z > limit {
		g.rebuildSparse()
		return
	}

	g.sparse = false
	g.origin, g.dims = lo, dims
	n := dims.x * dims.y * dims.z
	if cap(g.start) < n+1 {
		g.start = make([]int, n+1)
	} else {
		g.start = g.start[:n+1]
		clear(g.start)
	}
	for _, k := range g.keys {
		g.start[g.index(k)+1]++
	}
	for i := 1; i <= n; i++ {
		g.start[i] += g.start[i-1]
	}

	if cap(g.sorted) < len(g.spheres) {
		g.sorted = make([]*Body, len(g.spheres))
	} else {
		g.sorted = g.sorted[:len(g.spheres)]
	}
	// start[i] doubles as the fill cursor of cell i, then is shifted back
	for i, b := range g.spheres {
		idx := g.index(g.keys[i])
		g.sorted[g.start[idx]] = b
		g.start[idx]++
	}
	copy(g.start[1:], g.start[:n])
	g.start[0] = 0
}

func (g *SpatialGrid) rebuildSparse() {
	g.sparse = true
	for k, v := range g.cells {
		g.cells[k] = v[:0]
	}
	for i, b := range g.spheres {
		k := g.keys[i]
		g.cells[k] = append(g.cells[k], b)
	}
}

// neighbours returns the runs of spheres in the 27 cells around k.
// The result is only valid until the next call.
func (g *SpatialGrid) neighbours(k cellKey) [][]*Body {
	g.runs = g.runs[:0]
	if g.sparse {
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for dz := -1; dz <= 1; dz++ {
					if run := g.cells[cellKey{k.x + dx, k.y + dy, k.z + dz}]; len(run) > 0 {
						g.runs = append(g.runs, run)
					}
				}
			}
		}
		return g.runs
	}

	zlo := max(k.z-1, g.origin.z)
	zhi := min(k.z+1, g.origin.z+g.dims.z-1)
	if zlo > zhi {
		return g.runs
	}
	for x := max(k.x-1, g.origin.x); x <= min(k.x+1, g.origin.x+g.dims.x-1); x++ {
		for y := max(k.y-1, g.origin.y); y <= min(k.y+1, g.origin.y+g.dims.y-1); y++ {
			first := g.index(cellKey{x, y, zlo})
			last := g.index(cellKey{x, y, zhi})
			if run := g.sorted[g.start[first]:g.start[last+1]]; len(run) > 0 {
				g.runs = append(g.runs, run)
			}
		}
	}
	return g.runs
}

// Pairs calls fn for every candidate pair where at least one body is dynamic.
// Locked and fixed spheres are only ever the second body of a pair.
func (g *SpatialGrid) Pairs(bodies []*Body, fn func(a, b *Body)) {
	for _, a := range bodies {
		if !a.Collide || a.Hidden || !a.Movable() {
			continue
		}
		if _, ok := a.Shape.(Sphere); !ok {
			continue
		}

		for _, run := range g.neighbours(g.key(a)) {
			for _, b := range run {
				if b == a {
					continue
				}
				// Two dynamic spheres are visited twice; keep the lower ID.
				if b.Movable() && b.ID < a.ID {
					continue
				}
				fn(a, b)
			}
		}

		bounds := a.Shape.Bounds(a)
		for _, b := range g.large {
			if b.Shape.Bounds(b).Overlaps(bounds) {
				fn(a, b)
			}
		}
	}
}
