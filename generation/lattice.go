package generation

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mode selects how a cylindrical wall of beads is packed
type Mode int

const (
	// ModeColumnar stacks every layer directly on top of the previous one
	ModeColumnar Mode = iota + 1
	// ModeStaggeredNoContact rotates odd layers by half a step, keeping 2r layer spacing
	ModeStaggeredNoContact
	// ModeStaggeredContact rotates odd layers by half a step and nests them into the gaps below
	ModeStaggeredContact
)

// ErrInvalidMode is returned for packing modes outside ModeColumnar..ModeStaggeredContact
var ErrInvalidMode = errors.New("invalid packing mode")

// String returns the packing mode name
func (m Mode) String() string {
	switch m {
	case ModeColumnar:
		return "columnar"
	case ModeStaggeredNoContact:
		return "staggered-no-contact"
	case ModeStaggeredContact:
		return "staggered-contact"
	default:
		return "invalid"
	}
}

// Valid reports whether m names a known packing mode
func (m Mode) Valid() bool {
	return m >= ModeColumnar && m <= ModeStaggeredContact
}

// Ring describes beads of radius R placed on a horizontal circle of radius Radius
type Ring struct {
	Radius float64 // Distance from the vertical axis to each bead center
	Bead   float64 // Bead radius
}

// Step returns the angle between two neighbouring bead centers.
// Neighbours are exactly two bead radii apart.
func (r Ring) Step() float64 {
	if r.Radius <= r.Bead {
		return 2 * math.Pi
	}
	return 2 * math.Asin(r.Bead/r.Radius)
}

// Count returns how many beads fit on the ring without the last one touching the first
func (r Ring) Count() int {
	if r.Bead <= 0 || r.Radius <= 0 {
		return 0
	}
	n := int(math.Floor(2*math.Pi/r.Step() + 1e-9))
	if n < 1 {
		return 1
	}
	return n
}

// At returns the position of bead i at height y, rotated by offset radians
func (r Ring) At(i int, y, offset float64) mgl64.Vec3 {
	angle := float64(i)*r.Step() + offset
	return mgl64.Vec3{r.Radius * math.Cos(angle), y, r.Radius * math.Sin(angle)}
}

// Layer returns all bead positions of one ring layer
func (r Ring) Layer(y, offset float64) []mgl64.Vec3 {
	n := r.Count()
	positions := make([]mgl64.Vec3, 0, n)
	for i := 0; i < n; i++ {
		positions = append(positions, r.At(i, y, offset))
	}
	return positions
}

// layerHeights returns the center height of each layer for a wall of the given height
func layerHeights(bead, height float64, mode Mode) []float64 {
	var heights []float64
	switch mode {
	case ModeColumnar, ModeStaggeredNoContact:
		n := int(math.Floor(height / (2 * bead)))
		for j := 0; j < n; j++ {
			heights = append(heights, bead+2*bead*float64(j))
		}
	case ModeStaggeredContact:
		spacing := math.Sqrt(3) * bead
		for y := bead; y+bead <= height+1e-9; y += spacing {
			heights = append(heights, y)
		}
	}
	return heights
}

// Wall packs beads around a ring of the given radius up to height using mode.
// An invalid mode returns ErrInvalidMode and no positions.
func Wall(bead, radius, height float64, mode Mode) ([]mgl64.Vec3, error) {
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}

	ring := Ring{Radius: radius, Bead: bead}
	var positions []mgl64.Vec3
	for j, y := range layerHeights(bead, height, mode) {
		offset := 0.0
		if mode != ModeColumnar && j%2 == 1 {
			offset = ring.Step() / 2
		}
		positions = append(positions, ring.Layer(y, offset)...)
	}
	return positions, nil
}

// OuterWall packs the inside face of the outer cylinder
func OuterWall(bead, outerRadius, height float64, mode Mode) ([]mgl64.Vec3, error) {
	return Wall(bead, outerRadius-bead, height, mode)
}

// InnerWall packs the outside face of the mixer
func InnerWall(bead, innerRadius, height float64, mode Mode) ([]mgl64.Vec3, error) {
	return Wall(bead, innerRadius+bead, height, mode)
}
