package generation

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// FillMode selects how the annulus between the two walls is filled
type FillMode int

const (
	// FillColumns stacks layers of beads on every fill ring
	FillColumns FillMode = iota + 1
	// FillDrop places a single layer per ring high above the walls and lets it fall
	FillDrop
)

// ErrInvalidFillMode is returned for fill modes other than FillColumns and FillDrop
var ErrInvalidFillMode = errors.New("invalid fill mode")

func (m FillMode) String() string {
	switch m {
	case FillColumns:
		return "columns"
	case FillDrop:
		return "drop"
	default:
		return "invalid"
	}
}

// Valid reports whether m names a known fill mode
func (m FillMode) Valid() bool {
	return m == FillColumns || m == FillDrop
}

// FillRings returns the rings between the inner and outer walls.
// The first ring sits one bead diameter outside the inner wall and the
// last one leaves at least one diameter before the outer wall.
func FillRings(bead, innerRadius, outerRadius float64) []Ring {
	gap := (outerRadius - bead) - (innerRadius + bead)
	n := int(math.Floor(gap/(2*bead))) - 1

	rings := make([]Ring, 0, max(n, 0))
	for k := 0; k < n; k++ {
		rings = append(rings, Ring{
			Radius: innerRadius + 3*bead + 2*float64(k)*bead,
			Bead:   bead,
		})
	}
	return rings
}

// FillLayers returns the number of stacked layers FillColumns places:
// every other diameter slot up to fillHeight, so the fill reaches about half of it
func FillLayers(bead, fillHeight float64) int {
	return (int(math.Floor(fillHeight/(2*bead))) + 1) / 2
}

// Fill returns bead positions filling the annulus up to fillHeight
func Fill(bead, innerRadius, outerRadius, fillHeight float64, mode FillMode) ([]mgl64.Vec3, error) {
	if !mode.Valid() {
		return nil, ErrInvalidFillMode
	}

	var positions []mgl64.Vec3
	for _, ring := range FillRings(bead, innerRadius, outerRadius) {
		switch mode {
		case FillColumns:
			layers := FillLayers(bead, fillHeight)
			for j := 0; j < layers; j++ {
				positions = append(positions, ring.Layer(bead+2*bead*float64(j), 0)...)
			}
		case FillDrop:
			positions = append(positions, ring.Layer(2*fillHeight, 0)...)
		}
	}
	return positions, nil
}
