package systems

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"bead-mixer/components"
)

const (
	nearPlane = 0.1
	farPlane  = 1000
)

// Projection maps world points to screen pixels for one camera pose
type Projection struct {
	viewProj mgl64.Mat4
	width    float64
	height   float64
	focal    float64 // Pixels per world unit at unit depth
}

// NewProjection builds the perspective projection of cam on a width x height screen
func NewProjection(cam *components.CameraComponent, width, height int) Projection {
	view := mgl64.LookAtV(cam.Eye(), cam.Target, mgl64.Vec3{0, 1, 0})
	proj := mgl64.Perspective(cam.FOV, float64(width)/float64(height), nearPlane, farPlane)
	return Projection{
		viewProj: proj.Mul4(view),
		width:    float64(width),
		height:   float64(height),
		focal:    float64(height) / 2 / math.Tan(cam.FOV/2),
	}
}

// Project returns the screen position of v and its distance in front of the camera.
// ok is false for points behind the near plane.
func (p Projection) Project(v mgl64.Vec3) (x, y, depth float64, ok bool) {
	clip := p.viewProj.Mul4x1(v.Vec4(1))
	w := clip.W()
	if w < nearPlane {
		return 0, 0, w, false
	}
	x, y = p.toScreen(clip)
	return x, y, w, true
}

// Scale returns how many pixels one world unit spans at the given depth
func (p Projection) Scale(depth float64) float64 {
	return p.focal / depth
}

// ProjectSegment returns the screen endpoints of the part of segment ab that
// lies in front of the near plane
func (p Projection) ProjectSegment(a, b mgl64.Vec3) (x0, y0, x1, y1 float64, ok bool) {
	ca := p.viewProj.Mul4x1(a.Vec4(1))
	cb := p.viewProj.Mul4x1(b.Vec4(1))
	if ca.W() < nearPlane && cb.W() < nearPlane {
		return 0, 0, 0, 0, false
	}
	clip := func(from, to mgl64.Vec4) mgl64.Vec4 {
		t := (nearPlane - from.W()) / (to.W() - from.W())
		return from.Add(to.Sub(from).Mul(t))
	}
	if ca.W() < nearPlane {
		ca = clip(ca, cb)
	} else if cb.W() < nearPlane {
		cb = clip(cb, ca)
	}
	x0, y0 = p.toScreen(ca)
	x1, y1 = p.toScreen(cb)
	return x0, y0, x1, y1, true
}

func (p Projection) toScreen(clip mgl64.Vec4) (x, y float64) {
	w := clip.W()
	return (clip.X()/w + 1) / 2 * p.width, (1 - clip.Y()/w) / 2 * p.height
}
