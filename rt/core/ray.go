package core

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// NearPlaneDepth is the clip-space depth used to unproject screen points.
// The baked camera matrices were tuned against 0.1, not the usual -1.
const NearPlaneDepth float32 = 0.1

var ErrSingularMatrix = errors.New("matrix is not invertible")

type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay normalizes direction.
func NewRay(origin, direction mgl32.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns origin + direction*t.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// CreateRay builds a world-space ray through uv ([0,1]², origin bottom-left)
// from the inverse projection and view matrices.
func CreateRay(uv mgl32.Vec2, projection, view mgl32.Mat4) (Ray, error) {
	ndc := uv.Mul(2).Sub(mgl32.Vec2{1, 1})
	clip := mgl32.Vec4{ndc.X(), ndc.Y(), NearPlaneDepth, 1}

	invProj, err := invert(projection, "projection")
	if err != nil {
		return Ray{}, err
	}
	dirEye := invProj.Mul4x1(clip)
	// w = 0 drops the translation part of the view transform
	dirEye[3] = 0

	invView, err := invert(view, "view")
	if err != nil {
		return Ray{}, err
	}
	origin := mgl32.Vec3{invView[12], invView[13], invView[14]}
	dir := invView.Mul4x1(dirEye).Vec3()

	return NewRay(origin, dir), nil
}

func invert(m mgl32.Mat4, name string) (mgl32.Mat4, error) {
	det := m.Det()
	if det == 0 || math.IsNaN(float64(det)) || math.IsInf(float64(det), 0) {
		return mgl32.Mat4{}, fmt.Errorf("invert %s: %w", name, ErrSingularMatrix)
	}
	return m.Inv(), nil
}
