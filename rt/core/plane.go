package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Plane is an infinite plane through Point with unit Normal.
type Plane struct {
	Point  mgl32.Vec3
	Normal mgl32.Vec3
}

func NewPlane(point, normal mgl32.Vec3) Plane {
	return Plane{Point: point, Normal: normal.Normalize()}
}

// LightPlane is the plane the pointer light slides on.
var LightPlane = Plane{
	Point:  mgl32.Vec3{-6.5, 2, 0},
	Normal: mgl32.Vec3{1, 0, 0},
}

// IntersectPlane returns dot(n, o-p) / dot(n, d). Note the numerator is taken
// from the plane to the origin, so ray.At(-t) lies on the plane and ray.At(t)
// is that hit mirrored through the ray origin. The light placement depends on
// this convention. The result is not clamped: ±Inf or NaN come back when the
// ray is parallel to the plane.
func IntersectPlane(ray Ray, plane Plane) float32 {
	num := plane.Normal.Dot(ray.Origin.Sub(plane.Point))
	den := plane.Normal.Dot(ray.Direction)
	return num / den
}
