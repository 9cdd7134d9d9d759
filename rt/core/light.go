package core

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// InputMode selects how the light is driven. It is resolved once at startup.
type InputMode int

const (
	InputModePointer InputMode = iota
	InputModeOrbit
)

func (m InputMode) String() string {
	switch m {
	case InputModePointer:
		return "pointer"
	case InputModeOrbit:
		return "orbit"
	default:
		return fmt.Sprintf("InputMode(%d)", int(m))
	}
}

const (
	CropStart float32 = 0.25
	CropEnd   float32 = 0.75
)

// LightPositioner turns pointer or clock input into a world-space light position.
type LightPositioner struct {
	Plane      Plane
	CropStart  float32
	CropEnd    float32
	Projection mgl32.Mat4
	View       mgl32.Mat4
}

func NewLightPositioner(camera *CameraState) *LightPositioner {
	return &LightPositioner{
		Plane:      LightPlane,
		CropStart:  CropStart,
		CropEnd:    CropEnd,
		Projection: camera.Projection,
		View:       camera.View,
	}
}

// Position returns the light position for this frame. pointer is in window
// pixels with the origin at the top-left corner, viewport is the window size.
// In orbit mode pointer and viewport are ignored.
func (lp *LightPositioner) Position(pointer, viewport mgl32.Vec2, mode InputMode, elapsedSeconds float64) (mgl32.Vec3, error) {
	if mode == InputModeOrbit {
		return OrbitPosition(elapsedSeconds), nil
	}

	uv := PointerUV(pointer, viewport)
	uv = CropUV(uv, viewport.X()/viewport.Y(), lp.CropStart, lp.CropEnd)

	ray, err := CreateRay(uv, lp.Projection, lp.View)
	if err != nil {
		return mgl32.Vec3{}, fmt.Errorf("light ray: %w", err)
	}
	t := IntersectPlane(ray, lp.Plane)
	return ray.At(t), nil
}

// ComputeLightPosition is Position with the fixed light plane and crop window.
func ComputeLightPosition(pointer, viewport mgl32.Vec2, projection, view mgl32.Mat4, mode InputMode, elapsedSeconds float64) (mgl32.Vec3, error) {
	lp := LightPositioner{
		Plane:      LightPlane,
		CropStart:  CropStart,
		CropEnd:    CropEnd,
		Projection: projection,
		View:       view,
	}
	return lp.Position(pointer, viewport, mode, elapsedSeconds)
}

// PointerUV converts window pixels to uv with the origin at the bottom-left,
// sampling the pixel center.
func PointerUV(pointer, viewport mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		(pointer.X() + 0.5) / viewport.X(),
		(viewport.Y() - pointer.Y() + 0.5) / viewport.Y(),
	}
}

// OrbitPosition is the time-driven light path used when there is no pointer.
func OrbitPosition(elapsedSeconds float64) mgl32.Vec3 {
	s, c := math.Sincos(elapsedSeconds)
	return mgl32.Vec3{float32(s), float32(s*0.5 + 1), float32(c)}
}
