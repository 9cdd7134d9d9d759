package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraState holds the projection and view matrices uploaded with every draw.
// Both are treated as frame-invariant.
type CameraState struct {
	Projection mgl32.Mat4
	View       mgl32.Mat4
}

// NewCameraState returns the camera the G-buffer textures were baked with.
// The matrices are column-major, matching the shader uniform layout.
func NewCameraState() *CameraState {
	return &CameraState{
		Projection: mgl32.Mat4{
			1.19175363, 0, 0, 0,
			0, 1.19175363, 0, 0,
			0, 0, -1.0080322, -1,
			0, 0, -0.20080322, 0,
		},
		View: mgl32.Mat4{
			-0.00270720175, 0.237701744, -0.971334457, 0,
			0, 0.971338034, 0.237702608, 0,
			0.999996364, 0.000643508916, -0.00262960792, 0,
			0.136095524, -0.809797704, -3.99672771, 1,
		},
	}
}

// Position returns the camera origin in world space.
func (c *CameraState) Position() (mgl32.Vec3, error) {
	invView, err := invert(c.View, "view")
	if err != nil {
		return mgl32.Vec3{}, err
	}
	return mgl32.Vec3{invView[12], invView[13], invView[14]}, nil
}
