package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CropUV remaps uv so the centered window [minStart, minEnd] of the screen
// spans the full logical [0,1]² used for ray generation, correcting for the
// aspect ratio of the screen. Points outside the window map outside [0,1].
func CropUV(uv mgl32.Vec2, screenRatio, minStart, minEnd float32) mgl32.Vec2 {
	out := uv.Sub(mgl32.Vec2{0.5, 0.5}).Mul(2)
	out = out.Mul(minEnd - minStart)

	if screenRatio > 1 {
		out[0] *= screenRatio
	} else {
		out[1] /= screenRatio
	}

	return out.Mul(0.5).Add(mgl32.Vec2{0.5, 0.5})
}
