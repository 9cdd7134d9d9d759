package gpu

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FrameUniformsSize is the padded size of the WGSL Frame struct.
const FrameUniformsSize = 288

// FrameUniforms mirrors the Frame struct in quad.wgsl.
type FrameUniforms struct {
	Projection mgl32.Mat4
	View       mgl32.Mat4
	LightPos   mgl32.Vec3
	Resolution [2]int32
}

// Bytes packs the uniforms into the std140-like WGSL layout:
//
//	proj:       mat4x4<f32> -- 0
//	view:       mat4x4<f32> -- 64
//	inv_proj:   mat4x4<f32> -- 128
//	inv_view:   mat4x4<f32> -- 192
//	light_pos:  vec3<f32>   -- 256
//	resolution: vec2<i32>   -- 272
//	-> 288 bytes (padded)
//
// The inverses are computed here; a singular matrix packs as all zeros.
func (u FrameUniforms) Bytes() []byte {
	buf := make([]byte, FrameUniformsSize)

	writeMat := func(offset int, mat mgl32.Mat4) {
		for i, v := range mat {
			binary.LittleEndian.PutUint32(buf[offset+i*4:], math.Float32bits(v))
		}
	}

	writeMat(0, u.Projection)
	writeMat(64, u.View)
	writeMat(128, u.Projection.Inv())
	writeMat(192, u.View.Inv())

	binary.LittleEndian.PutUint32(buf[256:], math.Float32bits(u.LightPos[0]))
	binary.LittleEndian.PutUint32(buf[260:], math.Float32bits(u.LightPos[1]))
	binary.LittleEndian.PutUint32(buf[264:], math.Float32bits(u.LightPos[2]))

	binary.LittleEndian.PutUint32(buf[272:], uint32(u.Resolution[0]))
	binary.LittleEndian.PutUint32(buf[276:], uint32(u.Resolution[1]))

	return buf
}
