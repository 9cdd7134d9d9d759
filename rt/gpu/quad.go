package gpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
)

// QuadVertex is the single vertex attribute fed to vs_main.
type QuadVertex struct {
	Position [2]float32
}

// QuadVertices is one oversized triangle covering all of clip space.
var QuadVertices = []QuadVertex{
	{Position: [2]float32{-1, -1}},
	{Position: [2]float32{3, -1}},
	{Position: [2]float32{-1, 3}},
}

func quadVertexBytes() []byte {
	buf := make([]byte, 0, len(QuadVertices)*int(unsafe.Sizeof(QuadVertex{})))
	for _, v := range QuadVertices {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v.Position[0]))
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v.Position[1]))
	}
	return buf
}

// TextureSlots is the number of texture bindings in group 1 ahead of the sampler.
const TextureSlots = 4

// QuadPass draws the relit screen quad.
type QuadPass struct {
	ctx *Context

	Pipeline      *wgpu.RenderPipeline
	VertexBuffer  *wgpu.Buffer
	UniformBuffer *wgpu.Buffer
	Sampler       *wgpu.Sampler
	FrameBG       *wgpu.BindGroup

	texturesBG  *wgpu.BindGroup
	boundIds    [TextureSlots]string
	boundAtGen  uint64
	haveBinding bool
}

func NewQuadPass(ctx *Context, shaderCode string) (*QuadPass, error) {
	q := &QuadPass{ctx: ctx}
	device := ctx.Device

	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "quad.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaderCode},
	})
	if err != nil {
		return nil, fmt.Errorf("compile quad shader: %w", err)
	}
	defer module.Release()

	q.Pipeline, err = device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "Quad Pipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				ArrayStride: uint64(unsafe.Sizeof(QuadVertex{})),
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    ctx.Config.Format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology: wgpu.PrimitiveTopologyTriangleList,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("link quad pipeline: %w", err)
	}

	q.VertexBuffer, err = device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Quad Vertices",
		Contents: quadVertexBytes(),
		Usage:    wgpu.BufferUsageVertex,
	})
	if err != nil {
		return nil, fmt.Errorf("quad vertex buffer: %w", err)
	}

	q.UniformBuffer, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Frame Uniforms",
		Size:  FrameUniformsSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("frame uniform buffer: %w", err)
	}

	q.Sampler, err = device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MinFilter:     wgpu.FilterModeLinear,
		MagFilter:     wgpu.FilterModeLinear,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("quad sampler: %w", err)
	}

	q.FrameBG, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: q.Pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: q.UniformBuffer, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("frame bind group: %w", err)
	}

	return q, nil
}

// bindTextures rebuilds group 1 when the slot ids changed or any texture was
// re-uploaded since the last frame.
func (q *QuadPass) bindTextures(ids [TextureSlots]string) error {
	gen := q.ctx.Generation()
	if q.haveBinding && q.boundIds == ids && q.boundAtGen == gen {
		return nil
	}

	entries := make([]wgpu.BindGroupEntry, 0, TextureSlots+1)
	for i, id := range ids {
		tex, ok := q.ctx.Texture(id)
		if !ok {
			return fmt.Errorf("texture slot %d: %q not uploaded", i, id)
		}
		entries = append(entries, wgpu.BindGroupEntry{Binding: uint32(i), TextureView: tex.View})
	}
	entries = append(entries, wgpu.BindGroupEntry{Binding: TextureSlots, Sampler: q.Sampler})

	bg, err := q.ctx.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout:  q.Pipeline.GetBindGroupLayout(1),
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("texture bind group: %w", err)
	}
	if q.texturesBG != nil {
		q.texturesBG.Release()
	}
	q.texturesBG = bg
	q.boundIds = ids
	q.boundAtGen = gen
	q.haveBinding = true
	return nil
}

// Draw writes the frame uniforms and records one draw of the quad into the
// current surface texture.
func (q *QuadPass) Draw(frame FrameUniforms, ids [TextureSlots]string) error {
	q.ctx.Queue.WriteBuffer(q.UniformBuffer, 0, frame.Bytes())

	if err := q.bindTextures(ids); err != nil {
		return err
	}

	nextTexture, err := q.ctx.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("surface texture: %w", err)
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("surface view: %w", err)
	}
	defer view.Release()

	encoder, err := q.ctx.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	pass.SetPipeline(q.Pipeline)
	pass.SetVertexBuffer(0, q.VertexBuffer, 0, q.VertexBuffer.GetSize())
	pass.SetBindGroup(0, q.FrameBG, nil)
	pass.SetBindGroup(1, q.texturesBG, nil)
	pass.Draw(uint32(len(QuadVertices)), 1, 0, 0)
	if err := pass.End(); err != nil {
		return fmt.Errorf("quad pass: %w", err)
	}
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	defer cmd.Release()
	q.ctx.Queue.Submit(cmd)
	q.ctx.Surface.Present()
	return nil
}

func (q *QuadPass) Release() {
	if q.texturesBG != nil {
		q.texturesBG.Release()
	}
	if q.FrameBG != nil {
		q.FrameBG.Release()
	}
	if q.Sampler != nil {
		q.Sampler.Release()
	}
	if q.UniformBuffer != nil {
		q.UniformBuffer.Release()
	}
	if q.VertexBuffer != nil {
		q.VertexBuffer.Release()
	}
	if q.Pipeline != nil {
		q.Pipeline.Release()
	}
}
