package relight

import (
	"github.com/gekko3d/relight/rt/gpu"
	"github.com/gekko3d/relight/rt/shaders"
)

// Renderer owns the graphics context and the quad pass.
type Renderer struct {
	Context *gpu.Context
	Pass    *gpu.QuadPass
}

// QuadRendererModule draws the relit quad once per frame. It needs the
// PlatformWindowModule installed first.
type QuadRendererModule struct {
	// Shader overrides the embedded WGSL source.
	Shader string
}

func (m QuadRendererModule) Install(app *App, cmd *Commands) {
	if !ensureSingleRenderer(app, "quad") {
		return
	}
	logger := app.Logger()

	ws, ok := resource[WindowState](app)
	if !ok {
		logger.Errorf("QuadRendererModule requires a window, install PlatformWindowModule first")
		panic("QuadRendererModule: no WindowState resource")
	}

	ctx, err := gpu.NewContext(ws.windowGlfw)
	if err != nil {
		logger.Errorf("GPU init failed: %v", err)
		panic(err)
	}

	code := m.Shader
	if code == "" {
		code = shaders.QuadWGSL
	}
	pass, err := gpu.NewQuadPass(ctx, code)
	if err != nil {
		logger.Errorf("Quad pipeline failed: %v", err)
		ctx.Release()
		panic(err)
	}

	cmd.AddResources(&Renderer{Context: ctx, Pass: pass})
	app.onShutdown(func() {
		pass.Release()
		ctx.Release()
	})

	cmd.UseSystem(
		System(func(r *Renderer, ws *WindowState, light *LightState, scene *SceneTextures) {
			renderQuad(r, ws, light, scene, logger)
		}).InStage(Render),
	)
}

func renderQuad(r *Renderer, ws *WindowState, light *LightState, scene *SceneTextures, logger Logger) {
	width, height := ws.FramebufferSize()
	if width <= 0 || height <= 0 {
		return
	}
	if r.Context.Resize(width, height) {
		logger.Debugf("Surface resized to %dx%d", width, height)
	}

	err := r.Pass.Draw(frameUniforms(light, width, height), scene.Strings())
	if err != nil {
		logger.Errorf("Draw failed: %v", err)
	}
}

func frameUniforms(light *LightState, width, height int) gpu.FrameUniforms {
	return gpu.FrameUniforms{
		Projection: light.Camera.Projection,
		View:       light.Camera.View,
		LightPos:   light.Position,
		Resolution: [2]int32{int32(width), int32(height)},
	}
}
