package relight

import (
	"github.com/gekko3d/relight/rt/core"

	"github.com/go-gl/mathgl/mgl32"
)

// LightState is the light position fed to the renderer each frame.
type LightState struct {
	Mode       core.InputMode
	Camera     core.CameraState
	Positioner *core.LightPositioner
	Position   mgl32.Vec3
	// Failures counts frames that kept the previous position.
	Failures int
}

type LightModule struct {
	Mode core.InputMode
	// Camera overrides the baked camera when non-nil.
	Camera *core.CameraState
}

func (m LightModule) Install(app *App, cmd *Commands) {
	camera := *core.NewCameraState()
	if m.Camera != nil {
		camera = *m.Camera
	}
	light := &LightState{
		Mode:       m.Mode,
		Camera:     camera,
		Positioner: core.NewLightPositioner(&camera),
		Position:   core.OrbitPosition(0),
	}
	cmd.AddResources(light)

	logger := app.Logger()
	logger.Infof("Light driven by %v input", m.Mode)

	cmd.UseSystem(
		System(func(light *LightState, input *Input, t *Time) {
			updateLight(light, input.Pointer.Load(), input.Viewport, t.Elapsed(), logger)
		}).InStage(Update),
	)
}

func updateLight(light *LightState, pointer, viewport mgl32.Vec2, elapsedSeconds float64, logger Logger) {
	pos, err := light.Positioner.Position(pointer, viewport, light.Mode, elapsedSeconds)
	if err != nil {
		light.Failures++
		// once is enough, the camera never changes
		if light.Failures == 1 {
			logger.Errorf("Light position unavailable, keeping %v: %v", light.Position, err)
		}
		return
	}
	light.Position = pos
}
