package relight

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	KeyEscape int = iota
	KeyQ
	keyCount
)

var keyToGlfw = map[int]glfw.Key{
	KeyEscape: glfw.KeyEscape,
	KeyQ:      glfw.KeyQ,
}

type InputModule struct{}

type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	// Pointer is written by the cursor callback between frames.
	Pointer PointerCell
	// Viewport is the window size in the same units as Pointer.
	Viewport mgl32.Vec2

	CloseRequested bool
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	input := &Input{}
	cmd.AddResources(input)

	ws, ok := resource[WindowState](app)
	if !ok {
		// nothing to poll
		app.Logger().Warnf("InputModule installed without a window, pointer stays at the origin")
		return
	}

	ws.windowGlfw.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		input.Pointer.Store(x, y)
	})
	input.Viewport = mgl32.Vec2{float32(ws.WindowWidth), float32(ws.WindowHeight)}

	cmd.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

func inputSystem(s *WindowState, input *Input, cmd *Commands) {
	glfw.PollEvents()

	for key, glfwKey := range keyToGlfw {
		input.setKey(key, s.windowGlfw.GetKey(glfwKey) == glfw.Press)
	}

	width, height := s.windowGlfw.GetSize()
	s.WindowWidth, s.WindowHeight = width, height
	// minimized windows report 0x0; keep the last usable size
	if width > 0 && height > 0 {
		input.Viewport = mgl32.Vec2{float32(width), float32(height)}
	}

	input.CloseRequested = s.windowGlfw.ShouldClose()
	if input.wantsQuit() {
		cmd.Quit()
	}
}

func (input *Input) setKey(key int, down bool) {
	input.JustPressed[key] = down && !input.Pressed[key]
	input.JustReleased[key] = !down && input.Pressed[key]
	input.Pressed[key] = down
}

// wantsQuit is true when the window was closed or Escape or Q was just pressed.
func (input *Input) wantsQuit() bool {
	return input.CloseRequested || input.JustPressed[KeyEscape] || input.JustPressed[KeyQ]
}
