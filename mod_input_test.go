package relight

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_setKeyEdges(t *testing.T) {
	var in Input

	in.setKey(KeyQ, true)
	assert.True(t, in.Pressed[KeyQ])
	assert.True(t, in.JustPressed[KeyQ])

	in.setKey(KeyQ, true)
	assert.True(t, in.Pressed[KeyQ])
	assert.False(t, in.JustPressed[KeyQ])

	in.setKey(KeyQ, false)
	assert.False(t, in.Pressed[KeyQ])
	assert.True(t, in.JustReleased[KeyQ])

	in.setKey(KeyQ, false)
	assert.False(t, in.JustReleased[KeyQ])
}

func TestInput_wantsQuit(t *testing.T) {
	var in Input
	assert.False(t, in.wantsQuit())

	in.setKey(KeyEscape, true)
	assert.True(t, in.wantsQuit())

	in.setKey(KeyEscape, true)
	assert.False(t, in.wantsQuit(), "holding escape does not re-trigger")

	in.setKey(KeyQ, true)
	assert.True(t, in.wantsQuit())
	in.setKey(KeyQ, true)
	assert.False(t, in.wantsQuit())

	in.CloseRequested = true
	assert.True(t, in.wantsQuit())
}

func TestInputModule_WithoutWindowRunsFrames(t *testing.T) {
	rec := &RecordingLogger{}
	app := NewAppBuilder().Build()
	app.addResources(rec)

	InputModule{}.Install(app, app.Commands())

	input, ok := resource[Input](app)
	require.True(t, ok)
	assert.Len(t, rec.Warnings(), 1)
	assert.Empty(t, app.systems[PreUpdate.Name])

	require.NotPanics(t, func() {
		app.runFrame()
		app.runFrame()
	})
	assert.Equal(t, mgl32.Vec2{0, 0}, input.Pointer.Load())
}
