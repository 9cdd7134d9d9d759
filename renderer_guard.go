package relight

import (
	"fmt"
)

// RendererTag records which renderer module owns the window surface.
type RendererTag struct {
	Name string
}

// ensureSingleRenderer panics when a second, different renderer is installed.
// It reports false when the same renderer is already installed.
func ensureSingleRenderer(app *App, name string) bool {
	if app == nil {
		panic("ensureSingleRenderer: app is nil")
	}
	if tag, ok := resource[RendererTag](app); ok {
		if tag.Name != name {
			app.Logger().Errorf("Multiple renderers installed: %s and %s", tag.Name, name)
			panic(fmt.Sprintf("Multiple renderers installed: %s and %s", tag.Name, name))
		}
		return false
	}
	app.addResources(&RendererTag{Name: name})
	return true
}
