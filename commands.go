package relight

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) UseSystem(system systemScheduleBuilder) *Commands {
	cmd.app.UseSystem(system)
	return cmd
}

// Quit ends App.Run after the current frame completes.
func (cmd *Commands) Quit() {
	cmd.app.quitRequested = true
}

func (cmd *Commands) Logger() Logger {
	return cmd.app.Logger()
}
