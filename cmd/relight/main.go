package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/gekko3d/relight"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	width := flag.Int("width", 1280, "Window width in screen coordinates")
	height := flag.Int("height", 720, "Window height in screen coordinates")
	title := flag.String("title", "Relight", "Window title")
	assets := flag.String("assets", ".", "Directory holding the texture/ folder")
	mode := flag.String("mode", "auto", "Light input: pointer, orbit or auto")
	userAgent := flag.String("user-agent", "", "User agent consulted by -mode auto")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	inputMode, err := relight.ResolveInputMode(*mode, *userAgent)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	app := relight.NewAppBuilder().
		UseModule(
			relight.LoggingModule{Prefix: "relight", Debug: *debug},
			relight.TimeModule{},
			relight.NewPlatformWindow(*width, *height, *title),
			relight.InputModule{},
			relight.QuadRendererModule{},
			relight.TextureModule{AssetRoot: *assets},
			relight.LightModule{Mode: inputMode},
		).
		Build()

	app.Run()
}
