package relight

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gekko3d/relight/rt/core"
)

var mobileUserAgent = regexp.MustCompile(`(?i)Mobi|Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// ClassifyUserAgent picks orbit mode for touch devices, which have no hover
// pointer to follow.
func ClassifyUserAgent(ua string) core.InputMode {
	if mobileUserAgent.MatchString(ua) {
		return core.InputModeOrbit
	}
	return core.InputModePointer
}

// ResolveInputMode turns the -mode flag into an InputMode. "auto" (or an
// empty flag) falls back to classifying ua.
func ResolveInputMode(flag string, ua string) (core.InputMode, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "pointer":
		return core.InputModePointer, nil
	case "orbit":
		return core.InputModeOrbit, nil
	case "", "auto":
		return ClassifyUserAgent(ua), nil
	}
	return core.InputModePointer, fmt.Errorf("unknown input mode %q (want pointer, orbit or auto)", flag)
}
