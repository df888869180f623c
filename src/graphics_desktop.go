//go:build !gles2

package main

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/ikemen-engine/presenter/packages/glapi"
)

func contextHints() {
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	if runtime.GOOS == "darwin" {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
}

// The desktop backend issues GL calls directly, so the frame loop stays on
// the main thread.
func onMainThread(f func()) { f() }

func runGraphics(frames func(api glapi.API) error) error {
	api, err := glapi.New()
	if err != nil {
		return err
	}
	return frames(api)
}
