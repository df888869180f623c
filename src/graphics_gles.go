//go:build gles2

package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/mobile/gl"

	"github.com/ikemen-engine/presenter/packages/glapi"
)

func contextHints() {
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
}

var mainThreadTask = make(chan func(), 64)

// onMainThread runs f on the thread owning the window and waits for it.
func onMainThread(f func()) {
	done := make(chan struct{})
	mainThreadTask <- func() {
		f()
		close(done)
	}
	<-done
}

// runGraphics runs frames on its own goroutine while the calling thread,
// which owns the GL context, executes the queued GL calls and window tasks.
func runGraphics(frames func(api glapi.API) error) error {
	glctx, worker := gl.NewContext()

	result := make(chan error, 1)
	go func() {
		api, err := glapi.New(glctx)
		if err != nil {
			result <- err
			return
		}
		result <- frames(api)
	}()

	workAvailable := worker.WorkAvailable()
	for {
		select {
		case <-workAvailable:
			worker.DoWork()
		case f := <-mainThreadTask:
			worker.DoWork()
			f()
		case err := <-result:
			return err
		}
	}
}
