package shader

import (
	"fmt"

	"github.com/ikemen-engine/presenter/packages/glapi"
)

// CompilationError reports a shader stage the driver rejected. Log holds
// the driver's info log and may be empty.
type CompilationError struct {
	Stage glapi.Stage
	Log   string
}

func (e *CompilationError) Error() string {
	if e.Log == "" {
		return fmt.Sprintf("%s shader compilation failed, but could not get info log", e.Stage)
	}
	return fmt.Sprintf("%s shader compilation failed:\n\n%s", e.Stage, e.Log)
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	if e.Log == "" {
		return "shader program linking failed, but could not get info log"
	}
	return "shader program linking failed:\n\n" + e.Log
}
