// Package glapi is the narrow slice of OpenGL the presenter needs. The
// desktop backend binds go-gl (OpenGL 3.x), the gles2 build tag selects an
// OpenGL ES 2.0 backend on golang.org/x/mobile/gl.
//
// All methods must be called on the thread owning the GL context.
package glapi

import "fmt"

// Object handles. Zero is never a valid object, except for Framebuffer
// where zero names the window's default framebuffer.
type (
	Shader      uint32
	Program     uint32
	Buffer      uint32
	Texture     uint32
	Framebuffer uint32
)

// Uniform is a uniform location. -1 means the uniform is not active, GL
// silently ignores writes to it.
type Uniform int32

// DefaultFramebuffer is the window surface.
const DefaultFramebuffer Framebuffer = 0

type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Filter is the sampling filter of a texture, for both minification and
// magnification.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

type Primitive int

const (
	Triangles Primitive = iota
	Lines
	Points
)

// Profile describes the context that was created.
type Profile struct {
	// ES is set for OpenGL ES contexts.
	ES bool
	// Core is set for core profile contexts, which is the only kind macOS
	// offers beyond OpenGL 2.1.
	Core bool

	Version  string
	Renderer string
}

// Error is a GL error code as returned by glGetError.
type Error uint32

func (e Error) Error() string {
	return fmt.Sprintf("gl error 0x%04x", uint32(e))
}

// API is implemented by the backends and by test fakes.
type API interface {
	Profile() Profile

	CreateShader(stage Stage) Shader
	ShaderSource(s Shader, source string)
	CompileShader(s Shader)
	ShaderCompiled(s Shader) bool
	ShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	BindAttribLocation(p Program, index int, name string)
	LinkProgram(p Program)
	ProgramLinked(p Program) bool
	ProgramInfoLog(p Program) string
	DeleteProgram(p Program)
	UseProgram(p Program)
	UniformLocation(p Program, name string) Uniform

	Uniform1i(u Uniform, v int)
	Uniform4f(u Uniform, v [4]float32)
	UniformMatrix4(u Uniform, m [16]float32)

	EnableVertexAttribArray(index int)
	// VertexAttribPointer describes index as size float values at offset
	// bytes into each stride byte vertex of the bound array buffer.
	VertexAttribPointer(index, size, stride, offset int)

	CreateBuffer() Buffer
	BindArrayBuffer(b Buffer)
	// BufferData replaces the content of the bound array buffer.
	BufferData(data []byte)
	DeleteBuffer(b Buffer)

	CreateTexture() Texture
	BindTexture(unit int, t Texture)
	// TexImage2D uploads RGBA pixels to the texture bound on the active
	// unit. nil pixels allocate storage only.
	TexImage2D(width, height int, pixels []byte)
	SetTextureFilter(f Filter)
	DeleteTexture(t Texture)

	CreateFramebuffer() Framebuffer
	BindFramebuffer(fb Framebuffer)
	// AttachTexture attaches t as the color buffer of the bound framebuffer
	// and returns ErrIncompleteFramebuffer if the result is unusable.
	AttachTexture(t Texture) error
	DeleteFramebuffer(fb Framebuffer)

	Viewport(x, y, width, height int)
	Scissor(x, y, width, height int)
	SetScissorEnabled(enabled bool)
	EnableAlphaBlending()
	ClearColor(r, g, b, a float32)
	Clear()
	DrawArrays(mode Primitive, first, count int)

	// Err returns the oldest pending GL error, or nil.
	Err() error
}
