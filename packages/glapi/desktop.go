//go:build !gles2

package glapi

import (
	"fmt"

	"github.com/leonkasovan/gl/v3.3-core/gl"
)

type desktop struct {
	profile Profile
	vao     uint32
}

// New loads the OpenGL entry points of the current context. The context
// must be current on the calling thread.
func New() (API, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initialize opengl: %w", err)
	}

	d := &desktop{
		profile: Profile{
			Version:  gl.GoStr(gl.GetString(gl.VERSION)),
			Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		},
	}

	var major int32
	gl.GetIntegerv(gl.MAJOR_VERSION, &major)
	if major >= 3 {
		var mask int32
		gl.GetIntegerv(gl.CONTEXT_PROFILE_MASK, &mask)
		d.profile.Core = mask&gl.CONTEXT_CORE_PROFILE_BIT != 0
	}

	// core profiles refuse vertex attribute setup without a bound array
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)

	return d, nil
}

func (d *desktop) Profile() Profile {
	return d.profile
}

func (d *desktop) CreateShader(stage Stage) Shader {
	kind := uint32(gl.VERTEX_SHADER)
	if stage == StageFragment {
		kind = gl.FRAGMENT_SHADER
	}
	return Shader(gl.CreateShader(kind))
}

func (d *desktop) ShaderSource(s Shader, source string) {
	csources, free := gl.Strs(source + "\x00")
	defer free()

	gl.ShaderSource(uint32(s), 1, csources, nil)
}

func (d *desktop) CompileShader(s Shader) {
	gl.CompileShader(uint32(s))
}

func (d *desktop) ShaderCompiled(s Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *desktop) ShaderInfoLog(s Shader) string {
	var size int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &size)
	if size <= 0 {
		return ""
	}

	var length int32
	str := make([]byte, size+1)
	gl.GetShaderInfoLog(uint32(s), size, &length, &str[0])
	return string(str[:length])
}

func (d *desktop) DeleteShader(s Shader) {
	gl.DeleteShader(uint32(s))
}

func (d *desktop) CreateProgram() Program {
	return Program(gl.CreateProgram())
}

func (d *desktop) AttachShader(p Program, s Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (d *desktop) BindAttribLocation(p Program, index int, name string) {
	gl.BindAttribLocation(uint32(p), uint32(index), gl.Str(name+"\x00"))
}

func (d *desktop) LinkProgram(p Program) {
	gl.LinkProgram(uint32(p))
}

func (d *desktop) ProgramLinked(p Program) bool {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *desktop) ProgramInfoLog(p Program) string {
	var size int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &size)
	if size <= 0 {
		return ""
	}

	var length int32
	str := make([]byte, size+1)
	gl.GetProgramInfoLog(uint32(p), size, &length, &str[0])
	return string(str[:length])
}

func (d *desktop) DeleteProgram(p Program) {
	gl.DeleteProgram(uint32(p))
}

func (d *desktop) UseProgram(p Program) {
	gl.UseProgram(uint32(p))
}

func (d *desktop) UniformLocation(p Program, name string) Uniform {
	return Uniform(gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00")))
}

func (d *desktop) Uniform1i(u Uniform, v int) {
	gl.Uniform1i(int32(u), int32(v))
}

func (d *desktop) Uniform4f(u Uniform, v [4]float32) {
	gl.Uniform4f(int32(u), v[0], v[1], v[2], v[3])
}

func (d *desktop) UniformMatrix4(u Uniform, m [16]float32) {
	gl.UniformMatrix4fv(int32(u), 1, false, &m[0])
}

func (d *desktop) EnableVertexAttribArray(index int) {
	gl.EnableVertexAttribArray(uint32(index))
}

func (d *desktop) VertexAttribPointer(index, size, stride, offset int) {
	gl.VertexAttribPointerWithOffset(uint32(index), int32(size), gl.FLOAT, false, int32(stride), uintptr(offset))
}

func (d *desktop) CreateBuffer() Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return Buffer(b)
}

func (d *desktop) BindArrayBuffer(b Buffer) {
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
}

func (d *desktop) BufferData(data []byte) {
	if len(data) == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STREAM_DRAW)
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(data), gl.Ptr(data), gl.STREAM_DRAW)
}

func (d *desktop) DeleteBuffer(b Buffer) {
	handle := uint32(b)
	gl.DeleteBuffers(1, &handle)
}

func (d *desktop) CreateTexture() Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return Texture(t)
}

func (d *desktop) BindTexture(unit int, t Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

func (d *desktop) TexImage2D(width, height int, pixels []byte) {
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if pixels == nil {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	} else {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	}

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

func (d *desktop) SetTextureFilter(f Filter) {
	var interp int32 = gl.NEAREST
	if f == FilterLinear {
		interp = gl.LINEAR
	}

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, interp)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, interp)
}

func (d *desktop) DeleteTexture(t Texture) {
	handle := uint32(t)
	gl.DeleteTextures(1, &handle)
}

func (d *desktop) CreateFramebuffer() Framebuffer {
	var fb uint32
	gl.GenFramebuffers(1, &fb)
	return Framebuffer(fb)
}

func (d *desktop) BindFramebuffer(fb Framebuffer) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(fb))
}

func (d *desktop) AttachTexture(t Texture) error {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, uint32(t), 0)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return incompleteFramebuffer(status)
	}
	return nil
}

func (d *desktop) DeleteFramebuffer(fb Framebuffer) {
	handle := uint32(fb)
	gl.DeleteFramebuffers(1, &handle)
}

func (d *desktop) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (d *desktop) Scissor(x, y, width, height int) {
	gl.Scissor(int32(x), int32(y), int32(width), int32(height))
}

func (d *desktop) SetScissorEnabled(enabled bool) {
	if enabled {
		gl.Enable(gl.SCISSOR_TEST)
	} else {
		gl.Disable(gl.SCISSOR_TEST)
	}
}

func (d *desktop) EnableAlphaBlending() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

func (d *desktop) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *desktop) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (d *desktop) DrawArrays(mode Primitive, first, count int) {
	gl.DrawArrays(desktopPrimitive(mode), int32(first), int32(count))
}

func (d *desktop) Err() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return Error(code)
	}
	return nil
}

func desktopPrimitive(mode Primitive) uint32 {
	switch mode {
	case Lines:
		return gl.LINES
	case Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}
