//go:build gles2

package glapi

import "golang.org/x/mobile/gl"

type gles struct {
	ctx     gl.Context
	profile Profile
}

// New wraps an x/mobile GL context. The returned API must only be used
// while the context's worker is being serviced, see gl.NewContext.
func New(ctx gl.Context) (API, error) {
	return &gles{
		ctx: ctx,
		profile: Profile{
			ES:       true,
			Version:  ctx.GetString(gl.VERSION),
			Renderer: ctx.GetString(gl.RENDERER),
		},
	}, nil
}

func (g *gles) Profile() Profile {
	return g.profile
}

func program(p Program) gl.Program {
	return gl.Program{Init: true, Value: uint32(p)}
}

func (g *gles) CreateShader(stage Stage) Shader {
	kind := gl.Enum(gl.VERTEX_SHADER)
	if stage == StageFragment {
		kind = gl.FRAGMENT_SHADER
	}
	return Shader(g.ctx.CreateShader(kind).Value)
}

func (g *gles) ShaderSource(s Shader, source string) {
	g.ctx.ShaderSource(gl.Shader{Value: uint32(s)}, source)
}

func (g *gles) CompileShader(s Shader) {
	g.ctx.CompileShader(gl.Shader{Value: uint32(s)})
}

func (g *gles) ShaderCompiled(s Shader) bool {
	return g.ctx.GetShaderi(gl.Shader{Value: uint32(s)}, gl.COMPILE_STATUS) != gl.FALSE
}

func (g *gles) ShaderInfoLog(s Shader) string {
	return g.ctx.GetShaderInfoLog(gl.Shader{Value: uint32(s)})
}

func (g *gles) DeleteShader(s Shader) {
	g.ctx.DeleteShader(gl.Shader{Value: uint32(s)})
}

func (g *gles) CreateProgram() Program {
	return Program(g.ctx.CreateProgram().Value)
}

func (g *gles) AttachShader(p Program, s Shader) {
	g.ctx.AttachShader(program(p), gl.Shader{Value: uint32(s)})
}

func (g *gles) BindAttribLocation(p Program, index int, name string) {
	g.ctx.BindAttribLocation(program(p), gl.Attrib{Value: uint(index)}, name)
}

func (g *gles) LinkProgram(p Program) {
	g.ctx.LinkProgram(program(p))
}

func (g *gles) ProgramLinked(p Program) bool {
	return g.ctx.GetProgrami(program(p), gl.LINK_STATUS) != gl.FALSE
}

func (g *gles) ProgramInfoLog(p Program) string {
	return g.ctx.GetProgramInfoLog(program(p))
}

func (g *gles) DeleteProgram(p Program) {
	g.ctx.DeleteProgram(program(p))
}

func (g *gles) UseProgram(p Program) {
	g.ctx.UseProgram(program(p))
}

func (g *gles) UniformLocation(p Program, name string) Uniform {
	return Uniform(g.ctx.GetUniformLocation(program(p), name).Value)
}

func (g *gles) Uniform1i(u Uniform, v int) {
	g.ctx.Uniform1i(gl.Uniform{Value: int32(u)}, v)
}

func (g *gles) Uniform4f(u Uniform, v [4]float32) {
	g.ctx.Uniform4f(gl.Uniform{Value: int32(u)}, v[0], v[1], v[2], v[3])
}

func (g *gles) UniformMatrix4(u Uniform, m [16]float32) {
	g.ctx.UniformMatrix4fv(gl.Uniform{Value: int32(u)}, m[:])
}

func (g *gles) EnableVertexAttribArray(index int) {
	g.ctx.EnableVertexAttribArray(gl.Attrib{Value: uint(index)})
}

func (g *gles) VertexAttribPointer(index, size, stride, offset int) {
	g.ctx.VertexAttribPointer(gl.Attrib{Value: uint(index)}, size, gl.FLOAT, false, stride, offset)
}

func (g *gles) CreateBuffer() Buffer {
	return Buffer(g.ctx.CreateBuffer().Value)
}

func (g *gles) BindArrayBuffer(b Buffer) {
	g.ctx.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{Value: uint32(b)})
}

func (g *gles) BufferData(data []byte) {
	g.ctx.BufferData(gl.ARRAY_BUFFER, data, gl.STREAM_DRAW)
}

func (g *gles) DeleteBuffer(b Buffer) {
	g.ctx.DeleteBuffer(gl.Buffer{Value: uint32(b)})
}

func (g *gles) CreateTexture() Texture {
	return Texture(g.ctx.CreateTexture().Value)
}

func (g *gles) BindTexture(unit int, t Texture) {
	g.ctx.ActiveTexture(gl.TEXTURE0 + gl.Enum(unit))
	g.ctx.BindTexture(gl.TEXTURE_2D, gl.Texture{Value: uint32(t)})
}

func (g *gles) TexImage2D(width, height int, pixels []byte) {
	g.ctx.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, gl.RGBA, gl.UNSIGNED_BYTE, pixels)
	g.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	g.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

func (g *gles) SetTextureFilter(f Filter) {
	interp := gl.NEAREST
	if f == FilterLinear {
		interp = gl.LINEAR
	}

	g.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, interp)
	g.ctx.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, interp)
}

func (g *gles) DeleteTexture(t Texture) {
	g.ctx.DeleteTexture(gl.Texture{Value: uint32(t)})
}

func (g *gles) CreateFramebuffer() Framebuffer {
	return Framebuffer(g.ctx.CreateFramebuffer().Value)
}

func (g *gles) BindFramebuffer(fb Framebuffer) {
	g.ctx.BindFramebuffer(gl.FRAMEBUFFER, gl.Framebuffer{Value: uint32(fb)})
}

func (g *gles) AttachTexture(t Texture) error {
	g.ctx.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, gl.Texture{Value: uint32(t)}, 0)

	if status := g.ctx.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return incompleteFramebuffer(uint32(status))
	}
	return nil
}

func (g *gles) DeleteFramebuffer(fb Framebuffer) {
	g.ctx.DeleteFramebuffer(gl.Framebuffer{Value: uint32(fb)})
}

func (g *gles) Viewport(x, y, width, height int) {
	g.ctx.Viewport(x, y, width, height)
}

func (g *gles) Scissor(x, y, width, height int) {
	g.ctx.Scissor(int32(x), int32(y), int32(width), int32(height))
}

func (g *gles) SetScissorEnabled(enabled bool) {
	if enabled {
		g.ctx.Enable(gl.SCISSOR_TEST)
	} else {
		g.ctx.Disable(gl.SCISSOR_TEST)
	}
}

func (g *gles) EnableAlphaBlending() {
	g.ctx.Enable(gl.BLEND)
	g.ctx.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

func (g *gles) ClearColor(red, green, blue, alpha float32) {
	g.ctx.ClearColor(red, green, blue, alpha)
}

func (g *gles) Clear() {
	g.ctx.Clear(gl.COLOR_BUFFER_BIT)
}

func (g *gles) DrawArrays(mode Primitive, first, count int) {
	g.ctx.DrawArrays(glesPrimitive(mode), first, count)
}

func (g *gles) Err() error {
	if code := g.ctx.GetError(); code != gl.NO_ERROR {
		return Error(code)
	}
	return nil
}

func glesPrimitive(mode Primitive) gl.Enum {
	switch mode {
	case Lines:
		return gl.LINES
	case Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}
