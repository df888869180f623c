// Package glapitest provides an in-memory glapi.API for tests. It tracks
// objects and state like a driver would but draws nothing.
package glapitest

import (
	"github.com/ikemen-engine/presenter/packages/glapi"
)

type ShaderObject struct {
	Stage    glapi.Stage
	Source   string
	Compiled bool
	Deleted  bool
}

type ProgramObject struct {
	Shaders []glapi.Shader
	// Attributes maps bound attribute indices to names.
	Attributes map[int]string
	Linked     bool
	Deleted    bool
	Uniforms   map[string]any
}

type TextureObject struct {
	Width, Height int
	Pixels        []byte
	Filter        glapi.Filter
	Deleted       bool
}

type FramebufferObject struct {
	Texture glapi.Texture
	Deleted bool
}

type BufferObject struct {
	Data    []byte
	Deleted bool
}

type AttribPointer struct {
	Size, Stride, Offset int
}

// Draw is a recorded DrawArrays call together with the state it used.
type Draw struct {
	Mode        glapi.Primitive
	First       int
	Count       int
	Program     glapi.Program
	Framebuffer glapi.Framebuffer
	Texture     glapi.Texture
	Viewport    [4]int
	Scissor     *[4]int
	Vertices    []byte
}

type uniformKey struct {
	program glapi.Program
	name    string
}

type API struct {
	ProfileValue glapi.Profile

	// FailCompile makes compilation of the given stages fail with
	// CompileLog as info log.
	FailCompile map[glapi.Stage]bool
	CompileLog  string
	// FailLink makes linking fail with LinkLog as info log.
	FailLink bool
	LinkLog  string
	// IncompleteFramebuffers makes AttachTexture fail.
	IncompleteFramebuffers bool
	// PendingErr is returned once by Err.
	PendingErr error

	Shaders      map[glapi.Shader]*ShaderObject
	Programs     map[glapi.Program]*ProgramObject
	Textures     map[glapi.Texture]*TextureObject
	Framebuffers map[glapi.Framebuffer]*FramebufferObject
	Buffers      map[glapi.Buffer]*BufferObject

	CurrentProgram     glapi.Program
	CurrentFramebuffer glapi.Framebuffer
	CurrentBuffer      glapi.Buffer
	ActiveUnit         int
	BoundTextures      map[int]glapi.Texture

	EnabledAttribs map[int]bool
	AttribPointers map[int]AttribPointer

	ViewportRect   [4]int
	ScissorRect    [4]int
	ScissorEnabled bool
	Blending       bool
	ClearRGBA      [4]float32
	// Clears records the framebuffer of every Clear call.
	Clears []glapi.Framebuffer
	Draws  []Draw

	// UniformLookups counts UniformLocation calls.
	UniformLookups int

	next      uint32
	locations map[uniformKey]glapi.Uniform
	names     map[glapi.Uniform]uniformKey
}

var _ glapi.API = (*API)(nil)

func New() *API {
	return &API{
		FailCompile:    map[glapi.Stage]bool{},
		Shaders:        map[glapi.Shader]*ShaderObject{},
		Programs:       map[glapi.Program]*ProgramObject{},
		Textures:       map[glapi.Texture]*TextureObject{},
		Framebuffers:   map[glapi.Framebuffer]*FramebufferObject{},
		Buffers:        map[glapi.Buffer]*BufferObject{},
		BoundTextures:  map[int]glapi.Texture{},
		EnabledAttribs: map[int]bool{},
		AttribPointers: map[int]AttribPointer{},
		locations:      map[uniformKey]glapi.Uniform{},
		names:          map[glapi.Uniform]uniformKey{},
	}
}

func (f *API) handle() uint32 {
	f.next++
	return f.next
}

// UniformValue returns the last value written to the named uniform of p.
func (f *API) UniformValue(p glapi.Program, name string) any {
	return f.Programs[p].Uniforms[name]
}

// LiveTextures counts textures that were created and not deleted.
func (f *API) LiveTextures() int {
	var n int
	for _, t := range f.Textures {
		if !t.Deleted {
			n++
		}
	}
	return n
}

func (f *API) LiveFramebuffers() int {
	var n int
	for _, fb := range f.Framebuffers {
		if !fb.Deleted {
			n++
		}
	}
	return n
}

func (f *API) LivePrograms() int {
	var n int
	for _, p := range f.Programs {
		if !p.Deleted {
			n++
		}
	}
	return n
}

func (f *API) Profile() glapi.Profile {
	return f.ProfileValue
}

func (f *API) CreateShader(stage glapi.Stage) glapi.Shader {
	s := glapi.Shader(f.handle())
	f.Shaders[s] = &ShaderObject{Stage: stage}
	return s
}

func (f *API) ShaderSource(s glapi.Shader, source string) {
	f.Shaders[s].Source = source
}

func (f *API) CompileShader(s glapi.Shader) {
	obj := f.Shaders[s]
	obj.Compiled = !f.FailCompile[obj.Stage]
}

func (f *API) ShaderCompiled(s glapi.Shader) bool {
	return f.Shaders[s].Compiled
}

func (f *API) ShaderInfoLog(s glapi.Shader) string {
	if f.Shaders[s].Compiled {
		return ""
	}
	return f.CompileLog
}

func (f *API) DeleteShader(s glapi.Shader) {
	f.Shaders[s].Deleted = true
}

func (f *API) CreateProgram() glapi.Program {
	p := glapi.Program(f.handle())
	f.Programs[p] = &ProgramObject{
		Attributes: map[int]string{},
		Uniforms:   map[string]any{},
	}
	return p
}

func (f *API) AttachShader(p glapi.Program, s glapi.Shader) {
	obj := f.Programs[p]
	obj.Shaders = append(obj.Shaders, s)
}

func (f *API) BindAttribLocation(p glapi.Program, index int, name string) {
	f.Programs[p].Attributes[index] = name
}

func (f *API) LinkProgram(p glapi.Program) {
	f.Programs[p].Linked = !f.FailLink
}

func (f *API) ProgramLinked(p glapi.Program) bool {
	return f.Programs[p].Linked
}

func (f *API) ProgramInfoLog(p glapi.Program) string {
	if f.Programs[p].Linked {
		return ""
	}
	return f.LinkLog
}

func (f *API) DeleteProgram(p glapi.Program) {
	if obj, ok := f.Programs[p]; ok {
		obj.Deleted = true
	}
}

func (f *API) UseProgram(p glapi.Program) {
	f.CurrentProgram = p
}

func (f *API) UniformLocation(p glapi.Program, name string) glapi.Uniform {
	f.UniformLookups++

	key := uniformKey{program: p, name: name}
	if u, ok := f.locations[key]; ok {
		return u
	}

	u := glapi.Uniform(len(f.locations))
	f.locations[key] = u
	f.names[u] = key
	return u
}

func (f *API) setUniform(u glapi.Uniform, value any) {
	key, ok := f.names[u]
	if !ok || key.program != f.CurrentProgram {
		return
	}
	f.Programs[key.program].Uniforms[key.name] = value
}

func (f *API) Uniform1i(u glapi.Uniform, v int) {
	f.setUniform(u, v)
}

func (f *API) Uniform4f(u glapi.Uniform, v [4]float32) {
	f.setUniform(u, v)
}

func (f *API) UniformMatrix4(u glapi.Uniform, m [16]float32) {
	f.setUniform(u, m)
}

func (f *API) EnableVertexAttribArray(index int) {
	f.EnabledAttribs[index] = true
}

func (f *API) VertexAttribPointer(index, size, stride, offset int) {
	f.AttribPointers[index] = AttribPointer{Size: size, Stride: stride, Offset: offset}
}

func (f *API) CreateBuffer() glapi.Buffer {
	b := glapi.Buffer(f.handle())
	f.Buffers[b] = &BufferObject{}
	return b
}

func (f *API) BindArrayBuffer(b glapi.Buffer) {
	f.CurrentBuffer = b
}

func (f *API) BufferData(data []byte) {
	if obj, ok := f.Buffers[f.CurrentBuffer]; ok {
		obj.Data = append([]byte(nil), data...)
	}
}

func (f *API) DeleteBuffer(b glapi.Buffer) {
	f.Buffers[b].Deleted = true
}

func (f *API) CreateTexture() glapi.Texture {
	t := glapi.Texture(f.handle())
	f.Textures[t] = &TextureObject{}
	return t
}

func (f *API) BindTexture(unit int, t glapi.Texture) {
	f.ActiveUnit = unit
	f.BoundTextures[unit] = t
}

func (f *API) bound() *TextureObject {
	return f.Textures[f.BoundTextures[f.ActiveUnit]]
}

func (f *API) TexImage2D(width, height int, pixels []byte) {
	t := f.bound()
	t.Width, t.Height = width, height
	t.Pixels = append([]byte(nil), pixels...)
}

func (f *API) SetTextureFilter(filter glapi.Filter) {
	f.bound().Filter = filter
}

func (f *API) DeleteTexture(t glapi.Texture) {
	f.Textures[t].Deleted = true
}

func (f *API) CreateFramebuffer() glapi.Framebuffer {
	fb := glapi.Framebuffer(f.handle())
	f.Framebuffers[fb] = &FramebufferObject{}
	return fb
}

func (f *API) BindFramebuffer(fb glapi.Framebuffer) {
	f.CurrentFramebuffer = fb
}

func (f *API) AttachTexture(t glapi.Texture) error {
	f.Framebuffers[f.CurrentFramebuffer].Texture = t
	if f.IncompleteFramebuffers {
		return glapi.ErrIncompleteFramebuffer
	}
	return nil
}

func (f *API) DeleteFramebuffer(fb glapi.Framebuffer) {
	f.Framebuffers[fb].Deleted = true
}

func (f *API) Viewport(x, y, width, height int) {
	f.ViewportRect = [4]int{x, y, width, height}
}

func (f *API) Scissor(x, y, width, height int) {
	f.ScissorRect = [4]int{x, y, width, height}
}

func (f *API) SetScissorEnabled(enabled bool) {
	f.ScissorEnabled = enabled
}

func (f *API) EnableAlphaBlending() {
	f.Blending = true
}

func (f *API) ClearColor(r, g, b, a float32) {
	f.ClearRGBA = [4]float32{r, g, b, a}
}

func (f *API) Clear() {
	f.Clears = append(f.Clears, f.CurrentFramebuffer)
}

func (f *API) DrawArrays(mode glapi.Primitive, first, count int) {
	d := Draw{
		Mode:        mode,
		First:       first,
		Count:       count,
		Program:     f.CurrentProgram,
		Framebuffer: f.CurrentFramebuffer,
		Texture:     f.BoundTextures[0],
		Viewport:    f.ViewportRect,
	}

	if f.ScissorEnabled {
		scissor := f.ScissorRect
		d.Scissor = &scissor
	}

	if b, ok := f.Buffers[f.CurrentBuffer]; ok {
		d.Vertices = b.Data
	}

	f.Draws = append(f.Draws, d)
}

func (f *API) Err() error {
	err := f.PendingErr
	f.PendingErr = nil
	return err
}
