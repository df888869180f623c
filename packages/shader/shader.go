// Package shader compiles GLSL programs written once against a small set
// of preprocessor macros, so the same source builds as GLSL 1.30, GLSL 1.50
// or GLSL ES 1.00.
package shader

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/ikemen-engine/presenter/packages/glapi"
	"github.com/ikemen-engine/presenter/packages/logging"
)

const bytesPerFloat = 4

// AttributeDesc names a vertex attribute and its number of float values.
type AttributeDesc struct {
	Name       string
	ValueCount int
}

// Spec is the source of a shader program. Attribute i is bound to
// location i and vertices interleave the attributes in that order.
type Spec struct {
	Name           string
	Attributes     []AttributeDesc
	VertexSource   string
	FragmentSource string
}

// Layout returns the byte stride of an interleaved vertex and the byte
// offset of each attribute within it.
func Layout(attrs []AttributeDesc) (stride int, offsets []int) {
	offsets = make([]int, len(attrs))
	for i, attr := range attrs {
		offsets[i] = stride
		stride += attr.ValueCount * bytesPerFloat
	}
	return stride, offsets
}

// Shader is a linked program together with its vertex layout.
type Shader struct {
	api     glapi.API
	name    string
	program glapi.Program

	attributes []AttributeDesc
	stride     int
	offsets    []int

	locations map[string]glapi.Uniform
}

// New compiles both stages of spec in the given dialect and links them.
// Compilation problems are returned as *CompilationError, link problems as
// *LinkError.
func New(api glapi.API, dialect Dialect, spec Spec) (*Shader, error) {
	preamble := dialect.Preamble()

	vertex, err := compile(api, glapi.StageVertex, preamble+spec.VertexSource)
	if err != nil {
		return nil, err
	}

	fragment, err := compile(api, glapi.StageFragment, preamble+spec.FragmentSource)
	if err != nil {
		api.DeleteShader(vertex)
		return nil, err
	}

	program, err := link(api, spec.Attributes, vertex, fragment)
	if err != nil {
		return nil, err
	}

	stride, offsets := Layout(spec.Attributes)

	logging.Logger().Debug("shader program linked",
		slog.String("name", spec.Name),
		slog.String("dialect", dialect.String()),
	)

	return &Shader{
		api:        api,
		name:       spec.Name,
		program:    program,
		attributes: spec.Attributes,
		stride:     stride,
		offsets:    offsets,
		locations:  make(map[string]glapi.Uniform),
	}, nil
}

func compile(api glapi.API, stage glapi.Stage, source string) (glapi.Shader, error) {
	shader := api.CreateShader(stage)
	api.ShaderSource(shader, source)
	api.CompileShader(shader)

	if !api.ShaderCompiled(shader) {
		log := api.ShaderInfoLog(shader)
		api.DeleteShader(shader)
		return 0, &CompilationError{Stage: stage, Log: log}
	}

	return shader, nil
}

func link(api glapi.API, attrs []AttributeDesc, shaders ...glapi.Shader) (glapi.Program, error) {
	program := api.CreateProgram()
	for _, shader := range shaders {
		api.AttachShader(program, shader)
	}

	for index, attr := range attrs {
		api.BindAttribLocation(program, index, attr.Name)
	}

	api.LinkProgram(program)

	// the program keeps the shaders alive as long as it needs them
	for _, shader := range shaders {
		api.DeleteShader(shader)
	}

	if !api.ProgramLinked(program) {
		log := api.ProgramInfoLog(program)
		api.DeleteProgram(program)
		return 0, &LinkError{Log: log}
	}

	return program, nil
}

func (s *Shader) Name() string {
	return s.name
}

// Stride is the byte size of one interleaved vertex.
func (s *Shader) Stride() int {
	return s.stride
}

// Use makes the program current and points its attributes at the bound
// array buffer.
func (s *Shader) Use() {
	s.api.UseProgram(s.program)

	for index, attr := range s.attributes {
		s.api.EnableVertexAttribArray(index)
		s.api.VertexAttribPointer(index, attr.ValueCount, s.stride, s.offsets[index])
	}
}

// Location returns the location of a uniform. Lookups are cached for the
// lifetime of the program.
func (s *Shader) Location(name string) glapi.Uniform {
	if location, ok := s.locations[name]; ok {
		return location
	}

	location := s.api.UniformLocation(s.program, name)
	s.locations[name] = location
	return location
}

// The setters below write to the program made current by Use.

func (s *Shader) SetInt(name string, value int) {
	s.api.Uniform1i(s.Location(name), value)
}

func (s *Shader) SetBool(name string, value bool) {
	var v int
	if value {
		v = 1
	}
	s.SetInt(name, v)
}

func (s *Shader) SetVec4(name string, value mgl32.Vec4) {
	s.api.Uniform4f(s.Location(name), value)
}

func (s *Shader) SetMat4(name string, value mgl32.Mat4) {
	s.api.UniformMatrix4(s.Location(name), value)
}

// Release deletes the program. Calling it more than once is a no-op.
func (s *Shader) Release() {
	if s.program == 0 {
		return
	}

	s.api.DeleteProgram(s.program)
	s.program = 0
}
