package shader

import "github.com/ikemen-engine/presenter/packages/glapi"

//go:generate go tool stringer -type=Dialect -trimprefix=Dialect

// Dialect is the GLSL flavour shader sources are compiled as. Sources are
// written once against the macros defined by each dialect's preamble.
type Dialect int

const (
	// DialectGLSL130 is used for desktop contexts. GLSL 1.30 ships with
	// OpenGL 3.0, which keeps older hardware working.
	DialectGLSL130 Dialect = iota
	// DialectGLSL150 is used for core profile contexts. macOS offers no
	// GLSL 1.30 there.
	DialectGLSL150
	// DialectGLSLES100 is used for OpenGL ES 2.0 contexts.
	DialectGLSLES100
)

var preambles = [...]string{
	DialectGLSL130: `#version 130

#define ATTRIBUTE in
#define OUT out
#define IN in
#define TEXTURE_LOOKUP texture2D
#define OUTPUT_COLOR outputColor
#define OUTPUT_COLOR_DECLARATION out vec4 outputColor;
#define SET_POINT_SIZE(size)
#define HIGHP
`,

	DialectGLSL150: `#version 150

#define ATTRIBUTE in
#define OUT out
#define IN in
#define TEXTURE_LOOKUP texture
#define OUTPUT_COLOR outputColor
#define OUTPUT_COLOR_DECLARATION out vec4 outputColor;
#define SET_POINT_SIZE(size)
#define HIGHP
`,

	DialectGLSLES100: `#version 100

#define ATTRIBUTE attribute
#define OUT varying
#define IN varying
#define TEXTURE_LOOKUP texture2D
#define OUTPUT_COLOR gl_FragColor
#define OUTPUT_COLOR_DECLARATION
#define SET_POINT_SIZE(size) gl_PointSize = size;
#define HIGHP highp

precision mediump float;
`,
}

// Preamble returns the text prepended to every shader stage. The version
// directive is on the first line, as GLSL requires.
func (d Dialect) Preamble() string {
	if d < 0 || int(d) >= len(preambles) {
		return preambles[DialectGLSL130]
	}
	return preambles[d]
}

// DetectDialect picks the dialect for a context. It is meant to be called
// once after the context was created.
func DetectDialect(p glapi.Profile) Dialect {
	switch {
	case p.ES:
		return DialectGLSLES100
	case p.Core:
		return DialectGLSL150
	default:
		return DialectGLSL130
	}
}
