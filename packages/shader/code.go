package shader

const vertexSourceTextured = `
ATTRIBUTE HIGHP vec2 position;
ATTRIBUTE HIGHP vec2 texCoord;

OUT HIGHP vec2 texCoordFrag;

uniform mat4 transform;

void main() {
  gl_Position = transform * vec4(position, 0.0, 1.0);
  texCoordFrag = vec2(texCoord.x, 1.0 - texCoord.y);
}
`

const fragmentSourceSimple = `
OUTPUT_COLOR_DECLARATION

IN HIGHP vec2 texCoordFrag;

uniform sampler2D textureData;

void main() {
  OUTPUT_COLOR = TEXTURE_LOOKUP(textureData, texCoordFrag);
}
`

const fragmentSourceTextured = `
OUTPUT_COLOR_DECLARATION

IN HIGHP vec2 texCoordFrag;

uniform sampler2D textureData;
uniform vec4 overlayColor;

uniform vec4 colorModulation;
uniform bool enableRepeat;

void main() {
  HIGHP vec2 texCoords = texCoordFrag;
  if (enableRepeat) {
    texCoords.x = fract(texCoords.x);
    texCoords.y = fract(texCoords.y);
  }

  vec4 baseColor = TEXTURE_LOOKUP(textureData, texCoords);
  vec4 modulated = baseColor * colorModulation;
  float targetAlpha = modulated.a;

  OUTPUT_COLOR =
    vec4(mix(modulated.rgb, overlayColor.rgb, overlayColor.a), targetAlpha);
}
`

const vertexSourceSolid = `
ATTRIBUTE vec2 position;
ATTRIBUTE vec4 color;

OUT vec4 colorFrag;

uniform mat4 transform;

void main() {
  SET_POINT_SIZE(1.0);
  gl_Position = transform * vec4(position, 0.0, 1.0);
  colorFrag = color;
}
`

const fragmentSourceSolid = `
OUTPUT_COLOR_DECLARATION

IN vec4 colorFrag;

void main() {
  OUTPUT_COLOR = colorFrag;
}
`

const vertexSourceWaterEffect = `
ATTRIBUTE vec2 position;
ATTRIBUTE vec2 texCoordMask;

OUT vec2 texCoordFrag;
OUT vec2 texCoordMaskFrag;

uniform mat4 transform;

void main() {
  SET_POINT_SIZE(1.0);
  vec4 transformedPos = transform * vec4(position, 0.0, 1.0);

  // normalized device coordinates to texture space, the sampled render
  // target covers the whole screen
  texCoordFrag = (transformedPos.xy + vec2(1.0, 1.0)) / 2.0;
  texCoordMaskFrag = vec2(texCoordMask.x, 1.0 - texCoordMask.y);

  gl_Position = transformedPos;
}
`

const fragmentSourceWaterEffect = `
OUTPUT_COLOR_DECLARATION

IN vec2 texCoordFrag;
IN vec2 texCoordMaskFrag;

uniform sampler2D textureData;
uniform sampler2D maskData;
uniform sampler2D colorMapData;

// row 0.5 of the color map holds the regular 16 color palette, row 0.0 the
// palette remapped for underwater areas
vec3 paletteColor(int index) {
  return TEXTURE_LOOKUP(colorMapData, vec2(float(index) / 16.0, 0.5)).rgb;
}

vec3 remappedColor(int index) {
  return TEXTURE_LOOKUP(colorMapData, vec2(float(index) / 16.0, 0.0)).rgb;
}

vec4 applyWaterEffect(vec4 color) {
  int index = 0;
  for (int i = 0; i < 16; ++i) {
    if (color.rgb == paletteColor(i)) {
      index = i;
    }
  }

  return vec4(remappedColor(index), color.a);
}

void main() {
  vec4 color = TEXTURE_LOOKUP(textureData, texCoordFrag);
  vec4 mask = TEXTURE_LOOKUP(maskData, texCoordMaskFrag);
  float maskValue = mask.r;
  OUTPUT_COLOR = mix(color, applyWaterEffect(color), maskValue);
}
`

var (
	texturedQuadAttributes = []AttributeDesc{
		{Name: "position", ValueCount: 2},
		{Name: "texCoord", ValueCount: 2},
	}

	solidColorAttributes = []AttributeDesc{
		{Name: "position", ValueCount: 2},
		{Name: "color", ValueCount: 4},
	}

	waterEffectAttributes = []AttributeDesc{
		{Name: "position", ValueCount: 2},
		{Name: "texCoordMask", ValueCount: 2},
	}
)

// Built-in programs. Texture coordinates are flipped vertically in the
// vertex stage, so textures are uploaded top row first.
var (
	// TexturedQuad draws textured quads with color modulation, a color
	// overlay and optional texture repeat.
	TexturedQuad = Spec{
		Name:           "textured-quad",
		Attributes:     texturedQuadAttributes,
		VertexSource:   vertexSourceTextured,
		FragmentSource: fragmentSourceTextured,
	}

	// SimpleTexturedQuad samples the texture without any effects.
	SimpleTexturedQuad = Spec{
		Name:           "simple-textured-quad",
		Attributes:     texturedQuadAttributes,
		VertexSource:   vertexSourceTextured,
		FragmentSource: fragmentSourceSimple,
	}

	// SolidColor draws points, lines and triangles with per-vertex colors.
	SolidColor = Spec{
		Name:           "solid-color",
		Attributes:     solidColorAttributes,
		VertexSource:   vertexSourceSolid,
		FragmentSource: fragmentSourceSolid,
	}

	// WaterEffect remaps palette colors of the screen behind a mask.
	WaterEffect = Spec{
		Name:           "water-effect",
		Attributes:     waterEffectAttributes,
		VertexSource:   vertexSourceWaterEffect,
		FragmentSource: fragmentSourceWaterEffect,
	}
)

// Builtins lists every built-in program.
var Builtins = []Spec{TexturedQuad, SimpleTexturedQuad, SolidColor, WaterEffect}
