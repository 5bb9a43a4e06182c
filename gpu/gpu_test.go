// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fugu-gfx/fugu/gl/gltrace"
)

const (
	testVert = `#version 330
in vec2 pos;
in vec3 color;
uniform float time;
uniform vec3 tint;
out vec3 vcolor;
void main() {
	vcolor = color * tint;
	gl_Position = vec4(pos + vec2(time), 0.0, 1.0);
}`
	testFrag = `#version 330
in vec3 vcolor;
uniform sampler2D tex;
uniform sampler2D mask;
out vec4 fragColor;
void main() {
	fragColor = vec4(vcolor, 1.0) * texture(tex, vec2(0.0)) * texture(mask, vec2(0.0));
}`
)

func newTestContext(t *testing.T, opts ...Option) (*Context, *gltrace.Recorder) {
	t.Helper()
	r := gltrace.New()
	ctx, err := NewContext(r, opts...)
	require.NoError(t, err)
	return ctx, r
}

func testShaderDesc() ShaderDesc {
	return ShaderDesc{
		Vertex:   testVert,
		Fragment: testFrag,
		Uniforms: []Uniform{
			{Name: "time", Format: UniformFormatFloat1},
			{Name: "tint", Format: UniformFormatFloat3},
		},
		Images: []ImageUniform{{Name: "tex"}, {Name: "mask"}},
	}
}

func newTestShader(t *testing.T, ctx *Context) *Shader {
	t.Helper()
	sh, err := ctx.NewShader(testShaderDesc())
	require.NoError(t, err)
	return sh
}

func newTestPipeline(t *testing.T, ctx *Context) Pipeline {
	t.Helper()
	p, err := ctx.NewPipeline(PipelineDesc{
		Shader:  newTestShader(t, ctx),
		Buffers: []BufferLayout{{}},
		Attributes: []VertexAttribute{
			{Name: "pos", Format: VertexFormatFloat2},
			{Name: "color", Format: VertexFormatFloat3},
		},
	})
	require.NoError(t, err)
	return p
}

func newTestBuffer(t *testing.T, ctx *Context, kind BufferKind, size int) *Buffer {
	t.Helper()
	b, err := ctx.NewBufferWithData(kind, BufferUsageDynamic, make([]byte, size))
	require.NoError(t, err)
	return b
}
