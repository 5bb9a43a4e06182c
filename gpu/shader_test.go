// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"testing"

	"gioui.org/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fugu-gfx/fugu/gl"
	"github.com/fugu-gfx/fugu/gl/gltrace"
)

func TestNewShader(t *testing.T) {
	ctx, r := newTestContext(t)
	sh := newTestShader(t, ctx)
	assert.Equal(t, []Uniform{
		{Name: "time", Format: UniformFormatFloat1},
		{Name: "tint", Format: UniformFormatFloat3},
	}, sh.Uniforms())
	assert.Equal(t, []ImageUniform{{Name: "tex"}, {Name: "mask"}}, sh.Images())
	assert.Equal(t, 16, sh.UniformSize())
	// Locations are resolved in declaration order.
	assert.Equal(t, []string{
		`GetUniformLocation(4, "time")`,
		`GetUniformLocation(4, "tint")`,
		`GetUniformLocation(4, "tex")`,
		`GetUniformLocation(4, "mask")`,
	}, r.Log("GetUniformLocation"))
	assert.Equal(t, 1, r.Live(gltrace.KindProgram))
	assert.Zero(t, r.Live(gltrace.KindShader))
}

func TestNewShaderUniformNotFound(t *testing.T) {
	ctx, r := newTestContext(t)
	desc := testShaderDesc()
	desc.Uniforms = append(desc.Uniforms, Uniform{Name: "missing", Format: UniformFormatFloat4})
	_, err := ctx.NewShader(desc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUniformNotFound))
	assert.Contains(t, err.Error(), `"missing"`)
	assert.Zero(t, r.Live(gltrace.KindProgram))

	desc = testShaderDesc()
	desc.Images = []ImageUniform{{Name: "nope"}}
	_, err = ctx.NewShader(desc)
	assert.True(t, errors.Is(err, ErrUniformNotFound))
	assert.Zero(t, r.Live(gltrace.KindProgram))
}

func TestNewShaderCompileError(t *testing.T) {
	ctx, r := newTestContext(t)
	r.CompileLog = func(stage gl.Enum, src string) string {
		if stage == gl.VERTEX_SHADER {
			return "0:3(12): error: `positon' undeclared"
		}
		return ""
	}
	_, err := ctx.NewShader(testShaderDesc())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShaderCompile))
	var cerr *ShaderCompileError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "0:3(12): error: `positon' undeclared", cerr.Log)
	assert.Equal(t, gl.Enum(gl.VERTEX_SHADER), cerr.Stage)
}

func TestNewShaderLinkError(t *testing.T) {
	ctx, r := newTestContext(t)
	r.LinkLog = func(vs, fs string) string {
		return "error: vcolor not written"
	}
	_, err := ctx.NewShader(testShaderDesc())
	var lerr *ShaderLinkError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, "error: vcolor not written", lerr.Log)
	assert.True(t, errors.Is(err, ErrShaderLink))
	assert.Zero(t, r.Live(gltrace.KindProgram))
}

func TestNewShaderCreationFailure(t *testing.T) {
	ctx, r := newTestContext(t)
	r.FailCreate = true
	_, err := ctx.NewShader(testShaderDesc())
	assert.True(t, errors.Is(err, ErrResourceCreation))
}

func TestNewShaderFromSources(t *testing.T) {
	vert := shader.Sources{
		Name:      "quad.vert",
		GLSL150:   testVert,
		GLSL100ES: "#version 100\n" + testVert,
		Uniforms: shader.UniformsReflection{
			Locations: []shader.UniformLocation{
				{Name: "time", Type: shader.DataTypeFloat, Size: 1},
				{Name: "tint", Type: shader.DataTypeFloat, Size: 3, Offset: 4},
			},
			Size: 16,
		},
	}
	frag := shader.Sources{
		Name:      "quad.frag",
		GLSL150:   testFrag,
		GLSL100ES: "#version 100\n" + testFrag,
		Textures: []shader.TextureBinding{
			{Name: "mask", Binding: 1},
			{Name: "tex", Binding: 0},
		},
	}
	tests := []struct {
		version string
		prefix  string
	}{
		{"3.3 gltrace", "#version 330"},
		{"OpenGL ES 3.0 gltrace", "#version 100"},
	}
	for _, test := range tests {
		r := gltrace.New()
		r.Version = test.version
		ctx, err := NewContext(r)
		require.NoError(t, err)
		sh, err := ctx.NewShaderFromSources(vert, frag)
		require.NoError(t, err, test.version)
		for _, c := range r.Calls("ShaderSource") {
			assert.True(t, len(c.Args[1].(string)) > len(test.prefix))
			assert.Equal(t, test.prefix, c.Args[1].(string)[:len(test.prefix)], test.version)
		}
		assert.Equal(t, []Uniform{
			{Name: "time", Format: UniformFormatFloat1},
			{Name: "tint", Format: UniformFormatFloat3},
		}, sh.Uniforms())
		assert.Equal(t, []ImageUniform{{Name: "tex"}, {Name: "mask"}}, sh.Images())
	}
}

func TestNewShaderFromSourcesBadUniform(t *testing.T) {
	ctx, _ := newTestContext(t)
	vert := shader.Sources{
		GLSL150: testVert,
		Uniforms: shader.UniformsReflection{
			Locations: []shader.UniformLocation{{Name: "time", Type: shader.DataTypeShort, Size: 1}},
		},
	}
	_, err := ctx.NewShaderFromSources(vert, shader.Sources{GLSL150: testFrag})
	assert.Error(t, err)
}

func TestNewPipelineAttributeNotFound(t *testing.T) {
	ctx, r := newTestContext(t)
	sh := newTestShader(t, ctx)
	_, err := ctx.NewPipeline(PipelineDesc{
		Shader:     sh,
		Buffers:    []BufferLayout{{}},
		Attributes: []VertexAttribute{{Name: "position", Format: VertexFormatFloat2}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAttributeNotFound))
	assert.Contains(t, err.Error(), `"position"`)
	// The shader stays with the caller.
	sh.Release()
	assert.Zero(t, r.Live(gltrace.KindProgram))
}

func TestNewPipelineErrors(t *testing.T) {
	ctx, _ := newTestContext(t)
	_, err := ctx.NewPipeline(PipelineDesc{})
	assert.True(t, errors.Is(err, ErrPrecondition))

	other, _ := newTestContext(t)
	_, err = ctx.NewPipeline(PipelineDesc{Shader: newTestShader(t, other)})
	assert.True(t, errors.Is(err, ErrPrecondition))

	released := newTestShader(t, ctx)
	released.Release()
	_, err = ctx.NewPipeline(PipelineDesc{Shader: released})
	assert.True(t, errors.Is(err, ErrReleased))

	sh := newTestShader(t, ctx)
	_, err = ctx.NewPipeline(PipelineDesc{
		Shader:     sh,
		Buffers:    []BufferLayout{{}},
		Attributes: []VertexAttribute{{Name: "pos", Format: VertexFormatFloat2, BufferIndex: 3}},
	})
	assert.True(t, errors.Is(err, ErrPrecondition))
}

func TestPipelineOwnsShader(t *testing.T) {
	ctx, r := newTestContext(t)
	sh := newTestShader(t, ctx)
	desc := PipelineDesc{
		Shader:     sh,
		Buffers:    []BufferLayout{{}},
		Attributes: []VertexAttribute{{Name: "pos", Format: VertexFormatFloat2}},
	}
	_, err := ctx.NewPipeline(desc)
	require.NoError(t, err)
	// A shader backs a single pipeline.
	_, err = ctx.NewPipeline(desc)
	assert.True(t, errors.Is(err, ErrPrecondition))

	sh.Release()
	assert.Zero(t, r.Deleted(gltrace.KindProgram, sh.prog.V))
	ctx.Release()
	assert.Equal(t, 1, r.Deleted(gltrace.KindProgram, sh.prog.V))
}

func TestPipelineLayout(t *testing.T) {
	ctx, _ := newTestContext(t)
	buffers := []BufferLayout{{}}
	attrs := []VertexAttribute{
		{Name: "pos", Format: VertexFormatFloat2},
		{Name: "color", Format: VertexFormatFloat3},
	}
	p, err := ctx.NewPipeline(PipelineDesc{Shader: newTestShader(t, ctx), Buffers: buffers, Attributes: attrs})
	require.NoError(t, err)
	got, err := ctx.PipelineLayout(p)
	require.NoError(t, err)
	expected, err := ComputeLayout(buffers, attrs)
	require.NoError(t, err)
	assert.Equal(t, expected, got)

	_, err = ctx.PipelineLayout(Pipeline{})
	assert.True(t, errors.Is(err, ErrPrecondition))
}

func TestPipelineLayoutRepeatable(t *testing.T) {
	ctx, _ := newTestContext(t)
	buffers := []BufferLayout{{}, {Stride: 32, Step: StepPerInstance(2)}}
	attrs := []VertexAttribute{
		{Name: "pos", Format: VertexFormatFloat2},
		{Name: "color", Format: VertexFormatFloat3, BufferIndex: 1},
	}
	first, err := ctx.NewPipeline(PipelineDesc{Shader: newTestShader(t, ctx), Buffers: buffers, Attributes: attrs})
	require.NoError(t, err)
	second, err := ctx.NewPipeline(PipelineDesc{Shader: newTestShader(t, ctx), Buffers: buffers, Attributes: attrs})
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	a, err := ctx.PipelineLayout(first)
	require.NoError(t, err)
	b, err := ctx.PipelineLayout(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 2, b[1][0].Divisor)
	assert.Equal(t, 32, b[1][0].Stride)
}

func TestPipelineShader(t *testing.T) {
	ctx, _ := newTestContext(t)
	sh := newTestShader(t, ctx)
	p, err := ctx.NewPipeline(PipelineDesc{
		Shader:     sh,
		Buffers:    []BufferLayout{{}},
		Attributes: []VertexAttribute{{Name: "pos", Format: VertexFormatFloat2}},
	})
	require.NoError(t, err)
	got, err := ctx.PipelineShader(p)
	require.NoError(t, err)
	assert.Same(t, sh, got)

	other, _ := newTestContext(t)
	_, err = other.PipelineShader(p)
	assert.True(t, errors.Is(err, ErrPrecondition))
}
