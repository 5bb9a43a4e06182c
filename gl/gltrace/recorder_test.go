// SPDX-License-Identifier: Unlicense OR MIT

package gltrace

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fugu-gfx/fugu/gl"
)

const (
	vert = `#version 330
layout(location = 0) in vec2 pos;
in highp vec3 color;
uniform float time;
out vec3 vcolor;
void main() { vcolor = color; gl_Position = vec4(pos, 0.0, 1.0); }`
	frag = `#version 330
in vec3 vcolor;
uniform float time;
uniform sampler2D tex;
out vec4 outColor;
void main() { outColor = vec4(vcolor, 1.0); }`
)

func link(t *testing.T, r *Recorder) gl.Program {
	t.Helper()
	p, err := gl.CreateProgram(r, vert, frag)
	require.NoError(t, err)
	return p
}

func TestNameResolution(t *testing.T) {
	r := New()
	p := link(t, r)
	assert.Equal(t, 0, r.GetAttribLocation(p, "pos"))
	assert.Equal(t, 1, r.GetAttribLocation(p, "color"))
	// Fragment inputs are not attributes.
	assert.Equal(t, -1, r.GetAttribLocation(p, "vcolor"))
	assert.Equal(t, gl.Uniform{V: 0}, r.GetUniformLocation(p, "time"))
	assert.Equal(t, gl.Uniform{V: 1}, r.GetUniformLocation(p, "tex"))
	assert.False(t, r.GetUniformLocation(p, "missing").Valid())
}

func TestDeleteTracking(t *testing.T) {
	r := New()
	b := r.CreateBuffer()
	tex := r.CreateTexture()
	assert.Equal(t, 1, r.Live(KindBuffer))
	r.DeleteBuffer(b)
	r.DeleteBuffer(b)
	assert.Equal(t, 0, r.Live(KindBuffer))
	assert.Equal(t, 2, r.Deleted(KindBuffer, b.V))
	assert.Equal(t, 0, r.Deleted(KindTexture, tex.V))
	assert.Equal(t, 1, r.Live(KindTexture))
}

func TestCallFormatting(t *testing.T) {
	var out bytes.Buffer
	r := New()
	r.Out = &out
	r.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{V: 3})
	r.Clear(gl.COLOR_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
	r.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	r.DrawElementsInstanced(gl.TRIANGLES, 6, gl.UNSIGNED_SHORT, 4, 1)
	r.ActiveTexture(gl.TEXTURE0 + 2)
	r.ClearColor(0.5, 0, 0, 1)
	r.BufferData(gl.ARRAY_BUFFER, 12, gl.STATIC_DRAW, make([]byte, 12))
	expected := []string{
		"BindBuffer(ARRAY_BUFFER, 3)",
		"Clear(COLOR_BUFFER_BIT|STENCIL_BUFFER_BIT)",
		"BlendFunc(ONE, ONE_MINUS_SRC_ALPHA)",
		"DrawElementsInstanced(TRIANGLES, 6, UNSIGNED_SHORT, 4, 1)",
		"ActiveTexture(TEXTURE2)",
		"ClearColor(0.5, 0, 0, 1)",
		"BufferData(ARRAY_BUFFER, 12, STATIC_DRAW, <12 bytes>)",
	}
	assert.Equal(t, expected, r.Log())
	assert.Equal(t, []string{"BlendFunc(ONE, ONE_MINUS_SRC_ALPHA)"}, r.Log("BlendFunc"))
	assert.Equal(t, len(expected), bytes.Count(out.Bytes(), []byte("\n")))
	r.Reset()
	assert.Empty(t, r.Calls())
}

func TestPendingError(t *testing.T) {
	r := New()
	r.PendingError = gl.INVALID_VALUE
	assert.Equal(t, gl.Enum(gl.INVALID_VALUE), r.GetError())
	assert.Equal(t, gl.Enum(gl.NO_ERROR), r.GetError())
}

func TestFramebufferBinding(t *testing.T) {
	r := New()
	r.Framebuffer = 7
	assert.Equal(t, 7, r.GetInteger(gl.FRAMEBUFFER_BINDING))
}
