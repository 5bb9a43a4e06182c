// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeginDefaultPass(t *testing.T) {
	tests := []struct {
		name     string
		action   PassAction
		expected []string
	}{
		{"nothing", PassAction{}, nil},
		{"color", ClearColor(0.5, 0, 0, 1), []string{
			"ClearColor(0.5, 0, 0, 1)",
			"Clear(COLOR_BUFFER_BIT)",
		}},
		{"depth", ClearDepth(1), []string{
			"ClearDepthf(1)",
			"Clear(DEPTH_BUFFER_BIT)",
		}},
		{"stencil", ClearStencil(3), []string{
			"ClearStencil(3)",
			"Clear(STENCIL_BUFFER_BIT)",
		}},
		{"color and stencil", ClearColor(0, 0, 0, 0).WithStencil(0), []string{
			"ClearColor(0, 0, 0, 0)",
			"ClearStencil(0)",
			"Clear(COLOR_BUFFER_BIT|STENCIL_BUFFER_BIT)",
		}},
		{"all", ClearColor(1, 1, 1, 1).WithDepth(0.5).WithStencil(1), []string{
			"ClearColor(1, 1, 1, 1)",
			"ClearDepthf(0.5)",
			"ClearStencil(1)",
			"Clear(COLOR_BUFFER_BIT|DEPTH_BUFFER_BIT|STENCIL_BUFFER_BIT)",
		}},
	}
	for _, test := range tests {
		ctx, r := newTestContext(t)
		r.Reset()
		ctx.BeginDefaultPass(test.action)
		got := r.Log()
		if len(test.expected) == 0 {
			assert.Empty(t, got, test.name)
			continue
		}
		assert.Equal(t, test.expected, got, test.name)
		assert.Equal(t, 1, r.Count("Clear"), test.name)
	}
}

func TestEndRenderPass(t *testing.T) {
	ctx, r := newTestContext(t)
	r.Reset()
	ctx.BeginDefaultPass(ClearColor(0, 0, 0, 1))
	ctx.EndRenderPass()
	ctx.EndRenderPass()
	assert.Equal(t, []string{
		"BindFramebuffer(FRAMEBUFFER, 0)",
		"BindFramebuffer(FRAMEBUFFER, 0)",
	}, r.Log("BindFramebuffer"))
}

func TestSetViewport(t *testing.T) {
	ctx, r := newTestContext(t)
	r.Reset()
	ctx.SetViewport(0, 0, 800, 600)
	assert.Equal(t, []string{"Viewport(0, 0, 800, 600)"}, r.Log())
}
