// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import "github.com/fugu-gfx/fugu/gl"

// PassAction selects the buffers cleared when a pass begins. The zero
// PassAction clears nothing.
type PassAction struct {
	ClearColor   bool
	Color        [4]float32
	ClearDepth   bool
	Depth        float32
	ClearStencil bool
	Stencil      int
}

// ClearColor returns an action clearing the color buffer.
func ClearColor(r, g, b, a float32) PassAction {
	return PassAction{ClearColor: true, Color: [4]float32{r, g, b, a}}
}

// ClearDepth returns an action clearing the depth buffer.
func ClearDepth(d float32) PassAction {
	return PassAction{ClearDepth: true, Depth: d}
}

// ClearStencil returns an action clearing the stencil buffer.
func ClearStencil(s int) PassAction {
	return PassAction{ClearStencil: true, Stencil: s}
}

// WithDepth adds a depth clear to a.
func (a PassAction) WithDepth(d float32) PassAction {
	a.ClearDepth, a.Depth = true, d
	return a
}

// WithStencil adds a stencil clear to a.
func (a PassAction) WithStencil(s int) PassAction {
	a.ClearStencil, a.Stencil = true, s
	return a
}

// BeginDefaultPass starts a pass on the default framebuffer and performs
// action. Only the selected clear values are set, followed by a single
// clear of the selected buffers.
func (c *Context) BeginDefaultPass(action PassAction) {
	if !c.active("BeginDefaultPass") {
		return
	}
	var mask gl.Enum
	if action.ClearColor {
		col := action.Color
		c.funcs.ClearColor(col[0], col[1], col[2], col[3])
		mask |= gl.COLOR_BUFFER_BIT
	}
	if action.ClearDepth {
		c.funcs.ClearDepthf(action.Depth)
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if action.ClearStencil {
		c.funcs.ClearStencil(action.Stencil)
		mask |= gl.STENCIL_BUFFER_BIT
	}
	if mask != 0 {
		c.funcs.Clear(mask)
	}
}

// EndRenderPass binds the default framebuffer recorded by NewContext.
func (c *Context) EndRenderPass() {
	if !c.active("EndRenderPass") {
		return
	}
	c.funcs.BindFramebuffer(gl.FRAMEBUFFER, c.defaultFBO)
}
