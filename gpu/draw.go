// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"github.com/fugu-gfx/fugu/gl"
)

func (c *Context) bound() (*pipeline, error) {
	if err := c.alive(); err != nil {
		return nil, err
	}
	if c.state.pipeline == nil {
		return nil, precondition("no pipeline bound")
	}
	return c.state.pipeline, nil
}

// SetPipeline makes p the current pipeline and uses its program. Vertex
// buffers must be bound again afterwards.
func (c *Context) SetPipeline(p Pipeline) error {
	pip, err := c.lookup(p)
	if err != nil {
		return err
	}
	c.funcs.UseProgram(pip.shader.prog)
	c.state.pipeline = pip
	c.state.vertices = nil
	return nil
}

// SetVertexBuffer binds b to the only vertex buffer slot of the current
// pipeline.
func (c *Context) SetVertexBuffer(b *Buffer) error {
	return c.SetVertexBuffers(b)
}

// SetVertexBuffers binds buffers[i] to slot i of the current pipeline and
// points every attribute of the slot into it. At least one buffer per
// slot is required; extra buffers are ignored.
func (c *Context) SetVertexBuffers(buffers ...*Buffer) error {
	pip, err := c.bound()
	if err != nil {
		return err
	}
	if len(buffers) < len(pip.attrs) {
		return precondition("got %d vertex buffers, pipeline has %d slots", len(buffers), len(pip.attrs))
	}
	for i := range pip.attrs {
		b := buffers[i]
		switch {
		case b == nil:
			return precondition("vertex buffer %d is nil", i)
		case b.ctx != c:
			return precondition("vertex buffer %d belongs to another context", i)
		case b.released:
			return fmt.Errorf("vertex buffer %d: %w", i, ErrReleased)
		case b.kind != BufferKindVertex:
			return precondition("vertex buffer %d has kind %s", i, b.kind)
		}
	}
	f := c.funcs
	for i, slot := range pip.attrs {
		f.BindBuffer(gl.ARRAY_BUFFER, buffers[i].obj)
		for _, a := range slot {
			f.EnableVertexAttribArray(a.loc)
			f.VertexAttribPointer(a.loc, a.components, a.typ, false, a.stride, a.offset)
			f.VertexAttribDivisor(a.loc, a.divisor)
		}
	}
	c.state.vertices = make([]*Buffer, len(pip.attrs))
	copy(c.state.vertices, buffers)
	return nil
}

// SetIndexBuffer binds b as the element buffer of subsequent draws.
func (c *Context) SetIndexBuffer(b *Buffer) error {
	if err := c.alive(); err != nil {
		return err
	}
	switch {
	case b == nil:
		return precondition("index buffer is nil")
	case b.ctx != c:
		return precondition("index buffer belongs to another context")
	case b.released:
		return fmt.Errorf("index buffer: %w", ErrReleased)
	case !b.kind.isIndex():
		return precondition("index buffer has kind %s", b.kind)
	}
	c.funcs.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.obj)
	c.state.index = b
	return nil
}

// SetImages binds images[i] to texture unit i and points sampler i of
// the current pipeline's shader at it.
func (c *Context) SetImages(images ...*Image) error {
	pip, err := c.bound()
	if err != nil {
		return err
	}
	samplers := pip.shader.images
	if len(images) < len(samplers) {
		return precondition("got %d images, shader declares %d", len(images), len(samplers))
	}
	for i := range samplers {
		img := images[i]
		switch {
		case img == nil:
			return precondition("image %d is nil", i)
		case img.ctx != c:
			return precondition("image %d belongs to another context", i)
		case img.released:
			return fmt.Errorf("image %d: %w", i, ErrReleased)
		}
	}
	f := c.funcs
	for i, s := range samplers {
		f.ActiveTexture(gl.TEXTURE0 + gl.Enum(i))
		f.BindTexture(gl.TEXTURE_2D, images[i].obj)
		f.Uniform1i(s.loc, i)
	}
	return nil
}

// Draw draws count elements starting at start, instances times. With an
// index buffer bound, start and count address indices; otherwise
// vertices. The index buffer stays bound until CommitFrame; drawing with
// a bound buffer that was released returns ErrReleased.
func (c *Context) Draw(start, count, instances int) error {
	pip, err := c.bound()
	if err != nil {
		return err
	}
	if start < 0 || count < 0 || instances < 0 {
		return precondition("draw(%d, %d, %d)", start, count, instances)
	}
	for i, b := range c.state.vertices {
		if b.released {
			return fmt.Errorf("vertex buffer %d: %w", i, ErrReleased)
		}
	}
	if idx := c.state.index; idx != nil && idx.released {
		return fmt.Errorf("index buffer: %w", ErrReleased)
	}
	mode := pip.primitive.glMode()
	if idx := c.state.index; idx != nil {
		kind := idx.kind
		c.funcs.DrawElementsInstanced(mode, count, kind.indexType(), start*kind.indexSize(), instances)
	} else {
		c.funcs.DrawArraysInstanced(mode, start, count, instances)
	}
	return nil
}

// SetViewport sets the viewport rectangle.
func (c *Context) SetViewport(x, y, width, height int) {
	if !c.active("SetViewport") {
		return
	}
	c.funcs.Viewport(x, y, width, height)
}

// CommitFrame ends the frame. It unbinds the vertex and index buffers
// and returns the context to StateIdle.
func (c *Context) CommitFrame() {
	if !c.active("CommitFrame") {
		return
	}
	c.funcs.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{})
	c.funcs.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gl.Buffer{})
	c.state = drawState{}
}
