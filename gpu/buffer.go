// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"github.com/fugu-gfx/fugu/gl"
)

// Buffer is a fixed size vertex or index buffer.
type Buffer struct {
	ctx      *Context
	obj      gl.Buffer
	kind     BufferKind
	usage    BufferUsage
	size     int
	released bool
}

// NewBuffer allocates an uninitialized buffer of size bytes. Static
// buffers must be created with NewBufferWithData.
func (c *Context) NewBuffer(kind BufferKind, usage BufferUsage, size int) (*Buffer, error) {
	if usage == BufferUsageStatic {
		return nil, precondition("static buffer created without data")
	}
	if size <= 0 {
		return nil, precondition("buffer size %d", size)
	}
	return c.newBuffer(kind, usage, size, nil)
}

// NewBufferWithData creates a buffer holding a copy of data. Its size is
// len(data).
func (c *Context) NewBufferWithData(kind BufferKind, usage BufferUsage, data []byte) (*Buffer, error) {
	if len(data) == 0 {
		return nil, precondition("empty buffer data")
	}
	return c.newBuffer(kind, usage, len(data), data)
}

func (c *Context) newBuffer(kind BufferKind, usage BufferUsage, size int, data []byte) (*Buffer, error) {
	if err := c.alive(); err != nil {
		return nil, err
	}
	if int(kind) >= len(bufferKindNames) || int(usage) >= len(bufferUsageNames) {
		return nil, precondition("invalid buffer kind %d or usage %d", kind, usage)
	}
	obj := c.funcs.CreateBuffer()
	if !obj.Valid() {
		return nil, creationFailed("buffer", nil)
	}
	b := &Buffer{ctx: c, obj: obj, kind: kind, usage: usage, size: size}
	c.funcs.BindBuffer(kind.target(), obj)
	c.funcs.BufferData(kind.target(), size, usage.glUsage(), data)
	b.restoreBinding()
	if err := c.checkCreate("buffer"); err != nil {
		c.funcs.DeleteBuffer(obj)
		return nil, err
	}
	return b, nil
}

// restoreBinding rebinds the context's index buffer after b was bound to
// the element array target, which is part of the vertex array state.
func (b *Buffer) restoreBinding() {
	idx := b.ctx.state.index
	if b.kind.isIndex() && idx != nil && idx != b && !idx.released {
		b.ctx.funcs.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, idx.obj)
	}
}

// Update writes data at the start of the buffer.
func (b *Buffer) Update(data []byte) error {
	return b.UpdateRange(0, data)
}

// UpdateRange writes data at offset. The range must fit in the buffer.
func (b *Buffer) UpdateRange(offset int, data []byte) error {
	if err := b.usable(); err != nil {
		return err
	}
	if offset < 0 || offset+len(data) > b.size {
		return precondition("buffer update [%d, %d) out of bounds (size %d)", offset, offset+len(data), b.size)
	}
	if len(data) == 0 {
		return nil
	}
	b.ctx.funcs.BindBuffer(b.kind.target(), b.obj)
	b.ctx.funcs.BufferSubData(b.kind.target(), offset, data)
	b.restoreBinding()
	return nil
}

func (b *Buffer) usable() error {
	if b.released {
		return fmt.Errorf("buffer: %w", ErrReleased)
	}
	return b.ctx.alive()
}

// Size returns the capacity of the buffer in bytes.
func (b *Buffer) Size() int {
	return b.size
}

func (b *Buffer) Kind() BufferKind {
	return b.kind
}

func (b *Buffer) Usage() BufferUsage {
	return b.usage
}

// Release deletes the buffer. Further calls are no-ops.
func (b *Buffer) Release() {
	if b.released {
		return
	}
	b.ctx.funcs.DeleteBuffer(b.obj)
	b.released = true
	b.ctx.debug("buffer released", "buffer", b.obj.V, "kind", b.kind.String(), "size", b.size)
}
