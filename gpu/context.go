// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gpu is a small typed layer over an OpenGL style backend.

A Context owns the backend capability object and the draw state. Buffers,
images and shaders are created through it, and pipelines pair a shader
with a computed vertex layout. A frame binds a pipeline, its vertex
buffers, optional index buffer, uniforms and images, draws, ends the pass
and commits:

	ctx.BeginDefaultPass(gpu.ClearColor(0, 0, 0, 1))
	ctx.SetPipeline(pip)
	ctx.SetVertexBuffers(verts)
	ctx.SetIndexBuffer(indices)
	ctx.SetUniforms(gpu.Float1(t))
	ctx.Draw(0, 6, 1)
	ctx.EndRenderPass()
	ctx.CommitFrame()

A Context and everything created from it must be used from the goroutine
that owns the GL context. Resources are released explicitly.
*/
package gpu

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fugu-gfx/fugu/gl"
)

// DrawState is the position of a Context in its per-frame state machine.
type DrawState uint8

const (
	// StateIdle means no pipeline is bound.
	StateIdle DrawState = iota
	// StatePipelineBound means a pipeline is bound but no vertex buffers.
	StatePipelineBound
	// StateReady means a pipeline and its vertex buffers are bound.
	StateReady
)

func (s DrawState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePipelineBound:
		return "pipeline bound"
	case StateReady:
		return "ready"
	default:
		panic("invalid draw state")
	}
}

// Context wraps a backend and tracks the draw state.
type Context struct {
	funcs gl.Functions
	cfg   config
	id    uuid.UUID

	glVer [2]int
	gles  bool

	vertArray  gl.VertexArray
	defaultFBO gl.Framebuffer

	// pipelines is append-only. Pipeline handles index it.
	pipelines []*pipeline

	state    drawState
	released bool
}

type drawState struct {
	pipeline      *pipeline
	index    *Buffer
	vertices []*Buffer
}

// NewContext wraps f. The GL context behind f must be current. NewContext
// creates and binds the vertex array object used by all draws and records
// the framebuffer bound at this point as the default framebuffer.
func NewContext(f gl.Functions, opts ...Option) (*Context, error) {
	var cfg config
	for _, o := range opts {
		o(&cfg)
	}
	glVer := f.GetString(gl.VERSION)
	ver, gles, err := gl.ParseGLVersion(glVer)
	if err != nil {
		return nil, err
	}
	vao := f.CreateVertexArray()
	if !vao.Valid() {
		return nil, creationFailed("vertex array", nil)
	}
	f.BindVertexArray(vao)
	c := &Context{
		funcs:      f,
		cfg:        cfg,
		id:         uuid.New(),
		glVer:      ver,
		gles:       gles,
		vertArray:  vao,
		defaultFBO: gl.Framebuffer{V: uint(f.GetInteger(gl.FRAMEBUFFER_BINDING))},
	}
	c.debug("context created", "version", glVer, "gles", gles, "framebuffer", c.defaultFBO.V)
	return c, nil
}

// ID returns the unique id of the context used in log records.
func (c *Context) ID() string {
	return c.id.String()
}

// Version returns the parsed GL version and whether the context is
// OpenGL ES.
func (c *Context) Version() (ver [2]int, gles bool) {
	return c.glVer, c.gles
}

// State reports the current draw state.
func (c *Context) State() DrawState {
	switch {
	case c.state.pipeline == nil:
		return StateIdle
	case c.state.vertices != nil:
		return StateReady
	default:
		return StatePipelineBound
	}
}

// Release deletes every pipeline shader and the vertex array object.
// Buffers and images are released by their owners. Further calls on the
// context return ErrReleased.
func (c *Context) Release() {
	if c.released {
		return
	}
	for _, p := range c.pipelines {
		p.shader.release()
	}
	c.funcs.DeleteVertexArray(c.vertArray)
	c.state = drawState{}
	c.released = true
	c.debug("context released", "pipelines", len(c.pipelines))
}

// active reports whether the context can still issue commands. The
// methods without an error result log op and do nothing once the context
// is released.
func (c *Context) active(op string) bool {
	if c.released {
		c.warn("call on released context", "op", op)
		return false
	}
	return true
}

func (c *Context) alive() error {
	if c.released {
		return ErrReleased
	}
	return nil
}

// checkCreate polls the backend error state after object creation when
// error checks are enabled.
func (c *Context) checkCreate(what string) error {
	if !c.cfg.checkErrors {
		return nil
	}
	if err := gl.Err(c.funcs); err != nil {
		return creationFailed(what, err)
	}
	return nil
}

func (c *Context) logger() *slog.Logger {
	if c.cfg.logger != nil {
		return c.cfg.logger
	}
	return Logger()
}

func (c *Context) logAttrs(args []any) []any {
	attrs := []any{slog.String("ctx", c.id.String())}
	if c.cfg.label != "" {
		attrs = append(attrs, slog.String("label", c.cfg.label))
	}
	return append(attrs, args...)
}

func (c *Context) debug(msg string, args ...any) {
	l := c.logger()
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l.Debug(msg, c.logAttrs(args)...)
}

func (c *Context) warn(msg string, args ...any) {
	l := c.logger()
	if !l.Enabled(context.Background(), slog.LevelWarn) {
		return
	}
	l.Warn(msg, c.logAttrs(args)...)
}
