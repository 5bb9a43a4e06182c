// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"github.com/fugu-gfx/fugu/gl"
)

// Pipeline is a handle to a pipeline registered in a Context. The zero
// Pipeline is invalid.
type Pipeline struct {
	ctx *Context
	id  int
}

// Valid reports whether p was returned by NewPipeline.
func (p Pipeline) Valid() bool {
	return p.id > 0
}

// PipelineDesc describes a pipeline.
type PipelineDesc struct {
	// Shader is owned by the pipeline once NewPipeline succeeds.
	Shader     *Shader
	Buffers    []BufferLayout
	Attributes []VertexAttribute
	Primitive  Primitive
}

type pipeline struct {
	shader    *Shader
	primitive Primitive
	layout    [][]AttributeLayout
	attrs     [][]boundAttribute
}

type boundAttribute struct {
	loc        gl.Attrib
	components int
	typ        gl.Enum
	offset     int
	stride     int
	divisor    int
}

// NewPipeline computes the vertex layout of desc, resolves every
// attribute in the shader and registers the result. On success the
// context takes ownership of the shader; on error it stays with the
// caller.
func (c *Context) NewPipeline(desc PipelineDesc) (Pipeline, error) {
	if err := c.alive(); err != nil {
		return Pipeline{}, err
	}
	sh := desc.Shader
	switch {
	case sh == nil:
		return Pipeline{}, precondition("pipeline without shader")
	case sh.ctx != c:
		return Pipeline{}, precondition("shader belongs to another context")
	case sh.released:
		return Pipeline{}, fmt.Errorf("shader: %w", ErrReleased)
	case sh.owned:
		return Pipeline{}, precondition("shader already owned by a pipeline")
	}
	layout, err := ComputeLayout(desc.Buffers, desc.Attributes)
	if err != nil {
		return Pipeline{}, err
	}
	attrs := make([][]boundAttribute, len(layout))
	for i, slot := range layout {
		attrs[i] = make([]boundAttribute, len(slot))
		for j, a := range slot {
			loc := c.funcs.GetAttribLocation(sh.prog, a.Name)
			if loc < 0 {
				return Pipeline{}, fmt.Errorf("%w: %q", ErrAttributeNotFound, a.Name)
			}
			attrs[i][j] = boundAttribute{
				loc:        gl.Attrib(loc),
				components: a.Format.Components(),
				typ:        a.Format.glType(),
				offset:     a.Offset,
				stride:     a.Stride,
				divisor:    a.Divisor,
			}
		}
	}
	sh.owned = true
	c.pipelines = append(c.pipelines, &pipeline{
		shader:    sh,
		primitive: desc.Primitive,
		layout:    layout,
		attrs:     attrs,
	})
	p := Pipeline{ctx: c, id: len(c.pipelines)}
	c.debug("pipeline created", "pipeline", p.id, "slots", len(layout), "attributes", len(desc.Attributes), "primitive", desc.Primitive.String())
	return p, nil
}

// PipelineLayout returns the attribute layout computed for p.
func (c *Context) PipelineLayout(p Pipeline) ([][]AttributeLayout, error) {
	pip, err := c.lookup(p)
	if err != nil {
		return nil, err
	}
	res := make([][]AttributeLayout, len(pip.layout))
	for i, slot := range pip.layout {
		res[i] = append([]AttributeLayout(nil), slot...)
	}
	return res, nil
}

// PipelineShader returns the shader owned by p.
func (c *Context) PipelineShader(p Pipeline) (*Shader, error) {
	pip, err := c.lookup(p)
	if err != nil {
		return nil, err
	}
	return pip.shader, nil
}

func (c *Context) lookup(p Pipeline) (*pipeline, error) {
	if err := c.alive(); err != nil {
		return nil, err
	}
	if p.ctx != c || p.id <= 0 || p.id > len(c.pipelines) {
		return nil, precondition("invalid pipeline handle %d", p.id)
	}
	return c.pipelines[p.id-1], nil
}
