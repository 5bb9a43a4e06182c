// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"fmt"

	"gioui.org/shader"

	"github.com/fugu-gfx/fugu/gl"
)

// Uniform declares a uniform by name and format.
type Uniform struct {
	Name   string
	Format UniformFormat
}

// ImageUniform declares a sampler uniform.
type ImageUniform struct {
	Name string
}

// ShaderDesc holds GLSL source for both stages and the uniforms the
// program reads, in the order values are supplied at draw time.
type ShaderDesc struct {
	Vertex   string
	Fragment string
	Uniforms []Uniform
	Images   []ImageUniform
}

// Shader is a linked program with resolved uniform locations.
type Shader struct {
	ctx      *Context
	prog     gl.Program
	uniforms []uniformBinding
	images   []imageBinding
	// size is the byte size of one packed set of uniform values.
	size     int
	owned    bool
	released bool
}

type uniformBinding struct {
	name   string
	loc    gl.Uniform
	format UniformFormat
}

type imageBinding struct {
	name string
	loc  gl.Uniform
}

// NewShader compiles and links desc and resolves its uniforms. Compile
// and link failures are reported as *ShaderCompileError and
// *ShaderLinkError with the backend log.
func (c *Context) NewShader(desc ShaderDesc) (*Shader, error) {
	if err := c.alive(); err != nil {
		return nil, err
	}
	for _, u := range desc.Uniforms {
		if !u.Format.valid() {
			return nil, precondition("uniform %q: invalid format %d", u.Name, u.Format)
		}
	}
	prog, err := gl.CreateProgram(c.funcs, desc.Vertex, desc.Fragment)
	if err != nil {
		if errors.Is(err, gl.ErrObject) {
			return nil, creationFailed("program", err)
		}
		return nil, err
	}
	if err := c.checkCreate("program"); err != nil {
		c.funcs.DeleteProgram(prog)
		return nil, err
	}
	s := &Shader{ctx: c, prog: prog}
	for _, u := range desc.Uniforms {
		loc := c.funcs.GetUniformLocation(prog, u.Name)
		if !loc.Valid() {
			c.funcs.DeleteProgram(prog)
			return nil, fmt.Errorf("%w: %q", ErrUniformNotFound, u.Name)
		}
		s.uniforms = append(s.uniforms, uniformBinding{name: u.Name, loc: loc, format: u.Format})
		s.size += u.Format.Size()
	}
	for _, img := range desc.Images {
		loc := c.funcs.GetUniformLocation(prog, img.Name)
		if !loc.Valid() {
			c.funcs.DeleteProgram(prog)
			return nil, fmt.Errorf("%w: image %q", ErrUniformNotFound, img.Name)
		}
		s.images = append(s.images, imageBinding{name: img.Name, loc: loc})
	}
	c.debug("shader linked", "program", prog.V, "uniforms", len(s.uniforms), "images", len(s.images))
	return s, nil
}

// NewShaderFromSources creates a shader from precompiled source bundles.
// The GLSL 1.50 variant is used on desktop GL 3.2 and later, GLSL 1.00 ES
// otherwise. Uniforms are taken from the reflection data of the vertex
// stage followed by the fragment stage; images from the texture bindings
// of both stages, ordered by binding.
func (c *Context) NewShaderFromSources(vert, frag shader.Sources) (*Shader, error) {
	if err := c.alive(); err != nil {
		return nil, err
	}
	desc := ShaderDesc{
		Vertex:   c.glslFor(vert),
		Fragment: c.glslFor(frag),
	}
	seen := make(map[string]bool)
	for _, src := range []shader.Sources{vert, frag} {
		for _, loc := range src.Uniforms.Locations {
			if seen[loc.Name] {
				continue
			}
			seen[loc.Name] = true
			f, err := uniformFormatOf(loc.Type, loc.Size)
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", src.Name, loc.Name, err)
			}
			desc.Uniforms = append(desc.Uniforms, Uniform{Name: loc.Name, Format: f})
		}
	}
	var bindings []shader.TextureBinding
	for _, src := range []shader.Sources{vert, frag} {
		for _, tex := range src.Textures {
			if seen[tex.Name] {
				continue
			}
			seen[tex.Name] = true
			bindings = append(bindings, tex)
		}
	}
	for unit := 0; len(desc.Images) < len(bindings); unit++ {
		found := false
		for _, tex := range bindings {
			if tex.Binding == unit {
				desc.Images = append(desc.Images, ImageUniform{Name: tex.Name})
				found = true
			}
		}
		if !found {
			return nil, precondition("%s: no texture bound to unit %d", frag.Name, unit)
		}
	}
	return c.NewShader(desc)
}

func (c *Context) glslFor(src shader.Sources) string {
	if c.gles || c.glVer[0] < 3 || (c.glVer[0] == 3 && c.glVer[1] < 2) {
		return src.GLSL100ES
	}
	return src.GLSL150
}

// Uniforms returns the declared uniforms in order.
func (s *Shader) Uniforms() []Uniform {
	res := make([]Uniform, len(s.uniforms))
	for i, u := range s.uniforms {
		res[i] = Uniform{Name: u.name, Format: u.format}
	}
	return res
}

// Images returns the declared image uniforms in order.
func (s *Shader) Images() []ImageUniform {
	res := make([]ImageUniform, len(s.images))
	for i, img := range s.images {
		res[i] = ImageUniform{Name: img.name}
	}
	return res
}

// UniformSize returns the number of bytes SetUniformBytes expects.
func (s *Shader) UniformSize() int {
	return s.size
}

// Release deletes the program. Shaders owned by a pipeline are released
// with their context and Release is ignored.
func (s *Shader) Release() {
	if s.owned {
		s.ctx.warn("release of pipeline-owned shader ignored", "program", s.prog.V)
		return
	}
	s.release()
}

func (s *Shader) release() {
	if s.released {
		return
	}
	s.ctx.funcs.DeleteProgram(s.prog)
	s.released = true
	s.ctx.debug("shader released", "program", s.prog.V)
}
