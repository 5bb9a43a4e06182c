// SPDX-License-Identifier: Unlicense OR MIT

// Package gltrace implements gl.Functions without a GPU. A Recorder
// simulates object creation, resolves attribute and uniform names by
// scanning the GLSL source handed to it, and records every call in order.
package gltrace

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/fugu-gfx/fugu/gl"
)

// Object kinds reported by Live and Deleted.
const (
	KindBuffer      = "buffer"
	KindProgram     = "program"
	KindShader      = "shader"
	KindTexture     = "texture"
	KindVertexArray = "vertexarray"
)

// Call is one recorded GL call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = formatArg(a)
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

func formatArg(a any) string {
	switch a := a.(type) {
	case gl.Buffer:
		return strconv.FormatUint(uint64(a.V), 10)
	case gl.Framebuffer:
		return strconv.FormatUint(uint64(a.V), 10)
	case gl.Program:
		return strconv.FormatUint(uint64(a.V), 10)
	case gl.Shader:
		return strconv.FormatUint(uint64(a.V), 10)
	case gl.Texture:
		return strconv.FormatUint(uint64(a.V), 10)
	case gl.VertexArray:
		return strconv.FormatUint(uint64(a.V), 10)
	case gl.Uniform:
		return strconv.Itoa(a.V)
	case gl.Attrib:
		return strconv.FormatUint(uint64(a), 10)
	case float32:
		return strconv.FormatFloat(float64(a), 'g', -1, 32)
	case []byte:
		if a == nil {
			return "nil"
		}
		return fmt.Sprintf("<%d bytes>", len(a))
	case string:
		if len(a) > 32 {
			return fmt.Sprintf("<%d bytes>", len(a))
		}
		return strconv.Quote(a)
	default:
		return fmt.Sprint(a)
	}
}

type shaderObj struct {
	typ      gl.Enum
	src      string
	compiled bool
	log      string
}

type programObj struct {
	shaders  []uint
	linked   bool
	log      string
	attribs  map[string]int
	uniforms map[string]int
}

// Recorder is a headless gl.Functions. The zero value is not usable; use
// New.
type Recorder struct {
	// Version is returned for GetString(VERSION).
	Version string
	// Framebuffer is returned for GetInteger(FRAMEBUFFER_BINDING).
	Framebuffer int
	// CompileLog is consulted for every compiled shader. A non-empty
	// result fails the compilation with that info log.
	CompileLog func(stage gl.Enum, src string) string
	// LinkLog is consulted for every linked program. A non-empty result
	// fails the link with that info log.
	LinkLog func(vs, fs string) string
	// FailCreate makes every Create method return the zero object.
	FailCreate bool
	// PendingError is returned, and then cleared, by the next GetError.
	PendingError gl.Enum
	// Out receives one line per recorded call when non-nil.
	Out io.Writer

	calls    []Call
	next     uint
	shaders  map[uint]*shaderObj
	programs map[uint]*programObj
	live     map[string]map[uint]bool
	deletes  map[string]map[uint]int
}

var _ gl.Functions = (*Recorder)(nil)

// New returns a Recorder reporting an OpenGL 3.3 context with default
// framebuffer 0.
func New() *Recorder {
	return &Recorder{
		Version:  "3.3 gltrace",
		shaders:  make(map[uint]*shaderObj),
		programs: make(map[uint]*programObj),
		live:     make(map[string]map[uint]bool),
		deletes:  make(map[string]map[uint]int),
	}
}

// Calls returns the recorded calls. With names, only calls with one of
// the given names are returned.
func (r *Recorder) Calls(names ...string) []Call {
	if len(names) == 0 {
		return append([]Call(nil), r.calls...)
	}
	var res []Call
	for _, c := range r.calls {
		for _, n := range names {
			if c.Name == n {
				res = append(res, c)
				break
			}
		}
	}
	return res
}

// Log is like Calls but formats each call.
func (r *Recorder) Log(names ...string) []string {
	calls := r.Calls(names...)
	res := make([]string, len(calls))
	for i, c := range calls {
		res[i] = c.String()
	}
	return res
}

// Count returns the number of recorded calls named name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Reset clears the call log. Objects stay alive.
func (r *Recorder) Reset() {
	r.calls = r.calls[:0]
}

// Live returns the number of objects of a kind that were created and not
// yet deleted.
func (r *Recorder) Live(kind string) int {
	return len(r.live[kind])
}

// Deleted returns how many times the object id of a kind was deleted.
func (r *Recorder) Deleted(kind string, id uint) int {
	return r.deletes[kind][id]
}

func (r *Recorder) record(name string, args ...any) {
	c := Call{Name: name, Args: args}
	r.calls = append(r.calls, c)
	if r.Out != nil {
		fmt.Fprintln(r.Out, c)
	}
}

func (r *Recorder) create(kind string) uint {
	if r.FailCreate {
		return 0
	}
	r.next++
	m := r.live[kind]
	if m == nil {
		m = make(map[uint]bool)
		r.live[kind] = m
	}
	m[r.next] = true
	return r.next
}

func (r *Recorder) delete(kind string, id uint) {
	if id == 0 {
		return
	}
	delete(r.live[kind], id)
	m := r.deletes[kind]
	if m == nil {
		m = make(map[uint]int)
		r.deletes[kind] = m
	}
	m[id]++
}

var (
	precision  = `(?:(?:lowp|mediump|highp)\s+)?`
	attribExpr = regexp.MustCompile(`\b(?:attribute|in)\s+` + precision + `\w+\s+(\w+)\s*;`)
	// Sampler uniforms are declared like any other uniform.
	uniformExpr = regexp.MustCompile(`\buniform\s+` + precision + `\w+\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)
)

func scan(expr *regexp.Regexp, src string, dst map[string]int) {
	for _, m := range expr.FindAllStringSubmatch(src, -1) {
		if _, exists := dst[m[1]]; !exists {
			dst[m[1]] = len(dst)
		}
	}
}

func (r *Recorder) ActiveTexture(texture gl.Enum) {
	r.record("ActiveTexture", Enum{V: texture, Name: fmt.Sprintf("TEXTURE%d", int(texture)-gl.TEXTURE0)})
}

func (r *Recorder) AttachShader(p gl.Program, s gl.Shader) {
	r.record("AttachShader", p, s)
	if prog, ok := r.programs[p.V]; ok {
		prog.shaders = append(prog.shaders, s.V)
	}
}

func (r *Recorder) BindBuffer(target gl.Enum, b gl.Buffer) {
	r.record("BindBuffer", enum(target), b)
}

func (r *Recorder) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	r.record("BindFramebuffer", enum(target), fb)
}

func (r *Recorder) BindTexture(target gl.Enum, t gl.Texture) {
	r.record("BindTexture", enum(target), t)
}

func (r *Recorder) BindVertexArray(a gl.VertexArray) {
	r.record("BindVertexArray", a)
}

func (r *Recorder) BlendEquation(m gl.Enum) {
	r.record("BlendEquation", enum(m))
}

func (r *Recorder) BlendEquationSeparate(modeRGB, modeAlpha gl.Enum) {
	r.record("BlendEquationSeparate", enum(modeRGB), enum(modeAlpha))
}

func (r *Recorder) BlendFunc(sfactor, dfactor gl.Enum) {
	r.record("BlendFunc", factor(sfactor), factor(dfactor))
}

func (r *Recorder) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA gl.Enum) {
	r.record("BlendFuncSeparate", factor(srcRGB), factor(dstRGB), factor(srcA), factor(dstA))
}

func (r *Recorder) BufferData(target gl.Enum, size int, usage gl.Enum, data []byte) {
	r.record("BufferData", enum(target), size, enum(usage), clone(data))
}

func (r *Recorder) BufferSubData(target gl.Enum, offset int, src []byte) {
	r.record("BufferSubData", enum(target), offset, clone(src))
}

func (r *Recorder) Clear(m gl.Enum) {
	r.record("Clear", mask(m))
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) ClearDepthf(d float32) {
	r.record("ClearDepthf", d)
}

func (r *Recorder) ClearStencil(s int) {
	r.record("ClearStencil", s)
}

func (r *Recorder) CompileShader(s gl.Shader) {
	r.record("CompileShader", s)
	sh, ok := r.shaders[s.V]
	if !ok {
		return
	}
	sh.log = ""
	if r.CompileLog != nil {
		sh.log = r.CompileLog(sh.typ, sh.src)
	}
	sh.compiled = sh.log == ""
}

func (r *Recorder) CreateBuffer() gl.Buffer {
	b := gl.Buffer{V: r.create(KindBuffer)}
	r.record("CreateBuffer")
	return b
}

func (r *Recorder) CreateProgram() gl.Program {
	p := gl.Program{V: r.create(KindProgram)}
	if p.Valid() {
		r.programs[p.V] = new(programObj)
	}
	r.record("CreateProgram")
	return p
}

func (r *Recorder) CreateShader(ty gl.Enum) gl.Shader {
	s := gl.Shader{V: r.create(KindShader)}
	if s.Valid() {
		r.shaders[s.V] = &shaderObj{typ: ty}
	}
	r.record("CreateShader", enum(ty))
	return s
}

func (r *Recorder) CreateTexture() gl.Texture {
	t := gl.Texture{V: r.create(KindTexture)}
	r.record("CreateTexture")
	return t
}

func (r *Recorder) CreateVertexArray() gl.VertexArray {
	a := gl.VertexArray{V: r.create(KindVertexArray)}
	r.record("CreateVertexArray")
	return a
}

func (r *Recorder) DeleteBuffer(v gl.Buffer) {
	r.record("DeleteBuffer", v)
	r.delete(KindBuffer, v.V)
}

func (r *Recorder) DeleteProgram(p gl.Program) {
	r.record("DeleteProgram", p)
	r.delete(KindProgram, p.V)
	delete(r.programs, p.V)
}

func (r *Recorder) DeleteShader(s gl.Shader) {
	r.record("DeleteShader", s)
	r.delete(KindShader, s.V)
}

func (r *Recorder) DeleteTexture(v gl.Texture) {
	r.record("DeleteTexture", v)
	r.delete(KindTexture, v.V)
}

func (r *Recorder) DeleteVertexArray(a gl.VertexArray) {
	r.record("DeleteVertexArray", a)
	r.delete(KindVertexArray, a.V)
}

func (r *Recorder) Disable(c gl.Enum) {
	r.record("Disable", enum(c))
}

func (r *Recorder) DrawArraysInstanced(m gl.Enum, first, count, instances int) {
	r.record("DrawArraysInstanced", mode(m), first, count, instances)
}

func (r *Recorder) DrawElementsInstanced(m gl.Enum, count int, ty gl.Enum, offset, instances int) {
	r.record("DrawElementsInstanced", mode(m), count, enum(ty), offset, instances)
}

func (r *Recorder) Enable(c gl.Enum) {
	r.record("Enable", enum(c))
}

func (r *Recorder) EnableVertexAttribArray(a gl.Attrib) {
	r.record("EnableVertexAttribArray", a)
}

func (r *Recorder) GenerateMipmap(target gl.Enum) {
	r.record("GenerateMipmap", enum(target))
}

func (r *Recorder) GetAttribLocation(p gl.Program, name string) int {
	r.record("GetAttribLocation", p, name)
	prog, ok := r.programs[p.V]
	if !ok || !prog.linked {
		return -1
	}
	if loc, ok := prog.attribs[name]; ok {
		return loc
	}
	return -1
}

func (r *Recorder) GetError() gl.Enum {
	r.record("GetError")
	e := r.PendingError
	r.PendingError = gl.NO_ERROR
	return e
}

func (r *Recorder) GetInteger(pname gl.Enum) int {
	r.record("GetInteger", enum(pname))
	switch pname {
	case gl.FRAMEBUFFER_BINDING:
		return r.Framebuffer
	case gl.MAX_TEXTURE_SIZE:
		return 4096
	}
	return 0
}

func (r *Recorder) GetProgrami(p gl.Program, pname gl.Enum) int {
	r.record("GetProgrami", p, enum(pname))
	prog, ok := r.programs[p.V]
	if !ok {
		return 0
	}
	switch pname {
	case gl.LINK_STATUS:
		if prog.linked {
			return gl.TRUE
		}
		return gl.FALSE
	case gl.INFO_LOG_LENGTH:
		return len(prog.log)
	}
	return 0
}

func (r *Recorder) GetProgramInfoLog(p gl.Program) string {
	r.record("GetProgramInfoLog", p)
	if prog, ok := r.programs[p.V]; ok {
		return prog.log
	}
	return ""
}

func (r *Recorder) GetShaderi(s gl.Shader, pname gl.Enum) int {
	r.record("GetShaderi", s, enum(pname))
	sh, ok := r.shaders[s.V]
	if !ok {
		return 0
	}
	switch pname {
	case gl.COMPILE_STATUS:
		if sh.compiled {
			return gl.TRUE
		}
		return gl.FALSE
	case gl.INFO_LOG_LENGTH:
		return len(sh.log)
	}
	return 0
}

func (r *Recorder) GetShaderInfoLog(s gl.Shader) string {
	r.record("GetShaderInfoLog", s)
	if sh, ok := r.shaders[s.V]; ok {
		return sh.log
	}
	return ""
}

func (r *Recorder) GetString(pname gl.Enum) string {
	r.record("GetString", enum(pname))
	if pname == gl.VERSION {
		return r.Version
	}
	return ""
}

func (r *Recorder) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	r.record("GetUniformLocation", p, name)
	prog, ok := r.programs[p.V]
	if !ok || !prog.linked {
		return gl.Uniform{V: -1}
	}
	if loc, ok := prog.uniforms[name]; ok {
		return gl.Uniform{V: loc}
	}
	return gl.Uniform{V: -1}
}

func (r *Recorder) LinkProgram(p gl.Program) {
	r.record("LinkProgram", p)
	prog, ok := r.programs[p.V]
	if !ok {
		return
	}
	var vs, fs string
	compiled := true
	for _, id := range prog.shaders {
		sh := r.shaders[id]
		if sh == nil {
			continue
		}
		compiled = compiled && sh.compiled
		switch sh.typ {
		case gl.VERTEX_SHADER:
			vs = sh.src
		case gl.FRAGMENT_SHADER:
			fs = sh.src
		}
	}
	prog.log = ""
	if !compiled {
		prog.log = "attached shader not compiled"
	} else if r.LinkLog != nil {
		prog.log = r.LinkLog(vs, fs)
	}
	prog.linked = prog.log == ""
	prog.attribs = make(map[string]int)
	prog.uniforms = make(map[string]int)
	if prog.linked {
		scan(attribExpr, vs, prog.attribs)
		scan(uniformExpr, vs, prog.uniforms)
		scan(uniformExpr, fs, prog.uniforms)
	}
}

func (r *Recorder) PixelStorei(pname gl.Enum, param int) {
	r.record("PixelStorei", enum(pname), param)
}

func (r *Recorder) ShaderSource(s gl.Shader, src string) {
	r.record("ShaderSource", s, src)
	if sh, ok := r.shaders[s.V]; ok {
		sh.src = src
	}
}

func (r *Recorder) TexImage2D(target gl.Enum, level int, internalFormat int, width, height int, format, ty gl.Enum, data []byte) {
	r.record("TexImage2D", enum(target), level, enum(gl.Enum(internalFormat)), width, height, enum(format), enum(ty), clone(data))
}

func (r *Recorder) TexParameteri(target, pname gl.Enum, param int) {
	r.record("TexParameteri", enum(target), enum(pname), enum(gl.Enum(param)))
}

func (r *Recorder) TexSubImage2D(target gl.Enum, level int, x, y, width, height int, format, ty gl.Enum, data []byte) {
	r.record("TexSubImage2D", enum(target), level, x, y, width, height, enum(format), enum(ty), clone(data))
}

func (r *Recorder) Uniform1f(dst gl.Uniform, v float32) {
	r.record("Uniform1f", dst, v)
}

func (r *Recorder) Uniform2f(dst gl.Uniform, v0, v1 float32) {
	r.record("Uniform2f", dst, v0, v1)
}

func (r *Recorder) Uniform3f(dst gl.Uniform, v0, v1, v2 float32) {
	r.record("Uniform3f", dst, v0, v1, v2)
}

func (r *Recorder) Uniform4f(dst gl.Uniform, v0, v1, v2, v3 float32) {
	r.record("Uniform4f", dst, v0, v1, v2, v3)
}

func (r *Recorder) Uniform1i(dst gl.Uniform, v int) {
	r.record("Uniform1i", dst, v)
}

func (r *Recorder) Uniform2i(dst gl.Uniform, v0, v1 int) {
	r.record("Uniform2i", dst, v0, v1)
}

func (r *Recorder) Uniform3i(dst gl.Uniform, v0, v1, v2 int) {
	r.record("Uniform3i", dst, v0, v1, v2)
}

func (r *Recorder) Uniform4i(dst gl.Uniform, v0, v1, v2, v3 int) {
	r.record("Uniform4i", dst, v0, v1, v2, v3)
}

func (r *Recorder) UseProgram(p gl.Program) {
	r.record("UseProgram", p)
}

func (r *Recorder) VertexAttribDivisor(a gl.Attrib, divisor int) {
	r.record("VertexAttribDivisor", a, divisor)
}

func (r *Recorder) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	r.record("VertexAttribPointer", dst, size, enum(ty), normalized, stride, offset)
}

func (r *Recorder) Viewport(x, y, width, height int) {
	r.record("Viewport", x, y, width, height)
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
