// SPDX-License-Identifier: Unlicense OR MIT

// Package glcore implements gl.Functions on top of an OpenGL 3.3 core
// profile context through github.com/go-gl/gl.
package glcore

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	fgl "github.com/fugu-gfx/fugu/gl"
)

// Functions calls into the current OpenGL context.
type Functions struct{}

var _ fgl.Functions = (*Functions)(nil)

// New loads the OpenGL entry points. If getProcAddr is nil the platform
// default loader is used. The context must be current on the calling
// thread.
func New(getProcAddr func(name string) unsafe.Pointer) (*Functions, error) {
	var err error
	if getProcAddr != nil {
		err = gl.InitWithProcAddrFunc(getProcAddr)
	} else {
		err = gl.Init()
	}
	if err != nil {
		return nil, err
	}
	return new(Functions), nil
}

func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}

func (f *Functions) ActiveTexture(texture fgl.Enum) {
	gl.ActiveTexture(uint32(texture))
}

func (f *Functions) AttachShader(p fgl.Program, s fgl.Shader) {
	gl.AttachShader(uint32(p.V), uint32(s.V))
}

func (f *Functions) BindBuffer(target fgl.Enum, b fgl.Buffer) {
	gl.BindBuffer(uint32(target), uint32(b.V))
}

func (f *Functions) BindFramebuffer(target fgl.Enum, fb fgl.Framebuffer) {
	gl.BindFramebuffer(uint32(target), uint32(fb.V))
}

func (f *Functions) BindTexture(target fgl.Enum, t fgl.Texture) {
	gl.BindTexture(uint32(target), uint32(t.V))
}

func (f *Functions) BindVertexArray(a fgl.VertexArray) {
	gl.BindVertexArray(uint32(a.V))
}

func (f *Functions) BlendEquation(mode fgl.Enum) {
	gl.BlendEquation(uint32(mode))
}

func (f *Functions) BlendEquationSeparate(modeRGB, modeAlpha fgl.Enum) {
	gl.BlendEquationSeparate(uint32(modeRGB), uint32(modeAlpha))
}

func (f *Functions) BlendFunc(sfactor, dfactor fgl.Enum) {
	gl.BlendFunc(uint32(sfactor), uint32(dfactor))
}

func (f *Functions) BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA fgl.Enum) {
	gl.BlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcA), uint32(dstA))
}

func (f *Functions) BufferData(target fgl.Enum, size int, usage fgl.Enum, data []byte) {
	gl.BufferData(uint32(target), size, ptr(data), uint32(usage))
}

func (f *Functions) BufferSubData(target fgl.Enum, offset int, src []byte) {
	gl.BufferSubData(uint32(target), offset, len(src), ptr(src))
}

func (f *Functions) Clear(mask fgl.Enum) {
	gl.Clear(uint32(mask))
}

func (f *Functions) ClearColor(red, green, blue, alpha float32) {
	gl.ClearColor(red, green, blue, alpha)
}

func (f *Functions) ClearDepthf(d float32) {
	gl.ClearDepthf(d)
}

func (f *Functions) ClearStencil(s int) {
	gl.ClearStencil(int32(s))
}

func (f *Functions) CompileShader(s fgl.Shader) {
	gl.CompileShader(uint32(s.V))
}

func (f *Functions) CreateBuffer() fgl.Buffer {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return fgl.Buffer{V: uint(buf)}
}

func (f *Functions) CreateProgram() fgl.Program {
	return fgl.Program{V: uint(gl.CreateProgram())}
}

func (f *Functions) CreateShader(ty fgl.Enum) fgl.Shader {
	return fgl.Shader{V: uint(gl.CreateShader(uint32(ty)))}
}

func (f *Functions) CreateTexture() fgl.Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return fgl.Texture{V: uint(t)}
}

func (f *Functions) CreateVertexArray() fgl.VertexArray {
	var a uint32
	gl.GenVertexArrays(1, &a)
	return fgl.VertexArray{V: uint(a)}
}

func (f *Functions) DeleteBuffer(v fgl.Buffer) {
	buf := uint32(v.V)
	gl.DeleteBuffers(1, &buf)
}

func (f *Functions) DeleteProgram(p fgl.Program) {
	gl.DeleteProgram(uint32(p.V))
}

func (f *Functions) DeleteShader(s fgl.Shader) {
	gl.DeleteShader(uint32(s.V))
}

func (f *Functions) DeleteTexture(v fgl.Texture) {
	t := uint32(v.V)
	gl.DeleteTextures(1, &t)
}

func (f *Functions) DeleteVertexArray(a fgl.VertexArray) {
	va := uint32(a.V)
	gl.DeleteVertexArrays(1, &va)
}

func (f *Functions) Disable(cap fgl.Enum) {
	gl.Disable(uint32(cap))
}

func (f *Functions) DrawArraysInstanced(mode fgl.Enum, first, count, instances int) {
	gl.DrawArraysInstanced(uint32(mode), int32(first), int32(count), int32(instances))
}

func (f *Functions) DrawElementsInstanced(mode fgl.Enum, count int, ty fgl.Enum, offset, instances int) {
	gl.DrawElementsInstanced(uint32(mode), int32(count), uint32(ty), gl.PtrOffset(offset), int32(instances))
}

func (f *Functions) Enable(cap fgl.Enum) {
	gl.Enable(uint32(cap))
}

func (f *Functions) EnableVertexAttribArray(a fgl.Attrib) {
	gl.EnableVertexAttribArray(uint32(a))
}

func (f *Functions) GenerateMipmap(target fgl.Enum) {
	gl.GenerateMipmap(uint32(target))
}

func (f *Functions) GetAttribLocation(p fgl.Program, name string) int {
	return int(gl.GetAttribLocation(uint32(p.V), gl.Str(name+"\x00")))
}

func (f *Functions) GetError() fgl.Enum {
	return fgl.Enum(gl.GetError())
}

func (f *Functions) GetInteger(pname fgl.Enum) int {
	var p [16]int32
	gl.GetIntegerv(uint32(pname), &p[0])
	return int(p[0])
}

func (f *Functions) GetProgrami(p fgl.Program, pname fgl.Enum) int {
	var i int32
	gl.GetProgramiv(uint32(p.V), uint32(pname), &i)
	return int(i)
}

func (f *Functions) GetProgramInfoLog(p fgl.Program) string {
	var logLength int32
	gl.GetProgramiv(uint32(p.V), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(uint32(p.V), logLength, nil, gl.Str(log))
	return infoLog(log, logLength)
}

// infoLog trims an info log of length n to its text. n counts the NUL
// terminator.
func infoLog(log string, n int32) string {
	if n <= 0 {
		return ""
	}
	return log[:n-1]
}

func (f *Functions) GetShaderi(s fgl.Shader, pname fgl.Enum) int {
	var i int32
	gl.GetShaderiv(uint32(s.V), uint32(pname), &i)
	return int(i)
}

func (f *Functions) GetShaderInfoLog(s fgl.Shader) string {
	var logLength int32
	gl.GetShaderiv(uint32(s.V), gl.INFO_LOG_LENGTH, &logLength)
	if logLength <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(uint32(s.V), logLength, nil, gl.Str(log))
	return infoLog(log, logLength)
}

func (f *Functions) GetString(pname fgl.Enum) string {
	return gl.GoStr(gl.GetString(uint32(pname)))
}

func (f *Functions) GetUniformLocation(p fgl.Program, name string) fgl.Uniform {
	return fgl.Uniform{V: int(gl.GetUniformLocation(uint32(p.V), gl.Str(name+"\x00")))}
}

func (f *Functions) LinkProgram(p fgl.Program) {
	gl.LinkProgram(uint32(p.V))
}

func (f *Functions) PixelStorei(pname fgl.Enum, param int) {
	gl.PixelStorei(uint32(pname), int32(param))
}

func (f *Functions) ShaderSource(s fgl.Shader, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(uint32(s.V), 1, csources, nil)
	free()
}

func (f *Functions) TexImage2D(target fgl.Enum, level int, internalFormat int, width, height int, format, ty fgl.Enum, data []byte) {
	gl.TexImage2D(uint32(target), int32(level), int32(internalFormat), int32(width), int32(height), 0, uint32(format), uint32(ty), ptr(data))
}

func (f *Functions) TexParameteri(target, pname fgl.Enum, param int) {
	gl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (f *Functions) TexSubImage2D(target fgl.Enum, level int, x, y, width, height int, format, ty fgl.Enum, data []byte) {
	gl.TexSubImage2D(uint32(target), int32(level), int32(x), int32(y), int32(width), int32(height), uint32(format), uint32(ty), ptr(data))
}

func (f *Functions) Uniform1f(dst fgl.Uniform, v float32) {
	gl.Uniform1f(int32(dst.V), v)
}

func (f *Functions) Uniform2f(dst fgl.Uniform, v0, v1 float32) {
	gl.Uniform2f(int32(dst.V), v0, v1)
}

func (f *Functions) Uniform3f(dst fgl.Uniform, v0, v1, v2 float32) {
	gl.Uniform3f(int32(dst.V), v0, v1, v2)
}

func (f *Functions) Uniform4f(dst fgl.Uniform, v0, v1, v2, v3 float32) {
	gl.Uniform4f(int32(dst.V), v0, v1, v2, v3)
}

func (f *Functions) Uniform1i(dst fgl.Uniform, v int) {
	gl.Uniform1i(int32(dst.V), int32(v))
}

func (f *Functions) Uniform2i(dst fgl.Uniform, v0, v1 int) {
	gl.Uniform2i(int32(dst.V), int32(v0), int32(v1))
}

func (f *Functions) Uniform3i(dst fgl.Uniform, v0, v1, v2 int) {
	gl.Uniform3i(int32(dst.V), int32(v0), int32(v1), int32(v2))
}

func (f *Functions) Uniform4i(dst fgl.Uniform, v0, v1, v2, v3 int) {
	gl.Uniform4i(int32(dst.V), int32(v0), int32(v1), int32(v2), int32(v3))
}

func (f *Functions) UseProgram(p fgl.Program) {
	gl.UseProgram(uint32(p.V))
}

func (f *Functions) VertexAttribDivisor(a fgl.Attrib, divisor int) {
	gl.VertexAttribDivisor(uint32(a), uint32(divisor))
}

func (f *Functions) VertexAttribPointer(dst fgl.Attrib, size int, ty fgl.Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointerWithOffset(uint32(dst), int32(size), uint32(ty), normalized, int32(stride), uintptr(offset))
}

func (f *Functions) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}
