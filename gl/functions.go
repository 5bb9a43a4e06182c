// SPDX-License-Identifier: Unlicense OR MIT

// Package gl defines the OpenGL capability surface used by package gpu.
//
// Functions is implemented by gl/glcore for real contexts and by
// gl/gltrace for headless recording. Implementations are not safe for
// concurrent use and must be called from the goroutine that owns the
// GL context.
package gl

// Functions is the set of OpenGL entry points consumed by package gpu.
type Functions interface {
	ActiveTexture(texture Enum)
	AttachShader(p Program, s Shader)
	BindBuffer(target Enum, b Buffer)
	BindFramebuffer(target Enum, fb Framebuffer)
	BindTexture(target Enum, t Texture)
	BindVertexArray(a VertexArray)
	BlendEquation(mode Enum)
	BlendEquationSeparate(modeRGB, modeAlpha Enum)
	BlendFunc(sfactor, dfactor Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA Enum)
	// BufferData allocates size bytes for the buffer bound to target.
	// If data is non-nil its contents initialize the buffer.
	BufferData(target Enum, size int, usage Enum, data []byte)
	BufferSubData(target Enum, offset int, src []byte)
	Clear(mask Enum)
	ClearColor(red, green, blue, alpha float32)
	ClearDepthf(d float32)
	ClearStencil(s int)
	CompileShader(s Shader)
	CreateBuffer() Buffer
	CreateProgram() Program
	CreateShader(ty Enum) Shader
	CreateTexture() Texture
	CreateVertexArray() VertexArray
	DeleteBuffer(v Buffer)
	DeleteProgram(p Program)
	DeleteShader(s Shader)
	DeleteTexture(v Texture)
	DeleteVertexArray(a VertexArray)
	Disable(cap Enum)
	DrawArraysInstanced(mode Enum, first, count, instances int)
	DrawElementsInstanced(mode Enum, count int, ty Enum, offset, instances int)
	Enable(cap Enum)
	EnableVertexAttribArray(a Attrib)
	GenerateMipmap(target Enum)
	// GetAttribLocation returns -1 if name is not an active attribute.
	GetAttribLocation(p Program, name string) int
	GetError() Enum
	GetInteger(pname Enum) int
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	GetString(pname Enum) string
	GetUniformLocation(p Program, name string) Uniform
	LinkProgram(p Program)
	PixelStorei(pname Enum, param int)
	ShaderSource(s Shader, src string)
	TexImage2D(target Enum, level int, internalFormat int, width, height int, format, ty Enum, data []byte)
	TexParameteri(target, pname Enum, param int)
	TexSubImage2D(target Enum, level int, x, y, width, height int, format, ty Enum, data []byte)
	Uniform1f(dst Uniform, v float32)
	Uniform2f(dst Uniform, v0, v1 float32)
	Uniform3f(dst Uniform, v0, v1, v2 float32)
	Uniform4f(dst Uniform, v0, v1, v2, v3 float32)
	Uniform1i(dst Uniform, v int)
	Uniform2i(dst Uniform, v0, v1 int)
	Uniform3i(dst Uniform, v0, v1, v2 int)
	Uniform4i(dst Uniform, v0, v1, v2, v3 int)
	UseProgram(p Program)
	VertexAttribDivisor(a Attrib, divisor int)
	VertexAttribPointer(dst Attrib, size int, ty Enum, normalized bool, stride, offset int)
	Viewport(x, y, width, height int)
}
