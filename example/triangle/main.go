// SPDX-License-Identifier: Unlicense OR MIT

//go:build !openbsd && !freebsd && !android && !ios && !js

// Command triangle draws a colored triangle in a GLFW window.
package main

import (
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/fugu-gfx/fugu/gl/glcore"
	"github.com/fugu-gfx/fugu/gpu"
)

const (
	vertSrc = `#version 330
in vec2 pos;
in vec3 color;
out vec3 vcolor;
void main() {
	vcolor = color;
	gl_Position = vec4(pos, 0.0, 1.0);
}`
	fragSrc = `#version 330
in vec3 vcolor;
out vec4 fragColor;
void main() {
	fragColor = vec4(vcolor, 1.0);
}`
)

func main() {
	// Required by the OpenGL threading model.
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		log.Fatal("glfw", "err", err)
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(640, 480, "fugu triangle", nil, nil)
	if err != nil {
		log.Fatal("window", "err", err)
	}
	window.MakeContextCurrent()

	f, err := glcore.New(glfw.GetProcAddress)
	if err != nil {
		log.Fatal("gl", "err", err)
	}
	ctx, err := gpu.NewContext(f, gpu.WithErrorChecks(true))
	if err != nil {
		log.Fatal("context", "err", err)
	}
	defer ctx.Release()

	sh, err := ctx.NewShader(gpu.ShaderDesc{Vertex: vertSrc, Fragment: fragSrc})
	if err != nil {
		log.Fatal("shader", "err", err)
	}
	pip, err := ctx.NewPipeline(gpu.PipelineDesc{
		Shader:  sh,
		Buffers: []gpu.BufferLayout{{}},
		Attributes: []gpu.VertexAttribute{
			{Name: "pos", Format: gpu.VertexFormatFloat2},
			{Name: "color", Format: gpu.VertexFormatFloat3},
		},
	})
	if err != nil {
		log.Fatal("pipeline", "err", err)
	}
	vertices := []float32{
		0.0, 0.5, 1, 0, 0,
		0.5, -0.5, 0, 1, 0,
		-0.5, -0.5, 0, 0, 1,
	}
	vbuf, err := ctx.NewBufferWithData(gpu.BufferKindVertex, gpu.BufferUsageStatic, gpu.Bytes(vertices))
	if err != nil {
		log.Fatal("buffer", "err", err)
	}
	defer vbuf.Release()

	for !window.ShouldClose() {
		glfw.PollEvents()
		width, height := window.GetFramebufferSize()
		ctx.BeginDefaultPass(gpu.ClearColor(0.1, 0.1, 0.1, 1))
		ctx.SetViewport(0, 0, width, height)
		if err := ctx.SetPipeline(pip); err != nil {
			log.Fatal("draw", "err", err)
		}
		if err := ctx.SetVertexBuffer(vbuf); err != nil {
			log.Fatal("draw", "err", err)
		}
		if err := ctx.Draw(0, 3, 1); err != nil {
			log.Fatal("draw", "err", err)
		}
		ctx.EndRenderPass()
		ctx.CommitFrame()
		window.SwapBuffers()
	}
}
