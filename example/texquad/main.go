// SPDX-License-Identifier: Unlicense OR MIT

//go:build !openbsd && !freebsd && !android && !ios && !js

// Command texquad draws a pulsing, textured quad with indexed geometry
// and alpha blending in a GLFW window.
package main

import (
	"image"
	"image/color"
	"log/slog"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/fugu-gfx/fugu/gl/glcore"
	"github.com/fugu-gfx/fugu/gpu"
)

const (
	vertSrc = `#version 330
in vec2 pos;
in vec2 uv;
uniform float scale;
out vec2 vuv;
void main() {
	vuv = uv;
	gl_Position = vec4(pos * scale, 0.0, 1.0);
}`
	fragSrc = `#version 330
in vec2 vuv;
uniform vec4 tint;
uniform sampler2D tex;
out vec4 fragColor;
void main() {
	fragColor = texture(tex, vuv) * tint;
}`
)

// uniforms matches the uniform declarations of the shader, in order.
type uniforms struct {
	Scale float32
	Tint  [4]float32
}

// checkerboard returns a size×size image of alternating cells.
func checkerboard(size, cell int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	light := color.NRGBA{R: 0xee, G: 0xe8, B: 0xd5, A: 0xff}
	dark := color.NRGBA{R: 0x26, G: 0x8b, B: 0xd2, A: 0xc0}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := light
			if (x/cell+y/cell)%2 == 1 {
				c = dark
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "texquad",
	})
	logger.SetLevel(log.DebugLevel)
	gpu.SetLogger(slog.New(logger))

	// Required by the OpenGL threading model.
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		logger.Fatal("glfw", "err", err)
	}
	defer glfw.Terminate()
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(640, 640, "fugu texquad", nil, nil)
	if err != nil {
		logger.Fatal("window", "err", err)
	}
	window.MakeContextCurrent()

	f, err := glcore.New(glfw.GetProcAddress)
	if err != nil {
		logger.Fatal("gl", "err", err)
	}
	ctx, err := gpu.NewContext(f, gpu.WithLabel("texquad"))
	if err != nil {
		logger.Fatal("context", "err", err)
	}
	defer ctx.Release()

	sh, err := ctx.NewShader(gpu.ShaderDesc{
		Vertex:   vertSrc,
		Fragment: fragSrc,
		Uniforms: []gpu.Uniform{
			{Name: "scale", Format: gpu.UniformFormatFloat1},
			{Name: "tint", Format: gpu.UniformFormatFloat4},
		},
		Images: []gpu.ImageUniform{{Name: "tex"}},
	})
	if err != nil {
		logger.Fatal("shader", "err", err)
	}
	pip, err := ctx.NewPipeline(gpu.PipelineDesc{
		Shader:  sh,
		Buffers: []gpu.BufferLayout{{}},
		Attributes: []gpu.VertexAttribute{
			{Name: "pos", Format: gpu.VertexFormatFloat2},
			{Name: "uv", Format: gpu.VertexFormatFloat2},
		},
		Primitive: gpu.PrimitiveTriangles,
	})
	if err != nil {
		logger.Fatal("pipeline", "err", err)
	}
	vertices := []float32{
		-0.5, -0.5, 0, 0,
		0.5, -0.5, 1, 0,
		0.5, 0.5, 1, 1,
		-0.5, 0.5, 0, 1,
	}
	indices := []uint16{0, 1, 2, 0, 2, 3}
	vbuf, err := ctx.NewBufferWithData(gpu.BufferKindVertex, gpu.BufferUsageStatic, gpu.Bytes(vertices))
	if err != nil {
		logger.Fatal("vertex buffer", "err", err)
	}
	defer vbuf.Release()
	ibuf, err := ctx.NewBufferWithData(gpu.BufferKindIndex, gpu.BufferUsageStatic, gpu.Bytes(indices))
	if err != nil {
		logger.Fatal("index buffer", "err", err)
	}
	defer ibuf.Release()
	tex, err := ctx.NewImageFromPicture(checkerboard(64, 8), gpu.FilterNearest, gpu.WrapRepeat)
	if err != nil {
		logger.Fatal("image", "err", err)
	}
	defer tex.Release()

	start := time.Now()
	for !window.ShouldClose() {
		glfw.PollEvents()
		width, height := window.GetFramebufferSize()
		t := time.Since(start).Seconds()

		ctx.BeginDefaultPass(gpu.ClearColor(0.0, 0.17, 0.21, 1))
		ctx.SetViewport(0, 0, width, height)
		ctx.SetBlend(gpu.AlphaBlend)
		if err := draw(ctx, pip, vbuf, ibuf, tex, float32(t)); err != nil {
			logger.Fatal("draw", "err", err)
		}
		ctx.EndRenderPass()
		ctx.CommitFrame()
		window.SwapBuffers()
	}
}

func draw(ctx *gpu.Context, pip gpu.Pipeline, vbuf, ibuf *gpu.Buffer, tex *gpu.Image, t float32) error {
	if err := ctx.SetPipeline(pip); err != nil {
		return err
	}
	if err := ctx.SetVertexBuffer(vbuf); err != nil {
		return err
	}
	if err := ctx.SetIndexBuffer(ibuf); err != nil {
		return err
	}
	if err := ctx.SetImages(tex); err != nil {
		return err
	}
	u := uniforms{
		Scale: 1 + 0.25*float32(math.Sin(float64(t))),
		Tint:  [4]float32{1, 1, 1, 1},
	}
	if err := ctx.SetUniformData(&u); err != nil {
		return err
	}
	return ctx.Draw(0, 6, 1)
}
