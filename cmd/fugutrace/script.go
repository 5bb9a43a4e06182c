// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/fugu-gfx/fugu/gl"
	"github.com/fugu-gfx/fugu/gpu"
)

// script is a frame script: resources declared up front, followed by the
// frames that draw with them.
type script struct {
	Shaders   []shaderDecl   `toml:"shader"`
	Buffers   []bufferDecl   `toml:"buffer"`
	Images    []imageDecl    `toml:"image"`
	Pipelines []pipelineDecl `toml:"pipeline"`
	Frames    []frameDecl    `toml:"frame"`

	// dir resolves relative shader file names.
	dir string
}

type shaderDecl struct {
	Name         string        `toml:"name"`
	Vertex       string        `toml:"vertex"`
	VertexFile   string        `toml:"vertex_file"`
	Fragment     string        `toml:"fragment"`
	FragmentFile string        `toml:"fragment_file"`
	Uniforms     []gpu.Uniform `toml:"uniforms"`
	Images       []string      `toml:"images"`
}

type bufferDecl struct {
	Name    string          `toml:"name"`
	Kind    gpu.BufferKind  `toml:"kind"`
	Usage   gpu.BufferUsage `toml:"usage"`
	Size    int             `toml:"size"`
	Floats  []float32       `toml:"floats"`
	Indices []uint32        `toml:"indices"`
}

type imageDecl struct {
	Name    string          `toml:"name"`
	Width   int             `toml:"width"`
	Height  int             `toml:"height"`
	Format  gpu.ImageFormat `toml:"format"`
	Filter  gpu.ImageFilter `toml:"filter"`
	Wrap    gpu.ImageWrap   `toml:"wrap"`
	Fill    [4]uint8        `toml:"fill"`
	Checker *[4]uint8       `toml:"checker"`
}

type pipelineDecl struct {
	Name       string                `toml:"name"`
	Shader     string                `toml:"shader"`
	Primitive  gpu.Primitive         `toml:"primitive"`
	Buffers    []bufferLayoutDecl    `toml:"buffers"`
	Attributes []vertexAttributeDecl `toml:"attributes"`
}

type bufferLayoutDecl struct {
	Stride int            `toml:"stride"`
	Step   gpu.VertexStep `toml:"step"`
}

type vertexAttributeDecl struct {
	Name   string           `toml:"name"`
	Format gpu.VertexFormat `toml:"format"`
	Buffer int              `toml:"buffer"`
}

type frameDecl struct {
	Clear    []float32       `toml:"clear"`
	Depth    *float32        `toml:"depth"`
	Stencil  *int            `toml:"stencil"`
	Viewport []int           `toml:"viewport"`
	Blend    *gpu.BlendState `toml:"blend"`
	Draws    []drawDecl      `toml:"draw"`
}

type drawDecl struct {
	Pipeline      string    `toml:"pipeline"`
	VertexBuffers []string  `toml:"vertex_buffers"`
	IndexBuffer   string    `toml:"index_buffer"`
	Images        []string  `toml:"images"`
	Uniforms      []float32 `toml:"uniforms"`
	Start         int       `toml:"start"`
	Count         int       `toml:"count"`
	// Instances defaults to 1.
	Instances int `toml:"instances"`
}

func loadScript(path string) (*script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := parseScript(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	return s, nil
}

func parseScript(r io.Reader) (*script, error) {
	s := new(script)
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(s); err != nil {
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return nil, errors.New(serr.String())
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("line %d, column %d: %v", row, col, derr)
		}
		return nil, err
	}
	return s, nil
}

// files returns the shader files the script reads.
func (s *script) files() []string {
	var res []string
	for _, sh := range s.Shaders {
		for _, f := range []string{sh.VertexFile, sh.FragmentFile} {
			if f != "" {
				res = append(res, s.path(f))
			}
		}
	}
	return res
}

func (s *script) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

func (s *script) source(inline, file string) (string, error) {
	switch {
	case inline != "" && file != "":
		return "", errors.New("both inline source and file given")
	case file != "":
		src, err := os.ReadFile(s.path(file))
		return string(src), err
	case inline == "":
		return "", errors.New("missing source")
	}
	return inline, nil
}

// runner executes a script against a context.
type runner struct {
	ctx *gpu.Context
	// layout receives the computed vertex layout of every pipeline.
	layout io.Writer

	shaders   map[string]*gpu.Shader
	buffers   map[string]*gpu.Buffer
	images    map[string]*gpu.Image
	pipelines map[string]gpu.Pipeline
}

// run creates a context on f, builds the script's resources and draws
// its frames. The context is released before run returns.
func run(s *script, f gl.Functions, layout io.Writer, opts ...gpu.Option) error {
	ctx, err := gpu.NewContext(f, opts...)
	if err != nil {
		return err
	}
	defer ctx.Release()
	r := &runner{
		ctx:       ctx,
		layout:    layout,
		shaders:   make(map[string]*gpu.Shader),
		buffers:   make(map[string]*gpu.Buffer),
		images:    make(map[string]*gpu.Image),
		pipelines: make(map[string]gpu.Pipeline),
	}
	defer r.release()
	for _, sh := range s.Shaders {
		if err := r.newShader(s, sh); err != nil {
			return fmt.Errorf("shader %q: %w", sh.Name, err)
		}
	}
	for _, b := range s.Buffers {
		if err := r.newBuffer(b); err != nil {
			return fmt.Errorf("buffer %q: %w", b.Name, err)
		}
	}
	for _, img := range s.Images {
		if err := r.newImage(img); err != nil {
			return fmt.Errorf("image %q: %w", img.Name, err)
		}
	}
	for _, p := range s.Pipelines {
		if err := r.newPipeline(p); err != nil {
			return fmt.Errorf("pipeline %q: %w", p.Name, err)
		}
	}
	for i, fr := range s.Frames {
		if err := r.frame(fr); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return nil
}

// release frees the runner's resources in name order, keeping the trace
// output stable between runs.
func (r *runner) release() {
	for _, name := range slices.Sorted(maps.Keys(r.buffers)) {
		r.buffers[name].Release()
	}
	for _, name := range slices.Sorted(maps.Keys(r.images)) {
		r.images[name].Release()
	}
	// Shaders owned by pipelines are released with the context.
	for _, name := range slices.Sorted(maps.Keys(r.shaders)) {
		r.shaders[name].Release()
	}
}

func checkName[T any](m map[string]T, name string) error {
	if name == "" {
		return errors.New("missing name")
	}
	if _, dup := m[name]; dup {
		return errors.New("duplicate name")
	}
	return nil
}

func lookup[T any](m map[string]T, kind, name string) (T, error) {
	v, ok := m[name]
	if !ok {
		return v, fmt.Errorf("unknown %s %q", kind, name)
	}
	return v, nil
}

func (r *runner) newShader(s *script, decl shaderDecl) error {
	if err := checkName(r.shaders, decl.Name); err != nil {
		return err
	}
	vs, err := s.source(decl.Vertex, decl.VertexFile)
	if err != nil {
		return fmt.Errorf("vertex: %w", err)
	}
	fs, err := s.source(decl.Fragment, decl.FragmentFile)
	if err != nil {
		return fmt.Errorf("fragment: %w", err)
	}
	desc := gpu.ShaderDesc{
		Vertex:   vs,
		Fragment: fs,
		Uniforms: decl.Uniforms,
	}
	for _, name := range decl.Images {
		desc.Images = append(desc.Images, gpu.ImageUniform{Name: name})
	}
	sh, err := r.ctx.NewShader(desc)
	if err != nil {
		return err
	}
	r.shaders[decl.Name] = sh
	return nil
}

func (r *runner) newBuffer(decl bufferDecl) error {
	if err := checkName(r.buffers, decl.Name); err != nil {
		return err
	}
	var data []byte
	switch {
	case decl.Floats != nil && decl.Indices != nil:
		return errors.New("both floats and indices given")
	case decl.Floats != nil:
		data = gpu.Bytes(decl.Floats)
	case decl.Kind == gpu.BufferKindIndex:
		idx := make([]uint16, len(decl.Indices))
		for i, v := range decl.Indices {
			if v > 0xffff {
				return fmt.Errorf("index %d out of 16-bit range", v)
			}
			idx[i] = uint16(v)
		}
		data = gpu.Bytes(idx)
	case decl.Indices != nil:
		data = gpu.Bytes(decl.Indices)
	}
	var (
		b   *gpu.Buffer
		err error
	)
	if data != nil {
		b, err = r.ctx.NewBufferWithData(decl.Kind, decl.Usage, data)
	} else {
		b, err = r.ctx.NewBuffer(decl.Kind, decl.Usage, decl.Size)
	}
	if err != nil {
		return err
	}
	r.buffers[decl.Name] = b
	return nil
}

func (r *runner) newImage(decl imageDecl) error {
	if err := checkName(r.images, decl.Name); err != nil {
		return err
	}
	desc := gpu.ImageDesc{
		Width:  decl.Width,
		Height: decl.Height,
		Format: decl.Format,
		Filter: decl.Filter,
		Wrap:   decl.Wrap,
	}
	var (
		img *gpu.Image
		err error
	)
	if decl.Format == gpu.ImageFormatRGBA8 && decl.Width > 0 && decl.Height > 0 {
		img, err = r.ctx.NewImageFromPicture(decl.picture(), decl.Filter, decl.Wrap)
	} else {
		img, err = r.ctx.NewImage(desc, decl.pixels())
	}
	if err != nil {
		return err
	}
	r.images[decl.Name] = img
	return nil
}

// colorAt returns the fill color at (x, y), alternating with the checker
// color when one is given.
func (decl imageDecl) colorAt(x, y int) [4]uint8 {
	if decl.Checker != nil && (x+y)%2 == 1 {
		return *decl.Checker
	}
	return decl.Fill
}

func (decl imageDecl) picture() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, decl.Width, decl.Height))
	for y := 0; y < decl.Height; y++ {
		for x := 0; x < decl.Width; x++ {
			c := decl.colorAt(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]})
		}
	}
	return img
}

func (decl imageDecl) pixels() []byte {
	if decl.Width <= 0 || decl.Height <= 0 {
		return nil
	}
	bpp := decl.Format.BytesPerPixel()
	pix := make([]byte, 0, decl.Width*decl.Height*bpp)
	for y := 0; y < decl.Height; y++ {
		for x := 0; x < decl.Width; x++ {
			c := decl.colorAt(x, y)
			pix = append(pix, c[:bpp]...)
		}
	}
	return pix
}

func (r *runner) newPipeline(decl pipelineDecl) error {
	sh, err := lookup(r.shaders, "shader", decl.Shader)
	if err != nil {
		return err
	}
	if err := checkName(r.pipelines, decl.Name); err != nil {
		return err
	}
	desc := gpu.PipelineDesc{
		Shader:    sh,
		Primitive: decl.Primitive,
	}
	for _, b := range decl.Buffers {
		desc.Buffers = append(desc.Buffers, gpu.BufferLayout{Stride: b.Stride, Step: b.Step})
	}
	for _, a := range decl.Attributes {
		desc.Attributes = append(desc.Attributes, gpu.VertexAttribute{
			Name:        a.Name,
			Format:      a.Format,
			BufferIndex: a.Buffer,
		})
	}
	p, err := r.ctx.NewPipeline(desc)
	if err != nil {
		return err
	}
	// The pipeline owns the shader now.
	delete(r.shaders, decl.Shader)
	if r.layout != nil {
		slots, err := r.ctx.PipelineLayout(p)
		if err != nil {
			return err
		}
		printLayout(r.layout, decl.Name, slots)
	}
	r.pipelines[decl.Name] = p
	return nil
}

func printLayout(w io.Writer, name string, slots [][]gpu.AttributeLayout) {
	for i, slot := range slots {
		for _, a := range slot {
			fmt.Fprintf(w, "%s[%d] %s %s offset=%d stride=%d divisor=%d\n",
				name, i, a.Name, a.Format, a.Offset, a.Stride, a.Divisor)
		}
	}
}

func (r *runner) frame(decl frameDecl) error {
	var action gpu.PassAction
	if decl.Clear != nil {
		if len(decl.Clear) != 4 {
			return fmt.Errorf("clear color needs 4 components, got %d", len(decl.Clear))
		}
		c := decl.Clear
		action = gpu.ClearColor(c[0], c[1], c[2], c[3])
	}
	if decl.Depth != nil {
		action = action.WithDepth(*decl.Depth)
	}
	if decl.Stencil != nil {
		action = action.WithStencil(*decl.Stencil)
	}
	r.ctx.BeginDefaultPass(action)
	if v := decl.Viewport; v != nil {
		if len(v) != 4 {
			return fmt.Errorf("viewport needs 4 values, got %d", len(v))
		}
		r.ctx.SetViewport(v[0], v[1], v[2], v[3])
	}
	if decl.Blend != nil {
		r.ctx.SetBlend(*decl.Blend)
	} else {
		r.ctx.DisableBlend()
	}
	for i, d := range decl.Draws {
		if err := r.draw(d); err != nil {
			return fmt.Errorf("draw %d: %w", i, err)
		}
	}
	r.ctx.EndRenderPass()
	r.ctx.CommitFrame()
	return nil
}

func (r *runner) draw(decl drawDecl) error {
	p, err := lookup(r.pipelines, "pipeline", decl.Pipeline)
	if err != nil {
		return err
	}
	if err := r.ctx.SetPipeline(p); err != nil {
		return err
	}
	var vbufs []*gpu.Buffer
	for _, name := range decl.VertexBuffers {
		b, err := lookup(r.buffers, "buffer", name)
		if err != nil {
			return err
		}
		vbufs = append(vbufs, b)
	}
	if err := r.ctx.SetVertexBuffers(vbufs...); err != nil {
		return err
	}
	if decl.IndexBuffer != "" {
		b, err := lookup(r.buffers, "buffer", decl.IndexBuffer)
		if err != nil {
			return err
		}
		if err := r.ctx.SetIndexBuffer(b); err != nil {
			return err
		}
	}
	if len(decl.Images) > 0 {
		var imgs []*gpu.Image
		for _, name := range decl.Images {
			img, err := lookup(r.images, "image", name)
			if err != nil {
				return err
			}
			imgs = append(imgs, img)
		}
		if err := r.ctx.SetImages(imgs...); err != nil {
			return err
		}
	}
	if decl.Uniforms != nil {
		vals, err := r.uniformValues(p, decl.Uniforms)
		if err != nil {
			return err
		}
		if err := r.ctx.SetUniforms(vals...); err != nil {
			return err
		}
	}
	instances := decl.Instances
	if instances == 0 {
		instances = 1
	}
	return r.ctx.Draw(decl.Start, decl.Count, instances)
}

// uniformValues splits a flat list of numbers into values for the
// uniforms of p's shader, in declaration order.
func (r *runner) uniformValues(p gpu.Pipeline, nums []float32) ([]gpu.UniformValue, error) {
	sh, err := r.ctx.PipelineShader(p)
	if err != nil {
		return nil, err
	}
	var vals []gpu.UniformValue
	for _, u := range sh.Uniforms() {
		n := u.Format.Components()
		if len(nums) < n {
			return nil, fmt.Errorf("uniform %q: %d values left, %d needed", u.Name, len(nums), n)
		}
		vals = append(vals, uniformValue(u.Format, nums[:n]))
		nums = nums[n:]
	}
	if len(nums) > 0 {
		return nil, fmt.Errorf("%d extra uniform values", len(nums))
	}
	return vals, nil
}

func uniformValue(f gpu.UniformFormat, v []float32) gpu.UniformValue {
	switch f {
	case gpu.UniformFormatFloat1:
		return gpu.Float1(v[0])
	case gpu.UniformFormatFloat2:
		return gpu.Float2(v[0], v[1])
	case gpu.UniformFormatFloat3:
		return gpu.Float3(v[0], v[1], v[2])
	case gpu.UniformFormatFloat4:
		return gpu.Float4(v[0], v[1], v[2], v[3])
	case gpu.UniformFormatInt1:
		return gpu.Int1(int32(v[0]))
	case gpu.UniformFormatInt2:
		return gpu.Int2(int32(v[0]), int32(v[1]))
	case gpu.UniformFormatInt3:
		return gpu.Int3(int32(v[0]), int32(v[1]), int32(v[2]))
	default:
		return gpu.Int4(int32(v[0]), int32(v[1]), int32(v[2]), int32(v[3]))
	}
}
