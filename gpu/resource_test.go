// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fugu-gfx/fugu/gl"
	"github.com/fugu-gfx/fugu/gl/gltrace"
)

func TestNewBuffer(t *testing.T) {
	ctx, r := newTestContext(t)
	r.Reset()
	b, err := ctx.NewBufferWithData(BufferKindVertex, BufferUsageStatic, Bytes([]float32{0, 1, 2}))
	require.NoError(t, err)
	assert.Equal(t, 12, b.Size())
	assert.Equal(t, BufferKindVertex, b.Kind())
	assert.Equal(t, BufferUsageStatic, b.Usage())
	assert.Equal(t, []string{
		"CreateBuffer()",
		fmt.Sprintf("BindBuffer(ARRAY_BUFFER, %d)", b.obj.V),
		"BufferData(ARRAY_BUFFER, 12, STATIC_DRAW, <12 bytes>)",
	}, r.Log())

	r.Reset()
	b, err = ctx.NewBuffer(BufferKindIndex, BufferUsageStream, 64)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"CreateBuffer()",
		fmt.Sprintf("BindBuffer(ELEMENT_ARRAY_BUFFER, %d)", b.obj.V),
		"BufferData(ELEMENT_ARRAY_BUFFER, 64, STREAM_DRAW, nil)",
	}, r.Log())
}

func TestNewBufferErrors(t *testing.T) {
	ctx, r := newTestContext(t)
	_, err := ctx.NewBuffer(BufferKindVertex, BufferUsageStatic, 16)
	assert.True(t, errors.Is(err, ErrPrecondition))
	_, err = ctx.NewBuffer(BufferKindVertex, BufferUsageDynamic, 0)
	assert.True(t, errors.Is(err, ErrPrecondition))
	_, err = ctx.NewBufferWithData(BufferKindVertex, BufferUsageStatic, nil)
	assert.True(t, errors.Is(err, ErrPrecondition))
	_, err = ctx.NewBuffer(BufferKind(9), BufferUsageDynamic, 4)
	assert.True(t, errors.Is(err, ErrPrecondition))

	r.FailCreate = true
	_, err = ctx.NewBuffer(BufferKindVertex, BufferUsageDynamic, 16)
	assert.True(t, errors.Is(err, ErrResourceCreation))
}

func TestErrorChecks(t *testing.T) {
	ctx, r := newTestContext(t, WithErrorChecks(true))
	r.PendingError = gl.OUT_OF_MEMORY
	_, err := ctx.NewBuffer(BufferKindVertex, BufferUsageDynamic, 1<<30)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResourceCreation))
	assert.Contains(t, err.Error(), "GL_OUT_OF_MEMORY")
	assert.Zero(t, r.Live(gltrace.KindBuffer))

	// Without error checks the pending error is left alone.
	ctx, r = newTestContext(t)
	r.PendingError = gl.OUT_OF_MEMORY
	_, err = ctx.NewBuffer(BufferKindVertex, BufferUsageDynamic, 16)
	assert.NoError(t, err)
	assert.Zero(t, r.Count("GetError"))
}

func TestBufferUpdate(t *testing.T) {
	ctx, r := newTestContext(t)
	b := newTestBuffer(t, ctx, BufferKindIndex, 8)
	r.Reset()
	require.NoError(t, b.Update(Bytes([]uint16{0, 1, 2})))
	require.NoError(t, b.UpdateRange(4, []byte{1, 2, 3, 4}))
	require.NoError(t, b.Update(nil))
	assert.Equal(t, []string{
		"BufferSubData(ELEMENT_ARRAY_BUFFER, 0, <6 bytes>)",
		"BufferSubData(ELEMENT_ARRAY_BUFFER, 4, <4 bytes>)",
	}, r.Log("BufferSubData"))

	r.Reset()
	assert.True(t, errors.Is(b.Update(make([]byte, 9)), ErrPrecondition))
	assert.True(t, errors.Is(b.UpdateRange(6, make([]byte, 4)), ErrPrecondition))
	assert.True(t, errors.Is(b.UpdateRange(-1, nil), ErrPrecondition))
	assert.Empty(t, r.Log())
}

func TestBufferRelease(t *testing.T) {
	ctx, r := newTestContext(t)
	b := newTestBuffer(t, ctx, BufferKindVertex, 16)
	b.Release()
	b.Release()
	assert.Equal(t, 1, r.Deleted(gltrace.KindBuffer, b.obj.V))
	assert.True(t, errors.Is(b.Update([]byte{1}), ErrReleased))
}

func TestDrawReleasedIndexBuffer(t *testing.T) {
	ctx, r := newTestContext(t)
	require.NoError(t, ctx.SetPipeline(newTestPipeline(t, ctx)))
	require.NoError(t, ctx.SetVertexBuffer(newTestBuffer(t, ctx, BufferKindVertex, 60)))
	ib := newTestBuffer(t, ctx, BufferKindIndex, 12)
	require.NoError(t, ctx.SetIndexBuffer(ib))
	ib.Release()
	err := ctx.Draw(0, 6, 1)
	assert.True(t, errors.Is(err, ErrReleased), "got %v", err)
	assert.Empty(t, r.Log("DrawArraysInstanced", "DrawElementsInstanced"))

	// A fresh index buffer takes the indexed path again.
	ib = newTestBuffer(t, ctx, BufferKindIndex, 12)
	require.NoError(t, ctx.SetIndexBuffer(ib))
	require.NoError(t, ctx.Draw(0, 6, 1))
	assert.Equal(t, []string{"DrawElementsInstanced(TRIANGLES, 6, UNSIGNED_SHORT, 0, 1)"},
		r.Log("DrawArraysInstanced", "DrawElementsInstanced"))
}

func TestDrawReleasedVertexBuffer(t *testing.T) {
	ctx, r := newTestContext(t)
	require.NoError(t, ctx.SetPipeline(newTestPipeline(t, ctx)))
	vb := newTestBuffer(t, ctx, BufferKindVertex, 60)
	ib := newTestBuffer(t, ctx, BufferKindIndex, 12)
	require.NoError(t, ctx.SetVertexBuffer(vb))
	require.NoError(t, ctx.SetIndexBuffer(ib))
	vb.Release()
	ib.Release()
	err := ctx.Draw(0, 6, 1)
	assert.True(t, errors.Is(err, ErrReleased), "got %v", err)
	assert.Contains(t, err.Error(), "vertex buffer 0")
	assert.Empty(t, r.Log("DrawArraysInstanced", "DrawElementsInstanced"))

	// CommitFrame drops the released bindings.
	ctx.CommitFrame()
	assert.Equal(t, StateIdle, ctx.State())
}

func TestReleasedIndexBufferNotRestored(t *testing.T) {
	ctx, r := newTestContext(t)
	a := newTestBuffer(t, ctx, BufferKindIndex, 12)
	require.NoError(t, ctx.SetIndexBuffer(a))
	a.Release()
	r.Reset()
	b := newTestBuffer(t, ctx, BufferKindIndex, 12)
	assert.Equal(t, []string{
		fmt.Sprintf("BindBuffer(ELEMENT_ARRAY_BUFFER, %d)", b.obj.V),
	}, r.Log("BindBuffer"))
}

func TestIndexBindingRestored(t *testing.T) {
	ctx, r := newTestContext(t)
	a := newTestBuffer(t, ctx, BufferKindIndex, 12)
	require.NoError(t, ctx.SetIndexBuffer(a))
	r.Reset()
	b := newTestBuffer(t, ctx, BufferKindIndex, 12)
	require.NoError(t, b.Update([]byte{1, 2}))
	assert.Equal(t, []string{
		fmt.Sprintf("BindBuffer(ELEMENT_ARRAY_BUFFER, %d)", b.obj.V),
		fmt.Sprintf("BindBuffer(ELEMENT_ARRAY_BUFFER, %d)", a.obj.V),
		fmt.Sprintf("BindBuffer(ELEMENT_ARRAY_BUFFER, %d)", b.obj.V),
		fmt.Sprintf("BindBuffer(ELEMENT_ARRAY_BUFFER, %d)", a.obj.V),
	}, r.Log("BindBuffer"))
}

func TestNewImage(t *testing.T) {
	ctx, r := newTestContext(t)
	r.Reset()
	img, err := ctx.NewImage(ImageDesc{
		Width:  2,
		Height: 2,
		Format: ImageFormatRGBA8,
		Filter: FilterLinear,
		Wrap:   WrapRepeat,
	}, make([]byte, 16))
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width())
	assert.Equal(t, 2, img.Height())
	assert.Equal(t, ImageFormatRGBA8, img.Format())
	assert.Equal(t, []string{
		"CreateTexture()",
		fmt.Sprintf("BindTexture(TEXTURE_2D, %d)", img.obj.V),
		"PixelStorei(UNPACK_ALIGNMENT, 1)",
		"TexImage2D(TEXTURE_2D, 0, RGBA, 2, 2, RGBA, UNSIGNED_BYTE, <16 bytes>)",
		"GenerateMipmap(TEXTURE_2D)",
		"TexParameteri(TEXTURE_2D, TEXTURE_MIN_FILTER, LINEAR)",
		"TexParameteri(TEXTURE_2D, TEXTURE_MAG_FILTER, LINEAR)",
		"TexParameteri(TEXTURE_2D, TEXTURE_WRAP_S, REPEAT)",
		"TexParameteri(TEXTURE_2D, TEXTURE_WRAP_T, REPEAT)",
	}, r.Log())

	r.Reset()
	_, err = ctx.NewImage(ImageDesc{Width: 3, Height: 1, Format: ImageFormatRGB8}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"TexImage2D(TEXTURE_2D, 0, RGB, 3, 1, RGB, UNSIGNED_BYTE, nil)",
		"TexParameteri(TEXTURE_2D, TEXTURE_MIN_FILTER, NEAREST)",
		"TexParameteri(TEXTURE_2D, TEXTURE_MAG_FILTER, NEAREST)",
		"TexParameteri(TEXTURE_2D, TEXTURE_WRAP_S, CLAMP_TO_EDGE)",
		"TexParameteri(TEXTURE_2D, TEXTURE_WRAP_T, CLAMP_TO_EDGE)",
	}, r.Log("TexImage2D", "TexParameteri"))
}

func TestNewImageErrors(t *testing.T) {
	ctx, r := newTestContext(t)
	_, err := ctx.NewImage(ImageDesc{Width: 0, Height: 2}, nil)
	assert.True(t, errors.Is(err, ErrPrecondition))
	_, err = ctx.NewImage(ImageDesc{Width: 2, Height: 2, Format: ImageFormatRGB8}, make([]byte, 11))
	assert.True(t, errors.Is(err, ErrPrecondition))
	r.FailCreate = true
	_, err = ctx.NewImage(ImageDesc{Width: 2, Height: 2}, nil)
	assert.True(t, errors.Is(err, ErrResourceCreation))
}

func TestImageUpdatePart(t *testing.T) {
	ctx, r := newTestContext(t)
	img, err := ctx.NewImage(ImageDesc{Width: 4, Height: 4, Format: ImageFormatRGBA8}, nil)
	require.NoError(t, err)
	r.Reset()
	require.NoError(t, img.UpdatePart(1, 2, 3, 2, make([]byte, 24)))
	require.NoError(t, img.Update(make([]byte, 64)))
	assert.Equal(t, []string{
		"TexSubImage2D(TEXTURE_2D, 0, 1, 2, 3, 2, RGBA, UNSIGNED_BYTE, <24 bytes>)",
		"TexSubImage2D(TEXTURE_2D, 0, 0, 0, 4, 4, RGBA, UNSIGNED_BYTE, <64 bytes>)",
	}, r.Log("TexSubImage2D"))

	r.Reset()
	tests := [][4]int{{-1, 0, 1, 1}, {2, 2, 3, 1}, {0, 3, 1, 2}, {0, 0, 0, 1}}
	for _, rect := range tests {
		err := img.UpdatePart(rect[0], rect[1], rect[2], rect[3], make([]byte, 64))
		assert.True(t, errors.Is(err, ErrPrecondition), "%v", rect)
	}
	assert.True(t, errors.Is(img.UpdatePart(0, 0, 2, 2, make([]byte, 15)), ErrPrecondition))
	assert.Zero(t, r.Count("TexSubImage2D"))
}

func TestImageRelease(t *testing.T) {
	ctx, r := newTestContext(t)
	img, err := ctx.NewImage(ImageDesc{Width: 1, Height: 1}, nil)
	require.NoError(t, err)
	img.Release()
	img.Release()
	assert.Equal(t, 1, r.Deleted(gltrace.KindTexture, img.obj.V))
	assert.True(t, errors.Is(img.Update(make([]byte, 3)), ErrReleased))
}

func TestNewImageFromPicture(t *testing.T) {
	ctx, r := newTestContext(t)
	src := image.NewNRGBA(image.Rect(10, 10, 12, 12))
	red := color.NRGBA{R: 0xff, A: 0xff}
	blue := color.NRGBA{B: 0xff, A: 0xff}
	src.SetNRGBA(10, 10, red)
	src.SetNRGBA(11, 10, red)
	src.SetNRGBA(10, 11, blue)
	src.SetNRGBA(11, 11, blue)
	img, err := ctx.NewImageFromPicture(src, FilterNearest, WrapClamp)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Width())
	assert.Equal(t, ImageFormatRGBA8, img.Format())
	calls := r.Calls("TexImage2D")
	require.Len(t, calls, 1)
	data := calls[0].Args[7].([]byte)
	// The bottom row of the picture comes first.
	assert.Equal(t, []byte{
		0, 0, 0xff, 0xff, 0, 0, 0xff, 0xff,
		0xff, 0, 0, 0xff, 0xff, 0, 0, 0xff,
	}, data)
}

func TestSetImages(t *testing.T) {
	ctx, r := newTestContext(t)
	require.NoError(t, ctx.SetPipeline(newTestPipeline(t, ctx)))
	a, err := ctx.NewImage(ImageDesc{Width: 1, Height: 1}, nil)
	require.NoError(t, err)
	b, err := ctx.NewImage(ImageDesc{Width: 1, Height: 1}, nil)
	require.NoError(t, err)
	r.Reset()
	require.NoError(t, ctx.SetImages(a, b))
	assert.Equal(t, []string{
		"ActiveTexture(TEXTURE0)",
		fmt.Sprintf("BindTexture(TEXTURE_2D, %d)", a.obj.V),
		"Uniform1i(2, 0)",
		"ActiveTexture(TEXTURE1)",
		fmt.Sprintf("BindTexture(TEXTURE_2D, %d)", b.obj.V),
		"Uniform1i(3, 1)",
	}, r.Log())

	r.Reset()
	assert.True(t, errors.Is(ctx.SetImages(a), ErrPrecondition))
	assert.True(t, errors.Is(ctx.SetImages(a, nil), ErrPrecondition))
	b.Release()
	r.Reset()
	assert.True(t, errors.Is(ctx.SetImages(a, b), ErrReleased))
	assert.Empty(t, r.Log())
}
