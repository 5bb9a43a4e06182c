// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/fugu-gfx/fugu/gl"
)

// ImageDesc describes a 2D image.
type ImageDesc struct {
	Width  int
	Height int
	Format ImageFormat
	Filter ImageFilter
	Wrap   ImageWrap
}

// Image is a 2D texture with 8-bit unsigned components.
type Image struct {
	ctx      *Context
	obj      gl.Texture
	desc     ImageDesc
	released bool
}

// NewImage creates an image. data holds tightly packed rows starting at
// the bottom left corner, or is nil for uninitialized contents.
func (c *Context) NewImage(desc ImageDesc, data []byte) (*Image, error) {
	if err := c.alive(); err != nil {
		return nil, err
	}
	if desc.Width <= 0 || desc.Height <= 0 {
		return nil, precondition("image size %dx%d", desc.Width, desc.Height)
	}
	if int(desc.Format) >= len(imageFormatNames) {
		return nil, precondition("invalid image format %d", desc.Format)
	}
	if data != nil {
		n := desc.Width * desc.Height * desc.Format.BytesPerPixel()
		if len(data) < n {
			return nil, precondition("image data too small: %d bytes, %d needed", len(data), n)
		}
		data = data[:n]
	}
	obj := c.funcs.CreateTexture()
	if !obj.Valid() {
		return nil, creationFailed("texture", nil)
	}
	f := c.funcs
	format := desc.Format.glFormat()
	f.BindTexture(gl.TEXTURE_2D, obj)
	f.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	f.TexImage2D(gl.TEXTURE_2D, 0, int(format), desc.Width, desc.Height, format, gl.UNSIGNED_BYTE, data)
	f.GenerateMipmap(gl.TEXTURE_2D)
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, desc.Filter.glFilter())
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, desc.Filter.glFilter())
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, desc.Wrap.glWrap())
	f.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, desc.Wrap.glWrap())
	if err := c.checkCreate("texture"); err != nil {
		f.DeleteTexture(obj)
		return nil, err
	}
	return &Image{ctx: c, obj: obj, desc: desc}, nil
}

// NewImageFromPicture creates an RGBA8 image from img. The pixels are
// converted to premultiplied RGBA and flipped so the first row of img
// ends up at the top of the texture.
func (c *Context) NewImageFromPicture(img image.Image, filter ImageFilter, wrap ImageWrap) (*Image, error) {
	sz := img.Bounds().Size()
	rgba := image.NewRGBA(image.Rectangle{Max: sz})
	draw.Copy(rgba, image.Point{}, img, img.Bounds(), draw.Src, nil)
	flipRows(rgba.Pix, rgba.Stride, sz.Y)
	return c.NewImage(ImageDesc{
		Width:  sz.X,
		Height: sz.Y,
		Format: ImageFormatRGBA8,
		Filter: filter,
		Wrap:   wrap,
	}, rgba.Pix)
}

func flipRows(pix []byte, stride, rows int) {
	tmp := make([]byte, stride)
	for y := 0; y < rows/2; y++ {
		top := pix[y*stride : (y+1)*stride]
		bottom := pix[(rows-1-y)*stride : (rows-y)*stride]
		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

// Update replaces the whole image contents.
func (img *Image) Update(data []byte) error {
	return img.UpdatePart(0, 0, img.desc.Width, img.desc.Height, data)
}

// UpdatePart replaces the w×h region at (x, y).
func (img *Image) UpdatePart(x, y, w, h int, data []byte) error {
	if img.released {
		return fmt.Errorf("image: %w", ErrReleased)
	}
	if err := img.ctx.alive(); err != nil {
		return err
	}
	if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > img.desc.Width || y+h > img.desc.Height {
		return precondition("image region (%d,%d) %dx%d out of bounds %dx%d", x, y, w, h, img.desc.Width, img.desc.Height)
	}
	n := w * h * img.desc.Format.BytesPerPixel()
	if len(data) < n {
		return precondition("image data too small: %d bytes, %d needed", len(data), n)
	}
	f := img.ctx.funcs
	format := img.desc.Format.glFormat()
	f.BindTexture(gl.TEXTURE_2D, img.obj)
	f.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	f.TexSubImage2D(gl.TEXTURE_2D, 0, x, y, w, h, format, gl.UNSIGNED_BYTE, data[:n])
	return nil
}

func (img *Image) Width() int {
	return img.desc.Width
}

func (img *Image) Height() int {
	return img.desc.Height
}

func (img *Image) Format() ImageFormat {
	return img.desc.Format
}

// Release deletes the texture. Further calls are no-ops.
func (img *Image) Release() {
	if img.released {
		return
	}
	img.ctx.funcs.DeleteTexture(img.obj)
	img.released = true
	img.ctx.debug("image released", "texture", img.obj.V)
}
