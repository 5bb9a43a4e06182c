// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import "github.com/fugu-gfx/fugu/gl"

type (
	BlendOp     uint8
	BlendFactor uint8
)

const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
)

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcColor
	BlendFactorOneMinusSrcColor
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorDstColor
	BlendFactorOneMinusDstColor
	BlendFactorDstAlpha
	BlendFactorOneMinusDstAlpha
)

// BlendState is a blend equation with its source and destination
// factors.
type BlendState struct {
	Op  BlendOp
	Src BlendFactor
	Dst BlendFactor
}

// AlphaBlend is standard non-premultiplied alpha blending.
var AlphaBlend = BlendState{Op: BlendOpAdd, Src: BlendFactorSrcAlpha, Dst: BlendFactorOneMinusSrcAlpha}

var (
	blendOpNames     = []string{"add", "subtract", "reverse_subtract"}
	blendFactorNames = []string{
		"zero", "one",
		"src_color", "one_minus_src_color",
		"src_alpha", "one_minus_src_alpha",
		"dst_color", "one_minus_dst_color",
		"dst_alpha", "one_minus_dst_alpha",
	}
)

func (o BlendOp) glEquation() gl.Enum {
	switch o {
	case BlendOpSubtract:
		return gl.FUNC_SUBTRACT
	case BlendOpReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	case BlendOpAdd:
		return gl.FUNC_ADD
	default:
		panic("invalid blend op")
	}
}

func (f BlendFactor) glFactor() gl.Enum {
	switch f {
	case BlendFactorZero:
		return gl.ZERO
	case BlendFactorOne:
		return gl.ONE
	case BlendFactorSrcColor:
		return gl.SRC_COLOR
	case BlendFactorOneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case BlendFactorSrcAlpha:
		return gl.SRC_ALPHA
	case BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case BlendFactorDstColor:
		return gl.DST_COLOR
	case BlendFactorOneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case BlendFactorDstAlpha:
		return gl.DST_ALPHA
	case BlendFactorOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	default:
		panic("invalid blend factor")
	}
}

func (o BlendOp) String() string { return enumString(blendOpNames, uint8(o)) }

func (o BlendOp) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *BlendOp) UnmarshalText(text []byte) error {
	v, err := parseEnum("blend op", blendOpNames, text)
	*o = BlendOp(v)
	return err
}

func (f BlendFactor) String() string { return enumString(blendFactorNames, uint8(f)) }

func (f BlendFactor) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *BlendFactor) UnmarshalText(text []byte) error {
	v, err := parseEnum("blend factor", blendFactorNames, text)
	*f = BlendFactor(v)
	return err
}

// SetBlend enables blending with the same equation for color and alpha.
func (c *Context) SetBlend(s BlendState) {
	if !c.active("SetBlend") {
		return
	}
	c.funcs.Enable(gl.BLEND)
	c.funcs.BlendEquation(s.Op.glEquation())
	c.funcs.BlendFunc(s.Src.glFactor(), s.Dst.glFactor())
}

// SetBlendSeparate enables blending with separate color and alpha
// equations.
func (c *Context) SetBlendSeparate(color, alpha BlendState) {
	if !c.active("SetBlendSeparate") {
		return
	}
	c.funcs.Enable(gl.BLEND)
	c.funcs.BlendEquationSeparate(color.Op.glEquation(), alpha.Op.glEquation())
	c.funcs.BlendFuncSeparate(color.Src.glFactor(), color.Dst.glFactor(), alpha.Src.glFactor(), alpha.Dst.glFactor())
}

// DisableBlend turns blending off.
func (c *Context) DisableBlend() {
	if !c.active("DisableBlend") {
		return
	}
	c.funcs.Disable(gl.BLEND)
}
