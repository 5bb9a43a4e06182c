// SPDX-License-Identifier: Unlicense OR MIT

package gltrace

import (
	"fmt"
	"strings"

	"github.com/fugu-gfx/fugu/gl"
)

// Enum is a recorded enum argument together with its symbolic name.
type Enum struct {
	V    gl.Enum
	Name string
}

func (e Enum) String() string {
	return e.Name
}

var enumNames = map[gl.Enum]string{
	gl.ARRAY_BUFFER:          "ARRAY_BUFFER",
	gl.BLEND:                 "BLEND",
	gl.BYTE:                  "BYTE",
	gl.CLAMP_TO_EDGE:         "CLAMP_TO_EDGE",
	gl.COMPILE_STATUS:        "COMPILE_STATUS",
	gl.DEPTH_TEST:            "DEPTH_TEST",
	gl.DYNAMIC_DRAW:          "DYNAMIC_DRAW",
	gl.ELEMENT_ARRAY_BUFFER:  "ELEMENT_ARRAY_BUFFER",
	gl.FLOAT:                 "FLOAT",
	gl.FRAGMENT_SHADER:       "FRAGMENT_SHADER",
	gl.FRAMEBUFFER:           "FRAMEBUFFER",
	gl.FRAMEBUFFER_BINDING:   "FRAMEBUFFER_BINDING",
	gl.FUNC_ADD:              "FUNC_ADD",
	gl.FUNC_REVERSE_SUBTRACT: "FUNC_REVERSE_SUBTRACT",
	gl.FUNC_SUBTRACT:         "FUNC_SUBTRACT",
	gl.INFO_LOG_LENGTH:       "INFO_LOG_LENGTH",
	gl.INT:                   "INT",
	gl.LINEAR:                "LINEAR",
	gl.LINK_STATUS:           "LINK_STATUS",
	gl.MAX_TEXTURE_SIZE:      "MAX_TEXTURE_SIZE",
	gl.NEAREST:               "NEAREST",
	gl.REPEAT:                "REPEAT",
	gl.RGB:                   "RGB",
	gl.RGBA:                  "RGBA",
	gl.SHORT:                 "SHORT",
	gl.STATIC_DRAW:           "STATIC_DRAW",
	gl.STREAM_DRAW:           "STREAM_DRAW",
	gl.TEXTURE_2D:            "TEXTURE_2D",
	gl.TEXTURE_MAG_FILTER:    "TEXTURE_MAG_FILTER",
	gl.TEXTURE_MIN_FILTER:    "TEXTURE_MIN_FILTER",
	gl.TEXTURE_WRAP_S:        "TEXTURE_WRAP_S",
	gl.TEXTURE_WRAP_T:        "TEXTURE_WRAP_T",
	gl.UNPACK_ALIGNMENT:      "UNPACK_ALIGNMENT",
	gl.UNSIGNED_BYTE:         "UNSIGNED_BYTE",
	gl.UNSIGNED_INT:          "UNSIGNED_INT",
	gl.UNSIGNED_SHORT:        "UNSIGNED_SHORT",
	gl.VERSION:               "VERSION",
	gl.VERTEX_SHADER:         "VERTEX_SHADER",
}

// Blend factors and primitive modes overlap the small values of other
// enums and get their own tables.
var factorNames = map[gl.Enum]string{
	gl.ZERO:                "ZERO",
	gl.ONE:                 "ONE",
	gl.SRC_COLOR:           "SRC_COLOR",
	gl.ONE_MINUS_SRC_COLOR: "ONE_MINUS_SRC_COLOR",
	gl.SRC_ALPHA:           "SRC_ALPHA",
	gl.ONE_MINUS_SRC_ALPHA: "ONE_MINUS_SRC_ALPHA",
	gl.DST_ALPHA:           "DST_ALPHA",
	gl.ONE_MINUS_DST_ALPHA: "ONE_MINUS_DST_ALPHA",
	gl.DST_COLOR:           "DST_COLOR",
	gl.ONE_MINUS_DST_COLOR: "ONE_MINUS_DST_COLOR",
}

var modeNames = map[gl.Enum]string{
	gl.POINTS:         "POINTS",
	gl.LINES:          "LINES",
	gl.LINE_STRIP:     "LINE_STRIP",
	gl.TRIANGLES:      "TRIANGLES",
	gl.TRIANGLE_STRIP: "TRIANGLE_STRIP",
}

func lookup(names map[gl.Enum]string, v gl.Enum) Enum {
	n, ok := names[v]
	if !ok {
		n = fmt.Sprintf("%#x", uint(v))
	}
	return Enum{V: v, Name: n}
}

func enum(v gl.Enum) Enum   { return lookup(enumNames, v) }
func factor(v gl.Enum) Enum { return lookup(factorNames, v) }
func mode(v gl.Enum) Enum   { return lookup(modeNames, v) }

// mask names the bits of a glClear mask.
func mask(v gl.Enum) Enum {
	var bits []string
	for _, b := range []struct {
		bit  gl.Enum
		name string
	}{
		{gl.COLOR_BUFFER_BIT, "COLOR_BUFFER_BIT"},
		{gl.DEPTH_BUFFER_BIT, "DEPTH_BUFFER_BIT"},
		{gl.STENCIL_BUFFER_BIT, "STENCIL_BUFFER_BIT"},
	} {
		if v&b.bit != 0 {
			bits = append(bits, b.name)
		}
	}
	if len(bits) == 0 {
		return Enum{V: v, Name: "0"}
	}
	return Enum{V: v, Name: strings.Join(bits, "|")}
}
