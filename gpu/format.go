// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"
	"strings"

	"gioui.org/shader"

	"github.com/fugu-gfx/fugu/gl"
)

type (
	// VertexFormat is the type and component count of a vertex attribute.
	VertexFormat uint8
	// UniformFormat is the type and component count of a uniform.
	UniformFormat uint8
	BufferKind    uint8
	BufferUsage   uint8
	ImageFormat   uint8
	ImageFilter   uint8
	ImageWrap     uint8
	// Primitive is the topology drawn by a pipeline.
	Primitive uint8
)

const (
	VertexFormatFloat1 VertexFormat = iota
	VertexFormatFloat2
	VertexFormatFloat3
	VertexFormatFloat4
	VertexFormatByte1
	VertexFormatByte2
	VertexFormatByte3
	VertexFormatByte4
	VertexFormatShort1
	VertexFormatShort2
	VertexFormatShort3
	VertexFormatShort4
)

const (
	UniformFormatFloat1 UniformFormat = iota
	UniformFormatFloat2
	UniformFormatFloat3
	UniformFormatFloat4
	UniformFormatInt1
	UniformFormatInt2
	UniformFormatInt3
	UniformFormatInt4
)

const (
	BufferKindVertex BufferKind = iota
	// BufferKindIndex holds 16-bit indices.
	BufferKindIndex
	// BufferKindIndex32 holds 32-bit indices.
	BufferKindIndex32
)

const (
	// BufferUsageStatic buffers must be created with data.
	BufferUsageStatic BufferUsage = iota
	BufferUsageDynamic
	BufferUsageStream
)

const (
	ImageFormatRGB8 ImageFormat = iota
	ImageFormatRGBA8
)

const (
	FilterNearest ImageFilter = iota
	FilterLinear
)

const (
	WrapClamp ImageWrap = iota
	WrapRepeat
)

const (
	PrimitiveTriangles Primitive = iota
	PrimitiveTriangleStrip
	PrimitiveLines
	PrimitiveLineStrip
	PrimitivePoints
)

var (
	vertexFormatNames  = []string{"float1", "float2", "float3", "float4", "byte1", "byte2", "byte3", "byte4", "short1", "short2", "short3", "short4"}
	uniformFormatNames = []string{"float1", "float2", "float3", "float4", "int1", "int2", "int3", "int4"}
	bufferKindNames    = []string{"vertex", "index", "index32"}
	bufferUsageNames   = []string{"static", "dynamic", "stream"}
	imageFormatNames   = []string{"rgb8", "rgba8"}
	imageFilterNames   = []string{"nearest", "linear"}
	imageWrapNames     = []string{"clamp", "repeat"}
	primitiveNames     = []string{"triangles", "triangle_strip", "lines", "line_strip", "points"}
)

func enumString(names []string, v uint8) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%d", v)
}

func parseEnum(kind string, names []string, text []byte) (uint8, error) {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range names {
		if n == s {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("gpu: unknown %s %q", kind, text)
}

// Size returns the size in bytes of one attribute of format f.
func (f VertexFormat) Size() int {
	switch {
	case f <= VertexFormatFloat4:
		return 4 * f.Components()
	case f <= VertexFormatByte4:
		return f.Components()
	default:
		return 2 * f.Components()
	}
}

// Components returns the number of components, 1 to 4.
func (f VertexFormat) Components() int {
	return int(f%4) + 1
}

func (f VertexFormat) glType() gl.Enum {
	switch {
	case f <= VertexFormatFloat4:
		return gl.FLOAT
	case f <= VertexFormatByte4:
		return gl.BYTE
	default:
		return gl.SHORT
	}
}

func (f VertexFormat) valid() bool {
	return f <= VertexFormatShort4
}

func (f VertexFormat) String() string { return enumString(vertexFormatNames, uint8(f)) }

func (f VertexFormat) MarshalText() ([]byte, error) {
	if !f.valid() {
		return nil, fmt.Errorf("gpu: invalid vertex format %d", f)
	}
	return []byte(f.String()), nil
}

func (f *VertexFormat) UnmarshalText(text []byte) error {
	v, err := parseEnum("vertex format", vertexFormatNames, text)
	*f = VertexFormat(v)
	return err
}

// Size returns the size in bytes of one uniform of format f.
func (f UniformFormat) Size() int {
	return 4 * f.Components()
}

// Components returns the number of components, 1 to 4.
func (f UniformFormat) Components() int {
	return int(f%4) + 1
}

// DataType returns the component type of f.
func (f UniformFormat) DataType() shader.DataType {
	if f <= UniformFormatFloat4 {
		return shader.DataTypeFloat
	}
	return shader.DataTypeInt
}

func (f UniformFormat) valid() bool {
	return f <= UniformFormatInt4
}

func uniformFormatOf(typ shader.DataType, components int) (UniformFormat, error) {
	if components < 1 || components > 4 {
		return 0, fmt.Errorf("gpu: unsupported uniform size %d", components)
	}
	switch typ {
	case shader.DataTypeFloat:
		return UniformFormatFloat1 + UniformFormat(components-1), nil
	case shader.DataTypeInt:
		return UniformFormatInt1 + UniformFormat(components-1), nil
	default:
		return 0, fmt.Errorf("gpu: unsupported uniform data type %d", typ)
	}
}

func (f UniformFormat) String() string { return enumString(uniformFormatNames, uint8(f)) }

func (f UniformFormat) MarshalText() ([]byte, error) {
	if !f.valid() {
		return nil, fmt.Errorf("gpu: invalid uniform format %d", f)
	}
	return []byte(f.String()), nil
}

func (f *UniformFormat) UnmarshalText(text []byte) error {
	v, err := parseEnum("uniform format", uniformFormatNames, text)
	*f = UniformFormat(v)
	return err
}

func (k BufferKind) target() gl.Enum {
	if k == BufferKindVertex {
		return gl.ARRAY_BUFFER
	}
	return gl.ELEMENT_ARRAY_BUFFER
}

func (k BufferKind) isIndex() bool {
	return k == BufferKindIndex || k == BufferKindIndex32
}

// indexSize returns the byte width of one index.
func (k BufferKind) indexSize() int {
	if k == BufferKindIndex32 {
		return 4
	}
	return 2
}

func (k BufferKind) indexType() gl.Enum {
	if k == BufferKindIndex32 {
		return gl.UNSIGNED_INT
	}
	return gl.UNSIGNED_SHORT
}

func (k BufferKind) String() string { return enumString(bufferKindNames, uint8(k)) }

func (k BufferKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *BufferKind) UnmarshalText(text []byte) error {
	v, err := parseEnum("buffer kind", bufferKindNames, text)
	*k = BufferKind(v)
	return err
}

func (u BufferUsage) glUsage() gl.Enum {
	switch u {
	case BufferUsageDynamic:
		return gl.DYNAMIC_DRAW
	case BufferUsageStream:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

func (u BufferUsage) String() string { return enumString(bufferUsageNames, uint8(u)) }

func (u BufferUsage) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

func (u *BufferUsage) UnmarshalText(text []byte) error {
	v, err := parseEnum("buffer usage", bufferUsageNames, text)
	*u = BufferUsage(v)
	return err
}

// BytesPerPixel returns the size of one pixel of format f.
func (f ImageFormat) BytesPerPixel() int {
	if f == ImageFormatRGB8 {
		return 3
	}
	return 4
}

func (f ImageFormat) glFormat() gl.Enum {
	if f == ImageFormatRGB8 {
		return gl.RGB
	}
	return gl.RGBA
}

func (f ImageFormat) String() string { return enumString(imageFormatNames, uint8(f)) }

func (f ImageFormat) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *ImageFormat) UnmarshalText(text []byte) error {
	v, err := parseEnum("image format", imageFormatNames, text)
	*f = ImageFormat(v)
	return err
}

func (f ImageFilter) glFilter() int {
	if f == FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func (f ImageFilter) String() string { return enumString(imageFilterNames, uint8(f)) }

func (f ImageFilter) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

func (f *ImageFilter) UnmarshalText(text []byte) error {
	v, err := parseEnum("image filter", imageFilterNames, text)
	*f = ImageFilter(v)
	return err
}

func (w ImageWrap) glWrap() int {
	if w == WrapRepeat {
		return gl.REPEAT
	}
	return gl.CLAMP_TO_EDGE
}

func (w ImageWrap) String() string { return enumString(imageWrapNames, uint8(w)) }

func (w ImageWrap) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

func (w *ImageWrap) UnmarshalText(text []byte) error {
	v, err := parseEnum("image wrap", imageWrapNames, text)
	*w = ImageWrap(v)
	return err
}

func (p Primitive) glMode() gl.Enum {
	switch p {
	case PrimitiveTriangleStrip:
		return gl.TRIANGLE_STRIP
	case PrimitiveLines:
		return gl.LINES
	case PrimitiveLineStrip:
		return gl.LINE_STRIP
	case PrimitivePoints:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

func (p Primitive) String() string { return enumString(primitiveNames, uint8(p)) }

func (p Primitive) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Primitive) UnmarshalText(text []byte) error {
	v, err := parseEnum("primitive", primitiveNames, text)
	*p = Primitive(v)
	return err
}
