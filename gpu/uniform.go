// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/sys/cpu"

	"github.com/fugu-gfx/fugu/gl"
)

// UniformValue is one uniform value tagged with its format.
type UniformValue struct {
	Format UniformFormat
	f      [4]float32
	i      [4]int32
}

func Float1(x float32) UniformValue {
	return UniformValue{Format: UniformFormatFloat1, f: [4]float32{x}}
}

func Float2(x, y float32) UniformValue {
	return UniformValue{Format: UniformFormatFloat2, f: [4]float32{x, y}}
}

func Float3(x, y, z float32) UniformValue {
	return UniformValue{Format: UniformFormatFloat3, f: [4]float32{x, y, z}}
}

func Float4(x, y, z, w float32) UniformValue {
	return UniformValue{Format: UniformFormatFloat4, f: [4]float32{x, y, z, w}}
}

func Int1(x int32) UniformValue {
	return UniformValue{Format: UniformFormatInt1, i: [4]int32{x}}
}

func Int2(x, y int32) UniformValue {
	return UniformValue{Format: UniformFormatInt2, i: [4]int32{x, y}}
}

func Int3(x, y, z int32) UniformValue {
	return UniformValue{Format: UniformFormatInt3, i: [4]int32{x, y, z}}
}

func Int4(x, y, z, w int32) UniformValue {
	return UniformValue{Format: UniformFormatInt4, i: [4]int32{x, y, z, w}}
}

// Floats returns the float components of v.
func (v UniformValue) Floats() []float32 {
	if v.Format > UniformFormatFloat4 {
		return nil
	}
	return v.f[:v.Format.Components()]
}

// Ints returns the integer components of v.
func (v UniformValue) Ints() []int32 {
	if v.Format <= UniformFormatFloat4 {
		return nil
	}
	return v.i[:v.Format.Components()]
}

func (v UniformValue) String() string {
	if f := v.Floats(); f != nil {
		return fmt.Sprintf("%s%v", v.Format, f)
	}
	return fmt.Sprintf("%s%v", v.Format, v.Ints())
}

// nativeOrder is the byte order of the host, which is the order GPU
// uniform data is laid out in memory.
func nativeOrder() binary.ByteOrder {
	if cpu.IsBigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// decodeUniforms walks data with a cursor, reading one value per
// declared uniform.
func decodeUniforms(uniforms []uniformBinding, data []byte) ([]UniformValue, error) {
	order := nativeOrder()
	values := make([]UniformValue, len(uniforms))
	off := 0
	for i, u := range uniforms {
		n := u.format.Size()
		if off+n > len(data) {
			return nil, precondition("uniform data too small: %d bytes, %d needed for %q", len(data), off+n, u.name)
		}
		v := UniformValue{Format: u.format}
		for j := 0; j < u.format.Components(); j++ {
			bits := order.Uint32(data[off+4*j:])
			if u.format <= UniformFormatFloat4 {
				v.f[j] = math.Float32frombits(bits)
			} else {
				v.i[j] = int32(bits)
			}
		}
		values[i] = v
		off += n
	}
	return values, nil
}

// encodeUniformData packs v tightly in native byte order. v must be a
// fixed size value such as a struct of float32 and int32 fields.
func encodeUniformData(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, nativeOrder(), v); err != nil {
		return nil, precondition("uniform data: %v", err)
	}
	return buf.Bytes(), nil
}

// upload issues one typed uniform call per value.
func uploadUniforms(f gl.Functions, uniforms []uniformBinding, values []UniformValue) {
	for i, u := range uniforms {
		v := values[i]
		switch u.format {
		case UniformFormatFloat1:
			f.Uniform1f(u.loc, v.f[0])
		case UniformFormatFloat2:
			f.Uniform2f(u.loc, v.f[0], v.f[1])
		case UniformFormatFloat3:
			f.Uniform3f(u.loc, v.f[0], v.f[1], v.f[2])
		case UniformFormatFloat4:
			f.Uniform4f(u.loc, v.f[0], v.f[1], v.f[2], v.f[3])
		case UniformFormatInt1:
			f.Uniform1i(u.loc, int(v.i[0]))
		case UniformFormatInt2:
			f.Uniform2i(u.loc, int(v.i[0]), int(v.i[1]))
		case UniformFormatInt3:
			f.Uniform3i(u.loc, int(v.i[0]), int(v.i[1]), int(v.i[2]))
		case UniformFormatInt4:
			f.Uniform4i(u.loc, int(v.i[0]), int(v.i[1]), int(v.i[2]), int(v.i[3]))
		default:
			panic("invalid uniform format")
		}
	}
}

// SetUniforms uploads one value per uniform declared by the bound
// pipeline's shader, in declaration order. Nothing is uploaded when the
// count or a format does not match.
func (c *Context) SetUniforms(values ...UniformValue) error {
	pip, err := c.bound()
	if err != nil {
		return err
	}
	uniforms := pip.shader.uniforms
	if len(values) != len(uniforms) {
		return precondition("got %d uniform values, shader declares %d", len(values), len(uniforms))
	}
	for i, u := range uniforms {
		if values[i].Format != u.format {
			return precondition("uniform %q: got %s, declared %s", u.name, values[i].Format, u.format)
		}
	}
	uploadUniforms(c.funcs, uniforms, values)
	return nil
}

// SetUniformBytes decodes data as the packed, native endian values of
// the declared uniforms and uploads them. Trailing bytes are ignored.
func (c *Context) SetUniformBytes(data []byte) error {
	pip, err := c.bound()
	if err != nil {
		return err
	}
	values, err := decodeUniforms(pip.shader.uniforms, data)
	if err != nil {
		return err
	}
	uploadUniforms(c.funcs, pip.shader.uniforms, values)
	return nil
}

// SetUniformData packs v with encoding/binary in native byte order and
// uploads it as SetUniformBytes does. v is typically a pointer to a
// struct whose fields mirror the declared uniforms:
//
//	type uniforms struct {
//		Time  float32
//		Color [3]float32
//	}
func (c *Context) SetUniformData(v any) error {
	if _, err := c.bound(); err != nil {
		return err
	}
	data, err := encodeUniformData(v)
	if err != nil {
		return err
	}
	return c.SetUniformBytes(data)
}
