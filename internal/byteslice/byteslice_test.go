// SPDX-License-Identifier: Unlicense OR MIT

package byteslice

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestSlice(t *testing.T) {
	assert.Nil(t, Slice([]float32(nil)))
	f := []float32{1, 2, 3}
	b := Slice(f)
	assert.Len(t, b, 12)
	// The view aliases the slice memory.
	b[0], b[1], b[2], b[3] = 0, 0, 0, 0
	assert.Equal(t, float32(0), f[0])

	u := []uint16{1, 2, 3, 4, 5}
	assert.Len(t, Slice(u), 10)
}

func TestStruct(t *testing.T) {
	type vertex struct {
		Pos   [2]float32
		Color [3]float32
	}
	v := vertex{Pos: [2]float32{1, 2}}
	b := Struct(&v)
	assert.Len(t, b, int(unsafe.Sizeof(v)))
	assert.Len(t, b, 20)
}
