// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import "github.com/fugu-gfx/fugu/internal/byteslice"

// Bytes returns the memory of s as bytes, in host byte order, for use
// with NewBufferWithData and Buffer.Update. The result aliases s.
func Bytes[T any](s []T) []byte {
	return byteslice.Slice(s)
}
