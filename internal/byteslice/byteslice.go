// SPDX-License-Identifier: Unlicense OR MIT

// Package byteslice provides byte views of typed memory.
package byteslice

import "unsafe"

// Slice returns a byte view of s. The view aliases s.
func Slice[T any](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

// Struct returns a byte view of the value pointed to by v.
func Struct[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}
