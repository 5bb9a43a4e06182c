// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"fmt"

	"github.com/fugu-gfx/fugu/gl"
)

var (
	// ErrResourceCreation is returned when the backend fails to create an
	// object.
	ErrResourceCreation = errors.New("gpu: resource creation failed")
	// ErrUniformNotFound is returned when a declared uniform or image
	// name is not active in the linked program.
	ErrUniformNotFound = errors.New("gpu: uniform not found")
	// ErrAttributeNotFound is returned when a vertex attribute name is
	// not active in the linked program.
	ErrAttributeNotFound = errors.New("gpu: attribute not found")
	// ErrPrecondition is returned for calls made out of order or with
	// arguments that do not fit the bound state.
	ErrPrecondition = errors.New("gpu: precondition violated")
	// ErrReleased is returned when a released resource or context is
	// used.
	ErrReleased = errors.New("gpu: resource released")

	// ErrShaderCompile matches every *ShaderCompileError.
	ErrShaderCompile = gl.ErrCompile
	// ErrShaderLink matches every *ShaderLinkError.
	ErrShaderLink = gl.ErrLink
)

// ShaderCompileError carries the backend info log of a failed stage.
type ShaderCompileError = gl.CompileError

// ShaderLinkError carries the backend info log of a failed link.
type ShaderLinkError = gl.LinkError

func precondition(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}

func creationFailed(what string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrResourceCreation, what)
	}
	return fmt.Errorf("%w: %s: %v", ErrResourceCreation, what, cause)
}
