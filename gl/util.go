// SPDX-License-Identifier: Unlicense OR MIT

package gl

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCompile is matched by every *CompileError.
	ErrCompile = errors.New("gl: shader compilation failed")
	// ErrLink is matched by every *LinkError.
	ErrLink = errors.New("gl: program link failed")
	// ErrObject is returned when the driver fails to create an object.
	ErrObject = errors.New("gl: object creation failed")
)

// CompileError carries the info log of a shader stage that failed to
// compile.
type CompileError struct {
	Stage Enum
	Log   string
}

// LinkError carries the info log of a program that failed to link.
type LinkError struct {
	Log string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", StageName(e.Stage), e.Log)
}

func (e *CompileError) Is(target error) bool {
	return target == ErrCompile
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("program link failed: %s", e.Log)
}

func (e *LinkError) Is(target error) bool {
	return target == ErrLink
}

// StageName returns a readable name for a shader type.
func StageName(ty Enum) string {
	switch ty {
	case VERTEX_SHADER:
		return "vertex"
	case FRAGMENT_SHADER:
		return "fragment"
	default:
		return fmt.Sprintf("shader(%#x)", uint(ty))
	}
}

// CreateProgram compiles and links a program from vertex and fragment
// source. The intermediate shader objects are deleted on return.
func CreateProgram(ctx Functions, vsSrc, fsSrc string) (Program, error) {
	vs, err := createShader(ctx, VERTEX_SHADER, vsSrc)
	if err != nil {
		return Program{}, err
	}
	defer ctx.DeleteShader(vs)
	fs, err := createShader(ctx, FRAGMENT_SHADER, fsSrc)
	if err != nil {
		return Program{}, err
	}
	defer ctx.DeleteShader(fs)
	prog := ctx.CreateProgram()
	if !prog.Valid() {
		return Program{}, fmt.Errorf("%w: glCreateProgram", ErrObject)
	}
	ctx.AttachShader(prog, vs)
	ctx.AttachShader(prog, fs)
	ctx.LinkProgram(prog)
	if ctx.GetProgrami(prog, LINK_STATUS) == 0 {
		log := ctx.GetProgramInfoLog(prog)
		ctx.DeleteProgram(prog)
		return Program{}, &LinkError{Log: trimLog(log)}
	}
	return prog, nil
}

func createShader(ctx Functions, typ Enum, src string) (Shader, error) {
	sh := ctx.CreateShader(typ)
	if !sh.Valid() {
		return Shader{}, fmt.Errorf("%w: glCreateShader", ErrObject)
	}
	ctx.ShaderSource(sh, src)
	ctx.CompileShader(sh)
	if ctx.GetShaderi(sh, COMPILE_STATUS) == 0 {
		log := ctx.GetShaderInfoLog(sh)
		ctx.DeleteShader(sh)
		return Shader{}, &CompileError{Stage: typ, Log: trimLog(log)}
	}
	return sh, nil
}

// ParseGLVersion parses a GL_VERSION string. The second return value
// reports whether the context is OpenGL ES or WebGL.
func ParseGLVersion(glVer string) (ver [2]int, es bool, err error) {
	if _, err := fmt.Sscanf(glVer, "OpenGL ES %d.%d", &ver[0], &ver[1]); err == nil {
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "WebGL %d.%d", &ver[0], &ver[1]); err == nil {
		// WebGL major version v corresponds to OpenGL ES version v + 1
		ver[0]++
		return ver, true, nil
	} else if _, err := fmt.Sscanf(glVer, "%d.%d", &ver[0], &ver[1]); err == nil {
		return ver, false, nil
	}
	return ver, false, fmt.Errorf("failed to parse OpenGL version (%s)", glVer)
}

// Err returns the first pending GL error, if any.
func Err(f Functions) error {
	if e := f.GetError(); e != NO_ERROR {
		return fmt.Errorf("glGetError: %s", ErrorName(e))
	}
	return nil
}

// ErrorName returns the symbolic name of a glGetError code.
func ErrorName(e Enum) string {
	switch e {
	case NO_ERROR:
		return "GL_NO_ERROR"
	case INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("%#x", uint(e))
	}
}

// trimLog strips surrounding whitespace and any NUL terminator a driver
// left in an info log.
func trimLog(log string) string {
	return strings.TrimSpace(strings.TrimRight(log, "\x00"))
}
