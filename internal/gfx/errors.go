package gfx

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceExhausted is returned when the backend cannot allocate an
	// object (shader, program, buffer).
	ErrResourceExhausted = errors.New("gfx: resource exhausted")

	// ErrAttributeNotFound is returned when a name is not an active vertex
	// attribute of a linked program. Compilers drop attributes that do not
	// contribute to the output, so this is an expected condition.
	ErrAttributeNotFound = errors.New("gfx: attribute not found")

	// ErrUniformNotFound is the uniform counterpart of ErrAttributeNotFound.
	ErrUniformNotFound = errors.New("gfx: uniform not found")

	// ErrSurfaceNotFound is returned when a surface id does not resolve.
	ErrSurfaceNotFound = errors.New("gfx: surface not found")

	// ErrContextUnavailable is returned when a surface cannot provide the
	// required graphics API version.
	ErrContextUnavailable = errors.New("gfx: context unavailable")

	// ErrProgramNotLinked is returned when drawing with a program whose link
	// status is not success.
	ErrProgramNotLinked = errors.New("gfx: program not linked")

	// ErrInvalidInput is returned for arguments that violate a documented
	// precondition.
	ErrInvalidInput = errors.New("gfx: invalid input")

	// ErrCompile and ErrLink match any *CompileError and *LinkError
	// respectively under errors.Is.
	ErrCompile = errors.New("gfx: compile error")
	ErrLink    = errors.New("gfx: link error")
)

// CompileError carries the compiler log of a failed shader stage.
type CompileError struct {
	Stage StageKind
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

func (e *CompileError) Is(target error) bool { return target == ErrCompile }

// LinkError carries the linker log of a failed program.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader linking failed: %s", e.Log)
}

func (e *LinkError) Is(target error) bool { return target == ErrLink }
