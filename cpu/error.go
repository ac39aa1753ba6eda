package cpu

import (
	"errors"
	"fmt"

	"github.com/hexaflex/c8vm/arch"
)

// Known failure conditions.
var (
	// ErrProgramTooLarge is returned when a program image does not fit in
	// memory above the program load address.
	ErrProgramTooLarge = errors.New("program image too large")

	// ErrStackUnderflow is returned when a subroutine return is executed
	// with an empty call stack.
	ErrStackUnderflow = errors.New("call stack underflow")
)

// Error defines a runtime error tied to a specific instruction.
type Error struct {
	Instruction arch.Instruction
	Err         error
}

// NewError creates a new error for the given instruction.
func NewError(instr arch.Instruction, err error) *Error {
	return &Error{
		Instruction: instr,
		Err:         err,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%04x: %s: %v", e.Instruction.Addr, e.Instruction, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
