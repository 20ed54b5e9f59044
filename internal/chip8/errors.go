package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedInstruction is returned when a fetched word matches no opcode.
	ErrUnsupportedInstruction = errors.New("unsupported instruction")
	// ErrOutOfBounds is returned for memory accesses outside of the 4KB address space.
	ErrOutOfBounds = errors.New("memory access out of bounds")
	// ErrStackOverflow is returned when a call exceeds the maximum call depth.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned for a return without a matching call.
	ErrStackUnderflow = errors.New("stack underflow")
)

// StepError describes a failed fetch-decode-execute cycle.
// The program counter is left pointing at the failing instruction.
type StepError struct {
	Address uint16 // address of the instruction that failed
	Opcode  Opcode // zero if the fetch itself failed
	Fetched bool   // whether Opcode holds a fetched word
	Err     error
}

func (e *StepError) Error() string {
	if !e.Fetched {
		return fmt.Sprintf("fetching instruction at $%04X: %s", e.Address, e.Err)
	}
	return fmt.Sprintf("executing %s at $%04X: %s", e.Opcode, e.Address, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
