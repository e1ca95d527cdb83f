package protocol

import "fmt"

// Status is the value returned by the protocol for every operation.
type Status int32

const (
	// StatusOK means the operation was accepted.
	StatusOK Status = 0
	// FailureCode is what a whole registration reports when any operation
	// was refused.
	FailureCode Status = -1
)

// Handle is an opaque cursor handed out by the protocol for a created
// module or config item. The zero handle means "no target".
type Handle uint32

func (h Handle) String() string {
	if h == 0 {
		return "nil"
	}

	return fmt.Sprintf("#%d", uint32(h))
}

// Op is one registration operation.
type Op interface {
	Opcode() Opcode
}

// Emitter receives operations in order. For operations that create a
// module or config item it returns the new handle; otherwise it returns
// target unchanged. A non-zero status refuses the operation.
type Emitter interface {
	Emit(target Handle, op Op) (Handle, Status)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(target Handle, op Op) (Handle, Status)

// Emit calls f(target, op).
func (f EmitterFunc) Emit(target Handle, op Op) (Handle, Status) {
	return f(target, op)
}
