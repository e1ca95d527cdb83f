package protocol

// Entry is one accepted operation.
type Entry struct {
	// Target is the handle the operation was applied to.
	Target Handle
	// Result is the handle returned to the caller.
	Result Handle
	Op     Op
}

// Recorder is an in-memory Emitter. Handles are allocated sequentially
// starting at 1.
type Recorder struct {
	Entries []Entry
	// Calls counts every Emit call, refused ones included.
	Calls int

	failAt     int
	failStatus Status
	next       Handle
}

// NewRecorder returns a Recorder that accepts every operation.
func NewRecorder() *Recorder {
	return &Recorder{failAt: -1}
}

// FailAt makes the Recorder refuse the call with zero-based index i,
// returning status. Calls after it are refused too.
func (r *Recorder) FailAt(i int, status Status) *Recorder {
	r.failAt = i
	r.failStatus = status

	return r
}

// Emit implements Emitter.
func (r *Recorder) Emit(target Handle, op Op) (Handle, Status) {
	call := r.Calls
	r.Calls++

	if r.failAt >= 0 && call >= r.failAt {
		return target, r.failStatus
	}

	result := target
	if code := op.Opcode(); code.CreatesModule() || code.CreatesConfig() {
		r.next++
		result = r.next
	}

	r.Entries = append(r.Entries, Entry{Target: target, Result: result, Op: op})

	return result, StatusOK
}

// Ops returns the accepted operations in order.
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Op
	}

	return out
}

// Opcodes returns the opcodes of the accepted operations in order.
func (r *Recorder) Opcodes() []Opcode {
	out := make([]Opcode, len(r.Entries))
	for i, e := range r.Entries {
		out[i] = e.Op.Opcode()
	}

	return out
}

// Reset drops everything recorded so far and restarts handle allocation.
// Failure injection is kept.
func (r *Recorder) Reset() {
	r.Entries = nil
	r.Calls = 0
	r.next = 0
}
