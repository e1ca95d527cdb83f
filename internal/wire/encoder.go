package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"plugin-compiler/internal/lower"
	"plugin-compiler/internal/protocol"
)

const (
	// Magic opens every stream.
	Magic = "PCOP"
	// Version is the layout version written by the Encoder.
	Version uint8 = 1
)

// Statuses returned by the Encoder when it refuses an operation.
const (
	StatusUnknownCategory protocol.Status = 2
	StatusUnsupportedOp   protocol.Status = 3
)

// Frame is one encoded operation.
type Frame struct {
	Opcode protocol.Opcode
	Target protocol.Handle
	Fields []Field
}

// Encoder is an Emitter that collects operations as frames. Handles are
// allocated sequentially starting at 1, like the in-memory Recorder.
type Encoder struct {
	frames []Frame
	next   protocol.Handle
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Emit implements protocol.Emitter.
func (e *Encoder) Emit(target protocol.Handle, op protocol.Op) (protocol.Handle, protocol.Status) {
	fields, status := Fields(op)
	if status != protocol.StatusOK {
		return target, status
	}

	e.frames = append(e.frames, Frame{Opcode: op.Opcode(), Target: target, Fields: fields})

	if code := op.Opcode(); code.CreatesModule() || code.CreatesConfig() {
		e.next++
		return e.next, protocol.StatusOK
	}

	return target, protocol.StatusOK
}

// Frames returns the frames collected so far.
func (e *Encoder) Frames() []Frame {
	return e.frames
}

// Bytes returns the encoded stream.
func (e *Encoder) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = e.WriteTo(&buf)

	return buf.Bytes()
}

// WriteTo writes the header and every frame to w.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}

	if _, err := io.WriteString(cw, Magic); err != nil {
		return cw.n, err
	}

	if err := write(cw, Version, uint32(len(e.frames))); err != nil {
		return cw.n, err
	}

	for i, f := range e.frames {
		if err := writeFrame(cw, f); err != nil {
			return cw.n, fmt.Errorf("writing frame %d: %w", i, err)
		}
	}

	return cw.n, nil
}

func writeFrame(w io.Writer, f Frame) error {
	if err := write(w, uint16(f.Opcode), uint32(f.Target), uint16(len(f.Fields))); err != nil {
		return err
	}

	for _, field := range f.Fields {
		if err := write(w, field.ID, uint8(field.Type), uint32(len(field.Data))); err != nil {
			return err
		}

		if _, err := w.Write(field.Data); err != nil {
			return err
		}
	}

	return nil
}

func write(w io.Writer, values ...any) error {
	for _, v := range values {
		if err := binary.Write(w, binary.BigEndian, v); err != nil {
			return err
		}
	}

	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)

	return n, err
}

// Fields encodes the operands of op. Field ids follow operand order
// starting at 1. A category that is not in the subcategory table yields
// StatusUnknownCategory.
func Fields(op protocol.Op) ([]Field, protocol.Status) {
	switch o := op.(type) {
	case lower.CreateModule, lower.CreateConfigSection, lower.SetConfigRemoved:
		return nil, protocol.StatusOK
	case lower.SetName:
		return []Field{stringField(1, o.Name)}, protocol.StatusOK
	case lower.SetCapability:
		return []Field{stringField(1, o.Capability)}, protocol.StatusOK
	case lower.SetScore:
		return []Field{intField(1, int64(o.Score))}, protocol.StatusOK
	case lower.SetDescription:
		return []Field{stringField(1, o.Text)}, protocol.StatusOK
	case lower.SetHelp:
		return []Field{stringField(1, o.Text)}, protocol.StatusOK
	case lower.SetShortname:
		return []Field{stringField(1, o.Text)}, protocol.StatusOK
	case lower.SetShortcuts:
		return []Field{stringListField(1, o.Shortcuts)}, protocol.StatusOK
	case lower.SetOpenCallback:
		return callbackFields(o.Label, o.Ref), protocol.StatusOK
	case lower.SetCloseCallback:
		return callbackFields(o.Label, o.Ref), protocol.StatusOK
	case lower.CreateConfigSubcategory:
		sub, ok := protocol.LookupSubcategory(o.Category)
		if !ok {
			return nil, StatusUnknownCategory
		}

		return []Field{intField(1, sub.Value)}, protocol.StatusOK
	case lower.SetConfigSectionDesc:
		fields := []Field{stringField(1, o.Name)}
		if o.Description != nil {
			fields = append(fields, stringField(2, *o.Description))
		}

		return fields, protocol.StatusOK
	case lower.CreateConfigItem:
		return []Field{intField(1, int64(o.Kind))}, protocol.StatusOK
	case lower.SetConfigDesc:
		return []Field{stringField(1, o.Text), stringField(2, o.LongText)}, protocol.StatusOK
	case lower.SetConfigName:
		return []Field{stringField(1, o.Key)}, protocol.StatusOK
	case lower.SetConfigValue:
		return []Field{valueField(1, o.Value)}, protocol.StatusOK
	case lower.SetConfigRange:
		return []Field{valueField(1, o.Min), valueField(2, o.Max)}, protocol.StatusOK
	default:
		return nil, StatusUnsupportedOp
	}
}

func callbackFields(label string, ref protocol.FuncRef) []Field {
	return []Field{stringField(1, label), stringField(2, ref.Loader), stringField(3, ref.Symbol)}
}
