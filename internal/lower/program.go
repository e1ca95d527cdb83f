package lower

import (
	"fmt"
	"io"
	"reflect"

	"gopkg.in/yaml.v3"

	"plugin-compiler/internal/descriptor"
	"plugin-compiler/internal/naming"
	"plugin-compiler/internal/protocol"
)

// Program is a lowered module: its derived names and the operations that
// were accepted, in order.
type Program struct {
	Names   naming.Names
	Entries []protocol.Entry
}

// Record lowers m against an in-memory Recorder. On error the returned
// Program holds what was accepted before the failure.
func Record(m *descriptor.Module, loaders *protocol.Registry) (*Program, error) {
	rec := protocol.NewRecorder()

	names, err := NewEngine(rec, loaders).Lower(m)

	return &Program{Names: names, Entries: rec.Entries}, err
}

// Ops returns the operations in order.
func (p *Program) Ops() []protocol.Op {
	out := make([]protocol.Op, len(p.Entries))
	for i, e := range p.Entries {
		out[i] = e.Op
	}

	return out
}

// Opcodes returns the opcode of each operation in order.
func (p *Program) Opcodes() []protocol.Opcode {
	out := make([]protocol.Opcode, len(p.Entries))
	for i, e := range p.Entries {
		out[i] = e.Op.Opcode()
	}

	return out
}

// Replay sends the recorded operations to another emitter, stopping at the
// first refusal. Handles are remapped to the ones the emitter returns.
func (p *Program) Replay(emitter protocol.Emitter) error {
	handles := map[protocol.Handle]protocol.Handle{0: 0}

	for i, e := range p.Entries {
		target, ok := handles[e.Target]
		if !ok {
			return fmt.Errorf("operation %d targets unknown handle %s", i, e.Target)
		}

		h, status := emitter.Emit(target, e.Op)
		if status != protocol.StatusOK {
			return &EmitError{Index: i, Opcode: e.Op.Opcode(), Status: status}
		}

		handles[e.Result] = h
	}

	return nil
}

// WriteText writes one operation per line:
//
//	  0  nil -> #1  CREATE_MODULE
//	  1   #1        SET_NAME("foo-rs")
func (p *Program) WriteText(w io.Writer) error {
	for i, e := range p.Entries {
		var err error
		if e.Result != e.Target {
			_, err = fmt.Fprintf(w, "%3d  %3s -> %-3s  %s\n", i, e.Target, e.Result, Format(e.Op))
		} else {
			_, err = fmt.Fprintf(w, "%3d  %3s %6s  %s\n", i, e.Target, "", Format(e.Op))
		}

		if err != nil {
			return err
		}
	}

	return nil
}

type yamlProgram struct {
	Module string     `yaml:"module"`
	Ops    []yamlStep `yaml:"ops"`
}

type yamlStep struct {
	Op     string      `yaml:"op"`
	Target uint32      `yaml:"target"`
	Result uint32      `yaml:"result,omitempty"`
	Args   protocol.Op `yaml:"args,omitempty"`
}

// MarshalYAML implements yaml.Marshaler.
func (p *Program) MarshalYAML() (any, error) {
	out := yamlProgram{Module: p.Names.Module, Ops: make([]yamlStep, 0, len(p.Entries))}

	for _, e := range p.Entries {
		step := yamlStep{Op: e.Op.Opcode().String(), Target: uint32(e.Target)}
		if e.Result != e.Target {
			step.Result = uint32(e.Result)
		}

		if hasOperands(e.Op) {
			step.Args = e.Op
		}

		out.Ops = append(out.Ops, step)
	}

	return out, nil
}

// hasOperands reports whether op has anything to list under args. Structs
// without fields, and pointers to them, have nothing.
func hasOperands(op protocol.Op) bool {
	t := reflect.TypeOf(op)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == nil {
		return false
	}

	return t.Kind() != reflect.Struct || t.NumField() > 0
}

// YAML returns the program encoded as YAML.
func (p *Program) YAML() ([]byte, error) {
	return yaml.Marshal(p)
}
