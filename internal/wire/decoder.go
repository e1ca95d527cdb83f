package wire

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"plugin-compiler/internal/lower"
	"plugin-compiler/internal/protocol"
)

// maxFieldLen bounds a single field payload.
const maxFieldLen = 1 << 20

var (
	ErrBadMagic     = errors.New("not an operation stream")
	ErrVersion      = errors.New("unsupported stream version")
	ErrTruncated    = errors.New("truncated stream")
	ErrFieldType    = errors.New("unexpected field type")
	ErrUnterminated = errors.New("string is not NUL-terminated")
	ErrMissingField = errors.New("missing field")
	ErrOpcode       = errors.New("unknown opcode")
	ErrTooLarge     = errors.New("field exceeds size limit")
)

// Step is one decoded operation and the handle it targets.
type Step struct {
	Target protocol.Handle
	Op     protocol.Op
}

// Decode reads a whole stream and rebuilds its operations.
func Decode(r io.Reader) ([]Step, error) {
	frames, err := ReadFrames(r)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, len(frames))

	for i, f := range frames {
		op, err := DecodeOp(f)
		if err != nil {
			return nil, fmt.Errorf("frame %d (%s): %w", i, f.Opcode, err)
		}

		steps[i] = Step{Target: f.Target, Op: op}
	}

	return steps, nil
}

// ReadFrames reads the header and every frame without interpreting them.
func ReadFrames(r io.Reader) ([]Frame, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, len(Magic))
	if err := readFull(br, magic); err != nil {
		return nil, err
	}

	if string(magic) != Magic {
		return nil, ErrBadMagic
	}

	var header struct {
		Version uint8
		Count   uint32
	}
	if err := read(br, &header); err != nil {
		return nil, err
	}

	if header.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, header.Version)
	}

	var frames []Frame

	for i := uint32(0); i < header.Count; i++ {
		f, err := readFrame(br)
		if err != nil {
			return nil, fmt.Errorf("reading frame %d: %w", i, err)
		}

		frames = append(frames, f)
	}

	return frames, nil
}

func readFrame(r io.Reader) (Frame, error) {
	var head struct {
		Opcode uint16
		Target uint32
		Count  uint16
	}
	if err := read(r, &head); err != nil {
		return Frame{}, err
	}

	f := Frame{Opcode: protocol.Opcode(head.Opcode), Target: protocol.Handle(head.Target)}

	for i := uint16(0); i < head.Count; i++ {
		var fh struct {
			ID   uint16
			Type uint8
			Len  uint32
		}
		if err := read(r, &fh); err != nil {
			return Frame{}, err
		}

		if fh.Len > maxFieldLen {
			return Frame{}, fmt.Errorf("field %d: %w", fh.ID, ErrTooLarge)
		}

		data := make([]byte, fh.Len)
		if err := readFull(r, data); err != nil {
			return Frame{}, err
		}

		f.Fields = append(f.Fields, Field{ID: fh.ID, Type: FieldType(fh.Type), Data: data})
	}

	return f, nil
}

func read(r io.Reader, v any) error {
	if err := binary.Read(r, binary.BigEndian, v); err != nil {
		return truncated(err)
	}

	return nil
}

func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		return truncated(err)
	}

	return nil
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}

	return err
}

// DecodeOp rebuilds the operation carried by f. Categories come back under
// their protocol name.
func DecodeOp(f Frame) (protocol.Op, error) {
	d := fieldSet(f.Fields)

	switch f.Opcode {
	case protocol.OpCreateModule:
		return lower.CreateModule{}, nil
	case protocol.OpSetName:
		s, err := d.text(1)
		return lower.SetName{Name: s}, err
	case protocol.OpSetCapability:
		s, err := d.text(1)
		return lower.SetCapability{Capability: s}, err
	case protocol.OpSetScore:
		v, err := d.integer(1)
		return lower.SetScore{Score: int32(v)}, err
	case protocol.OpSetDescription:
		s, err := d.text(1)
		return lower.SetDescription{Text: s}, err
	case protocol.OpSetHelp:
		s, err := d.text(1)
		return lower.SetHelp{Text: s}, err
	case protocol.OpSetShortname:
		s, err := d.text(1)
		return lower.SetShortname{Text: s}, err
	case protocol.OpSetShortcuts:
		field, err := d.get(1)
		if err != nil {
			return nil, err
		}

		items, err := field.TextList()

		return lower.SetShortcuts{Shortcuts: items}, err
	case protocol.OpSetOpenCallback:
		label, ref, err := d.callback()
		return lower.SetOpenCallback{Label: label, Ref: ref}, err
	case protocol.OpSetCloseCallback:
		label, ref, err := d.callback()
		return lower.SetCloseCallback{Label: label, Ref: ref}, err
	case protocol.OpCreateConfigSubcategory:
		v, err := d.integer(1)
		if err != nil {
			return nil, err
		}

		sub, ok := protocol.SubcategoryByValue(v)
		if !ok {
			return nil, fmt.Errorf("unknown subcategory value %d", v)
		}

		return lower.CreateConfigSubcategory{Category: sub.Name}, nil
	case protocol.OpCreateConfigSection:
		return lower.CreateConfigSection{}, nil
	case protocol.OpSetConfigSectionDesc:
		name, err := d.text(1)
		if err != nil {
			return nil, err
		}

		op := lower.SetConfigSectionDesc{Name: name}

		if _, ok := d[2]; ok {
			desc, err := d.text(2)
			if err != nil {
				return nil, err
			}

			op.Description = &desc
		}

		return op, nil
	case protocol.OpCreateConfigItem:
		v, err := d.integer(1)
		return lower.CreateConfigItem{Kind: protocol.ItemKind(v)}, err
	case protocol.OpSetConfigDesc:
		text, err := d.text(1)
		if err != nil {
			return nil, err
		}

		long, err := d.text(2)

		return lower.SetConfigDesc{Text: text, LongText: long}, err
	case protocol.OpSetConfigName:
		s, err := d.text(1)
		return lower.SetConfigName{Key: s}, err
	case protocol.OpSetConfigValue:
		v, err := d.value(1)
		return lower.SetConfigValue{Value: v}, err
	case protocol.OpSetConfigRemoved:
		return lower.SetConfigRemoved{}, nil
	case protocol.OpSetConfigRange:
		lo, err := d.value(1)
		if err != nil {
			return nil, err
		}

		hi, err := d.value(2)

		return lower.SetConfigRange{Min: lo, Max: hi}, err
	default:
		return nil, fmt.Errorf("%w %d", ErrOpcode, uint16(f.Opcode))
	}
}

type fields map[uint16]Field

func fieldSet(list []Field) fields {
	d := make(fields, len(list))
	for _, f := range list {
		d[f.ID] = f
	}

	return d
}

func (d fields) get(id uint16) (Field, error) {
	f, ok := d[id]
	if !ok {
		return Field{}, fmt.Errorf("%w %d", ErrMissingField, id)
	}

	return f, nil
}

func (d fields) text(id uint16) (string, error) {
	f, err := d.get(id)
	if err != nil {
		return "", err
	}

	return f.Text()
}

func (d fields) integer(id uint16) (int64, error) {
	f, err := d.get(id)
	if err != nil {
		return 0, err
	}

	return f.Int()
}

func (d fields) value(id uint16) (lower.Value, error) {
	f, err := d.get(id)
	if err != nil {
		return lower.Value{}, err
	}

	return f.Value()
}

func (d fields) callback() (string, protocol.FuncRef, error) {
	label, err := d.text(1)
	if err != nil {
		return "", protocol.FuncRef{}, err
	}

	loader, err := d.text(2)
	if err != nil {
		return "", protocol.FuncRef{}, err
	}

	symbol, err := d.text(3)

	return label, protocol.FuncRef{Loader: loader, Symbol: symbol}, err
}
