package serializer

import (
	"fmt"
	"github.com/ValentinKolb/hlbridge/lib/circuit"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the placer schema:
//
//	message MacroCircuit { repeated Macro m = 1; Layout l = 2; }
//	message Macro  { string name = 1; string id = 2; int64 width = 3; int64 height = 4;
//	                 int64 lx = 5; int64 ly = 6; int32 orientation = 7; }
//	message Layout { int64 lx = 1; int64 ly = 2; int64 ux = 3; int64 uy = 4; }
const (
	fieldCircuitMacros protowire.Number = 1
	fieldCircuitLayout protowire.Number = 2

	fieldMacroName        protowire.Number = 1
	fieldMacroID          protowire.Number = 2
	fieldMacroWidth       protowire.Number = 3
	fieldMacroHeight      protowire.Number = 4
	fieldMacroLX          protowire.Number = 5
	fieldMacroLY          protowire.Number = 6
	fieldMacroOrientation protowire.Number = 7

	fieldLayoutLX protowire.Number = 1
	fieldLayoutLY protowire.Number = 2
	fieldLayoutUX protowire.Number = 3
	fieldLayoutUY protowire.Number = 4
)

// NewProtoSerializer creates a new serializer using the protobuf wire format of the placer schema
func NewProtoSerializer() ICircuitSerializer {
	return &protoSerializerImpl{}
}

// protoSerializerImpl implements the ICircuitSerializer interface with the protobuf wire format.
// It is wire compatible with the placement tool, which uses generated protobuf code.
type protoSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ICircuitSerializer)
// --------------------------------------------------------------------------

func (p protoSerializerImpl) Serialize(desc *circuit.Description) ([]byte, error) {
	if desc == nil {
		return nil, fmt.Errorf("cannot serialize nil circuit description")
	}

	var b []byte
	// macros go back out in the order the client sent them
	for _, m := range desc.Macros {
		b = protowire.AppendTag(b, fieldCircuitMacros, protowire.BytesType)
		b = protowire.AppendBytes(b, appendMacro(nil, m))
	}

	// the layout is always present, the placement tool reads it unconditionally
	b = protowire.AppendTag(b, fieldCircuitLayout, protowire.BytesType)
	b = protowire.AppendBytes(b, appendLayout(nil, desc.Layout))
	return b, nil
}

func (p protoSerializerImpl) Deserialize(b []byte, desc *circuit.Description) error {
	result := circuit.New()

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("macro circuit: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == fieldCircuitMacros && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return fmt.Errorf("macro circuit: macro: %w", protowire.ParseError(n))
			}
			m, err := consumeMacro(v)
			if err != nil {
				return err
			}
			result.AddMacro(m)
			b = b[n:]

		case num == fieldCircuitLayout && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return fmt.Errorf("macro circuit: layout: %w", protowire.ParseError(n))
			}
			// repeated occurrences of a singular message field are merged
			if err := consumeLayout(v, &result.Layout); err != nil {
				return err
			}
			b = b[n:]

		case num == fieldCircuitMacros || num == fieldCircuitLayout:
			return fmt.Errorf("macro circuit: field %d has wire type %d, expected bytes", num, typ)

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("macro circuit: unknown field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	*desc = *result
	return nil
}

func (p protoSerializerImpl) Name() string {
	return "proto"
}

// --------------------------------------------------------------------------
// Helper Functions
// --------------------------------------------------------------------------

// appendVarintField appends a varint field, zero values are omitted (proto3 semantics)
func appendVarintField(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

// appendStringField appends a string field, empty strings are omitted (proto3 semantics)
func appendStringField(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

func appendMacro(b []byte, m *circuit.Macro) []byte {
	b = appendStringField(b, fieldMacroName, m.Name)
	b = appendStringField(b, fieldMacroID, m.ID)
	b = appendVarintField(b, fieldMacroWidth, m.Width)
	b = appendVarintField(b, fieldMacroHeight, m.Height)
	b = appendVarintField(b, fieldMacroLX, m.X)
	b = appendVarintField(b, fieldMacroLY, m.Y)
	b = appendVarintField(b, fieldMacroOrientation, int64(m.Orientation))
	return b
}

func appendLayout(b []byte, l circuit.Layout) []byte {
	b = appendVarintField(b, fieldLayoutLX, l.LX)
	b = appendVarintField(b, fieldLayoutLY, l.LY)
	b = appendVarintField(b, fieldLayoutUX, l.UX)
	b = appendVarintField(b, fieldLayoutUY, l.UY)
	return b
}

func consumeMacro(b []byte) (circuit.Macro, error) {
	var m circuit.Macro
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return m, fmt.Errorf("macro: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch num {
		case fieldMacroName, fieldMacroID:
			if typ != protowire.BytesType {
				return m, fmt.Errorf("macro: field %d has wire type %d, expected bytes", num, typ)
			}
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return m, fmt.Errorf("macro: field %d: %w", num, protowire.ParseError(n))
			}
			if num == fieldMacroName {
				m.Name = v
			} else {
				m.ID = v
			}
			b = b[n:]

		case fieldMacroWidth, fieldMacroHeight, fieldMacroLX, fieldMacroLY, fieldMacroOrientation:
			if typ != protowire.VarintType {
				return m, fmt.Errorf("macro: field %d has wire type %d, expected varint", num, typ)
			}
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return m, fmt.Errorf("macro: field %d: %w", num, protowire.ParseError(n))
			}
			switch num {
			case fieldMacroWidth:
				m.Width = int64(v)
			case fieldMacroHeight:
				m.Height = int64(v)
			case fieldMacroLX:
				m.X = int64(v)
			case fieldMacroLY:
				m.Y = int64(v)
			case fieldMacroOrientation:
				m.Orientation = circuit.Orientation(int32(v))
			}
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return m, fmt.Errorf("macro: unknown field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return m, nil
}

func consumeLayout(b []byte, l *circuit.Layout) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("layout: %w", protowire.ParseError(n))
		}
		b = b[n:]

		switch num {
		case fieldLayoutLX, fieldLayoutLY, fieldLayoutUX, fieldLayoutUY:
			if typ != protowire.VarintType {
				return fmt.Errorf("layout: field %d has wire type %d, expected varint", num, typ)
			}
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return fmt.Errorf("layout: field %d: %w", num, protowire.ParseError(n))
			}
			switch num {
			case fieldLayoutLX:
				l.LX = int64(v)
			case fieldLayoutLY:
				l.LY = int64(v)
			case fieldLayoutUX:
				l.UX = int64(v)
			case fieldLayoutUY:
				l.UY = int64(v)
			}
			b = b[n:]

		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return fmt.Errorf("layout: unknown field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return nil
}
