package serializer

import (
	"bytes"
	"encoding/gob"
	"github.com/ValentinKolb/hlbridge/lib/circuit"
)

// NewGOBSerializer creates a new serializer using Go's binary gob format
func NewGOBSerializer() ICircuitSerializer {
	return &gobSerializerImpl{}
}

// gobSerializerImpl implements the ICircuitSerializer interface using gob encoding
type gobSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ICircuitSerializer)
// --------------------------------------------------------------------------

func (g gobSerializerImpl) Serialize(desc *circuit.Description) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(desc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g gobSerializerImpl) Deserialize(b []byte, desc *circuit.Description) error {
	var tmp circuit.Description
	dec := gob.NewDecoder(bytes.NewBuffer(b))
	if err := dec.Decode(&tmp); err != nil {
		return err
	}
	if tmp.Macros == nil {
		tmp.Macros = make([]*circuit.Macro, 0)
	}
	if err := tmp.Validate(); err != nil {
		return err
	}
	*desc = tmp
	return nil
}

func (g gobSerializerImpl) Name() string {
	return "gob"
}
