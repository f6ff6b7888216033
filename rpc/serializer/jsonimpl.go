package serializer

import (
	"encoding/json"
	"github.com/ValentinKolb/hlbridge/lib/circuit"
)

// NewJSONSerializer creates a new serializer using json encoding
func NewJSONSerializer() ICircuitSerializer {
	return &jsonSerializerImpl{}
}

// jsonSerializerImpl implements the ICircuitSerializer interface using json encoding
type jsonSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.ICircuitSerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl) Serialize(desc *circuit.Description) ([]byte, error) {
	return json.Marshal(desc)
}

func (j jsonSerializerImpl) Deserialize(b []byte, desc *circuit.Description) error {
	var tmp circuit.Description
	if err := json.Unmarshal(b, &tmp); err != nil {
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

func (j jsonSerializerImpl) Name() string {
	return "json"
}
