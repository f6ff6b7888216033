package serializer

import (
	"fmt"
	"github.com/ValentinKolb/hlbridge/lib/circuit"
)

// ICircuitSerializer is the interface for all circuit schema serializers
type ICircuitSerializer interface {
	// Serialize serializes a circuit description into a byte array
	// It returns the serialized byte array and an error if any
	Serialize(desc *circuit.Description) ([]byte, error)
	// Deserialize deserializes a byte array into a circuit description
	// It takes a byte array and a pointer to a Description as parameters
	// It returns an error if the bytes do not conform to the schema
	Deserialize(b []byte, desc *circuit.Description) error
	// Name returns the name of the serializer (e.g. "proto", "json")
	Name() string
}

// New creates a serializer by name
func New(name string) (ICircuitSerializer, error) {
	switch name {
	case "proto", "":
		return NewProtoSerializer(), nil
	case "json":
		return NewJSONSerializer(), nil
	case "gob":
		return NewGOBSerializer(), nil
	default:
		return nil, fmt.Errorf("invalid serializer %s (expected one of: proto, json, gob)", name)
	}
}
