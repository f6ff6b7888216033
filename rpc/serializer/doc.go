// Package serializer provides the circuit schema codecs of the placement bridge.
// It defines a common interface and multiple implementations for serializing and
// deserializing circuit descriptions carried as problem and solution payloads.
//
// Key Components:
//
//   - ICircuitSerializer: Core interface that all serializer implementations must satisfy.
//
//   - protoSerializerImpl: Protobuf wire format of the placer schema (MacroCircuit, Macro,
//     Layout), written with protowire so no generated code is needed. This is the format
//     the placement tool speaks and therefore the default.
//
//   - jsonSerializerImpl: JSON encoding, useful for debugging and for problem files
//     handed to the solve command.
//
//   - gobSerializerImpl: Go's gob encoding, only useful between two Go peers.
//
// The frame protocol has no escaping: a serialized payload that happens to contain the
// frame delimiter cannot be transmitted. The sender rejects such payloads.
//
// Thread Safety:
//
//	All serializer implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
//
// Usage:
//
//	s := serializer.NewProtoSerializer()
//	data, err := s.Serialize(desc)
//	// ... send data ...
//	received := circuit.New()
//	err = s.Deserialize(receivedData, received)
package serializer
