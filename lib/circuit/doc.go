// Package circuit defines the domain payload exchanged between the placement tool
// and the backend: an ordered list of macros plus the layout bounding box.
//
// A Description is created by deserializing a problem payload (see the serializer
// package), mutated in place with solved positions and serialized back as the solution.
// Descriptions are not safe for concurrent use; a session owns exactly one at a time.
package circuit
