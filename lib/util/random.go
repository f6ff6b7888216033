package util

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// RandomSeed returns a non-zero seed for a pseudo random number generator
func RandomSeed() int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// fall back to the current time
		return time.Now().UnixNano() | 1
	}
	seed := int64(binary.LittleEndian.Uint64(b[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed
}
