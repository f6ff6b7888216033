package serializer

import (
	"fmt"
	"github.com/ValentinKolb/hlbridge/lib/circuit"
	"testing"
)

// benchmarkDescriptions returns circuits of growing size for targeted benchmarking
func benchmarkDescriptions() map[string]*circuit.Description {
	result := make(map[string]*circuit.Description)
	for _, size := range []int{0, 3, 64, 1024} {
		desc := circuit.New()
		for i := 0; i < size; i++ {
			desc.AddMacro(circuit.Macro{
				ID:     fmt.Sprintf("macro-%d", i),
				Name:   fmt.Sprintf("block_%d", i),
				Width:  int64(100 + i),
				Height: int64(50 + i),
				X:      int64(i * 10),
				Y:      int64(i * 5),
			})
		}
		desc.SetBounds(10000, 10000)
		result[fmt.Sprintf("Macros%d", size)] = desc
	}
	return result
}

// BenchmarkSerialize measures the serialization of circuits of different sizes
func BenchmarkSerialize(b *testing.B) {
	for sName, factory := range testSerializers {
		for dName, desc := range benchmarkDescriptions() {
			b.Run(sName+"/"+dName, func(b *testing.B) {
				s := factory()
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if _, err := s.Serialize(desc); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkDeserialize measures the deserialization of circuits of different sizes
func BenchmarkDeserialize(b *testing.B) {
	for sName, factory := range testSerializers {
		for dName, desc := range benchmarkDescriptions() {
			b.Run(sName+"/"+dName, func(b *testing.B) {
				s := factory()
				data, err := s.Serialize(desc)
				if err != nil {
					b.Fatal(err)
				}
				b.SetBytes(int64(len(data)))
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if err := s.Deserialize(data, circuit.New()); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
