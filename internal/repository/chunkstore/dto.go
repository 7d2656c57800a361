package chunkstore

import (
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/kailas-cloud/helixrag/internal/domain"
)

// buildHashFields converts a domain Chunk into a flat map[string]string for HSET.
// Metadata is stored as a JSON blob; it is not indexed.
func buildHashFields(c *domain.Chunk) map[string]string {
	m := map[string]string{
		"__content": c.Text,
		"__vector":  vectorToBytes(c.Vector),
		"source":    c.Source,
	}
	if len(c.Metadata) > 0 {
		if data, err := json.Marshal(c.Metadata); err == nil {
			m["__meta"] = string(data)
		}
	}
	return m
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
