package midi

import (
	"fmt"
	"io"
)

// ReadVarInt decodes one variable-length quantity: big-endian groups of
// seven bits where the high bit of every byte except the last is set.
// Delta times and meta event lengths are stored in this encoding.
func ReadVarInt(r io.ByteReader) (int, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("midi: reading variable-length quantity: %w", err)
	}
	value := int(b & 0x7f)
	for b&0x80 != 0 {
		b, err = r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("midi: reading variable-length quantity: %w", err)
		}
		value = value<<7 | int(b&0x7f)
	}
	return value, nil
}

// AppendVarInt appends the variable-length encoding of v to dst and
// returns the extended slice. Negative values are encoded as zero.
func AppendVarInt(dst []byte, v int) []byte {
	if v < 0 {
		v = 0
	}
	var groups [10]byte
	n := 0
	for {
		groups[n] = byte(v & 0x7f)
		n++
		v >>= 7
		if v == 0 {
			break
		}
	}
	for i := n - 1; i > 0; i-- {
		dst = append(dst, groups[i]|0x80)
	}
	return append(dst, groups[0])
}
