package persist

import (
	"encoding/binary"
	"math"

	"golang.org/x/crypto/blake2b"

	"github.com/sceneworks/sceneedit/internal/scene"
)

// Checksum hashes the entity contents of snap. The scene name is not part
// of the sum, so the same entities under two names hash alike.
func Checksum(snap scene.Snapshot) []byte {
	h, _ := blake2b.New256(nil) // only fails for keys over 64 bytes
	var buf []byte
	for _, e := range snap.Entities {
		buf = buf[:0]
		buf = appendString(buf, e.Kind)
		buf = appendString(buf, e.Name)
		for _, v := range [...]float32{
			e.Transform.Position[0], e.Transform.Position[1], e.Transform.Position[2],
			e.Transform.Rotation[0], e.Transform.Rotation[1], e.Transform.Rotation[2],
			e.Transform.Scale[0], e.Transform.Scale[1], e.Transform.Scale[2],
			e.Material.Roughness, e.Material.Metalness,
		} {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		}
		buf = binary.LittleEndian.AppendUint32(buf, e.Material.Color)
		if e.Material.DoubleSided {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
		h.Write(buf)
	}
	return h.Sum(nil)
}

func appendString(buf []byte, s string) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}
