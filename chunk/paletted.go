// Package chunk decodes the level chunk data sent in the play phase: the
// paletted block-state and biome containers of each 16x16x16 section, and
// the heightmap NBT compound attached to a chunk column.
package chunk

import (
	"errors"
	"fmt"
	"io"

	"github.com/voxelbot/headlessclient/protocol"
)

// ErrSectionEntryCount reports a section whose decoded entry count is not
// exactly 4096 (16x16x16) — a malformed or truncated data array.
var ErrSectionEntryCount = errors.New("chunk: section did not decode to exactly 4096 entries")

// PalettedContainer stores either 4096 block states or 64 biome IDs,
// indexed by the registry-global ID for the value at each position. The
// Palette slice is nil for a direct container, where Data entries are the
// global IDs themselves rather than palette indices.
type PalettedContainer struct {
	BitsPerEntry int
	Palette      []int32
	Data         []uint64
	SingleValue  int32
}

// paletteShape bounds how a container's bits-per-entry selects among the
// single-value, indirect, and direct encodings. Blocks and biomes use
// different thresholds (see section 4.1 of the block-state/biome palette
// format), so the caller supplies them per container kind.
type paletteShape struct {
	minIndirectBits int
	maxIndirectBits int
	directBits      int
}

var (
	blockPaletteShape = paletteShape{minIndirectBits: 4, maxIndirectBits: 8, directBits: 15}
	biomePaletteShape = paletteShape{minIndirectBits: 1, maxIndirectBits: 3, directBits: 6}
)

func readPalettedContainer(r io.Reader, shape paletteShape) (*PalettedContainer, error) {
	var bitsPerEntry protocol.UnsignedByte
	if _, err := bitsPerEntry.ReadFrom(r); err != nil {
		return nil, err
	}

	switch {
	case bitsPerEntry == 0:
		return readSingleValueContainer(r)
	case int(bitsPerEntry) <= shape.maxIndirectBits:
		return readIndirectContainer(r, int(bitsPerEntry), shape.minIndirectBits)
	default:
		// Direct palette: every entry is a global ID, encoded at a fixed
		// width regardless of what the wire's bits-per-entry byte said.
		return readDirectContainer(r, shape.directBits)
	}
}

func readSingleValueContainer(r io.Reader) (*PalettedContainer, error) {
	var value protocol.VarInt
	if _, err := value.ReadFrom(r); err != nil {
		return nil, err
	}

	var dataLength protocol.VarInt
	if _, err := dataLength.ReadFrom(r); err != nil {
		return nil, err
	}
	// A single-value container's data array length is specified as 0, but
	// a server is free to send padding longs; drain them rather than
	// desyncing the packet.
	for i := protocol.VarInt(0); i < dataLength; i++ {
		var discard protocol.Long
		if _, err := discard.ReadFrom(r); err != nil {
			return nil, err
		}
	}

	return &PalettedContainer{BitsPerEntry: 0, SingleValue: int32(value)}, nil
}

func readIndirectContainer(r io.Reader, bitsPerEntry, minBits int) (*PalettedContainer, error) {
	effectiveBits := bitsPerEntry
	if effectiveBits < minBits {
		effectiveBits = minBits
	}

	var paletteLen protocol.VarInt
	if _, err := paletteLen.ReadFrom(r); err != nil {
		return nil, err
	}
	palette := make([]int32, paletteLen)
	for i := range palette {
		var v protocol.VarInt
		if _, err := v.ReadFrom(r); err != nil {
			return nil, err
		}
		palette[i] = int32(v)
	}

	data, err := readLongArray(r)
	if err != nil {
		return nil, err
	}

	return &PalettedContainer{BitsPerEntry: effectiveBits, Palette: palette, Data: data}, nil
}

func readDirectContainer(r io.Reader, directBits int) (*PalettedContainer, error) {
	data, err := readLongArray(r)
	if err != nil {
		return nil, err
	}
	return &PalettedContainer{BitsPerEntry: directBits, Palette: nil, Data: data}, nil
}

func readLongArray(r io.Reader) ([]uint64, error) {
	var length protocol.VarInt
	if _, err := length.ReadFrom(r); err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, fmt.Errorf("chunk: negative data array length %d", length)
	}

	out := make([]uint64, length)
	for i := range out {
		var v protocol.Long
		if _, err := v.ReadFrom(r); err != nil {
			return nil, err
		}
		out[i] = uint64(v)
	}
	return out, nil
}

// decodeEntries unpacks every bits-per-entry-wide value out of data,
// LSB-first within each 64-bit long, discarding any leftover bits at the
// top of a long rather than letting an entry span two longs.
func decodeEntries(bitsPerEntry int, data []uint64) []int32 {
	if bitsPerEntry == 0 {
		return nil
	}
	perLong := 64 / bitsPerEntry
	mask := uint64(1)<<uint(bitsPerEntry) - 1

	entries := make([]int32, 0, len(data)*perLong)
	for _, word := range data {
		for i := 0; i < perLong; i++ {
			shift := uint(i * bitsPerEntry)
			entries = append(entries, int32((word>>shift)&mask))
		}
	}
	return entries
}

// At returns the global ID at local paletted index idx (0..4095 for
// blocks, 0..63 for biomes), resolving through the palette if indirect.
func (p *PalettedContainer) At(idx int) int32 {
	if p.BitsPerEntry == 0 {
		return p.SingleValue
	}

	perLong := 64 / p.BitsPerEntry
	longIndex := idx / perLong
	if longIndex >= len(p.Data) {
		return 0
	}
	bitIndex := uint((idx % perLong) * p.BitsPerEntry)
	mask := uint64(1)<<uint(p.BitsPerEntry) - 1
	paletteIndex := int((p.Data[longIndex] >> bitIndex) & mask)

	if p.Palette == nil {
		return int32(paletteIndex)
	}
	if paletteIndex >= len(p.Palette) {
		return 0
	}
	return p.Palette[paletteIndex]
}

// BlockStateAt resolves a block state ID from (x, y, z) local coordinates
// within a 16x16x16 section, using the (y*16+z)*16+x index order the wire
// format packs entries in.
func (p *PalettedContainer) BlockStateAt(x, y, z int) int32 {
	return p.At((y*16+z)*16 + x)
}
