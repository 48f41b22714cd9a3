package chunk

import (
	"bytes"
	"fmt"

	"github.com/voxelbot/headlessclient/nbt"
	"github.com/voxelbot/headlessclient/protocol"
)

// SectionCount is the number of vertical sections in an overworld chunk
// column (Y -64 to Y 319), matching the 24-section world height used
// since 1.18. Other dimensions' taller or shorter columns are out of
// scope: this client only ever joins the overworld.
const SectionCount = 24

// Column is a fully decoded chunk column as sent by a level_chunk_with_light
// packet's Data field.
type Column struct {
	X, Z       int32
	Sections   [SectionCount]*Section
	Heightmaps *nbt.Compound
}

// MotionBlockingHeightmap returns the decoded MOTION_BLOCKING heightmap as
// 256 per-column (x,z) heights, each a 9-bit packed entry offset by -64 per
// the heightmap format, or nil if the column didn't carry one.
func (c *Column) MotionBlockingHeightmap() []int32 {
	if c.Heightmaps == nil {
		return nil
	}
	packed, ok := c.Heightmaps.LongArray["MOTION_BLOCKING"]
	if !ok {
		return nil
	}

	const bitsPerEntry = 9
	entries := make([]int64, 0, 256)
	perLong := 64 / bitsPerEntry
	mask := int64(1)<<bitsPerEntry - 1
	for _, word := range packed {
		for i := 0; i < perLong && len(entries) < 256; i++ {
			entries = append(entries, (word>>uint(i*bitsPerEntry))&mask)
		}
	}

	heights := make([]int32, len(entries))
	for i, e := range entries {
		heights[i] = int32(e) - 64
	}
	return heights
}

// DecodeColumn parses the level_chunk_with_light Data field: a network-NBT
// heightmap compound, a varint byte-length for the section data, then up
// to SectionCount sections packed back to back within that length.
func DecodeColumn(chunkX, chunkZ int32, data []byte) (*Column, error) {
	buf := bytes.NewReader(data)

	heightmaps, err := nbt.ReadNetworkCompound(buf)
	if err != nil {
		return nil, fmt.Errorf("chunk: heightmap nbt: %w", err)
	}

	var dataLen protocol.VarInt
	if _, err := dataLen.ReadFrom(buf); err != nil {
		return nil, fmt.Errorf("chunk: section data length: %w", err)
	}
	if dataLen < 0 {
		return nil, fmt.Errorf("chunk: negative section data length %d", dataLen)
	}

	sectionEnd := len(data) - buf.Len() + int(dataLen)
	if sectionEnd > len(data) {
		return nil, fmt.Errorf("chunk: section data length %d exceeds packet body", dataLen)
	}

	column := &Column{X: chunkX, Z: chunkZ, Heightmaps: heightmaps}
	for i := 0; i < SectionCount; i++ {
		if len(data)-buf.Len() >= sectionEnd {
			break
		}
		section, err := readSection(buf)
		if err != nil {
			return nil, fmt.Errorf("chunk: section %d: %w", i, err)
		}
		column.Sections[i] = section
	}

	return column, nil
}
