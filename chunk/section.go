package chunk

import (
	"io"

	"github.com/voxelbot/headlessclient/protocol"
)

// Section is one 16x16x16 vertical slice of a chunk column.
type Section struct {
	BlockCount  int16
	BlockStates *PalettedContainer
	Biomes      *PalettedContainer
}

const sectionBlockCount = 16 * 16 * 16

// readSection parses a single chunk section: the non-air block count
// followed by the block-state and biome paletted containers, in that
// order.
func readSection(r io.Reader) (*Section, error) {
	var blockCount protocol.Short
	if _, err := blockCount.ReadFrom(r); err != nil {
		return nil, err
	}

	blockStates, err := readPalettedContainer(r, blockPaletteShape)
	if err != nil {
		return nil, err
	}
	if blockStates.BitsPerEntry != 0 {
		// The last long may carry unused padding slots once 4096 entries are
		// packed, so the array must hold exactly enough longs for 4096.
		perLong := 64 / blockStates.BitsPerEntry
		if n := len(blockStates.Data); n != (sectionBlockCount+perLong-1)/perLong {
			return nil, ErrSectionEntryCount
		}
	}

	biomes, err := readPalettedContainer(r, biomePaletteShape)
	if err != nil {
		return nil, err
	}

	return &Section{
		BlockCount:  int16(blockCount),
		BlockStates: blockStates,
		Biomes:      biomes,
	}, nil
}
