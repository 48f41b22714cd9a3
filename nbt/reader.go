// Package nbt decodes the minimal subset of network NBT that appears in the
// play-phase chunk packets: compounds, strings, and long arrays. Tag
// parsing is delegated to the third-party github.com/go-mclib/protocol/nbt
// package, the same NBT library the wider corpus exercises for this exact
// packet (go-mclib-client's chunk_parser.go reads level_chunk_with_light's
// heightmap compound through it); this package only flattens the decoded
// tag tree into the shape the chunk decoder needs.
package nbt

import (
	"fmt"
	"io"

	gomcnbt "github.com/go-mclib/protocol/nbt"
)

// Tag ids. Parsing itself is delegated to gomcnbt; these are kept only to
// build this package's own test fixtures in the real wire shape.
const (
	tagEnd       = 0x00
	tagString    = 0x08
	tagCompound  = 0x0a
	tagLongArray = 0x0c
)

// Compound is a decoded NBT compound, flattened to the tags this client
// cares about, keyed by name. Long arrays are the only payload shape the
// heightmap format uses beyond strings, so that's the only other value
// type kept.
type Compound struct {
	Strings   map[string]string
	LongArray map[string][]int64
}

// ReadNetworkCompound reads one network-format NBT compound from r: since
// 1.20.2 the root compound's type byte is still present but its name is
// omitted, while every nested tag keeps both its type byte and its
// length-prefixed name - the same nameless-root convention
// go-mclib-client's readNetworkNBT decodes heightmaps with. Tag kinds this
// client never reads back out (lists, nested compounds, numeric tags) are
// dropped rather than failing the read: the reader is intentionally
// partial, matching only what a chunk column's heightmap or a disconnect
// reason ever carries.
func ReadNetworkCompound(r io.Reader) (*Compound, error) {
	reader := gomcnbt.NewReaderFrom(r)
	tag, _, err := reader.ReadTag(true)
	if err != nil {
		return nil, fmt.Errorf("nbt: %w", err)
	}

	root, ok := tag.(gomcnbt.Compound)
	if !ok {
		return nil, fmt.Errorf("nbt: root tag is not TAG_Compound")
	}
	return flatten(root), nil
}

// flatten walks a decoded compound's direct children, keeping the string
// and long-array values a heightmap or a disconnect reason carries and
// silently skipping anything else - the reader never needs to walk into a
// nested compound itself, only the values a heightmap's direct children
// hold.
func flatten(c gomcnbt.Compound) *Compound {
	out := &Compound{
		Strings:   make(map[string]string),
		LongArray: make(map[string][]int64),
	}
	for name, t := range c {
		switch v := t.(type) {
		case gomcnbt.String:
			out.Strings[name] = string(v)
		case gomcnbt.LongArray:
			out.LongArray[name] = []int64(v)
		}
	}
	return out
}
