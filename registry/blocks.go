// Package registry loads the static block-state and packet-name tables a
// running client needs but that never change at runtime: the block
// registry used to resolve a palette's global ids to names, and the
// packet-name table used only to make log lines readable.
package registry

import (
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"
)

// blockState is one entry in a block's states array, as reported by the
// registry JSON.
type blockState struct {
	ID      int32 `json:"id"`
	Default bool  `json:"default,omitempty"`
}

type blockEntry struct {
	States []blockState `json:"states"`
}

// Blocks is an immutable, eagerly loaded block-id → name table. Loading it
// once at startup and sharing it read-only across every Player avoids the
// memoizing globals the original client used.
type Blocks struct {
	nameByID map[int32]string
}

// LoadBlocks reads a block-registry JSON report (namespace:name -> states)
// from path and builds the id → name lookup table.
func LoadBlocks(path string) (*Blocks, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeBlocks(f)
}

// DecodeBlocks builds a Blocks table from JSON read from r.
func DecodeBlocks(r io.Reader) (*Blocks, error) {
	var raw map[string]blockEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	b := &Blocks{nameByID: make(map[int32]string)}
	for qualifiedName, entry := range raw {
		name := qualifiedName
		if idx := strings.IndexByte(qualifiedName, ':'); idx >= 0 {
			name = qualifiedName[idx+1:]
		}
		for _, state := range entry.States {
			// The first state seen for an id wins; namespace JSON reports
			// list one canonical entry per id in practice.
			if _, exists := b.nameByID[state.ID]; !exists {
				b.nameByID[state.ID] = name
			}
		}
	}
	return b, nil
}

// NameOf returns the namespace-stripped block name for id, or its decimal
// string form if the registry has no match.
func (b *Blocks) NameOf(id int32) string {
	if b != nil {
		if name, ok := b.nameByID[id]; ok {
			return name
		}
	}
	return strconv.FormatInt(int64(id), 10)
}
