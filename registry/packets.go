package registry

import (
	"encoding/json"
	"io"
	"os"
	"strconv"
)

// Packets maps (phase, direction, id) to a human-readable packet name,
// used only to make log output legible; nothing in the FSM depends on it.
type Packets struct {
	names map[string]string
}

// packetKey builds the lookup key for a phase/direction/id triple.
func packetKey(phase, direction string, id int32) string {
	return phase + "/" + direction + "/" + strconv.FormatInt(int64(id), 10)
}

// LoadPackets reads a packet-name JSON report from path. The expected shape
// is a nested object: phase -> direction -> id string -> name.
func LoadPackets(path string) (*Packets, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodePackets(f)
}

// DecodePackets builds a Packets table from JSON read from r.
func DecodePackets(r io.Reader) (*Packets, error) {
	var raw map[string]map[string]map[string]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	p := &Packets{names: make(map[string]string)}
	for phase, byDirection := range raw {
		for direction, byID := range byDirection {
			for idStr, name := range byID {
				id, err := strconv.ParseInt(idStr, 0, 32)
				if err != nil {
					continue
				}
				p.names[packetKey(phase, direction, int32(id))] = name
			}
		}
	}
	return p, nil
}

// NameOf returns the packet name for (phase, direction, id), or the id
// formatted as hex if the table has no entry.
func (p *Packets) NameOf(phase, direction string, id int32) string {
	if p != nil {
		if name, ok := p.names[packetKey(phase, direction, id)]; ok {
			return name
		}
	}
	return "0x" + strconv.FormatInt(int64(id), 16)
}
