// Package player holds the in-memory state of a connected client and the
// packet-level actions that mutate it or touch the socket.
package player

import (
	"sync"

	"github.com/voxelbot/headlessclient/chunk"
)

// Vector3 is a three-component double-precision vector, used for both
// position and velocity.
type Vector3 struct {
	X, Y, Z float64
}

// ChunkPos identifies a chunk column by its (x, z) column coordinates.
type ChunkPos struct {
	X, Z int32
}

// Player is the mutable state of a single connected client: entity
// identity, transform, health, and the chunk columns it has loaded. The
// reader task takes Mu around each mutation of the identity, transform and
// health fields, and the writer task takes Mu to read them, so a position
// read by the writer can't race a concurrent mutation. The chunk map is
// guarded by its own lock inside StoreChunk, ForgetChunk and Chunk.
type Player struct {
	Mu sync.Mutex

	Name     string
	EntityID int32

	Position Vector3
	Velocity Vector3
	Yaw      float32
	Pitch    float32

	Health   float32
	IsFlying bool

	chunksMu sync.Mutex
	chunks   map[ChunkPos]*chunk.Column
}

// New creates a Player for the given display name. Health starts at the
// full 20 points, matching a freshly spawned entity.
func New(name string) *Player {
	return &Player{
		Name:   name,
		Health: 20,
		chunks: make(map[ChunkPos]*chunk.Column),
	}
}

// StoreChunk records a decoded chunk column, inserted on receipt of
// level_chunk_with_light.
func (p *Player) StoreChunk(col *chunk.Column) {
	p.chunksMu.Lock()
	defer p.chunksMu.Unlock()
	p.chunks[ChunkPos{X: col.X, Z: col.Z}] = col
}

// ForgetChunk removes a chunk column, as requested by forget_level_chunk.
func (p *Player) ForgetChunk(x, z int32) {
	p.chunksMu.Lock()
	defer p.chunksMu.Unlock()
	delete(p.chunks, ChunkPos{X: x, Z: z})
}

// Chunk looks up a previously stored column.
func (p *Player) Chunk(x, z int32) (*chunk.Column, bool) {
	p.chunksMu.Lock()
	defer p.chunksMu.Unlock()
	c, ok := p.chunks[ChunkPos{X: x, Z: z}]
	return c, ok
}

// ChunkCount reports how many columns are currently loaded, mainly for
// diagnostics and tests.
func (p *Player) ChunkCount() int {
	p.chunksMu.Lock()
	defer p.chunksMu.Unlock()
	return len(p.chunks)
}
