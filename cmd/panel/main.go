// Command panel serves a single static status page over HTTP, showing the
// roster of bots a swarm has connected and their last-known player state.
// It is explicitly thin glue: no templating engine, no asset pipeline, just
// net/http serving one page and one JSON feed.
package main

import (
	"embed"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
)

//go:embed static/index.html
var staticFS embed.FS

// Roster is the shared, concurrency-safe view of connected bots that the
// panel renders. A real deployment wires bot.Bot instances into it as they
// dial and disconnect; this command stands alone and starts empty.
type Roster struct {
	mu   sync.Mutex
	bots map[string]BotStatus
}

// BotStatus is the subset of player.Player state the panel displays.
type BotStatus struct {
	Name       string  `json:"name"`
	EntityID   int32   `json:"entity_id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Health     float32 `json:"health"`
	ChunkCount int     `json:"chunk_count"`
	Connected  bool    `json:"connected"`
}

func NewRoster() *Roster {
	return &Roster{bots: make(map[string]BotStatus)}
}

func (r *Roster) Set(s BotStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bots[s.Name] = s
}

func (r *Roster) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bots, name)
}

func (r *Roster) Snapshot() []BotStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]BotStatus, 0, len(r.bots))
	for _, s := range r.bots {
		out = append(out, s)
	}
	return out
}

func main() {
	var addr string
	flag.StringVar(&addr, "addr", "0.0.0.0:8080", "listen address")
	flag.Parse()

	roster := NewRoster()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			http.NotFound(w, req)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page, err := staticFS.ReadFile("static/index.html")
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Write(page)
	})
	mux.HandleFunc("/api/bots", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(roster.Snapshot())
	})

	logger := log.New(os.Stderr, "", log.LstdFlags)
	logger.Printf("serving control panel on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		fmt.Fprintf(os.Stderr, "panel: %v\n", err)
		os.Exit(1)
	}
}
