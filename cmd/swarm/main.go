// Command swarm connects a batch of headless clients to a single server
// concurrently, one goroutine per bot, and keeps them connected until the
// server drops them or the process is interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/voxelbot/headlessclient/bot"
	"github.com/voxelbot/headlessclient/registry"
)

func main() {
	var addr, namePrefix, registryPath, packetsPath string
	var count int
	var verbose bool

	flag.StringVar(&addr, "addr", "127.0.0.1:25565", "server address (host:port)")
	flag.StringVar(&namePrefix, "name-prefix", "Bot", "player name prefix; bots are named <prefix>0, <prefix>1, ...")
	flag.StringVar(&registryPath, "registry", "", "path to block-registry JSON report")
	flag.StringVar(&packetsPath, "packets", "", "path to packet-name JSON report")
	flag.IntVar(&count, "n", 10, "number of bots to connect")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.Parse()

	packetLog := io.Discard
	if verbose {
		packetLog = os.Stderr
	}

	var blocks *registry.Blocks
	if registryPath != "" {
		var err error
		blocks, err = registry.LoadBlocks(registryPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading block registry: %v\n", err)
			os.Exit(1)
		}
	}

	var packets *registry.Packets
	if packetsPath != "" {
		var err error
		packets, err = registry.LoadPackets(packetsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading packet registry: %v\n", err)
			os.Exit(1)
		}
	}

	target := bot.AddrWithDefaultPort(addr)

	var wg sync.WaitGroup
	wg.Add(count)
	for i := 0; i < count; i++ {
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("%s%d", namePrefix, i)
			logger := log.New(packetLog, fmt.Sprintf("[%s] ", name), log.LstdFlags)

			b, err := bot.Dial(target, name, blocks, packets, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: connecting: %v\n", name, err)
				return
			}
			defer b.Close()

			if err := b.Run(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "%s: disconnected: %v\n", name, err)
			}
		}(i)
	}
	wg.Wait()
}
