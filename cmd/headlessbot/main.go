// Command headlessbot connects a single headless client to a server and
// runs it until disconnect or error.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/voxelbot/headlessclient/bot"
	"github.com/voxelbot/headlessclient/registry"
	"github.com/voxelbot/headlessclient/session"
)

func main() {
	var addr, name, registryPath, packetsPath string
	var verbose bool

	flag.StringVar(&addr, "addr", "127.0.0.1:25565", "server address (host:port)")
	flag.StringVar(&name, "name", "Bot", "player name")
	flag.StringVar(&registryPath, "registry", "", "path to block-registry JSON report")
	flag.StringVar(&packetsPath, "packets", "", "path to packet-name JSON report")
	flag.BoolVar(&verbose, "v", false, "verbose logging")
	flag.Parse()

	packetLog := io.Discard
	if verbose {
		packetLog = os.Stderr
	}
	logger := log.New(packetLog, "", log.LstdFlags)

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
	b, err := bot.Dial(bot.AddrWithDefaultPort(addr), name, blocks, packets, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connecting to %s: %v\n", addr, err)
		os.Exit(1)
	}
	defer b.Close()

	err = b.Run(context.Background())

	var disconnected *session.Disconnected
	if errors.As(err, &disconnected) {
		fmt.Fprintf(os.Stderr, "disconnected: %s\n", disconnected.Reason)
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "connection error: %v\n", err)
		os.Exit(1)
	}
}
