// ABOUTME: Entry point for the wavecast remote control CLI
// ABOUTME: Finds players via mDNS (or a URL) and sends play/stop/tone commands
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Resonate-Protocol/wavecast/internal/discovery"
	"github.com/Resonate-Protocol/wavecast/internal/protocol"
	"github.com/Resonate-Protocol/wavecast/internal/remote"
)

var (
	url      = flag.String("url", "", "Player control URL (skip mDNS), e.g. ws://host:8928/control")
	name     = flag.String("name", "", "Player name to pick when several are discovered")
	discover = flag.Duration("discover", 5*time.Second, "How long to browse for players")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: wavecast-remote [flags] <command>

Commands:
  list                  list players on the local network
  play <file>           play a file (path as seen by the player)
  stop                  stop playback
  tone [hz] [millis]    play a test tone (default 440Hz for 3000ms)

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	log.SetFlags(0)

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	if flag.Arg(0) == "list" {
		for _, inst := range browse(*discover) {
			fmt.Printf("%-24s %s\n", inst.Name, inst.URL())
		}
		return
	}

	req, err := buildRequest(flag.Args())
	if err != nil {
		log.Fatalf("%v", err)
	}

	target := *url
	if target == "" {
		target, err = pickPlayer(browse(*discover), *name)
		if err != nil {
			log.Fatalf("%v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := remote.Dial(ctx, target)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer client.Close()

	hello := client.Hello()
	reply, err := client.Send(req)
	if err != nil {
		log.Fatalf("%s refused %s: %v", hello.Name, req.Command, err)
	}

	fmt.Printf("%s: %s queued (id %s)\n", hello.Name, req.Command, reply.ID)
}

// buildRequest turns command-line arguments into a request
func buildRequest(args []string) (protocol.Request, error) {
	switch args[0] {
	case protocol.CommandPlay:
		if len(args) < 2 {
			return protocol.Request{}, fmt.Errorf("play needs a file")
		}
		path := args[1]
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		return protocol.Request{Command: protocol.CommandPlay, Path: path}, nil

	case protocol.CommandStop:
		return protocol.Request{Command: protocol.CommandStop}, nil

	case protocol.CommandTone:
		req := protocol.Request{Command: protocol.CommandTone, Freq: 440, Millis: 3000}
		if len(args) > 1 {
			freq, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return protocol.Request{}, fmt.Errorf("invalid frequency %q: %w", args[1], err)
			}
			req.Freq = freq
		}
		if len(args) > 2 {
			ms, err := strconv.Atoi(args[2])
			if err != nil {
				return protocol.Request{}, fmt.Errorf("invalid length %q: %w", args[2], err)
			}
			req.Millis = ms
		}
		return req, nil

	default:
		return protocol.Request{}, fmt.Errorf("unknown command %q", args[0])
	}
}

// browse collects players advertised within timeout
func browse(timeout time.Duration) []*discovery.Instance {
	mgr := discovery.NewManager(discovery.Config{})
	defer mgr.Stop()

	mgr.Browse()

	seen := make(map[string]bool)
	var found []*discovery.Instance
	deadline := time.After(timeout)

	for {
		select {
		case inst := <-mgr.Instances():
			if key := inst.URL(); !seen[key] {
				seen[key] = true
				found = append(found, inst)
			}
		case <-deadline:
			return found
		}
	}
}

// pickPlayer chooses the control URL to use
func pickPlayer(found []*discovery.Instance, name string) (string, error) {
	if name != "" {
		for _, inst := range found {
			if inst.Name == name {
				return inst.URL(), nil
			}
		}
		return "", fmt.Errorf("player %q not found (%d discovered)", name, len(found))
	}

	switch len(found) {
	case 0:
		return "", fmt.Errorf("no players found; use -url")
	case 1:
		return found[0].URL(), nil
	default:
		return "", fmt.Errorf("%d players found; pick one with -name (see 'list')", len(found))
	}
}
