package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	netx "github.com/jhaanurag/AI-Math-Notes/internal/net"
	"github.com/jhaanurag/AI-Math-Notes/internal/recognize"
	"github.com/jhaanurag/AI-Math-Notes/internal/session"
	"github.com/jhaanurag/AI-Math-Notes/internal/ui"
)

func main() {
	// .env is optional; flags and env vars cover everything.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	var (
		ocrEndpoint = flag.String("ocr", envOr("MATHNOTES_OCR", ""),
			"OCR backend host:port; empty means discover via mDNS, then fall back to built-in rules")
		streamPort = flag.Int("stream-port", envIntOr("MATHNOTES_STREAM_PORT", 8970),
			"port for the websocket snapshot stream; 0 disables it")
		charMode = flag.Bool("char-mode", false,
			"segment and recognize one character at a time instead of whole expressions")
		exprDebounceMs = flag.Int("debounce", envIntOr("MATHNOTES_DEBOUNCE_MS", 0),
			"expression settle debounce in milliseconds; 0 keeps the default")
	)
	flag.Parse()

	cfg := session.DefaultConfig()
	if *charMode {
		cfg.Mode = session.ModeCharacter
	}
	if *exprDebounceMs > 0 {
		cfg.ExprDebounce = time.Duration(*exprDebounceMs) * time.Millisecond
	}

	chain, status := buildRecognizer(*ocrEndpoint)
	sess := session.New(cfg, chain)

	var broadcast func(session.Snapshot)
	if *streamPort > 0 {
		stream := netx.NewSnapshotServer()
		defer stream.Close()
		broadcast = func(snap session.Snapshot) { stream.Broadcast(snap) }

		mux := http.NewServeMux()
		mux.Handle("/ws", stream)
		addr := fmt.Sprintf(":%d", *streamPort)
		go func() {
			log.Printf("Snapshot stream on ws://%s:%d/ws", netx.OutgoingIP(), *streamPort)
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Printf("Snapshot stream stopped: %v", err)
			}
		}()

		if srv, err := netx.Advertise(netx.StreamServiceType, "math-notes", *streamPort); err != nil {
			log.Printf("Could not advertise snapshot stream: %v", err)
		} else {
			defer srv.Shutdown()
		}
	}

	ui.RunApp(sess, status, broadcast)
}

// buildRecognizer assembles the fallback chain: the remote OCR backend
// when one is configured or discovered, then the built-in geometric
// rules, which always answer.
func buildRecognizer(endpoint string) (recognize.Recognizer, string) {
	rules := recognize.NewRules()

	if endpoint == "" {
		discovered, err := netx.DiscoverEndpoint(netx.OCRServiceType, 2*time.Second)
		if err != nil {
			log.Printf("OCR discovery failed: %v", err)
		} else if discovered != "" {
			log.Printf("Discovered OCR backend at %s", discovered)
			endpoint = discovered
		}
	}
	if endpoint == "" {
		log.Println("No OCR backend; using built-in recognizer only")
		return recognize.NewChain(rules), "recognizer: built-in"
	}

	remote := recognize.NewRemote("http://" + endpoint)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if !remote.Healthy(ctx) {
		log.Printf("OCR backend %s not responding; it stays first in the chain and the rules cover outages", endpoint)
	}
	return recognize.NewChain(remote, rules), "recognizer: " + endpoint
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
