// Package recognize turns a glyph cluster into a symbol label. The
// core treats recognition as opaque: implementations are selected at
// startup and tried in a fixed fallback order.
package recognize

import (
	"context"
	"errors"
	"log"

	"github.com/jhaanurag/AI-Math-Notes/internal/ink"
)

// Result is a recognized label with its confidence in [0, 1].
type Result struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// ErrUnavailable signals that a recognizer could not produce any
// label, so the chain should fall through to the next one.
var ErrUnavailable = errors.New("recognizer unavailable")

// Recognizer maps one glyph cluster to a label. Implementations must
// be side-effect-free with respect to the cluster: they never add or
// remove strokes.
type Recognizer interface {
	Name() string
	Recognize(ctx context.Context, c *ink.GlyphCluster) (Result, error)
}

// Chain tries recognizers in order and returns the first answer. When
// every stage fails the chain degrades to the unknown label rather
// than surfacing an error: drawing must always be able to continue.
type Chain struct {
	stages []Recognizer
}

func NewChain(stages ...Recognizer) *Chain {
	return &Chain{stages: stages}
}

func (ch *Chain) Name() string { return "chain" }

func (ch *Chain) Recognize(ctx context.Context, c *ink.GlyphCluster) (Result, error) {
	for _, r := range ch.stages {
		res, err := r.Recognize(ctx, c)
		if err == nil && res.Label != "" {
			return res, nil
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("[RECOGNIZE] %s failed for glyph %s: %v", r.Name(), c.ID, err)
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
	}
	return Result{Label: "?", Confidence: 0}, nil
}
