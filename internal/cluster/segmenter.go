package cluster

import (
	"sync"
	"time"

	"github.com/jhaanurag/AI-Math-Notes/internal/geom"
	"github.com/jhaanurag/AI-Math-Notes/internal/ink"
)

// SegmenterConfig holds the knobs for the incremental character
// segmenter. Zero values are replaced by the defaults below.
type SegmenterConfig struct {
	// Debounce is the completion timeout: how long the in-progress
	// glyph may sit without a new stroke before it finalizes.
	Debounce time.Duration
	// MaxStrokeDistance is the largest edge gap between a new stroke
	// and the candidate for the stroke to still extend it.
	MaxStrokeDistance float64
	// MaxAspectRatio and MaxCharSize bound the candidate's combined
	// box; a stroke that would blow past them starts a new glyph.
	MaxAspectRatio float64
	MaxCharSize    float64
}

// DefaultSegmenterConfig returns the segmenter thresholds used when
// the caller does not override them.
func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		Debounce:          400 * time.Millisecond,
		MaxStrokeDistance: 40,
		MaxAspectRatio:    8,
		MaxCharSize:       300,
	}
}

func (c SegmenterConfig) withDefaults() SegmenterConfig {
	d := DefaultSegmenterConfig()
	if c.Debounce <= 0 {
		c.Debounce = d.Debounce
	}
	if c.MaxStrokeDistance <= 0 {
		c.MaxStrokeDistance = d.MaxStrokeDistance
	}
	if c.MaxAspectRatio <= 0 {
		c.MaxAspectRatio = d.MaxAspectRatio
	}
	if c.MaxCharSize <= 0 {
		c.MaxCharSize = d.MaxCharSize
	}
	return c
}

// Segmenter consumes one stroke at a time and decides whether it
// extends the in-progress glyph or finalizes it and starts a new one.
// It is idle until the first stroke, accumulating while strokes keep
// qualifying, and emits the finalized glyph through onComplete either
// when a disqualifying stroke arrives or when the completion timer
// fires with no new stroke. Finalized glyphs are never reopened.
type Segmenter struct {
	mu         sync.Mutex
	cfg        SegmenterConfig
	active     *ink.GlyphCluster
	timer      *time.Timer
	gen        int
	onComplete func(*ink.GlyphCluster)
}

func NewSegmenter(cfg SegmenterConfig, onComplete func(*ink.GlyphCluster)) *Segmenter {
	return &Segmenter{cfg: cfg.withDefaults(), onComplete: onComplete}
}

// Add routes a stroke into the state machine. It may emit a finalized
// glyph before the stroke starts or extends a candidate.
func (g *Segmenter) Add(s *ink.Stroke) {
	g.mu.Lock()
	var done *ink.GlyphCluster
	if g.active != nil && g.disqualifies(s) {
		done = g.finalizeLocked()
	}
	if g.active == nil {
		g.active = ink.NewGlyphCluster(s)
	} else {
		g.active.Add(s)
	}
	g.rescheduleLocked()
	g.mu.Unlock()

	if done != nil {
		g.emit(done)
	}
}

// disqualifies reports whether stroke s cannot extend the active
// candidate. Caller holds the lock and has checked active is non-nil.
func (g *Segmenter) disqualifies(s *ink.Stroke) bool {
	if s.StartTime()-g.active.LastTime() > g.cfg.Debounce.Milliseconds() {
		return true
	}
	if geom.Gap(s.Box, g.active.Box) > g.cfg.MaxStrokeDistance {
		return true
	}
	combined := geom.Union(g.active.Box, s.Box)
	w, h := combined.Width(), combined.Height()
	if w > g.cfg.MaxCharSize && h > g.cfg.MaxCharSize {
		return true
	}
	long, short := w, h
	if h > w {
		long, short = h, w
	}
	if short > 0 && long/short > g.cfg.MaxAspectRatio && long > g.cfg.MaxCharSize {
		return true
	}
	return false
}

// ForceComplete finalizes the active candidate immediately, cancelling
// the pending timer. A no-op when nothing is in progress.
func (g *Segmenter) ForceComplete() {
	g.mu.Lock()
	done := g.finalizeLocked()
	g.mu.Unlock()
	if done != nil {
		g.emit(done)
	}
}

// Discard drops the active candidate without emitting it, for canvas
// clears.
func (g *Segmenter) Discard() {
	g.mu.Lock()
	g.finalizeLocked()
	g.mu.Unlock()
}

// finalizeLocked detaches the active candidate and cancels its timer.
// Idempotent: returns nil when no candidate exists.
func (g *Segmenter) finalizeLocked() *ink.GlyphCluster {
	g.gen++
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	done := g.active
	g.active = nil
	return done
}

// rescheduleLocked resets the completion timer for the current
// candidate. Only the most recently scheduled timer is live: stale
// timers are stopped here and double-checked by generation on fire.
func (g *Segmenter) rescheduleLocked() {
	g.gen++
	gen := g.gen
	if g.timer != nil {
		g.timer.Stop()
	}
	g.timer = time.AfterFunc(g.cfg.Debounce, func() { g.timeout(gen) })
}

func (g *Segmenter) timeout(gen int) {
	g.mu.Lock()
	if gen != g.gen || g.active == nil {
		g.mu.Unlock()
		return
	}
	done := g.finalizeLocked()
	g.mu.Unlock()
	g.emit(done)
}

func (g *Segmenter) emit(c *ink.GlyphCluster) {
	if g.onComplete != nil {
		g.onComplete(c)
	}
}
