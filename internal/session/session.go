// Package session orchestrates one drawing session: it routes
// incoming strokes into clusters, schedules completion timers,
// dispatches recognition, and rebuilds expression lines and results
// after every settle.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jhaanurag/AI-Math-Notes/internal/cluster"
	"github.com/jhaanurag/AI-Math-Notes/internal/eval"
	"github.com/jhaanurag/AI-Math-Notes/internal/expr"
	"github.com/jhaanurag/AI-Math-Notes/internal/geom"
	"github.com/jhaanurag/AI-Math-Notes/internal/ink"
	"github.com/jhaanurag/AI-Math-Notes/internal/layout"
	"github.com/jhaanurag/AI-Math-Notes/internal/recognize"
)

// Mode selects the stroke grouping strategy.
type Mode int

const (
	// ModeExpression clusters strokes into whole expressions with the
	// group-merge policy, then splits each settled expression into
	// glyphs with the pairwise union-find policy.
	ModeExpression Mode = iota
	// ModeCharacter feeds strokes through the incremental character
	// segmenter and recognizes each finalized glyph on its own.
	ModeCharacter
)

// Config carries every tuning knob. Each knob gates a single
// predicate; there are no interaction effects between them.
type Config struct {
	Mode Mode
	// CharDebounce is the character segmenter's completion timeout.
	CharDebounce time.Duration
	// ExprDebounce is how long an expression cluster must sit
	// untouched before it settles and goes to recognition.
	ExprDebounce time.Duration
	// ClusterThreshold is the group-merge distance threshold, px.
	ClusterThreshold float64
	// MaxStrokeDistance, MaxAspectRatio, MaxCharSize bound the
	// character segmenter's candidate; MinCharSize drops stray specks.
	MaxStrokeDistance float64
	MaxAspectRatio    float64
	MinCharSize       float64
	MaxCharSize       float64
	// LineOverlapThreshold is the vertical overlap ratio for line
	// membership.
	LineOverlapThreshold float64
	// PairRules are the union-find grouping thresholds.
	PairRules cluster.PairRules
}

// DefaultConfig returns the knob defaults.
func DefaultConfig() Config {
	return Config{
		Mode:                 ModeExpression,
		CharDebounce:         400 * time.Millisecond,
		ExprDebounce:         800 * time.Millisecond,
		ClusterThreshold:     40,
		MaxStrokeDistance:    40,
		MaxAspectRatio:       8,
		MinCharSize:          3,
		MaxCharSize:          300,
		LineOverlapThreshold: layout.DefaultOverlapThreshold,
		PairRules:            cluster.DefaultPairRules(),
	}
}

// Session owns all mutable drawing state. All mutation happens under
// one mutex: timers and recognition complete on their own goroutines.
type Session struct {
	mu  sync.Mutex
	cfg Config

	recognizer recognize.Recognizer
	scope      *eval.Scope

	strokes     []*ink.Stroke
	expressions []*ink.GlyphCluster
	// glyphs holds the recognized glyph set per expression cluster id;
	// solo holds glyphs from the character segmenter.
	glyphs map[string][]*ink.GlyphCluster
	solo   []*ink.GlyphCluster
	lines  []*ink.ExpressionLine

	timers *cluster.TimerTable
	seg    *cluster.Segmenter

	ctx    context.Context
	cancel context.CancelFunc
	// clearGen detects results that raced a Clear.
	clearGen int

	// OnUpdate, when set, receives a read-only snapshot after every
	// state change. Called off the session lock.
	OnUpdate func(Snapshot)
}

// New creates a session around a recognizer and a fresh variable
// scope.
func New(cfg Config, recognizer recognize.Recognizer) *Session {
	s := &Session{
		cfg:        cfg,
		recognizer: recognizer,
		scope:      eval.NewScope(),
		glyphs:     make(map[string][]*ink.GlyphCluster),
		timers:     cluster.NewTimerTable(),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	if cfg.Mode == ModeCharacter {
		s.seg = s.newSegmenter()
	}
	return s
}

func (s *Session) newSegmenter() *cluster.Segmenter {
	return cluster.NewSegmenter(cluster.SegmenterConfig{
		Debounce:          s.cfg.CharDebounce,
		MaxStrokeDistance: s.cfg.MaxStrokeDistance,
		MaxAspectRatio:    s.cfg.MaxAspectRatio,
		MaxCharSize:       s.cfg.MaxCharSize,
	}, s.onGlyphComplete)
}

// Scope exposes the session's variable scope.
func (s *Session) Scope() *eval.Scope { return s.scope }

// AddStroke ingests one finalized stroke. Strokes are processed
// strictly in arrival order; the caller serializes calls.
func (s *Session) AddStroke(points []geom.Point) *ink.Stroke {
	stroke := ink.NewStroke(points)

	s.mu.Lock()
	s.strokes = append(s.strokes, stroke)

	if s.cfg.Mode == ModeCharacter {
		seg := s.seg
		s.mu.Unlock()
		seg.Add(stroke)
		s.notify()
		return stroke
	}

	var target *ink.GlyphCluster
	s.expressions, target = cluster.Assign(s.expressions, stroke, s.cfg.ClusterThreshold)
	// Membership changed: any glyphs recognized for the old membership
	// are stale views now.
	delete(s.glyphs, target.ID)
	s.rebuildLocked()

	id, rev := target.ID, target.Revision
	s.timers.Schedule(id, s.cfg.ExprDebounce, func() { s.settle(id, rev) })
	log.Printf("[SESSION] stroke %s -> expression %s (rev %d)", stroke.ID, id, rev)
	s.mu.Unlock()

	s.notify()
	return stroke
}

// settle fires when an expression cluster's debounce elapses. A stale
// revision means a newer stroke joined after this timer was scheduled;
// the newer timer owns the cluster now.
func (s *Session) settle(id string, rev int) {
	s.mu.Lock()
	target := s.expression(id)
	if target == nil || target.Revision != rev {
		s.mu.Unlock()
		log.Printf("[SESSION] dropping stale settle for %s (rev %d)", id, rev)
		return
	}
	groups := cluster.GroupStrokes(target.Strokes, s.cfg.PairRules)
	glyphs := make([]*ink.GlyphCluster, 0, len(groups))
	for _, g := range groups {
		gc := ink.NewGlyphCluster(g[0])
		for _, st := range g[1:] {
			gc.Add(st)
		}
		if s.isSpeck(gc) {
			continue
		}
		glyphs = append(glyphs, gc)
	}
	ctx, gen := s.ctx, s.clearGen
	s.mu.Unlock()

	go s.recognizeExpression(ctx, gen, id, rev, glyphs)
}

// isSpeck drops accidental taps: nearly no extent and nearly no ink.
func (s *Session) isSpeck(g *ink.GlyphCluster) bool {
	if g.Box.Width() >= s.cfg.MinCharSize || g.Box.Height() >= s.cfg.MinCharSize {
		return false
	}
	return len(g.Points()) < 3
}

func (s *Session) recognizeExpression(ctx context.Context, gen int, id string, rev int, glyphs []*ink.GlyphCluster) {
	for _, g := range glyphs {
		res, err := s.recognizer.Recognize(ctx, g)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			res = recognize.Result{Label: "?", Confidence: 0}
		}
		g.Label = res.Label
		g.Confidence = res.Confidence
	}

	s.mu.Lock()
	target := s.expression(id)
	if gen != s.clearGen || target == nil || target.Revision != rev {
		// The cluster grew, merged away, or the canvas was cleared
		// while recognition was in flight.
		s.mu.Unlock()
		log.Printf("[SESSION] dropping stale recognition for %s (rev %d)", id, rev)
		return
	}
	s.glyphs[id] = glyphs
	s.rebuildLocked()
	s.mu.Unlock()

	s.notify()
}

// onGlyphComplete receives finalized glyphs from the character
// segmenter.
func (s *Session) onGlyphComplete(g *ink.GlyphCluster) {
	s.mu.Lock()
	ctx, gen := s.ctx, s.clearGen
	s.mu.Unlock()

	go func() {
		res, err := s.recognizer.Recognize(ctx, g)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			res = recognize.Result{Label: "?", Confidence: 0}
		}

		s.mu.Lock()
		if gen != s.clearGen {
			s.mu.Unlock()
			return
		}
		g.Label = res.Label
		g.Confidence = res.Confidence
		s.solo = append(s.solo, g)
		s.rebuildLocked()
		s.mu.Unlock()

		s.notify()
	}()
}

// ForceComplete settles everything pending right now, without waiting
// for debounce timers: the character segmenter's active candidate and
// every expression cluster.
func (s *Session) ForceComplete() {
	s.mu.Lock()
	seg := s.seg
	type pending struct {
		id  string
		rev int
	}
	var todo []pending
	for _, e := range s.expressions {
		s.timers.Cancel(e.ID)
		todo = append(todo, pending{e.ID, e.Revision})
	}
	s.mu.Unlock()

	if seg != nil {
		seg.ForceComplete()
	}
	for _, p := range todo {
		s.settle(p.id, p.rev)
	}
}

// Clear wipes the canvas: all timers are cancelled before any state is
// discarded, in-flight recognition is invalidated, and the variable
// scope is reset.
func (s *Session) Clear() {
	// Discard outside the session lock: the segmenter may be emitting a
	// glyph right now, and emit takes the session lock.
	if s.seg != nil {
		s.seg.Discard()
	}

	s.mu.Lock()
	s.timers.CancelAll()
	s.cancel()
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.clearGen++
	s.strokes = nil
	s.expressions = nil
	s.glyphs = make(map[string][]*ink.GlyphCluster)
	s.solo = nil
	s.lines = nil
	s.scope.Reset()
	s.mu.Unlock()

	log.Printf("[SESSION] cleared")
	s.notify()
}

func (s *Session) expression(id string) *ink.GlyphCluster {
	for _, e := range s.expressions {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// rebuildLocked derives lines and results from the current glyph set.
// Lines are never patched in place; they are thrown away and rebuilt.
func (s *Session) rebuildLocked() {
	var all []*ink.GlyphCluster
	for _, e := range s.expressions {
		all = append(all, s.glyphs[e.ID]...)
	}
	all = append(all, s.solo...)

	s.lines = nil
	for _, group := range layout.GroupLines(all, s.cfg.LineOverlapThreshold) {
		line := expr.BuildLine(group)
		if line.HasEquals {
			out := eval.Evaluate(line.Text, s.scope)
			line.Result = out.Result
			if out.Err != nil {
				line.Err = out.Err.Error()
			} else {
				log.Printf("[SESSION] %s %q = %s", out.Kind, line.Text, line.Result)
			}
		}
		s.lines = append(s.lines, line)
	}
}

func (s *Session) notify() {
	cb := s.OnUpdate
	if cb == nil {
		return
	}
	cb(s.Snapshot())
}
