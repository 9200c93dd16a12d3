package session

import (
	"github.com/jhaanurag/AI-Math-Notes/internal/geom"
	"github.com/jhaanurag/AI-Math-Notes/internal/ink"
)

// Snapshot is an immutable view of the session for renderers. Every
// slice and point is copied; holding a snapshot never blocks or
// observes later mutation.
type Snapshot struct {
	Strokes []StrokeView `json:"strokes"`
	Glyphs  []GlyphView  `json:"glyphs"`
	Lines   []LineView   `json:"lines"`
}

type StrokeView struct {
	ID     string       `json:"id"`
	Points []geom.Point `json:"points"`
}

type GlyphView struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Confidence float64  `json:"confidence"`
	Box        geom.Box `json:"box"`
	StrokeIDs  []string `json:"stroke_ids"`
}

type LineView struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	HasEquals bool     `json:"has_equals"`
	Result    string   `json:"result"`
	Error     string   `json:"error,omitempty"`
	Box       geom.Box `json:"box"`
	AnchorX   float64  `json:"anchor_x"`
	AnchorY   float64  `json:"anchor_y"`
}

// Snapshot copies the current state out from under the lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{}
	for _, st := range s.strokes {
		pts := make([]geom.Point, len(st.Points))
		copy(pts, st.Points)
		snap.Strokes = append(snap.Strokes, StrokeView{ID: st.ID, Points: pts})
	}
	appendGlyph := func(g *ink.GlyphCluster) {
		ids := make([]string, 0, len(g.Strokes))
		for _, st := range g.Strokes {
			ids = append(ids, st.ID)
		}
		snap.Glyphs = append(snap.Glyphs, GlyphView{
			ID:         g.ID,
			Label:      g.Label,
			Confidence: g.Confidence,
			Box:        g.Box,
			StrokeIDs:  ids,
		})
	}
	for _, e := range s.expressions {
		for _, g := range s.glyphs[e.ID] {
			appendGlyph(g)
		}
	}
	for _, g := range s.solo {
		appendGlyph(g)
	}
	for _, ln := range s.lines {
		snap.Lines = append(snap.Lines, LineView{
			ID:        ln.ID,
			Text:      ln.Text,
			HasEquals: ln.HasEquals,
			Result:    ln.Result,
			Error:     ln.Err,
			Box:       ln.Box,
			AnchorX:   ln.AnchorX,
			AnchorY:   ln.AnchorY,
		})
	}
	return snap
}
