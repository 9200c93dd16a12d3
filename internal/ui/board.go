package ui

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/jhaanurag/AI-Math-Notes/internal/geom"
	"github.com/jhaanurag/AI-Math-Notes/internal/session"
)

var (
	inkColor    = color.NRGBA{R: 20, G: 20, B: 20, A: 255}
	wetInkColor = color.NRGBA{R: 20, G: 20, B: 20, A: 140}
	resultColor = color.NRGBA{R: 235, G: 130, B: 20, A: 255}
	errColor    = color.NRGBA{R: 200, G: 40, B: 40, A: 255}
)

// Board is the drawing surface. It captures pen strokes with
// millisecond timestamps and renders the latest session snapshot:
// committed ink plus computed results at their anchors.
type Board struct {
	widget.BaseWidget
	mu      sync.RWMutex
	snap    session.Snapshot
	drawing bool
	current []geom.Point

	// OnStroke receives each finished stroke's timestamped points.
	OnStroke func([]geom.Point)
}

var _ fyne.Widget = (*Board)(nil)
var _ fyne.Draggable = (*Board)(nil)
var _ desktop.Mouseable = (*Board)(nil)

func NewBoard() *Board {
	b := &Board{}
	b.ExtendBaseWidget(b)
	return b
}

// SetSnapshot swaps in a new session view. Safe to call from any
// goroutine.
func (b *Board) SetSnapshot(snap session.Snapshot) {
	b.mu.Lock()
	b.snap = snap
	b.mu.Unlock()
	fyne.Do(b.Refresh)
}

func (b *Board) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.mu.Lock()
	b.drawing = true
	b.current = []geom.Point{penPoint(e.Position)}
	b.mu.Unlock()
	b.Refresh()
}

func (b *Board) Dragged(e *fyne.DragEvent) {
	b.mu.Lock()
	if !b.drawing {
		b.mu.Unlock()
		return
	}
	b.current = append(b.current, penPoint(e.Position))
	b.mu.Unlock()
	b.Refresh()
}

func (b *Board) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.mu.Lock()
	if !b.drawing {
		b.mu.Unlock()
		return
	}
	b.drawing = false
	done := b.current
	b.current = nil
	b.mu.Unlock()

	// A press with no drag is still a stroke: dots are how decimal
	// points get drawn.
	if len(done) > 0 && b.OnStroke != nil {
		b.OnStroke(done)
	}
	b.Refresh()
}

func penPoint(pos fyne.Position) geom.Point {
	return geom.Point{
		X: float64(pos.X),
		Y: float64(pos.Y),
		T: time.Now().UnixMilli(),
	}
}

func (b *Board) MouseIn(*desktop.MouseEvent)    {}
func (b *Board) MouseOut()                      {}
func (b *Board) MouseMoved(*desktop.MouseEvent) {}
func (b *Board) DragEnd()                       {}

func (b *Board) CreateRenderer() fyne.WidgetRenderer {
	r := &boardRenderer{board: b}
	r.background = canvas.NewRectangle(color.White)
	return r
}

type boardRenderer struct {
	board      *Board
	background *canvas.Rectangle
}

func (r *boardRenderer) Objects() []fyne.CanvasObject {
	r.board.mu.RLock()
	defer r.board.mu.RUnlock()

	objects := []fyne.CanvasObject{r.background}
	for _, st := range r.board.snap.Strokes {
		objects = appendPolyline(objects, st.Points, inkColor)
	}
	if r.board.drawing {
		objects = appendPolyline(objects, r.board.current, wetInkColor)
	}
	for _, line := range r.board.snap.Lines {
		if !line.HasEquals || line.Result == "" {
			continue
		}
		c := resultColor
		if line.Error != "" && line.Result == "?" {
			c = errColor
		}
		objects = append(objects, resultText(line, c))
	}
	return objects
}

func appendPolyline(objects []fyne.CanvasObject, pts []geom.Point, c color.Color) []fyne.CanvasObject {
	if len(pts) == 1 {
		dot := canvas.NewCircle(c)
		dot.Resize(fyne.NewSize(4, 4))
		dot.Move(fyne.NewPos(float32(pts[0].X)-2, float32(pts[0].Y)-2))
		return append(objects, dot)
	}
	for i := 1; i < len(pts); i++ {
		seg := canvas.NewLine(c)
		seg.StrokeWidth = 3
		seg.Position1 = fyne.NewPos(float32(pts[i-1].X), float32(pts[i-1].Y))
		seg.Position2 = fyne.NewPos(float32(pts[i].X), float32(pts[i].Y))
		objects = append(objects, seg)
	}
	return objects
}

// resultText places the computed value just right of the equals sign,
// scaled to the handwriting height.
func resultText(line session.LineView, c color.Color) *canvas.Text {
	t := canvas.NewText(line.Result, c)
	size := float32(line.Box.Height())
	if size < 24 {
		size = 24
	}
	if size > 72 {
		size = 72
	}
	t.TextSize = size
	t.TextStyle = fyne.TextStyle{Bold: true}
	t.Move(fyne.NewPos(float32(line.AnchorX), float32(line.AnchorY)-size/2))
	return t
}

func (r *boardRenderer) Refresh()              { canvas.Refresh(r.board) }
func (r *boardRenderer) Destroy()              {}
func (r *boardRenderer) Layout(size fyne.Size) { r.background.Resize(size) }
func (r *boardRenderer) MinSize() fyne.Size    { return fyne.NewSize(400, 300) }
