// Package export renders a session snapshot to PDF: the raw ink plus
// the computed results, at the positions they hold on screen.
package export

import (
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/jhaanurag/AI-Math-Notes/internal/session"
)

// pxToMM maps canvas pixels onto an A4 landscape page.
const pxToMM = 0.22

// WritePDF renders the snapshot to w as a single-page PDF.
func WritePDF(w io.Writer, snap session.Snapshot) error {
	p := gofpdf.New("L", "mm", "A4", "")
	p.AddPage()
	p.SetDrawColor(20, 20, 20)
	p.SetLineWidth(0.5)

	for _, st := range snap.Strokes {
		for i := 1; i < len(st.Points); i++ {
			p.Line(
				st.Points[i-1].X*pxToMM, st.Points[i-1].Y*pxToMM,
				st.Points[i].X*pxToMM, st.Points[i].Y*pxToMM,
			)
		}
	}

	p.SetTextColor(235, 130, 20)
	for _, line := range snap.Lines {
		if !line.HasEquals || line.Result == "" {
			continue
		}
		size := line.Box.Height() * pxToMM * 2.2
		if size < 8 {
			size = 8
		}
		if size > 28 {
			size = 28
		}
		p.SetFont("Helvetica", "B", size)
		// Text is positioned by baseline; sit it on the anchor with a
		// slight drop so it lines up with the handwriting.
		p.Text(line.AnchorX*pxToMM, line.AnchorY*pxToMM+size*0.12, line.Result)
	}

	return p.Output(w)
}
