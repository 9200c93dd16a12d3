package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"

	"github.com/jhaanurag/AI-Math-Notes/internal/export"
	"github.com/jhaanurag/AI-Math-Notes/internal/geom"
	"github.com/jhaanurag/AI-Math-Notes/internal/session"
)

// RunApp wires the session to a window and blocks until the window
// closes. onUpdate, when non-nil, additionally receives every snapshot
// (used for the websocket stream).
func RunApp(sess *session.Session, status string, onUpdate func(session.Snapshot)) {
	a := app.New()
	w := a.NewWindow("Math Notes")
	w.Resize(fyne.NewSize(1024, 768))

	board := NewBoard()
	board.OnStroke = func(pts []geom.Point) { sess.AddStroke(pts) }

	sess.OnUpdate = func(snap session.Snapshot) {
		board.SetSnapshot(snap)
		if onUpdate != nil {
			onUpdate(snap)
		}
	}

	toolbar := NewToolbar(ToolbarActions{
		Compute: sess.ForceComplete,
		Clear:   sess.Clear,
		Export: func() {
			dialog.ShowFileSave(func(wr fyne.URIWriteCloser, err error) {
				if err != nil || wr == nil {
					return
				}
				defer wr.Close()
				if err := export.WritePDF(wr, sess.Snapshot()); err != nil {
					log.Printf("[UI] pdf export failed: %v", err)
					dialog.ShowError(err, w)
				}
			}, w)
		},
	}, status)

	w.SetContent(container.NewBorder(toolbar, nil, nil, nil, board))
	w.ShowAndRun()
}
