package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ToolbarActions are the board-level commands the toolbar exposes.
type ToolbarActions struct {
	// Compute finalizes all pending ink immediately instead of waiting
	// for the debounce timers.
	Compute func()
	Clear   func()
	Export  func()
}

func NewToolbar(actions ToolbarActions, status string) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ConfirmIcon(), actions.Compute),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), actions.Export),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DeleteIcon(), actions.Clear),
	)

	return container.NewHBox(
		tb,
		layout.NewSpacer(),
		widget.NewLabel(status),
	)
}
