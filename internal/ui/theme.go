package ui

import "image/color"

// Theme colors - variables so dark mode can swap them
var (
	colWhite       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colText        = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	colGray        = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	colLightGray   = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	colSidebar     = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colSelected    = color.NRGBA{R: 200, G: 220, B: 255, A: 255}
	colAccent      = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
	colDanger      = color.NRGBA{R: 220, G: 53, B: 69, A: 255}
	colDropTarget  = color.NRGBA{R: 66, G: 133, B: 244, A: 60}
	colDropEdge    = color.NRGBA{R: 66, G: 133, B: 244, A: 255}
	colPinned      = color.NRGBA{R: 220, G: 160, B: 40, A: 255}
	colCodeBlockBg = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colQuoteBg     = color.NRGBA{R: 248, G: 248, B: 248, A: 255}
	colQuoteLine   = color.NRGBA{R: 180, G: 180, B: 180, A: 255}
)

// ApplyDarkMode swaps the palette in place.
func ApplyDarkMode(dark bool) {
	if dark {
		colWhite = color.NRGBA{R: 30, G: 30, B: 32, A: 255}
		colText = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
		colSidebar = color.NRGBA{R: 42, G: 42, B: 46, A: 255}
		colSelected = color.NRGBA{R: 50, G: 70, B: 110, A: 255}
		colCodeBlockBg = color.NRGBA{R: 48, G: 48, B: 52, A: 255}
		colQuoteBg = color.NRGBA{R: 44, G: 44, B: 48, A: 255}
		return
	}
	colWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colText = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	colSidebar = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colSelected = color.NRGBA{R: 200, G: 220, B: 255, A: 255}
	colCodeBlockBg = color.NRGBA{R: 245, G: 245, B: 245, A: 255}
	colQuoteBg = color.NRGBA{R: 248, G: 248, B: 248, A: 255}
}
