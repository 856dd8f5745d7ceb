package app

import (
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/text"
	"gioui.org/widget/material"
)

func newTheme(dark bool) *material.Theme {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.NoSystemFonts(), text.WithCollection(gofont.Collection()))
	applyThemePalette(th, dark)
	return th
}

// applyThemePalette adjusts the material palette; the flat window colors
// live in the ui package and switch through ui.ApplyDarkMode.
func applyThemePalette(th *material.Theme, dark bool) {
	if dark {
		th.Palette.Bg = color.NRGBA{R: 30, G: 30, B: 34, A: 255}
		th.Palette.Fg = color.NRGBA{R: 225, G: 225, B: 228, A: 255}
		th.Palette.ContrastBg = color.NRGBA{R: 64, G: 106, B: 168, A: 255}
		th.Palette.ContrastFg = color.NRGBA{R: 240, G: 240, B: 245, A: 255}
	} else {
		th.Palette.Bg = color.NRGBA{R: 250, G: 250, B: 250, A: 255}
		th.Palette.Fg = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		th.Palette.ContrastBg = color.NRGBA{R: 63, G: 81, B: 181, A: 255}
		th.Palette.ContrastFg = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
}
