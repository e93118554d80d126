package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Board colour names served by CompactTheme in addition to the stock ones
const (
	ColorNameGivenCell    fyne.ThemeColorName = "sudokuGivenCell"
	ColorNameSelectedCell fyne.ThemeColorName = "sudokuSelectedCell"
	ColorNameConflictCell fyne.ThemeColorName = "sudokuConflictCell"
	ColorNameBoardLine    fyne.ThemeColorName = "sudokuBoardLine"
)

// CompactTheme defines a compact theme for the UI with reduced padding and font sizes
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	dark := variant == theme.VariantDark
	switch name {
	case ColorNameGivenCell:
		if dark {
			return color.RGBA{R: 48, G: 48, B: 52, A: 255}
		}
		return color.RGBA{R: 228, G: 228, B: 232, A: 255}
	case ColorNameSelectedCell:
		if dark {
			return color.RGBA{R: 21, G: 67, B: 120, A: 255}
		}
		return color.RGBA{R: 187, G: 222, B: 251, A: 255}
	case ColorNameConflictCell:
		if dark {
			return color.RGBA{R: 110, G: 30, B: 30, A: 255}
		}
		return color.RGBA{R: 255, G: 205, B: 210, A: 255}
	case ColorNameBoardLine:
		if dark {
			return color.RGBA{R: 200, G: 200, B: 200, A: 255}
		}
		return color.RGBA{R: 33, G: 33, B: 33, A: 255}
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNamePrimary:
		return color.RGBA{R: 25, G: 118, B: 210, A: 255}
	case theme.ColorNameBackground:
		if dark {
			return color.RGBA{R: 18, G: 18, B: 18, A: 255}
		}
		return color.RGBA{R: 250, G: 250, B: 250, A: 255}
	case theme.ColorNameForeground:
		if dark {
			return color.RGBA{R: 255, G: 255, B: 255, A: 255}
		}
		return color.RGBA{R: 33, G: 33, B: 33, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameSubHeadingText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 3
	case theme.SizeNameSelectionRadius:
		return 2
	}

	return theme.DefaultTheme().Size(name)
}

// themeColor looks a colour up in the running app theme
func themeColor(name fyne.ThemeColorName) color.Color {
	app := fyne.CurrentApp()
	if app == nil {
		return NewCompactTheme().Color(name, theme.VariantLight)
	}
	return app.Settings().Theme().Color(name, app.Settings().ThemeVariant())
}
