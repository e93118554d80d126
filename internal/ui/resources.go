package ui

import (
	"fyne.io/fyne/v2"
)

// LoadAppIcon loads the window icon from path. Packaged builds carry the
// icon in the bundle, so a missing file only matters when running from
// source.
func LoadAppIcon(path string) (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(path)
}
