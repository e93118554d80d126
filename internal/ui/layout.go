package ui

import "fyne.io/fyne/v2"

// tightGrid lays objects out in equal cells with no padding, so that cell
// borders touch.
type tightGrid struct {
	cols int
}

func newTightGrid(cols int) fyne.Layout {
	return &tightGrid{cols: cols}
}

func (g *tightGrid) rows(count int) int {
	return (count + g.cols - 1) / g.cols
}

// MinSize is the largest child minimum times the grid dimensions
func (g *tightGrid) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var cell fyne.Size
	for _, o := range objects {
		cell = cell.Max(o.MinSize())
	}
	return fyne.NewSize(cell.Width*float32(g.cols), cell.Height*float32(g.rows(len(objects))))
}

// Layout gives every object the same share of size
func (g *tightGrid) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) == 0 {
		return
	}
	rows := g.rows(len(objects))
	w := size.Width / float32(g.cols)
	h := size.Height / float32(rows)
	for i, o := range objects {
		o.Move(fyne.NewPos(float32(i%g.cols)*w, float32(i/g.cols)*h))
		o.Resize(fyne.NewSize(w, h))
	}
}
