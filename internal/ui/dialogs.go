package ui

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	fynestorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/sudoku/internal/model"
	"github.com/ytget/sudoku/internal/storage"
)

// dialogFunc shows a dialog and calls done once it is answered
type dialogFunc func(done func())

// dialogQueue shows dialogs one at a time, in order. Game events often come
// in pairs (save the current game, then choose a level) and each answer
// has to be given before the next question is asked. Only used from the
// UI goroutine.
type dialogQueue struct {
	pending []dialogFunc
	active  bool
}

// push queues a dialog after the pending ones
func (q *dialogQueue) push(show dialogFunc) {
	q.pending = append(q.pending, show)
	if !q.active {
		q.next()
	}
}

// pushNext queues a dialog right after the one being shown
func (q *dialogQueue) pushNext(show dialogFunc) {
	q.pending = append([]dialogFunc{show}, q.pending...)
	if !q.active {
		q.next()
	}
}

func (q *dialogQueue) next() {
	if len(q.pending) == 0 {
		q.active = false
		return
	}
	q.active = true
	show := q.pending[0]
	q.pending = q.pending[1:]

	var once sync.Once
	show(func() { once.Do(q.next) })
}

// Len returns how many dialogs wait to be shown
func (q *dialogQueue) Len() int {
	return len(q.pending)
}

// difficultyDialog asks for the level of a new game, preselecting current
func (ui *RootUI) difficultyDialog(current model.Difficulty, chosen func(model.Difficulty)) dialogFunc {
	return func(done func()) {
		t := ui.localization.GetText
		levels := widget.NewSelect(model.DifficultyNames(), nil)
		if current.IsValid() {
			levels.SetSelected(current.String())
		}
		form := widget.NewForm(widget.NewFormItem(t(KeyChooseDifficulty), levels))

		d := dialog.NewCustomConfirm(t(KeyNewGameTitle), t(KeyOK), t(KeyCancel), form, func(ok bool) {
			defer done()
			if !ok {
				return
			}
			if level, err := model.ParseDifficulty(levels.Selected); err == nil {
				chosen(level)
			}
		}, ui.window)
		d.Resize(fyne.NewSize(DialogMinWidth, 0))
		d.Show()
	}
}

// resultDialog tells whether the board was solved
func (ui *RootUI) resultDialog(correct bool) dialogFunc {
	return func(done func()) {
		t := ui.localization.GetText
		message := t(KeyNotSolved)
		if correct {
			message = t(KeySolved)
		}
		d := dialog.NewInformation(t(KeyResultTitle), message, ui.window)
		d.SetOnClosed(done)
		d.Show()
	}
}

// errorDialog reports err
func (ui *RootUI) errorDialog(err error) dialogFunc {
	return func(done func()) {
		d := dialog.NewError(err, ui.window)
		d.SetOnClosed(done)
		d.Show()
	}
}

// wannaSaveDialog offers to save the current game. then runs once the game
// is saved or the player declined.
func (ui *RootUI) wannaSaveDialog(then func()) dialogFunc {
	return func(done func()) {
		t := ui.localization.GetText
		d := dialog.NewConfirm(t(KeySaveGameTitle), t(KeyWannaSave), func(save bool) {
			defer done()
			if !save {
				runIf(then)
				return
			}
			if ui.game.FileName() == "" {
				ui.dialogs.pushNext(ui.saveFileDialog(then))
				return
			}
			ui.saveGame("")
			runIf(then)
		}, ui.window)
		d.SetConfirmText(t(KeySave))
		d.SetDismissText(t(KeyNo))
		d.Show()
	}
}

// saveFileDialog asks where to save the game and saves it there
func (ui *RootUI) saveFileDialog(then func()) dialogFunc {
	return func(done func()) {
		d := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
			defer done()
			if err != nil {
				ui.dialogs.pushNext(ui.errorDialog(err))
			} else if w != nil {
				path := w.URI().Path()
				if cerr := w.Close(); cerr != nil {
					ui.logger.Debug().Err(cerr).Msg("close save target")
				}
				ui.saveGame(path)
			}
			runIf(then)
		}, ui.window)
		d.SetFilter(fynestorage.NewExtensionFileFilter([]string{storage.FileExtension}))
		d.SetFileName("sudoku" + storage.FileExtension)
		ui.setDialogLocation(d)
		d.Show()
	}
}

// openFileDialog asks for a saved game and opens it
func (ui *RootUI) openFileDialog() dialogFunc {
	return func(done func()) {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			defer done()
			if err != nil {
				ui.dialogs.pushNext(ui.errorDialog(err))
				return
			}
			if r == nil {
				return
			}
			path := r.URI().Path()
			if cerr := r.Close(); cerr != nil {
				ui.logger.Debug().Err(cerr).Msg("close opened file")
			}
			ui.openGame(path)
		}, ui.window)
		d.SetFilter(fynestorage.NewExtensionFileFilter([]string{storage.FileExtension}))
		ui.setDialogLocation(d)
		d.Show()
	}
}

// setDialogLocation starts a file dialog in the configured save directory
func (ui *RootUI) setDialogLocation(d *dialog.FileDialog) {
	dir := ui.settings.GetSaveDirectory()
	if dir == "" {
		return
	}
	lister, err := fynestorage.ListerForURI(fynestorage.NewFileURI(dir))
	if err != nil {
		ui.logger.Debug().Err(err).Str("dir", dir).Msg("save directory not listable")
		return
	}
	d.SetLocation(lister)
}

func runIf(f func()) {
	if f != nil {
		f()
	}
}
