package ui

import (
	"slices"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/sudoku/internal/config"
	"github.com/ytget/sudoku/internal/model"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	saveDirEntry      *widget.Entry
	maxParallelSelect *widget.Select
	difficultySelect  *widget.Select
	languageSelect    *widget.Select
	highlightCheck    *widget.Check

	languageCodes map[string]string // display name -> code
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// new values are stored.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	t := sd.localization.GetText

	sd.saveDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(t(KeyBrowse), sd.onBrowseDirectory)
	saveDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.saveDirEntry)

	parallelOptions := make([]string, 0, config.MaxParallelLimit)
	for n := 1; n <= config.MaxParallelLimit; n++ {
		parallelOptions = append(parallelOptions, strconv.Itoa(n))
	}
	sd.maxParallelSelect = widget.NewSelect(parallelOptions, nil)

	sd.difficultySelect = widget.NewSelect(model.DifficultyNames(), nil)

	sd.languageCodes = make(map[string]string)
	languageNames := make([]string, 0)
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageNames = append(languageNames, name)
	}
	slices.Sort(languageNames)
	sd.languageSelect = widget.NewSelect(languageNames, nil)

	sd.highlightCheck = widget.NewCheck(t(KeyHighlightConflicts), nil)

	form := widget.NewForm(
		widget.NewFormItem(t(KeyDifficulty), sd.difficultySelect),
		widget.NewFormItem(t(KeyMaxParallel), sd.maxParallelSelect),
		widget.NewFormItem(t(KeySaveDirectory), saveDirRow),
		widget.NewFormItem(t(KeyLanguage), sd.languageSelect),
		widget.NewFormItem("", sd.highlightCheck),
	)

	sd.dialog = dialog.NewCustomConfirm(
		t(KeySettings),
		t(KeySave),
		t(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(DialogMinWidth*1.5, 0))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.saveDirEntry.SetText(sd.settings.GetSaveDirectory())
	sd.maxParallelSelect.SetSelected(strconv.Itoa(sd.settings.GetMaxParallelGenerations()))
	sd.difficultySelect.SetSelected(sd.settings.GetDifficulty().String())
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
	sd.highlightCheck.SetChecked(sd.settings.GetHighlightConflicts())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.saveDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()
	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// apply stores the values shown in the dialog
func (sd *SettingsDialog) apply() {
	if dir := sd.saveDirEntry.Text; dir != "" {
		sd.settings.SetSaveDirectory(dir)
	}

	if n, err := strconv.Atoi(sd.maxParallelSelect.Selected); err == nil {
		sd.settings.SetMaxParallelGenerations(n)
	}

	if d, err := model.ParseDifficulty(sd.difficultySelect.Selected); err == nil {
		sd.settings.SetDifficulty(d)
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	sd.settings.SetHighlightConflicts(sd.highlightCheck.Checked)
}
