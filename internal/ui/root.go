package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/sudoku/internal/config"
	"github.com/ytget/sudoku/internal/game"
	xlog "github.com/ytget/sudoku/internal/log"
	"github.com/ytget/sudoku/internal/model"
	"github.com/ytget/sudoku/internal/platform"
)

// GenerationService is the part of the generation service the UI drives
type GenerationService interface {
	SetUpdateCallback(func(*model.GenerationTask))
	SetMaxParallel(n int)
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	game         *game.Game
	generator    GenerationService
	settings     *config.Settings
	localization *Localization
	dialogs      dialogQueue
	logger       zerolog.Logger

	board  *BoardView
	keypad *Keypad

	// Commands
	newBtn   *widget.Button
	saveBtn  *widget.Button
	openBtn  *widget.Button
	hintBtn  *widget.Button
	solveBtn *widget.Button
	checkBtn *widget.Button

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite
	stopBtn               *widget.Button
	notificationTimer     *time.Timer
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, g *game.Game, generator GenerationService) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	logger := xlog.WithComponent("ui")
	if err := platform.CreateDirectoryIfNotExists(settings.GetSaveDirectory()); err != nil {
		logger.Warn().Err(err).Msg("create save directory")
	}

	ui := &RootUI{
		window:       window,
		game:         g,
		generator:    generator,
		settings:     settings,
		localization: localization,
		logger:       logger,
	}

	if err := g.SetDifficulty(settings.GetDifficulty()); err != nil {
		ui.logger.Warn().Err(err).Msg("default difficulty")
	}
	g.SetEventHandler(ui.onGameEvent)
	generator.SetMaxParallel(settings.GetMaxParallelGenerations())
	generator.SetUpdateCallback(ui.onTaskUpdate)

	ui.setupUI()
	ui.updateTitle()
	ui.updateCommands()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	t := ui.localization.GetText

	ui.createMenu()

	ui.board = NewBoardView()
	ui.board.SetOnSelect(func(int, int) { ui.updateKeypad() })

	ui.newBtn = widget.NewButton(t(KeyNewGame), ui.onNewGame)
	ui.newBtn.Importance = widget.HighImportance
	ui.saveBtn = widget.NewButton(t(KeySave), ui.onSave)
	ui.openBtn = widget.NewButton(t(KeyOpen), ui.onOpen)
	ui.hintBtn = widget.NewButton(t(KeyHint), ui.onHint)
	ui.solveBtn = widget.NewButton(t(KeyAutoSolve), ui.onAutoSolve)
	ui.checkBtn = widget.NewButton(t(KeyCheck), ui.onCheck)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	commands := container.NewVBox(
		ui.newBtn,
		widget.NewSeparator(),
		ui.saveBtn,
		ui.openBtn,
		widget.NewSeparator(),
		ui.hintBtn,
		ui.solveBtn,
		ui.checkBtn,
	)
	side := container.NewBorder(nil, container.NewHBox(settingsBtn), nil, nil,
		container.NewGridWrap(fyne.NewSize(CommandsWidth, commands.MinSize().Height), commands))

	// Notification strip above the board (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.stopBtn = widget.NewButton(IconStop, ui.onStopGeneration)
	ui.stopBtn.Importance = widget.LowImportance
	ui.stopBtn.Hide()
	ui.notificationContainer = container.NewBorder(nil, nil, nil, ui.stopBtn,
		container.NewVBox(ui.notificationLabel, ui.notificationSpinner))
	ui.notificationContainer.Hide()

	ui.keypad = NewKeypad(ui.onDigit)

	content := container.NewBorder(
		ui.notificationContainer,
		ui.keypad.Container(),
		nil,
		side,
		container.NewCenter(ui.board.Object()),
	)
	ui.window.SetContent(content)

	canvas := ui.window.Canvas()
	canvas.SetOnTypedRune(ui.onTypedRune)
	canvas.SetOnTypedKey(ui.onTypedKey)
	for _, s := range ui.shortcuts() {
		shortcut := s
		canvas.AddShortcut(shortcut.shortcut, func(fyne.Shortcut) { shortcut.action() })
	}

	ui.window.SetCloseIntercept(ui.onClose)
	ui.logger.Debug().Msg("UI setup completed")
}

type shortcutAction struct {
	shortcut *desktop.CustomShortcut
	action   func()
}

func (ui *RootUI) shortcuts() []shortcutAction {
	mod := fyne.KeyModifierShortcutDefault
	return []shortcutAction{
		{&desktop.CustomShortcut{KeyName: fyne.KeyN, Modifier: mod}, ui.onNewGame},
		{&desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: mod}, ui.onSave},
		{&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: mod}, ui.onOpen},
		{&desktop.CustomShortcut{KeyName: fyne.KeyH, Modifier: mod}, ui.onHint},
	}
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	t := ui.localization.GetText
	hasBoard := ui.game.HasBoard()

	shortcuts := ui.shortcuts()
	newItem := fyne.NewMenuItem(t(KeyNewGame), ui.onNewGame)
	newItem.Shortcut = shortcuts[0].shortcut
	saveItem := fyne.NewMenuItem(t(KeySave), ui.onSave)
	saveItem.Shortcut = shortcuts[1].shortcut
	saveItem.Disabled = !hasBoard
	saveAsItem := fyne.NewMenuItem(t(KeySaveAs), ui.onSaveAs)
	saveAsItem.Disabled = !hasBoard
	openItem := fyne.NewMenuItem(t(KeyOpen), ui.onOpen)
	openItem.Shortcut = shortcuts[2].shortcut
	settingsItem := fyne.NewMenuItem(t(KeySettings), ui.onShowSettings)

	hintItem := fyne.NewMenuItem(t(KeyHint), ui.onHint)
	hintItem.Shortcut = shortcuts[3].shortcut
	hintItem.Disabled = !hasBoard
	solveItem := fyne.NewMenuItem(t(KeyAutoSolve), ui.onAutoSolve)
	solveItem.Disabled = !hasBoard
	checkItem := fyne.NewMenuItem(t(KeyCheck), ui.onCheck)
	checkItem.Disabled = !hasBoard

	languageMenu := fyne.NewMenu(t(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(t(KeyFile), newItem, openItem, saveItem, saveAsItem, fyne.NewMenuItemSeparator(), settingsItem),
		fyne.NewMenu(t(KeyPlay), hintItem, solveItem, checkItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	t := ui.localization.GetText
	ui.newBtn.SetText(t(KeyNewGame))
	ui.saveBtn.SetText(t(KeySave))
	ui.openBtn.SetText(t(KeyOpen))
	ui.hintBtn.SetText(t(KeyHint))
	ui.solveBtn.SetText(t(KeyAutoSolve))
	ui.checkBtn.SetText(t(KeyCheck))
	ui.updateTitle()
	ui.createMenu()
}

// updateTitle shows the level, the file name and an unsaved marker
func (ui *RootUI) updateTitle() {
	title := ui.localization.GetText(KeyAppTitle)
	if ui.game.HasBoard() {
		title += " - " + ui.game.Difficulty().String()
		if name := ui.game.FileName(); name != "" {
			title += " - " + filepath.Base(name)
		}
		if !ui.game.IsSaved() {
			title += " *"
		}
	}
	ui.window.SetTitle(title)
}

// updateCommands enables the commands that need a game in progress
func (ui *RootUI) updateCommands() {
	hasBoard := ui.game.HasBoard()
	for _, b := range []*widget.Button{ui.saveBtn, ui.hintBtn, ui.solveBtn, ui.checkBtn} {
		if hasBoard {
			b.Enable()
		} else {
			b.Disable()
		}
	}
	ui.updateKeypad()
	ui.createMenu()
}

// updateKeypad enables the keypad while an editable cell is selected
func (ui *RootUI) updateKeypad() {
	square, cell, ok := ui.board.Selected()
	ui.keypad.SetEnabled(ok && ui.game.IsEditable(square, cell))
}

// refreshBoard redraws every cell from the game
func (ui *RootUI) refreshBoard() {
	for s := 0; s < model.Squares; s++ {
		for c := 0; c < cellsPerSquare; c++ {
			ui.board.SetCell(s, c, ui.game.Value(s, c), !ui.game.IsEditable(s, c))
		}
	}
	ui.refreshConflicts()
}

// refreshConflicts highlights conflicting cells when enabled
func (ui *RootUI) refreshConflicts() {
	if !ui.settings.GetHighlightConflicts() {
		ui.board.SetConflicts(nil)
		return
	}
	ui.board.SetConflicts(ui.game.Conflicts())
}

// onGameEvent applies a state change of the game to the view. Game calls
// are made from the UI goroutine, so this one is too.
func (ui *RootUI) onGameEvent(e game.Event) {
	ui.logger.Debug().Str("event", e.Kind.String()).Msg("game event")

	switch e.Kind {
	case game.EventNewBoard:
		ui.hideNotification()
		ui.board.Reset()
		ui.refreshBoard()
		ui.updateCommands()
		ui.updateTitle()
	case game.EventCellChanged:
		ui.board.SetCell(e.Square, e.Cell, ui.game.Value(e.Square, e.Cell), false)
		ui.refreshConflicts()
		ui.updateTitle()
	case game.EventCheckResult:
		ui.dialogs.push(ui.resultDialog(e.Correct))
	case game.EventNotSaved:
		if e.Ask {
			ui.dialogs.push(ui.wannaSaveDialog(nil))
		} else {
			ui.dialogs.pushNext(ui.saveFileDialog(nil))
		}
	case game.EventChooseDifficulty:
		ui.dialogs.push(ui.difficultyDialog(ui.game.Difficulty(), ui.onDifficultyChosen))
	case game.EventChooseFile:
		ui.dialogs.push(ui.openFileDialog())
	case game.EventGenerating:
		text := fmt.Sprintf(ui.localization.GetText(KeyGenerating), e.Difficulty)
		ui.showNotification(text, true)
	case game.EventError:
		if !ui.game.IsGenerating() {
			ui.hideNotification()
		}
		ui.dialogs.push(ui.errorDialog(e.Err))
	}
}

// onTaskUpdate handles task updates from the generation service
func (ui *RootUI) onTaskUpdate(task *model.GenerationTask) {
	ui.logger.Debug().Str("task", task.ID).Str("status", task.Status.String()).Msg("task update")
	if !task.Status.IsFinished() {
		return
	}
	fyne.Do(func() {
		ui.applyTaskUpdate(task)
	})
}

func (ui *RootUI) applyTaskUpdate(task *model.GenerationTask) {
	ui.game.HandleTaskUpdate(task)
	if ui.game.IsGenerating() {
		return
	}
	if task.Status == model.TaskStatusStopped {
		ui.flashNotification(ui.localization.GetText(KeyGenerationStopped))
	}
}

func (ui *RootUI) onDifficultyChosen(d model.Difficulty) {
	if err := ui.game.SetDifficulty(d); err != nil {
		ui.dialogs.push(ui.errorDialog(err))
		return
	}
	ui.startNewGame(true)
}

func (ui *RootUI) startNewGame(chosen bool) {
	if err := ui.game.StartNewGame(chosen); err != nil {
		ui.logger.Error().Err(err).Msg("start new game")
	}
}

// onNewGame asks for a level and starts generating
func (ui *RootUI) onNewGame() {
	ui.startNewGame(false)
}

func (ui *RootUI) onStopGeneration() {
	if err := ui.game.CancelGeneration(); err != nil {
		ui.logger.Warn().Err(err).Msg("stop generation")
	}
}

// onSave saves to the current file, asking for one the first time
func (ui *RootUI) onSave() {
	ui.saveGame("")
}

// onSaveAs always asks for a file
func (ui *RootUI) onSaveAs() {
	if !ui.game.HasBoard() {
		return
	}
	ui.dialogs.push(ui.saveFileDialog(nil))
}

func (ui *RootUI) saveGame(path string) {
	if err := ui.game.Save(path); err != nil {
		ui.logger.Error().Err(err).Msg("save game")
		return
	}
	if ui.game.IsSaved() {
		ui.settings.SetSaveDirectory(filepath.Dir(ui.game.FileName()))
		ui.flashNotification(ui.localization.GetText(KeyGameSaved))
	}
	ui.updateTitle()
}

// onOpen asks for a saved game
func (ui *RootUI) onOpen() {
	if err := ui.game.Open(""); err != nil {
		ui.logger.Error().Err(err).Msg("open game")
	}
}

func (ui *RootUI) openGame(path string) {
	if err := ui.game.Open(path); err != nil {
		ui.logger.Error().Err(err).Str("file", path).Msg("open game")
		return
	}
	ui.settings.SetSaveDirectory(filepath.Dir(path))
}

func (ui *RootUI) solveContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), SolveTimeout)
}

// onHint fills or corrects one cell and selects it
func (ui *RootUI) onHint() {
	if !ui.game.HasBoard() {
		return
	}
	ctx, cancel := ui.solveContext()
	defer cancel()

	cell, ok, err := ui.game.Hint(ctx)
	if err != nil {
		ui.logger.Error().Err(err).Msg("hint")
		return
	}
	if !ok {
		ui.flashNotification(ui.localization.GetText(KeyNoHint))
		return
	}
	ui.board.Select(model.CoordToSquare(cell.Row, cell.Col))
}

func (ui *RootUI) onAutoSolve() {
	if !ui.game.HasBoard() {
		return
	}
	ctx, cancel := ui.solveContext()
	defer cancel()
	if err := ui.game.AutoSolve(ctx); err != nil {
		ui.logger.Error().Err(err).Msg("auto-solve")
	}
}

func (ui *RootUI) onCheck() {
	if !ui.game.HasBoard() {
		return
	}
	ctx, cancel := ui.solveContext()
	defer cancel()
	if _, err := ui.game.Check(ctx); err != nil {
		ui.logger.Error().Err(err).Msg("check")
	}
}

// onDigit writes value into the selected cell
func (ui *RootUI) onDigit(value int) {
	square, cell, ok := ui.board.Selected()
	if !ok || !ui.game.HasBoard() {
		return
	}
	if err := ui.game.SetCell(square, cell, value); err != nil {
		ui.logger.Warn().Err(err).Int("value", value).Msg("set cell")
	}
}

func (ui *RootUI) onTypedRune(r rune) {
	switch {
	case r >= '1' && r <= '9':
		ui.onDigit(int(r - '0'))
	case r == '0' || r == ' ':
		ui.onDigit(0)
	}
}

func (ui *RootUI) onTypedKey(e *fyne.KeyEvent) {
	switch e.Name {
	case fyne.KeyBackspace, fyne.KeyDelete:
		ui.onDigit(0)
	case fyne.KeyUp:
		ui.board.Move(-1, 0)
	case fyne.KeyDown:
		ui.board.Move(1, 0)
	case fyne.KeyLeft:
		ui.board.Move(0, -1)
	case fyne.KeyRight:
		ui.board.Move(0, 1)
	}
}

// onClose offers to save an unsaved game before quitting
func (ui *RootUI) onClose() {
	if !ui.game.HasBoard() || ui.game.IsSaved() {
		ui.window.Close()
		return
	}
	ui.dialogs.push(ui.wannaSaveDialog(ui.window.Close))
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.onSettingsSaved).Show()
}

func (ui *RootUI) onSettingsSaved() {
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.generator.SetMaxParallel(ui.settings.GetMaxParallelGenerations())
	if !ui.game.IsGenerating() {
		if err := ui.game.SetDifficulty(ui.settings.GetDifficulty()); err != nil {
			ui.logger.Warn().Err(err).Msg("default difficulty")
		}
	}
	ui.refreshConflicts()
	ui.flashNotification(ui.localization.GetText(KeySettingsSaved))
}

// showNotification displays a message in the notification panel above the
// board. When spinning is true a progress bar and a stop button are shown.
func (ui *RootUI) showNotification(message string, spinning bool) {
	ui.stopNotificationTimer()
	ui.notificationLabel.SetText(message)
	if spinning {
		ui.notificationSpinner.Show()
		ui.stopBtn.Show()
	} else {
		ui.notificationSpinner.Hide()
		ui.stopBtn.Hide()
	}
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}

// flashNotification shows message for a few seconds, unless a generation
// is in progress.
func (ui *RootUI) flashNotification(message string) {
	if ui.game.IsGenerating() {
		return
	}
	ui.showNotification(message, false)
	ui.notificationTimer = time.AfterFunc(NotificationAutoHide, func() {
		fyne.Do(func() {
			if !ui.game.IsGenerating() {
				ui.hideNotification()
			}
		})
	})
}

// hideNotification hides the notification panel
func (ui *RootUI) hideNotification() {
	ui.stopNotificationTimer()
	ui.notificationSpinner.Hide()
	ui.stopBtn.Hide()
	ui.notificationContainer.Hide()
}

func (ui *RootUI) stopNotificationTimer() {
	if ui.notificationTimer != nil {
		ui.notificationTimer.Stop()
		ui.notificationTimer = nil
	}
}
