package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/sudoku/internal/model"
	"github.com/ytget/sudoku/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDifficulty         = "default_difficulty"
	KeySaveDir            = "save_directory"
	KeyMaxParallel        = "max_parallel_generations"
	KeyLanguage           = "app_language"
	KeyHighlightConflicts = "highlight_conflicts"
)

// Default values
const (
	DefaultDifficulty         = model.DifficultyMedium
	DefaultMaxParallel        = 1
	MaxParallelLimit          = 4
	DefaultLanguage           = "system"
	DefaultHighlightConflicts = true
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDifficulty returns the difficulty preselected for new games
func (s *Settings) GetDifficulty() model.Difficulty {
	d := model.Difficulty(s.app.Preferences().Int(KeyDifficulty))
	if !d.IsValid() {
		s.SetDifficulty(DefaultDifficulty)
		return DefaultDifficulty
	}
	return d
}

// SetDifficulty sets the default difficulty. Unknown levels reset it.
func (s *Settings) SetDifficulty(d model.Difficulty) {
	if !d.IsValid() {
		d = DefaultDifficulty
	}
	s.app.Preferences().SetInt(KeyDifficulty, int(d))
}

// GetSaveDirectory returns the directory save and open dialogs start in
func (s *Settings) GetSaveDirectory() string {
	dir := s.app.Preferences().String(KeySaveDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDocumentsDir()
		if err != nil {
			return ""
		}
		return defaultDir
	}
	return dir
}

// SetSaveDirectory remembers the directory of the last saved or opened game
func (s *Settings) SetSaveDirectory(dir string) {
	s.app.Preferences().SetString(KeySaveDir, dir)
}

// GetMaxParallelGenerations returns how many puzzles may be generated at once
func (s *Settings) GetMaxParallelGenerations() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelGenerations(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelGenerations sets the generation limit, clamped to 1..4
func (s *Settings) SetMaxParallelGenerations(count int) {
	if count < 1 {
		count = 1
	}
	if count > MaxParallelLimit {
		count = MaxParallelLimit
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetHighlightConflicts returns whether conflicting cells are highlighted
func (s *Settings) GetHighlightConflicts() bool {
	return s.app.Preferences().BoolWithFallback(KeyHighlightConflicts, DefaultHighlightConflicts)
}

// SetHighlightConflicts sets whether conflicting cells are highlighted
func (s *Settings) SetHighlightConflicts(highlight bool) {
	s.app.Preferences().SetBool(KeyHighlightConflicts, highlight)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"it":     "Italiano",
	}
}
