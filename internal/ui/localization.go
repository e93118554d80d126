package ui

import (
	"github.com/cloudfoundry/jibber_jabber"
	"golang.org/x/text/language"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyFile               = "file"
	KeyPlay               = "play"
	KeyNewGame            = "new_game"
	KeySave               = "save"
	KeySaveAs             = "save_as"
	KeyOpen               = "open"
	KeyHint               = "hint"
	KeyAutoSolve          = "auto_solve"
	KeyCheck              = "check"
	KeyStop               = "stop"
	KeyCancel             = "cancel"
	KeyOK                 = "ok"
	KeyNo                 = "no"
	KeySettings           = "settings"
	KeyLanguage           = "language"
	KeyDifficulty         = "difficulty"
	KeyChooseDifficulty   = "choose_difficulty"
	KeyNewGameTitle       = "new_game_title"
	KeyGenerating         = "generating"
	KeyGenerationStopped  = "generation_stopped"
	KeySaveGameTitle      = "save_game_title"
	KeyWannaSave          = "wanna_save"
	KeyResultTitle        = "result_title"
	KeySolved             = "solved"
	KeyNotSolved          = "not_solved"
	KeyGameSaved          = "game_saved"
	KeyNoHint             = "no_hint"
	KeySaveDirectory      = "save_directory"
	KeyMaxParallel        = "max_parallel"
	KeyHighlightConflicts = "highlight_conflicts"
	KeyBrowse             = "browse"
	KeySettingsSaved      = "settings_saved"
	KeyError              = "error"
)

// detectLocale reports the OS locale as an IETF tag
var detectLocale = jibber_jabber.DetectIETF

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LanguageEnglish,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" picks the translation
// closest to the OS locale.
func (l *Localization) SetLanguage(lang string) {
	if lang == LanguageSystem {
		lang = l.systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// systemLanguage matches the OS locale against the available translations,
// English first so that it wins when nothing matches.
func (l *Localization) systemLanguage() string {
	locale, err := detectLocale()
	if err != nil || locale == "" {
		return LanguageEnglish
	}

	codes := []string{LanguageEnglish}
	for code := range l.texts {
		if code != LanguageEnglish {
			codes = append(codes, code)
		}
	}
	tags := make([]language.Tag, 0, len(codes))
	for _, code := range codes {
		tags = append(tags, language.Raw.Make(code))
	}

	_, index, _ := language.NewMatcher(tags).Match(language.Make(locale))
	return codes[index]
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	if texts, exists := l.texts[LanguageEnglish]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LanguageEnglish: "English",
		LanguageItalian: "Italiano",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts[LanguageEnglish] = map[string]string{
		KeyAppTitle:           "Sudoku",
		KeyFile:               "File",
		KeyPlay:               "Play",
		KeyNewGame:            "New",
		KeySave:               "Save",
		KeySaveAs:             "Save As...",
		KeyOpen:               "Open",
		KeyHint:               "Hint",
		KeyAutoSolve:          "Auto-solve",
		KeyCheck:              "Check",
		KeyStop:               "Stop",
		KeyCancel:             "Cancel",
		KeyOK:                 "OK",
		KeyNo:                 "No",
		KeySettings:           "Settings",
		KeyLanguage:           "Language",
		KeyDifficulty:         "Difficulty",
		KeyChooseDifficulty:   "Choose the difficulty:",
		KeyNewGameTitle:       "New game",
		KeyGenerating:         "Generating a new %s puzzle...",
		KeyGenerationStopped:  "Generation stopped",
		KeySaveGameTitle:      "Save game",
		KeyWannaSave:          "Do you want to save the game?",
		KeyResultTitle:        "Result",
		KeySolved:             "Congratulations, you have solved the sudoku!",
		KeyNotSolved:          "Maybe you did something wrong.. better double check.",
		KeyGameSaved:          "Game saved",
		KeyNoHint:             "Nothing left to hint",
		KeySaveDirectory:      "Save directory",
		KeyMaxParallel:        "Parallel generations",
		KeyHighlightConflicts: "Highlight conflicting cells",
		KeyBrowse:             "Browse",
		KeySettingsSaved:      "Settings saved",
		KeyError:              "Error",
	}

	l.texts[LanguageItalian] = map[string]string{
		KeyAppTitle:           "Sudoku",
		KeyFile:               "File",
		KeyPlay:               "Gioca",
		KeyNewGame:            "Nuova",
		KeySave:               "Salva",
		KeySaveAs:             "Salva con nome...",
		KeyOpen:               "Apri",
		KeyHint:               "Suggerimento",
		KeyAutoSolve:          "Risolvi",
		KeyCheck:              "Verifica",
		KeyStop:               "Ferma",
		KeyCancel:             "Annulla",
		KeyOK:                 "OK",
		KeyNo:                 "No",
		KeySettings:           "Impostazioni",
		KeyLanguage:           "Lingua",
		KeyDifficulty:         "Difficoltà",
		KeyChooseDifficulty:   "Scegli la difficoltà:",
		KeyNewGameTitle:       "Nuova partita",
		KeyGenerating:         "Generazione di un sudoku %s...",
		KeyGenerationStopped:  "Generazione interrotta",
		KeySaveGameTitle:      "Salva partita",
		KeyWannaSave:          "Vuoi salvare la partita?",
		KeyResultTitle:        "Risultato",
		KeySolved:             "Complimenti, hai risolto il sudoku!",
		KeyNotSolved:          "Forse hai sbagliato qualcosa.. meglio ricontrollare.",
		KeyGameSaved:          "Partita salvata",
		KeyNoHint:             "Niente da suggerire",
		KeySaveDirectory:      "Cartella di salvataggio",
		KeyMaxParallel:        "Generazioni in parallelo",
		KeyHighlightConflicts: "Evidenzia le celle in conflitto",
		KeyBrowse:             "Sfoglia",
		KeySettingsSaved:      "Impostazioni salvate",
		KeyError:              "Errore",
	}
}
