package packaging

import (
	"fmt"
	"os"
	"strings"
)

// Placeholder keys understood by the installer templates. In a template a
// key appears as ###KEY###.
const (
	KeyAppName    = "APP_NAME"
	KeyIcon       = "ICON"
	KeyBackground = "BACKGROUND"
	KeyApp        = "APP"
	KeyOutput     = "OUTPUT"
	KeyVersion    = "VERSION"
	KeyAuthor     = "AUTHOR"
)

const placeholderDelimiter = "###"

// Values are the personal values substituted into a template. Empty fields
// are unset and leave their placeholder untouched.
type Values struct {
	AppName    string
	Icon       string
	Background string
	App        string
	Output     string
	Version    string
	Author     string
}

// pairs returns the set values keyed by placeholder, in substitution order
func (v Values) pairs() [][2]string {
	all := [][2]string{
		{KeyAppName, v.AppName},
		{KeyIcon, v.Icon},
		{KeyBackground, v.Background},
		{KeyApp, v.App},
		{KeyOutput, v.Output},
		{KeyVersion, v.Version},
		{KeyAuthor, v.Author},
	}
	set := all[:0]
	for _, kv := range all {
		if kv[1] != "" {
			set = append(set, kv)
		}
	}
	return set
}

// Placeholder returns the marker for key as written in templates
func Placeholder(key string) string {
	return placeholderDelimiter + key + placeholderDelimiter
}

// ReplacePlaceholders substitutes every set value into script
func ReplacePlaceholders(script string, v Values) string {
	for _, kv := range v.pairs() {
		script = strings.ReplaceAll(script, Placeholder(kv[0]), kv[1])
	}
	return script
}

// PersonalizeScript reads the template at inputPath, substitutes v and
// writes the result to outputPath.
func PersonalizeScript(inputPath, outputPath string, v Values) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}
	script := ReplacePlaceholders(string(data), v)
	if err := os.WriteFile(outputPath, []byte(script), 0o644); err != nil {
		return fmt.Errorf("write personalized script: %w", err)
	}
	return nil
}
