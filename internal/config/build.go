package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ytget/sudoku/internal/platform"
)

// Layout of the repository used by the build
const (
	ConfigFileName    = "config.yml"
	InstallerDirName  = "installer"
	InstallerBaseName = "installer"
	ResourcesDirName  = "resources"
	IconsDirName      = "icons"
	OutputDirName     = "dist"
)

// BuildConfig holds the application and build settings read from config.yml
type BuildConfig struct {
	AppName                  string `yaml:"APP_NAME"`
	AppIconName              string `yaml:"APP_ICON_NAME"`
	EntryPoint               string `yaml:"ENTRY_POINT"`
	Version                  string `yaml:"VERSION"`
	Author                   string `yaml:"AUTHOR"`
	AppleBackgroundImageName string `yaml:"APPLE_BACKGROUND_IMAGE_NAME"`
	AppID                    string `yaml:"APP_ID,omitempty"`
	LogLevel                 string `yaml:"LOG_LEVEL,omitempty"`
}

// FileRef locates a file as a directory, a base name and an extension
// (with the leading dot).
type FileRef struct {
	Name      string
	Extension string
	Dir       string
}

// FileName returns the name with its extension
func (f FileRef) FileName() string {
	return f.Name + f.Extension
}

// Path returns the full path of the file
func (f FileRef) Path() string {
	return filepath.Join(f.Dir, f.FileName())
}

// ParseBuildConfig decodes config.yml content. Unknown keys are rejected.
func ParseBuildConfig(data []byte) (*BuildConfig, error) {
	var cfg BuildConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true) // Reject unknown fields

	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("config file is empty")
		}
		return nil, fmt.Errorf("strict config parse error: %w", err)
	}
	if cfg.AppName == "" {
		return nil, errors.New("APP_NAME is required")
	}
	return &cfg, nil
}

// LoadBuildConfig reads and decodes the config file at path
func LoadBuildConfig(path string) (*BuildConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	cfg, err := ParseBuildConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ValidateForBuild checks the keys the packaging pipeline for goos needs
func (c *BuildConfig) ValidateForBuild(goos string) error {
	var missing []string
	check := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}
	check("APP_ICON_NAME", c.AppIconName)
	check("ENTRY_POINT", c.EntryPoint)
	check("VERSION", c.Version)
	check("AUTHOR", c.Author)
	if goos == platform.OSDarwin {
		check("APPLE_BACKGROUND_IMAGE_NAME", c.AppleBackgroundImageName)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing config keys: %s", strings.Join(missing, ", "))
	}
	return nil
}

// IconExtension returns the icon extension used on goos
func IconExtension(goos string) string {
	if goos == platform.OSWindows {
		return ".ico"
	}
	return ".icns"
}

// InstallerExtension returns the installer script extension used on goos
func InstallerExtension(goos string) string {
	if goos == platform.OSWindows {
		return ".nsi"
	}
	return ".scpt"
}

// Icon locates the application icon for goos below root
func (c *BuildConfig) Icon(root, goos string) FileRef {
	return FileRef{
		Name:      c.AppIconName,
		Extension: IconExtension(goos),
		Dir:       filepath.Join(root, ResourcesDirName, IconsDirName, goos),
	}
}

// Installer locates the installer script template for goos below root
func (c *BuildConfig) Installer(root, goos string) FileRef {
	return FileRef{
		Name:      InstallerBaseName,
		Extension: InstallerExtension(goos),
		Dir:       filepath.Join(root, InstallerDirName, goos),
	}
}

// Background locates the disk image background, stored next to the
// installer script.
func (c *BuildConfig) Background(root, goos string) (FileRef, error) {
	name, ext, ok := strings.Cut(c.AppleBackgroundImageName, ".")
	if !ok || name == "" || ext == "" {
		return FileRef{}, fmt.Errorf("background image name %q has no extension", c.AppleBackgroundImageName)
	}
	return FileRef{
		Name:      name,
		Extension: "." + ext,
		Dir:       c.Installer(root, goos).Dir,
	}, nil
}

// OutputPath returns the directory build artifacts are written to
func OutputPath(root string) string {
	return filepath.Join(root, OutputDirName)
}

// ID returns the application identifier, derived from the author and the
// name when APP_ID is not set.
func (c *BuildConfig) ID() string {
	if c.AppID != "" {
		return c.AppID
	}
	clean := func(s string) string {
		s = strings.ToLower(strings.TrimSpace(s))
		return strings.Map(func(r rune) rune {
			if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, s)
	}
	author := clean(c.Author)
	if author == "" {
		author = "local"
	}
	return "com." + author + "." + clean(c.AppName)
}
