package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/sudoku/internal/platform"
)

const sampleConfig = `
APP_NAME: Sudoku
APP_ICON_NAME: icon
ENTRY_POINT: main.go
VERSION: 1.2.0
AUTHOR: Jane Doe
APPLE_BACKGROUND_IMAGE_NAME: background.png
`

func TestParseBuildConfig(t *testing.T) {
	cfg, err := ParseBuildConfig([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "Sudoku", cfg.AppName)
	assert.Equal(t, "1.2.0", cfg.Version)
	assert.Equal(t, "Jane Doe", cfg.Author)
	assert.Equal(t, "com.janedoe.sudoku", cfg.ID())
	assert.NoError(t, cfg.ValidateForBuild(platform.OSDarwin))

	cfg.AppID = "org.example.sudoku"
	assert.Equal(t, "org.example.sudoku", cfg.ID())
}

func TestParseBuildConfigErrors(t *testing.T) {
	_, err := ParseBuildConfig([]byte(sampleConfig + "UNKNOWN_KEY: x\n"))
	assert.ErrorContains(t, err, "strict config parse error")

	_, err = ParseBuildConfig([]byte(""))
	assert.ErrorContains(t, err, "empty")

	_, err = ParseBuildConfig([]byte("VERSION: 1.0\n"))
	assert.ErrorContains(t, err, "APP_NAME")
}

func TestValidateForBuild(t *testing.T) {
	cfg := &BuildConfig{AppName: "Sudoku", AppIconName: "icon", EntryPoint: "main.go", Version: "1", Author: "me"}

	assert.NoError(t, cfg.ValidateForBuild(platform.OSWindows))
	err := cfg.ValidateForBuild(platform.OSDarwin)
	assert.ErrorContains(t, err, "APPLE_BACKGROUND_IMAGE_NAME")

	cfg.Version = " "
	assert.ErrorContains(t, cfg.ValidateForBuild(platform.OSWindows), "VERSION")
}

func TestDerivedPaths(t *testing.T) {
	cfg, err := ParseBuildConfig([]byte(sampleConfig))
	require.NoError(t, err)
	root := filepath.FromSlash("/repo")

	icon := cfg.Icon(root, platform.OSWindows)
	assert.Equal(t, filepath.Join(root, "resources", "icons", "windows", "icon.ico"), icon.Path())
	assert.Equal(t, ".icns", cfg.Icon(root, platform.OSDarwin).Extension)

	inst := cfg.Installer(root, platform.OSDarwin)
	assert.Equal(t, filepath.Join(root, "installer", "darwin", "installer.scpt"), inst.Path())
	assert.Equal(t, ".nsi", cfg.Installer(root, platform.OSWindows).Extension)

	bg, err := cfg.Background(root, platform.OSDarwin)
	require.NoError(t, err)
	assert.Equal(t, "background", bg.Name)
	assert.Equal(t, ".png", bg.Extension)
	assert.Equal(t, inst.Dir, bg.Dir)

	cfg.AppleBackgroundImageName = "background"
	_, err = cfg.Background(root, platform.OSDarwin)
	assert.Error(t, err)

	assert.Equal(t, filepath.Join(root, "dist"), OutputPath(root))
}

func TestLoadBuildConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := LoadBuildConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "main.go", cfg.EntryPoint)

	_, err = LoadBuildConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
