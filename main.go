package main

import (
	_ "embed"
	"fmt"
	"os"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/sudoku/internal/config"
	"github.com/ytget/sudoku/internal/game"
	"github.com/ytget/sudoku/internal/generate"
	xlog "github.com/ytget/sudoku/internal/log"
	"github.com/ytget/sudoku/internal/sudoku"
	"github.com/ytget/sudoku/internal/ui"
)

//go:embed config.yml
var configYAML []byte

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = ""

func main() {
	cfg, err := config.ParseBuildConfig(configYAML)
	if err != nil {
		fmt.Fprintf(os.Stderr, "embedded config: %v\n", err)
		os.Exit(1)
	}
	if version == "" {
		version = cfg.Version
	}

	xlog.Configure(xlog.Config{Level: cfg.LogLevel, App: cfg.AppName, Version: version, Console: true})
	logger := xlog.WithComponent("main")
	logger.Info().Msg("starting")

	myApp := app.NewWithID(cfg.ID())
	myApp.Settings().SetTheme(ui.NewCompactTheme())
	if icon, err := ui.LoadAppIcon(cfg.Icon(".", runtime.GOOS).Path()); err == nil {
		myApp.SetIcon(icon)
	} else {
		logger.Debug().Err(err).Msg("no window icon")
	}

	myWindow := myApp.NewWindow(cfg.AppName)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(myApp)
	generator := generate.NewService(sudoku.NewGenerator(nil), settings.GetMaxParallelGenerations())
	defer generator.Close()

	ui.NewRootUI(myWindow, myApp, game.New(generator), generator)

	myWindow.ShowAndRun()
	logger.Info().Msg("stopped")
}
