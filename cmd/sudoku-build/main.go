// sudoku-build packages the game into a platform installer: an NSIS setup
// executable on Windows, a disk image with a Finder layout on macOS.
//
// Usage:
//
//	sudoku-build [-config config.yml] [-root .] [-os darwin|windows] [-skip-bundle]
//
// Exit codes:
//   - 0: installer created
//   - 1: configuration or build error
//   - 2: usage error
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/ytget/sudoku/internal/config"
	xlog "github.com/ytget/sudoku/internal/log"
	"github.com/ytget/sudoku/internal/model"
	"github.com/ytget/sudoku/internal/packaging"
)

var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, packaging.NewExecRunner())
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, runner packaging.Runner) int {
	fs := flag.NewFlagSet("sudoku-build", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		configPath  string
		root        string
		goos        string
		skipBundle  bool
		logLevel    string
		showVersion bool
	)
	fs.StringVar(&configPath, "config", "", "path to config.yml (default <root>/config.yml)")
	fs.StringVar(&root, "root", ".", "repository root holding installer/, resources/ and dist/")
	fs.StringVar(&goos, "os", runtime.GOOS, "target operating system (darwin or windows)")
	fs.BoolVar(&skipBundle, "skip-bundle", false, "reuse the application bundle already in dist/")
	fs.StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL from the config)")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return 2
	}
	if showVersion {
		fmt.Fprintln(stdout, Version)
		return 0
	}

	if configPath == "" {
		configPath = filepath.Join(root, config.ConfigFileName)
	}
	cfg, err := config.LoadBuildConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 1
	}

	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	xlog.Configure(xlog.Config{Level: logLevel, Output: stderr, App: "sudoku-build", Version: Version, Console: true})

	svc := packaging.NewService(cfg, runner)
	svc.SetUpdateCallback(func(task *model.PackagingTask) {
		fmt.Fprintln(stdout, task.Describe())
	})

	task, err := svc.Run(ctx, packaging.Options{Root: root, GOOS: goos, SkipBundle: skipBundle})
	if err != nil {
		fmt.Fprintf(stderr, "Build failed: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "✓ %s\n", task.OutputPath)
	return 0
}
