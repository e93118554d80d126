package packaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/sudoku/internal/config"
	xlog "github.com/ytget/sudoku/internal/log"
	"github.com/ytget/sudoku/internal/model"
	"github.com/ytget/sudoku/internal/platform"
)

const (
	// TaskIDPrefix prefixes every packaging task ID
	TaskIDPrefix = "package-"

	// DefaultVolumesRoot is where macOS mounts disk images
	DefaultVolumesRoot = "/Volumes"
)

// ErrUnsupportedOS is returned for targets without an installer pipeline
var ErrUnsupportedOS = errors.New("no installer pipeline for target")

// Options select what a packaging run builds
type Options struct {
	Root        string // repository root holding installer/, resources/ and dist/
	GOOS        string // target operating system
	SkipBundle  bool   // reuse the bundle already in dist/
	VolumesRoot string // mount point parent, DefaultVolumesRoot when empty
}

// StepError reports the pipeline step that failed
type StepError struct {
	Step model.PackagingStep
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Service builds application installers
type Service struct {
	cfg        *config.BuildConfig
	runner     Runner
	tasks      map[string]*model.PackagingTask
	tasksMutex sync.RWMutex
	onUpdate   func(*model.PackagingTask) // callback for progress output
	logger     zerolog.Logger
}

// NewService creates a packaging service for cfg running external tools
// through runner
func NewService(cfg *config.BuildConfig, runner Runner) *Service {
	return &Service{
		cfg:    cfg,
		runner: runner,
		tasks:  make(map[string]*model.PackagingTask),
		logger: xlog.WithComponent("packaging"),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.PackagingTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// GetTask returns a snapshot of a packaging task by ID
func (s *Service) GetTask(id string) (*model.PackagingTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return nil, false
	}
	snapshot := *task
	return &snapshot, true
}

// Run builds the installer for opts.GOOS and returns the finished task
func (s *Service) Run(ctx context.Context, opts Options) (*model.PackagingTask, error) {
	if opts.VolumesRoot == "" {
		opts.VolumesRoot = DefaultVolumesRoot
	}
	task := &model.PackagingTask{
		ID:        generateTaskID(),
		TargetOS:  opts.GOOS,
		Status:    model.TaskStatusPending,
		StartedAt: time.Now(),
	}
	s.tasksMutex.Lock()
	s.tasks[task.ID] = task
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	err := s.run(ctx, task, opts)

	s.tasksMutex.Lock()
	switch {
	case err == nil:
		task.Status = model.TaskStatusCompleted
		task.Message = "Installer created: " + task.OutputPath
	case errors.Is(err, context.Canceled):
		task.Status = model.TaskStatusStopped
	default:
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
		var stepErr *StepError
		if errors.As(err, &stepErr) {
			task.Step = stepErr.Step
			task.LastError = stepErr.Err.Error()
		}
	}
	task.FinishedAt = time.Now()
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	snapshot, _ := s.GetTask(task.ID)
	return snapshot, err
}

func (s *Service) run(ctx context.Context, task *model.PackagingTask, opts Options) error {
	if opts.GOOS != platform.OSWindows && opts.GOOS != platform.OSDarwin {
		return &StepError{Step: model.StepBundle, Err: fmt.Errorf("%w: %s", ErrUnsupportedOS, opts.GOOS)}
	}
	if err := s.cfg.ValidateForBuild(opts.GOOS); err != nil {
		return &StepError{Step: model.StepBundle, Err: err}
	}

	s.setStatus(task, model.TaskStatusStarting)
	dist := config.OutputPath(opts.Root)
	if err := platform.CreateDirectoryIfNotExists(dist); err != nil {
		return &StepError{Step: model.StepBundle, Err: err}
	}

	s.setStatus(task, model.TaskStatusRunning)
	if !opts.SkipBundle {
		s.setStep(task, model.StepBundle, "Building application bundle")
		if err := s.buildBundle(ctx, opts, dist); err != nil {
			return &StepError{Step: model.StepBundle, Err: err}
		}
		s.setStep(task, model.StepBundle, "Executable created")
	}

	tmp, err := os.MkdirTemp("", "sudoku-build-")
	if err != nil {
		return &StepError{Step: model.StepPersonalize, Err: err}
	}
	defer os.RemoveAll(tmp)

	if opts.GOOS == platform.OSWindows {
		return s.buildWindows(ctx, task, opts, dist, tmp)
	}
	return s.buildDarwin(ctx, task, opts, dist, tmp)
}

// buildBundle runs the fyne packager, which writes into dist
func (s *Service) buildBundle(ctx context.Context, opts Options, dist string) error {
	src, err := filepath.Abs(opts.Root)
	if err != nil {
		return err
	}
	args := BuildBundleArgs(BundleParams{
		GOOS:      opts.GOOS,
		AppName:   s.cfg.AppName,
		AppID:     s.cfg.ID(),
		Version:   s.cfg.Version,
		IconPath:  s.cfg.Icon(src, opts.GOOS).Path(),
		SourceDir: src,
	})
	_, err = s.runner.Run(ctx, Command{Name: FyneCommand, Args: args, Dir: dist})
	return err
}

// buildWindows personalizes the NSIS script and compiles it
func (s *Service) buildWindows(ctx context.Context, task *model.PackagingTask, opts Options, dist, tmp string) error {
	tmpl := s.cfg.Installer(opts.Root, opts.GOOS)
	script := filepath.Join(tmp, tmpl.FileName())
	output := filepath.Join(dist, s.cfg.AppName+WindowsSetupSuffix)

	s.setStep(task, model.StepPersonalize, "Personalizing installer script")
	err := PersonalizeScript(tmpl.Path(), script, Values{
		AppName: s.cfg.AppName,
		Icon:    s.cfg.Icon(opts.Root, opts.GOOS).Path(),
		App:     filepath.Join(dist, s.cfg.AppName+WindowsExeExt),
		Output:  output,
		Version: s.cfg.Version,
		Author:  s.cfg.Author,
	})
	if err != nil {
		return &StepError{Step: model.StepPersonalize, Err: err}
	}

	s.setStep(task, model.StepInstaller, "Compiling installer")
	if _, err := s.runner.Run(ctx, Command{Name: MakeNSISCommand, Args: []string{script}}); err != nil {
		return &StepError{Step: model.StepInstaller, Err: err}
	}

	s.setOutput(task, output)
	return nil
}

// buildDarwin wraps the app bundle into a compressed disk image laid out by
// the Finder script
func (s *Service) buildDarwin(ctx context.Context, task *model.PackagingTask, opts Options, dist, tmp string) error {
	appName := s.cfg.AppName
	bundleName := appName + AppBundleExt

	// copy the app bundle in the temp dir
	s.setStep(task, model.StepDiskImage, "Copying application bundle")
	bundleDir := filepath.Join(tmp, BundleDirName)
	if err := platform.CreateDirectoryIfNotExists(bundleDir); err != nil {
		return &StepError{Step: model.StepDiskImage, Err: err}
	}
	bundle := filepath.Join(bundleDir, bundleName)
	if _, err := s.runner.Run(ctx, Command{Name: DittoCommand, Args: []string{filepath.Join(dist, bundleName), bundle}}); err != nil {
		return &StepError{Step: model.StepDiskImage, Err: err}
	}

	size, err := platform.DirSize(bundle)
	if err != nil {
		return &StepError{Step: model.StepDiskImage, Err: err}
	}
	image := filepath.Join(tmp, TempImageName)

	s.setStep(task, model.StepDiskImage, fmt.Sprintf("Creating %d MB disk image", ImageSizeMB(size)))
	if _, err := s.runner.Run(ctx, Command{Name: HdiutilCommand, Args: BuildCreateImageArgs(bundleDir, appName, ImageSizeMB(size), image)}); err != nil {
		return &StepError{Step: model.StepDiskImage, Err: err}
	}

	out, err := s.runner.Run(ctx, Command{Name: HdiutilCommand, Args: BuildAttachArgs(image)})
	if err != nil {
		return &StepError{Step: model.StepDiskImage, Err: err}
	}
	device, err := ParseDevicePath(out)
	if err != nil {
		return &StepError{Step: model.StepDiskImage, Err: err}
	}
	detached := false
	defer func() {
		if detached {
			return
		}
		// leave nothing mounted when a later step fails
		if _, derr := s.runner.Run(context.Background(), Command{Name: HdiutilCommand, Args: BuildDetachArgs(device)}); derr != nil {
			s.logger.Warn().Err(derr).Str("device", device).Msg("failed to detach disk image")
		}
	}()

	// copy the background image in the hidden dir of the volume
	s.setStep(task, model.StepLayout, "Setting disk image layout")
	volume := filepath.Join(opts.VolumesRoot, appName)
	background, err := s.cfg.Background(opts.Root, opts.GOOS)
	if err != nil {
		return &StepError{Step: model.StepLayout, Err: err}
	}
	if err := platform.CopyFile(background.Path(), filepath.Join(volume, BackgroundDir, background.FileName())); err != nil {
		return &StepError{Step: model.StepLayout, Err: err}
	}

	tmpl := s.cfg.Installer(opts.Root, opts.GOOS)
	script := filepath.Join(tmp, tmpl.FileName())
	err = PersonalizeScript(tmpl.Path(), script, Values{AppName: appName, Background: background.FileName()})
	if err != nil {
		return &StepError{Step: model.StepPersonalize, Err: err}
	}
	data, err := os.ReadFile(script)
	if err != nil {
		return &StepError{Step: model.StepLayout, Err: err}
	}
	if _, err := s.runner.Run(ctx, Command{Name: OsascriptCmd, Stdin: bytes.NewReader(data)}); err != nil {
		return &StepError{Step: model.StepLayout, Err: err}
	}

	// finalize the dmg creation
	s.setStep(task, model.StepFinalize, "Compressing disk image")
	output := filepath.Join(dist, appName)
	if err := os.Remove(output + DiskImageExt); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &StepError{Step: model.StepFinalize, Err: err}
	}
	if _, err := s.runner.Run(ctx, Command{Name: ChmodCommand, Args: BuildChmodArgs(volume)}); err != nil {
		return &StepError{Step: model.StepFinalize, Err: err}
	}
	if _, err := s.runner.Run(ctx, Command{Name: HdiutilCommand, Args: BuildDetachArgs(device)}); err != nil {
		return &StepError{Step: model.StepFinalize, Err: err}
	}
	detached = true
	if _, err := s.runner.Run(ctx, Command{Name: HdiutilCommand, Args: BuildConvertArgs(image, output)}); err != nil {
		return &StepError{Step: model.StepFinalize, Err: err}
	}

	s.setOutput(task, output+DiskImageExt)
	return nil
}

func (s *Service) setStatus(task *model.PackagingTask, status model.TaskStatus) {
	s.tasksMutex.Lock()
	task.Status = status
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

func (s *Service) setStep(task *model.PackagingTask, step model.PackagingStep, message string) {
	s.tasksMutex.Lock()
	task.Step = step
	task.Message = message
	s.tasksMutex.Unlock()

	s.logger.Info().Str("task", task.ID).Str("step", string(step)).Msg(message)
	s.notifyUpdate(task)
}

func (s *Service) setOutput(task *model.PackagingTask, path string) {
	s.tasksMutex.Lock()
	task.OutputPath = path
	s.tasksMutex.Unlock()
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(task *model.PackagingTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	snapshot := *task
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(&snapshot)
	}
}

// generateTaskID generates a unique task ID using UUID v7
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
