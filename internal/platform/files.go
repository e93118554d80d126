package platform

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsCmdFlag     = "/c"
)

// DocumentsDirName is the folder saved games default to, under the home
// directory
const DocumentsDirName = "Documents"

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// MiB is the unit disk image sizes are computed in
const MiB = 1024 * 1024

// BuildRevealCommand returns the command showing path selected in the file
// manager of goos. On Linux selection is not standardized, so the parent
// directory is opened instead.
func BuildRevealCommand(goos, path string) (string, []string, error) {
	switch goos {
	case OSDarwin:
		return OpenCommand, []string{MacOSSelectFlag, path}, nil
	case OSWindows:
		return ExplorerCommand, []string{WindowsSelectParam, path}, nil
	case OSLinux:
		return XDGOpenCommand, []string{filepath.Dir(path)}, nil
	default:
		return "", nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// BuildOpenCommand returns the command opening path with the default
// application of goos.
func BuildOpenCommand(goos, path string) (string, []string, error) {
	switch goos {
	case OSDarwin:
		return OpenCommand, []string{path}, nil
	case OSWindows:
		return CmdCommand, []string{WindowsCmdFlag, StartCommand, "", path}, nil
	case OSLinux:
		return XDGOpenCommand, []string{path}, nil
	default:
		return "", nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	absPath, err := existingAbs(filePath)
	if err != nil {
		return err
	}

	name, args, err := BuildRevealCommand(runtime.GOOS, absPath)
	if err != nil {
		return err
	}
	if err := exec.Command(name, args...).Run(); err == nil || runtime.GOOS != OSLinux {
		return err
	}

	// Fallback to common file managers
	dir := filepath.Dir(absPath)
	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}
	return errors.New("no suitable file manager found")
}

// OpenFileWithDefaultApp opens the file with the default system application
func OpenFileWithDefaultApp(filePath string) error {
	absPath, err := existingAbs(filePath)
	if err != nil {
		return err
	}

	name, args, err := BuildOpenCommand(runtime.GOOS, absPath)
	if err != nil {
		return err
	}
	return exec.Command(name, args...).Run()
}

func existingAbs(filePath string) (string, error) {
	if filePath == "" {
		return "", errors.New("file path is empty")
	}
	if _, err := os.Stat(filePath); err != nil {
		return "", fmt.Errorf("file does not exist: %w", err)
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return absPath, nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDocumentsDir returns the standard Documents directory for the user
func GetHomeDocumentsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, DocumentsDirName), nil
}

// DirSize returns the total size in bytes of the regular files below root.
// Symbolic links are not followed nor counted.
func DirSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 || !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("compute size of %s: %w", root, err)
	}
	return total, nil
}

// CopyFile copies src to dst, creating the parent directory of dst
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := CreateDirectoryIfNotExists(filepath.Dir(dst)); err != nil {
		return fmt.Errorf("create directory for %s: %w", dst, err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, DefaultFilePermissions)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}
