package packaging

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/ytget/sudoku/internal/platform"
)

// Executables driven by the pipeline
const (
	FyneCommand     = "fyne"
	MakeNSISCommand = "makensis"
	HdiutilCommand  = "hdiutil"
	OsascriptCmd    = "osascript"
	DittoCommand    = "ditto"
	ChmodCommand    = "chmod"
)

// Disk image settings
const (
	VolumeFS         = "HFS+"
	VolumeFSArgs     = "-c c=64,a=16,e=16"
	WritableFormat   = "UDRW"
	CompressedFormat = "UDZO"
	CompressionKey   = "zlib-level=9"
	SizeMarginMB     = 5
	TempImageName    = "temp.dmg"
	BundleDirName    = "bundle"
	BackgroundDir    = ".background"
	DevicePrefix     = "/dev/"
)

// Output naming
const (
	AppBundleExt       = ".app"
	DiskImageExt       = ".dmg"
	WindowsExeExt      = ".exe"
	WindowsSetupSuffix = "Setup.exe"
)

// BundleParams describe the application to package with the fyne tool
type BundleParams struct {
	GOOS      string
	AppName   string
	AppID     string
	Version   string
	IconPath  string
	SourceDir string
}

// BuildBundleArgs builds the fyne package arguments
func BuildBundleArgs(p BundleParams) []string {
	return []string{
		"package",
		"-os", p.GOOS,
		"-name", p.AppName,
		"-appID", p.AppID,
		"-appVersion", p.Version,
		"-icon", p.IconPath,
		"-sourceDir", p.SourceDir,
		"-release",
	}
}

// BuildCreateImageArgs builds the hdiutil arguments creating a writable
// image of srcFolder sized sizeMB.
func BuildCreateImageArgs(srcFolder, volName string, sizeMB int64, output string) []string {
	return []string{
		"create",
		"-srcfolder", srcFolder,
		"-volname", volName,
		"-fs", VolumeFS,
		"-fsargs", VolumeFSArgs,
		"-format", WritableFormat,
		"-size", fmt.Sprintf("%dm", sizeMB),
		output,
	}
}

// BuildAttachArgs builds the hdiutil arguments mounting image read-write
func BuildAttachArgs(image string) []string {
	return []string{"attach", "-readwrite", "-noverify", "-noautoopen", image}
}

// BuildDetachArgs builds the hdiutil arguments unmounting device
func BuildDetachArgs(device string) []string {
	return []string{"detach", device}
}

// BuildConvertArgs builds the hdiutil arguments compressing image into
// output (hdiutil appends the .dmg extension).
func BuildConvertArgs(image, output string) []string {
	return []string{"convert", image, "-format", CompressedFormat, "-imagekey", CompressionKey, "-o", output}
}

// BuildChmodArgs builds the arguments removing group and other write
// permission below path
func BuildChmodArgs(path string) []string {
	return []string{"-Rf", "go-w", path}
}

// ImageSizeMB returns the disk image size for a bundle of size bytes: whole
// mebibytes plus a fixed margin.
func ImageSizeMB(size int64) int64 {
	return size/platform.MiB + SizeMarginMB
}

// ParseDevicePath returns the first device listed in hdiutil attach output
func ParseDevicePath(output []byte) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, DevicePrefix) {
			continue
		}
		if fields := strings.Fields(line); len(fields) > 0 {
			return fields[0], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("no device found in hdiutil output")
}
