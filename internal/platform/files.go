package platform

import (
	"fmt"
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
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// DownloadsDirName is appended to the home directory
const DownloadsDirName = "Downloads"

// LinuxFileManagers are tried when xdg-open is missing
var LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if dirPath == "" {
		return fmt.Errorf("directory path is empty")
	}
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, DownloadsDirName), nil
}

// OpenFolder opens a directory in the system file manager
func OpenFolder(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("folder does not exist: %w", err)
	}
	if !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	absPath, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	name, args, err := openFolderCommand(runtime.GOOS, absPath, exec.LookPath)
	if err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}

// openFolderCommand picks the file manager command for goos
func openFolderCommand(goos, dir string, lookPath func(string) (string, error)) (string, []string, error) {
	switch goos {
	case OSDarwin:
		return OpenCommand, []string{dir}, nil
	case OSWindows:
		return ExplorerCommand, []string{dir}, nil
	case OSLinux:
		if _, err := lookPath(XDGOpenCommand); err == nil {
			return XDGOpenCommand, []string{dir}, nil
		}
		for _, fm := range LinuxFileManagers {
			if _, err := lookPath(fm); err == nil {
				return fm, []string{dir}, nil
			}
		}
		return "", nil, fmt.Errorf("no suitable file manager found")
	default:
		return "", nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}
