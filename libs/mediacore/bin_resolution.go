package mediacore

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// BinDir returns the per-user directory searched before PATH, ~/.devtool/bin.
func BinDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".devtool", "bin")
}

// ResolveBinary maps a binary name to an executable path.
//
// A name containing a path separator is used as is. Otherwise ~/.devtool/bin
// is checked first and the system PATH second.
func ResolveBinary(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty binary name")
	}

	if strings.ContainsRune(name, os.PathSeparator) || strings.Contains(name, "/") {
		if _, err := os.Stat(name); err != nil {
			return "", fmt.Errorf("binary '%s' not found: %w", name, err)
		}
		return name, nil
	}

	target := name
	if runtime.GOOS == "windows" && filepath.Ext(target) == "" {
		target += ".exe"
	}
	localPath := filepath.Join(BinDir(), target)
	if _, err := os.Stat(localPath); err == nil {
		return localPath, nil
	}

	path, err := exec.LookPath(name)
	if err == nil {
		return path, nil
	}

	return "", fmt.Errorf("binary '%s' not found in %s or PATH. Please install it or pass --ffmpeg", name, BinDir())
}
