package mediacore

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	bitrateRe = regexp.MustCompile(`^\d+[kM]$`)
	formatRe  = regexp.MustCompile(`^[a-z0-9]+$`)
)

// IsImage checks if the given path is a supported image format or pattern.
func IsImage(path string) bool {
	if strings.Contains(path, "%") {
		lower := strings.ToLower(path)
		return strings.HasSuffix(lower, ".png") || strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg")
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}

// IsVideo checks if the given path is a supported video format.
func IsVideo(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp4", ".mkv", ".mov", ".avi", ".webm", ".flv", ".m4v", ".mpg", ".mpeg", ".wmv", ".ts":
		return true
	}
	return false
}

// IsAudio checks if the given path is a supported audio format.
func IsAudio(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".mp3", ".wav", ".m4a", ".aac", ".flac", ".ogg", ".opus":
		return true
	}
	return false
}

// ValidateBitrate accepts "<digits>k" or "<digits>M", e.g. "1000k" or "2M".
func ValidateBitrate(bitrate string) error {
	if !bitrateRe.MatchString(bitrate) {
		return fmt.Errorf("%w '%s': must end with 'k' or 'M'", ErrInvalidBitrate, bitrate)
	}
	return nil
}

// ValidateFormat checks that format names a container ffmpeg can write to.
// A leading dot is tolerated.
func ValidateFormat(format string) error {
	f := strings.TrimPrefix(strings.ToLower(format), ".")
	if f == "" {
		return fmt.Errorf("%w: empty", ErrInvalidFormat)
	}
	if !formatRe.MatchString(f) {
		return fmt.Errorf("%w '%s': must be a bare extension such as webm", ErrInvalidFormat, format)
	}
	name := "x." + f
	if !IsVideo(name) && !IsAudio(name) && !IsImage(name) {
		return fmt.Errorf("%w '%s'", ErrInvalidFormat, format)
	}
	return nil
}
