package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Pranjal6955/terminal-devtool/libs/mediacore"
	"github.com/fatih/color"
)

func TestSizeChangeLine(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		pct  float64
		want string
	}{
		{25, "Size reduced by 25.00%"},
		{-12.5, "Size increased by 12.50%"},
		{0, "No change in size"},
	}
	for _, tt := range tests {
		if got := sizeChangeLine(tt.pct); got != tt.want {
			t.Errorf("sizeChangeLine(%v) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if got, want := formatSize(1536), "1.50 KB (1536 bytes)"; got != want {
		t.Errorf("formatSize(1536) = %q, want %q", got, want)
	}
}

func TestRenderMediaInfo(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	renderMediaInfo(&buf, &mediacore.MediaInfo{
		Filename:   "clip.mp4",
		Format:     "mp4",
		Duration:   "00:00:42",
		Resolution: "640x360",
		Bitrate:    "900 kb/s",
		Size:       4096,
		Codec:      "h264",
	})

	out := buf.String()
	for _, want := range []string{"clip.mp4", "00:00:42", "640x360", "900 kb/s", "4.00 KB", "h264"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Frame Rate") {
		t.Errorf("empty frame rate should not be rendered:\n%s", out)
	}
}

func TestRenderCompareIncrease(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	renderCompare(&buf, &mediacore.CompareResult{
		Original:        mediacore.MediaInfo{Filename: "a.mp4", Size: 1000},
		Processed:       mediacore.MediaInfo{Filename: "b.webm", Size: 1100},
		SizeDiffPercent: -10,
	})

	out := buf.String()
	for _, want := range []string{"a.mp4", "b.webm", "Size increased by 10.00%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderResult(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name string
		res  *mediacore.Result
		want string
	}{
		{
			name: "local success",
			res:  &mediacore.Result{Mode: mediacore.ModeLocal, Output: "processed_clip.mp4"},
			want: "✓ Processing complete (local)\n  Output: processed_clip.mp4\n",
		},
		{
			name: "backend chose the output name",
			res:  &mediacore.Result{Mode: mediacore.ModeBackend, Message: "Video compressed successfully"},
			want: "✓ Processing complete (backend)\n  Output: named by the backend\n  Video compressed successfully\n",
		},
		{
			name: "backend dry run",
			res:  &mediacore.Result{Mode: mediacore.ModeBackend, Output: "ffmpeg -i clip.mp4 processed_clip.mp4", DryRun: true},
			want: "[dry-run] backend would run: ffmpeg -i clip.mp4 processed_clip.mp4\n",
		},
		{
			name: "local dry run prints nothing more",
			res:  &mediacore.Result{Mode: mediacore.ModeLocal, DryRun: true},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			renderResult(&buf, "Processing", tt.res)
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}
