package cmd

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/Pranjal6955/terminal-devtool/libs/mediacore"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

var (
	successStyle = color.New(color.FgGreen, color.Bold)
	warnStyle    = color.New(color.FgYellow, color.Bold)
	errorStyle   = color.New(color.FgRed, color.Bold)
	titleStyle   = color.New(color.FgCyan, color.Bold)
	regularStyle = color.New(color.Reset)
)

func renderMediaInfo(w io.Writer, info *mediacore.MediaInfo) {
	titleStyle.Fprintf(w, "Media Info: %s\n", info.Filename)
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Property", "Value"}),
	)

	data := [][]string{
		{"Filename", info.Filename},
		{"Format", info.Format},
		{"Duration", info.Duration},
		{"Resolution", info.Resolution},
		{"Bitrate", info.Bitrate},
		{"Size", formatSize(info.Size)},
	}
	if info.Codec != "" {
		data = append(data, []string{"Codec", info.Codec})
	}
	if info.FrameRate != "" {
		data = append(data, []string{"Frame Rate", info.FrameRate})
	}
	for _, row := range data {
		table.Append(row[0], row[1])
	}
	table.Render()
}

func renderCompare(w io.Writer, res *mediacore.CompareResult) {
	titleStyle.Fprintln(w, "Comparison")
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Property", "Original", "Processed"}),
	)

	o, p := res.Original, res.Processed
	table.Append("Filename", o.Filename, p.Filename)
	table.Append("Format", o.Format, p.Format)
	table.Append("Duration", o.Duration, p.Duration)
	table.Append("Resolution", o.Resolution, p.Resolution)
	table.Append("Bitrate", o.Bitrate, p.Bitrate)
	table.Append("Size", formatSize(o.Size), formatSize(p.Size))
	if o.Codec != "" || p.Codec != "" {
		table.Append("Codec", o.Codec, p.Codec)
	}
	table.Render()

	fmt.Fprintln(w, sizeChangeLine(res.SizeDiffPercent))
}

// sizeChangeLine describes SizeDiffPercent, which is positive when the
// processed file got smaller.
func sizeChangeLine(pct float64) string {
	switch {
	case pct > 0:
		return successStyle.Sprintf("Size reduced by %.2f%%", pct)
	case pct < 0:
		return warnStyle.Sprintf("Size increased by %.2f%%", math.Abs(pct))
	default:
		return regularStyle.Sprint("No change in size")
	}
}

// renderResult reports a process, convert or compress outcome. Local dry runs
// have already printed their command through the executor.
func renderResult(w io.Writer, action string, res *mediacore.Result) {
	if res.DryRun {
		if res.Mode == mediacore.ModeBackend {
			warnStyle.Fprintf(w, "[dry-run] backend would run: %s\n", res.Output)
		}
		return
	}

	successStyle.Fprintf(w, "✓ %s complete (%s)\n", action, res.Mode)
	switch {
	case res.Output != "":
		fmt.Fprintf(w, "  Output: %s\n", res.Output)
	case res.Mode == mediacore.ModeBackend:
		// The compress endpoint echoes the requested output, which is empty
		// when none was given.
		fmt.Fprintln(w, "  Output: named by the backend")
	}
	if res.Message != "" {
		fmt.Fprintf(w, "  %s\n", res.Message)
	}
}

func renderHealth(w io.Writer, url string, h *mediacore.HealthResponse) {
	successStyle.Fprintf(w, "✓ Backend is healthy at %s\n", url)
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Check", "Status"}),
	)
	table.Append("status", h.Status)
	if h.Version != "" {
		table.Append("version", h.Version)
	}
	ffmpeg := "unavailable"
	if h.FFmpegAvailable {
		ffmpeg = "available"
		if h.FFmpegVersion != "" {
			ffmpeg += " (" + h.FFmpegVersion + ")"
		}
	}
	table.Append("ffmpeg", ffmpeg)
	names := make([]string, 0, len(h.Components))
	for name := range h.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		table.Append(name, h.Components[name])
	}
	table.Render()
}

func renderUnhealthy(w io.Writer, url string, err error) {
	errorStyle.Fprintf(w, "✗ Backend unreachable at %s\n", url)
	fmt.Fprintf(w, "  %v\n", err)
}

// formatSize renders a byte count for humans and keeps the exact value.
func formatSize(b uint64) string {
	if b < 1024 {
		return fmt.Sprintf("%d B", b)
	}
	return fmt.Sprintf("%s (%d bytes)", formatBytes(b), b)
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
