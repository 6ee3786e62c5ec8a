package mediacore

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Progress is one statistics line printed by ffmpeg on stderr.
type Progress struct {
	Frame   int
	FPS     float64
	Size    int64
	Time    time.Duration
	Bitrate string
	Speed   string
}

var (
	frameRe       = regexp.MustCompile(`frame=\s*(\d+)`)
	fpsRe         = regexp.MustCompile(`fps=\s*(\d+\.?\d*)`)
	sizeRe        = regexp.MustCompile(`size=\s*(\d+)(?:kB|KiB)`)
	timeRe        = regexp.MustCompile(`time=\s*(\d+):(\d{2}):(\d{2})(\.\d+)?`)
	statBitrateRe = regexp.MustCompile(`bitrate=\s*(\d+\.?\d*\s*\w+/s)`)
	speedRe       = regexp.MustCompile(`speed=\s*(\d+\.?\d*x)`)
)

// ParseProgress extracts statistics from an ffmpeg stderr line. ok is false
// for lines that carry neither a frame count nor a timestamp.
func ParseProgress(line string) (p Progress, ok bool) {
	if m := frameRe.FindStringSubmatch(line); m != nil {
		p.Frame, _ = strconv.Atoi(m[1])
		ok = true
	}
	if m := timeRe.FindStringSubmatch(line); m != nil {
		h, _ := strconv.Atoi(m[1])
		mins, _ := strconv.Atoi(m[2])
		s, _ := strconv.Atoi(m[3])
		p.Time = time.Duration(h)*time.Hour + time.Duration(mins)*time.Minute + time.Duration(s)*time.Second
		if m[4] != "" {
			frac, _ := strconv.ParseFloat("0"+m[4], 64)
			p.Time += time.Duration(frac * float64(time.Second))
		}
		ok = true
	}
	if !ok {
		return Progress{}, false
	}
	if m := fpsRe.FindStringSubmatch(line); m != nil {
		p.FPS, _ = strconv.ParseFloat(m[1], 64)
	}
	if m := sizeRe.FindStringSubmatch(line); m != nil {
		kb, _ := strconv.ParseInt(m[1], 10, 64)
		p.Size = kb * 1024
	}
	if m := statBitrateRe.FindStringSubmatch(line); m != nil {
		p.Bitrate = m[1]
	}
	if m := speedRe.FindStringSubmatch(line); m != nil {
		p.Speed = m[1]
	}
	return p, true
}

func (p Progress) String() string {
	var parts []string
	if p.Time > 0 {
		parts = append(parts, formatClock(p.Time))
	}
	if p.Frame > 0 {
		parts = append(parts, fmt.Sprintf("%d frames", p.Frame))
	}
	if p.FPS > 0 {
		parts = append(parts, fmt.Sprintf("%.2f fps", p.FPS))
	}
	if p.Speed != "" {
		parts = append(parts, p.Speed)
	}
	if p.Bitrate != "" {
		parts = append(parts, p.Bitrate)
	}
	if len(parts) == 0 {
		return "Processing..."
	}
	return strings.Join(parts, " | ")
}

// formatClock renders d as HH:MM:SS.cc.
func formatClock(d time.Duration) string {
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return fmt.Sprintf("%02d:%02d:%02d.%02d", h, m, s, d/(10*time.Millisecond))
}

// progressWriter splits ffmpeg stderr on \r and \n and reports every
// statistics line it recognizes.
type progressWriter struct {
	buf      []byte
	onUpdate func(Progress)
}

func (w *progressWriter) Write(b []byte) (int, error) {
	w.buf = append(w.buf, b...)
	for {
		i := bytes.IndexAny(w.buf, "\r\n")
		if i < 0 {
			break
		}
		line := string(w.buf[:i])
		w.buf = w.buf[i+1:]
		if p, ok := ParseProgress(line); ok && w.onUpdate != nil {
			w.onUpdate(p)
		}
	}
	return len(b), nil
}

// tailWriter keeps the last n non-empty lines written to it.
type tailWriter struct {
	n       int
	partial []byte
	lines   []string
}

func newTailWriter(n int) *tailWriter {
	return &tailWriter{n: n}
}

func (w *tailWriter) Write(b []byte) (int, error) {
	w.partial = append(w.partial, b...)
	for {
		i := bytes.IndexAny(w.partial, "\r\n")
		if i < 0 {
			break
		}
		w.push(string(w.partial[:i]))
		w.partial = w.partial[i+1:]
	}
	return len(b), nil
}

func (w *tailWriter) push(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	w.lines = append(w.lines, line)
	if len(w.lines) > w.n {
		w.lines = w.lines[len(w.lines)-w.n:]
	}
}

// String returns the retained lines, including an unterminated last line.
func (w *tailWriter) String() string {
	lines := w.lines
	if rest := strings.TrimSpace(string(w.partial)); rest != "" {
		lines = append(append([]string(nil), lines...), rest)
	}
	return strings.Join(lines, "\n")
}
