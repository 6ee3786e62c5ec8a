package mediacore

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Command is a single ffmpeg invocation. Arguments are always laid out as
// -i <input>, options in the order they were added, then the output path.
type Command struct {
	Input   string
	Output  string
	Options []string
	DryRun  bool
}

// NewCommand starts a command reading input and writing output.
func NewCommand(input, output string) *Command {
	return &Command{
		Input:  input,
		Output: output,
	}
}

// Resolution adds "-s WxH". Empty values are ignored.
func (c *Command) Resolution(res string) *Command {
	if res != "" {
		c.Options = append(c.Options, "-s", res)
	}
	return c
}

// Bitrate adds "-b:v <bitrate>". Empty values are ignored.
func (c *Command) Bitrate(bitrate string) *Command {
	if bitrate != "" {
		c.Options = append(c.Options, "-b:v", bitrate)
	}
	return c
}

// Extra appends arbitrary options after the ones already set.
func (c *Command) Extra(args ...string) *Command {
	c.Options = append(c.Options, args...)
	return c
}

// Dry marks the command as print-only.
func (c *Command) Dry(dry bool) *Command {
	c.DryRun = dry
	return c
}

// Args returns the ffmpeg argument list, without the binary name.
func (c *Command) Args() []string {
	args := make([]string, 0, len(c.Options)+3)
	args = append(args, "-i", c.Input)
	args = append(args, c.Options...)
	args = append(args, c.Output)
	return args
}

func (c *Command) String() string {
	return "ffmpeg " + strings.Join(c.Args(), " ")
}

// ProcessCommand builds the local equivalent of a process request.
func ProcessCommand(req ProcessRequest) (*Command, error) {
	if req.Input == "" {
		return nil, ErrMissingInput
	}
	if req.Format != "" {
		if err := ValidateFormat(req.Format); err != nil {
			return nil, err
		}
	}
	output := req.Output
	if output == "" {
		output = DefaultProcessOutput(req.Input, req.Format)
	}
	return NewCommand(req.Input, output).
		Resolution(req.Resolution).
		Bitrate(req.Bitrate).
		Dry(req.DryRun), nil
}

// ConvertCommand builds a container/format conversion with no other transform.
func ConvertCommand(req ProcessRequest) (*Command, error) {
	if req.Input == "" {
		return nil, ErrMissingInput
	}
	if err := ValidateFormat(req.Format); err != nil {
		return nil, err
	}
	output := req.Output
	if output == "" {
		output = DefaultConvertOutput(req.Input, req.Format)
	}
	return NewCommand(req.Input, output).Dry(req.DryRun), nil
}

// CompressCommand re-encodes video with libx264 at the requested bitrate and
// copies the audio stream untouched.
func CompressCommand(req CompressRequest) (*Command, error) {
	if req.Input == "" {
		return nil, ErrMissingInput
	}
	if err := ValidateBitrate(req.Bitrate); err != nil {
		return nil, err
	}
	output := req.Output
	if output == "" {
		output = DefaultCompressOutput(req.Input)
	}
	return NewCommand(req.Input, output).
		Bitrate(req.Bitrate).
		Extra("-c:v", "libx264", "-preset", "medium", "-c:a", "copy").
		Dry(req.DryRun), nil
}

// DefaultProcessOutput is processed_<input-basename>, in the working
// directory. A format replaces the input extension.
func DefaultProcessOutput(input, format string) string {
	name := "processed_" + filepath.Base(input)
	if f := normalizeFormat(format); f != "" {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + "." + f
	}
	return name
}

// DefaultConvertOutput places <name>.<format> next to the input. When that
// would overwrite the input the name gets a converted_ prefix.
func DefaultConvertOutput(input, format string) string {
	dir, stem, ext := splitPath(input)
	f := normalizeFormat(format)
	if strings.EqualFold(strings.TrimPrefix(ext, "."), f) {
		return filepath.Join(dir, fmt.Sprintf("converted_%s.%s", stem, f))
	}
	return filepath.Join(dir, stem+"."+f)
}

// DefaultCompressOutput places <name>_compressed<ext> next to the input.
func DefaultCompressOutput(input string) string {
	dir, stem, ext := splitPath(input)
	return filepath.Join(dir, stem+"_compressed"+ext)
}

func splitPath(p string) (dir, stem, ext string) {
	dir = filepath.Dir(p)
	base := filepath.Base(p)
	ext = filepath.Ext(base)
	stem = strings.TrimSuffix(base, ext)
	return dir, stem, ext
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
}
