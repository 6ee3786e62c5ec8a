package mediacore

import (
	"context"
	"io"
	"os/exec"
)

// RunBinary runs a binary with the given name and arguments.
// The binary is located with ResolveBinary, so an install under
// ~/.devtool/bin wins over the system PATH.
func RunBinary(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) error {
	binPath, err := ResolveBinary(name)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, binPath, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}
