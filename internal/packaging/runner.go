package packaging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	xlog "github.com/ytget/sudoku/internal/log"
)

// Command is an external program invocation
type Command struct {
	Name  string
	Args  []string
	Dir   string    // working directory, current one when empty
	Stdin io.Reader // piped to the program when set
}

// String renders the command for logs and errors
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner runs external commands and returns their standard output
type Runner interface {
	Run(ctx context.Context, cmd Command) ([]byte, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	logger zerolog.Logger
}

// NewExecRunner returns a runner backed by os/exec
func NewExecRunner() *ExecRunner {
	return &ExecRunner{logger: xlog.WithComponent("exec")}
}

// Run starts cmd and waits for it. Standard error is attached to the
// returned error on failure.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdin = cmd.Stdin

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	r.logger.Debug().Str("cmd", cmd.String()).Str("dir", cmd.Dir).Msg("running command")
	if err := c.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return stdout.Bytes(), fmt.Errorf("%s: %w: %s", cmd.Name, err, msg)
		}
		return stdout.Bytes(), fmt.Errorf("%s: %w", cmd.Name, err)
	}
	return stdout.Bytes(), nil
}
