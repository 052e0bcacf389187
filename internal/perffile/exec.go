package perffile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// Command is a resolved scenario body.
type Command struct {
	Run string
	Dir string
	Env map[string]string
}

// Executor runs a scenario command once.
type Executor interface {
	Execute(ctx context.Context, cmd Command) error
}

// ShellExecutor runs commands through "<Shell> -c".
type ShellExecutor struct {
	Shell string
}

// NewShellExecutor returns an executor for shell, defaulting to sh.
func NewShellExecutor(shell string) *ShellExecutor {
	if shell == "" {
		shell = "sh"
	}
	return &ShellExecutor{Shell: shell}
}

// execCommand allows mocking in tests.
var execCommand = exec.CommandContext

func (e *ShellExecutor) Execute(ctx context.Context, c Command) error {
	cmd := execCommand(ctx, e.Shell, "-c", c.Run)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), envList(c.Env)...)
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("command %q failed: %w", c.Run, err)
		}
		return fmt.Errorf("command %q failed: %w\nStderr: %s", c.Run, err, msg)
	}
	return nil
}

func envList(env map[string]string) []string {
	list := make([]string, 0, len(env))
	for k, v := range env {
		list = append(list, k+"="+v)
	}
	sort.Strings(list)
	return list
}
