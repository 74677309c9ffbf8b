// Package launcher starts the external dashboard process with the
// environment the vector-store dependency expects.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"

	"github.com/rs/zerolog"

	"modelgate/internal/common/fsutil"
)

// TelemetryEnv is read by the vector store used by the dashboard; "False"
// turns its anonymous telemetry off.
const TelemetryEnv = "ANONYMIZED_TELEMETRY"

// DisableTelemetry sets TelemetryEnv=False for this process and its children.
func DisableTelemetry() error { return os.Setenv(TelemetryEnv, "False") }

// Cmd describes a child process.
type Cmd struct {
	Path   string
	Args   []string
	Env    map[string]string // additional env vars
	Dir    string            // working directory
	Stdout io.Writer
	Stderr io.Writer
}

// ExitError reports a child that ran and exited non-zero.
type ExitError struct {
	Path string
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("%s exited with status %d", e.Path, e.Code) }

// Run starts c with the inherited environment plus c.Env and waits for it.
func Run(ctx context.Context, c Cmd) error {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	cmd.Env = os.Environ()
	keys := make([]string, 0, len(c.Env))
	for k := range c.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		cmd.Env = append(cmd.Env, k+"="+c.Env[k])
	}
	cmd.Stdout = c.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = c.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	err := cmd.Run()
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return &ExitError{Path: c.Path, Code: ee.ExitCode()}
	}
	return err
}

// Dashboard describes how to launch the dashboard UI.
type Dashboard struct {
	Command string
	Args    []string
	AppPath string
	Dir     string
	Stdout  io.Writer
	Stderr  io.Writer
}

// Cmd resolves the app path and builds the command line
// "<Command> <Args...> <abs AppPath>".
func (d Dashboard) Cmd() (Cmd, error) {
	if d.Command == "" {
		return Cmd{}, errors.New("dashboard command not configured")
	}
	app, err := fsutil.ResolveFile(d.Dir, d.AppPath)
	if err != nil {
		return Cmd{}, err
	}
	args := append(append([]string(nil), d.Args...), app)
	return Cmd{
		Path:   d.Command,
		Args:   args,
		Env:    map[string]string{TelemetryEnv: "False"},
		Dir:    d.Dir,
		Stdout: d.Stdout,
		Stderr: d.Stderr,
	}, nil
}

// RunDashboard launches the dashboard and blocks until it exits.
func RunDashboard(ctx context.Context, d Dashboard, log zerolog.Logger) error {
	c, err := d.Cmd()
	if err != nil {
		return err
	}
	log.Info().Str("command", c.Path).Strs("args", c.Args).Msg("starting dashboard")
	if err := Run(ctx, c); err != nil {
		log.Error().Err(err).Msg("dashboard failed")
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}
