// Package client invokes the external reporting client binary. The
// client is opaque: finfetch passes it a properties file, a command
// verb and the comma-joined request parameters, then captures whatever
// it prints for classification upstream.
package client

import (
	"context"
	"os/exec"
	"time"

	"github.com/kballard/go-shellquote"
	"go.uber.org/zap"

	"github.com/halcyard/finfetch/errors"
	"github.com/halcyard/finfetch/report"
)

// ExecGateway runs the report client as a child process.
type ExecGateway struct {
	// Binary is the path to the client executable.
	Binary string
	// Properties is the path passed via -p; credentials and endpoint
	// live there, managed outside finfetch.
	Properties string
	// Verb is the client command verb (e.g. "download").
	Verb string
	// WorkDir is the directory the client runs in and writes its
	// artifact to.
	WorkDir string
	// Timeout bounds one invocation. The original design had none and
	// could hang a whole batch on a stuck client.
	Timeout time.Duration

	log *zap.SugaredLogger
}

// NewExecGateway builds a gateway around the external client binary.
func NewExecGateway(binary, properties, verb, workDir string, timeout time.Duration, log *zap.SugaredLogger) *ExecGateway {
	return &ExecGateway{
		Binary:     binary,
		Properties: properties,
		Verb:       verb,
		WorkDir:    workDir,
		Timeout:    timeout,
		log:        log,
	}
}

// Fetch invokes the client for one request and returns its exit code
// and combined stdout+stderr. A nonzero exit is not an error here; the
// classifier decides what it means. An error is returned only when the
// client could not run to completion (spawn failure, timeout,
// cancellation).
func (g *ExecGateway) Fetch(ctx context.Context, req report.Request) (report.Invocation, error) {
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	args := []string{"-p", g.Properties, g.Verb, req.ParamString()}
	cmd := exec.CommandContext(ctx, g.Binary, args...)
	cmd.Dir = g.WorkDir

	g.log.Debugw("Invoking report client",
		"vendor", req.Vendor,
		"command", shellquote.Join(append([]string{g.Binary}, args...)...),
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		// Timeout and cancellation take precedence: the process was
		// killed, so its exit status carries no signal worth classifying.
		if ctx.Err() != nil {
			return report.Invocation{}, errors.Wrapf(ctx.Err(), "report client did not finish for vendor %s", req.Vendor)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return report.Invocation{ExitCode: exitErr.ExitCode(), Output: string(out)}, nil
		}
		return report.Invocation{}, errors.Wrapf(err, "failed to run report client for vendor %s", req.Vendor)
	}

	return report.Invocation{ExitCode: 0, Output: string(out)}, nil
}
