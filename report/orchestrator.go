package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/halcyard/finfetch/errors"
	"github.com/halcyard/finfetch/fiscal"
)

// Invocation is the raw result of one external client run: the process
// exit code and its combined stdout+stderr.
type Invocation struct {
	ExitCode int
	Output   string
}

// Gateway invokes the external reporting client for one request.
// Implementations must honor ctx cancellation and impose their own
// per-invocation timeout; a returned error means the client could not
// be run to completion at all (spawn failure, timeout).
type Gateway interface {
	Fetch(ctx context.Context, req Request) (Invocation, error)
}

// Notifier delivers the operator notification for auth failures.
// Send failures are the orchestrator's to log; they never change the
// run's aggregate status.
type Notifier interface {
	AuthFailure(ctx context.Context, vendor Vendor, raw string) error
}

// Orchestrator drives one batch run: per configured vendor it builds a
// request, invokes the gateway, classifies the result, places the
// artifact and records the outcome. Vendors are processed strictly
// sequentially; the client writes its artifact into a shared working
// directory under a name that is only vendor-unique after the move.
type Orchestrator struct {
	gateway  Gateway
	notifier Notifier
	workDir  string
	destDir  string
	limiter  *rate.Limiter
	log      *zap.SugaredLogger
}

// NewOrchestrator wires an orchestrator. delay is the fixed
// inter-vendor pause; zero disables pacing.
func NewOrchestrator(gateway Gateway, notifier Notifier, workDir, destDir string, delay time.Duration, log *zap.SugaredLogger) *Orchestrator {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Orchestrator{
		gateway:  gateway,
		notifier: notifier,
		workDir:  workDir,
		destDir:  destDir,
		limiter:  rate.NewLimiter(limit, 1),
		log:      log,
	}
}

// Run fetches the target month's report for every vendor, in order.
// A per-vendor failure is recorded and the batch continues; Run itself
// returns an error only for fatal preconditions (empty vendor list,
// lock contention) or context cancellation.
func (o *Orchestrator) Run(ctx context.Context, month fiscal.Month, vendors []Vendor) (*RunResult, error) {
	if len(vendors) == 0 {
		return nil, errors.New("no vendors configured")
	}

	period := fiscal.Convert(month)
	o.log.Infow("Starting report fetch run",
		"month", month.String(),
		"fiscal_year", period.FiscalYear,
		"period", period.Period,
		"vendors", len(vendors),
	)

	unlock, err := acquireRunLock(o.destDir)
	if err != nil {
		return nil, err
	}
	defer unlock()

	result := &RunResult{}
	for _, vendor := range vendors {
		// The limiter starts with one token, so the first vendor is not
		// delayed; each subsequent Wait blocks for the configured pause.
		if err := o.limiter.Wait(ctx); err != nil {
			return result, errors.Wrap(err, "run cancelled")
		}

		req := NewRequest(vendor, period)
		outcome := o.fetchOne(ctx, req)
		if ctx.Err() != nil {
			return result, errors.Wrap(ctx.Err(), "run cancelled")
		}

		o.record(ctx, vendor, outcome)
		result.Outcomes = append(result.Outcomes, VendorOutcome{Vendor: vendor, Outcome: outcome})
	}

	o.log.Infow("Report fetch run finished",
		"vendors", len(result.Outcomes),
		"failed", result.Failed(),
		"exit_code", result.ExitCode(),
	)
	return result, nil
}

// fetchOne takes a single request through invoke -> classify ->
// artifact placement and returns its terminal outcome.
func (o *Orchestrator) fetchOne(ctx context.Context, req Request) Outcome {
	inv, err := o.gateway.Fetch(ctx, req)
	if err != nil {
		// Spawn failure or timeout: the client never produced a usable
		// exit status, so there is nothing to classify.
		return Outcome{Kind: KindUnknownFailure, ExitCode: -1, Raw: err.Error()}
	}

	outcome := Classify(inv.ExitCode, inv.Output)
	if outcome.Kind == KindSuccess {
		outcome = o.placeArtifact(req, outcome)
	}
	return outcome
}

// placeArtifact moves the produced report from the client's working
// directory into the destination directory. A zero exit with no
// artifact, or a failed move, is a local failure, never a silent
// success. Rename keeps placement atomic; no partially-moved file can
// be left behind on cancellation.
func (o *Orchestrator) placeArtifact(req Request, outcome Outcome) Outcome {
	name := req.ArtifactName()
	src := filepath.Join(o.workDir, name)
	if _, err := os.Stat(src); err != nil {
		return Outcome{
			Kind:     KindUnknownFailure,
			ExitCode: 0,
			Raw:      fmt.Sprintf("client exited 0 but artifact %s is missing: %v", name, err),
		}
	}

	dst := filepath.Join(o.destDir, name)
	if err := os.Rename(src, dst); err != nil {
		return Outcome{
			Kind:     KindUnknownFailure,
			ExitCode: 0,
			Raw:      fmt.Sprintf("failed to move artifact %s into place: %v", name, err),
		}
	}

	outcome.ArtifactPath = dst
	return outcome
}

// record logs the outcome as it happens and fires the auth-failure
// notification. Neither effect can abort the batch.
func (o *Orchestrator) record(ctx context.Context, vendor Vendor, outcome Outcome) {
	switch outcome.Kind {
	case KindSuccess:
		o.log.Infow("Report fetched", "vendor", vendor, "artifact", outcome.ArtifactPath)
	case KindNotAvailable:
		o.log.Infow("No report for requested period", "vendor", vendor)
	case KindPending:
		o.log.Warnw("Report not generated upstream yet, re-run later", "vendor", vendor)
	case KindAuthFailure:
		o.log.Errorw("Authentication failure from report client", "vendor", vendor, "output", outcome.Raw)
		if err := o.notifier.AuthFailure(ctx, vendor, outcome.Raw); err != nil {
			o.log.Errorw("Failed to send auth-failure notification", "vendor", vendor, "error", err)
		}
	case KindUnknownFailure:
		// Verbatim output for operator diagnosis.
		o.log.Errorw("Report fetch failed",
			"vendor", vendor,
			"exit_code", outcome.ExitCode,
			"output", outcome.Raw,
		)
	}
}
