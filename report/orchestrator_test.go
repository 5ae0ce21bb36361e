package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/halcyard/finfetch/fiscal"
)

// fakeGateway scripts one invocation per vendor and optionally drops
// the artifact into the working directory the way the real client does.
type fakeGateway struct {
	t        *testing.T
	workDir  string
	results  map[Vendor]Invocation
	errs     map[Vendor]error
	artifact map[Vendor]bool
	requests []Request
}

func (g *fakeGateway) Fetch(_ context.Context, req Request) (Invocation, error) {
	g.requests = append(g.requests, req)
	if err := g.errs[req.Vendor]; err != nil {
		return Invocation{}, err
	}
	if g.artifact[req.Vendor] {
		path := filepath.Join(g.workDir, req.ArtifactName())
		require.NoError(g.t, os.WriteFile(path, []byte("gzip bytes"), 0o644))
	}
	return g.results[req.Vendor], nil
}

type fakeNotifier struct {
	calls []struct {
		vendor Vendor
		raw    string
	}
	err error
}

func (n *fakeNotifier) AuthFailure(_ context.Context, vendor Vendor, raw string) error {
	n.calls = append(n.calls, struct {
		vendor Vendor
		raw    string
	}{vendor, raw})
	return n.err
}

func newTestOrchestrator(t *testing.T, gw Gateway, n Notifier, workDir, destDir string) *Orchestrator {
	t.Helper()
	return NewOrchestrator(gw, n, workDir, destDir, 0, zap.NewNop().Sugar())
}

func TestRunMovesArtifactsOnSuccess(t *testing.T) {
	workDir := t.TempDir()
	destDir := t.TempDir()

	gw := &fakeGateway{
		t:       t,
		workDir: workDir,
		results: map[Vendor]Invocation{
			"V1": {ExitCode: 0, Output: "ok"},
			"V2": {ExitCode: 0, Output: "ok"},
		},
		artifact: map[Vendor]bool{"V1": true, "V2": true},
	}
	notifier := &fakeNotifier{}
	orch := newTestOrchestrator(t, gw, notifier, workDir, destDir)

	result, err := orch.Run(context.Background(), fiscal.Month{Year: 2024, Month: 11}, []Vendor{"V1", "V2"})
	require.NoError(t, err)

	require.Len(t, result.Outcomes, 2)
	assert.Equal(t, 0, result.ExitCode())
	for i, vendor := range []Vendor{"V1", "V2"} {
		assert.Equal(t, vendor, result.Outcomes[i].Vendor)
		assert.Equal(t, KindSuccess, result.Outcomes[i].Outcome.Kind)
	}

	// November 2024 is fiscal 2025 period 2; both artifacts moved.
	assert.FileExists(t, filepath.Join(destDir, "V1_ZZ_Financial_2025_2.gz"))
	assert.FileExists(t, filepath.Join(destDir, "V2_ZZ_Financial_2025_2.gz"))
	assert.NoFileExists(t, filepath.Join(workDir, "V1_ZZ_Financial_2025_2.gz"))

	// The gateway saw the fixed comma-joined parameter format.
	require.Len(t, gw.requests, 2)
	assert.Equal(t, "V1,ZZ,Financial,2025,2", gw.requests[0].ParamString())

	assert.Empty(t, notifier.calls)
}

func TestRunAuthFailureNotifiesAndContinues(t *testing.T) {
	workDir := t.TempDir()
	destDir := t.TempDir()

	gw := &fakeGateway{
		t:       t,
		workDir: workDir,
		results: map[Vendor]Invocation{
			"V1": {ExitCode: 2, Output: "server response: Error 124 - invalid credentials"},
			"V2": {ExitCode: 0, Output: "ok"},
		},
		artifact: map[Vendor]bool{"V2": true},
	}
	notifier := &fakeNotifier{}
	orch := newTestOrchestrator(t, gw, notifier, workDir, destDir)

	result, err := orch.Run(context.Background(), fiscal.Month{Year: 2024, Month: 11}, []Vendor{"V1", "V2"})
	require.NoError(t, err)

	require.Len(t, result.Outcomes, 2)
	assert.Equal(t, KindAuthFailure, result.Outcomes[0].Outcome.Kind)
	assert.Equal(t, KindSuccess, result.Outcomes[1].Outcome.Kind)
	assert.Equal(t, 1, result.ExitCode())

	// Notification carries the raw client output verbatim.
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, Vendor("V1"), notifier.calls[0].vendor)
	assert.Contains(t, notifier.calls[0].raw, "Error 124")

	// The batch continued past the auth failure.
	assert.FileExists(t, filepath.Join(destDir, "V2_ZZ_Financial_2025_2.gz"))
}

func TestRunNotificationFailureDoesNotPoisonRun(t *testing.T) {
	workDir := t.TempDir()
	destDir := t.TempDir()

	gw := &fakeGateway{
		t:       t,
		workDir: workDir,
		results: map[Vendor]Invocation{
			"V1": {ExitCode: 0, Output: "ok"},
			"V2": {ExitCode: 1, Output: "Error 123 token expired"},
		},
		artifact: map[Vendor]bool{"V1": true},
	}
	notifier := &fakeNotifier{err: os.ErrDeadlineExceeded}
	orch := newTestOrchestrator(t, gw, notifier, workDir, destDir)

	result, err := orch.Run(context.Background(), fiscal.Month{Year: 2024, Month: 11}, []Vendor{"V1", "V2"})
	require.NoError(t, err)

	// Aggregate is nonzero because of the auth failure itself, and the
	// outcome kind is unchanged by the failed send.
	assert.Equal(t, 1, result.ExitCode())
	assert.Equal(t, KindAuthFailure, result.Outcomes[1].Outcome.Kind)
}

func TestRunMissingArtifactIsUnknownFailure(t *testing.T) {
	workDir := t.TempDir()
	destDir := t.TempDir()

	// Exit 0 but the client never wrote the file.
	gw := &fakeGateway{
		t:       t,
		workDir: workDir,
		results: map[Vendor]Invocation{"V1": {ExitCode: 0, Output: "ok"}},
	}
	orch := newTestOrchestrator(t, gw, &fakeNotifier{}, workDir, destDir)

	result, err := orch.Run(context.Background(), fiscal.Month{Year: 2024, Month: 11}, []Vendor{"V1"})
	require.NoError(t, err)

	require.Len(t, result.Outcomes, 1)
	outcome := result.Outcomes[0].Outcome
	assert.Equal(t, KindUnknownFailure, outcome.Kind)
	assert.Contains(t, outcome.Raw, "artifact")
	assert.Equal(t, 1, result.ExitCode())
}

func TestRunPendingPoisonsButContinues(t *testing.T) {
	workDir := t.TempDir()
	destDir := t.TempDir()

	gw := &fakeGateway{
		t:       t,
		workDir: workDir,
		results: map[Vendor]Invocation{
			"V1": {ExitCode: 1, Output: "Error 117 not generated yet"},
			"V2": {ExitCode: 1, Output: "Error 213 no such report"},
		},
	}
	notifier := &fakeNotifier{}
	orch := newTestOrchestrator(t, gw, notifier, workDir, destDir)

	result, err := orch.Run(context.Background(), fiscal.Month{Year: 2024, Month: 6}, []Vendor{"V1", "V2"})
	require.NoError(t, err)

	assert.Equal(t, KindPending, result.Outcomes[0].Outcome.Kind)
	assert.Equal(t, KindNotAvailable, result.Outcomes[1].Outcome.Kind)
	assert.Equal(t, 1, result.ExitCode())
	assert.Empty(t, notifier.calls)
}

func TestRunGatewayErrorIsUnknownFailure(t *testing.T) {
	workDir := t.TempDir()
	destDir := t.TempDir()

	gw := &fakeGateway{
		t:       t,
		workDir: workDir,
		errs:    map[Vendor]error{"V1": os.ErrNotExist},
		results: map[Vendor]Invocation{"V2": {ExitCode: 0, Output: "ok"}},
		artifact: map[Vendor]bool{
			"V2": true,
		},
	}
	orch := newTestOrchestrator(t, gw, &fakeNotifier{}, workDir, destDir)

	result, err := orch.Run(context.Background(), fiscal.Month{Year: 2024, Month: 11}, []Vendor{"V1", "V2"})
	require.NoError(t, err)

	assert.Equal(t, KindUnknownFailure, result.Outcomes[0].Outcome.Kind)
	assert.Equal(t, -1, result.Outcomes[0].Outcome.ExitCode)
	assert.Equal(t, KindSuccess, result.Outcomes[1].Outcome.Kind)
}

func TestRunEmptyVendorListIsFatal(t *testing.T) {
	orch := newTestOrchestrator(t, &fakeGateway{t: t}, &fakeNotifier{}, t.TempDir(), t.TempDir())

	_, err := orch.Run(context.Background(), fiscal.Month{Year: 2024, Month: 11}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no vendors")
}

func TestRunDuplicateVendorsAreNotDeduplicated(t *testing.T) {
	workDir := t.TempDir()
	destDir := t.TempDir()

	gw := &fakeGateway{
		t:        t,
		workDir:  workDir,
		results:  map[Vendor]Invocation{"V1": {ExitCode: 0, Output: "ok"}},
		artifact: map[Vendor]bool{"V1": true},
	}
	orch := newTestOrchestrator(t, gw, &fakeNotifier{}, workDir, destDir)

	result, err := orch.Run(context.Background(), fiscal.Month{Year: 2024, Month: 11}, []Vendor{"V1", "V1"})
	require.NoError(t, err)
	assert.Len(t, result.Outcomes, 2)
	assert.Len(t, gw.requests, 2)
}

func TestRunLockExcludesConcurrentRun(t *testing.T) {
	destDir := t.TempDir()

	unlock, err := acquireRunLock(destDir)
	require.NoError(t, err)
	defer unlock()

	orch := newTestOrchestrator(t, &fakeGateway{t: t}, &fakeNotifier{}, t.TempDir(), destDir)
	_, err = orch.Run(context.Background(), fiscal.Month{Year: 2024, Month: 11}, []Vendor{"V1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in progress")
}

func TestRunLockReleasedAfterRun(t *testing.T) {
	workDir := t.TempDir()
	destDir := t.TempDir()

	gw := &fakeGateway{
		t:        t,
		workDir:  workDir,
		results:  map[Vendor]Invocation{"V1": {ExitCode: 0, Output: "ok"}},
		artifact: map[Vendor]bool{"V1": true},
	}
	orch := newTestOrchestrator(t, gw, &fakeNotifier{}, workDir, destDir)

	_, err := orch.Run(context.Background(), fiscal.Month{Year: 2024, Month: 11}, []Vendor{"V1"})
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(destDir, lockFileName))
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	orch := newTestOrchestrator(t, &fakeGateway{t: t}, &fakeNotifier{}, t.TempDir(), t.TempDir())
	_, err := orch.Run(ctx, fiscal.Month{Year: 2024, Month: 11}, []Vendor{"V1", "V2"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
