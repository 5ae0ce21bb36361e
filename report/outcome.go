package report

// Kind identifies the classified result of one report request.
type Kind int

const (
	// KindSuccess means the client exited zero and the artifact was placed.
	KindSuccess Kind = iota
	// KindNotAvailable means no report exists for the requested period.
	// Benign: it does not poison the aggregate status.
	KindNotAvailable
	// KindPending means the report has not been generated upstream yet;
	// a later re-run should pick it up.
	KindPending
	// KindAuthFailure means the client's credential or token is invalid
	// or expired. Urgent: the operator is notified.
	KindAuthFailure
	// KindUnknownFailure covers everything else, including timeouts,
	// spawn failures and missing artifacts after a zero exit.
	KindUnknownFailure
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindNotAvailable:
		return "not-available"
	case KindPending:
		return "pending"
	case KindAuthFailure:
		return "auth-failure"
	case KindUnknownFailure:
		return "unknown-failure"
	default:
		return "invalid"
	}
}

// Outcome is the terminal state of one report request. Exactly one is
// produced per vendor per run; never persisted across runs.
type Outcome struct {
	Kind Kind

	// ArtifactPath is set only for KindSuccess: the destination path the
	// report was moved to.
	ArtifactPath string

	// ExitCode is set for KindUnknownFailure.
	ExitCode int

	// Raw carries the client's combined output verbatim for
	// KindAuthFailure and KindUnknownFailure.
	Raw string
}

// Benign reports whether the outcome leaves the aggregate status at
// zero. Success and NotAvailable are the benign kinds.
func (o Outcome) Benign() bool {
	return o.Kind == KindSuccess || o.Kind == KindNotAvailable
}

// VendorOutcome pairs a vendor with its classified outcome, in
// processing order.
type VendorOutcome struct {
	Vendor  Vendor
	Outcome Outcome
}

// RunResult is the ordered record of one orchestrator run.
type RunResult struct {
	Outcomes []VendorOutcome
}

// ExitCode reduces the per-vendor outcomes to the process exit status:
// 0 only if every outcome is benign, 1 otherwise. The reduction is a
// commutative, associative fold (benign is the identity, any failure
// poisons the result), so reordering outcomes cannot change it even
// though execution order is fixed for logging.
func (r *RunResult) ExitCode() int {
	code := 0
	for _, vo := range r.Outcomes {
		if !vo.Outcome.Benign() {
			code = 1
		}
	}
	return code
}

// Failed counts the non-benign outcomes.
func (r *RunResult) Failed() int {
	n := 0
	for _, vo := range r.Outcomes {
		if !vo.Outcome.Benign() {
			n++
		}
	}
	return n
}
