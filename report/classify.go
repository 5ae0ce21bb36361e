package report

import "strings"

// The client signals failure reasons only through free-text markers in
// its combined stdout/stderr; exit codes are not distinct per reason.
const (
	markerNotAvailable = "Error 213"
	markerPending      = "Error 117"
	markerTokenExpired = "Error 123"
	markerTokenInvalid = "Error 124"
)

// Classify maps the client's exit code and combined output to an
// Outcome. Rules are checked in precedence order, first match wins:
//
//  1. exit 0                  -> Success (artifact presence is the
//     orchestrator's concern, not this function's)
//  2. output has "Error 213"  -> NotAvailable
//  3. output has "Error 117"  -> Pending
//  4. output has "Error 123"
//     or "Error 124"          -> AuthFailure
//  5. anything else           -> UnknownFailure
//
// Marker matching for 2-5 deliberately ignores the exit code: the
// client may return any nonzero status for all of them.
func Classify(exitCode int, output string) Outcome {
	switch {
	case exitCode == 0:
		return Outcome{Kind: KindSuccess}
	case strings.Contains(output, markerNotAvailable):
		return Outcome{Kind: KindNotAvailable}
	case strings.Contains(output, markerPending):
		return Outcome{Kind: KindPending}
	case strings.Contains(output, markerTokenExpired), strings.Contains(output, markerTokenInvalid):
		return Outcome{Kind: KindAuthFailure, Raw: output}
	default:
		return Outcome{Kind: KindUnknownFailure, ExitCode: exitCode, Raw: output}
	}
}
