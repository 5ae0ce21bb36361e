// Package notify delivers operator notifications for authentication
// failures. A stale token affects every vendor equally, so the operator
// hears about it once per affected invocation, with the client's raw
// output attached for diagnosis.
package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/halcyard/finfetch/report"
)

// LogNotifier is the fallback when mail is not configured: the
// notification becomes an error-level log line.
type LogNotifier struct {
	log *zap.SugaredLogger
}

func NewLogNotifier(log *zap.SugaredLogger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) AuthFailure(_ context.Context, vendor report.Vendor, raw string) error {
	n.log.Errorw("Operator notification (mail not configured)",
		"vendor", vendor,
		"reason", "authentication failure",
		"output", raw,
	)
	return nil
}
