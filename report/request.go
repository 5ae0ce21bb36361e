package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/halcyard/finfetch/fiscal"
)

// Vendor is the opaque account identifier under which reports are
// requested. The configured vendor list is processed in order and is
// not deduplicated.
type Vendor string

// Fixed request fields the backend expects for this deployment.
const (
	Region     = "ZZ"
	ReportType = "Financial"
)

// Request describes one report fetch for one vendor. Fully determined
// by (Vendor, fiscal.Period); built fresh per attempt and never mutated.
type Request struct {
	Vendor     Vendor
	Region     string
	ReportType string
	FiscalYear int
	Period     int
}

// NewRequest builds the request for a vendor and fiscal period.
func NewRequest(v Vendor, p fiscal.Period) Request {
	return Request{
		Vendor:     v,
		Region:     Region,
		ReportType: ReportType,
		FiscalYear: p.FiscalYear,
		Period:     p.Period,
	}
}

// ParamString is the client's fixed comma-joined parameter format:
// vendor,region,reportType,fiscalYear,period.
func (r Request) ParamString() string {
	return strings.Join([]string{
		string(r.Vendor),
		r.Region,
		r.ReportType,
		strconv.Itoa(r.FiscalYear),
		strconv.Itoa(r.Period),
	}, ",")
}

// ArtifactName is the filename the client produces in its working
// directory on success.
func (r Request) ArtifactName() string {
	return fmt.Sprintf("%s_%s_%s_%d_%d.gz", r.Vendor, r.Region, r.ReportType, r.FiscalYear, r.Period)
}
