package weather

import (
	"time"

	"github.com/i474232898/aerospotter/internal/airfield"
)

// Report is one raw weather report as returned by a provider.
type Report struct {
	Airport  string `json:"airport"`
	Provider string `json:"provider"`
	Raw      string `json:"raw"`

	// ObservedAt is the report time when the provider supplies one.
	ObservedAt time.Time `json:"observedAt,omitempty"`
	FetchedAt  time.Time `json:"fetchedAt"` // always UTC
}

// Snapshot is an evaluated report. Snapshots are recomputed for every
// report and never modified afterwards.
type Snapshot struct {
	ID         string              `json:"id"`
	Report     Report              `json:"report"`
	Assessment airfield.Assessment `json:"assessment"`
}

// Airport returns the code of the airport the snapshot belongs to.
func (s Snapshot) Airport() string {
	return s.Assessment.Airport
}
