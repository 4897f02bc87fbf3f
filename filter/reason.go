package filter

import (
	log "github.com/sirupsen/logrus"

	"github.com/guigolab/strfilter/region"
)

// Reason classifies the outcome of running a record through the cascade:
// Pass, or the first filter the record failed.
type Reason int

const (
	Pass Reason = iota
	DiffChromMate
	UnmappedMate
	NotSpanning
	InsertSize
	Multimapped
	FlankLen
	BpBeforeIndel
	EndMatchWindow
	NumEndMatches

	numReasons
)

var reasonNames = [numReasons]string{
	"pass",
	"diff_chrom_mate",
	"unmapped_mate",
	"not_spanning",
	"insert_size",
	"multimapped",
	"flank_len",
	"bp_before_indel",
	"end_match_window",
	"num_end_matches",
}

func (r Reason) String() string {
	if r < 0 || r >= numReasons {
		return "unknown"
	}
	return reasonNames[r]
}

// Tally counts cascade outcomes for one region. The counts are diagnostic
// output only and never drive control flow.
type Tally struct {
	Processed int
	counts    [numReasons]int
}

// NewTally creates an empty Tally.
func NewTally() *Tally {
	return &Tally{}
}

// Collect records one cascade outcome.
func (t *Tally) Collect(r Reason) {
	t.Processed++
	t.counts[r]++
}

// Count returns the number of records classified with the given reason.
func (t *Tally) Count(r Reason) int {
	return t.counts[r]
}

// Passed returns the number of records that passed all enabled filters.
func (t *Tally) Passed() int {
	return t.counts[Pass]
}

// Log emits the per-region counts on the diagnostics stream.
func (t *Tally) Log(reg *region.Region) {
	fields := log.Fields{"region": reg.String(), "processed": t.Processed}
	for r := DiffChromMate; r < numReasons; r++ {
		fields[r.String()] = t.counts[r]
	}
	log.WithFields(fields).Infof("%d reads overlapped region %s, %d passed all filters", t.Processed, reg, t.Passed())
}
