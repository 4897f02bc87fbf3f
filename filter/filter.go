package filter

import (
	"github.com/guigolab/strfilter/region"
	"github.com/guigolab/strfilter/sam"
)

// multimapTag marks reads with alternative alignment locations.
const multimapTag = "XA"

// Cascade applies the filter predicates to candidate alignments of one
// region. The evaluation order is fixed: a record failing several filters is
// attributed to the first one in the order below.
type Cascade struct {
	cfg Config
}

// NewCascade creates a Cascade with the given thresholds.
func NewCascade(cfg Config) *Cascade {
	return &Cascade{cfg: cfg}
}

// Config returns the cascade thresholds.
func (c *Cascade) Config() Config {
	return c.cfg
}

// Apply classifies one alignment against the active region. ref must hold the
// full sequence of the region's chromosome.
func (c *Cascade) Apply(rec *sam.Record, reg *region.Region, ref []byte) Reason {
	// Reject the read if its mate pair chromosome doesn't match.
	if rec.RefID() != rec.MateRefID() {
		return DiffChromMate
	}
	// Reject the read if its mate pair is unmapped.
	if rec.TempLen == 0 {
		return UnmappedMate
	}
	// Reject the read if it does not span the STR.
	if rec.Start() > reg.Start() || rec.End() < reg.Stop() {
		return NotSpanning
	}
	// Reject the read if its mate pair distance exceeds the threshold.
	if c.cfg.MaxMateDist > 0 && abs(rec.TempLen) > c.cfg.MaxMateDist {
		return InsertSize
	}
	// Reject multimapping reads if requested.
	if c.cfg.RemoveMultimapped && rec.HasTag(multimapTag) {
		return Multimapped
	}
	// Reject the read if it has insufficient flanking bases on either side
	// of the STR.
	if c.cfg.MinFlank > 0 && (rec.Start() > reg.Start()-c.cfg.MinFlank || rec.End() < reg.Stop()+c.cfg.MinFlank) {
		return FlankLen
	}
	// Reject the read if there is an indel too close to either read end.
	if c.cfg.MinBpBeforeIndel > 0 {
		left, right := endIndelDists(rec)
		if (left != -1 && left < c.cfg.MinBpBeforeIndel) || (right != -1 && right < c.cfg.MinBpBeforeIndel) {
			return BpBeforeIndel
		}
	}
	// Reject the read if a nearby placement has end matches at least as
	// long as the reported one.
	if c.cfg.MaxEndMatchWindow > 0 && !hasMaximalEndMatches(rec, ref, c.cfg.MaxEndMatchWindow) {
		return EndMatchWindow
	}
	// Reject the read if it doesn't match the reference perfectly for long
	// enough on each end.
	if c.cfg.MinEndMatch > 0 {
		left, right := endMatches(rec, ref)
		if left < c.cfg.MinEndMatch || right < c.cfg.MinEndMatch {
			return NumEndMatches
		}
	}
	return Pass
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
