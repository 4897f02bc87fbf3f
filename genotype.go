package strfilter

import (
	"github.com/guigolab/strfilter/region"
	"github.com/guigolab/strfilter/sam"
)

// Genotyper consumes the filtered evidence for one region: an ordered list of
// library labels and one bucket of alignments per label.
type Genotyper interface {
	Genotype(reg *region.Region, labels []string, buckets [][]*sam.Record) error
}

// NoopGenotyper discards the evidence. It stands in for the downstream
// genotyping step.
type NoopGenotyper struct{}

func (NoopGenotyper) Genotype(*region.Region, []string, [][]*sam.Record) error {
	return nil
}
