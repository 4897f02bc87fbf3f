package strfilter

import (
	"github.com/guigolab/strfilter/sam"
)

// ReadGroups maps BAM filenames to the library label of the reads they hold.
type ReadGroups map[string]string

// Label resolves the library label for a record. Files without an entry fall
// back to their filename.
func (rg ReadGroups) Label(rec *sam.Record) string {
	if label, ok := rg[rec.Filename]; ok {
		return label
	}
	return rec.Filename
}

// Demux partitions records into per-library buckets. Labels are listed in the
// order they are first seen; every bucket keeps its records in input order.
// The label list and the parallel bucket list are handed to the genotyping
// step.
func (rg ReadGroups) Demux(records []*sam.Record) ([]string, [][]*sam.Record) {
	indices := make(map[string]int)
	var labels []string
	var buckets [][]*sam.Record
	for _, rec := range records {
		label := rg.Label(rec)
		i, ok := indices[label]
		if !ok {
			i = len(labels)
			indices[label] = i
			labels = append(labels, label)
			buckets = append(buckets, nil)
		}
		buckets[i] = append(buckets[i], rec)
	}
	return labels, buckets
}
