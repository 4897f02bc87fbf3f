// Package filter implements the read filtering cascade that decides which
// alignments are trustworthy evidence for genotyping an STR region.
package filter

// Config holds the thresholds of the user-controlled filters. A zero value
// disables the corresponding check; the mate-chromosome, mate-mapped and
// spanning checks are always applied.
type Config struct {
	// MaxMateDist is the maximum absolute insert size; <= 0 means unbounded.
	MaxMateDist int
	// MinFlank is the minimum number of bases the alignment must extend
	// beyond the region on both sides.
	MinFlank int
	// MinBpBeforeIndel is the minimum number of bases between each read end
	// and the nearest indel.
	MinBpBeforeIndel int
	// MaxEndMatchWindow is the window, in bases around the reported
	// placement, within which the alignment must have the unique longest
	// end-match runs.
	MaxEndMatchWindow int
	// MinEndMatch is the minimum length of the perfectly matching run
	// required at each end of the alignment.
	MinEndMatch int
	// RemoveMultimapped rejects reads carrying a secondary-alignment tag.
	RemoveMultimapped bool
}

// DefaultConfig returns the thresholds used by the command line tool when no
// flags are given.
func DefaultConfig() Config {
	return Config{
		MaxMateDist:       1000,
		MinFlank:          5,
		MinBpBeforeIndel:  7,
		MaxEndMatchWindow: 15,
		MinEndMatch:       10,
		RemoveMultimapped: false,
	}
}
