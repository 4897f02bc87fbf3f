// Package region provides the target interval model for STR loci and the
// catalog operations used to load, order and group them.
package region

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"
	log "github.com/sirupsen/logrus"
)

// Region represents a single STR target interval on a chromosome. Stop is an
// exclusive upper bound and must be greater than Start.
type Region struct {
	chrom, name string
	start, stop int
	period      int
}

// NewRegion returns a new Region. It fails if stop is not greater than start.
func NewRegion(chrom string, start, stop, period int, name string) (*Region, error) {
	if stop <= start {
		return nil, fmt.Errorf("region %s:%d-%d: stop must be greater than start", chrom, start, stop)
	}
	return &Region{
		chrom:  chrom,
		name:   name,
		start:  start,
		stop:   stop,
		period: period,
	}, nil
}

// Chrom returns the chromosome of the region
func (r *Region) Chrom() string {
	return r.chrom
}

// Name returns the name of the region
func (r *Region) Name() string {
	return r.name
}

// Start returns the start position of the region
func (r *Region) Start() int {
	return r.start
}

// Stop returns the stop position of the region
func (r *Region) Stop() int {
	return r.stop
}

// Period returns the repeat unit length of the region
func (r *Region) Period() int {
	return r.period
}

// SetStart widens the region boundary. Used during grouping only.
func (r *Region) SetStart(start int) {
	r.start = start
}

// SetStop widens the region boundary. Used during grouping only.
func (r *Region) SetStop(stop int) {
	r.stop = stop
}

// Copy returns an independent copy of the region.
func (r *Region) Copy() *Region {
	c := *r
	return &c
}

func (r *Region) String() string {
	return fmt.Sprintf("%s:%d-%d", r.chrom, r.start, r.stop)
}

// Less reports whether r sorts before other in the canonical region order:
// chromosome, then start, then stop.
func (r *Region) Less(other *Region) bool {
	if r.chrom != other.chrom {
		return r.chrom < other.chrom
	}
	if r.start != other.start {
		return r.start < other.start
	}
	return r.stop < other.stop
}

// Bounds makes Region implement rtreego.Spatial so that regions can be put
// into an interval index for overlap queries.
func (r *Region) Bounds() *rtreego.Rect {
	loc := rtreego.Point{float64(r.start)}
	rect, err := rtreego.NewRect(loc, []float64{float64(r.stop - r.start)})
	if err != nil {
		log.Panic(err)
	}
	return rect
}

// RegionSlice represents a slice of Region, sortable by the canonical order
type RegionSlice []*Region

func (s RegionSlice) Len() int {
	return len(s)
}
func (s RegionSlice) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}
func (s RegionSlice) Less(i, j int) bool {
	return s[i].Less(s[j])
}

// Order sorts regions in place by chromosome, start and stop.
func Order(regions RegionSlice) {
	sort.Stable(regions)
}

// OrderByChrom sorts regions and buckets them per chromosome, ranked by the
// supplied chromosome priority map. A region whose chromosome is missing from
// the map is an error.
func OrderByChrom(regions RegionSlice, chromOrder map[string]int) ([]RegionSlice, error) {
	out := make([]RegionSlice, len(chromOrder))
	for _, r := range regions {
		rank, ok := chromOrder[r.chrom]
		if !ok {
			return nil, fmt.Errorf("region %s: chromosome %s not in chromosome order", r, r.chrom)
		}
		if rank < 0 || rank >= len(out) {
			return nil, fmt.Errorf("region %s: chromosome rank %d out of range", r, rank)
		}
		out[rank] = append(out[rank], r)
	}
	for _, chromRegions := range out {
		Order(chromRegions)
	}
	return out, nil
}
