package region

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	log "github.com/sirupsen/logrus"
)

// RegionGroup holds a set of overlapping regions on a single chromosome. Its
// boundaries always span the union of its members.
type RegionGroup struct {
	regions RegionSlice
	chrom   string
	start   int
	stop    int
}

// NewRegionGroup creates a group seeded with a single region.
func NewRegionGroup(r *Region) *RegionGroup {
	return &RegionGroup{
		regions: RegionSlice{r.Copy()},
		chrom:   r.Chrom(),
		start:   r.Start(),
		stop:    r.Stop(),
	}
}

// Chrom returns the chromosome of the group
func (g *RegionGroup) Chrom() string {
	return g.chrom
}

// Start returns the minimum start over the group members
func (g *RegionGroup) Start() int {
	return g.start
}

// Stop returns the maximum stop over the group members
func (g *RegionGroup) Stop() int {
	return g.stop
}

// Regions returns the group members sorted by the canonical region order.
func (g *RegionGroup) Regions() RegionSlice {
	return g.regions
}

// NumRegions returns the number of group members.
func (g *RegionGroup) NumRegions() int {
	return len(g.regions)
}

// Add merges a region into the group, widening the group boundaries and
// keeping the members sorted. Regions from another chromosome are a usage
// error: callers must partition by chromosome before grouping.
func (g *RegionGroup) Add(r *Region) {
	if r.Chrom() != g.chrom {
		log.Panicf("region group on %s cannot hold region %s: groups span a single chromosome", g.chrom, r)
	}
	if r.Start() < g.start {
		g.start = r.Start()
	}
	if r.Stop() > g.stop {
		g.stop = r.Stop()
	}
	g.regions = append(g.regions, r.Copy())
	sort.Stable(g.regions)
}

// overlaps reports half-open interval overlap with the group boundaries.
func (g *RegionGroup) overlaps(r *Region) bool {
	return r.Start() < g.stop && g.start < r.Stop()
}

// GroupOverlapping clusters regions that overlap transitively on the same
// chromosome into RegionGroups. It builds one interval index per chromosome
// and grows each group by overlap queries until closure. The input is not
// required to be sorted; the returned groups follow the canonical region
// order of their seeds.
func GroupOverlapping(regions RegionSlice) []*RegionGroup {
	if len(regions) == 0 {
		return nil
	}
	sorted := make(RegionSlice, len(regions))
	copy(sorted, regions)
	Order(sorted)

	trees := make(map[string]*rtreego.Rtree)
	byChrom := make(map[string][]rtreego.Spatial)
	for _, r := range sorted {
		byChrom[r.Chrom()] = append(byChrom[r.Chrom()], r)
	}
	for chrom, rs := range byChrom {
		trees[chrom] = rtreego.NewTree(1, 25, 50, rs...)
	}

	grouped := make(map[*Region]bool, len(sorted))
	var groups []*RegionGroup
	for _, seed := range sorted {
		if grouped[seed] {
			continue
		}
		grouped[seed] = true
		group := NewRegionGroup(seed)
		tree := trees[seed.Chrom()]
		for {
			extended := false
			for _, hit := range queryIndex(tree, group.start, group.stop) {
				r := hit.(*Region)
				if grouped[r] || !group.overlaps(r) {
					continue
				}
				grouped[r] = true
				group.Add(r)
				extended = true
			}
			if !extended {
				break
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// queryIndex performs a SearchIntersect on the index for the given interval.
func queryIndex(index *rtreego.Rtree, begin, end int) []rtreego.Spatial {
	loc := rtreego.Point{float64(begin)}
	bb, err := rtreego.NewRect(loc, []float64{float64(end - begin)})
	if err != nil {
		log.Panic(err)
	}
	return index.SearchIntersect(bb)
}
