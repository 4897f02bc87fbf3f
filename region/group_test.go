package region

import "testing"

func TestRegionGroupBounds(t *testing.T) {
	group := NewRegionGroup(mustRegion(t, "chr1", 100, 200, 4, ""))
	for i, c := range []struct {
		add         *Region
		start, stop int
	}{
		{mustRegion(t, "chr1", 150, 250, 4, ""), 100, 250},
		{mustRegion(t, "chr1", 50, 120, 4, ""), 50, 250},
		{mustRegion(t, "chr1", 110, 130, 4, ""), 50, 250},
	} {
		group.Add(c.add)
		if group.Start() != c.start || group.Stop() != c.stop {
			t.Errorf("[%d] expected bounds %d-%d, got %d-%d", i, c.start, c.stop, group.Start(), group.Stop())
		}
		members := group.Regions()
		for j := 1; j < len(members); j++ {
			if members[j].Less(members[j-1]) {
				t.Errorf("[%d] members out of order: %s before %s", i, members[j-1], members[j])
			}
		}
		min, max := members[0].Start(), members[0].Stop()
		for _, m := range members[1:] {
			if m.Start() < min {
				min = m.Start()
			}
			if m.Stop() > max {
				max = m.Stop()
			}
		}
		if group.Start() != min || group.Stop() != max {
			t.Errorf("[%d] bounds %d-%d do not match member extremes %d-%d", i, group.Start(), group.Stop(), min, max)
		}
	}
	if group.NumRegions() != 4 {
		t.Errorf("expected 4 members, got %d", group.NumRegions())
	}
}

func TestRegionGroupChromMismatch(t *testing.T) {
	for _, pair := range [][2]string{
		{"chr1", "chr2"},
		{"chr2", "chr1"},
		{"chrX", "chrY"},
	} {
		group := NewRegionGroup(mustRegion(t, pair[0], 100, 200, 4, ""))
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic adding %s region to %s group", pair[1], pair[0])
				}
			}()
			group.Add(mustRegion(t, pair[1], 100, 200, 4, ""))
		}()
	}
}

func TestGroupOverlapping(t *testing.T) {
	regions := RegionSlice{
		mustRegion(t, "chr1", 40, 50, 4, ""),
		mustRegion(t, "chr1", 10, 20, 4, ""),
		mustRegion(t, "chr1", 15, 30, 4, ""),
		mustRegion(t, "chr2", 10, 20, 4, ""),
	}
	groups := GroupOverlapping(regions)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	for i, c := range []struct {
		chrom       string
		start, stop int
		members     int
	}{
		{"chr1", 10, 30, 2},
		{"chr1", 40, 50, 1},
		{"chr2", 10, 20, 1},
	} {
		g := groups[i]
		if g.Chrom() != c.chrom || g.Start() != c.start || g.Stop() != c.stop || g.NumRegions() != c.members {
			t.Errorf("[%d] expected %s:%d-%d with %d members, got %s:%d-%d with %d",
				i, c.chrom, c.start, c.stop, c.members, g.Chrom(), g.Start(), g.Stop(), g.NumRegions())
		}
	}
}

func TestGroupOverlappingAdjacent(t *testing.T) {
	// Half-open intervals sharing a boundary do not overlap.
	regions := RegionSlice{
		mustRegion(t, "chr1", 10, 20, 4, ""),
		mustRegion(t, "chr1", 20, 30, 4, ""),
	}
	groups := GroupOverlapping(regions)
	if len(groups) != 2 {
		t.Fatalf("expected adjacent regions to stay separate, got %d groups", len(groups))
	}
}

func TestGroupOverlappingTransitive(t *testing.T) {
	regions := RegionSlice{
		mustRegion(t, "chr1", 10, 25, 4, ""),
		mustRegion(t, "chr1", 20, 40, 4, ""),
		mustRegion(t, "chr1", 35, 60, 4, ""),
	}
	groups := GroupOverlapping(regions)
	if len(groups) != 1 {
		t.Fatalf("expected a single transitively merged group, got %d", len(groups))
	}
	if groups[0].Start() != 10 || groups[0].Stop() != 60 {
		t.Errorf("expected group bounds 10-60, got %d-%d", groups[0].Start(), groups[0].Stop())
	}
}
