package region

import (
	"bytes"
	"compress/gzip"
	"testing"
)

var catalogData = []byte(`# STR reference panel
chr1	100	200	4	STR_1
chr1	50	180	4	STR_2
chr2	300	350	2
chr10	7	19	3	STR_4
`)

func TestReadRegions(t *testing.T) {
	regions, err := readRegions(bytes.NewReader(catalogData), "regions.bed", 0, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(regions) != 4 {
		t.Fatalf("expected 4 regions, got %d", len(regions))
	}
	if regions[0].Name() != "STR_1" || regions[0].Period() != 4 {
		t.Errorf("unexpected first region: %s name=%q period=%d", regions[0], regions[0].Name(), regions[0].Period())
	}
	if regions[2].Name() != "" {
		t.Errorf("expected empty name for unnamed region, got %q", regions[2].Name())
	}
}

func TestReadRegionsGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(catalogData); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	regions, err := readRegions(&buf, "regions.bed.gz", 0, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(regions) != 4 {
		t.Fatalf("expected 4 regions from gzip stream, got %d", len(regions))
	}
}

func TestReadRegionsMax(t *testing.T) {
	regions, err := readRegions(bytes.NewReader(catalogData), "regions.bed", 2, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions with cap, got %d", len(regions))
	}
}

func TestReadRegionsChromFilter(t *testing.T) {
	regions, err := readRegions(bytes.NewReader(catalogData), "regions.bed", 0, "chr1")
	if err != nil {
		t.Fatal(err)
	}
	if len(regions) != 2 {
		t.Fatalf("expected 2 chr1 regions, got %d", len(regions))
	}
	for _, r := range regions {
		if r.Chrom() != "chr1" {
			t.Errorf("expected chr1 region, got %s", r)
		}
	}
}

func TestReadRegionsErrors(t *testing.T) {
	for i, c := range []struct {
		line []byte
	}{
		{[]byte("chr1\t100\t200\n")},
		{[]byte("chr1\tabc\t200\t4\n")},
		{[]byte("chr1\t100\txyz\t4\n")},
		{[]byte("chr1\t100\t200\tp\n")},
		{[]byte("chr1\t200\t100\t4\n")},
		{[]byte("chr1\t100\t100\t4\n")},
	} {
		_, err := readRegions(bytes.NewReader(c.line), "regions.bed", 0, "")
		if err == nil {
			t.Errorf("[%d] expected parse error for %q", i, c.line)
			continue
		}
		if _, ok := err.(*ParseError); !ok {
			t.Errorf("[%d] expected *ParseError, got %T", i, err)
		}
	}
}

func TestReadRegionsLoadedInReverse(t *testing.T) {
	data := []byte("chr1\t100\t200\t4\nchr1\t50\t180\t4\n")
	regions, err := readRegions(bytes.NewReader(data), "regions.bed", 0, "")
	if err != nil {
		t.Fatal(err)
	}
	Order(regions)
	expected := []string{"chr1:50-180", "chr1:100-200"}
	for i, r := range regions {
		if r.String() != expected[i] {
			t.Errorf("position %d: expected %s, got %s", i, expected[i], r)
		}
	}
}
