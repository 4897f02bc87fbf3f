package region

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ParseError describes a malformed line in a region definition file.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// Read loads all region definitions from a TAB-separated file with the
// columns chrom, start, stop, period and an optional name. Gzip and bzip2
// compressed files are handled transparently.
func Read(path string) (RegionSlice, error) {
	return ReadFiltered(path, 0, "")
}

// ReadFiltered loads region definitions from path, keeping at most maxRegions
// regions (0 means no cap) and, when chrom is non-empty, only regions on that
// chromosome.
func ReadFiltered(path string, maxRegions int, chrom string) (RegionSlice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open region file")
	}
	defer f.Close()
	return readRegions(f, path, maxRegions, chrom)
}

func readRegions(r io.Reader, name string, maxRegions int, chrom string) (RegionSlice, error) {
	br, err := buffReader(r)
	if err != nil {
		return nil, err
	}

	var regions RegionSlice
	scanner := bufio.NewScanner(br)
	line := 0
	for scanner.Scan() {
		line++
		if maxRegions > 0 && len(regions) == maxRegions {
			log.Debugf("%s: region cap of %d reached, skipping remaining lines", name, maxRegions)
			break
		}
		reg, err := parseRegion(scanner.Bytes(), name, line)
		if err != nil {
			return nil, err
		}
		if reg == nil {
			continue
		}
		if chrom != "" && reg.Chrom() != chrom {
			continue
		}
		regions = append(regions, reg)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "cannot read region file %s", name)
	}
	return regions, nil
}

// parseRegion parses one region line. Blank lines and comments yield a nil
// region and no error.
func parseRegion(b []byte, name string, line int) (*Region, error) {
	if len(b) == 0 || b[0] == '#' {
		return nil, nil
	}
	fields := bytes.Split(b, []byte{'\t'})
	if len(fields) < 4 {
		return nil, &ParseError{name, line, fmt.Sprintf("expected at least 4 TAB-separated fields, got %d", len(fields))}
	}
	start, err := strconv.Atoi(string(fields[1]))
	if err != nil {
		return nil, &ParseError{name, line, fmt.Sprintf("bad start position %q", fields[1])}
	}
	stop, err := strconv.Atoi(string(fields[2]))
	if err != nil {
		return nil, &ParseError{name, line, fmt.Sprintf("bad stop position %q", fields[2])}
	}
	period, err := strconv.Atoi(string(fields[3]))
	if err != nil {
		return nil, &ParseError{name, line, fmt.Sprintf("bad repeat period %q", fields[3])}
	}
	var regName string
	if len(fields) > 4 {
		regName = string(fields[4])
	}
	reg, err := NewRegion(string(fields[0]), start, stop, period, regName)
	if err != nil {
		return nil, &ParseError{name, line, err.Error()}
	}
	return reg, nil
}
