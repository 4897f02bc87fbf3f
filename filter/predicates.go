package filter

import (
	htsam "github.com/biogo/hts/sam"

	"github.com/guigolab/strfilter/sam"
)

// endIndelDists returns the distance, in read bases, from each end of the
// alignment to the nearest indel. -1 means no indel on that side.
func endIndelDists(rec *sam.Record) (left, right int) {
	left, right = -1, -1
	pos := 0
	for _, op := range rec.Cigar {
		t := op.Type()
		if t == htsam.CigarInsertion || t == htsam.CigarDeletion {
			left = pos
			break
		}
		if t.Consumes().Query == 1 {
			pos += op.Len()
		}
	}
	pos = 0
	for i := len(rec.Cigar) - 1; i >= 0; i-- {
		t := rec.Cigar[i].Type()
		if t == htsam.CigarInsertion || t == htsam.CigarDeletion {
			right = pos
			break
		}
		if t.Consumes().Query == 1 {
			pos += rec.Cigar[i].Len()
		}
	}
	return left, right
}

// endMatches returns the length of the perfectly matching run between the
// read and the reference from each end of the alignment. The run starts at
// the first aligned base and ends at the first mismatch, indel or clipped
// base. An alignment extending past the reference yields (-1, -1).
func endMatches(rec *sam.Record, ref []byte) (int, int) {
	if rec.Pos < 0 || rec.End() > len(ref) {
		return -1, -1
	}
	seq := rec.Seq.Expand()

	left := 0
	readPos, refPos := 0, rec.Pos
leftScan:
	for _, op := range rec.Cigar {
		switch op.Type() {
		case htsam.CigarSoftClipped:
			if left > 0 {
				break leftScan
			}
			readPos += op.Len()
		case htsam.CigarHardClipped, htsam.CigarPadded:
		case htsam.CigarMatch, htsam.CigarEqual, htsam.CigarMismatch:
			for i := 0; i < op.Len(); i++ {
				if !baseEqual(seq[readPos], ref[refPos]) {
					break leftScan
				}
				left++
				readPos++
				refPos++
			}
		default:
			break leftScan
		}
	}

	right := 0
	readPos, refPos = len(seq)-1, rec.End()-1
rightScan:
	for i := len(rec.Cigar) - 1; i >= 0; i-- {
		op := rec.Cigar[i]
		switch op.Type() {
		case htsam.CigarSoftClipped:
			if right > 0 {
				break rightScan
			}
			readPos -= op.Len()
		case htsam.CigarHardClipped, htsam.CigarPadded:
		case htsam.CigarMatch, htsam.CigarEqual, htsam.CigarMismatch:
			for j := 0; j < op.Len(); j++ {
				if !baseEqual(seq[readPos], ref[refPos]) {
					break rightScan
				}
				right++
				readPos--
				refPos--
			}
		default:
			break rightScan
		}
	}
	return left, right
}

// hasMaximalEndMatches reports whether the reported placement of the read has
// strictly longer end-match runs than every alternative placement within
// +/- window bases. Ties mean the placement is ambiguous.
func hasMaximalEndMatches(rec *sam.Record, ref []byte, window int) bool {
	seq := rec.AlignedSeq()
	if len(seq) == 0 {
		return false
	}
	start, end := rec.Pos, rec.End()

	best := prefixMatch(seq, ref, start)
	for d := -window; d <= window; d++ {
		if d == 0 {
			continue
		}
		if prefixMatch(seq, ref, start+d) >= best {
			return false
		}
	}

	best = suffixMatch(seq, ref, end)
	for d := -window; d <= window; d++ {
		if d == 0 {
			continue
		}
		if suffixMatch(seq, ref, end+d) >= best {
			return false
		}
	}
	return true
}

// prefixMatch counts how many leading bases of seq match the reference when
// seq is placed at pos.
func prefixMatch(seq, ref []byte, pos int) int {
	if pos < 0 || pos >= len(ref) {
		return 0
	}
	n := 0
	for n < len(seq) && pos+n < len(ref) && baseEqual(seq[n], ref[pos+n]) {
		n++
	}
	return n
}

// suffixMatch counts how many trailing bases of seq match the reference when
// the placement ends at the exclusive position end.
func suffixMatch(seq, ref []byte, end int) int {
	if end <= 0 || end > len(ref) {
		return 0
	}
	n := 0
	for n < len(seq) && end-1-n >= 0 && baseEqual(seq[len(seq)-1-n], ref[end-1-n]) {
		n++
	}
	return n
}

func baseEqual(a, b byte) bool {
	return toUpper(a) == toUpper(b)
}

func toUpper(b byte) byte {
	if 'a' <= b && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
