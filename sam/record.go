// Package sam wraps the BAM reading and writing capabilities used to scan
// STR regions: alignment records that remember their source file, windowed
// iteration over indexed BAM files and tag-annotated output.
package sam

import (
	"github.com/biogo/hts/sam"
)

// Export original sam.Record helpers
var (
	NewTag = sam.NewTag
	NewAux = sam.NewAux
)

// Record wraps a sam.Record together with the name of the BAM file it was
// read from, which resolves the read group the record belongs to.
type Record struct {
	*sam.Record
	Filename string
}

func NewRecord(r *sam.Record, filename string) *Record {
	return &Record{r, filename}
}

func refID(ref *sam.Reference) int {
	if ref == nil {
		return -1
	}
	return ref.ID()
}

// RefID returns the reference id of the record, -1 when unmapped.
func (r *Record) RefID() int {
	return refID(r.Ref)
}

// MateRefID returns the reference id of the record's mate, -1 when the mate
// reference is undefined.
func (r *Record) MateRefID() int {
	return refID(r.MateRef)
}

// HasTag reports whether the record carries the named auxiliary tag.
func (r *Record) HasTag(name string) bool {
	_, ok := r.Tag([]byte(name))
	return ok
}

// SetTag sets the named auxiliary tag to value, removing any existing tag
// with the same name first so that repeated annotation is idempotent.
func (r *Record) SetTag(name string, value interface{}) error {
	tag := sam.NewTag(name)
	for i, aux := range r.AuxFields {
		if aux.Tag() == tag {
			r.AuxFields = append(r.AuxFields[:i], r.AuxFields[i+1:]...)
			break
		}
	}
	aux, err := sam.NewAux(tag, value)
	if err != nil {
		return err
	}
	r.AuxFields = append(r.AuxFields, aux)
	return nil
}

// AlignedSeq returns the read bases without clipped ends.
func (r *Record) AlignedSeq() []byte {
	seq := r.Seq.Expand()
	start, end := 0, len(seq)
	for _, op := range r.Cigar {
		t := op.Type()
		if t == sam.CigarSoftClipped {
			start += op.Len()
			continue
		}
		if t != sam.CigarHardClipped {
			break
		}
	}
	for i := len(r.Cigar) - 1; i >= 0; i-- {
		t := r.Cigar[i].Type()
		if t == sam.CigarSoftClipped {
			end -= r.Cigar[i].Len()
			continue
		}
		if t != sam.CigarHardClipped {
			break
		}
	}
	if start > end {
		return nil
	}
	return seq[start:end]
}
