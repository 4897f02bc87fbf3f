package sam

import (
	"io"
	"os"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/bgzf/index"
	"github.com/biogo/hts/sam"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Reader provides windowed access to a coordinate-sorted, indexed BAM file.
// SetRegion positions the reader on a half-open genomic window; Next then
// yields only the records overlapping that window.
type Reader struct {
	br       *bam.Reader
	f        *os.File
	FileName string
	idx      *bam.Index
	it       *bam.Iterator
	ref      *sam.Reference
	start    int
	stop     int
	rec      *Record
	err      error
}

// NewReader opens the BAM file at path and its .bai companion index.
func NewReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open BAM file")
	}
	br, err := bam.NewReader(f, 1)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "cannot read BAM file %s", path)
	}
	i, err := os.Open(path + ".bai")
	if err != nil {
		br.Close()
		f.Close()
		return nil, errors.Wrapf(err, "cannot open BAM index for %s", path)
	}
	defer i.Close()
	idx, err := bam.ReadIndex(i)
	if err != nil {
		br.Close()
		f.Close()
		return nil, errors.Wrapf(err, "cannot read BAM index for %s", path)
	}
	return &Reader{
		br:       br,
		f:        f,
		FileName: path,
		idx:      idx,
	}, nil
}

// Header returns the BAM header.
func (r *Reader) Header() *sam.Header {
	return r.br.Header()
}

// Ref resolves a chromosome name to its BAM reference, nil if unknown.
func (r *Reader) Ref(chrom string) *sam.Reference {
	for _, ref := range r.br.Header().Refs() {
		if ref.Name() == chrom {
			return ref
		}
	}
	return nil
}

// SetRegion positions the reader on the half-open window [start,stop) of
// chrom. A window with no reads is not an error; the next call to Next simply
// returns false.
func (r *Reader) SetRegion(chrom string, start, stop int) error {
	ref := r.Ref(chrom)
	if ref == nil {
		return errors.Errorf("%s: chromosome %s not found in BAM header", r.FileName, chrom)
	}
	r.ref, r.start, r.stop = ref, start, stop
	r.it, r.rec, r.err = nil, nil, nil
	chunks, err := r.idx.Chunks(ref, start, stop)
	if err != nil {
		if err == io.EOF || err == index.ErrInvalid {
			log.Debugf("%s: no reads in %s:%d-%d", r.FileName, chrom, start, stop)
			return nil
		}
		return errors.Wrapf(err, "%s: cannot set window %s:%d-%d", r.FileName, chrom, start, stop)
	}
	it, err := bam.NewIterator(r.br, chunks)
	if err != nil {
		return errors.Wrapf(err, "%s: cannot set window %s:%d-%d", r.FileName, chrom, start, stop)
	}
	r.it = it
	return nil
}

// Next advances to the next record overlapping the active window.
func (r *Reader) Next() bool {
	if r.it == nil {
		return false
	}
	for r.it.Next() {
		rec := r.it.Record()
		if rec.Ref == nil || rec.Ref.ID() != r.ref.ID() {
			continue
		}
		if rec.Start() >= r.stop || rec.End() <= r.start {
			continue
		}
		r.rec = NewRecord(rec, r.FileName)
		return true
	}
	r.err = r.it.Error()
	r.it = nil
	return false
}

// Record returns the current record.
func (r *Reader) Record() *Record {
	return r.rec
}

// Error returns the first error encountered while iterating a window.
func (r *Reader) Error() error {
	return r.err
}

// Close releases the BAM reader and the underlying file.
func (r *Reader) Close() error {
	err := r.br.Close()
	if cerr := r.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// MultiReader scans the same genomic window across an ordered set of BAM
// files, draining them file by file. Records are tagged with the file they
// came from.
type MultiReader struct {
	readers []*Reader
	cur     int
}

// NewMultiReader opens one windowed Reader per path.
func NewMultiReader(paths ...string) (*MultiReader, error) {
	if len(paths) == 0 {
		return nil, errors.New("no BAM files given")
	}
	readers := make([]*Reader, 0, len(paths))
	for _, path := range paths {
		r, err := NewReader(path)
		if err != nil {
			for _, open := range readers {
				open.Close()
			}
			return nil, err
		}
		readers = append(readers, r)
	}
	return &MultiReader{readers: readers}, nil
}

// Header returns the header of the first BAM file.
func (m *MultiReader) Header() *sam.Header {
	return m.readers[0].Header()
}

// SetRegion positions every reader on the same half-open window.
func (m *MultiReader) SetRegion(chrom string, start, stop int) error {
	for _, r := range m.readers {
		if err := r.SetRegion(chrom, start, stop); err != nil {
			return err
		}
	}
	m.cur = 0
	return nil
}

// Next advances to the next record in the active window, moving on to the
// next file once the current one is exhausted.
func (m *MultiReader) Next() bool {
	for m.cur < len(m.readers) {
		r := m.readers[m.cur]
		if r.Next() {
			return true
		}
		if r.Error() != nil {
			return false
		}
		m.cur++
	}
	return false
}

// Record returns the current record.
func (m *MultiReader) Record() *Record {
	return m.readers[m.cur].Record()
}

// Error returns the first iteration error across the readers.
func (m *MultiReader) Error() error {
	for _, r := range m.readers {
		if err := r.Error(); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all readers, returning the first error.
func (m *MultiReader) Close() error {
	var err error
	for _, r := range m.readers {
		if cerr := r.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
