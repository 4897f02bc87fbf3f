package sam

import (
	"fmt"
	"os"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/pkg/errors"

	"github.com/guigolab/strfilter/region"
)

// tool identifies this program in the provenance tag of annotated records.
const tool = "strfilter"

// Annotate tags rec with its provenance and the boundaries of the region it
// spans: an RG tag of the form "<tool>;<library>;<library>", an XS tag with
// the region start and an XE tag with the region stop. Existing tags with the
// same names are replaced, so annotating a record twice is safe.
//
// The duplicated library field in the RG value is the format downstream
// consumers expect.
func Annotate(rec *Record, label string, reg *region.Region) error {
	rg := fmt.Sprintf("%s;%s;%s", tool, label, label)
	if err := rec.SetTag("RG", rg); err != nil {
		return errors.Wrapf(err, "cannot set RG tag on %s", rec.Name)
	}
	if err := rec.SetTag("XS", int32(reg.Start())); err != nil {
		return errors.Wrapf(err, "cannot set XS tag on %s", rec.Name)
	}
	if err := rec.SetTag("XE", int32(reg.Stop())); err != nil {
		return errors.Wrapf(err, "cannot set XE tag on %s", rec.Name)
	}
	return nil
}

// Writer re-emits surviving alignments to a BAM file with provenance and
// region-boundary annotations.
type Writer struct {
	bw *bam.Writer
	f  *os.File
}

// NewWriter creates an annotated BAM output file carrying the given header.
func NewWriter(path string, h *sam.Header) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create output BAM file")
	}
	bw, err := bam.NewWriter(f, h, 1)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "cannot write BAM header to %s", path)
	}
	return &Writer{bw, f}, nil
}

// WriteAnnotated annotates rec for the given library label and region and
// writes it out. Failures are fatal to the run: the caller is writing a
// validated stream and must not continue past a partial write.
func (w *Writer) WriteAnnotated(rec *Record, label string, reg *region.Region) error {
	if err := Annotate(rec, label, reg); err != nil {
		return err
	}
	if err := w.bw.Write(rec.Record); err != nil {
		return errors.Wrapf(err, "cannot save spanning read %s", rec.Name)
	}
	return nil
}

// Close flushes and closes the output file.
func (w *Writer) Close() error {
	err := w.bw.Close()
	if cerr := w.f.Close(); err == nil {
		err = cerr
	}
	return err
}
