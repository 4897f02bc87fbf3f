// Package fasta reads reference sequences from FASTA files and caches the
// sequence of the chromosome being processed.
package fasta

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const maxLineSize = 1024 * 1024

// Read parses FASTA data into a map of sequence name to sequence. Sequence
// names are the characters following '>' up to the first space.
func Read(r io.Reader) (map[string][]byte, error) {
	seqs := make(map[string][]byte)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, maxLineSize)
	var name string
	var seq bytes.Buffer
	store := func() error {
		if seq.Len() == 0 {
			return nil
		}
		if name == "" {
			return errors.New("malformed FASTA data: sequence without a header")
		}
		seqs[name] = append([]byte(nil), seq.Bytes()...)
		seq.Reset()
		return nil
	}
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if err := store(); err != nil {
				return nil, err
			}
			name = strings.SplitN(string(line[1:]), " ", 2)[0]
			if name == "" {
				return nil, errors.New("malformed FASTA data: empty sequence name")
			}
			continue
		}
		seq.Write(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "cannot read FASTA data")
	}
	if err := store(); err != nil {
		return nil, err
	}
	if len(seqs) == 0 {
		return nil, errors.New("no sequences found in FASTA data")
	}
	return seqs, nil
}

// ReadFile parses the FASTA file at path.
func ReadFile(path string) (map[string][]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open FASTA file")
	}
	defer f.Close()
	seqs, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse FASTA file %s", path)
	}
	return seqs, nil
}

// Cache holds the reference sequence of a single chromosome, read from a
// per-chromosome FASTA file in a directory. The cached sequence is replaced
// wholesale when a different chromosome is requested, which keeps memory
// bounded to one chromosome while regions are processed in chromosome order.
type Cache struct {
	dir   string
	chrom string
	seq   []byte
}

// NewCache creates a Cache reading <chrom>.fa files from dir.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Ensure makes the sequence of chrom the active buffer, loading it from
// <dir>/<chrom>.fa unless it is already cached.
func (c *Cache) Ensure(chrom string) error {
	if c.chrom == chrom {
		return nil
	}
	path := filepath.Join(c.dir, chrom+".fa")
	log.Infof("Reading FASTA file for %s", chrom)
	seqs, err := ReadFile(path)
	if err != nil {
		return err
	}
	seq, ok := seqs[chrom]
	if !ok {
		return errors.Errorf("FASTA file %s does not contain sequence %s", path, chrom)
	}
	c.chrom = chrom
	c.seq = seq
	return nil
}

// Chrom returns the name of the cached chromosome, or the empty string when
// nothing has been loaded yet.
func (c *Cache) Chrom() string {
	return c.chrom
}

// Seq returns the sequence of the cached chromosome.
func (c *Cache) Seq() []byte {
	return c.seq
}
