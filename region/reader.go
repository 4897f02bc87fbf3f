package region

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"io"

	"github.com/pkg/errors"
)

// checkBytes peeks at a buffered stream and checks if the first read bytes match.
func checkBytes(b *bufio.Reader, buf []byte) (bool, error) {
	m, err := b.Peek(len(buf))
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	for i := range buf {
		if m[i] != buf[i] {
			return false, nil
		}
	}
	return true, nil
}

// isGzip returns true if the buffered Reader has the gzip magic
func isGzip(b *bufio.Reader) (bool, error) {
	return checkBytes(b, []byte{0x1f, 0x8b})
}

// isBzip2 returns true if the buffered Reader has the bzip2 magic
func isBzip2(b *bufio.Reader) (bool, error) {
	return checkBytes(b, []byte{0x42, 0x5a})
}

// buffReader wraps r in a bufio.Reader, transparently decompressing gzip and
// bzip2 streams.
func buffReader(r io.Reader) (*bufio.Reader, error) {
	br := bufio.NewReader(r)
	if isGz, err := isGzip(br); err != nil {
		return nil, errors.Wrap(err, "cannot sniff region stream")
	} else if isGz {
		rdr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "cannot open gzip region stream")
		}
		br = bufio.NewReader(rdr)
	} else if isBz, err := isBzip2(br); err != nil {
		return nil, errors.Wrap(err, "cannot sniff region stream")
	} else if isBz {
		br = bufio.NewReader(bzip2.NewReader(br))
	}
	return br, nil
}
