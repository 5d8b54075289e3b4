package txd

import (
	"bytes"

	"github.com/RemakeEngine/txdtools/pkg/logging"
	"github.com/pkg/errors"
)

// Segment is a contiguous region of a file expected to hold texture entries.
type Segment struct {
	Start int64 // absolute offset of Data[0] in the file
	Data  []byte
}

// ScanResult is the output of Scan.
type ScanResult struct {
	Segments []Segment

	// BlockMarkers counts block-start markers outside the EOF sentinel.
	// It is informational only.
	BlockMarkers int

	// EOFOffset is the absolute offset of the EOF sentinel.
	EOFOffset int
}

type scanner struct {
	buf    []byte
	eof    int
	eofEnd int
	log    logging.Logger
}

// Scan partitions buf into segments bounded by the file-start, block-start
// and EOF sentinel patterns.
func Scan(buf []byte, log logging.Logger) (*ScanResult, error) {
	eofs := findEOFSentinels(buf)
	switch {
	case len(eofs) == 0:
		return nil, errors.WithStack(ErrEOFNotFound)
	case len(eofs) > 1:
		return nil, errors.Wrapf(ErrEOFAmbiguous, "%d occurrences, first at 0x%X", len(eofs), eofs[0])
	}

	s := &scanner{buf: buf, eof: eofs[0], eofEnd: eofs[0] + EOFSentinelLen, log: log}
	res := &ScanResult{EOFOffset: s.eof, BlockMarkers: s.countBlockMarkers()}
	log.Debugf("EOF sentinel at 0x%08X, %d block markers", s.eof, res.BlockMarkers)

	hasFileStart := bytes.HasPrefix(buf, FileStartMarker)
	pos := 0
	if hasFileStart {
		start := len(FileStartMarker)
		end := s.boundary(start)
		s.add(res, start, end)
		pos = start
	}

	for {
		marker := s.nextBlockMarker(pos)
		if marker < 0 {
			break
		}
		start := marker + len(BlockStartMarker)
		s.add(res, start, s.boundary(start))
		pos = start
	}

	if len(res.Segments) == 0 && hasFileStart && len(buf) > FallbackOffset {
		log.Warnf("no segments between markers, falling back to alternate layout at 0x%02X", FallbackOffset)
		res.Segments = append(res.Segments, Segment{Start: FallbackOffset, Data: buf[FallbackOffset:]})
	}

	if len(res.Segments) == 0 {
		return nil, errors.WithStack(ErrNoSegments)
	}

	return res, nil
}

// add appends buf[start:end] as a segment unless it is empty.
func (s *scanner) add(res *ScanResult, start, end int) {
	if end <= start {
		s.log.Debugf("skipping empty segment at 0x%08X", start)
		return
	}
	res.Segments = append(res.Segments, Segment{Start: int64(start), Data: s.buf[start:end]})
}

// boundary returns where a segment starting at from ends: the nearer of the
// next block-start marker and the EOF sentinel, else end of buffer.
func (s *scanner) boundary(from int) int {
	end := -1
	if marker := s.nextBlockMarker(from); marker >= 0 {
		end = marker
	}
	if s.eof >= from && (end < 0 || s.eof < end) {
		end = s.eof
	}
	if end < 0 {
		s.log.Warnf("segment at 0x%08X has no closing marker, reading to end of file", from)
		end = len(s.buf)
	}
	return end
}

// nextBlockMarker finds the next block-start marker at or after from that
// is not part of the EOF sentinel.
func (s *scanner) nextBlockMarker(from int) int {
	for from < len(s.buf) {
		rel := bytes.Index(s.buf[from:], BlockStartMarker)
		if rel < 0 {
			return -1
		}
		at := from + rel
		if at+len(BlockStartMarker) > s.eof && at < s.eofEnd {
			from = at + 1
			continue
		}
		return at
	}
	return -1
}

func (s *scanner) countBlockMarkers() int {
	n := 0
	for pos := s.nextBlockMarker(0); pos >= 0; pos = s.nextBlockMarker(pos + 1) {
		n++
	}
	return n
}
