package txd

import (
	"github.com/RemakeEngine/txdtools/pkg/logging"
	"github.com/pkg/errors"
)

// Stats summarises one parsed buffer.
type Stats struct {
	Segments       int
	BlockMarkers   int
	NameSignatures int
	Exported       int
}

// Extract scans buf and writes every texture it finds to w. The first fatal
// error stops the scan; textures written before it stay written.
func Extract(buf []byte, w Writer, log logging.Logger) (Stats, error) {
	stats := Stats{NameSignatures: CountNameSignatures(buf)}

	res, err := Scan(buf, log)
	if err != nil {
		return stats, err
	}
	stats.Segments = len(res.Segments)
	stats.BlockMarkers = res.BlockMarkers

	for i, seg := range res.Segments {
		n, err := ProcessSegment(seg, w, log)
		stats.Exported += n
		if err != nil {
			return stats, errors.WithMessagef(err, "segment %d at 0x%08X", i, seg.Start)
		}
	}

	return stats, nil
}
