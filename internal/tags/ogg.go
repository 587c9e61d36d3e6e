package tags

import (
	"encoding/binary"
	"errors"
	"io"
	"os"
	"time"

	"github.com/jfreymuth/vorbis"
)

var (
	errInvalidOggMagic = errors.New("ogg: invalid capture pattern")
	errNoOggGranule    = errors.New("ogg: could not determine duration")
)

// oggTailSize is how much of the end of the file is searched for the last page.
const oggTailSize = 64 * 1024

// oggDuration divides the granule position of the last page by the
// sample rate announced in the Vorbis identification header.
func oggDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	packet, err := readFirstOggPacket(f)
	if err != nil {
		return 0, err
	}
	var dec vorbis.Decoder
	if err := dec.ReadHeader(packet); err != nil {
		return 0, err
	}
	sampleRate := dec.SampleRate()
	if sampleRate <= 0 {
		return 0, errors.New("vorbis: invalid sample rate")
	}

	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}
	size := min(int64(oggTailSize), fi.Size())
	if _, err := f.Seek(-size, io.SeekEnd); err != nil {
		return 0, err
	}
	buf := make([]byte, size)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, err
	}

	granule, ok := lastGranule(buf[:n])
	if !ok {
		return 0, errNoOggGranule
	}
	return time.Duration(float64(granule) / float64(sampleRate) * float64(time.Second)), nil
}

// readFirstOggPacket returns the first packet of the first page, which
// holds the codec identification header.
func readFirstOggPacket(r io.Reader) ([]byte, error) {
	var hdr [27]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	if string(hdr[0:4]) != "OggS" {
		return nil, errInvalidOggMagic
	}

	segments := make([]byte, hdr[26])
	if _, err := io.ReadFull(r, segments); err != nil {
		return nil, err
	}

	// A packet ends on the first lacing value below 255.
	size := 0
	for _, s := range segments {
		size += int(s)
		if s < 255 {
			break
		}
	}

	packet := make([]byte, size)
	if _, err := io.ReadFull(r, packet); err != nil {
		return nil, err
	}
	return packet, nil
}

// lastGranule searches buf backwards for the last page header with a
// valid granule position.
func lastGranule(buf []byte) (int64, bool) {
	for i := len(buf) - 27; i >= 0; i-- {
		if buf[i] != 'O' || buf[i+1] != 'g' || buf[i+2] != 'g' || buf[i+3] != 'S' {
			continue
		}
		granule := int64(binary.LittleEndian.Uint64(buf[i+6 : i+14]))
		if granule > 0 {
			return granule, true
		}
	}
	return 0, false
}
