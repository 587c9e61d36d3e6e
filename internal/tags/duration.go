package tags

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bogem/id3v2/v2"
	"github.com/go-audio/wav"
	goflac "github.com/go-flac/go-flac"
	gomp3 "github.com/llehouerou/go-mp3"
	mewflac "github.com/mewkiz/flac"
	mp3frames "github.com/tcolgate/mp3"
	"go.senan.xyz/taglib"
)

// ErrUnsupported is returned for files whose extension has no duration reader.
var ErrUnsupported = errors.New("unsupported format")

// Duration returns the play time of an audio file.
// Each format is tried with the cheapest reader first. When every
// format specific reader fails, TagLib audio properties are used.
func Duration(path string) (time.Duration, error) {
	var d time.Duration
	var err error

	switch ext(path) {
	case ExtMP3:
		d, err = mp3Duration(path)
	case ExtFLAC:
		d, err = flacDuration(path)
	case ExtWAV:
		d, err = wavDuration(path)
	case ExtOGG:
		d, err = oggDuration(path)
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupported, ext(path))
	}
	if err == nil {
		return d, nil
	}

	if props, perr := taglib.ReadProperties(path); perr == nil && props.Length > 0 {
		return props.Length, nil
	}
	return 0, err
}

// mp3Duration prefers the ID3v2 TLEN frame, then the decoder sample count,
// then a full frame scan for VBR files without a Xing/Info header.
func mp3Duration(path string) (time.Duration, error) {
	if d, ok := mp3TLEN(path); ok {
		return d, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if decoder, err := gomp3.NewDecoder(f); err == nil {
		if rate := decoder.SampleRate(); rate > 0 {
			if count := decoder.SampleCount(); count > 0 {
				return time.Duration(float64(count) / float64(rate) * float64(time.Second)), nil
			}
		}
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	return mp3FrameScan(f)
}

// mp3TLEN reads the length in milliseconds stored in the ID3v2 TLEN frame.
func mp3TLEN(path string) (time.Duration, bool) {
	t, err := id3v2.Open(path, id3v2.Options{Parse: true, ParseFrames: []string{"Length"}})
	if err != nil {
		return 0, false
	}
	defer t.Close()

	ms, err := strconv.ParseInt(strings.TrimSpace(t.GetTextFrame(t.CommonID("Length")).Text), 10, 64)
	if err != nil || ms <= 0 {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}

func mp3FrameScan(r io.Reader) (time.Duration, error) {
	dec := mp3frames.NewDecoder(r)
	var total time.Duration
	var skipped int
	frames := 0
	for {
		var fr mp3frames.Frame
		if err := dec.Decode(&fr, &skipped); err != nil {
			if errors.Is(err, io.EOF) || frames > 0 {
				break
			}
			return 0, fmt.Errorf("mp3: no decodable frame: %w", err)
		}
		total += fr.Duration()
		frames++
	}
	if frames == 0 {
		return 0, errors.New("mp3: no frames")
	}
	return total, nil
}

// flacDuration reads the STREAMINFO block. Files with a prepended ID3v2
// tag are not understood by go-flac and go through mewkiz/flac instead.
func flacDuration(path string) (time.Duration, error) {
	file, err := goflac.ParseFile(path)
	if err == nil {
		for _, meta := range file.Meta {
			if meta.Type != goflac.StreamInfo {
				continue
			}
			if d, ok := streamInfoDuration(meta.Data); ok {
				return d, nil
			}
		}
	}
	return flacDurationWithID3Skip(path)
}

// streamInfoDuration decodes sample rate and total samples from a raw
// STREAMINFO block.
func streamInfoDuration(data []byte) (time.Duration, bool) {
	if len(data) < 18 {
		return 0, false
	}
	// Sample rate: 20 bits starting at byte 10
	sampleRate := int64(data[10])<<12 | int64(data[11])<<4 | int64(data[12])>>4
	// Total samples: 36 bits, low nibble of byte 13 then bytes 14-17
	totalSamples := int64(data[13]&0x0F)<<32 | int64(data[14])<<24 | int64(data[15])<<16 | int64(data[16])<<8 | int64(data[17])
	if sampleRate <= 0 || totalSamples <= 0 {
		return 0, false
	}
	return time.Duration(float64(totalSamples) / float64(sampleRate) * float64(time.Second)), true
}

func flacDurationWithID3Skip(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	if err := skipID3v2(f); err != nil {
		return 0, err
	}
	stream, err := mewflac.New(f)
	if err != nil {
		return 0, err
	}
	defer stream.Close()

	info := stream.Info
	if info == nil || info.SampleRate == 0 || info.NSamples == 0 {
		return 0, errors.New("flac: stream missing sample info")
	}
	return time.Duration(float64(info.NSamples) / float64(info.SampleRate) * float64(time.Second)), nil
}

func wavDuration(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	// Decoder.Duration counts the whole file; only the data chunk is audio.
	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return 0, errors.New("wav: invalid file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return 0, fmt.Errorf("wav: %w", err)
	}
	frameSize := int64(dec.NumChans) * int64(dec.BitDepth) / 8
	if frameSize == 0 || dec.SampleRate == 0 {
		return 0, errors.New("wav: missing format info")
	}
	frames := dec.PCMLen() / frameSize
	return time.Duration(frames) * time.Second / time.Duration(dec.SampleRate), nil
}

// skipID3v2 skips an ID3v2 tag if present at the beginning of the file.
func skipID3v2(r io.ReadSeeker) error {
	header := make([]byte, 10)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	if n < 10 || string(header[0:3]) != id3Magic {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// ID3v2 size is stored as a syncsafe integer in bytes 6-9
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
