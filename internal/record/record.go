// Package record stores and replays sandbox frames as a zstd-compressed
// stream: a single JSON header line followed by one raw buffer per frame.
package record

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"falling-sand/internal/core"
)

// Version is the current recording format version.
const Version = 1

// MaxSide bounds each frame dimension so a header cannot ask for a frame
// larger than memory can hold.
const MaxSide = 1 << 14

// ErrBadHeader reports a recording whose header cannot be used.
var ErrBadHeader = errors.New("record: bad header")

// Header describes the frames that follow it.
type Header struct {
	Version int `json:"version"`
	Width   int `json:"width"`
	Height  int `json:"height"`
}

func (h Header) frameLen() int { return h.Width * h.Height }

func (h Header) validate() error {
	switch {
	case h.Version != Version:
		return fmt.Errorf("%w: version %d", ErrBadHeader, h.Version)
	case h.Width <= 0 || h.Height <= 0 || h.Width > MaxSide || h.Height > MaxSide:
		return fmt.Errorf("%w: size %dx%d outside 1..%d", ErrBadHeader, h.Width, h.Height, MaxSide)
	}
	return nil
}

// Writer appends frames to a recording. It is not safe for concurrent use.
type Writer struct {
	hdr    Header
	enc    *zstd.Encoder
	w      *bufio.Writer
	closer io.Closer
	frames int
}

// NewWriter writes the header for a grid of the given size to dst and returns
// a Writer for its frames. Closing the Writer does not close dst.
func NewWriter(dst io.Writer, size core.Size) (*Writer, error) {
	hdr := Header{Version: Version, Width: size.W, Height: size.H}
	if err := hdr.validate(); err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)
	hb, _ := json.Marshal(hdr)
	if _, err := bw.Write(hb); err != nil {
		enc.Close()
		return nil, err
	}
	if err := bw.WriteByte('\n'); err != nil {
		enc.Close()
		return nil, err
	}
	return &Writer{hdr: hdr, enc: enc, w: bw}, nil
}

// Create opens path for writing, creating parent directories as needed.
func Create(path string, size core.Size) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f, size)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// WriteFrame appends one buffer. Its length must match the header size.
func (w *Writer) WriteFrame(cells []uint8) error {
	if len(cells) != w.hdr.frameLen() {
		return fmt.Errorf("record: frame has %d cells, want %d", len(cells), w.hdr.frameLen())
	}
	if _, err := w.w.Write(cells); err != nil {
		return err
	}
	w.frames++
	return nil
}

// Frames returns the number of frames written so far.
func (w *Writer) Frames() int { return w.frames }

// Close flushes buffered frames and finishes the zstd stream.
func (w *Writer) Close() error {
	err := w.w.Flush()
	if cerr := w.enc.Close(); err == nil {
		err = cerr
	}
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Reader iterates over the frames of a recording.
type Reader struct {
	hdr    Header
	dec    *zstd.Decoder
	r      *bufio.Reader
	closer io.Closer
}

// NewReader decodes the header from src.
func NewReader(src io.Reader) (*Reader, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, err
	}
	br := bufio.NewReaderSize(dec, 256*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		dec.Close()
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	var hdr Header
	if err := json.Unmarshal(line, &hdr); err != nil {
		dec.Close()
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if err := hdr.validate(); err != nil {
		dec.Close()
		return nil, err
	}
	return &Reader{hdr: hdr, dec: dec, r: br}, nil
}

// Open opens a recording file.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.closer = f
	return r, nil
}

// Header returns the recording header.
func (r *Reader) Header() Header { return r.hdr }

// Size returns the grid dimensions of every frame.
func (r *Reader) Size() core.Size { return core.Size{W: r.hdr.Width, H: r.hdr.Height} }

// Next reads the following frame into dst, which must hold a full frame. It
// returns io.EOF after the last frame and io.ErrUnexpectedEOF on a truncated one.
func (r *Reader) Next(dst []uint8) error {
	if len(dst) < r.hdr.frameLen() {
		return fmt.Errorf("record: buffer holds %d cells, want %d", len(dst), r.hdr.frameLen())
	}
	_, err := io.ReadFull(r.r, dst[:r.hdr.frameLen()])
	return err
}

// Close releases the decoder and the underlying file, if any.
func (r *Reader) Close() error {
	r.dec.Close()
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
