package record

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"slices"
	"testing"

	"github.com/klauspost/compress/zstd"

	"falling-sand/internal/core"
	"falling-sand/internal/sims/sand"
	prng "falling-sand/pkg/core"
)

func recordSteps(t *testing.T, w *Writer, steps int) [][]uint8 {
	t.Helper()
	g, err := sand.New(12, prng.NewSequence(true, false))
	if err != nil {
		t.Fatal(err)
	}
	g.Paint(6, 10, sand.Water, 2)
	g.Paint(3, 5, sand.Sand, 2)

	var want [][]uint8
	for i := 0; i < steps; i++ {
		if err := w.WriteFrame(g.Cells()); err != nil {
			t.Fatalf("WriteFrame %d: %v", i, err)
		}
		want = append(want, append([]uint8(nil), g.Cells()...))
		g.Step()
	}
	return want
}

func encodeRecording(t *testing.T, frames int) ([]byte, [][]uint8) {
	t.Helper()
	var buf bytes.Buffer
	w, err := NewWriter(&buf, core.Size{W: 12, H: 12})
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	want := recordSteps(t, w, frames)
	if w.Frames() != frames {
		t.Fatalf("Frames() = %d, want %d", w.Frames(), frames)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes(), want
}

func memorySource(data []byte) func() (*Reader, error) {
	return func() (*Reader, error) { return NewReader(bytes.NewReader(data)) }
}

func TestRecordingReplaysFrames(t *testing.T) {
	data, want := encodeRecording(t, 8)

	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if h := r.Header(); h.Version != Version || h.Width != 12 || h.Height != 12 {
		t.Fatalf("unexpected header %+v", h)
	}
	r.Close()

	p, err := NewPlayer(memorySource(data))
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	defer p.Close()

	for i := range want {
		if p.Done() {
			t.Fatalf("player ended early at frame %d", i)
		}
		if p.Frame() != i {
			t.Fatalf("frame index %d, want %d", p.Frame(), i)
		}
		if !slices.Equal(p.Cells(), want[i]) {
			t.Fatalf("frame %d differs from the recorded grid", i)
		}
		p.Step()
	}
	if !p.Done() || p.Err() != nil {
		t.Fatalf("done=%v err=%v after the last frame", p.Done(), p.Err())
	}
	p.Step()
	if p.Frame() != len(want)-1 || !slices.Equal(p.Cells(), want[len(want)-1]) {
		t.Fatal("player should hold on the last frame")
	}

	p.Reset(0)
	if p.Frame() != 0 || p.Done() || !slices.Equal(p.Cells(), want[0]) {
		t.Fatalf("Reset left frame=%d done=%v", p.Frame(), p.Done())
	}
	p.Step()
	if !slices.Equal(p.Cells(), want[1]) {
		t.Fatal("second pass differs from the recorded grid")
	}
}

func TestCreateAndLoadPlayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "demo.sand.zst")
	w, err := Create(path, core.Size{W: 12, H: 12})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	want := recordSteps(t, w, 3)
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	p, err := LoadPlayer(path)
	if err != nil {
		t.Fatalf("LoadPlayer: %v", err)
	}
	defer p.Close()
	if !slices.Equal(p.Cells(), want[0]) {
		t.Fatal("first frame differs from the recorded grid")
	}
	if v, ok := p.Parameters().Lookup("status"); !ok || v.Value != "playing" {
		t.Fatalf("status parameter = %+v", v)
	}
	for i := 0; i < 3; i++ {
		p.Step()
	}
	if !p.Done() || p.Frame() != 2 {
		t.Fatalf("done=%v frame=%d, want done at frame 2", p.Done(), p.Frame())
	}
	if v, ok := p.Parameters().Lookup("status"); !ok || v.Value != "ended" {
		t.Fatalf("status parameter = %+v", v)
	}

	p.Reset(0)
	if p.Done() || !slices.Equal(p.Cells(), want[0]) {
		t.Fatal("Reset did not reopen the file at the first frame")
	}
}

func TestEmptyRecordingShowsBlankFrame(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, core.Size{W: 3, H: 2})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	p, err := NewPlayer(memorySource(buf.Bytes()))
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	if len(p.Cells()) != 6 || !p.Done() {
		t.Fatalf("cells=%d done=%v, want 6 blank cells and done", len(p.Cells()), p.Done())
	}
	for _, c := range p.Cells() {
		if c != 0 {
			t.Fatalf("blank frame holds %v", p.Cells())
		}
	}
}

func TestWriteFrameRejectsWrongLength(t *testing.T) {
	w, err := NewWriter(io.Discard, core.Size{W: 4, H: 4})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.WriteFrame(make([]uint8, 15)); err == nil {
		t.Fatal("expected an error for a short frame")
	}
	if w.Frames() != 0 {
		t.Fatalf("rejected frame was counted")
	}
}

func TestNewWriterRejectsBadSize(t *testing.T) {
	for _, size := range []core.Size{{}, {W: -2, H: -2}, {W: MaxSide + 1, H: 1}} {
		if _, err := NewWriter(io.Discard, size); !errors.Is(err, ErrBadHeader) {
			t.Fatalf("NewWriter(%+v) err = %v, want ErrBadHeader", size, err)
		}
	}
}

func encodeHeader(t *testing.T, header string, frame []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	enc.Write([]byte(header + "\n"))
	enc.Write(frame)
	enc.Close()
	return buf.Bytes()
}

func TestReaderRejectsBadHeader(t *testing.T) {
	headers := []string{
		`{"version":9,"width":2,"height":2}`,
		`{"version":1,"width":0,"height":4}`,
		`{"version":1,"width":-2,"height":-2}`,
		`{"version":1,"width":2147483648,"height":2147483648}`,
		`{"version":1,"width":16385,"height":1}`,
		`not json`,
	}
	for _, h := range headers {
		r, err := NewReader(bytes.NewReader(encodeHeader(t, h, nil)))
		if !errors.Is(err, ErrBadHeader) {
			t.Fatalf("header %s: err = %v, want ErrBadHeader", h, err)
		}
		if r != nil {
			t.Fatalf("header %s: reader returned alongside the error", h)
		}
		if _, err := NewPlayer(memorySource(encodeHeader(t, h, nil))); !errors.Is(err, ErrBadHeader) {
			t.Fatalf("header %s: NewPlayer err = %v, want ErrBadHeader", h, err)
		}
	}
}

func TestReaderReportsTruncatedFrame(t *testing.T) {
	data := encodeHeader(t, `{"version":1,"width":2,"height":2}`, []byte{1, 2, 0, 0, 1})

	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()
	frame := make([]uint8, 4)
	if err := r.Next(frame); err != nil {
		t.Fatalf("first frame: %v", err)
	}
	if err := r.Next(frame); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("err = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestPlayerStopsOnTruncatedFrame(t *testing.T) {
	data := encodeHeader(t, `{"version":1,"width":2,"height":2}`, []byte{1, 2, 0, 0, 1})

	p, err := NewPlayer(memorySource(data))
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	p.Step()
	if !p.Done() || !errors.Is(p.Err(), io.ErrUnexpectedEOF) {
		t.Fatalf("done=%v err=%v, want io.ErrUnexpectedEOF", p.Done(), p.Err())
	}
	if !slices.Equal(p.Cells(), []uint8{1, 2, 0, 0}) {
		t.Fatalf("cells = %v, want the last complete frame", p.Cells())
	}
	if v, _ := p.Parameters().Lookup("status"); v.Value != "error" {
		t.Fatalf("status = %q, want error", v.Value)
	}
}
