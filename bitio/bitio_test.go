package bitio

import (
	"errors"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	cases := []struct {
		value uint32
		width int
	}{
		{0, 1}, {1, 1}, {0, 32}, {0xFFFFFFFF, 32},
		{5, 3}, {200, 8}, {65535, 16}, {1 << 30, 31},
	}

	w := NewWriter()
	for _, c := range cases {
		if err := w.Write(c.value, c.width); err != nil {
			t.Fatalf("write(%d,%d): %v", c.value, c.width, err)
		}
	}
	w.FlushToByteBoundary()

	r := NewReader(w.Bytes())
	for _, c := range cases {
		got, err := r.Read(c.width)
		if err != nil {
			t.Fatalf("read width %d: %v", c.width, err)
		}
		if got != c.value {
			t.Fatalf("got %d want %d (width %d)", got, c.value, c.width)
		}
	}
}

func TestByteAlignment(t *testing.T) {
	w := NewWriter()
	_ = w.Write(1, 1)
	_ = w.Write(1, 1)
	_ = w.Write(1, 1)
	w.FlushToByteBoundary()
	if len(w.Bytes()) != 1 {
		t.Fatalf("expected 1 byte after flush, got %d", len(w.Bytes()))
	}
	if w.Bytes()[0] != 0x07 {
		t.Fatalf("expected 0x07, got %#x", w.Bytes()[0])
	}
}

func TestOverflowWidth(t *testing.T) {
	w := NewWriter()
	if err := w.Write(0, 0); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	if err := w.Write(0, 33); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}

func TestOverflowValue(t *testing.T) {
	w := NewWriter()
	if err := w.Write(0x100, 8); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow for out-of-range value, got %v", err)
	}
}

func TestEndOfStream(t *testing.T) {
	r := NewReader([]byte{0x01})
	if _, err := r.Read(8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Read(8); !errors.Is(err, ErrEndOfStream) {
		t.Fatalf("expected ErrEndOfStream, got %v", err)
	}
}

func TestAlignSkipsPartialByte(t *testing.T) {
	w := NewWriter()
	_ = w.Write(0x3, 2) // 2 bits into first byte
	w.FlushToByteBoundary()
	_ = w.Write(0xAB, 8)
	w.FlushToByteBoundary()

	r := NewReader(w.Bytes())
	if _, err := r.Read(2); err != nil {
		t.Fatal(err)
	}
	r.Align()
	v, err := r.Read(8)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0xAB {
		t.Fatalf("got %#x want 0xAB", v)
	}
}
