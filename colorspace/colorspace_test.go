package colorspace

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestYCoCgRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 10000; i++ {
		r := int32(rng.Intn(512) - 256)
		g := int32(rng.Intn(512) - 256)
		b := int32(rng.Intn(512) - 256)

		y, co, cg := ForwardYCoCg(r, g, b)
		r2, g2, b2 := InverseYCoCg(y, co, cg)
		if r2 != r || g2 != g || b2 != b {
			t.Fatalf("round trip failed for (%d,%d,%d): got (%d,%d,%d)", r, g, b, r2, g2, b2)
		}
	}
}

func TestForwardLosslessPixelChannels(t *testing.T) {
	if _, err := ForwardLosslessPixel([]int32{1, 2, 3}, 1); !errors.Is(err, ErrUnsupportedColorSpace) {
		t.Fatalf("expected ErrUnsupportedColorSpace for 1 channel, got %v", err)
	}
	if _, err := ForwardLosslessPixel([]int32{1, 2, 3, 4, 5}, 5); !errors.Is(err, ErrUnsupportedColorSpace) {
		t.Fatalf("expected ErrUnsupportedColorSpace for 5 channels, got %v", err)
	}

	out, err := ForwardLosslessPixel([]int32{10, 20, 30, 255}, 4)
	if err != nil {
		t.Fatalf("4-channel forward: %v", err)
	}
	if out[3] != 255 {
		t.Fatalf("alpha channel was transformed: got %d, want 255 unchanged", out[3])
	}
	back, err := InverseLosslessPixel(out, 4)
	if err != nil {
		t.Fatalf("4-channel inverse: %v", err)
	}
	want := []int32{10, 20, 30, 255}
	for i := range want {
		if back[i] != want[i] {
			t.Fatalf("4-channel round trip mismatch at %d: got %d want %d", i, back[i], want[i])
		}
	}
}

func TestOpsinRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	for i := 0; i < 2000; i++ {
		r := rng.Float64()
		g := rng.Float64()
		b := rng.Float64()

		y, x, bb := ForwardOpsin(r, g, b)
		r2, g2, b2 := InverseOpsin(y, x, bb)

		if math.Abs(r2-r) > 1e-9 || math.Abs(g2-g) > 1e-9 || math.Abs(b2-b) > 1e-9 {
			t.Fatalf("opsin round trip failed for (%v,%v,%v): got (%v,%v,%v)", r, g, b, r2, g2, b2)
		}
	}
}

func TestSRGBLinearizeRoundTrip(t *testing.T) {
	for c := 0.0; c <= 1.0; c += 0.01 {
		lin := LinearizeSRGB(c)
		back := EncodeSRGB(lin)
		if math.Abs(back-c) > 1e-6 {
			t.Fatalf("sRGB round trip failed for %v: got %v", c, back)
		}
	}
}

func TestForwardLossyPreservesAlpha(t *testing.T) {
	pixel := []float64{0.5, 0.25, 0.75, 0.9}
	out, err := ForwardLossy(pixel, 4)
	if err != nil {
		t.Fatalf("ForwardLossy: %v", err)
	}
	if out[3] != 0.9 {
		t.Fatalf("alpha was modified: got %v, want 0.9", out[3])
	}

	back, err := InverseLossy(out, 4)
	if err != nil {
		t.Fatalf("InverseLossy: %v", err)
	}
	for i, want := range pixel {
		if math.Abs(back[i]-want) > 1e-4 {
			t.Fatalf("channel %d: got %v, want %v", i, back[i], want)
		}
	}
}

func TestUnsupportedChannelCounts(t *testing.T) {
	if _, err := ForwardLossy([]float64{0.5}, 1); !errors.Is(err, ErrUnsupportedColorSpace) {
		t.Fatalf("expected ErrUnsupportedColorSpace, got %v", err)
	}
	if _, err := ForwardLossy([]float64{0.5, 0.1, 0.2, 0.3, 0.4}, 2); !errors.Is(err, ErrUnsupportedColorSpace) {
		t.Fatalf("expected ErrUnsupportedColorSpace, got %v", err)
	}
}
