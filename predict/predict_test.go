package predict

import (
	"errors"
	"math/rand"
	"testing"
)

func TestZigzagSignedRoundTrip(t *testing.T) {
	for r := int32(-1000); r <= 1000; r++ {
		s := ZigzagSigned(r)
		if got := InverseZigzagSigned(s); got != r {
			t.Fatalf("round trip failed for %d: got %d via symbol %d", r, got, s)
		}
	}
}

func TestGradientPredictorBorderDefaults(t *testing.T) {
	p := GradientPredictor{}
	// At (0,0) all neighbors default to 0.
	if got := p.Predict(0, 0, 0, 0, 255); got != 0 {
		t.Fatalf("origin prediction = %d, want 0", got)
	}
}

func TestGradientPredictorClamps(t *testing.T) {
	p := GradientPredictor{}
	if got := p.Predict(255, 255, 0, 0, 255); got != 255 {
		t.Fatalf("expected clamp to 255, got %d", got)
	}
	if got := p.Predict(0, 0, 255, 0, 255); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
}

func makePlane(width, height int, f func(x, y int) int32) []int32 {
	plane := make([]int32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			plane[y*width+x] = f(x, y)
		}
	}
	return plane
}

func TestResidualsRoundTripSolidColor(t *testing.T) {
	width, height := 16, 16
	plane := makePlane(width, height, func(x, y int) int32 { return 128 })
	p := GradientPredictor{}

	minS, maxS := SampleBounds(8)
	residuals := ResidualsForPlane(plane, width, height, minS, maxS, p)
	back, err := ReconstructPlane(residuals, width, height, minS, maxS, p)
	if err != nil {
		t.Fatalf("ReconstructPlane: %v", err)
	}
	for i := range plane {
		if back[i] != plane[i] {
			t.Fatalf("index %d: got %d want %d", i, back[i], plane[i])
		}
	}
}

func TestResidualsRoundTripGradient(t *testing.T) {
	width, height := 32, 17
	plane := makePlane(width, height, func(x, y int) int32 { return int32((x*3 + y*5) % 256) })
	p := GradientPredictor{}

	minS, maxS := SampleBounds(8)
	residuals := ResidualsForPlane(plane, width, height, minS, maxS, p)
	back, err := ReconstructPlane(residuals, width, height, minS, maxS, p)
	if err != nil {
		t.Fatalf("ReconstructPlane: %v", err)
	}
	for i := range plane {
		if back[i] != plane[i] {
			t.Fatalf("index %d: got %d want %d", i, back[i], plane[i])
		}
	}
}

func TestReconstructPlaneRejectsOutOfRange(t *testing.T) {
	width, height := 4, 4
	// A residual that pushes the decoded sample above the 8-bit max.
	residuals := make([]int32, width*height)
	residuals[0] = 1000
	p := GradientPredictor{}
	minS, maxS := SampleBounds(8)
	if _, err := ReconstructPlane(residuals, width, height, minS, maxS, p); !errors.Is(err, ErrOutOfRangeResidual) {
		t.Fatalf("expected ErrOutOfRangeResidual, got %v", err)
	}
}

func TestEncodeDecodeChannelRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	width, height := 24, 24
	plane := makePlane(width, height, func(x, y int) int32 {
		return int32(rng.Intn(256))
	})
	p := GradientPredictor{}
	minS, maxS := SampleBounds(8)

	enc, err := EncodeChannel(plane, width, height, minS, maxS, p)
	if err != nil {
		t.Fatalf("EncodeChannel: %v", err)
	}
	decoded, err := DecodeChannel(enc, width, height, minS, maxS, p)
	if err != nil {
		t.Fatalf("DecodeChannel: %v", err)
	}
	for i := range plane {
		if decoded[i] != plane[i] {
			t.Fatalf("index %d: got %d want %d", i, decoded[i], plane[i])
		}
	}
}

func TestEncodeDecodeChannel16Bit(t *testing.T) {
	width, height := 8, 8
	plane := makePlane(width, height, func(x, y int) int32 { return int32(x*4000 + y*100) })
	p := GradientPredictor{}
	minS, maxS := SampleBounds(16)

	enc, err := EncodeChannel(plane, width, height, minS, maxS, p)
	if err != nil {
		t.Fatalf("EncodeChannel: %v", err)
	}
	decoded, err := DecodeChannel(enc, width, height, minS, maxS, p)
	if err != nil {
		t.Fatalf("DecodeChannel: %v", err)
	}
	for i := range plane {
		if decoded[i] != plane[i] {
			t.Fatalf("index %d: got %d want %d", i, decoded[i], plane[i])
		}
	}
}

func TestEncodeDecodeChannelNegativeChroma(t *testing.T) {
	width, height := 16, 16
	// Co = R - B style plane: legitimately negative for much of the
	// range, the way colorspace.ForwardYCoCg produces it.
	plane := makePlane(width, height, func(x, y int) int32 { return int32(x) - int32(y)*2 - 34 })
	p := GradientPredictor{}
	minS, maxS := ChromaBounds(8)

	enc, err := EncodeChannel(plane, width, height, minS, maxS, p)
	if err != nil {
		t.Fatalf("EncodeChannel: %v", err)
	}
	decoded, err := DecodeChannel(enc, width, height, minS, maxS, p)
	if err != nil {
		t.Fatalf("DecodeChannel: %v", err)
	}
	for i := range plane {
		if decoded[i] != plane[i] {
			t.Fatalf("index %d: got %d want %d", i, decoded[i], plane[i])
		}
	}
}
