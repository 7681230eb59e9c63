package image

import (
	"errors"
	"testing"

	"github.com/gojxl/jxlcore/transform"
)

func TestNewImageValidation(t *testing.T) {
	if _, err := NewImage(0, 10, 3, 8, SampleUint); !errors.Is(err, ErrBadDimensions) {
		t.Fatalf("expected ErrBadDimensions for zero width, got %v", err)
	}
	if _, err := NewImage(10, 10, 2, 8, SampleUint); !errors.Is(err, ErrBadDimensions) {
		t.Fatalf("expected ErrBadDimensions for channels=2, got %v", err)
	}
	img, err := NewImage(4, 4, 3, 8, SampleUint)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	if len(img.Buffer) != 4*4*3 {
		t.Fatalf("buffer length = %d, want %d", len(img.Buffer), 48)
	}
	if err := img.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateCatchesBufferMismatch(t *testing.T) {
	img, err := NewImage(4, 4, 3, 8, SampleUint)
	if err != nil {
		t.Fatal(err)
	}
	img.Buffer = img.Buffer[:len(img.Buffer)-1]
	if err := img.Validate(); !errors.Is(err, ErrInvalidBuffer) {
		t.Fatalf("expected ErrInvalidBuffer, got %v", err)
	}
}

func TestPlaneRoundTrip(t *testing.T) {
	img, err := NewImage(5, 3, 3, 8, SampleUint)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			for c := 0; c < 3; c++ {
				img.Set(x, y, c, float64((x+y+c)%256))
			}
		}
	}

	for c := 0; c < 3; c++ {
		plane := img.Plane(c)
		other, err2 := NewImage(5, 3, 3, 8, SampleUint)
		if err2 != nil {
			t.Fatal(err2)
		}
		other.SetPlane(c, plane)
		for y := 0; y < 3; y++ {
			for x := 0; x < 5; x++ {
				if other.At(x, y, c) != img.At(x, y, c) {
					t.Fatalf("channel %d pixel (%d,%d): got %v want %v", c, x, y, other.At(x, y, c), img.At(x, y, c))
				}
			}
		}
	}
}

func TestPlaneFloatNormalization(t *testing.T) {
	img, err := NewImage(2, 2, 1, 8, SampleUint)
	if err != nil {
		t.Fatal(err)
	}
	img.Set(0, 0, 0, 255)
	img.Set(1, 0, 0, 0)
	plane := img.PlaneFloat(0)
	if plane[0] != 1.0 {
		t.Fatalf("PlaneFloat max sample = %v, want 1.0", plane[0])
	}
	if plane[1] != 0.0 {
		t.Fatalf("PlaneFloat zero sample = %v, want 0.0", plane[1])
	}
}

func TestExtractStoreBlockEdgeReplication(t *testing.T) {
	width, height := 5, 5
	plane := make([]float64, width*height)
	for i := range plane {
		plane[i] = float64(i)
	}

	rows, cols := BlockRows(height), BlockCols(width)
	if rows != 1 || cols != 1 {
		t.Fatalf("expected a single 8x8 block grid cell for a 5x5 image, got rows=%d cols=%d", rows, cols)
	}

	b := ExtractBlock(plane, width, height, 0, 0)
	// Last column/row of the block should replicate the image's edge.
	lastRealX, lastRealY := width-1, height-1
	if b[0*8+lastRealX] != plane[0*width+lastRealX] {
		t.Fatalf("in-bounds sample mismatch")
	}
	for dx := width; dx < 8; dx++ {
		if b[0*8+dx] != plane[0*width+lastRealX] {
			t.Fatalf("edge replication failed at column %d: got %v want %v", dx, b[dx], plane[lastRealX])
		}
	}
	_ = lastRealY

	out := make([]float64, width*height)
	StoreBlock(out, width, height, 0, 0, b)
	for i := range plane {
		if out[i] != plane[i] {
			t.Fatalf("StoreBlock dropped or corrupted in-bounds sample %d: got %v want %v", i, out[i], plane[i])
		}
	}
}

func TestExtractBlockMatchesTransformBlockType(t *testing.T) {
	plane := make([]float64, 8*8)
	b := ExtractBlock(plane, 8, 8, 0, 0)
	var want transform.Block
	if b != want {
		t.Fatalf("zero plane should extract to a zero block")
	}
}
