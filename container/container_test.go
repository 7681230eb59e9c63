package container

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codestream := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	encoded := EncodeContainer(codestream)

	decoded, err := DecodeContainer(encoded)
	if err != nil {
		t.Fatalf("DecodeContainer: %v", err)
	}
	if !bytes.Equal(decoded, codestream) {
		t.Fatalf("got %v, want %v", decoded, codestream)
	}
}

func TestEncodeContainerStartsWithSignature(t *testing.T) {
	encoded := EncodeContainer([]byte{0xAA})
	if !bytes.Equal(encoded[:12], Signature[:]) {
		t.Fatalf("container does not start with the fixed signature")
	}
}

func TestDecodeRejectsBadSignature(t *testing.T) {
	encoded := EncodeContainer([]byte{0x01})
	encoded[0] ^= 0xFF // flip a bit in the signature
	if _, err := DecodeContainer(encoded); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestDecodeRejectsTruncation(t *testing.T) {
	encoded := EncodeContainer([]byte{0x01, 0x02, 0x03})
	truncated := encoded[:len(encoded)-1]
	if _, err := DecodeContainer(truncated); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestDecodeRejectsCorruptedLengthField(t *testing.T) {
	encoded := EncodeContainer([]byte{0x01, 0x02, 0x03, 0x04})
	// The jxlc box's length field starts right after signature + ftyp
	// box (12 + 16 = 28 bytes in). Invert a bit in its length.
	jxlcLenOffset := 12 + 16
	encoded[jxlcLenOffset] ^= 0x01
	if _, err := DecodeContainer(encoded); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated from corrupted length field, got %v", err)
	}
}

func TestDecodeSkipsUnknownTrailingBoxes(t *testing.T) {
	codestream := []byte{0x42}
	encoded := EncodeContainer(codestream)

	var unknown [4]byte
	copy(unknown[:], "xtra")
	encoded = writeBoxHeader(encoded, BoxType(unknown), 3)
	encoded = append(encoded, 0x01, 0x02, 0x03)

	decoded, err := DecodeContainer(encoded)
	if err != nil {
		t.Fatalf("DecodeContainer with trailing unknown box: %v", err)
	}
	if !bytes.Equal(decoded, codestream) {
		t.Fatalf("got %v, want %v", decoded, codestream)
	}
}

func TestEncodeFtypLayout(t *testing.T) {
	ftyp := EncodeFtyp()
	if len(ftyp) != headerLen+8 {
		t.Fatalf("ftyp box length = %d, want %d", len(ftyp), headerLen+8)
	}
	if string(ftyp[4:8]) != "ftyp" {
		t.Fatalf("ftyp type field = %q, want ftyp", ftyp[4:8])
	}
	if string(ftyp[8:12]) != Brand {
		t.Fatalf("ftyp brand = %q, want %q", ftyp[8:12], Brand)
	}
}
