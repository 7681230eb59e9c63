// Package container implements the outer box framing of spec.md §3
// and §6: a fixed 12-byte signature, a mandatory `ftyp` box, and a
// `jxlc` box carrying the bit-packed codestream. Box lengths are
// 4-byte big-endian and include the 8-byte length+type header, the
// convention boxType/boxLength pairs use throughout.
package container

import (
	"encoding/binary"
	"fmt"
)

// Signature is the fixed 12-byte file signature of spec.md §6.
var Signature = [12]byte{0x00, 0x00, 0x00, 0x0C, 0x4A, 0x58, 0x4C, 0x20, 0x0D, 0x0A, 0x87, 0x0A}

// Brand is the ftyp box's codestream brand.
const Brand = "jxl "

const (
	typeLen   = 4
	headerLen = 8 // 4-byte length + 4-byte type
)

// BoxType is a four-character box type tag.
type BoxType [typeLen]byte

var (
	TypeFtyp = BoxType{'f', 't', 'y', 'p'}
	TypeJxlc = BoxType{'j', 'x', 'l', 'c'}
)

func (t BoxType) String() string { return string(t[:]) }

// writeBoxHeader appends a box's 4-byte big-endian length (payload
// length + headerLen) and 4-byte type to buf.
func writeBoxHeader(buf []byte, t BoxType, payloadLen int) []byte {
	var lenBytes [4]byte
	binary.BigEndian.PutUint32(lenBytes[:], uint32(payloadLen+headerLen))
	buf = append(buf, lenBytes[:]...)
	buf = append(buf, t[:]...)
	return buf
}

// EncodeFtyp builds the complete ftyp box (header + payload): brand
// plus 4 zero bytes (minor version and compatibility-list
// placeholder), per spec.md §6.
func EncodeFtyp() []byte {
	payload := append([]byte(Brand), 0, 0, 0, 0)
	out := writeBoxHeader(nil, TypeFtyp, len(payload))
	return append(out, payload...)
}

// EncodeContainer assembles the full outer container: signature, ftyp
// box, then a jxlc box wrapping codestream.
func EncodeContainer(codestream []byte) []byte {
	out := make([]byte, 0, len(Signature)+16+headerLen+len(codestream))
	out = append(out, Signature[:]...)

	ftypPayload := append([]byte(Brand), 0, 0, 0, 0)
	out = writeBoxHeader(out, TypeFtyp, len(ftypPayload))
	out = append(out, ftypPayload...)

	out = writeBoxHeader(out, TypeJxlc, len(codestream))
	out = append(out, codestream...)
	return out
}

// box is one decoded box's type and payload slice (a view into the
// original input, not a copy).
type box struct {
	typ     BoxType
	payload []byte
}

// readBoxes walks data, decoding consecutive box headers starting at
// offset 0, without assuming how many boxes are present.
func readBoxes(data []byte) ([]box, error) {
	var boxes []box
	pos := 0
	for pos < len(data) {
		if pos+headerLen > len(data) {
			return nil, fmt.Errorf("container: %w: truncated box header at offset %d", ErrTruncated, pos)
		}
		length := binary.BigEndian.Uint32(data[pos : pos+4])
		if length < headerLen {
			return nil, fmt.Errorf("container: %w: box length %d smaller than header", ErrTruncated, length)
		}
		end := pos + int(length)
		if end > len(data) {
			return nil, fmt.Errorf("container: %w: box of length %d runs past input at offset %d", ErrTruncated, length, pos)
		}
		var t BoxType
		copy(t[:], data[pos+4:pos+8])
		boxes = append(boxes, box{typ: t, payload: data[pos+headerLen : end]})
		pos = end
	}
	return boxes, nil
}

// DecodeContainer verifies the fixed signature, then walks the box
// sequence looking for jxlc, skipping and tolerating any other box
// (including an absent or reordered ftyp, and any unknown box after
// jxlc) per spec.md §6's forward-compatibility requirement.
func DecodeContainer(data []byte) (codestream []byte, err error) {
	if len(data) < len(Signature) {
		return nil, fmt.Errorf("container: %w: input shorter than signature", ErrTruncated)
	}
	var sig [12]byte
	copy(sig[:], data[:12])
	if sig != Signature {
		return nil, ErrBadSignature
	}

	boxes, err := readBoxes(data[12:])
	if err != nil {
		return nil, err
	}
	for _, b := range boxes {
		if b.typ == TypeJxlc {
			return b.payload, nil
		}
	}
	return nil, fmt.Errorf("container: %w: no jxlc box found", ErrTruncated)
}
