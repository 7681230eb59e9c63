package frame

import (
	"fmt"

	"github.com/gojxl/jxlcore/bitio"
	"github.com/gojxl/jxlcore/colorspace"
	"github.com/gojxl/jxlcore/image"
)

// header is the decoded form of the jxlc bit-field table of spec.md
// §6.
type header struct {
	Lossless    bool
	Width       uint32
	Height      uint32
	Channels    int
	BitDepth    int
	Progressive bool
	Quality     int
}

// writeHeaderFields packs the fixed-layout fields of spec.md §6 that
// precede the adaptive-quant map / per-channel payload sections:
// lossless-flag, width, height, channel-count, bit-depth-minus-one,
// and, lossy only, progressive-flag and quality×100.
func writeHeaderFields(w *bitio.Writer, img *image.Image, opts EncodeOptions) error {
	losslessBit := uint32(0)
	if opts.Lossless {
		losslessBit = 1
	}
	if err := w.Write(losslessBit, 1); err != nil {
		return err
	}
	if err := w.Write(uint32(img.Width), 32); err != nil {
		return err
	}
	if err := w.Write(uint32(img.Height), 32); err != nil {
		return err
	}
	if err := w.Write(uint32(img.Channels), 4); err != nil {
		return err
	}
	if err := w.Write(uint32(img.BitDepth-1), 4); err != nil {
		return err
	}
	if !opts.Lossless {
		prog := uint32(0)
		if opts.Progressive {
			prog = 1
		}
		if err := w.Write(prog, 1); err != nil {
			return err
		}
		if err := w.Write(uint32(opts.Quality*100), 16); err != nil {
			return err
		}
	}
	return nil
}

// readHeaderFields reverses writeHeaderFields, validating every field
// against the bounds spec.md fixes for it.
func readHeaderFields(r *bitio.Reader) (*header, error) {
	lb, err := r.Read(1)
	if err != nil {
		return nil, err
	}
	width, err := r.Read(32)
	if err != nil {
		return nil, err
	}
	height, err := r.Read(32)
	if err != nil {
		return nil, err
	}
	ch, err := r.Read(4)
	if err != nil {
		return nil, err
	}
	bdm1, err := r.Read(4)
	if err != nil {
		return nil, err
	}

	h := &header{
		Lossless: lb == 1,
		Width:    width,
		Height:   height,
		Channels: int(ch),
		BitDepth: int(bdm1) + 1,
	}

	if width == 0 || height == 0 || width > uint32(image.MaxDimension) || height > uint32(image.MaxDimension) {
		return nil, image.ErrBadDimensions
	}
	if h.Channels != 1 && h.Channels != 3 && h.Channels != 4 {
		return nil, colorspace.ErrUnsupportedColorSpace
	}
	if h.BitDepth != 8 && h.BitDepth != 16 {
		return nil, fmt.Errorf("frame: %w: unsupported bit depth %d", ErrInternalInvariant, h.BitDepth)
	}

	if !h.Lossless {
		p, err := r.Read(1)
		if err != nil {
			return nil, err
		}
		h.Progressive = p == 1
		q, err := r.Read(16)
		if err != nil {
			return nil, err
		}
		h.Quality = int(q) / 100
		if h.Quality < 1 || h.Quality > 100 {
			return nil, fmt.Errorf("frame: %w: quality field %d out of range", ErrInternalInvariant, q)
		}
	}

	return h, nil
}

// writeBytes packs data into w eight bits at a time. Spec.md §6 lists
// every field of the jxlc content, including the variable-length
// payload blobs, as part of one bit stream table; rather than
// special-casing a byte-aligned sub-region, every payload byte is
// written through the same LSB-first bitio.Writer the fixed-width
// header fields use, which is exactly equivalent to byte-appending
// whenever the writer happens to already sit on a byte boundary and
// still well-defined when it doesn't.
func writeBytes(w *bitio.Writer, data []byte) error {
	for _, b := range data {
		if err := w.Write(uint32(b), 8); err != nil {
			return err
		}
	}
	return nil
}

// readBytes reverses writeBytes.
func readBytes(r *bitio.Reader, n int) ([]byte, error) {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		v, err := r.Read(8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}
	return out, nil
}

// writeQuantMap writes the lossy-only adaptive-quant map length and
// payload fields of spec.md §6.
func writeQuantMap(w *bitio.Writer, levels []int) error {
	payload, err := encodeQuantMapPayload(levels)
	if err != nil {
		return err
	}
	data := marshalChannelPayload(payload)
	if err := w.Write(uint32(len(data)), 32); err != nil {
		return err
	}
	return writeBytes(w, data)
}

// readQuantMap reverses writeQuantMap, checking the decoded symbol
// count against the block grid the header's dimensions imply.
func readQuantMap(r *bitio.Reader, blockCount int) ([]int, error) {
	length, err := r.Read(32)
	if err != nil {
		return nil, err
	}
	data, err := readBytes(r, int(length))
	if err != nil {
		return nil, err
	}
	payload, err := unmarshalChannelPayload(data)
	if err != nil {
		return nil, err
	}
	if payload.Count != blockCount {
		return nil, fmt.Errorf("frame: %w: adaptive-quant map symbol count %d, want %d", ErrInternalInvariant, payload.Count, blockCount)
	}
	return decodeQuantMapPayload(payload)
}

// writeChannelPayloads writes the "per-channel payload lengths" block
// (one 32-bit length per payload) followed by the "per-channel
// payloads" block, channel-major, exactly as spec.md §6 lays them out
// as two separate back-to-back sections.
func writeChannelPayloads(w *bitio.Writer, payloads []*channelPayload) error {
	datas := make([][]byte, len(payloads))
	for i, p := range payloads {
		datas[i] = marshalChannelPayload(p)
	}
	for _, d := range datas {
		if err := w.Write(uint32(len(d)), 32); err != nil {
			return err
		}
	}
	for _, d := range datas {
		if err := writeBytes(w, d); err != nil {
			return err
		}
	}
	return nil
}

// readChannelPayloads reverses writeChannelPayloads for n channels.
func readChannelPayloads(r *bitio.Reader, n int) ([]*channelPayload, error) {
	lengths := make([]int, n)
	for i := 0; i < n; i++ {
		l, err := r.Read(32)
		if err != nil {
			return nil, err
		}
		lengths[i] = int(l)
	}
	payloads := make([]*channelPayload, n)
	for i := 0; i < n; i++ {
		data, err := readBytes(r, lengths[i])
		if err != nil {
			return nil, err
		}
		p, err := unmarshalChannelPayload(data)
		if err != nil {
			return nil, err
		}
		payloads[i] = p
	}
	return payloads, nil
}

// writeAlphaPayload writes the single 32-bit length + payload pair
// spec.md §6 adds "if channel-count = 4", coded via the same
// per-channel wire format as the main channels.
func writeAlphaPayload(w *bitio.Writer, p *channelPayload) error {
	data := marshalChannelPayload(p)
	if err := w.Write(uint32(len(data)), 32); err != nil {
		return err
	}
	return writeBytes(w, data)
}

// readAlphaPayload reverses writeAlphaPayload.
func readAlphaPayload(r *bitio.Reader) (*channelPayload, error) {
	l, err := r.Read(32)
	if err != nil {
		return nil, err
	}
	data, err := readBytes(r, int(l))
	if err != nil {
		return nil, err
	}
	return unmarshalChannelPayload(data)
}
