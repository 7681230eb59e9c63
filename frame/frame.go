package frame

import (
	"context"
	"fmt"

	"github.com/gojxl/jxlcore/bitio"
	"github.com/gojxl/jxlcore/container"
	"github.com/gojxl/jxlcore/image"
	"github.com/gojxl/jxlcore/predict"
	"github.com/gojxl/jxlcore/transform"
)

// EncodeFrame drives the full encode orchestration of spec.md §4.7:
// write the header fields, dispatch to the lossy block-transform path
// or the lossless predictive path, write the optional alpha payload,
// and wrap the result in the outer container.
func (a *Assembler) EncodeFrame(img *image.Image, opts EncodeOptions) ([]byte, error) {
	if a.state != StateIdle {
		return nil, fmt.Errorf("frame: %w: EncodeFrame called in state %s", ErrInternalInvariant, a.state)
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	ctx := opts.context()

	w := bitio.NewWriter()
	if err := writeHeaderFields(w, img, opts); err != nil {
		return nil, err
	}
	a.state = StateHeaderEmitted

	if err := checkCancel(ctx); err != nil {
		return nil, err
	}

	var alphaPayload *channelPayload
	if hasAlpha(img) {
		p, err := encodeAlphaChannel(img)
		if err != nil {
			return nil, err
		}
		alphaPayload = p
	}

	var payloads []*channelPayload
	if opts.Lossless {
		ps, err := encodeLosslessChannels(ctx, img)
		if err != nil {
			return nil, err
		}
		payloads = ps
	} else {
		ps, levels, err := encodeLossyChannels(ctx, img, opts)
		if err != nil {
			return nil, err
		}
		if err := writeQuantMap(w, levels); err != nil {
			return nil, err
		}
		payloads = ps
	}

	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	if err := writeChannelPayloads(w, payloads); err != nil {
		return nil, err
	}
	a.state = StatePayloadEmitted

	if alphaPayload != nil {
		if err := writeAlphaPayload(w, alphaPayload); err != nil {
			return nil, err
		}
	}
	a.state = StateDone

	w.FlushToByteBoundary()
	return container.EncodeContainer(w.Bytes()), nil
}

// DecodeFrame reverses EncodeFrame.
func (a *Assembler) DecodeFrame(data []byte, opts DecodeOptions) (*image.Image, error) {
	if a.state != StateIdle {
		return nil, fmt.Errorf("frame: %w: DecodeFrame called in state %s", ErrInternalInvariant, a.state)
	}
	ctx := opts.context()

	codestream, err := container.DecodeContainer(data)
	if err != nil {
		return nil, err
	}
	r := bitio.NewReader(codestream)

	h, err := readHeaderFields(r)
	if err != nil {
		return nil, err
	}
	a.state = StateHeaderEmitted

	if err := checkCancel(ctx); err != nil {
		return nil, err
	}

	img, err := image.NewImage(int(h.Width), int(h.Height), h.Channels, h.BitDepth, image.SampleUint)
	if err != nil {
		return nil, err
	}

	blockRows := image.BlockRows(img.Height)
	blockCols := image.BlockCols(img.Width)
	blockCount := blockRows * blockCols
	mainN := mainChannelCount(img)

	if h.Lossless {
		payloads, err := readChannelPayloads(r, mainN)
		if err != nil {
			return nil, err
		}
		planes, err := decodeLosslessChannels(ctx, payloads, img.Width, img.Height, img.BitDepth)
		if err != nil {
			return nil, err
		}
		if err := losslessInverseChannelPlanes(img, planes); err != nil {
			return nil, err
		}
	} else {
		levels, err := readQuantMap(r, blockCount)
		if err != nil {
			return nil, err
		}
		payloads, err := readChannelPayloads(r, mainN)
		if err != nil {
			return nil, err
		}
		planes, err := decodeLossyChannels(ctx, payloads, levels, h, blockRows, blockCols)
		if err != nil {
			return nil, err
		}
		if err := lossyInverseChannelMagnitudes(img, planes); err != nil {
			return nil, err
		}
	}
	a.state = StatePayloadEmitted

	if hasAlpha(img) {
		ap, err := readAlphaPayload(r)
		if err != nil {
			return nil, err
		}
		alphaPlane, err := decodeAlphaChannel(ap, img.Width, img.Height, img.BitDepth)
		if err != nil {
			return nil, err
		}
		img.SetPlane(3, alphaPlane)
	}
	a.state = StateDone

	return img, nil
}

// Encode is the package-level convenience wrapper most callers use: a
// fresh Assembler per call, per spec.md §4.7's "no state persists
// across frames."
func Encode(img *image.Image, opts EncodeOptions) ([]byte, error) {
	return NewAssembler().EncodeFrame(img, opts)
}

// Decode is the package-level convenience wrapper for DecodeFrame.
func Decode(data []byte, opts DecodeOptions) (*image.Image, error) {
	return NewAssembler().DecodeFrame(data, opts)
}

// encodeAlphaChannel codes an image's 4th channel via the predictive
// pipeline of spec.md §4.6 — the Open Question resolution recorded in
// DESIGN.md: alpha is coded identically whether the frame is lossy or
// lossless, never bypassed to raw bits, matching the lossless-mode
// wording of §4.7 step 4 and extending it uniformly to lossy frames
// per §10's stated option.
func encodeAlphaChannel(img *image.Image) (*channelPayload, error) {
	plane := img.Plane(3)
	minS, maxS := predict.SampleBounds(img.BitDepth)
	enc, err := predict.EncodeChannel(plane, img.Width, img.Height, minS, maxS, predict.GradientPredictor{})
	if err != nil {
		return nil, err
	}
	return encodedChannelToPayload(enc), nil
}

func decodeAlphaChannel(p *channelPayload, width, height, bitDepth int) ([]int32, error) {
	minS, maxS := predict.SampleBounds(bitDepth)
	return predict.DecodeChannel(payloadToEncodedChannel(p), width, height, minS, maxS, predict.GradientPredictor{})
}

// encodeLosslessChannels runs the predictive pipeline of spec.md §4.6
// over every main channel independently and in parallel, gathering
// results in channel-ascending order per §5's ordering guarantee.
func encodeLosslessChannels(ctx context.Context, img *image.Image) ([]*channelPayload, error) {
	planes, err := losslessChannelPlanes(img)
	if err != nil {
		return nil, err
	}
	n := len(planes)
	results, err := parallelDispatch(ctx, n, func(ch int) (*channelPayload, error) {
		minS, maxS := channelSampleBounds(ch, n, img.BitDepth)
		enc, err := predict.EncodeChannel(planes[ch], img.Width, img.Height, minS, maxS, predict.GradientPredictor{})
		if err != nil {
			return nil, err
		}
		return encodedChannelToPayload(enc), nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// decodeLosslessChannels reverses encodeLosslessChannels.
func decodeLosslessChannels(ctx context.Context, payloads []*channelPayload, width, height, bitDepth int) ([][]int32, error) {
	n := len(payloads)
	return parallelDispatch(ctx, n, func(ch int) ([]int32, error) {
		minS, maxS := channelSampleBounds(ch, n, bitDepth)
		return predict.DecodeChannel(payloadToEncodedChannel(payloads[ch]), width, height, minS, maxS, predict.GradientPredictor{})
	})
}

// computeQuantLevels derives the shared adaptive-quant map from the
// first main channel's pre-quantization AC energy, per the Open
// Question decision recorded in DESIGN.md (spec.md §4.7 step 3 calls
// for a single per-block map, not one per channel, but does not say
// which channel's coefficients drive it).
func computeQuantLevels(plane0 []float64, width, height, blockRows, blockCols int) []int {
	levels := make([]int, blockRows*blockCols)
	for br := 0; br < blockRows; br++ {
		for bc := 0; bc < blockCols; bc++ {
			block := image.ExtractBlock(plane0, width, height, br, bc)
			coeffs := transform.Forward2D(block)
			e := transform.BlockEnergy(coeffs)
			g := transform.AdaptiveScale(e)
			levels[br*blockCols+bc] = transform.EncodeScaleLevel(g)
		}
	}
	return levels
}

// encodeLossyChannels runs the block-transform-and-quantize path of
// spec.md §4.4/§4.7 step 3 over every main channel independently and
// in parallel, after deriving the shared adaptive-quant map from the
// first channel.
func encodeLossyChannels(ctx context.Context, img *image.Image, opts EncodeOptions) ([]*channelPayload, []int, error) {
	planes, err := lossyChannelMagnitudes(img)
	if err != nil {
		return nil, nil, err
	}

	blockRows := image.BlockRows(img.Height)
	blockCols := image.BlockCols(img.Width)
	blockCount := blockRows * blockCols

	levels := computeQuantLevels(planes[0], img.Width, img.Height, blockRows, blockCols)
	gFor := make([]float64, blockCount)
	for i, lvl := range levels {
		gFor[i] = transform.DecodeScaleLevel(lvl)
	}

	scale := transform.QualityScale(opts.Quality)
	schedule := lossyPassSchedule(opts.Progressive)

	payloads, err := parallelDispatch(ctx, len(planes), func(ch int) (*channelPayload, error) {
		tab := transform.QuantTable(transform.Channel(ch))
		blocks := make([]transform.CoeffBlock, blockCount)
		for br := 0; br < blockRows; br++ {
			for bc := 0; bc < blockCols; bc++ {
				bi := br*blockCols + bc
				block := image.ExtractBlock(planes[ch], img.Width, img.Height, br, bc)
				coeffs := transform.Forward2D(block)
				q := transform.Quantize(coeffs, tab, scale, gFor[bi])
				blocks[bi] = transform.ZigzagCoeff(q)
			}
		}
		values := coeffStreamForChannel(blocks, schedule)
		deltaCodeDC(values, blockCount)
		return encodeIntegerStream(values)
	})
	if err != nil {
		return nil, nil, err
	}
	return payloads, levels, nil
}

// decodeLossyChannels reverses encodeLossyChannels.
func decodeLossyChannels(ctx context.Context, payloads []*channelPayload, levels []int, h *header, blockRows, blockCols int) ([][]float64, error) {
	blockCount := blockRows * blockCols
	gFor := make([]float64, blockCount)
	for i, lvl := range levels {
		gFor[i] = transform.DecodeScaleLevel(lvl)
	}
	scale := transform.QualityScale(h.Quality)
	schedule := lossyPassSchedule(h.Progressive)
	width, height := int(h.Width), int(h.Height)

	return parallelDispatch(ctx, len(payloads), func(ch int) ([]float64, error) {
		values, err := decodeIntegerStream(payloads[ch])
		if err != nil {
			return nil, err
		}
		undeltaCodeDC(values, blockCount)
		blocks := coeffBlocksFromStream(values, blockCount, schedule)

		tab := transform.QuantTable(transform.Channel(ch))
		plane := make([]float64, width*height)
		for br := 0; br < blockRows; br++ {
			for bc := 0; bc < blockCols; bc++ {
				bi := br*blockCols + bc
				unzig := transform.InverseZigzagCoeff(blocks[bi])
				deq := transform.Dequantize(unzig, tab, scale, gFor[bi])
				spatial := transform.Inverse2D(deq)
				image.StoreBlock(plane, width, height, br, bc, spatial)
			}
		}
		return plane, nil
	})
}
