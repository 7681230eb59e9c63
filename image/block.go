package image

import "github.com/gojxl/jxlcore/transform"

// BlockRows and BlockCols are the block-grid dimensions of spec.md
// §3: ceil(height/8) rows, ceil(width/8) columns.
func BlockRows(height int) int { return (height + 7) / 8 }
func BlockCols(width int) int  { return (width + 7) / 8 }

// ExtractBlock reads the 8×8 block at block-grid position
// (blockRow, blockCol) out of a width×height row-major plane.
// Samples beyond the image edge are populated by edge replication
// (clamping to the last valid row/column), per spec.md §3.
func ExtractBlock(plane []float64, width, height, blockRow, blockCol int) transform.Block {
	var b transform.Block
	baseY := blockRow * 8
	baseX := blockCol * 8
	for dy := 0; dy < 8; dy++ {
		y := baseY + dy
		if y >= height {
			y = height - 1
		}
		for dx := 0; dx < 8; dx++ {
			x := baseX + dx
			if x >= width {
				x = width - 1
			}
			b[dy*8+dx] = plane[y*width+x]
		}
	}
	return b
}

// StoreBlock writes the in-bounds samples of an 8×8 block back into a
// width×height plane at block-grid position (blockRow, blockCol),
// dropping the edge-replicated padding columns/rows, per spec.md §3.
func StoreBlock(plane []float64, width, height, blockRow, blockCol int, b transform.Block) {
	baseY := blockRow * 8
	baseX := blockCol * 8
	for dy := 0; dy < 8; dy++ {
		y := baseY + dy
		if y >= height {
			continue
		}
		for dx := 0; dx < 8; dx++ {
			x := baseX + dx
			if x >= width {
				continue
			}
			plane[y*width+x] = b[dy*8+dx]
		}
	}
}
