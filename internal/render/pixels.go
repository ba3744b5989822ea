package render

import "image/color"

// fillPaletteRGBA converts cell values into RGBA pixels using a palette.
// Indices past the end of the palette use its last colour; an empty palette
// clears the buffer to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}
	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		col := palette[idx]
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Rasterize converts cells into a freshly allocated RGBA buffer.
func Rasterize(cells []uint8, palette []color.RGBA) []byte {
	buf := make([]byte, len(cells)*4)
	fillPaletteRGBA(buf, cells, palette)
	return buf
}
