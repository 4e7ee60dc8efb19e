package render

import "coral/internal/core"

// fillRGBA converts an RGB pixel grid into opaque RGBA bytes in buf, scaling
// each pixel to a scale x scale block. buf must hold 4*W*H*scale*scale bytes.
func fillRGBA(buf []byte, px *core.PixelGrid, scale int) {
	if scale <= 1 {
		for i, c := range px.Pix {
			base := i * 4
			buf[base+0] = c.R
			buf[base+1] = c.G
			buf[base+2] = c.B
			buf[base+3] = 0xff
		}
		return
	}

	stride := px.W * scale * 4
	for y := 0; y < px.H; y++ {
		for x := 0; x < px.W; x++ {
			c := px.Pix[y*px.W+x]
			for dy := 0; dy < scale; dy++ {
				row := (y*scale + dy) * stride
				for dx := 0; dx < scale; dx++ {
					base := row + (x*scale+dx)*4
					buf[base+0] = c.R
					buf[base+1] = c.G
					buf[base+2] = c.B
					buf[base+3] = 0xff
				}
			}
		}
	}
}
