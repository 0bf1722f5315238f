package main

import "github.com/agausmann/flipflop-go/common"

// atlasColumns, atlasCellPixels must match tile.frag.wgsl's hardcoded
// atlas_columns constant: every sprite atlas this program builds lays
// its cells out on the same 8-wide grid, board's and the preview/outline
// atlas alike, regardless of how many of the 8 slots a given atlas uses.
const (
	atlasColumns    = 8
	atlasCellPixels = 16
)

// buildAtlas procedurally renders a flat-color sprite atlas: no image
// assets are bundled, so each sprite index in colors is rendered as a
// solid atlasCellPixels square with a 1px border darkened by borderShade,
// giving adjacent sprites a visible edge under bilinear filtering. Unused
// cells past len(colors) are left fully transparent.
//
// Parameters:
//   - colors: one RGBA color per sprite index, in atlas cell order
//
// Returns:
//   - common.TextureStagingData: RGBA pixel data atlasColumns*atlasCellPixels wide and atlasCellPixels tall (one row of cells)
func buildAtlas(colors [][4]uint8) common.TextureStagingData {
	const borderShade = 0.6

	width := atlasColumns * atlasCellPixels
	height := atlasCellPixels
	pixels := make([]byte, width*height*4)

	for idx, color := range colors {
		if idx >= atlasColumns {
			break
		}
		ox := idx * atlasCellPixels
		for y := 0; y < atlasCellPixels; y++ {
			for x := 0; x < atlasCellPixels; x++ {
				border := x == 0 || y == 0 || x == atlasCellPixels-1 || y == atlasCellPixels-1
				r, g, b, a := color[0], color[1], color[2], color[3]
				if border {
					r = uint8(float64(r) * borderShade)
					g = uint8(float64(g) * borderShade)
					b = uint8(float64(b) * borderShade)
				}
				o := ((y)*width + ox + x) * 4
				pixels[o+0] = r
				pixels[o+1] = g
				pixels[o+2] = b
				pixels[o+3] = a
			}
		}
	}

	return common.TextureStagingData{
		Pixels: pixels,
		Width:  uint32(width),
		Height: uint32(height),
	}
}

// boardAtlasColors assigns a distinct flat color per board.Sprite* index:
// wire (copper), pin (silver), flip (amber), flop (teal), crossover
// (slate), in board/board.go's SpriteWire..SpriteCrossover order.
func boardAtlasColors() [][4]uint8 {
	return [][4]uint8{
		{184, 115, 51, 255},  // SpriteWire
		{200, 200, 205, 255}, // SpritePin
		{235, 169, 48, 255},  // SpriteFlip
		{64, 170, 160, 255},  // SpriteFlop
		{110, 110, 120, 255}, // SpriteCrossover
	}
}

// previewAtlasColors assigns a distinct translucent color per rect.Sprite*
// index, in rect/rect.go's SpritePreviewPin..SpriteOutline order. Preview
// sprites are drawn at reduced alpha so the player can see the board tile
// underneath; the outline sprite is opaque so it reads clearly over any
// tile content.
func previewAtlasColors() [][4]uint8 {
	return [][4]uint8{
		{200, 200, 205, 140}, // SpritePreviewPin
		{235, 169, 48, 140},  // SpritePreviewBody
		{64, 170, 160, 140},  // SpritePreviewOutput
		{200, 200, 205, 140}, // SpritePreviewSidePin
		{184, 115, 51, 140},  // SpritePreviewWire
		{255, 255, 255, 255}, // SpriteOutline; tinted by Powered (validity) in tile.frag.wgsl
	}
}
