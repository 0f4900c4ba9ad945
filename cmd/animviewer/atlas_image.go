package main

import (
	"image"
	"image/color"
	_ "image/png"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/spriteanim/anim"
)

// loadAtlasImage loads the sheet named by atlas, or paints a placeholder
// with one shade per tile when the image is missing.
func loadAtlasImage(atlas anim.Atlas) *ebiten.Image {
	if atlas.Image != "" {
		img, _, err := ebitenutil.NewImageFromFile(atlas.Image)
		if err == nil {
			return img
		}
		log.Printf("viewer: atlas image %s: %v (using placeholder)", atlas.Image, err)
	}
	return placeholderAtlas(atlas)
}

func placeholderAtlas(atlas anim.Atlas) *ebiten.Image {
	tw, th := max(atlas.TileWidth, 16), max(atlas.TileHeight, 16)
	cols, rows := max(atlas.Columns, 1), max(atlas.Rows, 1)
	img := ebiten.NewImage(cols*tw, rows*th)
	for i := 0; i < cols*rows; i++ {
		x, y := (i%cols)*tw, (i/cols)*th
		tile := img.SubImage(image.Rect(x+1, y+1, x+tw-1, y+th-1)).(*ebiten.Image)
		tile.Fill(tileColor(i%cols, i/cols))
	}
	return img
}

func tileColor(col, row int) color.Color {
	return color.RGBA{
		R: uint8(60 + (row*47)%180),
		G: uint8(60 + (col*29)%180),
		B: uint8(200 - (row*31)%140),
		A: 0xff,
	}
}
