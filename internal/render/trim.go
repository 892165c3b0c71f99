package render

import (
	"image"
	"image/draw"
)

// OpaqueBounds returns the bounding box of pixels with nonzero alpha,
// or a zero rectangle when the image is fully transparent.
func OpaqueBounds(img *image.NRGBA) image.Rectangle {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X, b.Min.Y
	found := false

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Pix[row+(x-b.Min.X)*4+3] != 0 {
				found = true
				if x < minX {
					minX = x
				}
				if x+1 > maxX {
					maxX = x + 1
				}
				if y < minY {
					minY = y
				}
				if y+1 > maxY {
					maxY = y + 1
				}
			}
		}
	}
	if !found {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX, maxY)
}

// TrimAndPad crops the image to its non-transparent bounding box and
// pads it with a transparent safe margin on every side, plus an
// optional extra pad at the bottom for descenders and shadow spill.
// A fully transparent image is returned unchanged.
func TrimAndPad(img *image.NRGBA, margin, extraBottom int) *image.NRGBA {
	bbox := OpaqueBounds(img)
	if bbox.Empty() {
		return img
	}

	w := bbox.Dx() + 2*margin
	h := bbox.Dy() + 2*margin + extraBottom
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	dst := image.Rect(margin, margin, margin+bbox.Dx(), margin+bbox.Dy())
	draw.Draw(out, dst, img, bbox.Min, draw.Src)
	return out
}
