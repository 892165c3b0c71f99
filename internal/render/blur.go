package render

import (
	"image"
	"math"
)

// gaussianBlur returns a blurred copy of src. The radius is the
// standard deviation in pixels; the kernel extends to three sigma.
// Channels are blurred premultiplied so transparent pixels do not
// darken the halo.
func gaussianBlur(src *image.NRGBA, radius int) *image.NRGBA {
	if radius <= 0 {
		out := image.NewNRGBA(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}

	sigma := float64(radius)
	half := int(math.Ceil(sigma * 3))
	kernel := make([]float64, 2*half+1)
	sum := 0.0
	for i := range kernel {
		x := float64(i - half)
		kernel[i] = math.Exp(-(x * x) / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	// premultiplied planes
	plane := make([]float64, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			a := float64(src.Pix[i+3]) / 255
			o := (y*w + x) * 4
			plane[o+0] = float64(src.Pix[i+0]) * a
			plane[o+1] = float64(src.Pix[i+1]) * a
			plane[o+2] = float64(src.Pix[i+2]) * a
			plane[o+3] = float64(src.Pix[i+3])
		}
	}

	tmp := make([]float64, len(plane))
	// horizontal pass
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc [4]float64
			for k, kv := range kernel {
				sx := x + k - half
				if sx < 0 || sx >= w {
					continue
				}
				o := (y*w + sx) * 4
				acc[0] += plane[o+0] * kv
				acc[1] += plane[o+1] * kv
				acc[2] += plane[o+2] * kv
				acc[3] += plane[o+3] * kv
			}
			o := (y*w + x) * 4
			tmp[o+0], tmp[o+1], tmp[o+2], tmp[o+3] = acc[0], acc[1], acc[2], acc[3]
		}
	}
	// vertical pass
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc [4]float64
			for k, kv := range kernel {
				sy := y + k - half
				if sy < 0 || sy >= h {
					continue
				}
				o := (sy*w + x) * 4
				acc[0] += tmp[o+0] * kv
				acc[1] += tmp[o+1] * kv
				acc[2] += tmp[o+2] * kv
				acc[3] += tmp[o+3] * kv
			}
			o := (y*w + x) * 4
			plane[o+0], plane[o+1], plane[o+2], plane[o+3] = acc[0], acc[1], acc[2], acc[3]
		}
	}

	out := image.NewNRGBA(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := (y*w + x) * 4
			a := plane[o+3]
			i := out.PixOffset(b.Min.X+x, b.Min.Y+y)
			if a > 0 {
				out.Pix[i+0] = clamp8(plane[o+0] / a * 255)
				out.Pix[i+1] = clamp8(plane[o+1] / a * 255)
				out.Pix[i+2] = clamp8(plane[o+2] / a * 255)
			}
			out.Pix[i+3] = clamp8(a)
		}
	}
	return out
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
