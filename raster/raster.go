// Package raster renders gizmo draw data on the CPU. It exists for hosts
// without a GPU surface (thumbnails, golden tests, headless tools) and
// consumes the same triangle lists a GPU backend would.
package raster

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/gekko3d/gizmo"
)

// Options controls the output image.
type Options struct {
	Width  int
	Height int
	// Supersample renders at a multiple of the output size and downscales
	// for anti-aliasing. Values below 1 mean no supersampling.
	Supersample int
	// Background fills the canvas before compositing.
	Background color.NRGBA
}

// Render rasterizes the draw data into an image. Vertex colors are linear
// RGBA; compositing happens in linear space and the result is encoded back
// to sRGB.
func Render(data gizmo.DrawData, opts Options) *image.NRGBA {
	if opts.Width <= 0 || opts.Height <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}

	w := opts.Width * ss
	h := opts.Height * ss

	// Linear RGB + alpha framebuffer.
	buf := make([]float64, w*h*4)
	br := srgbToLinear(opts.Background.R)
	bg := srgbToLinear(opts.Background.G)
	bb := srgbToLinear(opts.Background.B)
	ba := float64(opts.Background.A) / 255.0
	for i := 0; i < w*h; i++ {
		buf[i*4+0] = br
		buf[i*4+1] = bg
		buf[i*4+2] = bb
		buf[i*4+3] = ba
	}

	for i := 0; i+2 < len(data.Indices); i += 3 {
		fillTriangle(buf, w, h, data, data.Indices[i], data.Indices[i+1], data.Indices[i+2], float64(ss))
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		img.Pix[i*4+0] = linearToSRGB(buf[i*4+0])
		img.Pix[i*4+1] = linearToSRGB(buf[i*4+1])
		img.Pix[i*4+2] = linearToSRGB(buf[i*4+2])
		img.Pix[i*4+3] = clamp255(buf[i*4+3] * 255.0)
	}

	if ss == 1 {
		return img
	}

	out := image.NewNRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return out
}

// fillTriangle composites one triangle with barycentric color interpolation.
func fillTriangle(buf []float64, w, h int, data gizmo.DrawData, i0, i1, i2 uint32, scale float64) {
	n := uint32(len(data.Vertices))
	if i0 >= n || i1 >= n || i2 >= n {
		return
	}

	x0, y0 := float64(data.Vertices[i0][0])*scale, float64(data.Vertices[i0][1])*scale
	x1, y1 := float64(data.Vertices[i1][0])*scale, float64(data.Vertices[i1][1])*scale
	x2, y2 := float64(data.Vertices[i2][0])*scale, float64(data.Vertices[i2][1])*scale

	c0 := data.Colors[i0]
	c1 := data.Colors[i1]
	c2 := data.Colors[i2]

	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX > w-1 {
		maxX = w - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY > h-1 {
		maxY = h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-10 && det < 1e-10 {
		return
	}
	invDet := 1.0 / det

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5

			l0 := ((y1-y2)*(px-x2) + (x2-x1)*(py-y2)) * invDet
			l1 := ((y2-y0)*(px-x2) + (x0-x2)*(py-y2)) * invDet
			l2 := 1.0 - l0 - l1
			if l0 < 0 || l1 < 0 || l2 < 0 {
				continue
			}

			r := l0*float64(c0[0]) + l1*float64(c1[0]) + l2*float64(c2[0])
			g := l0*float64(c0[1]) + l1*float64(c1[1]) + l2*float64(c2[1])
			b := l0*float64(c0[2]) + l1*float64(c1[2]) + l2*float64(c2[2])
			a := l0*float64(c0[3]) + l1*float64(c1[3]) + l2*float64(c2[3])

			idx := (y*w + x) * 4
			buf[idx+0] = r*a + buf[idx+0]*(1.0-a)
			buf[idx+1] = g*a + buf[idx+1]*(1.0-a)
			buf[idx+2] = b*a + buf[idx+2]*(1.0-a)
			buf[idx+3] = a + buf[idx+3]*(1.0-a)
		}
	}
}

func srgbToLinear(v uint8) float64 {
	f := float64(v) / 255.0
	if f <= 0.04045 {
		return f / 12.92
	}
	return math.Pow((f+0.055)/1.055, 2.4)
}

func linearToSRGB(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	var f float64
	if v <= 0.0031308 {
		f = v * 12.92
	} else {
		f = 1.055*math.Pow(v, 1.0/2.4) - 0.055
	}
	return clamp255(f * 255.0)
}

func clamp255(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
