package raster

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/gizmo"
)

func triangleData(c [4]float32) gizmo.DrawData {
	return gizmo.DrawData{
		Vertices: [][2]float32{{2, 2}, {62, 2}, {2, 62}},
		Colors:   [][4]float32{c, c, c},
		Indices:  []uint32{0, 1, 2},
	}
}

func TestRenderFillsTriangle(t *testing.T) {
	img := Render(triangleData([4]float32{1, 0, 0, 1}), Options{
		Width:      64,
		Height:     64,
		Background: color.NRGBA{0, 0, 0, 255},
	})

	require.Equal(t, 64, img.Bounds().Dx())
	require.Equal(t, 64, img.Bounds().Dy())

	// Inside the triangle: opaque red.
	inside := img.NRGBAAt(10, 10)
	assert.Equal(t, uint8(255), inside.R)
	assert.Equal(t, uint8(0), inside.G)
	assert.Equal(t, uint8(255), inside.A)

	// Far corner stays background.
	outside := img.NRGBAAt(60, 60)
	assert.Equal(t, uint8(0), outside.R)
	assert.Equal(t, uint8(255), outside.A)
}

func TestRenderAlphaCompositesOverBackground(t *testing.T) {
	img := Render(triangleData([4]float32{1, 1, 1, 0.5}), Options{
		Width:      64,
		Height:     64,
		Background: color.NRGBA{0, 0, 0, 255},
	})

	// Half-transparent white over black lands mid-range after sRGB encoding.
	p := img.NRGBAAt(10, 10)
	assert.Greater(t, p.R, uint8(150))
	assert.Less(t, p.R, uint8(220))
	assert.Equal(t, uint8(255), p.A)
}

func TestRenderSupersampleKeepsOutputSize(t *testing.T) {
	img := Render(triangleData([4]float32{0, 1, 0, 1}), Options{
		Width:       32,
		Height:      48,
		Supersample: 2,
		Background:  color.NRGBA{10, 10, 10, 255},
	})
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestRenderDegenerateInput(t *testing.T) {
	img := Render(gizmo.DrawData{}, Options{Width: 0, Height: 10})
	assert.Equal(t, 1, img.Bounds().Dx())

	// Out of range indices are skipped rather than panicking.
	bad := gizmo.DrawData{
		Vertices: [][2]float32{{0, 0}},
		Colors:   [][4]float32{{1, 1, 1, 1}},
		Indices:  []uint32{0, 5, 9},
	}
	img = Render(bad, Options{Width: 8, Height: 8, Background: color.NRGBA{1, 2, 3, 255}})
	assert.Equal(t, 8, img.Bounds().Dx())

	// Zero-area triangles are skipped.
	flat := gizmo.DrawData{
		Vertices: [][2]float32{{1, 1}, {5, 1}, {9, 1}},
		Colors:   [][4]float32{{1, 0, 0, 1}, {1, 0, 0, 1}, {1, 0, 0, 1}},
		Indices:  []uint32{0, 1, 2},
	}
	img = Render(flat, Options{Width: 8, Height: 8, Background: color.NRGBA{0, 0, 0, 255}})
	assert.Equal(t, uint8(0), img.NRGBAAt(4, 1).R)
}
