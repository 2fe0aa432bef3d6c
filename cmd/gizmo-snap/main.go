// gizmo-snap renders a gizmo frame to an image file without a GPU. It sets
// up a canned camera and target, optionally replays a scripted drag, and
// rasterizes the resulting draw data with the software rasterizer.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/gizmo"
	"github.com/gekko3d/gizmo/raster"
)

func main() {
	width := flag.Int("width", 512, "Output image width in pixels")
	height := flag.Int("height", 512, "Output image height in pixels")
	out := flag.String("out", "gizmo.png", "Output file path")
	format := flag.String("format", "", "Output format: png or webp (default: from file extension)")
	mode := flag.String("mode", "translate", "Gizmo mode: rotate, translate, scale or all")
	drag := flag.Bool("drag", false, "Replay a short pointer drag before the snapshot")
	debug := flag.Bool("debug", false, "Enable interaction debug logging")

	flag.Parse()

	modes, err := parseModes(*mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	img := snapshot(*width, *height, modes, *drag, *debug)

	if err := writeImage(*out, *format, img); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *out)
}

func parseModes(mode string) (gizmo.GizmoModes, error) {
	switch strings.ToLower(mode) {
	case "rotate":
		return gizmo.ModeRotate, nil
	case "translate":
		return gizmo.ModeTranslate, nil
	case "scale":
		return gizmo.ModeScale, nil
	case "all":
		return gizmo.ModeRotate | gizmo.ModeTranslate | gizmo.ModeScale, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", mode)
	}
}

func snapshot(width, height int, modes gizmo.GizmoModes, drag, debug bool) *image.NRGBA {
	view := mgl64.LookAtV(
		mgl64.Vec3{3.0, 2.5, 3.0},
		mgl64.Vec3{0, 0, 0},
		mgl64.Vec3{0, 1, 0},
	)
	projection := mgl64.Perspective(
		math.Pi/4.0,
		float64(width)/float64(height),
		0.1, 100.0,
	)

	cfg := gizmo.DefaultConfig()
	cfg.ViewMatrix = gizmo.RowMajor(view)
	cfg.ProjectionMatrix = gizmo.RowMajor(projection)
	cfg.Viewport = gizmo.NewRect(0, 0, float64(width), float64(height))
	cfg.Modes = modes

	g := gizmo.NewGizmo(cfg)
	if debug {
		g.SetLogger(gizmo.NewDefaultLogger("gizmo-snap", true))
	}

	targets := []gizmo.Transform{gizmo.IdentityTransform()}

	frames := []gizmo.GizmoInteraction{
		{CursorPos: [2]float32{float32(width) / 2, float32(height) / 2}},
	}
	if drag {
		cx := float32(width) / 2
		cy := float32(height) / 2
		frames = []gizmo.GizmoInteraction{
			{CursorPos: [2]float32{cx + 40, cy - 20}},
			{CursorPos: [2]float32{cx + 40, cy - 20}, DragStarted: true, Dragging: true},
			{CursorPos: [2]float32{cx + 80, cy - 40}, Dragging: true},
			{CursorPos: [2]float32{cx + 120, cy - 60}, Dragging: true},
		}
	}

	for _, frame := range frames {
		if _, updated, ok := g.Update(frame, targets); ok {
			targets = updated
		}
	}

	return raster.Render(g.Draw(), raster.Options{
		Width:       width,
		Height:      height,
		Supersample: 2,
		Background:  color.NRGBA{24, 24, 28, 255},
	})
}

func writeImage(path, format string, img *image.NRGBA) error {
	if format == "" {
		if strings.HasSuffix(strings.ToLower(path), ".webp") {
			format = "webp"
		} else {
			format = "png"
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case "png":
		if err := png.Encode(f, img); err != nil {
			return fmt.Errorf("encoding png: %w", err)
		}
	case "webp":
		if err := nativewebp.Encode(f, img, nil); err != nil {
			return fmt.Errorf("encoding webp: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}
