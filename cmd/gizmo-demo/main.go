// gizmo-demo is an interactive host for the transform gizmo: a glfw window,
// a webgpu surface and a mouse. Keys: T/R/S toggle modes, O flips the
// orientation, P flips the pivot point, N toggles snapping, B toggles the
// arcball, Escape quits.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/gizmo"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	debug := flag.Bool("debug", false, "Enable interaction debug logging")
	flag.Parse()

	if err := run(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type demoState struct {
	modes       gizmo.GizmoModes
	orientation gizmo.GizmoOrientation
	pivot       gizmo.PivotPoint
	snapping    bool
	arcball     bool
}

func run(debug bool) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(1280, 720, "Gizmo Demo", nil, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()

	instance := wgpu.CreateInstance(nil)
	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return err
	}

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		return err
	}
	queue := device.GetQueue()

	fbWidth, fbHeight := window.GetFramebufferSize()
	caps := surface.GetCapabilities(adapter)
	format := caps.Formats[0]

	surfaceConfig := &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(fbWidth),
		Height:      uint32(fbHeight),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, surfaceConfig)

	renderer, err := newDrawRenderer(device, format)
	if err != nil {
		return err
	}

	state := demoState{
		modes:       gizmo.ModeTranslate,
		orientation: gizmo.OrientationGlobal,
		pivot:       gizmo.PivotMedianPoint,
		arcball:     true,
	}

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyT:
			state.modes ^= gizmo.ModeTranslate
		case glfw.KeyR:
			state.modes ^= gizmo.ModeRotate
		case glfw.KeyS:
			state.modes ^= gizmo.ModeScale
		case glfw.KeyO:
			if state.orientation == gizmo.OrientationGlobal {
				state.orientation = gizmo.OrientationLocal
			} else {
				state.orientation = gizmo.OrientationGlobal
			}
		case glfw.KeyP:
			if state.pivot == gizmo.PivotMedianPoint {
				state.pivot = gizmo.PivotIndividualOrigins
			} else {
				state.pivot = gizmo.PivotMedianPoint
			}
		case glfw.KeyN:
			state.snapping = !state.snapping
		case glfw.KeyB:
			state.arcball = !state.arcball
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		}
		if state.modes == 0 {
			state.modes = gizmo.ModeTranslate
		}
	})

	g := gizmo.NewGizmo(gizmo.DefaultConfig())
	if debug {
		g.SetLogger(gizmo.NewDefaultLogger("gizmo-demo", true))
	}

	targets := []gizmo.Transform{
		gizmo.NewTransform(mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent(), mgl64.Vec3{-1, 0, 0}),
		gizmo.NewTransform(mgl64.Vec3{1, 1, 1}, mgl64.QuatIdent(), mgl64.Vec3{1, 0, 0}),
	}

	prevPressed := false

	for !window.ShouldClose() {
		glfw.PollEvents()

		winWidth, winHeight := window.GetSize()
		if winWidth == 0 || winHeight == 0 {
			continue
		}

		newFBWidth, newFBHeight := window.GetFramebufferSize()
		if uint32(newFBWidth) != surfaceConfig.Width || uint32(newFBHeight) != surfaceConfig.Height {
			surfaceConfig.Width = uint32(newFBWidth)
			surfaceConfig.Height = uint32(newFBHeight)
			surface.Configure(adapter, device, surfaceConfig)
		}

		view := mgl64.LookAtV(
			mgl64.Vec3{4.0, 3.0, 4.0},
			mgl64.Vec3{0, 0, 0},
			mgl64.Vec3{0, 1, 0},
		)
		projection := mgl64.Perspective(
			math.Pi/4.0,
			float64(winWidth)/float64(winHeight),
			0.1, 100.0,
		)

		cfg := gizmo.DefaultConfig()
		cfg.ViewMatrix = gizmo.RowMajor(view)
		cfg.ProjectionMatrix = gizmo.RowMajor(projection)
		cfg.Viewport = gizmo.NewRect(0, 0, float64(winWidth), float64(winHeight))
		cfg.Modes = state.modes
		cfg.Orientation = state.orientation
		cfg.PivotPoint = state.pivot
		cfg.Snapping = state.snapping
		cfg.Visibility.Arcball = state.arcball
		cfg.PixelsPerPoint = float64(newFBWidth) / float64(winWidth)
		g.UpdateConfig(cfg)

		cursorX, cursorY := window.GetCursorPos()
		pressed := window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press

		interaction := gizmo.GizmoInteraction{
			CursorPos:   [2]float32{float32(cursorX), float32(cursorY)},
			DragStarted: pressed && !prevPressed,
			Dragging:    pressed,
		}
		prevPressed = pressed

		if _, updated, ok := g.Update(interaction, targets); ok {
			targets = updated
		}

		if err := render(surface, device, queue, renderer, g.Draw(), float32(winWidth), float32(winHeight)); err != nil {
			fmt.Fprintf(os.Stderr, "render: %v\n", err)
		}
	}
	return nil
}

func render(surface *wgpu.Surface, device *wgpu.Device, queue *wgpu.Queue, renderer *drawRenderer, data gizmo.DrawData, w, h float32) error {
	nextTexture, err := surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}

	if err := renderer.update(queue, data, w, h); err != nil {
		return err
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0.09, G: 0.09, B: 0.11, A: 1.0},
		}},
	})
	renderer.draw(pass)
	if err := pass.End(); err != nil {
		return err
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	queue.Submit(cmd)
	surface.Present()
	return nil
}
