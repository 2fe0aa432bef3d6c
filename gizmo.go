package gizmo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// GizmoInteraction is the per-frame pointer snapshot supplied by the host.
type GizmoInteraction struct {
	// CursorPos is the pointer position in logical pixels.
	CursorPos [2]float32
	// DragStarted is true on the frame the primary button was pressed.
	DragStarted bool
	// Dragging is true while the primary button is held.
	Dragging bool
}

// ResultKind tags the variant of a GizmoResult.
type ResultKind int

const (
	ResultRotation ResultKind = iota
	ResultTranslation
	ResultScale
	ResultArcball
)

// GizmoResult is the typed delta produced by the active subgizmo for one
// frame. Only the fields of the tagged variant are meaningful.
type GizmoResult struct {
	Kind ResultKind

	// Rotation: axis, the latest angle delta and the accumulated angle.
	RotationAxis  mgl64.Vec3
	RotationDelta float64
	RotationTotal float64
	IsViewAxis    bool

	// Translation: the latest delta and the accumulated movement.
	TranslationDelta mgl64.Vec3
	TranslationTotal mgl64.Vec3

	// Scale: the accumulated factor relative to the drag start.
	ScaleTotal mgl64.Vec3

	// Arcball: the latest rotation delta and the accumulated rotation.
	ArcballDelta mgl64.Quat
	ArcballTotal mgl64.Quat
}

// Gizmo is an interactive 3D transformation widget. It owns no window and
// no render backend: the host feeds it a config snapshot, target transforms
// and pointer state every frame, and consumes the returned transforms and
// draw geometry. One instance serves one target group; instances share
// nothing.
type Gizmo struct {
	config PreparedConfig

	subgizmos []subGizmo
	// activeID is non-empty only while a drag gesture is in progress.
	// At most one subgizmo is ever active.
	activeID string

	targetStartTransforms []Transform
	gizmoStartTransform   Transform

	log Logger
}

// NewGizmo creates a gizmo with the given configuration.
func NewGizmo(config GizmoConfig) *Gizmo {
	g := &Gizmo{
		config: newPreparedConfig(),
		log:    NewNopLogger(),
	}
	g.UpdateConfig(config)
	return g
}

// SetLogger installs a logger for interaction debug output. The default
// logger discards everything.
func (g *Gizmo) SetLogger(log Logger) {
	if log == nil {
		log = NewNopLogger()
	}
	g.log = log
}

// Config returns the configuration currently in use.
func (g *Gizmo) Config() GizmoConfig {
	return g.config.GizmoConfig
}

// UpdateConfig replaces the configuration. Changing the mode set or the
// primitive visibility rebuilds the subgizmo collection and cancels any
// drag in progress.
func (g *Gizmo) UpdateConfig(config GizmoConfig) {
	if config.Modes != g.config.Modes || config.Visibility != g.config.Visibility {
		g.subgizmos = g.subgizmos[:0]
		g.activeID = ""
	}

	g.config.updateForConfig(config)

	if len(g.subgizmos) == 0 {
		// Fixed construction order; equal-distance picking ties resolve to
		// the first-built subgizmo.
		if g.config.Modes.Has(ModeRotate) {
			g.addRotation()
		}
		if g.config.Modes.Has(ModeTranslate) {
			g.addTranslation()
		}
		if g.config.Modes.Has(ModeScale) {
			g.addScale()
		}
	}
}

// IsFocused reports whether any subgizmo was under the pointer after the
// latest Update call.
func (g *Gizmo) IsFocused() bool {
	for _, sub := range g.subgizmos {
		if sub.isFocused() {
			return true
		}
	}
	return false
}

// Update runs one frame of the interaction state machine. It returns the
// interaction result and the updated target transforms while a subgizmo is
// being dragged, and ok=false otherwise.
func (g *Gizmo) Update(interaction GizmoInteraction, targets []Transform) (GizmoResult, []Transform, bool) {
	if !g.config.Viewport.IsFinite() {
		return GizmoResult{}, nil, false
	}

	// While a drag is in progress the gizmo's own pivot is authoritative;
	// re-deriving from the live targets would feed the gizmo's output back
	// into its own position.
	if g.activeID == "" {
		g.config.updateForTargets(targets)
	}

	for _, sub := range g.subgizmos {
		sub.updateConfig(g.config)
		sub.setFocused(false)
	}

	ray := g.pointerRay(mgl64.Vec2{float64(interaction.CursorPos[0]), float64(interaction.CursorPos[1])})

	if g.activeID == "" {
		if sub := g.pickSubGizmo(ray); sub != nil {
			sub.setFocused(true)

			if interaction.DragStarted {
				g.activeID = sub.id()
				g.targetStartTransforms = append(g.targetStartTransforms[:0], targets...)
				g.gizmoStartTransform = g.config.asTransform()
				g.log.Debugf("gizmo: drag started on subgizmo %s", sub.id())
			}
		}
	}

	var result GizmoResult
	haveResult := false

	if active := g.activeSubGizmo(); active != nil {
		if interaction.Dragging {
			active.setActive(true)
			active.setFocused(true)
			result, haveResult = active.update(ray)
		} else {
			active.setActive(false)
			active.setFocused(false)
			g.log.Debugf("gizmo: drag ended on subgizmo %s", g.activeID)
			g.activeID = ""
		}
	}

	if !haveResult {
		// No interaction this frame; track the live targets again.
		g.config.updateForTargets(targets)
		for _, sub := range g.subgizmos {
			sub.updateConfig(g.config)
		}
		return GizmoResult{}, nil, false
	}

	g.applyResultToPivot(result)

	updated := g.applyResult(result, targets, g.targetStartTransforms)
	return result, updated, true
}

// Draw returns the viewport space geometry of the latest interaction. While
// a subgizmo is active only that one is drawn.
func (g *Gizmo) Draw() DrawData {
	var data DrawData
	if !g.config.Viewport.IsFinite() {
		return data
	}

	for _, sub := range g.subgizmos {
		if g.activeID == "" || sub.isActive() {
			data.Append(sub.draw())
		}
	}
	return data
}

func (g *Gizmo) activeSubGizmo() subGizmo {
	if g.activeID == "" {
		return nil
	}
	for _, sub := range g.subgizmos {
		if sub.id() == g.activeID {
			return sub
		}
	}
	return nil
}

// pickSubGizmo returns the subgizmo with the closest valid hit, or nil.
func (g *Gizmo) pickSubGizmo(ray Ray) subGizmo {
	var picked subGizmo
	closest := math.Inf(1)

	for _, sub := range g.subgizmos {
		t, ok := sub.pick(ray)
		if !ok {
			continue
		}
		// Strictly smaller keeps the first-built subgizmo on exact ties.
		if t < closest {
			closest = t
			picked = sub
		}
	}
	return picked
}

// applyResult folds a subgizmo delta into every target transform, using the
// drag start snapshots as baseline where the folding rule requires it.
func (g *Gizmo) applyResult(result GizmoResult, targets, startTargets []Transform) []Transform {
	updated := make([]Transform, 0, len(targets))
	for i, target := range targets {
		start := target
		if i < len(startTargets) {
			start = startTargets[i]
		}

		switch result.Kind {
		case ResultRotation:
			updated = append(updated, g.foldRotationAxis(target, result.RotationAxis, result.RotationDelta, result.IsViewAxis))
		case ResultTranslation:
			updated = append(updated, g.foldTranslation(target, start, result.TranslationDelta))
		case ResultScale:
			updated = append(updated, foldScale(target, start, result.ScaleTotal))
		case ResultArcball:
			updated = append(updated, g.foldRotation(target, result.ArcballDelta))
		}
	}
	return updated
}

// foldRotationAxis applies an axis/angle delta. Local orientation rotates
// the axis into the target's frame, except for view axis rotations which
// are always world space.
func (g *Gizmo) foldRotationAxis(target Transform, axis mgl64.Vec3, delta float64, isViewAxis bool) Transform {
	if g.config.EffectiveOrientation() == OrientationLocal && !isViewAxis {
		axis = target.Rotation.Rotate(axis)
	}
	return g.foldRotation(target, mgl64.QuatRotate(delta, axis))
}

// foldRotation composes a rotation delta onto the target. The translation
// revolves about the shared pivot under median point pivoting and stays
// fixed under individual origins.
func (g *Gizmo) foldRotation(target Transform, delta mgl64.Quat) Transform {
	translation := target.Translation
	if g.config.PivotPoint == PivotMedianPoint {
		pivot := g.config.translation
		translation = pivot.Add(delta.Rotate(target.Translation.Sub(pivot)))
	}

	return Transform{
		Scale:       target.Scale,
		Rotation:    delta.Mul(target.Rotation).Normalize(),
		Translation: translation,
	}
}

// foldTranslation adds the frame delta onto the target's current
// translation. Local orientation re-expresses the delta in the frame the
// target had when the drag started.
func (g *Gizmo) foldTranslation(target, start Transform, delta mgl64.Vec3) Transform {
	if g.config.EffectiveOrientation() == OrientationLocal {
		delta = start.Rotation.Rotate(delta)
	}

	return Transform{
		Scale:       start.Scale,
		Rotation:    start.Rotation,
		Translation: target.Translation.Add(delta),
	}
}

// foldScale multiplies the drag start scale by the accumulated factor. The
// total is used instead of per-frame deltas so rounding never compounds.
func foldScale(target, start Transform, total mgl64.Vec3) Transform {
	return Transform{
		Scale: mgl64.Vec3{
			start.Scale.X() * total.X(),
			start.Scale.Y() * total.Y(),
			start.Scale.Z() * total.Z(),
		},
		Rotation:    target.Rotation,
		Translation: target.Translation,
	}
}

// applyResultToPivot folds the result into the gizmo's own transform so the
// widget visually tracks the aggregate of its targets.
func (g *Gizmo) applyResultToPivot(result GizmoResult) {
	updated := g.applyResult(result, []Transform{g.config.asTransform()}, []Transform{g.gizmoStartTransform})
	g.config.updateTransform(updated[0])
}

// pointerRay casts a world space ray through the pointer position.
func (g *Gizmo) pointerRay(screenPos mgl64.Vec2) Ray {
	inv := g.config.viewProjection.Inv()
	origin := screenToWorld(g.config.Viewport, inv, screenPos, -1.0)
	target := screenToWorld(g.config.Viewport, inv, screenPos, 1.0)

	return Ray{
		ScreenPos: screenPos,
		Origin:    origin,
		Direction: normalizeOrZero(target.Sub(origin)),
	}
}

func (g *Gizmo) addRotation() {
	for _, dir := range []GizmoDirection{DirectionX, DirectionY, DirectionZ, DirectionView} {
		if g.config.Visibility.RotationArc.active(dir) {
			g.subgizmos = append(g.subgizmos, newRotationSubGizmo(g.config, dir))
		}
	}
	if g.config.Visibility.Arcball {
		g.subgizmos = append(g.subgizmos, newArcballSubGizmo(g.config))
	}
}

func (g *Gizmo) addTranslation() {
	for _, dir := range []GizmoDirection{DirectionX, DirectionY, DirectionZ} {
		if g.config.Visibility.TranslationArrow.active(dir) {
			g.subgizmos = append(g.subgizmos, newTranslationSubGizmo(g.config, dir, KindAxis))
		}
	}
	if g.config.Visibility.TranslationArrow.active(DirectionView) {
		g.subgizmos = append(g.subgizmos, newTranslationSubGizmo(g.config, DirectionView, KindPlane))
	}

	// Plane handles would overlap the scale handles, so they are omitted
	// when both modes are enabled.
	if !g.config.Modes.Has(ModeScale) {
		for _, dir := range []GizmoDirection{DirectionX, DirectionY, DirectionZ} {
			if g.config.Visibility.TranslationPlane.active(dir) {
				g.subgizmos = append(g.subgizmos, newTranslationSubGizmo(g.config, dir, KindPlane))
			}
		}
	}
}

func (g *Gizmo) addScale() {
	for _, dir := range []GizmoDirection{DirectionX, DirectionY, DirectionZ} {
		if g.config.Visibility.ScaleArrow.active(dir) {
			g.subgizmos = append(g.subgizmos, newScaleSubGizmo(g.config, dir, KindAxis))
		}
	}

	// The uniform handle sits at the gizmo center where rotation and
	// translation handles would overlap it, so it only appears when scale
	// is the sole mode.
	if g.config.Modes.Count() == 1 && g.config.Visibility.ScalePlane.View {
		g.subgizmos = append(g.subgizmos, newScaleSubGizmo(g.config, DirectionView, KindPlane))
	}

	if !g.config.Modes.Has(ModeTranslate) {
		for _, dir := range []GizmoDirection{DirectionX, DirectionY, DirectionZ} {
			if g.config.Visibility.ScalePlane.active(dir) {
				g.subgizmos = append(g.subgizmos, newScaleSubGizmo(g.config, dir, KindPlane))
			}
		}
	}
}
