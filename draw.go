package gizmo

// DrawData is renderer-agnostic triangle geometry for one frame: vertex
// positions in viewport coordinates, linear RGBA vertex colors and triangle
// indices. Draw data concatenates, so per-subgizmo meshes merge into one.
type DrawData struct {
	// Vertices in viewport space (logical pixels).
	Vertices [][2]float32
	// Colors are linear, non-premultiplied RGBA, one per vertex.
	Colors [][4]float32
	// Indices into Vertices, three per triangle.
	Indices []uint32
}

// Append merges other into d, rebasing the appended indices past the
// existing vertex count.
func (d *DrawData) Append(other DrawData) {
	offset := uint32(len(d.Vertices))
	d.Vertices = append(d.Vertices, other.Vertices...)
	d.Colors = append(d.Colors, other.Colors...)
	for _, idx := range other.Indices {
		d.Indices = append(d.Indices, offset+idx)
	}
}
