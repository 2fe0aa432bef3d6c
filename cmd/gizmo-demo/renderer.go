package main

import (
	_ "embed"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gekko3d/gizmo"
)

//go:embed gizmo.wgsl
var gizmoWGSL string

// drawVertex matches the WGSL VertexInput.
type drawVertex struct {
	Pos   [2]float32
	Color [4]float32
}

// globals matches the WGSL uniform block.
type globals struct {
	ViewportSize [2]float32
	Pad          [2]float32
}

// drawRenderer uploads gizmo draw data every frame and renders it as one
// indexed triangle list over the cleared surface.
type drawRenderer struct {
	device   *wgpu.Device
	pipeline *wgpu.RenderPipeline

	uniformBuffer *wgpu.Buffer
	bindGroup     *wgpu.BindGroup

	vertexBuffer *wgpu.Buffer
	vertexCap    uint32
	indexBuffer  *wgpu.Buffer
	indexCap     uint32
	indexCount   uint32
}

func newDrawRenderer(device *wgpu.Device, format wgpu.TextureFormat) (*drawRenderer, error) {
	shaderModule, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "GizmoDrawShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: gizmoWGSL},
	})
	if err != nil {
		return nil, err
	}

	bgl, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "GizmoDrawBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: uint64(unsafe.Sizeof(globals{})),
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		return nil, err
	}

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "GizmoDrawPipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shaderModule,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: uint64(unsafe.Sizeof(drawVertex{})),
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         0,
							ShaderLocation: 0,
						},
						{
							Format:         wgpu.VertexFormatFloat32x4,
							Offset:         8,
							ShaderLocation: 1,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shaderModule,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    format,
					WriteMask: wgpu.ColorWriteMaskAll,
					Blend: &wgpu.BlendState{
						Color: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorSrcAlpha,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
						Alpha: wgpu.BlendComponent{
							Operation: wgpu.BlendOperationAdd,
							SrcFactor: wgpu.BlendFactorOne,
							DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						},
					},
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, err
	}

	uniformBuffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "GizmoDrawGlobals",
		Size:  uint64(unsafe.Sizeof(globals{})),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}

	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "GizmoDrawBG",
		Layout: bgl,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  uniformBuffer,
				Size:    uint64(unsafe.Sizeof(globals{})),
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return &drawRenderer{
		device:        device,
		pipeline:      pipeline,
		uniformBuffer: uniformBuffer,
		bindGroup:     bindGroup,
	}, nil
}

// update uploads this frame's draw data and viewport size. On a buffer
// allocation failure the frame's geometry is dropped and the error returned.
func (r *drawRenderer) update(queue *wgpu.Queue, data gizmo.DrawData, viewportW, viewportH float32) error {
	g := globals{ViewportSize: [2]float32{viewportW, viewportH}}
	queue.WriteBuffer(r.uniformBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&g)), unsafe.Sizeof(g)))

	r.indexCount = uint32(len(data.Indices))
	if r.indexCount == 0 {
		return nil
	}

	vertices := make([]drawVertex, len(data.Vertices))
	for i, pos := range data.Vertices {
		vertices[i] = drawVertex{Pos: pos, Color: data.Colors[i]}
	}

	vertexCount := uint32(len(vertices))
	if r.vertexBuffer == nil || r.vertexCap < vertexCount {
		if r.vertexBuffer != nil {
			r.vertexBuffer.Release()
			r.vertexBuffer = nil
		}
		newCap := vertexCount + 256
		buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "GizmoDrawVertices",
			Size:  uint64(newCap) * uint64(unsafe.Sizeof(drawVertex{})),
			Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			r.indexCount = 0
			return err
		}
		r.vertexBuffer = buf
		r.vertexCap = newCap
	}

	if r.indexBuffer == nil || r.indexCap < r.indexCount {
		if r.indexBuffer != nil {
			r.indexBuffer.Release()
			r.indexBuffer = nil
		}
		newCap := r.indexCount + 768
		buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "GizmoDrawIndices",
			Size:  uint64(newCap) * 4,
			Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			r.indexCount = 0
			return err
		}
		r.indexBuffer = buf
		r.indexCap = newCap
	}

	vSize := len(vertices) * int(unsafe.Sizeof(drawVertex{}))
	queue.WriteBuffer(r.vertexBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&vertices[0])), vSize))

	iSize := len(data.Indices) * 4
	queue.WriteBuffer(r.indexBuffer, 0, unsafe.Slice((*byte)(unsafe.Pointer(&data.Indices[0])), iSize))
	return nil
}

// draw records the gizmo pass onto an already begun render pass.
func (r *drawRenderer) draw(pass *wgpu.RenderPassEncoder) {
	if r.indexCount == 0 || r.vertexBuffer == nil || r.indexBuffer == nil {
		return
	}

	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, r.bindGroup, nil)
	pass.SetVertexBuffer(0, r.vertexBuffer, 0, r.vertexBuffer.GetSize())
	pass.SetIndexBuffer(r.indexBuffer, wgpu.IndexFormatUint32, 0, r.indexBuffer.GetSize())
	pass.DrawIndexed(r.indexCount, 1, 0, 0, 0)
}
