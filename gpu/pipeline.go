package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/tri"
	"github.com/gogpu/wgpu/hal"
)

// pipelineResources holds the GPU objects backing one program's render
// pipeline. Destroyed in reverse creation order.
type pipelineResources struct {
	shader     hal.ShaderModule
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// buildRenderPipeline compiles the program's WGSL, reflects its entry
// points, and creates the render pipeline: the program's vertex buffer
// layout, an RGBA8 color target with no blending (replace semantics),
// triangle-list primitives with back-face culling, single sampling.
// This mirrors the classic first-triangle pipeline state.
func buildRenderPipeline(device hal.Device, prog tri.Program) (*pipelineResources, error) {
	spirv, err := CompileWGSL(prog.WGSL)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", prog.Name, err)
	}
	eps, err := ReflectEntryPoints(prog.WGSL)
	if err != nil {
		return nil, fmt.Errorf("reflect %s: %w", prog.Name, err)
	}

	res := &pipelineResources{}

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  prog.Name + "_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module: %w", err)
	}
	res.shader = shader

	// No bind groups: the programs use no uniforms, samplers, or
	// textures.
	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: prog.Name + "_pipe_layout",
	})
	if err != nil {
		res.destroy(device)
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}
	res.pipeLayout = pipeLayout

	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  prog.Name + "_pipeline",
		Layout: res.pipeLayout,
		Vertex: hal.VertexState{
			Module:     res.shader,
			EntryPoint: eps.Vertex,
			Buffers:    prog.Layout,
		},
		Fragment: &hal.FragmentState{
			Module:     res.shader,
			EntryPoint: eps.Fragment,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    gputypes.TextureFormatRGBA8Unorm,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeBack,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		res.destroy(device)
		return nil, fmt.Errorf("create render pipeline: %w", err)
	}
	res.pipeline = pipeline

	return res, nil
}

// destroy releases pipeline resources in reverse creation order. Safe to
// call on partially built resources.
func (res *pipelineResources) destroy(device hal.Device) {
	if res.pipeline != nil {
		device.DestroyRenderPipeline(res.pipeline)
		res.pipeline = nil
	}
	if res.pipeLayout != nil {
		device.DestroyPipelineLayout(res.pipeLayout)
		res.pipeLayout = nil
	}
	if res.shader != nil {
		device.DestroyShaderModule(res.shader)
		res.shader = nil
	}
}
