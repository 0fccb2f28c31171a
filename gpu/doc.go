// Package gpu drives the shader programs through gogpu/wgpu.
//
// The package is the GPU counterpart of package render: the same two
// programs, executed by real vertex and fragment hardware stages. WGSL
// sources are compiled to SPIR-V with gogpu/naga at pipeline-creation
// time, entry points are recovered by reflection, and frames render
// offscreen into an RGBA8 texture that is read back into a
// render.Pixmap.
//
// A Backend owns the hal instance, device, and queue. It either brings
// up its own device (Init, Vulkan) or adopts a shared device from a
// windowed gogpu host (UseDeviceProvider). Tests run against the noop
// hal backend and need no GPU.
package gpu
