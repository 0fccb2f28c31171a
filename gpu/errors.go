package gpu

import "errors"

// Errors returned by the GPU host.
var (
	// ErrNoGPU is returned when no usable GPU backend or adapter exists.
	ErrNoGPU = errors.New("gpu: no GPU available")

	// ErrNotInitialized is returned when a backend is used before Init or
	// after Close.
	ErrNotInitialized = errors.New("gpu: backend not initialized")

	// ErrInvalidDimensions is returned for non-positive render sizes.
	ErrInvalidDimensions = errors.New("gpu: invalid dimensions")

	// ErrShaderCompile is returned when a program's WGSL fails to
	// compile or validate.
	ErrShaderCompile = errors.New("gpu: shader compilation failed")

	// ErrEntryPoints is returned when a module does not expose exactly
	// one vertex and one fragment entry point.
	ErrEntryPoints = errors.New("gpu: module must declare one vertex and one fragment entry point")

	// ErrNoHalProvider is returned when a device provider does not
	// expose wgpu hal handles.
	ErrNoHalProvider = errors.New("gpu: device provider does not expose HAL types")
)
