package gpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/tri"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Backend owns the hal-level GPU bring-up: instance, adapter, device,
// and queue. Renderers borrow the device and queue from a Backend.
//
// A Backend is created in one of two ways:
//   - Init opens its own device on the first suitable adapter;
//   - UseDeviceProvider adopts a device shared by a windowed gogpu host.
//
// Adopted devices are never destroyed by Close; owned ones are released
// in reverse creation order.
type Backend struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	adapterName string
	external    bool
	initialized bool
}

// NewBackend creates an uninitialized backend. Call Init or
// UseDeviceProvider before creating renderers.
func NewBackend() *Backend {
	return &Backend{}
}

// Init brings up a standalone device on the Vulkan backend: instance,
// adapter enumeration preferring discrete then integrated GPUs, device
// open with default limits. Calling Init on an initialized backend is a
// no-op.
func (b *Backend) Init() error {
	api, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("%w: vulkan backend not registered", ErrNoGPU)
	}
	return b.InitWithAPI(api)
}

// InitWithAPI brings up a standalone device on a specific hal backend.
// Tests use this with the noop backend; production code uses Init.
func (b *Backend) InitWithAPI(api hal.Backend) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	instance, err := api.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("%w: create instance: %w", ErrNoGPU, err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return fmt.Errorf("%w: no adapters found", ErrNoGPU)
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		for i := range adapters {
			if adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
				selected = &adapters[i]
				break
			}
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return fmt.Errorf("%w: open device: %w", ErrNoGPU, err)
	}

	b.instance = instance
	b.device = openDev.Device
	b.queue = openDev.Queue
	b.adapterName = selected.Info.Name
	b.external = false
	b.initialized = true

	tri.Logger().Info("gpu: backend initialized", "adapter", b.adapterName)
	return nil
}

// UseDeviceProvider adopts the device and queue shared by an external
// host, typically a windowed gogpu application. The provider must expose
// wgpu hal handles through HalDevice() any and HalQueue() any.
//
// Any device previously owned by this backend is released first. The
// adopted device is owned by the provider and is not destroyed by Close.
func (b *Backend) UseDeviceProvider(provider gpucontext.DeviceProvider) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return ErrNoHalProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHalProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHalProvider)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseLocked()

	b.device = device
	b.queue = queue
	b.external = true
	b.initialized = true

	tri.Logger().Info("gpu: adopted shared device")
	return nil
}

// Close releases backend resources. Adopted external devices are left
// alone. The backend may be re-initialized afterwards.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releaseLocked()
}

func (b *Backend) releaseLocked() {
	if !b.initialized {
		return
	}
	if !b.external && b.device != nil {
		b.device.Destroy()
	}
	if b.instance != nil {
		b.instance.Destroy()
	}
	b.instance = nil
	b.device = nil
	b.queue = nil
	b.adapterName = ""
	b.external = false
	b.initialized = false
}

// IsInitialized reports whether the backend holds a usable device.
func (b *Backend) IsInitialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized
}

// AdapterName returns the name of the selected adapter, or "" for
// adopted devices and uninitialized backends.
func (b *Backend) AdapterName() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.adapterName
}

// Device returns the hal device, or nil before initialization.
func (b *Backend) Device() hal.Device {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.device
}

// Queue returns the hal queue, or nil before initialization.
func (b *Backend) Queue() hal.Queue {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queue
}
