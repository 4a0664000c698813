// Command initialization enumerates the GPU adapters on the system and
// opens a device on the most capable one.
package main

import (
	"fmt"
	"log"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	_ "github.com/gogpu/wgpu/hal/vulkan"
)

func main() {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		log.Fatal("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		log.Fatalf("create instance: %v", err)
	}
	defer instance.Destroy()

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		log.Fatal("no GPU adapters found")
	}

	fmt.Printf("found %d adapter(s):\n", len(adapters))
	for i := range adapters {
		fmt.Printf("  %s (%v)\n", adapters[i].Info.Name, adapters[i].Info.DeviceType)
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		log.Fatalf("open device: %v", err)
	}
	device := openDev.Device
	defer device.Destroy()

	fmt.Printf("opened device on %s\n", selected.Info.Name)
}
